package datetime

import "testing"

func TestParseYear(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  int
		wantError bool
	}{
		{"Plain", "2018", 2018, false},
		{"Whitespace", " 2020 ", 2020, false},
		{"Too short", "218", 0, true},
		{"Not numeric", "20x8", 0, true},
		{"Empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseYear(tt.input)
			if (err != nil) != tt.wantError {
				t.Fatalf("ParseYear(%q) error = %v, wantError %v", tt.input, err, tt.wantError)
			}
			if got != tt.expected {
				t.Errorf("ParseYear(%q) = %d, expected %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestInRange(t *testing.T) {
	if !InRange(2013, 2013, 2029) || InRange(2030, 2013, 2029) {
		t.Errorf("InRange() boundaries are wrong")
	}
}
