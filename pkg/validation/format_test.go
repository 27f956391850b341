package validation

import (
	"strings"
	"testing"
)

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name      string
		format    string
		wantError bool
	}{
		{"Pretty", "pretty", false},
		{"CSV", "csv", false},
		{"Empty", "", true},
		{"Uppercase", "CSV", true},
		{"Unknown", "html", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format)
			if (err != nil) != tt.wantError {
				t.Errorf("ValidateOutputFormat(%q) error = %v, wantError %v", tt.format, err, tt.wantError)
			}
		})
	}
}

func TestValidateOutputFormatErrorMessage(t *testing.T) {
	err := ValidateOutputFormat("xml")
	if err == nil {
		t.Fatal("ValidateOutputFormat() expected error")
	}
	if !strings.Contains(err.Error(), "xml") {
		t.Errorf("error message %q does not name the bad format", err.Error())
	}
}

func TestValidateTaxYear(t *testing.T) {
	tests := []struct {
		year      int
		wantError bool
	}{
		{2012, true},
		{2013, false},
		{2018, false},
		{2029, false},
		{2030, true},
	}
	for _, tt := range tests {
		err := ValidateTaxYear(tt.year)
		if (err != nil) != tt.wantError {
			t.Errorf("ValidateTaxYear(%d) error = %v, wantError %v", tt.year, err, tt.wantError)
		}
	}
}

func TestValidateInputName(t *testing.T) {
	tests := []struct {
		name      string
		wantError bool
	}{
		{"cps.csv", false},
		{"data/sample.csv", false},
		{"sample.txt", true},
		{".csv", true},
	}
	for _, tt := range tests {
		err := ValidateInputName(tt.name)
		if (err != nil) != tt.wantError {
			t.Errorf("ValidateInputName(%q) error = %v, wantError %v", tt.name, err, tt.wantError)
		}
	}
}
