package taxerr

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "Kind only",
			err:      &Error{Kind: ErrInvalidRecords},
			expected: "invalid records",
		},
		{
			name:     "Param and year",
			err:      Reform("II_rt7", 2020, "value %v above max %v", 1.5, 1.0),
			expected: "invalid reform [II_rt7] [2020]: value 1.5 above max 1",
		},
		{
			name:     "Year only",
			err:      Year(2031, "advance past end year"),
			expected: "year out of range [2031]: advance past end year",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestErrorsIsKind(t *testing.T) {
	err := fmt.Errorf("apply reform: %w", Reform("STD", 2019, "wrong rank"))
	if !errors.Is(err, ErrInvalidReform) {
		t.Errorf("errors.Is(err, ErrInvalidReform) = false, expected true")
	}
	if errors.Is(err, ErrInvalidRecords) {
		t.Errorf("errors.Is(err, ErrInvalidRecords) = true, expected false")
	}
	te := As(err)
	if te == nil || te.Param != "STD" || te.Year != 2019 {
		t.Errorf("As() = %+v, expected STD/2019", te)
	}
}

func TestAsJoined(t *testing.T) {
	joined := errors.Join(Reform("A", 2018, "x"), Overflow("iitax", 2018, "RECID 7"))
	if !errors.Is(joined, ErrNumericOverflow) {
		t.Errorf("joined error lost ErrNumericOverflow")
	}
	if As(joined) == nil {
		t.Errorf("As(joined) = nil")
	}
	if As(errors.New("plain")) != nil {
		t.Errorf("As(plain) should be nil")
	}
}
