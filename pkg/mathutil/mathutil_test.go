package mathutil

import (
	"math"
	"testing"
)

func TestRoundTo(t *testing.T) {
	tests := []struct {
		name      string
		input     float64
		precision float64
		expected  float64
	}{
		{"Cents", 12345.678, 0.01, 12345.68},
		{"Rate", 0.123456, 0.0001, 0.1235},
		{"Whole dollars", 6149.5, 1, 6150},
		{"Fifty dollar step", 12470, 50, 12450},
		{"Zero precision leaves value", 1.23456, 0, 1.23456},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RoundTo(tt.input, tt.precision)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("RoundTo(%v, %v) = %v, expected %v", tt.input, tt.precision, result, tt.expected)
			}
		})
	}
}

func TestIsZero(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected bool
	}{
		{"Exactly zero", 0.0, true},
		{"Very small negative", -0.001, true},
		{"Just above tolerance", 0.02, false},
		{"Large negative", -100.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsZero(tt.input)
			if result != tt.expected {
				t.Errorf("IsZero(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestClampPosBool(t *testing.T) {
	if Clamp(5, 0, 1) != 1 {
		t.Errorf("Clamp(5, 0, 1) = %v, expected 1", Clamp(5, 0, 1))
	}
	if Clamp(-5, 0, 1) != 0 {
		t.Errorf("Clamp(-5, 0, 1) = %v, expected 0", Clamp(-5, 0, 1))
	}
	if Pos(-3000) != 0 || Pos(12.5) != 12.5 {
		t.Errorf("Pos() did not clamp at zero")
	}
	if Bool(true) != 1 || Bool(false) != 0 {
		t.Errorf("Bool() returned unexpected values")
	}
}

func TestWithinTolerance(t *testing.T) {
	tests := []struct {
		name      string
		a, b, tol float64
		expected  bool
	}{
		{"Equal", 1, 1, 0, true},
		{"Inside", 9289.5, 9289.504, 0.01, true},
		{"Outside", 3169.5, 3020, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithinTolerance(tt.a, tt.b, tt.tol); got != tt.expected {
				t.Errorf("WithinTolerance(%v, %v, %v) = %v, expected %v", tt.a, tt.b, tt.tol, got, tt.expected)
			}
		})
	}
}

func TestCalculatePercentage(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		total    float64
		expected float64
	}{
		{"Half", 50, 100, 50},
		{"Zero total", 50, 0, 0},
		{"Negative", -25, 100, -25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculatePercentage(tt.value, tt.total); got != tt.expected {
				t.Errorf("CalculatePercentage(%v, %v) = %v, expected %v", tt.value, tt.total, got, tt.expected)
			}
		})
	}
}
