package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iwvelando/taxcalc/internal/calculator"
	"github.com/iwvelando/taxcalc/internal/tables"
	"github.com/iwvelando/taxcalc/pkg/constants"
)

func sampleTable() tables.Table {
	return tables.Table{
		Grouping: tables.WeightedDeciles,
		Columns:  []string{"s006", "iitax"},
		Rows: []tables.Row{
			{Label: "0-10", Values: []float64{12.5, -1234.5}},
			{Label: tables.AllLabel, Values: []float64{125, 1234567.891}},
		},
	}
}

func TestPrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := PrettyFormat(&buf, FromTable("Distribution", sampleTable())); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	out := buf.String()
	tests := []struct {
		name     string
		expected string
	}{
		{"Title", "--- Distribution ---"},
		{"Corner", "weighted_deciles"},
		{"Thousands separator", "1,234,567.89"},
		{"Negative value", "-1,234.50"},
		{"Row label", "ALL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(out, tt.expected) {
				t.Errorf("PrettyFormat() output missing %q:\n%s", tt.expected, out)
			}
		})
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 5 {
		t.Fatalf("PrettyFormat() produced %d lines, expected 5", len(lines))
	}
	if len(lines[1]) != len(lines[3]) || len(lines[3]) != len(lines[4]) {
		t.Errorf("PrettyFormat() rows are not aligned:\n%s", out)
	}
}

func TestCsvFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, FromTable("Distribution", sampleTable())); err != nil {
		t.Fatalf("CsvFormat() error = %v", err)
	}
	expected := "\"Distribution\"\n" +
		"\"weighted_deciles\",\"s006\",\"iitax\"\n" +
		"\"0-10\",\"12.5000\",\"-1234.5000\"\n" +
		"\"ALL\",\"125.0000\",\"1234567.8910\"\n"
	if got := buf.String(); got != expected {
		t.Errorf("CsvFormat() = %q, expected %q", got, expected)
	}
}

func TestFromDiagnostics(t *testing.T) {
	d := calculator.DiagnosticTable{
		Years: []int{2018, 2019},
		Rows:  []calculator.DiagnosticRow{{Label: "Returns (#m)", Values: []float64{1, 1.1}}},
	}
	g := FromDiagnostics("Diagnostics", d)
	if len(g.Columns) != 2 || g.Columns[0] != "2018" || g.Columns[1] != "2019" {
		t.Errorf("FromDiagnostics() columns = %v, expected [2018 2019]", g.Columns)
	}
	if g.Labels[0] != "Returns (#m)" || g.Values[0][1] != 1.1 {
		t.Errorf("FromDiagnostics() row = %s %v", g.Labels[0], g.Values[0])
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	for _, format := range []string{constants.OutputFormatPretty, constants.OutputFormatCSV} {
		buf.Reset()
		if err := Write(&buf, format, FromTable("A", sampleTable()), FromTable("B", sampleTable())); err != nil {
			t.Errorf("Write(%s) error = %v", format, err)
		}
		if !strings.Contains(buf.String(), "B") {
			t.Errorf("Write(%s) missing second grid", format)
		}
	}
	if err := Write(&buf, "html", FromTable("A", sampleTable())); err == nil {
		t.Errorf("Write(html) error = nil, expected error")
	}
}
