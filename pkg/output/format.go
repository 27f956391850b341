// Package output provides utilities for formatting and displaying tax tables.
package output

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/iwvelando/taxcalc/internal/calculator"
	"github.com/iwvelando/taxcalc/internal/tables"
	"github.com/iwvelando/taxcalc/pkg/constants"
)

// Grid is a titled table of labeled numeric rows.
type Grid struct {
	Title   string
	Corner  string
	Columns []string
	Labels  []string
	Values  [][]float64
}

// FromTable converts a distribution or difference table.
func FromTable(title string, t tables.Table) Grid {
	g := Grid{Title: title, Corner: t.Grouping.String(), Columns: t.Columns}
	for _, r := range t.Rows {
		g.Labels = append(g.Labels, r.Label)
		g.Values = append(g.Values, r.Values)
	}
	return g
}

// FromDiagnostics converts a diagnostic table so that years are columns.
func FromDiagnostics(title string, d calculator.DiagnosticTable) Grid {
	g := Grid{Title: title, Corner: "year"}
	for _, y := range d.Years {
		g.Columns = append(g.Columns, fmt.Sprint(y))
	}
	for _, r := range d.Rows {
		g.Labels = append(g.Labels, r.Label)
		g.Values = append(g.Values, r.Values)
	}
	return g
}

// Write renders grids in the given output format.
func Write(w io.Writer, format string, grids ...Grid) error {
	switch format {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, grids...)
	case constants.OutputFormatCSV:
		return CsvFormat(w, grids...)
	}
	return fmt.Errorf("unknown output format %s", format)
}

// PrettyFormat outputs human-readable tables with thousands separators.
func PrettyFormat(w io.Writer, grids ...Grid) error {
	p := message.NewPrinter(language.English)
	for k, g := range grids {
		cells := make([][]string, len(g.Labels))
		widths := make([]int, len(g.Columns)+1)
		widths[0] = len(g.Corner)
		for i, label := range g.Labels {
			widths[0] = max(widths[0], len(label))
			cells[i] = make([]string, len(g.Columns))
			for j := range g.Columns {
				cells[i][j] = p.Sprintf("%.2f", g.Values[i][j])
			}
		}
		for j, c := range g.Columns {
			widths[j+1] = len(c)
			for i := range cells {
				widths[j+1] = max(widths[j+1], len(cells[i][j]))
			}
		}

		if _, err := fmt.Fprintf(w, "--- %s ---\n", g.Title); err != nil {
			return err
		}
		header := []string{pad(g.Corner, widths[0], false)}
		rule := []string{strings.Repeat("_", widths[0])}
		for j, c := range g.Columns {
			header = append(header, pad(c, widths[j+1], true))
			rule = append(rule, strings.Repeat("_", widths[j+1]))
		}
		fmt.Fprintln(w, strings.Join(header, " | "))
		fmt.Fprintln(w, strings.Join(rule, " | "))
		for i, label := range g.Labels {
			line := []string{pad(label, widths[0], false)}
			for j := range g.Columns {
				line = append(line, pad(cells[i][j], widths[j+1], true))
			}
			if _, err := fmt.Fprintln(w, strings.Join(line, " | ")); err != nil {
				return err
			}
		}
		if k < len(grids)-1 {
			fmt.Fprintln(w)
		}
	}
	return nil
}

func pad(s string, width int, right bool) string {
	gap := strings.Repeat(" ", max(width-len(s), 0))
	if right {
		return gap + s
	}
	return s + gap
}

// CsvFormat outputs each grid in comma-separated value format preceded by
// its title.
func CsvFormat(w io.Writer, grids ...Grid) error {
	for k, g := range grids {
		if _, err := fmt.Fprintf(w, "\"%s\"\n", g.Title); err != nil {
			return err
		}
		fmt.Fprintf(w, `"%s"`, g.Corner)
		for _, c := range g.Columns {
			fmt.Fprintf(w, `,"%s"`, c)
		}
		fmt.Fprintf(w, "\n")
		for i, label := range g.Labels {
			fmt.Fprintf(w, `"%s"`, label)
			for j := range g.Columns {
				fmt.Fprintf(w, `,"%.4f"`, g.Values[i][j])
			}
			if _, err := fmt.Fprintf(w, "\n"); err != nil {
				return err
			}
		}
		if k < len(grids)-1 {
			fmt.Fprintf(w, "\n")
		}
	}
	return nil
}
