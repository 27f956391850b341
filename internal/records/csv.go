package records

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/iwvelando/taxcalc/internal/taxerr"
)

// Load reads records from CSV with a header row of variable names.
func Load(logger *zap.Logger, r io.Reader, opts Options) (*Records, error) {
	header, cols, err := readColumns(r)
	if err != nil {
		return nil, err
	}
	columns := make(map[string][]float64, len(header))
	for i, name := range header {
		columns[name] = cols[i]
	}
	return FromColumns(logger, columns, opts)
}

// LoadWeights reads a weights table whose columns are named weight_<year>
// (or WT<year>) and whose rows align with the records.
func LoadWeights(r io.Reader) (map[int][]float64, error) {
	header, cols, err := readColumns(r)
	if err != nil {
		return nil, err
	}
	out := make(map[int][]float64, len(header))
	for i, name := range header {
		yearText, ok := strings.CutPrefix(name, "weight_")
		if !ok {
			yearText, ok = strings.CutPrefix(name, "WT")
		}
		if !ok {
			continue
		}
		year, err := strconv.Atoi(yearText)
		if err != nil {
			return nil, taxerr.Records(name, "weights column does not name a year")
		}
		out[year] = cols[i]
	}
	if len(out) == 0 {
		return nil, taxerr.Records("", "weights table has no weight_<year> columns")
	}
	return out, nil
}

func readColumns(r io.Reader) ([]string, [][]float64, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	head, err := reader.Read()
	if err != nil {
		return nil, nil, taxerr.Records("", "reading CSV header: %v", err)
	}
	header := make([]string, len(head))
	for i, h := range head {
		header[i] = strings.TrimSpace(h)
	}
	cols := make([][]float64, len(header))
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, taxerr.Records("", "reading CSV line %d: %v", line, err)
		}
		for i, field := range row {
			field = strings.TrimSpace(field)
			if field == "" {
				cols[i] = append(cols[i], 0)
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, taxerr.Records(header[i], "line %d: value %q is not numeric", line, field)
			}
			cols[i] = append(cols[i], v)
		}
	}
	for i := range cols {
		if cols[i] == nil {
			cols[i] = []float64{}
		}
	}
	return header, cols, nil
}
