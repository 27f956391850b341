package paramstore

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// SpecEntry is one value of a parameter in the exported specification.
// Labels maps the label axis name to the element's label.
type SpecEntry struct {
	Year   int               `yaml:"year" json:"year"`
	Labels map[string]string `yaml:"labels,omitempty" json:"labels,omitempty"`
	Value  any               `yaml:"value" json:"value"`
}

// SpecOptions selects what Spec reports.
type SpecOptions struct {
	// Year limits the entries to one year; zero reports every year.
	Year int
	// Serializable reports booleans as bool and integers as int instead of
	// the stored float64.
	Serializable bool
	// SortValues orders entries by year and then by label. Otherwise the
	// entries of a year follow the label axis.
	SortValues bool
}

// Spec returns the values of the named parameters (all parameters when
// names is empty) as {year, labels, value} entries.
func (s *Store) Spec(opts SpecOptions, names ...string) (map[string][]SpecEntry, error) {
	if len(names) == 0 {
		names = s.names
	}
	first, last := s.opts.StartYear, s.opts.EndYear
	if opts.Year != 0 {
		first, last = opts.Year, opts.Year
	}
	out := make(map[string][]SpecEntry, len(names))
	for _, name := range names {
		var entries []SpecEntry
		for year := first; year <= last; year++ {
			row, err := s.SelectEq(name, year)
			if err != nil {
				return nil, err
			}
			d := s.defs[name]
			for i, v := range row {
				e := SpecEntry{Year: year, Value: v}
				if opts.Serializable {
					e.Value = typed(d.Type, v)
				}
				if d.Axis != nil {
					e.Labels = map[string]string{d.Axis.Name: d.Axis.Labels[i]}
				}
				entries = append(entries, e)
			}
		}
		if opts.SortValues {
			sort.SliceStable(entries, func(a, b int) bool {
				if entries[a].Year != entries[b].Year {
					return entries[a].Year < entries[b].Year
				}
				return labelKey(entries[a].Labels) < labelKey(entries[b].Labels)
			})
		}
		out[name] = entries
	}
	return out, nil
}

// Specification returns the serializable values of the named parameters in
// year.
func (s *Store) Specification(year int, names ...string) (map[string][]SpecEntry, error) {
	return s.Spec(SpecOptions{Year: year, Serializable: true}, names...)
}

// WriteSpecification writes Specification(year, names...) as YAML.
func (s *Store) WriteSpecification(w io.Writer, year int, names ...string) error {
	return s.WriteSpec(w, SpecOptions{Year: year, Serializable: true}, names...)
}

// WriteSpec writes Spec(opts, names...) as YAML.
func (s *Store) WriteSpec(w io.Writer, opts SpecOptions, names ...string) error {
	spec, err := s.Spec(opts, names...)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(spec); err != nil {
		return fmt.Errorf("encoding %s specification: %w", s.name, err)
	}
	return enc.Close()
}

func labelKey(labels map[string]string) string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(labels[k])
		b.WriteByte(';')
	}
	return b.String()
}

func typed(vt ValueType, v float64) any {
	switch vt {
	case Boolean:
		return v != 0
	case Integer:
		return int(v)
	}
	return v
}
