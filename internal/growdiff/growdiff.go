// Package growdiff holds year-by-year differences that are added to the
// default growth factors.
package growdiff

import (
	_ "embed"
	"fmt"

	"github.com/iwvelando/taxcalc/internal/growfactors"
	"github.com/iwvelando/taxcalc/internal/paramstore"
	"github.com/iwvelando/taxcalc/pkg/constants"
)

//go:embed growdiff.json
var defaults []byte

// GrowDiff is a store with one parameter per growth factor.
type GrowDiff struct {
	*paramstore.Store
}

// New returns a GrowDiff with every difference zero.
func New() (*GrowDiff, error) {
	st, err := paramstore.Load("growdiff", defaults, paramstore.Options{
		StartYear: constants.StartYear,
		EndYear:   constants.EndYear,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load growdiff parameters: %w", err)
	}
	return &GrowDiff{Store: st}, nil
}

// Clone returns an independent copy.
func (g *GrowDiff) Clone() *GrowDiff {
	return &GrowDiff{Store: g.Store.Clone()}
}

// Diffs returns the nonzero differences keyed by growth factor and year.
func (g *GrowDiff) Diffs() map[string]map[int]float64 {
	out := make(map[string]map[int]float64)
	for _, name := range g.Items() {
		for i, row := range g.Series(name) {
			if row[0] == 0 {
				continue
			}
			if out[name] == nil {
				out[name] = make(map[int]float64)
			}
			out[name][g.StartYear()+i] = row[0]
		}
	}
	return out
}

// HasAnyResponse reports whether any difference is nonzero.
func (g *GrowDiff) HasAnyResponse() bool {
	return len(g.Diffs()) > 0
}

// ApplyTo returns gf with the differences added. gf is not modified; with
// no differences gf itself is returned.
func (g *GrowDiff) ApplyTo(gf *growfactors.GrowFactors) (*growfactors.GrowFactors, error) {
	diffs := g.Diffs()
	if len(diffs) == 0 {
		return gf, nil
	}
	out, err := gf.WithDiffs(diffs)
	if err != nil {
		return nil, fmt.Errorf("applying growth differences: %w", err)
	}
	return out, nil
}
