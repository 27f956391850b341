package integration

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/taxcalc/internal/taxio"
	"go.uber.org/zap"
)

// syntheticSample builds n filing units cycling through filing statuses and
// a wide range of wages.
func syntheticSample(n int) []byte {
	var b strings.Builder
	b.WriteString("RECID,MARS,XTOT,n24,EIC,e00200,e00200p,e00300,p23250\n")
	for i := 0; i < n; i++ {
		mars := 1 + i%4
		kids := i % 3
		if mars == 1 || mars == 3 {
			kids = 0
		}
		xtot := 1 + kids
		if mars == 2 {
			xtot++
		}
		wages := float64((i*7919)%400000) + 1000
		fmt.Fprintf(&b, "%d,%d,%d,%d,%d,%.0f,%.0f,%d,%d\n", i+1, mars, xtot, kids, kids, wages, wages, i%5000, (i%11)*1000)
	}
	return []byte(b.String())
}

func TestLargeSamplePerformance(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping performance test in short mode")
	}
	s := taxio.Scenario{Name: "synthetic.csv", Data: syntheticSample(20000), TaxYear: 2022}

	start := time.Now()
	calcs, err := taxio.Build(zap.NewNop(), s)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if err := calcs.Calculate(); err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	elapsed := time.Since(start)
	t.Logf("20000 units in %v", elapsed)
	if elapsed > 30*time.Second {
		t.Errorf("calculation took %v, expected under 30s", elapsed)
	}
}

func BenchmarkCalcAll(b *testing.B) {
	calcs, err := taxio.Build(zap.NewNop(), taxio.Scenario{Name: "synthetic.csv", Data: syntheticSample(5000), TaxYear: 2022})
	if err != nil {
		b.Fatalf("Build() error = %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := calcs.Baseline.CalcAll(); err != nil {
			b.Fatal(err)
		}
	}
}
