// Package format renders aggregate amounts for logs and tables.
package format

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency renders dollars and cents with thousands separators, e.g.
// "-$1,234.56".
func Currency(amount float64) string {
	s := printer.Sprintf("%.2f", math.Abs(amount))
	if amount < 0 {
		return "-$" + s
	}
	return "$" + s
}

// Billions renders an aggregate dollar amount in billions with three decimals.
func Billions(amount float64) string {
	return fmt.Sprintf("%.3f", amount*1e-9)
}

// Millions renders a weighted count in millions with two decimals.
func Millions(count float64) string {
	return fmt.Sprintf("%.2f", count*1e-6)
}
