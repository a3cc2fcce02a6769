// Package report renders engine results as plain-text tables and JSON.
package report

import (
	"encoding/json"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/creditrisk/risk"
)

// Money rounds half away from zero to cents and groups thousands,
// e.g. "$1,234,567.89".
func Money(v float64) string {
	if !finite(v) {
		return "n/a"
	}
	d := decimal.NewFromFloat(v).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	_, frac, _ := strings.Cut(d.StringFixed(2), ".")
	return sign + "$" + humanize.Comma(d.IntPart()) + "." + frac
}

// Pct formats a percentage ratio with two decimals, or "n/a" when it is
// undefined.
func Pct(r risk.Ratio) string {
	if !r.Defined || !finite(r.Value) {
		return "n/a"
	}
	return decimal.NewFromFloat(r.Value).StringFixed(2) + "%"
}

// Prob formats a probability with four decimals.
func Prob(v float64) string {
	if !finite(v) {
		return "n/a"
	}
	return decimal.NewFromFloat(v).StringFixed(4)
}

func fraction(r risk.Ratio) string {
	if !r.Defined {
		return "n/a"
	}
	return Prob(r.Value)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func row(tw *tabwriter.Writer, cols ...string) {
	io.WriteString(tw, strings.Join(cols, "\t")+"\n")
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
