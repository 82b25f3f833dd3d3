// Package report renders the full product catalog into downloadable
// documents. Generators are pure functions of the (pre-sorted) product
// sequence — no I/O beyond reading the optional logo asset.
package report

import (
	"strings"
	"time"
	"unicode"

	"github.com/joselitopapi14/crud-fenix-tarea/internal/model"

	"github.com/shopspring/decimal"
)

// FormatearPesos renders a monetary value as thousands-dot currency with no
// decimals: 2500.00 → "$2.500".
func FormatearPesos(d decimal.Decimal) string {
	s := d.Round(0).StringFixed(0)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	out := "$" + b.String()
	if neg {
		out = "-" + out
	}
	return out
}

// Capitalizar uppercases the first rune: "unidad" → "Unidad".
func Capitalizar(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// Presentacion combines type and value for single-column layouts:
// "Peso - 500g", or just "Unidad" when no value is set.
func Presentacion(p model.Producto) string {
	out := Capitalizar(p.PresentacionTipo)
	if p.PresentacionValor != nil && *p.PresentacionValor != "" {
		out += " - " + *p.PresentacionValor
	}
	return out
}

// oGuion substitutes "-" for absent optional fields.
func oGuion(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func fechaCorta(t time.Time) string { return t.Format("02/01/2006") }
