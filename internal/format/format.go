// Package format renders numbers for people, using the separators of a
// configured locale.
package format

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter formats currency, percent and plain numbers for one locale.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
}

// New creates a Formatter for a BCP 47 locale such as "en-US" or "es-ES".
func New(locale string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	return &Formatter{tag: tag, printer: message.NewPrinter(tag)}, nil
}

// MustNew is New for locales known to be valid.
func MustNew(locale string) *Formatter {
	f, err := New(locale)
	if err != nil {
		panic(err)
	}
	return f
}

// Locale returns the locale tag in use.
func (f *Formatter) Locale() string {
	return f.tag.String()
}

// Number formats v with exactly two fraction digits.
func (f *Formatter) Number(v float64) string {
	return f.printer.Sprint(number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// Integer formats v with grouping separators.
func (f *Formatter) Integer(v int) string {
	return f.printer.Sprint(number.Decimal(v))
}

// Money formats v as a dollar amount.
func (f *Formatter) Money(v float64) string {
	return "$" + f.Number(v)
}

// Percent formats a fraction (0.25) as a percentage (25.00%).
func (f *Formatter) Percent(fraction float64) string {
	return f.Number(fraction*100) + "%"
}

// Leverage formats a multiplier as "x25".
func (f *Formatter) Leverage(v int) string {
	return fmt.Sprintf("x%d", v)
}
