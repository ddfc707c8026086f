package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberUsesLocaleSeparators(t *testing.T) {
	en := MustNew("en-US")
	de := MustNew("de-DE")

	assert.Equal(t, "1,234,567.89", en.Number(1234567.891))
	assert.Equal(t, "1.234.567,89", de.Number(1234567.891))
	assert.Equal(t, "0.50", en.Number(0.5))
}

func TestMoneyAndPercent(t *testing.T) {
	en := MustNew("en-US")

	assert.Equal(t, "$1,000.00", en.Money(1000))
	assert.Equal(t, "25.00%", en.Percent(0.25))
	assert.Equal(t, "x100", en.Leverage(100))
	assert.Equal(t, "12,500", en.Integer(12500))
}

func TestNewRejectsBadLocale(t *testing.T) {
	_, err := New("not a locale!")
	require.Error(t, err)

	f, err := New("es-ES")
	require.NoError(t, err)
	assert.Equal(t, "es-ES", f.Locale())
}
