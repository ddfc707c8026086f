package validate

import (
	"strconv"
	"strings"
)

// ParseNumber converts locale-ambiguous numeric text into a float64.
//
// Anything that is not a digit, a separator or a sign is dropped. When both
// ',' and '.' are present the rightmost one is the decimal separator and the
// other groups thousands. A single ',' or '.' on its own is a decimal
// separator; the same separator repeated groups thousands, so every group
// after the first must hold exactly three digits.
func ParseNumber(text string) (float64, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == ',', r == '.', r == '+', r == '-':
			return r
		default:
			return -1
		}
	}, text)

	if cleaned == "" {
		return 0, errEmpty
	}

	comma := strings.LastIndex(cleaned, ",")
	dot := strings.LastIndex(cleaned, ".")

	switch {
	case comma >= 0 && dot >= 0:
		if comma > dot {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case comma >= 0:
		cleaned = normalizeSeparator(cleaned, ",")
	case dot >= 0:
		cleaned = normalizeSeparator(cleaned, ".")
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, errUnparsable
	}
	return v, nil
}

// normalizeSeparator rewrites text containing only sep as separator. Badly
// grouped text is returned unchanged and fails to parse.
func normalizeSeparator(text, sep string) string {
	if strings.Count(text, sep) == 1 {
		return strings.Replace(text, sep, ".", 1)
	}
	groups := strings.Split(text, sep)
	for _, g := range groups[1:] {
		if len(g) != 3 {
			return text
		}
	}
	return strings.Join(groups, "")
}
