// Package economy holds the money parsing and formatting rules shared
// by every cash-handling command.
package economy

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseAmount turns user input into an amount of cash. It accepts bare
// integers, scientific notation ("5e3") and the suffixes k/m/b
// (case-insensitive, factors 1e3/1e6/1e9). ok is false on anything
// unparsable; callers must treat !ok and n <= 0 the same way.
func ParseAmount(text string) (int64, bool) {
	text = strings.TrimSpace(strings.ToLower(text))
	if text == "" {
		return 0, false
	}

	factor := int64(1)
	switch text[len(text)-1] {
	case 'k':
		factor = 1_000
		text = text[:len(text)-1]
	case 'm':
		factor = 1_000_000
		text = text[:len(text)-1]
	case 'b':
		factor = 1_000_000_000
		text = text[:len(text)-1]
	}

	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		if n > math.MaxInt64/factor || n < math.MinInt64/factor {
			return 0, false
		}
		return n * factor, true
	}

	// Scientific notation comes through the float path. Reject values
	// with a fractional part after applying the factor.
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	f *= float64(factor)
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// FormatAmount renders n with one K/M/B suffix at one decimal place
// for n >= 1000, else the bare integer. Abbreviated values are lossy:
// FormatAmount(1234) is "1.2K" and does not round-trip.
func FormatAmount(n int64) string {
	abs := n
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 1_000_000_000:
		return trimZero(float64(n)/1e9) + "B"
	case abs >= 1_000_000:
		return trimZero(float64(n)/1e6) + "M"
	case abs >= 1_000:
		return trimZero(float64(n)/1e3) + "K"
	default:
		return strconv.FormatInt(n, 10)
	}
}

func trimZero(f float64) string {
	s := fmt.Sprintf("%.1f", f)
	return strings.TrimSuffix(s, ".0")
}
