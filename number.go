package querystr

import (
	"errors"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var decimalNumber = regexp.MustCompile(`^[+-]?(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][+-]?[0-9]+)?$`)

// parseNumber converts text to a number using the same rules as the JavaScript Number() function
//
// surrounding whitespace is ignored, empty text is 0 and anything unparseable is NaN
func parseNumber(s string) float64 {
	s = trimSpace(s)
	switch s {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			return parseRadix(s[2:], base)
		}
	}
	if decimalNumber.MatchString(s) {
		// out of range values are returned as ±Inf (or 0), same as Number()
		f, _ := strconv.ParseFloat(s, 64)
		return f
	}
	return math.NaN()
}

func parseRadix(digits string, base int) float64 {
	if u, err := strconv.ParseUint(digits, base, 64); err == nil {
		return float64(u)
	} else if !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	i, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return math.NaN()
	}
	f, _ := new(big.Float).SetInt(i).Float64()
	return f
}

// formatNumber formats a number the way the JavaScript String() function does
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		// exponent is not zero padded ("1e-7", not "1e-07")
		return mantissa + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func isSpace(r rune) bool {
	return r == '\uFEFF' || (r != '\u0085' && unicode.IsSpace(r))
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}
