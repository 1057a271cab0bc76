package yaml

import (
	"math"
	"strconv"
	"strings"

	"github.com/signadot/zparse/ir"
	"github.com/signadot/zparse/token"
)

// inferScalar resolves a plain scalar to null, bool, number or string.
func inferScalar(s string) *ir.Value {
	switch s {
	case "", "~", "null", "Null", "NULL":
		return ir.Null()
	case ".inf", ".Inf", ".INF", "+.inf", "+.Inf", "+.INF":
		return ir.FromNumber(math.Inf(1))
	case "-.inf", "-.Inf", "-.INF":
		return ir.FromNumber(math.Inf(-1))
	case ".nan", ".NaN", ".NAN":
		return ir.FromNumber(math.NaN())
	}
	if strings.EqualFold(s, "true") {
		return ir.FromBool(true)
	}
	if strings.EqualFold(s, "false") {
		return ir.FromBool(false)
	}
	if f, ok := parseInt(s); ok {
		return ir.FromNumber(f)
	}
	if isFloat(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return ir.FromNumber(f)
		}
	}
	return ir.FromString(s)
}

func parseInt(s string) (float64, bool) {
	base := 10
	digits := s
	switch {
	case strings.HasPrefix(s, "0x"):
		base, digits = 16, s[2:]
	case strings.HasPrefix(s, "0o"):
		base, digits = 8, s[2:]
	default:
		digits = strings.TrimPrefix(strings.TrimPrefix(s, "-"), "+")
		if len(s)-len(digits) > 1 {
			return 0, false
		}
	}
	if digits == "" {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		c := digits[i]
		ok := token.IsDigit(c)
		switch base {
		case 16:
			ok = token.IsHexDigit(c)
		case 8:
			ok = c >= '0' && c <= '7'
		}
		if !ok {
			return 0, false
		}
	}
	if base == 10 {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			f, ferr := strconv.ParseFloat(s, 64)
			return f, ferr == nil
		}
		return float64(n), true
	}
	n, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return 0, false
	}
	return float64(n), true
}

// isFloat matches [-+]?(\.[0-9]+|[0-9]+(\.[0-9]*)?)([eE][-+]?[0-9]+)?
func isFloat(s string) bool {
	if s != "" && (s[0] == '-' || s[0] == '+') {
		s = s[1:]
	}
	mant, exp, hasExp := strings.Cut(strings.ReplaceAll(s, "E", "e"), "e")
	intPart, frac, hasDot := strings.Cut(mant, ".")
	if intPart == "" && frac == "" {
		return false
	}
	if !allDigits(intPart) || !allDigits(frac) || (!hasDot && intPart == "") {
		return false
	}
	if hasExp {
		if exp != "" && (exp[0] == '+' || exp[0] == '-') {
			exp = exp[1:]
		}
		if exp == "" || !allDigits(exp) {
			return false
		}
	}
	return true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !token.IsDigit(s[i]) {
			return false
		}
	}
	return true
}
