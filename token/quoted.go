package token

import (
	"encoding/hex"
	"unicode"
	"unicode/utf8"
)

// Quote returns v as a double quoted string using the escapes shared by
// JSON, TOML basic strings and YAML double quoted scalars.
func Quote(v string) string {
	d := make([]byte, 1, len(v)+2)
	d[0] = '"'
	ucs := []byte{0, 0}
	cps := []byte{0, 0, 0, 0}
	for _, r := range v {
		switch r {
		case '"':
			d = append(d, '\\', '"')
		case '\\':
			d = append(d, '\\', '\\')
		case '\b':
			d = append(d, '\\', 'b')
		case '\f':
			d = append(d, '\\', 'f')
		case '\n':
			d = append(d, '\\', 'n')
		case '\r':
			d = append(d, '\\', 'r')
		case '\t':
			d = append(d, '\\', 't')
		default:
			if r < 0x10000 && unicode.IsControl(r) {
				ucs[0] = byte(r >> 8)
				ucs[1] = byte(r)
				cps = hex.AppendEncode(cps[:0], ucs)
				d = append(d, '\\', 'u', cps[0], cps[1], cps[2], cps[3])
			} else {
				d = utf8.AppendRune(d, r)
			}
		}
	}
	d = append(d, '"')
	return string(d)
}

// IsBareKey reports whether v can be written unquoted as a TOML key.
func IsBareKey(v string) bool {
	if v == "" {
		return false
	}
	for i := 0; i < len(v); i++ {
		if !IsBareKeyByte(v[i]) {
			return false
		}
	}
	return true
}

func IsBareKeyByte(b byte) bool {
	return IsAlpha(b) || IsDigit(b) || b == '_' || b == '-'
}

// ToString converts scanned bytes to a string, failing on invalid UTF-8.
func ToString(d []byte, span Span) (string, error) {
	if !utf8.Valid(d) {
		return "", NewError(KindInvalidToken, span, "invalid utf-8")
	}
	return string(d), nil
}

// HexValue decodes up to 8 hex digits.
func HexValue(d []byte) (rune, bool) {
	if len(d) == 0 || len(d) > 8 {
		return 0, false
	}
	var r rune
	for _, c := range d {
		var v byte
		switch {
		case c >= '0' && c <= '9':
			v = c - '0'
		case c >= 'a' && c <= 'f':
			v = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			v = c - 'A' + 10
		default:
			return 0, false
		}
		r = r<<4 | rune(v)
	}
	return r, true
}
