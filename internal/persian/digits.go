// Package persian renders numbers, prices and dates for Persian-language
// clients: Persian digit glyphs, Toman amounts, Jalali dates and relative time.
package persian

import "strings"

const (
	persianZero = '۰' // U+06F0
	arabicZero  = '٠' // U+0660
)

// ToPersianNumber replaces each ASCII digit 0-9 with its Persian glyph.
// Every other rune (signs, decimal points, separators, text) is left untouched.
func ToPersianNumber(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return persianZero + (r - '0')
		}
		return r
	}, s)
}

// ToEnglishNumber is the inverse of ToPersianNumber. Arabic-Indic digits,
// which mobile keyboards often produce, are normalized as well.
func ToEnglishNumber(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= persianZero && r <= persianZero+9:
			return '0' + (r - persianZero)
		case r >= arabicZero && r <= arabicZero+9:
			return '0' + (r - arabicZero)
		}
		return r
	}, s)
}
