package persian

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
)

// CurrencyName is appended to formatted prices. Amounts are kept in Toman.
const CurrencyName = "تومان"

const (
	wordThousand = "هزار"
	wordMillion  = "میلیون"
	wordBillion  = "میلیارد"
)

// FormatNumber groups thousands with commas and renders Persian digits.
func FormatNumber(n int64) string {
	return ToPersianNumber(humanize.Comma(n))
}

// FormatPrice renders an amount as "۱,۲۵۰,۰۰۰ تومان".
func FormatPrice(amount int64) string {
	return FormatNumber(amount) + " " + CurrencyName
}

// FormatPriceShort abbreviates an amount with the largest magnitude word that
// applies after rounding: one decimal for billion and million, none for
// thousand. 1,500,000 renders as "۱.۵ میلیون" and 999,999 as "۱.۰ میلیون".
func FormatPriceShort(amount int64) string {
	sign := ""
	abs := uint64(amount)
	if amount < 0 {
		sign = "-"
		abs = uint64(-(amount + 1)) + 1 // MinInt64 has no positive counterpart
	}

	var s string
	switch {
	case abs >= 1_000_000_000:
		s = tenths(abs, 1_000_000_000, wordBillion)
	case abs >= 1_000_000:
		if roundDiv(abs, 100_000) >= 10_000 {
			s = tenths(abs, 1_000_000_000, wordBillion)
		} else {
			s = tenths(abs, 1_000_000, wordMillion)
		}
	case abs >= 1_000:
		if k := roundDiv(abs, 1_000); k >= 1_000 {
			s = tenths(abs, 1_000_000, wordMillion)
		} else {
			s = strconv.FormatUint(k, 10) + " " + wordThousand
		}
	default:
		s = strconv.FormatUint(abs, 10)
	}
	return ToPersianNumber(sign + s)
}

// roundDiv divides rounding half away from zero.
func roundDiv(n, d uint64) uint64 {
	q, r := n/d, n%d
	if r >= d-r {
		q++
	}
	return q
}

// tenths renders n/unit with one decimal followed by word.
func tenths(n, unit uint64, word string) string {
	t := roundDiv(n, unit/10)
	return fmt.Sprintf("%d.%d %s", t/10, t%10, word)
}
