package persian

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToPersianNumber(t *testing.T) {
	assert.Equal(t, "۰۱۲۳۴۵۶۷۸۹", ToPersianNumber("0123456789"))
	assert.Equal(t, "-۱,۲۵۰.۵", ToPersianNumber("-1,250.5"))
	assert.Equal(t, "واحد ۱۲", ToPersianNumber("واحد 12"))
	assert.Equal(t, "", ToPersianNumber(""))
}

func TestToEnglishNumber(t *testing.T) {
	assert.Equal(t, "0123456789", ToEnglishNumber("۰۱۲۳۴۵۶۷۸۹"))
	assert.Equal(t, "0123456789", ToEnglishNumber("٠١٢٣٤٥٦٧٨٩"))
	assert.Equal(t, "abc", ToEnglishNumber("abc"))
}

func TestDigitRoundTrip(t *testing.T) {
	inputs := []string{"0", "1234567890", "1,000,000", "-42.5", "1403/07/27", "12 - 7", "9999999999999999"}
	for _, s := range inputs {
		assert.Equal(t, s, ToEnglishNumber(ToPersianNumber(s)), "round trip of %q", s)
	}
}

func TestFormatPriceShort(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{1_500_000, "۱.۵ میلیون"},
		{2_000_000_000, "۲.۰ میلیارد"},
		{3_260_000_000, "۳.۳ میلیارد"},
		{250_000, "۲۵۰ هزار"},
		{1_000, "۱ هزار"},
		{999, "۹۹۹"},
		{0, "۰"},
		{-1_500_000, "-۱.۵ میلیون"},
		{2_500, "۳ هزار"},
		{999_499, "۹۹۹ هزار"},
		{999_500, "۱.۰ میلیون"},
		{999_999, "۱.۰ میلیون"},
		{999_949_999, "۹۹۹.۹ میلیون"},
		{999_950_000, "۱.۰ میلیارد"},
		{999_999_999, "۱.۰ میلیارد"},
		{-999_999, "-۱.۰ میلیون"},
		{math.MaxInt64, "۹۲۲۳۳۷۲۰۳۶.۹ میلیارد"},
		{math.MinInt64, "-۹۲۲۳۳۷۲۰۳۶.۹ میلیارد"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPriceShort(tt.amount), "amount %d", tt.amount)
	}

	got := FormatPriceShort(1_500_000)
	assert.True(t, strings.Contains(got, "۱.۵"))
	assert.True(t, strings.Contains(got, "میلیون"))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "۱,۲۵۰,۰۰۰ تومان", FormatPrice(1_250_000))
	assert.Equal(t, "۰ تومان", FormatPrice(0))
	assert.Equal(t, "۹۹۹", FormatNumber(999))
}

func TestJalali(t *testing.T) {
	y, m, d := ToJalali(time.Date(2025, time.October, 19, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, 1404, y)
	assert.Equal(t, 7, m)
	assert.Equal(t, 27, d)

	assert.Equal(t, "۱۴۰۳/۰۱/۰۱", FormatJalaliDate(time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, "مهر ۱۴۰۴", JalaliPeriod(1404, 7))
	assert.Equal(t, "", JalaliMonthName(13))

	start := PeriodStart(1404, 7, time.UTC)
	assert.True(t, start.Equal(time.Date(2025, time.September, 23, 0, 0, 0, 0, time.UTC)), "period start = %v", start)

	py, pm := CurrentPeriod(time.Date(2025, time.October, 19, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, 1404, py)
	assert.Equal(t, 7, pm)
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Date(2025, time.October, 19, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		at   time.Time
		want string
	}{
		{now.Add(-10 * time.Second), "همین الان"},
		{now.Add(-5 * time.Minute), "۵ دقیقه پیش"},
		{now.Add(-3 * time.Hour), "۳ ساعت پیش"},
		{now.Add(-30 * time.Hour), "دیروز"},
		{now.Add(-4 * 24 * time.Hour), "۴ روز پیش"},
		{now.Add(-15 * 24 * time.Hour), "۲ هفته پیش"},
		{now.Add(-90 * 24 * time.Hour), "۳ ماه پیش"},
		{now.Add(-800 * 24 * time.Hour), "۲ سال پیش"},
		{now.Add(2 * time.Hour), "۲ ساعت بعد"},
		{now.Add(30 * time.Hour), "فردا"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatRelativeTime(tt.at, now))
	}
}
