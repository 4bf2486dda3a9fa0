package persian

import (
	"fmt"
	"time"

	ptime "github.com/yaa110/go-persian-calendar"
)

var monthNames = [...]string{
	"فروردین", "اردیبهشت", "خرداد",
	"تیر", "مرداد", "شهریور",
	"مهر", "آبان", "آذر",
	"دی", "بهمن", "اسفند",
}

// ToJalali returns the Jalali year, month (1-12) and day of t in t's location.
func ToJalali(t time.Time) (year, month, day int) {
	pt := ptime.New(t)
	return pt.Year(), int(pt.Month()), pt.Day()
}

// FormatJalaliDate renders t as "۱۴۰۴/۰۷/۲۷".
func FormatJalaliDate(t time.Time) string {
	y, m, d := ToJalali(t)
	return ToPersianNumber(fmt.Sprintf("%04d/%02d/%02d", y, m, d))
}

// JalaliMonthName returns the Persian name of a Jalali month, or "" if month
// is out of range.
func JalaliMonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}

// JalaliPeriod renders a billing period as "مهر ۱۴۰۴".
func JalaliPeriod(year, month int) string {
	return JalaliMonthName(month) + " " + ToPersianNumber(fmt.Sprint(year))
}

// PeriodStart returns the first instant of a Jalali month in loc.
func PeriodStart(year, month int, loc *time.Location) time.Time {
	return ptime.Date(year, ptime.Month(month), 1, 0, 0, 0, 0, loc).Time()
}

// CurrentPeriod returns the Jalali year and month containing now.
func CurrentPeriod(now time.Time) (year, month int) {
	year, month, _ = ToJalali(now)
	return year, month
}
