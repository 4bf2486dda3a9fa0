package persian

import (
	"fmt"
	"time"
)

// FormatRelativeTime describes t relative to now, e.g. "۳ روز پیش" or
// "۲ ساعت بعد".
func FormatRelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	suffix := "پیش"
	if d < 0 {
		d = -d
		suffix = "بعد"
	}

	const day = 24 * time.Hour
	var n int
	var unit string
	switch {
	case d < time.Minute:
		return "همین الان"
	case d < time.Hour:
		n, unit = int(d/time.Minute), "دقیقه"
	case d < day:
		n, unit = int(d/time.Hour), "ساعت"
	case d < 2*day && suffix == "پیش":
		return "دیروز"
	case d < 2*day:
		return "فردا"
	case d < 7*day:
		n, unit = int(d/day), "روز"
	case d < 30*day:
		n, unit = int(d/(7*day)), "هفته"
	case d < 365*day:
		n, unit = int(d/(30*day)), "ماه"
	default:
		n, unit = int(d/(365*day)), "سال"
	}
	return ToPersianNumber(fmt.Sprintf("%d %s %s", n, unit, suffix))
}
