package week

import "time"

// Week is one academic week. Weeks are numbered from the first week of
// the academic year and alternate upper/lower, odd numbers upper.
type Week struct {
	Number        int
	startMonday   time.Time
	currentMonday time.Time
}

// Current returns the week containing today.
func Current() Week {
	return On(time.Now())
}

// On returns the week containing the given date.
func On(date time.Time) Week {
	date = midnightUTC(date)
	start := academicYearMonday(date)
	current := mondayOf(date)
	days := int(current.Sub(start).Hours() / 24)
	return Week{
		Number:        days/7 + 1,
		startMonday:   start,
		currentMonday: current,
	}
}

// IsUpper reports whether this is an upper week.
func (w Week) IsUpper() bool {
	return w.Number%2 == 1
}

// Type returns "верхняя" or "нижняя".
func (w Week) Type() string {
	if w.IsUpper() {
		return "верхняя"
	}
	return "нижняя"
}

// Next returns the following week.
func (w Week) Next() Week {
	return On(w.currentMonday.AddDate(0, 0, 7))
}

// academicYearMonday returns the Monday of the first academic week: the
// year starts September 1st, shifted to the 2nd when the 1st is a
// Sunday, then snapped back to that week's Monday.
func academicYearMonday(date time.Time) time.Time {
	year := date.Year()
	if date.Month() < time.September {
		year--
	}
	start := time.Date(year, time.September, 1, 0, 0, 0, 0, time.UTC)
	if start.Weekday() == time.Sunday {
		start = start.AddDate(0, 0, 1)
	}
	return mondayOf(start)
}

func mondayOf(date time.Time) time.Time {
	offset := (int(date.Weekday()) + 6) % 7
	return date.AddDate(0, 0, -offset)
}

func midnightUTC(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
}
