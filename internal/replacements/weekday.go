package replacements

import (
	"strings"
	"time"
	"unicode"
)

// Weekday names are embedded instead of taken from the host locale, so
// lookups against the bulletin site work regardless of how the machine
// is configured.
var weekdayNames = [...]string{
	time.Sunday:    "Воскресенье",
	time.Monday:    "Понедельник",
	time.Tuesday:   "Вторник",
	time.Wednesday: "Среда",
	time.Thursday:  "Четверг",
	time.Friday:    "Пятница",
	time.Saturday:  "Суббота",
}

// WeekdayName returns the Russian name of a weekday, capitalized the
// way the bulletin site writes it.
func WeekdayName(d time.Weekday) string {
	return weekdayNames[d]
}

// capitalize upper-cases the first letter and lower-cases the rest.
// Weekday labels are joined on this form everywhere.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
