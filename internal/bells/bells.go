package bells

import (
	"fmt"
	"strings"
)

// Day types as they appear in the [bells.*] config sections.
const (
	WorkingDay   = "working_day"
	WeekendDay   = "weekend_day"
	ShortenedDay = "shortened_day"
)

// Day is one bell table: a display name and, per pair, the list of
// start/end time pairs (a pair may have several rings for subgroups).
type Day struct {
	Name string       `toml:"name"`
	Time [][][]string `toml:"time"`
}

// Config maps a day type to its bell table.
type Config map[string]Day

// Schedule ...
type Schedule struct {
	days Config
}

// New ...
func New(config Config) *Schedule {
	return &Schedule{days: config}
}

// Day returns the bell table for a day type.
func (s *Schedule) Day(dayType string) (Day, bool) {
	day, ok := s.days[dayType]
	return day, ok
}

// FormatDay renders the bell table for a day type as message text.
func (s *Schedule) FormatDay(dayType string) string {
	day, ok := s.days[dayType]
	if !ok {
		return fmt.Sprintf("Расписание для *%s* не найдено", displayDayType(dayType))
	}

	var b strings.Builder
	for i, pair := range day.Time {
		if i+1 == 4 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "• Пара %d:\n", i+1)
		for _, lesson := range pair {
			if len(lesson) != 2 {
				continue
			}
			b.WriteString(lesson[0] + "-" + lesson[1] + "\n")
		}
	}
	if b.Len() == 0 {
		return fmt.Sprintf("Расписание для *%s* пусто", displayDayType(dayType))
	}

	return "*Расписание звонков\n(" + day.Name + ")*\n\n" + b.String()
}

func displayDayType(dayType string) string {
	return strings.ReplaceAll(dayType, "_", " ")
}
