package bells

import (
	"strings"
	"testing"
)

func testConfig() Config {
	return Config{
		WorkingDay: Day{
			Name: "рабочий день",
			Time: [][][]string{
				{{"08:30", "09:15"}, {"09:20", "10:05"}},
				{{"10:15", "11:00"}, {"11:05", "11:50"}},
				{{"12:20", "13:05"}, {"13:10", "13:55"}},
				{{"14:05", "14:50"}, {"14:55", "15:40"}},
			},
		},
		ShortenedDay: Day{Name: "сокращённый день"},
	}
}

func TestFormatDay(t *testing.T) {
	schedule := New(testConfig())
	got := schedule.FormatDay(WorkingDay)

	if !strings.HasPrefix(got, "*Расписание звонков\n(рабочий день)*\n\n") {
		t.Fatalf("missing header:\n%s", got)
	}
	for _, want := range []string{"• Пара 1:\n08:30-09:15\n09:20-10:05\n", "• Пара 4:"} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in:\n%s", want, got)
		}
	}
	// The fourth pair is separated by a blank line.
	if !strings.Contains(got, "13:10-13:55\n\n• Пара 4:") {
		t.Fatalf("no blank line before pair 4:\n%s", got)
	}
}

func TestFormatDayUnknownType(t *testing.T) {
	schedule := New(testConfig())
	got := schedule.FormatDay("holiday_day")
	if got != "Расписание для *holiday day* не найдено" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatDayEmptyTable(t *testing.T) {
	schedule := New(testConfig())
	got := schedule.FormatDay(ShortenedDay)
	if got != "Расписание для *shortened day* пусто" {
		t.Fatalf("got %q", got)
	}
}
