package replacements

import (
	"reflect"
	"testing"
	"time"
)

func changeRecord(group, pairNumber string) Record {
	return Record{Group: group, Change: PairChange{
		PairNumber: pairNumber,
		OldSubject: "Физика",
		NewSubject: "Химия",
		Teacher:    "Иванов",
		Cabinet:    "205",
	}}
}

func TestSetSortsByPairNumber(t *testing.T) {
	page := &Page{}
	for _, pn := range []string{"3", "1", "13:35-14:20", "2", "09:00-09:45"} {
		page.Records = append(page.Records, changeRecord("101", pn))
	}

	set := NewSet(page)

	var got []string
	for _, change := range set.Group("101") {
		got = append(got, change.Pair())
	}
	want := []string{"1", "2", "3", "13:35-14:20", "09:00-09:45"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestSetRoundTrip(t *testing.T) {
	page := &Page{Records: []Record{
		changeRecord("101", "2"),
		changeRecord("101", "1"),
		changeRecord("202", "4"),
	}}

	set := NewSet(page)

	if got := set.Groups(); !reflect.DeepEqual(got, []string{"101", "202"}) {
		t.Fatalf("Groups() = %v", got)
	}
	if len(set.Group("101")) != 2 || len(set.Group("202")) != 1 {
		t.Fatalf("records dropped or duplicated: %d/%d",
			len(set.Group("101")), len(set.Group("202")))
	}
	if !set.HasGroup("101") || set.HasGroup("303") {
		t.Fatal("HasGroup mismatch")
	}
	if got := set.Group("303"); len(got) != 0 {
		t.Fatalf("unknown group returned %v", got)
	}
}

func TestSetEmptyGroupsNeverStored(t *testing.T) {
	set := NewSet(&Page{})
	if len(set.Groups()) != 0 {
		t.Fatalf("Groups() = %v, want empty", set.Groups())
	}
}

func TestTeacherQuerySplitsCoTeachers(t *testing.T) {
	page := &Page{Records: []Record{
		{Group: "101", Change: PairChange{
			PairNumber: "5",
			OldSubject: "Химия",
			NewSubject: "Биология",
			Teacher:    "Петров/Сидоров",
			Cabinet:    "202",
		}},
	}}
	set := NewSet(page)

	for _, lastName := range []string{"Петров", "Сидоров"} {
		if !set.HasTeacher(lastName) {
			t.Fatalf("HasTeacher(%q) = false", lastName)
		}
		entries := set.Teacher(lastName)
		if len(entries) != 1 {
			t.Fatalf("Teacher(%q) returned %d entries", lastName, len(entries))
		}
		entry := entries[0]
		if entry.Group != "101" || entry.Kind != KindPairChange || entry.PairNumber != "5" {
			t.Fatalf("unexpected entry %#v", entry)
		}
		want := []string{"Химия", "Биология", "202"}
		if !reflect.DeepEqual(entry.Fields, want) {
			t.Fatalf("Fields = %v, want %v (teacher column must be excluded)", entry.Fields, want)
		}
	}

	if set.HasTeacher("Иванов") {
		t.Fatal("HasTeacher matched a name not in the column")
	}
}

func TestTeacherQuerySortedAcrossGroups(t *testing.T) {
	page := &Page{Records: []Record{
		{Group: "202", Change: PairAdd{PairNumber: "13:35-14:20", Subject: "Химия", Teacher: "Петров", Cabinet: "1"}},
		{Group: "101", Change: PairAdd{PairNumber: "3", Subject: "Химия", Teacher: "Петров", Cabinet: "2"}},
		{Group: "303", Change: PairAdd{PairNumber: "1", Subject: "Химия", Teacher: "Петров", Cabinet: "3"}},
	}}
	set := NewSet(page)

	entries := set.Teacher("Петров")
	var got []string
	for _, entry := range entries {
		got = append(got, entry.PairNumber)
	}
	want := []string{"1", "3", "13:35-14:20"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestIsCurrentWeek(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC) // ISO week 3

	sameWeek := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)
	otherWeek := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date *time.Time
		want bool
	}{
		{name: "no date", date: nil, want: false},
		{name: "same iso week", date: &sameWeek, want: true},
		{name: "different iso week", date: &otherWeek, want: false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			set := NewSet(&Page{Date: tt.date})
			if got := set.isCurrentWeekAt(now); got != tt.want {
				t.Fatalf("isCurrentWeekAt = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsDayMatches(t *testing.T) {
	set := NewSet(&Page{Day: "Понедельник"})
	if !set.IsDayMatches("понедельник") {
		t.Fatal("capitalization must be normalized before matching")
	}
	if set.IsDayMatches("Вторник") {
		t.Fatal("matched the wrong day")
	}

	unlabeled := NewSet(&Page{})
	if unlabeled.IsDayMatches("Понедельник") {
		t.Fatal("missing label must never match")
	}
}
