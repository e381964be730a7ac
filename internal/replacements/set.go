package replacements

import (
	"math"
	"sort"
	"strings"
	"time"
)

// Set is an immutable, queryable snapshot of one bulletin page.
// "Updating" a Set means building a new one and swapping it in.
type Set struct {
	date    *time.Time
	day     string
	byGroup map[string][]Change
}

// NewSet groups the page's records by class group and sorts each group
// by pair number. Groups without surviving records are never stored.
func NewSet(page *Page) *Set {
	s := &Set{
		date:    page.Date,
		day:     page.Day,
		byGroup: make(map[string][]Change),
	}
	for _, record := range page.Records {
		s.byGroup[record.Group] = append(s.byGroup[record.Group], record.Change)
	}
	for _, changes := range s.byGroup {
		sortChanges(changes)
	}
	return s
}

// pairKey orders single-digit pair numbers numerically and pushes
// everything else (time ranges, multi-digit numbers) to the end.
func pairKey(pairNumber string) int {
	if len(pairNumber) == 1 && pairNumber[0] >= '0' && pairNumber[0] <= '9' {
		return int(pairNumber[0] - '0')
	}
	return math.MaxInt
}

// sortChanges is stable: equal keys keep their table order.
func sortChanges(changes []Change) {
	sort.SliceStable(changes, func(i, j int) bool {
		return pairKey(changes[i].Pair()) < pairKey(changes[j].Pair())
	})
}

// Date returns the bulletin's effective date, nil if it was unparseable.
func (s *Set) Date() *time.Time { return s.date }

// Day returns the bulletin's weekday label, empty if it was absent.
func (s *Set) Day() string { return s.day }

// HasGroup reports whether the group has any replacements.
func (s *Set) HasGroup(group string) bool {
	_, ok := s.byGroup[group]
	return ok
}

// Groups returns the names of all groups with replacements, sorted.
func (s *Set) Groups() []string {
	groups := make([]string, 0, len(s.byGroup))
	for group := range s.byGroup {
		groups = append(groups, group)
	}
	sort.Strings(groups)
	return groups
}

// Group returns the group's replacements in pair order. Unknown groups
// get an empty slice, not an error.
func (s *Set) Group(group string) []Change {
	return s.byGroup[group]
}

// TeacherEntry is one replacement attributed to a teacher, with the
// teacher column dropped from the tail fields.
type TeacherEntry struct {
	Group      string
	Kind       Kind
	PairNumber string
	Fields     []string
}

// HasTeacher reports whether any replacement names the teacher. The
// teacher column may join several last names with "/".
func (s *Set) HasTeacher(lastName string) bool {
	for _, changes := range s.byGroup {
		for _, change := range changes {
			if teacherMatches(changeTeacher(change), lastName) {
				return true
			}
		}
	}
	return false
}

// Teacher returns every replacement attributed to the last name, across
// all groups, re-sorted by the pair-number rule. A co-taught record is
// attributed to each of its names.
func (s *Set) Teacher(lastName string) []TeacherEntry {
	var matches []TeacherEntry
	for _, group := range s.Groups() {
		for _, change := range s.byGroup[group] {
			if !teacherMatches(changeTeacher(change), lastName) {
				continue
			}
			matches = append(matches, teacherEntry(group, change))
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return pairKey(matches[i].PairNumber) < pairKey(matches[j].PairNumber)
	})
	return matches
}

// IsCurrentWeek reports whether the bulletin's date falls in the same
// ISO week as now. Unknown dates are never current.
func (s *Set) IsCurrentWeek() bool {
	return s.isCurrentWeekAt(time.Now())
}

func (s *Set) isCurrentWeekAt(now time.Time) bool {
	if s.date == nil {
		return false
	}
	setYear, setWeek := s.date.ISOWeek()
	nowYear, nowWeek := now.ISOWeek()
	return setYear == nowYear && setWeek == nowWeek
}

// IsDayMatches reports whether the bulletin's weekday label equals the
// target day after capitalization. Unknown labels never match.
func (s *Set) IsDayMatches(target string) bool {
	if s.day == "" {
		return false
	}
	return s.day == capitalize(target)
}

// changeTeacher extracts the teacher column for the variants that have
// one. A CabinetChange's NewCabinet came from the teacher column but is
// a room, not a name.
func changeTeacher(change Change) string {
	switch c := change.(type) {
	case PairAdd:
		return c.Teacher
	case PairChange:
		return c.Teacher
	}
	return ""
}

func teacherMatches(field, lastName string) bool {
	if field == "" {
		return false
	}
	for _, name := range strings.Split(field, "/") {
		if strings.TrimSpace(name) == lastName {
			return true
		}
	}
	return false
}

func teacherEntry(group string, change Change) TeacherEntry {
	entry := TeacherEntry{
		Group:      group,
		Kind:       change.Kind(),
		PairNumber: change.Pair(),
	}
	switch c := change.(type) {
	case PairAdd:
		entry.Fields = []string{c.Subject, c.Cabinet}
	case PairChange:
		entry.Fields = []string{c.OldSubject, c.NewSubject, c.Cabinet}
	}
	return entry
}
