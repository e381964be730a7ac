package server

import (
	"fmt"
	"regexp"
	"strings"

	constants "zamenabot/internal"
	"zamenabot/internal/replacements"
)

var markdownEscapeRe = regexp.MustCompile(`([()/!\[\]|=.-])`)

// escapeMarkdown escapes the punctuation MarkdownV2 treats as syntax,
// leaving * available for bold.
func escapeMarkdown(text string) string {
	return markdownEscapeRe.ReplaceAllString(text, `\$1`)
}

// formatHeader renders the bulletin metadata line. A date outside the
// current ISO week gets a staleness warning.
func formatHeader(set *replacements.Set) string {
	var b strings.Builder
	b.WriteString("*Замены")
	if set.Day() != "" {
		b.WriteString(" на " + set.Day())
	}
	if set.Date() != nil {
		fmt.Fprintf(&b, " (%s)", set.Date().Format("02.01.2006"))
	}
	b.WriteString("*\n")
	if !set.IsCurrentWeek() {
		b.WriteString(constants.StaleReplacementsMessage + "\n")
	}
	return b.String()
}

// formatGroupChanges renders one group's replacements.
func formatGroupChanges(set *replacements.Set, group string) string {
	if !set.HasGroup(group) {
		return fmt.Sprintf(constants.NoGroupReplacementsMessage, group)
	}

	var b strings.Builder
	b.WriteString(formatHeader(set))
	b.WriteString("Группа " + group + ":\n")
	for _, change := range set.Group(group) {
		b.WriteString("• " + formatChange(change) + "\n")
	}
	return b.String()
}

// formatTeacherChanges renders every replacement naming the teacher.
func formatTeacherChanges(set *replacements.Set, lastName string) string {
	entries := set.Teacher(lastName)
	if len(entries) == 0 {
		return fmt.Sprintf(constants.NoTeacherReplacementsMessage, lastName)
	}

	var b strings.Builder
	b.WriteString(formatHeader(set))
	b.WriteString(lastName + ":\n")
	for _, entry := range entries {
		b.WriteString("• " + formatTeacherEntry(entry) + "\n")
	}
	return b.String()
}

// formatChange spells out one change. Each variant is handled
// explicitly: a CabinetChange's columns hold rooms, not subjects.
func formatChange(change replacements.Change) string {
	switch c := change.(type) {
	case replacements.PairRemove:
		return fmt.Sprintf("Пара %s: снята %s", c.PairNumber, c.Subject)
	case replacements.PairAdd:
		return fmt.Sprintf("Пара %s: добавлена %s — %s, каб. %s",
			c.PairNumber, c.Subject, c.Teacher, c.Cabinet)
	case replacements.CabinetChange:
		return fmt.Sprintf("Пара %s: кабинет %s → %s",
			c.PairNumber, c.OldCabinet, c.NewCabinet)
	case replacements.PairChange:
		return fmt.Sprintf("Пара %s: %s → %s — %s, каб. %s",
			c.PairNumber, c.OldSubject, c.NewSubject, c.Teacher, c.Cabinet)
	}
	return ""
}

func formatTeacherEntry(entry replacements.TeacherEntry) string {
	switch entry.Kind {
	case replacements.KindPairAdd:
		return fmt.Sprintf("Пара %s, группа %s: добавлена %s, каб. %s",
			entry.PairNumber, entry.Group, entry.Fields[0], entry.Fields[1])
	case replacements.KindPairChange:
		return fmt.Sprintf("Пара %s, группа %s: %s → %s, каб. %s",
			entry.PairNumber, entry.Group, entry.Fields[0], entry.Fields[1], entry.Fields[2])
	}
	return fmt.Sprintf("Пара %s, группа %s", entry.PairNumber, entry.Group)
}
