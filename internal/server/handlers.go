package server

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	constants "zamenabot/internal"
	"zamenabot/internal/bells"
	"zamenabot/internal/replacements"
	"zamenabot/internal/week"
)

// handleStartCommand ...
func (s *Server) handleStartCommand(update tgbotapi.Update) {
	s.reply(update.Message.Chat.ID, constants.StartCommandMessage)
}

// handleHelpCommand ...
func (s *Server) handleHelpCommand(update tgbotapi.Update) {
	s.reply(update.Message.Chat.ID, constants.HelpCommandMessage)
}

// handleBellsCommand prints the bell table for a day type.
func (s *Server) handleBellsCommand(update tgbotapi.Update) {
	chatID := update.Message.Chat.ID

	dayType, ok := bellsDayType(update.Message.CommandArguments(), time.Now().Weekday())
	if !ok {
		s.reply(chatID, constants.BadArgumentsMessage)
		return
	}
	if dayType == "" {
		s.reply(chatID, constants.BellsSundayMessage)
		return
	}
	s.reply(chatID, s.bells.FormatDay(dayType))
}

// bellsDayType maps a /bells argument to a day type. Without an
// argument the type follows the weekday; Sunday has no table of its
// own and comes back as an empty type.
func bellsDayType(args string, today time.Weekday) (string, bool) {
	switch strings.TrimSpace(args) {
	case "":
		switch today {
		case time.Sunday:
			return "", true
		case time.Saturday:
			return bells.WeekendDay, true
		default:
			return bells.WorkingDay, true
		}
	case "0", "рабочий":
		return bells.WorkingDay, true
	case "1", "выходной":
		return bells.WeekendDay, true
	case "2", "сокращённый":
		return bells.ShortenedDay, true
	}
	return "", false
}

// handleWeekCommand prints the current week, on Sunday the next one.
func (s *Server) handleWeekCommand(update tgbotapi.Update) {
	current := week.Current()
	var answer string
	if time.Now().Weekday() == time.Sunday {
		answer = "Сегодня воскресенье\n" +
			"Следующая неделя *" + strings.ToUpper(current.Next().Type()) + "*"
	} else {
		answer = "Сейчас *" + strings.ToUpper(current.Type()) + "* неделя"
	}
	s.reply(update.Message.Chat.ID, answer)
}

// handleCurrWeekCommand ...
func (s *Server) handleCurrWeekCommand(update tgbotapi.Update) {
	answer := "Сейчас *" + strings.ToUpper(week.Current().Type()) + "* неделя"
	s.reply(update.Message.Chat.ID, answer)
}

// handleNextWeekCommand ...
func (s *Server) handleNextWeekCommand(update tgbotapi.Update) {
	answer := "Следующая неделя *" + strings.ToUpper(week.Current().Next().Type()) + "*"
	s.reply(update.Message.Chat.ID, answer)
}

// handleChangesCommand prints the replacements for the user's group or
// last name, for today or for an explicitly named weekday.
func (s *Server) handleChangesCommand(update tgbotapi.Update) {
	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	role, err := s.store.UserRole(userID)
	if err != nil {
		s.logger.Error(err)
		s.reply(chatID, constants.InternalErrorMessage)
		return
	}
	if role == "" {
		s.reply(chatID, constants.NotRegisteredMessage)
		return
	}

	day := strings.TrimSpace(update.Message.CommandArguments())
	set, err := s.replacementsFor(day)
	if err != nil {
		if errors.Is(err, replacements.ErrNoBulletin) || errors.Is(err, replacements.ErrEmptyBulletin) {
			s.reply(chatID, fmt.Sprintf(constants.NoReplacementsMessage, dayOrToday(day)))
		} else {
			s.logger.Error(err)
			s.reply(chatID, constants.ChangesUnavailableMessage)
		}
		return
	}

	switch role {
	case "student":
		group, err := s.store.StudentGroup(userID)
		if err != nil {
			s.logger.Error(err)
			s.reply(chatID, constants.InternalErrorMessage)
			return
		}
		if group == "" {
			s.reply(chatID, constants.NotRegisteredMessage)
			return
		}
		s.reply(chatID, formatGroupChanges(set, group))

	case "teacher":
		lastName, err := s.store.TeacherLastName(userID)
		if err != nil {
			s.logger.Error(err)
			s.reply(chatID, constants.InternalErrorMessage)
			return
		}
		if lastName == "" {
			s.reply(chatID, constants.NotRegisteredMessage)
			return
		}
		s.reply(chatID, formatTeacherChanges(set, lastName))
	}
}

// replacementsFor reads today's set from the published snapshot; an
// explicit weekday goes through an on-demand fetch. A nil error with a
// non-nil set is the only "have data" outcome.
func (s *Server) replacementsFor(day string) (*replacements.Set, error) {
	if day != "" {
		return s.manager.GetReplacements(day)
	}
	set, published := s.manager.Today()
	if !published {
		return nil, errors.New("no replacements snapshot published yet")
	}
	if set == nil {
		return nil, replacements.ErrNoBulletin
	}
	return set, nil
}

func dayOrToday(day string) string {
	if day == "" {
		return replacements.WeekdayName(time.Now().Weekday())
	}
	return day
}

// handleDefaultMessage feeds free text into an active registration
// step; everything else gets the help hint.
func (s *Server) handleDefaultMessage(update tgbotapi.Update) {
	if s.handleRegistrationText(update) {
		return
	}
	s.reply(update.Message.Chat.ID, constants.HelpCommandMessage)
}
