package server

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	constants "zamenabot/internal"
)

type regStep int

const (
	stepRole regStep = iota
	stepGroup
	stepSubgroup
	stepFirstName
	stepLastName
)

type regState struct {
	step      regStep
	role      string
	groupID   int
	subgroup  int
	firstName string
}

// registration keeps the per-chat state of in-flight registrations.
type registration struct {
	mu     sync.Mutex
	states map[int64]*regState
}

func newRegistration() *registration {
	return &registration{states: make(map[int64]*regState)}
}

func (r *registration) get(chatID int64) (*regState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	state, ok := r.states[chatID]
	return state, ok
}

func (r *registration) set(chatID int64, state *regState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[chatID] = state
}

func (r *registration) clear(chatID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.states[chatID]
	delete(r.states, chatID)
	return ok
}

// handleRegisterCommand starts the registration dialog with the role
// keyboard.
func (s *Server) handleRegisterCommand(update tgbotapi.Update) {
	chatID := update.Message.Chat.ID

	exists, err := s.store.UserExists(update.Message.From.ID)
	if err != nil {
		s.logger.Error(err)
		s.reply(chatID, constants.InternalErrorMessage)
		return
	}
	if exists {
		s.reply(chatID, constants.AlreadyRegisteredMessage)
		return
	}

	s.reg.set(chatID, &regState{step: stepRole})

	markup := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👩‍🎓 Студент", "reg:student"),
			tgbotapi.NewInlineKeyboardButtonData("👨‍🏫 Преподаватель", "reg:teacher"),
		),
	)
	s.replyMarkup(chatID, constants.ChooseRoleMessage, markup)
}

// handleUnregisterCommand ...
func (s *Server) handleUnregisterCommand(update tgbotapi.Update) {
	chatID := update.Message.Chat.ID

	deleted, err := s.store.DeleteUser(update.Message.From.ID)
	if err != nil {
		s.logger.Error(err)
		s.reply(chatID, constants.InternalErrorMessage)
		return
	}
	if !deleted {
		s.reply(chatID, constants.NotRegisteredMessage)
		return
	}
	s.reply(chatID, constants.RegistrationDeletedMessage)
}

// handleCancelCommand ...
func (s *Server) handleCancelCommand(update tgbotapi.Update) {
	chatID := update.Message.Chat.ID
	if s.reg.clear(chatID) {
		s.reply(chatID, constants.RegistrationCancelMessage)
		return
	}
	s.reply(chatID, constants.NothingToCancelMessage)
}

// handleCallback advances the registration dialog from inline-keyboard
// presses.
func (s *Server) handleCallback(update tgbotapi.Update) {
	cb := update.CallbackQuery
	chatID := cb.Message.Chat.ID

	if _, err := s.bot.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		s.logger.Error(err)
	}

	state, ok := s.reg.get(chatID)
	if !ok {
		return
	}

	switch {
	case strings.HasPrefix(cb.Data, "reg:") && state.step == stepRole:
		s.processRole(chatID, state, strings.TrimPrefix(cb.Data, "reg:"))

	case strings.HasPrefix(cb.Data, "grp:") && state.step == stepGroup:
		groupID, err := strconv.Atoi(strings.TrimPrefix(cb.Data, "grp:"))
		if err != nil {
			s.logger.Error(err)
			return
		}
		state.groupID = groupID
		state.step = stepSubgroup
		markup := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("1", "sub:1"),
				tgbotapi.NewInlineKeyboardButtonData("2", "sub:2"),
				tgbotapi.NewInlineKeyboardButtonData("Пропустить", "skip:sub"),
			),
		)
		s.replyMarkup(chatID, constants.ChooseSubgroupMessage, markup)

	case strings.HasPrefix(cb.Data, "sub:") && state.step == stepSubgroup:
		subgroup, err := strconv.Atoi(strings.TrimPrefix(cb.Data, "sub:"))
		if err != nil {
			s.logger.Error(err)
			return
		}
		state.subgroup = subgroup
		s.askFirstName(chatID, state)

	case cb.Data == "skip:sub" && state.step == stepSubgroup:
		s.askFirstName(chatID, state)

	case cb.Data == "skip:first" && state.step == stepFirstName:
		state.step = stepLastName
		s.askLastName(chatID, state)

	case cb.Data == "skip:last" && state.step == stepLastName:
		s.finishRegistration(chatID, cb.From.ID, state, "")
	}
}

func (s *Server) processRole(chatID int64, state *regState, role string) {
	state.role = role

	if role == "teacher" {
		s.askFirstName(chatID, state)
		return
	}

	groups, err := s.store.Groups()
	if err != nil {
		s.logger.Error(err)
		s.reply(chatID, constants.InternalErrorMessage)
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, group := range groups {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(group.Name, fmt.Sprintf("grp:%d", group.ID)))
		if len(row) == 4 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	state.step = stepGroup
	s.replyMarkup(chatID, constants.ChooseGroupMessage, tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (s *Server) askFirstName(chatID int64, state *regState) {
	state.step = stepFirstName
	markup := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Пропустить", "skip:first"),
		),
	)
	s.replyMarkup(chatID, constants.EnterFirstNameMessage, markup)
}

// askLastName offers a skip button to students only: a teacher's last
// name is what replacement lookups match on.
func (s *Server) askLastName(chatID int64, state *regState) {
	if state.role == "teacher" {
		s.reply(chatID, constants.EnterLastNameMessage)
		return
	}
	markup := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Пропустить", "skip:last"),
		),
	)
	s.replyMarkup(chatID, constants.EnterLastNameMessage, markup)
}

// handleRegistrationText consumes free-text name input for an active
// registration. Reports whether the message was consumed.
func (s *Server) handleRegistrationText(update tgbotapi.Update) bool {
	chatID := update.Message.Chat.ID
	state, ok := s.reg.get(chatID)
	if !ok {
		return false
	}

	text := strings.TrimSpace(update.Message.Text)

	switch state.step {
	case stepFirstName:
		state.firstName = text
		state.step = stepLastName
		s.askLastName(chatID, state)
		return true

	case stepLastName:
		s.finishRegistration(chatID, update.Message.From.ID, state, text)
		return true
	}
	return false
}

func (s *Server) finishRegistration(chatID, userID int64, state *regState, lastName string) {
	if state.role == "teacher" && lastName == "" {
		s.reply(chatID, constants.EnterLastNameMessage)
		return
	}

	if err := s.store.CreateUser(userID, state.role); err != nil {
		s.logger.Error(err)
		s.reply(chatID, constants.InternalErrorMessage)
		return
	}

	var err error
	switch state.role {
	case "student":
		err = s.store.SaveStudent(userID, state.groupID, state.subgroup, state.firstName, lastName)
	case "teacher":
		err = s.store.SaveTeacher(userID, state.firstName, lastName)
	}
	if err != nil {
		s.logger.Error(err)
		s.reply(chatID, constants.InternalErrorMessage)
		return
	}

	s.reg.clear(chatID)
	s.reply(chatID, constants.RegistrationDoneMessage)
}
