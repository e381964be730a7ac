package server

import (
	"errors"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"zamenabot/internal/bells"
	"zamenabot/internal/replacements"
	"zamenabot/internal/store"
)

// Config ...
type Config struct {
	LogLevel string               `toml:"log_level"`
	BotToken string               `toml:"bot_token"`
	Store    *store.Config        `toml:"store"`
	Changes  *replacements.Config `toml:"changes"`
	Bells    bells.Config         `toml:"bells"`
}

// NewConfig ...
func NewConfig() *Config {
	return &Config{
		LogLevel: "debug",
		Store:    store.NewConfig(),
		Changes:  replacements.NewConfig(),
	}
}

func (c *Config) validate() error {
	if c.BotToken == "" {
		return errors.New("bot_token is required")
	}
	if c.Store.DatabaseURL == "" {
		return errors.New("store: database_url is required")
	}
	return c.Changes.Validate()
}

// Server ...
type Server struct {
	config      *Config
	logger      *logrus.Logger
	store       *store.Store
	bot         *tgbotapi.BotAPI
	updatesConf tgbotapi.UpdateConfig
	manager     *replacements.Manager
	bells       *bells.Schedule
	cron        *cron.Cron
	reg         *registration
}

// New ...
func New(config *Config) *Server {
	return &Server{
		config: config,
		logger: logrus.New(),
		reg:    newRegistration(),
	}
}

// Start ...
func (s *Server) Start() error {
	if err := s.config.validate(); err != nil {
		return err
	}

	if err := s.configureLogger(); err != nil {
		return err
	}

	if err := s.configureStore(); err != nil {
		return err
	}

	s.configureManager()

	if err := s.configureBot(); err != nil {
		return err
	}

	s.configureBotUpdates()

	if err := s.configureCron(); err != nil {
		return err
	}

	s.logger.Info("Telegram bot started!")

	s.handleBotUpdates()

	return nil
}

func (s *Server) configureLogger() error {
	level, err := logrus.ParseLevel(s.config.LogLevel)
	if err != nil {
		return err
	}
	s.logger.SetLevel(level)
	return nil
}

func (s *Server) configureStore() error {
	st := store.New(s.config.Store)
	if err := st.Open(); err != nil {
		return err
	}
	s.store = st
	return nil
}

func (s *Server) configureManager() {
	schedule := replacements.NewSchedule(s.config.Changes)
	s.manager = replacements.NewManager(schedule, s.config.Changes, s.logger)
	s.bells = bells.New(s.config.Bells)
}

func (s *Server) configureBot() error {
	bot, err := tgbotapi.NewBotAPI(s.config.BotToken)
	if err != nil {
		return err
	}
	s.bot = bot
	log.Printf("Authorized on account %s", bot.Self.UserName)
	return nil
}

func (s *Server) configureBotUpdates() {
	s.updatesConf = tgbotapi.NewUpdate(0)
	s.updatesConf.Timeout = 60
}

// configureCron does one synchronous refresh and then keeps the
// replacement snapshots fresh on a timer. A failed cycle is logged and
// retried on the next tick, it never stops the schedule.
func (s *Server) configureCron() error {
	if err := s.manager.Refresh(); err != nil {
		s.logger.Error(err)
	}

	c := cron.New()
	spec := fmt.Sprintf("@every %dm", s.config.Changes.UpdatePeriodMin)
	_, err := c.AddFunc(spec, func() {
		if err := s.manager.Refresh(); err != nil {
			s.logger.Error(err)
		}
	})
	if err != nil {
		return err
	}
	c.Start()
	s.cron = c
	return nil
}

// handleBotUpdates ...
func (s *Server) handleBotUpdates() {
	updates := s.bot.GetUpdatesChan(s.updatesConf)
	for update := range updates {
		if update.CallbackQuery != nil {
			s.handleCallback(update)
			continue
		}
		if update.Message == nil {
			continue
		}
		s.logger.Info("Incoming message: " + update.Message.Text)

		switch update.Message.Command() {
		case "start":
			s.handleStartCommand(update)

		case "help":
			s.handleHelpCommand(update)

		case "bells":
			s.handleBellsCommand(update)

		case "week":
			s.handleWeekCommand(update)

		case "currweek":
			s.handleCurrWeekCommand(update)

		case "nextweek":
			s.handleNextWeekCommand(update)

		case "changes":
			s.handleChangesCommand(update)

		case "register":
			s.handleRegisterCommand(update)

		case "unregister":
			s.handleUnregisterCommand(update)

		case "cancel":
			s.handleCancelCommand(update)

		default:
			s.handleDefaultMessage(update)
		}
	}
}

// reply escapes the text for MarkdownV2 and sends it.
func (s *Server) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, escapeMarkdown(text))
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	if _, err := s.bot.Send(msg); err != nil {
		s.logger.Error(err)
	}
}

// replyMarkup sends unescaped text with an inline keyboard attached.
func (s *Server) replyMarkup(chatID int64, text string, markup tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = markup
	if _, err := s.bot.Send(msg); err != nil {
		s.logger.Error(err)
	}
}
