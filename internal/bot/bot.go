package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"shoejack/internal/config"
	"shoejack/internal/player"
)

type Bot struct {
	api     *tgbotapi.BotAPI
	handler *Handler
	log     logrus.FieldLogger
}

func New(cfg *config.Config, repo player.Repository, log logrus.FieldLogger) (*Bot, error) {
	if err := cfg.RequireBotToken(); err != nil {
		return nil, err
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}

	return &Bot{
		api:     api,
		handler: NewHandler(api, cfg, repo, log),
		log:     log,
	}, nil
}

func (b *Bot) Run() error {
	b.log.WithField("username", b.api.Self.UserName).Info("bot started")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if update.CallbackQuery != nil {
			go b.handler.HandleCallback(update.CallbackQuery)
			continue
		}

		if update.Message != nil {
			go b.handler.HandleMessage(update.Message)
		}
	}

	return nil
}
