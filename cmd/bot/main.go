package main

import (
	"github.com/sirupsen/logrus"

	"shoejack/internal/bot"
	"shoejack/internal/config"
	"shoejack/internal/database"
	"shoejack/internal/player"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}

	log := cfg.Logger()

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	log.WithField("path", cfg.DatabasePath).Info("database connected")

	playerRepo := player.NewRepository(db.DB)

	b, err := bot.New(cfg, playerRepo, log)
	if err != nil {
		log.WithError(err).Fatal("failed to create bot")
	}

	if err := b.Run(); err != nil {
		log.WithError(err).Fatal("bot stopped")
	}
}
