package main

import (
	"errors"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"

	"shoejack/internal/cli"
	"shoejack/internal/config"
	"shoejack/internal/database"
	"shoejack/internal/player"
	"shoejack/internal/savefile"
)

// localPlayer is the players row the terminal game keeps its balance in
const localPlayer = 0

func main() {
	cfg, err := config.Load()
	if err != nil {
		pterm.Fatal.Printfln("Failed to load config: %v", err)
	}

	log := cfg.Logger()
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			pterm.Fatal.Printfln("Failed to open log file: %v", err)
		}
		defer f.Close()

		log.SetOutput(f)
	} else if log.GetLevel() > logrus.WarnLevel {
		// keep the table readable
		log.SetLevel(logrus.WarnLevel)
	}

	var store player.BalanceStore = savefile.New(cfg.SavePath)
	if cfg.Store == config.StoreSQLite {
		db, err := database.New(cfg.DatabasePath)
		if err != nil {
			pterm.Fatal.Printfln("Failed to connect to database: %v", err)
		}
		defer db.Close()

		store = player.NewRepository(db.DB).BalanceStore(localPlayer)
	}

	app := cli.New(cfg, cli.Terminal{}, store, log)
	if err := app.Run(); err != nil && !errors.Is(err, io.EOF) {
		log.WithError(err).Error("terminal session ended")
		os.Exit(1)
	}
}
