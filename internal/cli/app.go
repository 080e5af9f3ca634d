package cli

import (
	"errors"
	"strings"

	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"

	"shoejack/internal/config"
	"shoejack/internal/game"
	"shoejack/internal/player"
)

// App is the terminal blackjack session. It owns the balance.
type App struct {
	cfg     *config.Config
	console Console
	store   player.BalanceStore
	log     logrus.FieldLogger
	newShoe func() *game.Shoe

	balance float64
}

func New(cfg *config.Config, console Console, store player.BalanceStore, log logrus.FieldLogger) *App {
	return &App{
		cfg:     cfg,
		console: console,
		store:   store,
		log:     log,
		newShoe: func() *game.Shoe {
			return game.NewSeededShoe(cfg.Seed)
		},
	}
}

// WithShoe replaces the shoe used for each play session
func (a *App) WithShoe(newShoe func() *game.Shoe) *App {
	a.newShoe = newShoe
	return a
}

// Balance returns the current chip balance
func (a *App) Balance() float64 {
	return a.balance
}

// Run shows the main menu until the player exits or input fails
func (a *App) Run() error {
	for {
		a.renderMenu()

		key, err := a.console.Input("Choose an option (1-4)")
		if err != nil {
			return err
		}

		switch strings.TrimSpace(key) {
		case "1":
			if !a.canBet() {
				pterm.Error.Println("No money! Please deposit money first.")
				continue
			}

			if err := a.play(); err != nil {
				return err
			}
		case "2":
			if err := a.deposit(); err != nil {
				return err
			}
		case "3":
			if err := a.saveLoad(); err != nil {
				return err
			}
		case "4":
			return nil
		default:
			pterm.Error.Println("Not a valid option. Try again")
		}
	}
}

func (a *App) limits() player.Limits {
	return player.Limits{Min: a.cfg.MinBet, Max: a.cfg.MaxBet}
}

func (a *App) canBet() bool {
	return a.balance > 0 && a.balance >= a.cfg.MinBet
}

func (a *App) play() error {
	table := game.NewTable(a.newShoe(), a, a, a.log)
	spin("Shuffling...", a.cfg.SpinnerDelay)

	for {
		bet, err := a.collectBet()
		if err != nil {
			return err
		}

		pterm.FgYellow.Printfln("Chips owned: %s | Bet amount: %s", money(a.balance-bet), money(bet))

		res, err := table.PlayRound(a.balance, bet)
		if err != nil {
			// collectBet already validated the bet
			return err
		}

		a.balance = res.Balance

		if !a.canBet() {
			_, err := a.console.Input(pterm.FgRed.Sprint("Out of money! Press enter to continue."))
			return err
		}

		again, err := a.console.Input("Do you want to play again? (y/n)")
		if err != nil {
			return err
		}

		if strings.ToLower(strings.TrimSpace(again)) != "y" {
			return nil
		}
	}
}

func (a *App) collectBet() (float64, error) {
	maxBet := a.balance
	if a.cfg.MaxBet > 0 && a.cfg.MaxBet < maxBet {
		maxBet = a.cfg.MaxBet
	}

	for {
		pterm.Printfln("Chips owned: %s", pterm.FgGreen.Sprint(money(a.balance)))

		in, err := a.console.Input("Enter a bet amount: (minimum = " + money(a.cfg.MinBet) + ", maximum = " + money(maxBet) + ")")
		if err != nil {
			return 0, err
		}

		bet, err := player.ParseAmount(in)
		if err == nil {
			err = player.ValidateBet(bet, a.balance, a.limits())
		}

		if err != nil {
			pterm.Error.Println("Invalid amount. Please try again")
			continue
		}

		return bet, nil
	}
}

// Decide asks the player to hit or stand. Input failures stand.
func (a *App) Decide(view game.PlayerView) game.Action {
	for {
		in, err := a.console.Input("Do you want to hit or stand?")
		if err != nil {
			a.log.WithError(err).Warn("could not read action, standing")
			return game.ActionStand
		}

		if !a.cfg.StrictActions {
			return game.ParseAction(in)
		}

		action, err := game.ParseActionStrict(in)
		if errors.Is(err, game.ErrUnknownAction) {
			pterm.Error.Printfln("Please type hit or stand (you have %d)", view.Total)
			continue
		}

		return action
	}
}

func (a *App) deposit() error {
	for {
		in, err := a.console.Input("Enter the amount")
		if err != nil {
			return err
		}

		amount, err := player.ParseAmount(in)
		if err == nil {
			err = player.ValidateDeposit(amount)
		}

		if err != nil {
			pterm.Error.Println("Please enter a valid number.")
			continue
		}

		spin("Getting chips...", a.cfg.SpinnerDelay)
		a.balance += amount
		return nil
	}
}

func (a *App) saveLoad() error {
	pterm.Println("Choose an option:\n1) Save\n2) Load")

	key, err := a.console.Input("(1/2)")
	if err != nil {
		return err
	}

	switch strings.TrimSpace(key) {
	case "1":
		spin("Saving...", a.cfg.SpinnerDelay)
		if err := a.store.SaveBalance(a.balance); err != nil {
			a.log.WithError(err).Error("could not save balance")
			pterm.Error.Printfln("Save failed: %v", err)
			return nil
		}

		pterm.Success.Println("Save successful.")
	case "2":
		spin("Loading...", a.cfg.SpinnerDelay)
		balance, err := a.store.LoadBalance()
		if err != nil {
			a.log.WithError(err).Error("could not load balance")
			pterm.Error.Printfln("Load failed: %v", err)
			return nil
		}

		a.balance = balance
		pterm.Success.Println("Load successful.")
	default:
		pterm.Error.Println("Failed. Try again")
	}

	return nil
}
