package cli

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"shoejack/internal/game"
)

var (
	redCard   = pterm.NewStyle(pterm.FgRed, pterm.Bold)
	blackCard = pterm.NewStyle(pterm.FgDefault, pterm.Bold)
)

func cardText(c game.Card) string {
	if c.Suit.IsRed() {
		return redCard.Sprint(c.String())
	}

	return blackCard.Sprint(c.String())
}

func cardsText(cards []game.Card) string {
	s := make([]string, len(cards))
	for i, c := range cards {
		s[i] = cardText(c)
	}

	return strings.Join(s, "  ")
}

func totalText(total int) string {
	return pterm.White(fmt.Sprintf("(%d total)", total))
}

func money(v float64) string {
	return fmt.Sprintf("$%g", v)
}

// Observe renders engine events
func (a *App) Observe(ev game.Event) {
	switch ev.Kind {
	case game.EventShuffle:
		a.renderShuffle(ev.Shuffle)
	case game.EventDeal:
		if ev.Seat == game.SeatDealer {
			pterm.Println("Dealer cards:")
			pterm.Println(cardsText(ev.Hand) + "  ?")
			return
		}

		pterm.Println("Player cards:")
		pterm.Println(cardsText(ev.Hand))
		pterm.Println(totalText(ev.Total))
	case game.EventPlayerDraw, game.EventDealerDraw:
		spin("", a.cfg.SpinnerDelay/3)
		pterm.Println(cardsText(ev.Cards))
		pterm.Println(totalText(ev.Total))
	case game.EventDealerReveal:
		pterm.FgBlue.Println("Dealer cards:")
		pterm.Println(cardsText(ev.Hand))
		pterm.Println(totalText(ev.Total))
	case game.EventOutcome:
		a.renderResult(*ev.Result)
	}
}

func (a *App) renderShuffle(reason game.ShuffleReason) {
	switch reason {
	case game.ShuffleLowShoe:
		spin("The deck is running low, shuffling a new deck...", a.cfg.SpinnerDelay*2)
	case game.ShufflePending:
		spin("Shuffling new deck...", a.cfg.SpinnerDelay*2)
	case game.ShuffleEmptyShoe:
		pterm.Info.Println("Out of cards, the discards go back in the shoe")
	}
}

func (a *App) renderResult(res game.Result) {
	if res.PlayerState == game.PlayerBusted {
		pterm.FgRed.Println("Bust! You lose.")
	}

	switch res.Outcome {
	case game.OutcomePlayerWins:
		pterm.FgGreen.Println("You win!")
		if res.Natural {
			pterm.FgGreen.Println("Blackjack!")
		}
	case game.OutcomeDealerWins:
		pterm.FgRed.Println("Dealer wins!")
		if res.DealerNatural() {
			pterm.FgRed.Println("Dealer has a blackjack :(")
		}
	default:
		pterm.Println("Push!")
	}

	pterm.FgYellow.Printfln("Your balance: %s", money(res.Balance))
}

func (a *App) renderMenu() {
	color := pterm.FgGreen
	if a.balance <= 0 {
		color = pterm.FgRed
	}

	body := fmt.Sprintf("Chips owned: %s\n1. Play\n2. Get chips\n3. Save/Load\n4. Exit", color.Sprint(money(a.balance)))
	pterm.DefaultBox.
		WithTitle("Welcome to " + pterm.FgYellow.Sprint("BLACKJACK")).
		WithTitleTopLeft().
		Println(body)
}
