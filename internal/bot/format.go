package bot

import (
	"fmt"
	"strings"

	"shoejack/internal/game"
	"shoejack/internal/player"
)

func formatHand(h game.Hand) string {
	return "[" + h.String() + "]"
}

// formatEvent renders one engine event as a chat line. Outcomes are
// rendered by formatGameEnd instead.
func formatEvent(ev game.Event) string {
	switch ev.Kind {
	case game.EventShuffle:
		return "🔀 Дилер тасует карты"
	case game.EventDeal:
		if ev.Seat == game.SeatDealer {
			return fmt.Sprintf("🃏 Дилер: [%s, ?]", ev.Hand[0])
		}
		return fmt.Sprintf("🎴 Вы: %s (%d)", formatHand(ev.Hand), ev.Total)
	case game.EventPlayerDraw:
		return fmt.Sprintf("🎴 Вы берёте %s: %s (%d)", ev.Cards[0], formatHand(ev.Hand), ev.Total)
	case game.EventDealerReveal:
		return fmt.Sprintf("🃏 Дилер открывает: %s (%d)", formatHand(ev.Hand), ev.Total)
	case game.EventDealerDraw:
		return fmt.Sprintf("🃏 Дилер берёт %s: %s (%d)", ev.Cards[0], formatHand(ev.Hand), ev.Total)
	}

	return ""
}

func resultText(res game.Result) string {
	switch res.Outcome {
	case game.OutcomePlayerWins:
		if res.Natural {
			return "🎰 BLACKJACK! 🎰"
		}
		if res.DealerTotal > game.Blackjack {
			return "🎉 Дилер перебрал! Вы выиграли!"
		}
		return "🎉 Вы выиграли!"
	case game.OutcomePush:
		return "🤝 Ничья!"
	}

	if res.PlayerState == game.PlayerBusted {
		return "💥 Перебор! Вы проиграли!"
	}
	if res.DealerNatural() {
		return "🎰 BLACKJACK у дилера!"
	}
	return "😔 Дилер выиграл!"
}

func formatGameEnd(history string, res game.Result, p *player.Player) string {
	var sb strings.Builder
	if history != "" {
		sb.WriteString(history)
		sb.WriteString("\n\n")
	}

	sb.WriteString(fmt.Sprintf("🎴 Вы: %s (%d)\n🃏 Дилер: %s (%d)\n\n%s",
		formatHand(res.Player), res.PlayerTotal, formatHand(res.Dealer), res.DealerTotal, resultText(res)))

	if res.Net() > 0 {
		sb.WriteString(fmt.Sprintf("\n💰 Выигрыш: +%g (x%g)", res.Net(), res.Multiplier))
	}
	sb.WriteString(fmt.Sprintf("\n💵 Баланс: %g", p.Balance))

	return sb.String()
}
