package game

// Outcome is who won the round
type Outcome int

const (
	OutcomeDealerWins Outcome = iota
	OutcomePlayerWins
	OutcomePush
)

func (o Outcome) String() string {
	switch o {
	case OutcomePlayerWins:
		return "player"
	case OutcomePush:
		return "push"
	}

	return "dealer"
}

// payout multipliers applied to the bet
const (
	BlackjackPays = 2.5
	WinPays       = 2.0
	PushPays      = 1.0
)

// Resolve compares final totals. A player bust loses even if the dealer busts too.
func Resolve(player, dealer int) Outcome {
	switch {
	case player > Blackjack:
		return OutcomeDealerWins
	case dealer > Blackjack:
		return OutcomePlayerWins
	case player > dealer:
		return OutcomePlayerWins
	case dealer > player:
		return OutcomeDealerWins
	}

	return OutcomePush
}

// Multiplier returns how many times the bet is paid back
func Multiplier(o Outcome, natural bool) float64 {
	switch o {
	case OutcomePlayerWins:
		if natural {
			return BlackjackPays
		}

		return WinPays
	case OutcomePush:
		return PushPays
	}

	return 0
}
