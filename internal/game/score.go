package game

import "strings"

// Blackjack is the best possible hand score
const Blackjack = 21

// Hand is the ordered cards held by one seat for a round
type Hand []Card

// CalculateScore returns the best total of the cards. Aces count 11
// and are softened to 1, one at a time, while the total is over 21.
func CalculateScore(cards []Card) int {
	if len(cards) == 0 {
		panic("score of an empty hand")
	}

	score := 0
	aces := 0

	for _, card := range cards {
		score += card.Points()
		if card.Rank == Ace {
			aces++
		}
	}

	for score > Blackjack && aces > 0 {
		score -= 10
		aces--
	}

	return score
}

// Score returns the hand total
func (h Hand) Score() int {
	return CalculateScore(h)
}

// IsNatural is true for a two card 21
func (h Hand) IsNatural() bool {
	return len(h) == 2 && h.Score() == Blackjack
}

// IsBust is true when the hand is over 21
func (h Hand) IsBust() bool {
	return h.Score() > Blackjack
}

// Clone returns a copy that does not share the backing array
func (h Hand) Clone() Hand {
	h2 := make(Hand, len(h))
	copy(h2, h)

	return h2
}

func (h Hand) String() string {
	s := make([]string, len(h))
	for i, c := range h {
		s[i] = c.String()
	}

	return strings.Join(s, " ")
}
