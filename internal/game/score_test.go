package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateScore(t *testing.T) {
	tests := []struct {
		name    string
		hand    Hand
		score   int
		natural bool
		bust    bool
	}{
		{"blackjack", cards(Ace, King), 21, true, false},
		{"double ace", cards(Ace, Ace), 12, false, false},
		{"four aces", cards(Ace, Ace, Ace, Ace), 14, false, false},
		{"soft 17", cards(Ace, Six), 17, false, false},
		{"bust rescue", cards(Ace, Five, Eight), 14, false, false},
		{"three card 21", cards(Seven, Seven, Seven), 21, false, false},
		{"two aces and nine", cards(Ace, Ace, Nine), 21, false, false},
		{"faces", cards(Jack, Queen), 20, false, false},
		{"bust", cards(Ten, Five, Eight), 23, false, true},
		{"bust with ace", cards(King, Queen, Ace, Ace), 22, false, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := assert.New(t)
			a.Equal(tc.score, tc.hand.Score())
			a.Equal(tc.score, tc.hand.Score(), "score is idempotent")
			a.Equal(tc.natural, tc.hand.IsNatural())
			a.Equal(tc.bust, tc.hand.IsBust())
		})
	}
}

func TestCalculateScore_OrderIndependent(t *testing.T) {
	a := assert.New(t)
	a.Equal(CalculateScore(cards(Ace, Five, Ace, Nine)), CalculateScore(cards(Nine, Ace, Ace, Five)))
	a.Equal(CalculateScore(cards(Ace, King)), CalculateScore(cards(King, Ace)))
}

func TestCalculateScore_EmptyHand(t *testing.T) {
	assert.Panics(t, func() { CalculateScore(nil) })
}

func TestHand_Clone(t *testing.T) {
	a := assert.New(t)
	h := Hand(cards(Two, Three))
	h2 := h.Clone()
	h2[0] = Card{Rank: King, Suit: Spades}

	a.Equal(Two, h[0].Rank)
	a.Equal("2♥ 3♦", h.String())
}
