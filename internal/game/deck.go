package game

import (
	"errors"
	"math/rand"
	"time"
)

// ErrEmptyShoe is returned by Draw when no cards are left in the shoe
var ErrEmptyShoe = errors.New("shoe is empty")

// Randomizer permutes n elements by calling swap. *rand.Rand satisfies it.
type Randomizer interface {
	Shuffle(n int, swap func(i, j int))
}

// Shoe holds the cards left to draw and the cards already dealt.
// Every card of the deck is in exactly one of the two.
type Shoe struct {
	cards    []Card
	discards []Card
	rng      Randomizer
}

// NewShoe returns a shuffled single-deck shoe with an empty discard pool
func NewShoe(rng Randomizer) *Shoe {
	s := &Shoe{
		cards:    NewDeck(),
		discards: make([]Card, 0, DeckSize),
		rng:      rng,
	}

	s.shuffle()
	return s
}

// NewSeededShoe returns a shoe shuffled by a math/rand source.
// A seed of 0 seeds from the clock.
func NewSeededShoe(seed int64) *Shoe {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return NewShoe(rand.New(rand.NewSource(seed))) // nolint:gosec
}

// NewStackedShoe returns a shoe that draws cards in the given order.
// Reshuffles still go through rng.
func NewStackedShoe(rng Randomizer, cards ...Card) *Shoe {
	c := make([]Card, len(cards))
	copy(c, cards)

	return &Shoe{
		cards:    c,
		discards: make([]Card, 0, DeckSize),
		rng:      rng,
	}
}

func (s *Shoe) shuffle() {
	s.rng.Shuffle(len(s.cards), func(i, j int) {
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	})
}

// Draw removes and returns the top card
func (s *Shoe) Draw() (Card, error) {
	if len(s.cards) == 0 {
		return Card{}, ErrEmptyShoe
	}

	card := s.cards[0]
	s.cards = s.cards[1:]
	return card, nil
}

// Recycle puts cards in the discard pool. It does not shuffle.
func (s *Shoe) Recycle(cards ...Card) {
	s.discards = append(s.discards, cards...)
}

// Reshuffle moves every discarded card back into the shoe and shuffles
func (s *Shoe) Reshuffle() {
	cards := make([]Card, 0, len(s.cards)+len(s.discards))
	cards = append(cards, s.cards...)
	cards = append(cards, s.discards...)

	s.cards = cards
	s.discards = s.discards[:0]
	s.shuffle()
}

// CanDraw returns true if there are at least want cards left
func (s *Shoe) CanDraw(want int) bool {
	return len(s.cards) >= want
}

// Remaining returns the number of drawable cards
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// Discarded returns the size of the discard pool
func (s *Shoe) Discarded() int {
	return len(s.discards)
}
