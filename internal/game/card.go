package game

import "fmt"

// Rank is a card rank. Ace is 1, face cards are 11 through 13.
type Rank int

const (
	Ace   Rank = 1
	Two   Rank = 2
	Three Rank = 3
	Four  Rank = 4
	Five  Rank = 5
	Six   Rank = 6
	Seven Rank = 7
	Eight Rank = 8
	Nine  Rank = 9
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
)

// Suit is a card suit
type Suit string

const (
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
	Spades   Suit = "spades"
)

var (
	suits = []Suit{Hearts, Diamonds, Clubs, Spades}
	ranks = []Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}
)

// DeckSize is the number of cards in a single deck
const DeckSize = 52

// Card is an immutable playing card
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

// NewDeck returns a single unshuffled deck, suit by suit
func NewDeck() []Card {
	cards := make([]Card, 0, DeckSize)
	for _, suit := range suits {
		for _, rank := range ranks {
			cards = append(cards, Card{Rank: rank, Suit: suit})
		}
	}

	return cards
}

// Points is the pip value of the card with aces counted high
func (c Card) Points() int {
	switch {
	case c.Rank == Ace:
		return 11
	case c.Rank >= Two && c.Rank <= Ten:
		return int(c.Rank)
	case c.Rank >= Jack && c.Rank <= King:
		return 10
	}

	panic(fmt.Sprintf("unknown rank %d", c.Rank))
}

func (r Rank) String() string {
	switch r {
	case Ace:
		return "Ace"
	case Jack:
		return "Jack"
	case Queen:
		return "Queen"
	case King:
		return "King"
	}

	return fmt.Sprintf("%d", int(r))
}

// Symbol is the short form used on card faces
func (r Rank) Symbol() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	}

	return fmt.Sprintf("%d", int(r))
}

// Symbol returns the suit glyph
func (s Suit) Symbol() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	}

	panic(fmt.Sprintf("unknown suit %q", string(s)))
}

// IsRed is true for hearts and diamonds
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

func (c Card) String() string {
	return c.Rank.Symbol() + c.Suit.Symbol()
}
