package game

// Seat identifies who holds a hand
type Seat int

const (
	SeatPlayer Seat = iota
	SeatDealer
)

func (s Seat) String() string {
	if s == SeatDealer {
		return "dealer"
	}

	return "player"
}

// EventKind is the engine step an Event reports
type EventKind int

const (
	// EventShuffle is sent when the shoe is reshuffled
	EventShuffle EventKind = iota
	// EventDeal is sent once per seat after the opening deal.
	// The dealer event only reveals the up card.
	EventDeal
	EventPlayerDraw
	// EventDealerReveal is sent when the dealer turns the hole card
	EventDealerReveal
	EventDealerDraw
	EventOutcome
)

// ShuffleReason tells why a reshuffle happened
type ShuffleReason int

const (
	// ShuffleLowShoe happens before the opening deal when fewer than four cards are left
	ShuffleLowShoe ShuffleReason = iota
	// ShuffleEmptyShoe happens mid-round when a draw finds the shoe empty
	ShuffleEmptyShoe
	// ShufflePending happens after a round that reshuffled mid-round
	ShufflePending
)

// Event is a plain data snapshot of an engine step for presentation
type Event struct {
	Kind EventKind
	Seat Seat

	// Cards are the cards newly revealed by this step
	Cards []Card
	// Hand is the visible part of the seat's hand after this step
	Hand Hand
	// Total is the score of Hand
	Total int

	Shuffle ShuffleReason
	// Result is set on EventOutcome
	Result *Result
}

// Observer receives engine events
type Observer interface {
	Observe(ev Event)
}

// ObserverFunc adapts a function to an Observer
type ObserverFunc func(ev Event)

// Observe calls f(ev)
func (f ObserverFunc) Observe(ev Event) {
	f(ev)
}

type nopObserver struct{}

func (nopObserver) Observe(Event) {}

func handEvent(kind EventKind, seat Seat, hand Hand, revealed ...Card) Event {
	return Event{
		Kind:  kind,
		Seat:  seat,
		Cards: revealed,
		Hand:  hand.Clone(),
		Total: hand.Score(),
	}
}
