package game

// noShuffle leaves cards in place so tests can stack the shoe
type noShuffle struct{}

func (noShuffle) Shuffle(int, func(i, j int)) {}

// cards builds cards of the given ranks, cycling through the suits
func cards(ranks ...Rank) []Card {
	c := make([]Card, len(ranks))
	for i, r := range ranks {
		c[i] = Card{Rank: r, Suit: suits[i%len(suits)]}
	}

	return c
}

func stacked(ranks ...Rank) *Shoe {
	return NewStackedShoe(noShuffle{}, cards(ranks...)...)
}

// always returns a Decider that makes the same decision every time
func always(a Action) Decider {
	return DeciderFunc(func(PlayerView) Action {
		return a
	})
}

type recorder struct {
	events []Event
}

func (r *recorder) Observe(ev Event) {
	r.events = append(r.events, ev)
}

func (r *recorder) kinds() []EventKind {
	k := make([]EventKind, len(r.events))
	for i, ev := range r.events {
		k[i] = ev.Kind
	}

	return k
}

func (r *recorder) shuffles() []ShuffleReason {
	var s []ShuffleReason
	for _, ev := range r.events {
		if ev.Kind == EventShuffle {
			s = append(s, ev.Shuffle)
		}
	}

	return s
}

func (s *Shoe) all() []Card {
	all := make([]Card, 0, len(s.cards)+len(s.discards))
	all = append(all, s.cards...)
	return append(all, s.discards...)
}
