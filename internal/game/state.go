package game

// Round holds the state of a single round. It is dropped when the round ends.
type Round struct {
	Player Hand
	Dealer Hand

	// Natural is set when either opening hand is worth 21
	Natural bool
	// ReshufflePending is set when the shoe ran dry mid-round.
	// The shoe is reshuffled again before the next round starts.
	ReshufflePending bool

	shoe *Shoe
}

// Deal starts a round by dealing two cards each, player first.
// The shoe is reshuffled first when fewer than four cards are left;
// the returned bool reports that.
func Deal(shoe *Shoe) (*Round, bool) {
	reshuffled := false
	if !shoe.CanDraw(4) {
		shoe.Reshuffle()
		reshuffled = true
	}

	r := &Round{
		Player: make(Hand, 0, 6),
		Dealer: make(Hand, 0, 6),
		shoe:   shoe,
	}

	r.Player = append(r.Player, r.mustDraw(), r.mustDraw())
	r.Dealer = append(r.Dealer, r.mustDraw(), r.mustDraw())

	shoe.Recycle(r.Player...)
	shoe.Recycle(r.Dealer...)

	r.Natural = r.Player.Score() == Blackjack || r.Dealer.Score() == Blackjack
	return r, reshuffled
}

func (r *Round) mustDraw() Card {
	card, err := r.shoe.Draw()
	if err != nil {
		// a full deck is always recoverable through the discard pool
		panic(err)
	}

	return card
}

// draw appends one card to h. An empty shoe is refilled from the discard
// pool first, and the returned bool reports that.
func (r *Round) draw(h *Hand) (Card, bool) {
	reshuffled := false
	if !r.shoe.CanDraw(1) {
		r.shoe.Reshuffle()
		r.ReshufflePending = true
		reshuffled = true
	}

	card := r.mustDraw()
	*h = append(*h, card)
	r.shoe.Recycle(card)

	return card, reshuffled
}

// DrawPlayer draws one card into the player's hand
func (r *Round) DrawPlayer() (Card, bool) {
	return r.draw(&r.Player)
}

// DrawDealer draws one card into the dealer's hand
func (r *Round) DrawDealer() (Card, bool) {
	return r.draw(&r.Dealer)
}

// PlayerScore returns the player's hand total
func (r *Round) PlayerScore() int {
	return r.Player.Score()
}

// DealerScore returns the dealer's hand total
func (r *Round) DealerScore() int {
	return r.Dealer.Score()
}
