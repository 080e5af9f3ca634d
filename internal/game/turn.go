package game

import (
	"errors"
	"strings"
)

// ErrUnknownAction is returned by ParseActionStrict for anything but hit or stand
var ErrUnknownAction = errors.New("action must be hit or stand")

// DealerStandsOn is the total the dealer stops drawing at
const DealerStandsOn = 17

// Action is a player decision
type Action int

const (
	ActionStand Action = iota
	ActionHit
)

func (a Action) String() string {
	if a == ActionHit {
		return "hit"
	}

	return "stand"
}

// ParseAction reads a player decision. Anything that is not hit is a stand.
func ParseAction(s string) Action {
	a, err := ParseActionStrict(s)
	if err != nil {
		return ActionStand
	}

	return a
}

// ParseActionStrict reads hit/h or stand/s, ignoring case
func ParseActionStrict(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hit", "h":
		return ActionHit, nil
	case "stand", "s":
		return ActionStand, nil
	}

	return ActionStand, ErrUnknownAction
}

// PlayerState is the state of the player's turn
type PlayerState int

const (
	PlayerDeciding PlayerState = iota
	PlayerBusted
	PlayerStanding
	// PlayerBlackjack is 21 reached by drawing. It is not a natural.
	PlayerBlackjack
)

func (s PlayerState) String() string {
	switch s {
	case PlayerBusted:
		return "busted"
	case PlayerStanding:
		return "standing"
	case PlayerBlackjack:
		return "blackjack"
	}

	return "deciding"
}

// PlayerView is what the player sees when deciding
type PlayerView struct {
	Hand   Hand
	Total  int
	UpCard Card
}

// Decider supplies the player's decisions
type Decider interface {
	Decide(view PlayerView) Action
}

// DeciderFunc adapts a function to a Decider
type DeciderFunc func(view PlayerView) Action

// Decide calls f(view)
func (f DeciderFunc) Decide(view PlayerView) Action {
	return f(view)
}

// View returns the player's view of the round
func (r *Round) View() PlayerView {
	return PlayerView{
		Hand:   r.Player.Clone(),
		Total:  r.Player.Score(),
		UpCard: r.Dealer[0],
	}
}

// Act applies one player decision and returns the new state
func (r *Round) Act(a Action, o Observer) PlayerState {
	if a != ActionHit {
		return PlayerStanding
	}

	card, reshuffled := r.DrawPlayer()
	if reshuffled {
		o.Observe(Event{Kind: EventShuffle, Shuffle: ShuffleEmptyShoe})
	}

	o.Observe(handEvent(EventPlayerDraw, SeatPlayer, r.Player, card))

	switch score := r.Player.Score(); {
	case score > Blackjack:
		return PlayerBusted
	case score == Blackjack:
		return PlayerBlackjack
	}

	return PlayerDeciding
}

// PlayerTurn asks d for decisions until the player busts, stands or reaches 21.
// A natural round has no player turn and returns PlayerStanding.
func PlayerTurn(r *Round, d Decider, o Observer) PlayerState {
	if o == nil {
		o = nopObserver{}
	}

	if r.Natural {
		return PlayerStanding
	}

	state := PlayerDeciding
	for state == PlayerDeciding {
		state = r.Act(d.Decide(r.View()), o)
	}

	return state
}

// DealerTurn reveals the hole card and draws until the dealer has 17 or more
func DealerTurn(r *Round, o Observer) {
	if o == nil {
		o = nopObserver{}
	}

	o.Observe(handEvent(EventDealerReveal, SeatDealer, r.Dealer, r.Dealer[1]))

	for r.Dealer.Score() < DealerStandsOn {
		card, reshuffled := r.DrawDealer()
		if reshuffled {
			o.Observe(Event{Kind: EventShuffle, Shuffle: ShuffleEmptyShoe})
		}

		o.Observe(handEvent(EventDealerDraw, SeatDealer, r.Dealer, card))
	}
}
