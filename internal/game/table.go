package game

import (
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrInvalidBet is returned when a bet is not in (0, balance]
var ErrInvalidBet = errors.New("bet must be greater than zero and no more than the balance")

// Result is the outcome of one round
type Result struct {
	ID uuid.UUID

	Player      Hand
	Dealer      Hand
	PlayerTotal int
	DealerTotal int
	PlayerState PlayerState
	Natural     bool

	Outcome    Outcome
	Multiplier float64
	Bet        float64
	// Payout is the amount credited back, bet included
	Payout float64
	// Balance is the balance after the bet and the payout
	Balance float64
}

// Net is the balance change of the round
func (r Result) Net() float64 {
	return r.Payout - r.Bet
}

// PlayerNatural is true when the player was dealt 21
func (r Result) PlayerNatural() bool {
	return r.Player.IsNatural()
}

// DealerNatural is true when the dealer was dealt 21
func (r Result) DealerNatural() bool {
	return r.Dealer.IsNatural()
}

// Table plays rounds against a shoe it owns between rounds
type Table struct {
	shoe     *Shoe
	decider  Decider
	observer Observer
	log      logrus.FieldLogger
}

// NewTable returns a table. A nil observer discards events and a nil
// logger uses the logrus standard logger.
func NewTable(shoe *Shoe, decider Decider, observer Observer, log logrus.FieldLogger) *Table {
	if observer == nil {
		observer = nopObserver{}
	}

	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Table{
		shoe:     shoe,
		decider:  decider,
		observer: observer,
		log:      log,
	}
}

// Shoe returns the table's shoe
func (t *Table) Shoe() *Shoe {
	return t.shoe
}

// PlayRound deducts the bet from balance, plays a full round and
// credits the payout. Result.Balance is the new balance.
func (t *Table) PlayRound(balance, bet float64) (Result, error) {
	if !(bet > 0 && bet <= balance) {
		return Result{Balance: balance}, ErrInvalidBet
	}

	res := Result{
		ID:  uuid.New(),
		Bet: bet,
	}

	log := t.log.WithFields(logrus.Fields{
		"round": res.ID.String(),
		"bet":   bet,
	})

	balance -= bet

	r, reshuffled := Deal(t.shoe)
	if reshuffled {
		log.Debug("shoe running low, reshuffled before the deal")
		t.observer.Observe(Event{Kind: EventShuffle, Shuffle: ShuffleLowShoe})
	}

	t.observer.Observe(handEvent(EventDeal, SeatPlayer, r.Player, r.Player...))
	t.observer.Observe(handEvent(EventDeal, SeatDealer, r.Dealer[:1], r.Dealer[0]))

	res.PlayerState = PlayerStanding
	if r.Natural {
		t.observer.Observe(handEvent(EventDealerReveal, SeatDealer, r.Dealer, r.Dealer[1]))
	} else {
		res.PlayerState = PlayerTurn(r, t.decider, t.observer)
		if res.PlayerState != PlayerBusted {
			DealerTurn(r, t.observer)
		}
	}

	res.Player = r.Player.Clone()
	res.Dealer = r.Dealer.Clone()
	res.PlayerTotal = r.PlayerScore()
	res.DealerTotal = r.DealerScore()
	res.Natural = r.Natural
	res.Outcome = Resolve(res.PlayerTotal, res.DealerTotal)
	res.Multiplier = Multiplier(res.Outcome, r.Natural)
	res.Payout = bet * res.Multiplier
	res.Balance = balance + res.Payout

	t.observer.Observe(Event{Kind: EventOutcome, Result: &res})

	if r.ReshufflePending {
		log.Debug("shoe ran out mid-round, reshuffling")
		t.shoe.Reshuffle()
		t.observer.Observe(Event{Kind: EventShuffle, Shuffle: ShufflePending})
	}

	log.WithFields(logrus.Fields{
		"outcome": res.Outcome.String(),
		"player":  res.PlayerTotal,
		"dealer":  res.DealerTotal,
		"payout":  res.Payout,
	}).Info("round finished")

	return res, nil
}
