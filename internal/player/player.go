package player

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"shoejack/internal/game"
)

var (
	// ErrInvalidAmount is returned when input is not a positive decimal number
	ErrInvalidAmount = errors.New("not a valid amount")
	// ErrInvalidBet is returned when a bet is not in (0, balance] or outside the table limits
	ErrInvalidBet = errors.New("invalid bet amount")
	// ErrInvalidDeposit is returned for deposits that are not greater than zero
	ErrInvalidDeposit = errors.New("deposit must be greater than zero")
	// ErrPersistence wraps every failure to save or load a balance
	ErrPersistence = errors.New("could not persist balance")
)

var amountPattern = regexp.MustCompile(`^[+]?[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)?$`)

// BalanceStore saves and loads a single balance
type BalanceStore interface {
	SaveBalance(balance float64) error
	LoadBalance() (float64, error)
}

type Player struct {
	ID      int64
	Balance float64
	Wins    int
	Losses  int
	Pushes  int
	Games   int
	LastBet float64
}

type Stats struct {
	ID      int64
	Balance float64
	Wins    int
	Games   int
	WinRate float64
}

// Limits are the table's bet bounds. A zero bound is not checked.
type Limits struct {
	Min float64
	Max float64
}

// ParseAmount reads a non-negative decimal number such as "10", "2.5" or "1e3"
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if !amountPattern.MatchString(s) {
		return 0, ErrInvalidAmount
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	return v, nil
}

// ValidateBet checks that 0 < bet <= balance and that the bet is within limits
func ValidateBet(bet, balance float64, limits Limits) error {
	if !(bet > 0 && bet <= balance) {
		return ErrInvalidBet
	}

	if limits.Min > 0 && bet < limits.Min {
		return ErrInvalidBet
	}

	if limits.Max > 0 && bet > limits.Max {
		return ErrInvalidBet
	}

	return nil
}

// ValidateDeposit checks that amount > 0
func ValidateDeposit(amount float64) error {
	if !(amount > 0) || math.IsInf(amount, 1) {
		return ErrInvalidDeposit
	}

	return nil
}

// Deposit adds chips to the balance
func (p *Player) Deposit(amount float64) error {
	if err := ValidateDeposit(amount); err != nil {
		return err
	}

	p.Balance += amount
	return nil
}

// Record applies a finished round to the balance and the stats
func (p *Player) Record(res game.Result) {
	p.Balance = res.Balance
	p.LastBet = res.Bet
	p.Games++

	switch res.Outcome {
	case game.OutcomePlayerWins:
		p.Wins++
	case game.OutcomePush:
		p.Pushes++
	default:
		p.Losses++
	}
}

func (p *Player) CanAfford(amount float64) bool {
	return p.Balance >= amount
}

func (p *Player) WinRate() float64 {
	if p.Games == 0 {
		return 0
	}
	return float64(p.Wins) / float64(p.Games) * 100
}

// Stats is the leaderboard view of the player
func (p *Player) Stats() Stats {
	return Stats{
		ID:      p.ID,
		Balance: p.Balance,
		Wins:    p.Wins,
		Games:   p.Games,
		WinRate: p.WinRate(),
	}
}
