package player

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"shoejack/internal/game"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"10", 10, true},
		{" 2.5 ", 2.5, true},
		{".5", 0.5, true},
		{"+7", 7, true},
		{"1e3", 1000, true},
		{"-5", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"Inf", 0, false},
		{"1.2.3", 0, false},
	}

	for _, tc := range tests {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			assert.NoError(t, err, tc.in)
			assert.Equal(t, tc.want, got, tc.in)
		} else {
			assert.Equal(t, ErrInvalidAmount, err, tc.in)
		}
	}
}

func TestValidateBet(t *testing.T) {
	a := assert.New(t)

	a.NoError(ValidateBet(100, 100, Limits{}))
	a.NoError(ValidateBet(0.5, 100, Limits{}))
	a.Equal(ErrInvalidBet, ValidateBet(0, 100, Limits{}))
	a.Equal(ErrInvalidBet, ValidateBet(-1, 100, Limits{}))
	a.Equal(ErrInvalidBet, ValidateBet(101, 100, Limits{}))
	a.Equal(ErrInvalidBet, ValidateBet(math.NaN(), 100, Limits{}))

	limits := Limits{Min: 10, Max: 50}
	a.Equal(ErrInvalidBet, ValidateBet(5, 100, limits))
	a.Equal(ErrInvalidBet, ValidateBet(60, 100, limits))
	a.NoError(ValidateBet(50, 100, limits))
}

func TestPlayer_Deposit(t *testing.T) {
	a := assert.New(t)
	p := &Player{}

	a.NoError(p.Deposit(25))
	a.Equal(25.0, p.Balance)

	a.Equal(ErrInvalidDeposit, p.Deposit(0))
	a.Equal(ErrInvalidDeposit, p.Deposit(-3))
	a.Equal(ErrInvalidDeposit, p.Deposit(math.NaN()))
	a.Equal(ErrInvalidDeposit, p.Deposit(math.Inf(1)))
	a.Equal(25.0, p.Balance)
	a.True(p.CanAfford(25))
	a.False(p.CanAfford(25.01))
}

func TestPlayer_Record(t *testing.T) {
	a := assert.New(t)
	p := &Player{Balance: 100}

	p.Record(game.Result{Outcome: game.OutcomePlayerWins, Bet: 10, Balance: 110})
	p.Record(game.Result{Outcome: game.OutcomeDealerWins, Bet: 20, Balance: 90})
	p.Record(game.Result{Outcome: game.OutcomePush, Bet: 30, Balance: 90})
	p.Record(game.Result{Outcome: game.OutcomePlayerWins, Bet: 10, Balance: 115})

	a.Equal(115.0, p.Balance)
	a.Equal(10.0, p.LastBet)
	a.Equal(4, p.Games)
	a.Equal(2, p.Wins)
	a.Equal(1, p.Losses)
	a.Equal(1, p.Pushes)
	a.Equal(50.0, p.WinRate())
	a.Equal(0.0, (&Player{}).WinRate())
}
