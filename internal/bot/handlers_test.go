package bot

import (
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoejack/internal/config"
	"shoejack/internal/game"
	"shoejack/internal/player"
)

type fakeSender struct {
	mu        sync.Mutex
	messages  []tgbotapi.MessageConfig
	callbacks []tgbotapi.CallbackConfig
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.messages = append(f.messages, msg)
	}

	return tgbotapi.Message{}, nil
}

func (f *fakeSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if cb, ok := c.(tgbotapi.CallbackConfig); ok {
		f.callbacks = append(f.callbacks, cb)
	}

	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

func (f *fakeSender) lastText() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.messages) == 0 {
		return ""
	}
	return f.messages[len(f.messages)-1].Text
}

func (f *fakeSender) hasKeyboard(kb tgbotapi.InlineKeyboardMarkup) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, m := range f.messages {
		if assert.ObjectsAreEqual(kb, m.ReplyMarkup) {
			return true
		}
	}
	return false
}

type memRepo struct {
	mu      sync.Mutex
	players map[int64]player.Player
	// beforeSave, when set, runs at the start of every Save
	beforeSave func()
}

func (r *memRepo) GetOrCreate(id int64, startBalance, defaultBet float64) (*player.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[id]
	if !ok {
		p = player.Player{ID: id, Balance: startBalance, LastBet: defaultBet}
		r.players[id] = p
	}
	return &p, nil
}

func (r *memRepo) Save(p *player.Player) error {
	if r.beforeSave != nil {
		r.beforeSave()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.players[p.ID] = *p
	return nil
}

func (r *memRepo) GetTopByBalance(limit int) ([]player.Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var stats []player.Stats
	for _, p := range r.players {
		if p.Games > 0 {
			stats = append(stats, p.Stats())
		}
	}
	return stats, nil
}

func (r *memRepo) get(id int64) player.Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.players[id]
}

type inOrder struct{}

func (inOrder) Shuffle(int, func(i, j int)) {}

func newTestHandler(ranks ...game.Rank) (*Handler, *fakeSender, *memRepo) {
	cfg := config.Default()

	log := logrus.New()
	log.SetOutput(io.Discard)

	sender := &fakeSender{}
	repo := &memRepo{players: make(map[int64]player.Player)}

	h := NewHandler(sender, &cfg, repo, log)
	h.newShoe = func() *game.Shoe {
		cards := make([]game.Card, len(ranks))
		for i, r := range ranks {
			cards[i] = game.Card{Rank: r, Suit: game.Hearts}
		}
		return game.NewStackedShoe(inOrder{}, cards...)
	}

	return h, sender, repo
}

func callback(chatID int64, data string) *tgbotapi.CallbackQuery {
	return &tgbotapi.CallbackQuery{
		ID:      "cb",
		Data:    data,
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}},
	}
}

func TestHandler_PlayNatural(t *testing.T) {
	h, sender, repo := newTestHandler(game.Ace, game.King, game.Nine, game.Seven)

	h.HandlePlay(1, []string{"10"})

	require.Eventually(t, func() bool {
		return repo.get(1).Games == 1
	}, time.Second, 5*time.Millisecond)

	p := repo.get(1)
	assert.Equal(t, 1015.0, p.Balance)
	assert.Equal(t, 1, p.Wins)
	assert.Equal(t, 10.0, p.LastBet)

	require.Eventually(t, func() bool {
		return strings.Contains(sender.lastText(), "BLACKJACK!")
	}, time.Second, 5*time.Millisecond)
	assert.Contains(t, sender.lastText(), "💵 Баланс: 1015")
}

func TestHandler_PlayHitAndStand(t *testing.T) {
	a := assert.New(t)
	h, sender, repo := newTestHandler(game.Five, game.Six, game.Six, game.Five, game.Two, game.Four, game.Four, game.Nine)

	h.HandlePlay(1, []string{"100"})
	require.Eventually(t, func() bool { return sender.hasKeyboard(GameKeyboard()) }, time.Second, 5*time.Millisecond)

	h.HandlePlay(1, nil)
	a.Contains(sender.lastText(), "Раунд уже идёт")

	h.HandleDeposit(1, []string{"5"})
	a.Contains(sender.lastText(), "Дождитесь")

	// 11 + 2 = 13, then stand
	h.HandleCallback(callback(1, CallbackHit))
	require.Eventually(t, func() bool {
		return strings.Contains(sender.lastText(), "Вы берёте 2♥")
	}, time.Second, 5*time.Millisecond)

	h.HandleCallback(callback(1, CallbackStand))
	require.Eventually(t, func() bool {
		return repo.get(1).Games == 1
	}, time.Second, 5*time.Millisecond)

	// dealer 11 + 4 + 4 = 19 beats 13
	p := repo.get(1)
	a.Equal(900.0, p.Balance)
	a.Equal(1, p.Losses)
}

func TestHandler_DepositBeforeRoundIsKept(t *testing.T) {
	a := assert.New(t)
	h, sender, repo := newTestHandler(game.Ten, game.Eight, game.Ten, game.Nine)

	saving := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	repo.beforeSave = func() {
		once.Do(func() {
			close(saving)
			<-release
		})
	}

	go h.HandleDeposit(1, []string{"500"})
	<-saving

	go h.HandlePlay(1, []string{"100"})
	a.Never(func() bool { return sender.count() > 0 }, 50*time.Millisecond, 5*time.Millisecond,
		"the round waits for the deposit to be saved")
	close(release)

	require.Eventually(t, func() bool { return sender.hasKeyboard(GameKeyboard()) }, time.Second, 5*time.Millisecond)
	h.HandleCallback(callback(1, CallbackStand))

	require.Eventually(t, func() bool {
		return repo.get(1).Games == 1
	}, time.Second, 5*time.Millisecond)

	// 18 loses to 19
	p := repo.get(1)
	a.Equal(1400.0, p.Balance)
	a.Equal(1, p.Losses)
}

func TestHandler_PlayInvalidBets(t *testing.T) {
	a := assert.New(t)
	h, sender, _ := newTestHandler()

	h.HandlePlay(1, []string{"abc"})
	a.Contains(sender.lastText(), "Неверная ставка")

	h.HandlePlay(1, []string{"5000"})
	a.Contains(sender.lastText(), "Недостаточно средств")

	h.cfg.MinBet = 50
	h.HandlePlay(1, []string{"10"})
	a.Contains(sender.lastText(), "Ставка от 50")
}

func TestHandler_Deposit(t *testing.T) {
	a := assert.New(t)
	h, sender, repo := newTestHandler()

	h.HandleDeposit(1, []string{"250"})
	a.Equal(1250.0, repo.get(1).Balance)

	h.HandleDeposit(1, []string{"-5"})
	a.Contains(sender.lastText(), "Неверная сумма")

	h.HandleDeposit(1, nil)
	a.Contains(sender.lastText(), "Укажите сумму")
	a.Equal(1250.0, repo.get(1).Balance)
}

func TestHandler_CallbackWithoutRound(t *testing.T) {
	h, sender, _ := newTestHandler()

	h.HandleCallback(callback(1, CallbackHit))
	require.Len(t, sender.callbacks, 1)
	assert.Equal(t, "Игра не активна", sender.callbacks[0].Text)

	h.HandleCallback(callback(1, CallbackBalance))
	require.Len(t, sender.callbacks, 2)
	assert.Equal(t, "💵 1000", sender.callbacks[1].Text)
}

func TestHandler_HandleMessage(t *testing.T) {
	h, sender, _ := newTestHandler()

	h.HandleMessage(&tgbotapi.Message{Text: "/start", Chat: &tgbotapi.Chat{ID: 1}})
	assert.Contains(t, sender.lastText(), "Добро пожаловать")

	h.HandleMessage(&tgbotapi.Message{Text: "/top", Chat: &tgbotapi.Chat{ID: 1}})
	assert.Contains(t, sender.lastText(), "Пока никто не играл")

	h.HandleMessage(&tgbotapi.Message{Text: "/balance", Chat: &tgbotapi.Chat{ID: 1}})
	assert.Contains(t, sender.lastText(), "Баланс: 1000")
}

func TestSession_DecideTimeout(t *testing.T) {
	s := &session{
		actions: make(chan game.Action, 1),
		notify:  func(string) {},
		timeout: 10 * time.Millisecond,
		log:     logrus.New(),
	}

	assert.Equal(t, game.ActionStand, s.Decide(game.PlayerView{}))
	assert.False(t, s.act(game.ActionHit), "nobody is waiting after the timeout")
}
