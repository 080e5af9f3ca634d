package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"shoejack/internal/config"
	"shoejack/internal/game"
	"shoejack/internal/player"
)

// Sender is the part of the Telegram API the handler uses
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Handler struct {
	bot      Sender
	cfg      *config.Config
	players  player.Repository
	sessions *sessionManager
	log      logrus.FieldLogger
	newShoe  func() *game.Shoe
}

func NewHandler(bot Sender, cfg *config.Config, repo player.Repository, log logrus.FieldLogger) *Handler {
	return &Handler{
		bot:      bot,
		cfg:      cfg,
		players:  repo,
		sessions: newSessionManager(),
		log:      log,
		newShoe: func() *game.Shoe {
			return game.NewSeededShoe(cfg.Seed)
		},
	}
}

func (h *Handler) send(chatID int64, text string) {
	if _, err := h.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		h.log.WithError(err).WithField("chat", chatID).Error("failed to send message")
	}
}

func (h *Handler) sendWithKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := h.bot.Send(msg); err != nil {
		h.log.WithError(err).WithField("chat", chatID).Error("failed to send message")
	}
}

func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.log.WithError(err).Warn("failed to answer callback")
	}
}

func (h *Handler) getPlayer(chatID int64) (*player.Player, error) {
	return h.players.GetOrCreate(chatID, h.cfg.StartBalance, h.cfg.DefaultBet)
}

func (h *Handler) savePlayer(p *player.Player) {
	if err := h.players.Save(p); err != nil {
		h.log.WithError(err).WithField("chat", p.ID).Error("failed to save player")
	}
}

func (h *Handler) session(chatID int64) *session {
	return h.sessions.GetOrCreate(chatID, func() *session {
		s := &session{
			chatID:  chatID,
			actions: make(chan game.Action, 1),
			timeout: h.cfg.ActionTimeout,
			log:     h.log,
		}
		s.notify = func(text string) {
			h.sendWithKeyboard(chatID, text, GameKeyboard())
		}
		s.table = game.NewTable(h.newShoe(), s, s, h.log.WithField("chat", chatID))

		return s
	})
}

func (h *Handler) HandleStart(chatID int64) {
	p, err := h.getPlayer(chatID)
	if err != nil {
		h.log.WithError(err).Error("could not get player")
		h.send(chatID, "❌ Ошибка. Попробуйте позже.")
		return
	}

	h.send(chatID, fmt.Sprintf(
		"🎰 Добро пожаловать в Blackjack!\n\n"+
			"💵 Баланс: %g\n\n"+
			"/play <ставка> — играть\n"+
			"/deposit <сумма> — купить фишки\n"+
			"/balance — статистика\n"+
			"/top — топ игроков\n"+
			"/help — правила",
		p.Balance))
}

func (h *Handler) HandleHelp(chatID int64) {
	h.send(chatID,
		"📖 Правила Blackjack:\n\n"+
			"🎯 Цель: набрать 21 очко или больше дилера, не перебрав\n\n"+
			"📊 Очки:\n"+
			"• 2-10 — номинал\n"+
			"• J, Q, K — 10\n"+
			"• A — 11 или 1\n\n"+
			"🎮 Действия:\n"+
			"• Hit — взять карту\n"+
			"• Stand — остановиться\n\n"+
			"🃏 Дилер берёт карты до 17\n"+
			"🎰 Blackjack платит x2.5")
}

func (h *Handler) HandleBalance(chatID int64) {
	p, err := h.getPlayer(chatID)
	if err != nil {
		h.send(chatID, "❌ Ошибка")
		return
	}

	h.send(chatID, fmt.Sprintf(
		"💰 Баланс: %g\n\n"+
			"📊 Статистика:\n"+
			"🎮 Игр: %d\n"+
			"✅ Побед: %d (%.1f%%)\n"+
			"❌ Поражений: %d\n"+
			"🤝 Ничьих: %d",
		p.Balance, p.Games, p.Wins, p.WinRate(), p.Losses, p.Pushes))
}

func (h *Handler) HandleTop(chatID int64) {
	stats, err := h.players.GetTopByBalance(10)
	if err != nil {
		h.log.WithError(err).Error("could not get top players")
		h.send(chatID, "❌ Ошибка")
		return
	}

	if len(stats) == 0 {
		h.send(chatID, "🏆 Пока никто не играл!")
		return
	}

	var sb strings.Builder
	sb.WriteString("🏆 Топ игроков:\n\n")

	medals := []string{"🥇", "🥈", "🥉"}
	for i, s := range stats {
		medal := fmt.Sprintf("%d.", i+1)
		if i < 3 {
			medal = medals[i]
		}
		sb.WriteString(fmt.Sprintf("%s %g 💰 | %d игр (%.0f%%)\n",
			medal, s.Balance, s.Games, s.WinRate))
	}

	h.send(chatID, sb.String())
}

func (h *Handler) HandleDeposit(chatID int64, args []string) {
	if len(args) == 0 {
		h.send(chatID, "❌ Укажите сумму. Пример: /deposit 500")
		return
	}

	amount, err := player.ParseAmount(args[0])
	if err == nil {
		err = player.ValidateDeposit(amount)
	}
	if err != nil {
		h.send(chatID, "❌ Неверная сумма")
		return
	}

	s := h.session(chatID)
	s.account.Lock()
	defer s.account.Unlock()

	// the round saves the balance it started from when it ends
	if s.isPlaying() {
		h.send(chatID, "⏳ Дождитесь конца раунда")
		return
	}

	p, err := h.getPlayer(chatID)
	if err != nil {
		h.send(chatID, "❌ Ошибка")
		return
	}

	if err := p.Deposit(amount); err != nil {
		h.send(chatID, "❌ Неверная сумма")
		return
	}

	h.savePlayer(p)
	h.send(chatID, fmt.Sprintf("💵 +%g\n💰 Баланс: %g", amount, p.Balance))
}

func (h *Handler) HandlePlay(chatID int64, args []string) {
	s := h.session(chatID)
	s.account.Lock()
	defer s.account.Unlock()

	p, err := h.getPlayer(chatID)
	if err != nil {
		h.send(chatID, "❌ Ошибка")
		return
	}

	bet := p.LastBet
	if bet <= 0 {
		bet = h.cfg.DefaultBet
	}

	if len(args) > 0 {
		b, err := player.ParseAmount(args[0])
		if err != nil || b <= 0 {
			h.send(chatID, fmt.Sprintf("❌ Неверная ставка. Пример: /play %g", h.cfg.DefaultBet))
			return
		}
		bet = b
	}

	limits := player.Limits{Min: h.cfg.MinBet, Max: h.cfg.MaxBet}
	if err := player.ValidateBet(bet, p.Balance, limits); err != nil {
		if !p.CanAfford(bet) {
			h.send(chatID, fmt.Sprintf("❌ Недостаточно средств! Баланс: %g", p.Balance))
			return
		}

		h.send(chatID, fmt.Sprintf("❌ Ставка от %g до %g", h.cfg.MinBet, h.cfg.MaxBet))
		return
	}

	if !s.begin() {
		h.send(chatID, "⏳ Раунд уже идёт")
		return
	}

	h.send(chatID, fmt.Sprintf("💰 Ставка: %g | Баланс: %g", bet, p.Balance-bet))
	go h.playRound(s, p.Balance, bet)
}

// playRound runs a round started by HandlePlay. Deposits are refused
// until it ends, so balance is still the stored one when the result is
// recorded.
func (h *Handler) playRound(s *session, balance, bet float64) {
	res, err := s.table.PlayRound(balance, bet)

	s.account.Lock()
	defer s.account.Unlock()
	defer s.end()

	if err != nil {
		h.log.WithError(err).WithField("chat", s.chatID).Error("could not play round")
		h.send(s.chatID, "❌ Ошибка")
		return
	}

	p, err := h.getPlayer(s.chatID)
	if err != nil {
		h.log.WithError(err).WithField("chat", s.chatID).Error("could not record round")
		h.send(s.chatID, "❌ Ошибка")
		return
	}

	p.Record(res)
	h.savePlayer(p)

	h.sendWithKeyboard(s.chatID, formatGameEnd(s.flush(), res, p), EndGameKeyboard(p.LastBet))
}

func (h *Handler) HandleCallback(callback *tgbotapi.CallbackQuery) {
	if callback.Message == nil || callback.Message.Chat == nil {
		return
	}

	chatID := callback.Message.Chat.ID
	data := callback.Data

	switch data {
	case CallbackPlayAgain:
		h.answerCallback(callback.ID, "")
		h.HandlePlay(chatID, nil)
		return

	case CallbackBalance:
		p, err := h.getPlayer(chatID)
		if err != nil {
			h.answerCallback(callback.ID, "Ошибка")
			return
		}
		h.answerCallback(callback.ID, fmt.Sprintf("💵 %g", p.Balance))
		return
	}

	s := h.sessions.Get(chatID)
	if s == nil || !s.act(game.ParseAction(data)) {
		h.answerCallback(callback.ID, "Игра не активна")
		return
	}

	h.answerCallback(callback.ID, "")
}

func (h *Handler) HandleMessage(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	parts := strings.Fields(msg.Text)

	if len(parts) == 0 {
		return
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "/start":
		h.HandleStart(chatID)
	case "/help":
		h.HandleHelp(chatID)
	case "/play":
		h.HandlePlay(chatID, args)
	case "/deposit":
		h.HandleDeposit(chatID, args)
	case "/balance":
		h.HandleBalance(chatID)
	case "/top":
		h.HandleTop(chatID)
	}
}
