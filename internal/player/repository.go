package player

import (
	"database/sql"
	"fmt"
)

// Repository keeps one Player per chat
type Repository interface {
	GetOrCreate(id int64, startBalance, defaultBet float64) (*Player, error)
	Save(player *Player) error
	GetTopByBalance(limit int) ([]Stats, error)
}

// SQLiteRepository stores players in the players table, keyed by chat id
type SQLiteRepository struct {
	db *sql.DB
}

var _ Repository = (*SQLiteRepository)(nil)

func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const selectPlayers = `SELECT chat_id, balance, wins, losses, pushes, games, last_bet FROM players`

type scanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row scanner) (*Player, error) {
	p := &Player{}
	if err := row.Scan(&p.ID, &p.Balance, &p.Wins, &p.Losses, &p.Pushes, &p.Games, &p.LastBet); err != nil {
		return nil, err
	}

	return p, nil
}

func (r *SQLiteRepository) load(id int64) (*Player, error) {
	p, err := scanPlayer(r.db.QueryRow(selectPlayers+` WHERE chat_id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("%w: load player %d: %w", ErrPersistence, id, err)
	}

	return p, nil
}

// GetOrCreate loads the chat's player. A chat seen for the first time
// starts with startBalance and defaultBet.
func (r *SQLiteRepository) GetOrCreate(id int64, startBalance, defaultBet float64) (*Player, error) {
	_, err := r.db.Exec(`
		INSERT INTO players (chat_id, balance, last_bet) VALUES (?, ?, ?)
		ON CONFLICT(chat_id) DO NOTHING
	`, id, startBalance, defaultBet)
	if err != nil {
		return nil, fmt.Errorf("%w: create player %d: %w", ErrPersistence, id, err)
	}

	return r.load(id)
}

// Save writes the balance, stats and last bet, creating the row if needed
func (r *SQLiteRepository) Save(p *Player) error {
	_, err := r.db.Exec(`
		INSERT INTO players (chat_id, balance, wins, losses, pushes, games, last_bet)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(chat_id) DO UPDATE SET
			balance = excluded.balance,
			wins = excluded.wins,
			losses = excluded.losses,
			pushes = excluded.pushes,
			games = excluded.games,
			last_bet = excluded.last_bet,
			updated_at = CURRENT_TIMESTAMP
	`, p.ID, p.Balance, p.Wins, p.Losses, p.Pushes, p.Games, p.LastBet)
	if err != nil {
		return fmt.Errorf("%w: save player %d: %w", ErrPersistence, p.ID, err)
	}

	return nil
}

// GetTopByBalance ranks players that finished at least one round
func (r *SQLiteRepository) GetTopByBalance(limit int) ([]Stats, error) {
	rows, err := r.db.Query(selectPlayers+`
		WHERE games > 0
		ORDER BY balance DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	defer rows.Close()

	var stats []Stats
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
		}
		stats = append(stats, p.Stats())
	}

	return stats, rows.Err()
}

// BalanceStore returns a store for one player's balance. The terminal
// game uses it to keep its balance in the players table.
func (r *SQLiteRepository) BalanceStore(id int64) BalanceStore {
	return &sqliteBalance{repo: r, id: id}
}

type sqliteBalance struct {
	repo *SQLiteRepository
	id   int64
}

func (s *sqliteBalance) SaveBalance(balance float64) error {
	_, err := s.repo.db.Exec(`
		INSERT INTO players (chat_id, balance) VALUES (?, ?)
		ON CONFLICT(chat_id) DO UPDATE SET
			balance = excluded.balance, updated_at = CURRENT_TIMESTAMP
	`, s.id, balance)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	return nil
}

func (s *sqliteBalance) LoadBalance() (float64, error) {
	p, err := s.repo.load(s.id)
	if err != nil {
		return 0, err
	}

	return p.Balance, nil
}
