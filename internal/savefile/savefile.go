// Package savefile stores a balance as a small JSON record on disk
package savefile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"shoejack/internal/player"
)

// ErrMalformedRecord is returned when the save file is not a valid balance record
var ErrMalformedRecord = errors.New("malformed save record")

type record struct {
	Balance *float64 `json:"balance"`
}

// File is a player.BalanceStore backed by a JSON file
type File struct {
	path string
}

var _ player.BalanceStore = (*File)(nil)

func New(path string) *File {
	return &File{path: path}
}

// SaveBalance writes {"balance": <balance>}, replacing any previous save
func (f *File) SaveBalance(balance float64) error {
	if balance < 0 {
		return fmt.Errorf("%w: negative balance %v", player.ErrPersistence, balance)
	}

	data, err := json.Marshal(record{Balance: &balance})
	if err != nil {
		return fmt.Errorf("%w: %w", player.ErrPersistence, err)
	}

	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("%w: %w", player.ErrPersistence, err)
	}

	return nil
}

// LoadBalance reads the saved balance. A missing file keeps fs.ErrNotExist
// in the error chain.
func (f *File) LoadBalance() (float64, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", player.ErrPersistence, err)
	}

	var rec record
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&rec); err != nil {
		return 0, fmt.Errorf("%w: %w: %v", player.ErrPersistence, ErrMalformedRecord, err)
	}

	if rec.Balance == nil || *rec.Balance < 0 {
		return 0, fmt.Errorf("%w: %w", player.ErrPersistence, ErrMalformedRecord)
	}

	return *rec.Balance, nil
}
