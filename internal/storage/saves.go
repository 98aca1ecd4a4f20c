package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// SaveGame stores (or replaces) the saved game blob for a game.
func (s *Store) SaveGame(gameID string, data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO saves (game_id, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(game_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		gameID, data,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save game: %w", err)
	}
	return nil
}

// LoadGame returns the saved game blob for a game. ok is false when there
// is no save.
func (s *Store) LoadGame(gameID string) (data []byte, ok bool, err error) {
	err = s.db.QueryRow("SELECT data FROM saves WHERE game_id = ?", gameID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage: cannot load game: %w", err)
	}
	return data, true, nil
}

// HasSave reports whether a saved game exists.
func (s *Store) HasSave(gameID string) (bool, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM saves WHERE game_id = ?", gameID).Scan(&n); err != nil {
		return false, fmt.Errorf("storage: cannot query saves: %w", err)
	}
	return n > 0, nil
}

// DeleteGame removes a saved game. Deleting a missing save is not an error.
func (s *Store) DeleteGame(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM saves WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot delete save: %w", err)
	}
	return nil
}
