package storage

import (
	"fmt"
	"slices"
)

// HighScoreSlots is how many entries a high-score table keeps.
const HighScoreSlots = 10

// InsertHighScore applies the table rule: score enters when the table has
// free slots or score is at least the lowest kept entry. The result is
// sorted descending and truncated to slots. rank is the 1-based position of
// the new score, or 0 when it did not make the table.
func InsertHighScore(table []int, score, slots int) (out []int, rank int) {
	out = slices.Clone(table)
	slices.SortFunc(out, func(a, b int) int { return b - a })
	if len(out) >= slots && (len(out) == 0 || score < out[len(out)-1]) {
		return out[:min(len(out), slots)], 0
	}

	// Newer scores rank ahead of equal older ones.
	pos := len(out)
	for i, v := range out {
		if score >= v {
			pos = i
			break
		}
	}
	out = slices.Insert(out, pos, score)
	if len(out) > slots {
		out = out[:slots]
	}
	return out, pos + 1
}

// HighScores returns a game's high-score table, best first.
func (s *Store) HighScores(gameID string) ([]int, error) {
	rows, err := s.db.Query(
		`SELECT score FROM high_scores
		 WHERE game_id = ?
		 ORDER BY score DESC, id DESC
		 LIMIT ?`,
		gameID, HighScoreSlots,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query high scores: %w", err)
	}
	defer rows.Close()

	var scores []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		scores = append(scores, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return scores, nil
}

// RecordHighScore records a finished game: the score always joins the
// history, and joins the high-score table when InsertHighScore admits it.
// It returns the updated table and the new score's rank (0 if not kept).
func (s *Store) RecordHighScore(gameID string, score int) ([]int, int, error) {
	if _, err := s.SaveScore(gameID, score); err != nil {
		return nil, 0, err
	}

	current, err := s.HighScores(gameID)
	if err != nil {
		return nil, 0, err
	}
	table, rank := InsertHighScore(current, score, HighScoreSlots)
	if rank == 0 {
		return table, 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("INSERT INTO high_scores (game_id, score) VALUES (?, ?)", gameID, score); err != nil {
		return nil, 0, fmt.Errorf("storage: cannot save high score: %w", err)
	}
	// Newer rows win ties at the cut.
	if _, err := tx.Exec(
		`DELETE FROM high_scores
		 WHERE game_id = ? AND id NOT IN (
			SELECT id FROM high_scores WHERE game_id = ?
			ORDER BY score DESC, id DESC LIMIT ?
		 )`,
		gameID, gameID, HighScoreSlots,
	); err != nil {
		return nil, 0, fmt.Errorf("storage: cannot trim high scores: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("storage: cannot commit high score: %w", err)
	}
	return table, rank, nil
}
