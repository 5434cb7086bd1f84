package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CompletionEntry is one recorded level completion.
type CompletionEntry struct {
	ID        int64
	GameID    string
	LevelID   string
	Moves     int
	CreatedAt time.Time
}

// RecordCompletion records that a level of a world was solved in moves.
// Returns the ID of the inserted record.
func (s *Store) RecordCompletion(gameID, levelID string, moves int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO completions (game_id, level_id, moves) VALUES (?, ?, ?)",
		gameID, levelID, moves,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record completion: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// CompletedLevels returns the distinct level IDs completed in a world,
// sorted.
func (s *Store) CompletedLevels(gameID string) ([]string, error) {
	return s.queryStrings(
		"SELECT DISTINCT level_id FROM completions WHERE game_id = ? ORDER BY level_id",
		gameID,
	)
}

// AllCompletedLevels returns every distinct completed level ID across all
// worlds, sorted. Its length is the player's token count.
func (s *Store) AllCompletedLevels() ([]string, error) {
	return s.queryStrings("SELECT DISTINCT level_id FROM completions ORDER BY level_id")
}

func (s *Store) queryStrings(query string, args ...any) ([]string, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query completions: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// BestMoves returns the fewest moves a level was completed in.
// ok is false when the level has never been completed.
func (s *Store) BestMoves(gameID, levelID string) (moves int, ok bool, err error) {
	var best sql.NullInt64
	err = s.db.QueryRow(
		"SELECT MIN(moves) FROM completions WHERE game_id = ? AND level_id = ?",
		gameID, levelID,
	).Scan(&best)
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best moves: %w", err)
	}
	if !best.Valid {
		return 0, false, nil
	}
	return int(best.Int64), true, nil
}

// TopCompletions retrieves the N best completions of a world.
// Results are ordered by moves ascending, earliest first on ties.
func (s *Store) TopCompletions(gameID string, limit int) ([]CompletionEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	return s.queryCompletions(
		`SELECT id, game_id, level_id, moves, created_at
		 FROM completions
		 WHERE game_id = ?
		 ORDER BY moves ASC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
}

// BestPerLevel returns one entry per completed level of a world holding
// its fewest moves and when that was first achieved, ordered by level ID.
func (s *Store) BestPerLevel(gameID string) ([]CompletionEntry, error) {
	return s.queryCompletions(
		`SELECT c.id, c.game_id, c.level_id, c.moves, c.created_at
		 FROM completions c
		 WHERE c.game_id = ?
		   AND c.id = (
		     SELECT b.id FROM completions b
		     WHERE b.game_id = c.game_id AND b.level_id = c.level_id
		     ORDER BY b.moves ASC, b.id ASC
		     LIMIT 1)
		 ORDER BY c.level_id`,
		gameID,
	)
}

func (s *Store) queryCompletions(query string, args ...any) ([]CompletionEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query completions: %w", err)
	}
	defer rows.Close()

	var entries []CompletionEntry
	for rows.Next() {
		var e CompletionEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.LevelID, &e.Moves, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ClearProgress deletes the completions of a world, or of every world
// when gameID is empty.
func (s *Store) ClearProgress(gameID string) error {
	var err error
	if gameID == "" {
		_, err = s.db.Exec("DELETE FROM completions")
	} else {
		_, err = s.db.Exec("DELETE FROM completions WHERE game_id = ?", gameID)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot clear progress: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a world.
type GameStats struct {
	GameID      string
	Completions int   // every recorded completion, replays included
	Levels      int   // distinct levels completed
	TotalMoves  int64 // moves summed over all completions
	LastPlayed  time.Time
}

// GetGameStats retrieves aggregated statistics for a specific world.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COUNT(DISTINCT level_id), COALESCE(SUM(moves), 0)
		 FROM completions WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Completions, &stats.Levels, &stats.TotalMoves)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM completions WHERE game_id = ? ORDER BY id DESC LIMIT 1`,
		gameID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// GetAllGamesStats retrieves statistics for all worlds that have been played.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(
		`SELECT game_id, COUNT(*), COUNT(DISTINCT level_id), SUM(moves), MAX(created_at)
		 FROM completions
		 GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		var st GameStats
		var lastPlayed any
		if err := rows.Scan(&st.GameID, &st.Completions, &st.Levels, &st.TotalMoves, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.GameID] = &st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
