package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/snowdrift/internal/puzzle"
	"github.com/vovakirdan/snowdrift/internal/puzzle/levels/formats"
)

// ErrLevelNotFound is returned by Resolve for names with no saved level.
var ErrLevelNotFound = errors.New("storage: level not found")

// StoredLevel is a user level saved in the database.
type StoredLevel struct {
	Name      string
	Creator   string
	Level     *puzzle.Level
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LevelInfo describes a saved level without decoding it.
type LevelInfo struct {
	Name      string
	Title     string
	Creator   string
	UpdatedAt time.Time
}

// SaveLevel stores lvl under name, replacing any level with that name.
func (s *Store) SaveLevel(name, creator string, lvl *puzzle.Level) error {
	data, err := formats.EncodeYAML(name, creator, lvl)
	if err != nil {
		return fmt.Errorf("storage: cannot encode level %s: %w", name, err)
	}

	_, err = s.db.Exec(
		`INSERT INTO levels (name, title, creator, yaml) VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		   title = excluded.title,
		   creator = excluded.creator,
		   yaml = excluded.yaml,
		   updated_at = CURRENT_TIMESTAMP`,
		name, lvl.Title, creator, string(data),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save level %s: %w", name, err)
	}
	return nil
}

// GetLevel loads a saved level. It returns nil, nil when no level has
// that name.
func (s *Store) GetLevel(name string) (*StoredLevel, error) {
	var (
		data               string
		createdAt, updated any
	)
	stored := &StoredLevel{Name: name}

	err := s.db.QueryRow(
		"SELECT creator, yaml, created_at, updated_at FROM levels WHERE name = ?",
		name,
	).Scan(&stored.Creator, &data, &createdAt, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level %s: %w", name, err)
	}

	parsed, err := formats.ParseYAML([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("storage: level %s is corrupt: %w", name, err)
	}
	stored.Level = parsed.Puzzle
	stored.CreatedAt = parseTime(createdAt)
	stored.UpdatedAt = parseTime(updated)
	return stored, nil
}

// ContainsLevel reports whether a level with that name is saved.
func (s *Store) ContainsLevel(name string) (bool, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM levels WHERE name = ?", name).Scan(&n); err != nil {
		return false, fmt.Errorf("storage: cannot query level %s: %w", name, err)
	}
	return n > 0, nil
}

// ListLevels lists saved levels ordered by name.
func (s *Store) ListLevels() ([]LevelInfo, error) {
	rows, err := s.db.Query("SELECT name, title, creator, updated_at FROM levels ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list levels: %w", err)
	}
	defer rows.Close()

	var out []LevelInfo
	for rows.Next() {
		var info LevelInfo
		var updated any
		if err := rows.Scan(&info.Name, &info.Title, &info.Creator, &updated); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		info.UpdatedAt = parseTime(updated)
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// DeleteLevel removes a saved level. It reports whether one existed.
func (s *Store) DeleteLevel(name string) (bool, error) {
	res, err := s.db.Exec("DELETE FROM levels WHERE name = ?", name)
	if err != nil {
		return false, fmt.Errorf("storage: cannot delete level %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot delete level %s: %w", name, err)
	}
	return n > 0, nil
}

// Resolve looks up a saved level for portal travel.
func (s *Store) Resolve(name string) (*puzzle.Level, error) {
	stored, err := s.GetLevel(name)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("%w: %s", ErrLevelNotFound, name)
	}
	return stored.Level, nil
}
