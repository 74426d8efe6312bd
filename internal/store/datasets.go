package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Load fetches the serialized dataset stored under key. The second return
// is false when the key has never been written.
func (s *Store) Load(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM datasets WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load dataset %q: %w", key, err)
	}
	return value, true, nil
}

// Save writes the serialized dataset under key, replacing any prior value.
func (s *Store) Save(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO datasets (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("save dataset %q: %w", key, err)
	}
	return nil
}
