package store

import (
	"fmt"
	"time"
)

// ImportLogEntry 一次导入的记录
type ImportLogEntry struct {
	ID         int64     `json:"id"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	YearsOK    int       `json:"yearsOk"`
	YearsErr   int       `json:"yearsErr"`
	Message    string    `json:"message"`
}

// AppendImportLog 追加一条导入记录
func (s *Store) AppendImportLog(entry ImportLogEntry) error {
	_, err := s.db.Exec(
		`INSERT INTO import_log (started_at, finished_at, years_ok, years_err, message)
		 VALUES (?, ?, ?, ?, ?)`,
		entry.StartedAt, entry.FinishedAt, entry.YearsOK, entry.YearsErr, entry.Message,
	)
	if err != nil {
		return fmt.Errorf("failed to append import log: %w", err)
	}
	return nil
}

// ListImportLog 倒序列出最近的导入记录
func (s *Store) ListImportLog(limit int) ([]ImportLogEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, started_at, finished_at, years_ok, years_err, message
		 FROM import_log ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query import log: %w", err)
	}
	defer rows.Close()

	out := make([]ImportLogEntry, 0, limit)
	for rows.Next() {
		var entry ImportLogEntry
		if err := rows.Scan(&entry.ID, &entry.StartedAt, &entry.FinishedAt,
			&entry.YearsOK, &entry.YearsErr, &entry.Message); err != nil {
			return nil, fmt.Errorf("failed to scan import log: %w", err)
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}
