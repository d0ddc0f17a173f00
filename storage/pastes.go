package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// Entry records one dispatched segment
type Entry struct {
	ID             int64
	Timestamp      time.Time
	SessionID      string
	FilePath       string
	Position       int // 1-based index of the segment in its file
	Total          int
	Text           string
	Note           string
	CharacterCount int
	Pasted         bool
	Success        bool
	ErrorMessage   string
}

// OverallStats summarizes the whole history
type OverallStats struct {
	TotalPastes     int
	TotalSessions   int
	TotalCharacters int
	SuccessCount    int
	FailureCount    int
	LastPaste       time.Time
}

// SaveEntry saves an entry to the database and fills in its ID
func (db *DB) SaveEntry(e *Entry) error {
	query := `
		INSERT INTO pastes (
			session_id, file_path, position, total, text, note,
			character_count, pasted, success, error_message
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var errorMessage sql.NullString
	if e.ErrorMessage != "" {
		errorMessage = sql.NullString{String: e.ErrorMessage, Valid: true}
	}

	result, err := db.conn.Exec(query,
		e.SessionID, e.FilePath, e.Position, e.Total, e.Text, e.Note,
		e.CharacterCount, e.Pasted, e.Success, errorMessage,
	)
	if err != nil {
		return fmt.Errorf("failed to save paste: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}

	e.ID = id
	return nil
}

const selectEntries = `
	SELECT
		id, timestamp, session_id, file_path, position, total, text, note,
		character_count, pasted, success, error_message
	FROM pastes
`

// GetEntries retrieves entries with pagination, newest first
func (db *DB) GetEntries(limit, offset int) ([]Entry, error) {
	rows, err := db.conn.Query(selectEntries+`ORDER BY id DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query pastes: %w", err)
	}
	return scanEntries(rows)
}

// GetSessionEntries retrieves the entries of one session in paste order
func (db *DB) GetSessionEntries(sessionID string) ([]Entry, error) {
	rows, err := db.conn.Query(selectEntries+`WHERE session_id = ? ORDER BY id ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query session pastes: %w", err)
	}
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var errorMessage sql.NullString

		err := rows.Scan(
			&e.ID, &e.Timestamp, &e.SessionID, &e.FilePath, &e.Position, &e.Total, &e.Text, &e.Note,
			&e.CharacterCount, &e.Pasted, &e.Success, &errorMessage,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan paste: %w", err)
		}

		if errorMessage.Valid {
			e.ErrorMessage = errorMessage.String
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// GetEntryCount returns the total number of entries
func (db *DB) GetEntryCount() (int, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM pastes").Scan(&count)
	return count, err
}

// GetOverallStats summarizes every recorded paste
func (db *DB) GetOverallStats() (*OverallStats, error) {
	query := `
		SELECT
			COUNT(*) as total_pastes,
			COUNT(DISTINCT session_id) as total_sessions,
			COALESCE(SUM(character_count), 0) as total_characters,
			COALESCE(SUM(CASE WHEN success = 1 THEN 1 ELSE 0 END), 0) as success_count,
			COALESCE(SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END), 0) as failure_count
		FROM pastes
	`

	var stats OverallStats
	err := db.conn.QueryRow(query).Scan(
		&stats.TotalPastes,
		&stats.TotalSessions,
		&stats.TotalCharacters,
		&stats.SuccessCount,
		&stats.FailureCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query overall stats: %w", err)
	}

	if stats.TotalPastes > 0 {
		err := db.conn.QueryRow("SELECT timestamp FROM pastes ORDER BY id DESC LIMIT 1").Scan(&stats.LastPaste)
		if err != nil {
			return nil, fmt.Errorf("failed to query last paste: %w", err)
		}
	}

	return &stats, nil
}
