package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// timeLayout is fixed width so created_at sorts lexically
const timeLayout = "2006-01-02 15:04:05.000000000"

// SavedShort is one exported short recorded in the history
type SavedShort struct {
	ID        string
	QuoteID   string
	Author    string
	Category  string
	Path      string
	MIMEType  string
	Bytes     int64
	Model     string
	CreatedAt time.Time
}

// RecordShort stores s, filling in ID and CreatedAt when empty
func RecordShort(s SavedShort) (SavedShort, error) {
	db, err := GetDB()
	if err != nil {
		return SavedShort{}, fmt.Errorf("failed to get database connection: %w", err)
	}

	if s.QuoteID == "" || s.Path == "" {
		return SavedShort{}, fmt.Errorf("short needs a quote id and a path")
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	if s.MIMEType == "" {
		s.MIMEType = "image/png"
	}

	_, err = db.Exec(
		`INSERT INTO shorts (id, quote_id, author, category, path, mime_type, bytes, model, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.QuoteID, s.Author, s.Category, s.Path, s.MIMEType, s.Bytes, s.Model,
		s.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return SavedShort{}, fmt.Errorf("failed to record short: %w", err)
	}
	return s, nil
}

// ListShorts returns saved shorts newest first. limit <= 0 returns all.
func ListShorts(limit int) ([]SavedShort, error) {
	db, err := GetDB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}

	query := `SELECT id, quote_id, author, category, path, mime_type, bytes, model, created_at
	          FROM shorts ORDER BY created_at DESC, rowid DESC`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query shorts: %w", err)
	}
	defer rows.Close()

	shorts := []SavedShort{}
	for rows.Next() {
		s, err := scanShort(rows)
		if err != nil {
			return nil, err
		}
		shorts = append(shorts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shorts: %w", err)
	}
	return shorts, nil
}

// LatestForQuote returns the most recent short saved for quoteID.
// ok is false when the quote has never been saved.
func LatestForQuote(quoteID string) (SavedShort, bool, error) {
	db, err := GetDB()
	if err != nil {
		return SavedShort{}, false, fmt.Errorf("failed to get database connection: %w", err)
	}

	row := db.QueryRow(
		`SELECT id, quote_id, author, category, path, mime_type, bytes, model, created_at
		 FROM shorts WHERE quote_id = ? ORDER BY created_at DESC, rowid DESC LIMIT 1`,
		quoteID,
	)
	s, err := scanShort(row)
	if errors.Is(err, sql.ErrNoRows) {
		return SavedShort{}, false, nil
	}
	if err != nil {
		return SavedShort{}, false, err
	}
	return s, true, nil
}

// CountShorts returns how many shorts have been saved
func CountShorts() (int, error) {
	db, err := GetDB()
	if err != nil {
		return 0, fmt.Errorf("failed to get database connection: %w", err)
	}

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM shorts").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count shorts: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanShort(row scanner) (SavedShort, error) {
	var s SavedShort
	var created string
	err := row.Scan(&s.ID, &s.QuoteID, &s.Author, &s.Category, &s.Path, &s.MIMEType, &s.Bytes, &s.Model, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return SavedShort{}, err
	}
	if err != nil {
		return SavedShort{}, fmt.Errorf("failed to scan short: %w", err)
	}

	if t, err := time.ParseInLocation(timeLayout, created, time.UTC); err == nil {
		s.CreatedAt = t.Local()
	}
	return s, nil
}
