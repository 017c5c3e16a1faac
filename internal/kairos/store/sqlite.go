package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mattn/go-sqlite3"

	"github.com/msto63/kairos/pkg/core/logging"
	"github.com/msto63/kairos/pkg/datetime"
)

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	logger *logging.Logger
}

// SQLiteConfig holds configuration for the SQLite store
type SQLiteConfig struct {
	Path string
}

// DefaultSQLiteConfig returns default configuration
func DefaultSQLiteConfig() SQLiteConfig {
	return SQLiteConfig{
		Path: "./data/calendar.db",
	}
}

// NewSQLiteStore opens (creating if needed) the calendar database
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	// Open database with WAL mode
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &SQLiteStore{db: db, logger: logging.New("store")}

	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	s.logger.Debug("Calendar store opened", "path", cfg.Path)
	return s, nil
}

// initSchema creates the necessary tables
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS holidays (
		market TEXT NOT NULL,
		day INTEGER NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		created_at TEXT,
		PRIMARY KEY (market, day)
	);

	CREATE INDEX IF NOT EXISTS idx_holidays_day ON holidays(day);
	`

	_, err := s.db.Exec(schema)
	return err
}

// AddHoliday inserts a holiday
func (s *SQLiteStore) AddHoliday(ctx context.Context, market string, day datetime.Datetime, name string) error {
	m, err := normalizeMarket("AddHoliday", market)
	if err != nil {
		return err
	}
	key, err := dayKey("AddHoliday", day)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO holidays (market, day, name, created_at) VALUES (?, ?, ?, ?)`,
		m, key, name, datetime.Now())
	if err != nil {
		if isConstraintViolation(err) {
			return duplicate("AddHoliday", m, key)
		}
		return dbError("AddHoliday", err)
	}
	return nil
}

// RemoveHoliday deletes a holiday
func (s *SQLiteStore) RemoveHoliday(ctx context.Context, market string, day datetime.Datetime) error {
	m, err := normalizeMarket("RemoveHoliday", market)
	if err != nil {
		return err
	}
	key, err := dayKey("RemoveHoliday", day)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, `DELETE FROM holidays WHERE market = ? AND day = ?`, m, key)
	if err != nil {
		return dbError("RemoveHoliday", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return notFound("RemoveHoliday", m, key)
	}
	return nil
}

// Holidays lists holidays in [start, end]
func (s *SQLiteStore) Holidays(ctx context.Context, market string, start, end datetime.Datetime) ([]Holiday, error) {
	m, err := normalizeMarket("Holidays", market)
	if err != nil {
		return nil, err
	}
	lo, hi, err := bounds("Holidays", start, end)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT market, day, name, created_at
		FROM holidays
		WHERE market = ? AND day BETWEEN ? AND ?
		ORDER BY day
	`, m, lo, hi)
	if err != nil {
		return nil, dbError("Holidays", err)
	}
	defer rows.Close()

	var holidays []Holiday
	for rows.Next() {
		var h Holiday
		// day is scanned from its YYYYMMDD integer, created_at from text
		if err := rows.Scan(&h.Market, &h.Day, &h.Name, &h.CreatedAt); err != nil {
			return nil, dbError("Holidays", err)
		}
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("Holidays", err)
	}
	return holidays, nil
}

// IsHoliday checks a single day
func (s *SQLiteStore) IsHoliday(ctx context.Context, market string, day datetime.Datetime) (bool, error) {
	m, err := normalizeMarket("IsHoliday", market)
	if err != nil {
		return false, err
	}
	key, err := dayKey("IsHoliday", day)
	if err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM holidays WHERE market = ? AND day = ?`, m, key).Scan(&n)
	if err != nil {
		return false, dbError("IsHoliday", err)
	}
	return n > 0, nil
}

// Markets lists market codes with holidays
func (s *SQLiteStore) Markets(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT market FROM holidays ORDER BY market`)
	if err != nil {
		return nil, dbError("Markets", err)
	}
	defer rows.Close()

	var markets []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, dbError("Markets", err)
		}
		markets = append(markets, m)
	}
	return markets, rows.Err()
}

// Ping checks the database connection
func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return dbError("Ping", err)
	}
	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func isConstraintViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	return false
}
