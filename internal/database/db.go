package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/jgoulah/curvedash/pkg/models"
	_ "modernc.org/sqlite"
)

const dateLayout = "2006-01-02"

// Price is one assessment row as stored in the price table
type Price struct {
	ID          int
	Symbol      string
	Description string
	AssessDate  time.Time
	Value       float64
	Bate        string
}

// Query narrows ListPrices. Zero fields do not filter.
type Query struct {
	Since   time.Time
	Symbols []string
	Bate    string
}

// DB wraps the database connection
type DB struct {
	conn *sql.DB
}

// New creates a new database connection and initializes the schema
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// initSchema creates the necessary tables
func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS price_data (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		symbol TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL,
		assess_date TEXT NOT NULL,
		value REAL NOT NULL,
		bate TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		UNIQUE(description, assess_date, bate)
	);
	CREATE INDEX IF NOT EXISTS idx_price_assess_date ON price_data(assess_date);
	CREATE INDEX IF NOT EXISTS idx_price_symbol ON price_data(symbol);
	`

	_, err := db.conn.Exec(schema)
	return err
}

// InsertPrices upserts prices in one transaction. A row for an existing
// (description, date, bate) replaces the stored value.
func (db *DB) InsertPrices(prices []Price) (int, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
	INSERT INTO price_data (symbol, description, assess_date, value, bate, created_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(description, assess_date, bate) DO UPDATE SET
		symbol = excluded.symbol,
		value = excluded.value,
		created_at = excluded.created_at
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	createdAt := time.Now().UTC().Format(time.RFC3339)
	for _, p := range prices {
		if _, err := stmt.Exec(p.Symbol, p.Description, p.AssessDate.Format(dateLayout), p.Value, p.Bate, createdAt); err != nil {
			return 0, fmt.Errorf("inserting price for %s on %s: %w", p.Description, p.AssessDate.Format(dateLayout), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing prices: %w", err)
	}

	slog.Info("Stored prices", slog.Int("count", len(prices)))
	return len(prices), nil
}

// ListPrices retrieves prices matching q, ordered by description and date
func (db *DB) ListPrices(q Query) ([]Price, error) {
	var (
		where []string
		args  []any
	)
	if !q.Since.IsZero() {
		where = append(where, "assess_date >= ?")
		args = append(args, q.Since.Format(dateLayout))
	}
	if len(q.Symbols) > 0 {
		where = append(where, "symbol IN (?"+strings.Repeat(", ?", len(q.Symbols)-1)+")")
		for _, s := range q.Symbols {
			args = append(args, s)
		}
	}
	if q.Bate != "" {
		where = append(where, "bate = ?")
		args = append(args, q.Bate)
	}

	query := `SELECT id, symbol, description, assess_date, value, bate FROM price_data`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY description, assess_date"

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying price data: %w", err)
	}
	defer rows.Close()

	var results []Price
	for rows.Next() {
		var p Price
		var dateStr string
		if err := rows.Scan(&p.ID, &p.Symbol, &p.Description, &dateStr, &p.Value, &p.Bate); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		p.AssessDate, err = time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("parsing assess_date: %w", err)
		}

		results = append(results, p)
	}

	return results, rows.Err()
}

// CountPrices returns the number of stored rows
func (db *DB) CountPrices() (int, error) {
	var n int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM price_data`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting price data: %w", err)
	}
	return n, nil
}

// RawRows converts stored prices into rows the observation store accepts
func RawRows(prices []Price) []models.RawRow {
	rows := make([]models.RawRow, len(prices))
	for i, p := range prices {
		rows[i] = models.RawRow{
			Line:        p.ID,
			Symbol:      p.Symbol,
			Description: p.Description,
			AssessDate:  p.AssessDate.Format(dateLayout),
			Value:       strconv.FormatFloat(p.Value, 'f', -1, 64),
		}
	}
	return rows
}
