package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"options-journal/internal/errors"
	"options-journal/internal/models"
)

// SQLiteStore implements DataStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based data store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS trades (
		id TEXT PRIMARY KEY,
		ticker TEXT NOT NULL,
		direction TEXT NOT NULL,
		kind TEXT NOT NULL,
		strike_price REAL,
		expiration DATETIME,
		entry_date DATETIME NOT NULL,
		entry_price REAL NOT NULL,
		quantity INTEGER NOT NULL,
		fees REAL NOT NULL DEFAULT 0,
		exit_date DATETIME,
		exit_price REAL,
		target_price REAL,
		stop_loss_price REAL,
		pnl REAL,
		entry_emotion TEXT NOT NULL,
		exit_emotion TEXT,
		checklist TEXT,
		discipline_score INTEGER NOT NULL DEFAULT 0,
		violation_reason TEXT,
		status TEXT NOT NULL,
		notes TEXT,
		setup TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_trades_ticker ON trades(ticker);
	CREATE INDEX IF NOT EXISTS idx_trades_status ON trades(status);
	CREATE INDEX IF NOT EXISTS idx_trades_entry_date ON trades(entry_date);
	CREATE INDEX IF NOT EXISTS idx_trades_setup ON trades(setup);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const tradeColumns = `id, ticker, direction, kind, strike_price, expiration, entry_date, entry_price,
	quantity, fees, exit_date, exit_price, target_price, stop_loss_price, pnl,
	entry_emotion, exit_emotion, checklist, discipline_score, violation_reason,
	status, notes, setup, created_at, updated_at`

// SaveTrade inserts a newly committed trade.
func (s *SQLiteStore) SaveTrade(ctx context.Context, trade *models.Trade) error {
	checklist, _ := json.Marshal(trade.Checklist)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO trades (`+tradeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		trade.ID, trade.Ticker, trade.Direction, trade.Kind,
		nullFloat(trade.StrikePrice), nullTime(trade.Expiration),
		trade.EntryDate, trade.EntryPrice, trade.Quantity, trade.Fees,
		nullTime(trade.ExitDate), nullFloat(trade.ExitPrice),
		nullFloat(trade.TargetPrice), nullFloat(trade.StopLossPrice), nullFloat(trade.PnL),
		trade.EntryEmotion, nullEmotion(trade.ExitEmotion), string(checklist),
		trade.DisciplineScore, trade.ViolationReason,
		trade.Status, trade.Notes, trade.Setup, trade.CreatedAt, trade.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save trade: %w", err)
	}
	return nil
}

// UpdateTrade replaces a stored trade wholesale.
func (s *SQLiteStore) UpdateTrade(ctx context.Context, trade *models.Trade) error {
	checklist, _ := json.Marshal(trade.Checklist)

	res, err := s.db.ExecContext(ctx, `
		UPDATE trades SET
			ticker = ?, direction = ?, kind = ?, strike_price = ?, expiration = ?,
			entry_date = ?, entry_price = ?, quantity = ?, fees = ?,
			exit_date = ?, exit_price = ?, target_price = ?, stop_loss_price = ?, pnl = ?,
			entry_emotion = ?, exit_emotion = ?, checklist = ?, discipline_score = ?,
			violation_reason = ?, status = ?, notes = ?, setup = ?, updated_at = ?
		WHERE id = ?
	`,
		trade.Ticker, trade.Direction, trade.Kind,
		nullFloat(trade.StrikePrice), nullTime(trade.Expiration),
		trade.EntryDate, trade.EntryPrice, trade.Quantity, trade.Fees,
		nullTime(trade.ExitDate), nullFloat(trade.ExitPrice),
		nullFloat(trade.TargetPrice), nullFloat(trade.StopLossPrice), nullFloat(trade.PnL),
		trade.EntryEmotion, nullEmotion(trade.ExitEmotion), string(checklist),
		trade.DisciplineScore, trade.ViolationReason,
		trade.Status, trade.Notes, trade.Setup, trade.UpdatedAt,
		trade.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update trade: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update trade: %w", err)
	}
	if affected == 0 {
		return errors.ErrTradeNotFound
	}
	return nil
}

// GetTrade retrieves a single trade by ID.
func (s *SQLiteStore) GetTrade(ctx context.Context, id string) (*models.Trade, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+tradeColumns+" FROM trades WHERE id = ?", id)
	t, err := scanTrade(row)
	if err == sql.ErrNoRows {
		return nil, errors.ErrTradeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trade: %w", err)
	}
	return t, nil
}

// GetTrades retrieves trades matching the filter, newest entry first.
func (s *SQLiteStore) GetTrades(ctx context.Context, filter TradeFilter) ([]models.Trade, error) {
	query := "SELECT " + tradeColumns + " FROM trades WHERE 1=1"
	args := []interface{}{}

	if filter.Ticker != "" {
		query += " AND ticker = ?"
		args = append(args, filter.Ticker)
	}
	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.Setup != "" {
		query += " AND setup = ?"
		args = append(args, filter.Setup)
	}
	if !filter.StartDate.IsZero() {
		query += " AND entry_date >= ?"
		args = append(args, filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		query += " AND entry_date <= ?"
		args = append(args, filter.EndDate)
	}

	query += " ORDER BY entry_date DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	var trades []models.Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		trades = append(trades, *t)
	}

	return trades, rows.Err()
}

// DeleteTrade removes a trade entirely. Deleting an unknown ID fails with
// ErrTradeNotFound and changes nothing.
func (s *SQLiteStore) DeleteTrade(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM trades WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete trade: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete trade: %w", err)
	}
	if affected == 0 {
		return errors.ErrTradeNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTrade(row rowScanner) (*models.Trade, error) {
	var t models.Trade
	var strike, exitPrice, target, stop, pnl sql.NullFloat64
	var expiration, exitDate sql.NullTime
	var exitEmotion, checklist, violation, notes, setup sql.NullString

	err := row.Scan(
		&t.ID, &t.Ticker, &t.Direction, &t.Kind, &strike, &expiration,
		&t.EntryDate, &t.EntryPrice, &t.Quantity, &t.Fees,
		&exitDate, &exitPrice, &target, &stop, &pnl,
		&t.EntryEmotion, &exitEmotion, &checklist, &t.DisciplineScore, &violation,
		&t.Status, &notes, &setup, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.StrikePrice = floatPtr(strike)
	t.ExitPrice = floatPtr(exitPrice)
	t.TargetPrice = floatPtr(target)
	t.StopLossPrice = floatPtr(stop)
	t.PnL = floatPtr(pnl)
	t.Expiration = timePtr(expiration)
	t.ExitDate = timePtr(exitDate)
	t.ViolationReason = violation.String
	t.Notes = notes.String
	t.Setup = setup.String

	if exitEmotion.Valid && exitEmotion.String != "" {
		e := models.Emotion(exitEmotion.String)
		t.ExitEmotion = &e
	}
	if checklist.Valid && checklist.String != "" {
		if err := json.Unmarshal([]byte(checklist.String), &t.Checklist); err != nil {
			return nil, fmt.Errorf("failed to decode checklist for trade %s: %w", t.ID, err)
		}
	}

	return &t, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullTime(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *v, Valid: true}
}

func nullEmotion(v *models.Emotion) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*v), Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func timePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
