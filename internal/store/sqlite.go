package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	apperrors "mt5-backoffice/internal/errors"
	"mt5-backoffice/internal/models"
)

// SQLiteStore implements SnapshotStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and initializes) the snapshot database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(4)
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
	-- One row per snapshot kind, keyed by MT5 login for terminal data
	-- and by user id for account-level data. Payloads are stored as
	-- JSON so schema churn in the backend never requires a local
	-- migration.
	CREATE TABLE IF NOT EXISTS snapshots (
		kind TEXT NOT NULL,
		login INTEGER NOT NULL DEFAULT 0,
		user_id TEXT NOT NULL DEFAULT '',
		payload TEXT NOT NULL,
		fetched_at DATETIME NOT NULL,
		PRIMARY KEY (kind, login, user_id)
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_fetched ON snapshots(fetched_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return apperrors.Wrap(apperrors.ErrDatabaseError, err.Error())
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) save(ctx context.Context, kind string, login int, userID string, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s snapshot: %w", kind, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (kind, login, user_id, payload, fetched_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(kind, login, user_id) DO UPDATE SET
			payload = excluded.payload,
			fetched_at = excluded.fetched_at
	`, kind, login, userID, string(payload), time.Now().UTC())
	if err != nil {
		return apperrors.Wrap(apperrors.ErrDatabaseError, err.Error())
	}
	return nil
}

func (s *SQLiteStore) load(ctx context.Context, kind string, login int, userID string, v interface{}) (time.Time, error) {
	var payload string
	var fetchedAt time.Time
	err := s.db.QueryRowContext(ctx, `
		SELECT payload, fetched_at FROM snapshots WHERE kind = ? AND login = ? AND user_id = ?
	`, kind, login, userID).Scan(&payload, &fetchedAt)
	if err == sql.ErrNoRows {
		return time.Time{}, apperrors.ErrCacheMiss
	}
	if err != nil {
		return time.Time{}, apperrors.Wrap(apperrors.ErrDatabaseError, err.Error())
	}
	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return time.Time{}, fmt.Errorf("decoding %s snapshot: %w", kind, err)
	}
	return fetchedAt, nil
}

// SaveAccount stores the latest MT5 account snapshot for a login.
func (s *SQLiteStore) SaveAccount(ctx context.Context, login int, info *models.AccountInfo) error {
	return s.save(ctx, KindAccount, login, "", info)
}

// GetAccount returns the cached account snapshot and its fetch time.
func (s *SQLiteStore) GetAccount(ctx context.Context, login int) (*models.AccountInfo, time.Time, error) {
	var info models.AccountInfo
	fetchedAt, err := s.load(ctx, KindAccount, login, "", &info)
	if err != nil {
		return nil, time.Time{}, err
	}
	return &info, fetchedAt, nil
}

// SavePositions stores the latest open positions for a login.
func (s *SQLiteStore) SavePositions(ctx context.Context, login int, positions []models.Position) error {
	return s.save(ctx, KindPositions, login, "", positions)
}

// GetPositions returns the cached open positions and their fetch time.
func (s *SQLiteStore) GetPositions(ctx context.Context, login int) ([]models.Position, time.Time, error) {
	var positions []models.Position
	fetchedAt, err := s.load(ctx, KindPositions, login, "", &positions)
	if err != nil {
		return nil, time.Time{}, err
	}
	return positions, fetchedAt, nil
}

// SaveOrders stores the latest pending orders for a login.
func (s *SQLiteStore) SaveOrders(ctx context.Context, login int, orders []models.Order) error {
	return s.save(ctx, KindOrders, login, "", orders)
}

// GetOrders returns the cached pending orders and their fetch time.
func (s *SQLiteStore) GetOrders(ctx context.Context, login int) ([]models.Order, time.Time, error) {
	var orders []models.Order
	fetchedAt, err := s.load(ctx, KindOrders, login, "", &orders)
	if err != nil {
		return nil, time.Time{}, err
	}
	return orders, fetchedAt, nil
}

// SaveHistory stores the latest deal history for a login.
func (s *SQLiteStore) SaveHistory(ctx context.Context, login int, deals []models.HistoryDeal) error {
	return s.save(ctx, KindHistory, login, "", deals)
}

// GetHistory returns the cached deal history and its fetch time.
func (s *SQLiteStore) GetHistory(ctx context.Context, login int) ([]models.HistoryDeal, time.Time, error) {
	var deals []models.HistoryDeal
	fetchedAt, err := s.load(ctx, KindHistory, login, "", &deals)
	if err != nil {
		return nil, time.Time{}, err
	}
	return deals, fetchedAt, nil
}

// SavePayments stores the latest payment ledger for a user.
func (s *SQLiteStore) SavePayments(ctx context.Context, userID string, payments []models.Payment) error {
	return s.save(ctx, KindPayments, 0, userID, payments)
}

// GetPayments returns a user's cached payment ledger and its fetch time.
func (s *SQLiteStore) GetPayments(ctx context.Context, userID string) ([]models.Payment, time.Time, error) {
	var payments []models.Payment
	fetchedAt, err := s.load(ctx, KindPayments, 0, userID, &payments)
	if err != nil {
		return nil, time.Time{}, err
	}
	return payments, fetchedAt, nil
}

// SaveProfile stores the latest profile for a user.
func (s *SQLiteStore) SaveProfile(ctx context.Context, userID string, profile *models.Profile) error {
	return s.save(ctx, KindProfile, 0, userID, profile)
}

// GetProfile returns a user's cached profile and its fetch time.
func (s *SQLiteStore) GetProfile(ctx context.Context, userID string) (*models.Profile, time.Time, error) {
	var profile models.Profile
	fetchedAt, err := s.load(ctx, KindProfile, 0, userID, &profile)
	if err != nil {
		return nil, time.Time{}, err
	}
	return &profile, fetchedAt, nil
}

// LastFetch returns when a snapshot kind was last written, regardless of login.
func (s *SQLiteStore) LastFetch(ctx context.Context, kind string) (time.Time, error) {
	var fetchedAt sql.NullTime
	err := s.db.QueryRowContext(ctx, `
		SELECT MAX(fetched_at) FROM snapshots WHERE kind = ?
	`, kind).Scan(&fetchedAt)
	if err != nil && err != sql.ErrNoRows {
		return time.Time{}, apperrors.Wrap(apperrors.ErrDatabaseError, err.Error())
	}
	if !fetchedAt.Valid {
		return time.Time{}, apperrors.ErrCacheMiss
	}
	return fetchedAt.Time, nil
}
