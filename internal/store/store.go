// Package store provides local snapshot persistence for offline viewing.
package store

import (
	"context"
	"time"

	"mt5-backoffice/internal/models"
)

// Snapshot kinds recorded in the local cache.
const (
	KindAccount   = "account"
	KindPositions = "positions"
	KindOrders    = "orders"
	KindHistory   = "history"
	KindPayments  = "payments"
	KindProfile   = "profile"
)

// SnapshotStore persists the last successful fetch of each data source so
// the CLI can render it without a backend connection.
type SnapshotStore interface {
	// Account snapshots
	SaveAccount(ctx context.Context, login int, info *models.AccountInfo) error
	GetAccount(ctx context.Context, login int) (*models.AccountInfo, time.Time, error)

	// Position and order snapshots
	SavePositions(ctx context.Context, login int, positions []models.Position) error
	GetPositions(ctx context.Context, login int) ([]models.Position, time.Time, error)
	SaveOrders(ctx context.Context, login int, orders []models.Order) error
	GetOrders(ctx context.Context, login int) ([]models.Order, time.Time, error)

	// Deal history snapshots
	SaveHistory(ctx context.Context, login int, deals []models.HistoryDeal) error
	GetHistory(ctx context.Context, login int) ([]models.HistoryDeal, time.Time, error)

	// Payment ledger snapshots, keyed by user id so accounts sharing a
	// config dir never replay each other's data
	SavePayments(ctx context.Context, userID string, payments []models.Payment) error
	GetPayments(ctx context.Context, userID string) ([]models.Payment, time.Time, error)

	// Profile snapshots, keyed the same way
	SaveProfile(ctx context.Context, userID string, profile *models.Profile) error
	GetProfile(ctx context.Context, userID string) (*models.Profile, time.Time, error)

	// Freshness
	LastFetch(ctx context.Context, kind string) (time.Time, error)

	// Lifecycle
	Close() error
}
