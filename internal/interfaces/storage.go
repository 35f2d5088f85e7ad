// Package interfaces defines service contracts for patrimo
package interfaces

import (
	"context"

	"github.com/rferreira/patrimo/internal/models"
)

// StorageManager coordinates the two persisted snapshots.
type StorageManager interface {
	HoldingsStorage() HoldingsStorage
	LedgerStorage() LedgerStorage

	// DataPath returns the base data directory path.
	DataPath() string

	// WriteRaw writes arbitrary binary data (e.g. rendered charts)
	// atomically. A relative dir resolves under the data path; an absolute
	// dir is used as-is. Key is sanitized for safe filenames.
	WriteRaw(dir, key string, data []byte) (string, error)

	Close() error
}

// HoldingsStorage persists the holdings snapshot as a single document.
// Get never fails on a missing or corrupt document: it returns the
// empty-default snapshot instead.
type HoldingsStorage interface {
	Get(ctx context.Context) (*models.HoldingsData, error)
	Save(ctx context.Context, data *models.HoldingsData) error
}

// LedgerStorage persists the trade ledger (trades + settings) as a single
// document, with the same default-on-missing/corrupt recovery as holdings.
type LedgerStorage interface {
	Get(ctx context.Context) (*models.TradeLedger, error)
	Save(ctx context.Context, ledger *models.TradeLedger) error
}
