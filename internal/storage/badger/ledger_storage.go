package badger

import (
	"context"
	"fmt"

	"github.com/rferreira/patrimo/internal/common"
	"github.com/rferreira/patrimo/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// ledgerKey is the fixed document key for the trade ledger snapshot.
const ledgerKey = "ledger"

type ledgerStorage struct {
	store  *Store
	logger *common.Logger
}

// NewLedgerStorage creates a LedgerStorage backed by BadgerHold.
func NewLedgerStorage(store *Store, logger *common.Logger) *ledgerStorage {
	return &ledgerStorage{store: store, logger: logger}
}

// Get reads the ledger snapshot. A missing or undecodable document yields the
// empty-default ledger rather than an error.
func (s *ledgerStorage) Get(_ context.Context) (*models.TradeLedger, error) {
	var ledger models.TradeLedger
	err := s.store.db.Get(ledgerKey, &ledger)
	if err != nil {
		if err != badgerhold.ErrNotFound {
			s.logger.Warn().Err(err).Msg("Trade ledger unreadable, resetting to defaults")
		}
		return models.DefaultTradeLedger(), nil
	}
	ledger.Normalize()
	return &ledger, nil
}

// Save writes the whole ledger snapshot (trades + settings).
func (s *ledgerStorage) Save(_ context.Context, ledger *models.TradeLedger) error {
	ledger.Normalize()

	if err := s.store.db.Upsert(ledgerKey, ledger); err != nil {
		return fmt.Errorf("failed to save trade ledger: %w", err)
	}
	s.logger.Debug().Int("trades", len(ledger.Trades)).Msg("Trade ledger saved")
	return nil
}
