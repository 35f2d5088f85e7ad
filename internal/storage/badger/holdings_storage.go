package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/rferreira/patrimo/internal/common"
	"github.com/rferreira/patrimo/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// holdingsKey is the fixed document key for the holdings snapshot.
const holdingsKey = "holdings"

type holdingsStorage struct {
	store  *Store
	logger *common.Logger
}

// NewHoldingsStorage creates a HoldingsStorage backed by BadgerHold.
func NewHoldingsStorage(store *Store, logger *common.Logger) *holdingsStorage {
	return &holdingsStorage{store: store, logger: logger}
}

// Get reads the holdings snapshot. A missing or undecodable document yields
// the empty-default snapshot rather than an error.
func (s *holdingsStorage) Get(_ context.Context) (*models.HoldingsData, error) {
	var data models.HoldingsData
	err := s.store.db.Get(holdingsKey, &data)
	if err != nil {
		if err != badgerhold.ErrNotFound {
			s.logger.Warn().Err(err).Msg("Holdings snapshot unreadable, resetting to defaults")
		}
		return models.DefaultHoldingsData(), nil
	}
	data.Normalize()
	return &data, nil
}

// Save writes the whole holdings snapshot, stamping Meta.LastUpdated.
func (s *holdingsStorage) Save(_ context.Context, data *models.HoldingsData) error {
	data.Normalize()
	data.Meta.LastUpdated = time.Now()

	if err := s.store.db.Upsert(holdingsKey, data); err != nil {
		return fmt.Errorf("failed to save holdings snapshot: %w", err)
	}
	s.logger.Debug().
		Int("stocks", len(data.Stocks)).
		Int("crypto", len(data.Crypto)).
		Int("p2p", len(data.P2P)).
		Int("funds", len(data.Funds)).
		Msg("Holdings snapshot saved")
	return nil
}
