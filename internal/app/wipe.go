package app

import (
	"context"
	"fmt"

	"github.com/rferreira/patrimo/internal/models"
)

// WipeAll resets both stores to their empty defaults. Ledger settings reset
// too; this is the full factory reset, unlike the ledger's ClearAll.
func (a *App) WipeAll(ctx context.Context) error {
	if err := a.Storage.HoldingsStorage().Save(ctx, models.DefaultHoldingsData()); err != nil {
		return fmt.Errorf("failed to wipe holdings: %w", err)
	}
	if err := a.Storage.LedgerStorage().Save(ctx, models.DefaultTradeLedger()); err != nil {
		return fmt.Errorf("failed to wipe ledger: %w", err)
	}

	a.Bus.Publish("wipe")
	a.Logger.Warn().Msg("All data wiped")
	return nil
}
