package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rferreira/patrimo/internal/models"
)

// BackupDocument is the on-disk export format: both snapshots in one JSON
// document. Import replaces the stores wholesale; nothing is ever merged.
type BackupDocument struct {
	Holdings *models.HoldingsData `json:"holdings"`
	Ledger   *models.TradeLedger  `json:"ledger"`
}

// Export writes both snapshots to a JSON file and returns the bytes written.
func (a *App) Export(ctx context.Context, path string) (int, error) {
	holdingsData, err := a.Storage.HoldingsStorage().Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read holdings: %w", err)
	}
	ledgerData, err := a.Storage.LedgerStorage().Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read ledger: %w", err)
	}

	doc := BackupDocument{Holdings: holdingsData, Ledger: ledgerData}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("failed to encode backup: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return 0, fmt.Errorf("failed to write backup %s: %w", path, err)
	}

	a.Logger.Info().Str("path", path).Int("bytes", len(data)).Msg("Backup exported")
	return len(data), nil
}

// Import reads a backup file and replaces both stores with its contents.
// The document must carry at least one of the two snapshots; a snapshot that
// is absent from the file leaves the corresponding store untouched.
func (a *App) Import(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read backup %s: %w", path, err)
	}

	var doc BackupDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse backup %s: %w", path, err)
	}
	if doc.Holdings == nil && doc.Ledger == nil {
		return fmt.Errorf("backup %s has neither holdings nor ledger", path)
	}

	if doc.Holdings != nil {
		doc.Holdings.Normalize()
		if err := a.Storage.HoldingsStorage().Save(ctx, doc.Holdings); err != nil {
			return fmt.Errorf("failed to import holdings: %w", err)
		}
	}
	if doc.Ledger != nil {
		doc.Ledger.Normalize()
		if err := a.Storage.LedgerStorage().Save(ctx, doc.Ledger); err != nil {
			return fmt.Errorf("failed to import ledger: %w", err)
		}
	}

	a.Bus.Publish("import")
	a.Logger.Info().Str("path", path).Msg("Backup imported")
	return nil
}
