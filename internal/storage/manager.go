// Package storage provides the top-level StorageManager that coordinates the
// two persisted snapshots (holdings and trade ledger).
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rferreira/patrimo/internal/common"
	"github.com/rferreira/patrimo/internal/interfaces"
	"github.com/rferreira/patrimo/internal/storage/badger"
)

// Manager implements interfaces.StorageManager over a single embedded
// BadgerHold store holding both snapshot documents.
type Manager struct {
	store    *badger.Store
	holdings interfaces.HoldingsStorage
	ledger   interfaces.LedgerStorage
	dataPath string
	logger   *common.Logger
}

// NewManager opens the embedded store and wires the snapshot storages.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	store, err := badger.NewStore(logger, filepath.Join(config.Storage.Path, "db"))
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	logger.Info().Str("path", config.Storage.Path).Msg("Storage manager initialized")

	return &Manager{
		store:    store,
		holdings: badger.NewHoldingsStorage(store, logger),
		ledger:   badger.NewLedgerStorage(store, logger),
		dataPath: config.Storage.Path,
		logger:   logger,
	}, nil
}

func (m *Manager) HoldingsStorage() interfaces.HoldingsStorage {
	return m.holdings
}

func (m *Manager) LedgerStorage() interfaces.LedgerStorage {
	return m.ledger
}

func (m *Manager) DataPath() string {
	return m.dataPath
}

// WriteRaw writes binary data atomically (temp file + rename) and returns the
// final path. A relative dir is resolved under the data path; an absolute dir
// is used as-is.
func (m *Manager) WriteRaw(dir, key string, data []byte) (string, error) {
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(m.dataPath, dir)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	name := sanitizeFilename(key)
	target := filepath.Join(dir, name)
	tmp := target + ".tmp"

	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to rename %s: %w", tmp, err)
	}

	m.logger.Debug().Str("path", target).Int("bytes", len(data)).Msg("Raw file written")
	return target, nil
}

// Close shuts down the embedded store.
func (m *Manager) Close() error {
	if m.store != nil {
		return m.store.Close()
	}
	return nil
}

// sanitizeFilename strips path separators and other unsafe characters.
func sanitizeFilename(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_' || r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}
