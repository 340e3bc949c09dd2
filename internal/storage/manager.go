package storage

import (
	"fmt"

	"github.com/ErikGranda885/restocaja/internal/common"
	"github.com/ErikGranda885/restocaja/internal/interfaces"
	"github.com/ErikGranda885/restocaja/internal/storage/surrealdb"
)

// Backend type constants.
const (
	BackendBadger  = "badger"
	BackendSurreal = "surrealdb"
)

// badgerManager implements interfaces.StorageManager on the embedded backend.
type badgerManager struct {
	db       *BadgerDB
	closures *closureStore
	ledger   *ledgerStore
}

// NewStorageManager creates a storage manager based on the configuration.
// Supported backends: "badger" (default), "surrealdb".
func NewStorageManager(logger *common.Logger, config *common.Config) (interfaces.StorageManager, error) {
	backend := config.Storage.Backend
	if backend == "" {
		backend = BackendBadger
	}

	switch backend {
	case BackendBadger:
		db, err := NewBadgerDB(logger, config.Storage.Path)
		if err != nil {
			return nil, err
		}
		logger.Info().
			Str("backend", BackendBadger).
			Str("path", config.Storage.Path).
			Msg("Storage manager initialized")
		return &badgerManager{
			db:       db,
			closures: newClosureStore(db, logger),
			ledger:   newLedgerStore(db, logger),
		}, nil

	case BackendSurreal:
		return surrealdb.NewManager(logger, config)

	default:
		return nil, fmt.Errorf("unknown storage backend: %s (supported: badger, surrealdb)", backend)
	}
}

func (m *badgerManager) ClosureStore() interfaces.ClosureStore {
	return m.closures
}

func (m *badgerManager) LedgerStore() interfaces.LedgerStore {
	return m.ledger
}

func (m *badgerManager) Close() error {
	return m.db.Close()
}

// Compile-time check
var _ interfaces.StorageManager = (*badgerManager)(nil)
