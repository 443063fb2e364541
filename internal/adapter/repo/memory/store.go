package memory

import (
	"sync"

	"minerworld/internal/app/ports"
)

// Store keeps runs and their journals in process. Writes rely on TxManager
// holding the lock; reads take it shared.
type Store struct {
	mu      sync.RWMutex
	runs    map[string]ports.RunRecord
	journal map[string][]ports.TickRecord
}

func NewStore() *Store {
	return &Store{
		runs:    make(map[string]ports.RunRecord),
		journal: make(map[string][]ports.TickRecord),
	}
}
