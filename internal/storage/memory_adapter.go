package storage

import (
	"encoding/json"
	"log"
	"sync"
)

// MemoryAdapter is an in-memory implementation of Adapter. It backs tests
// and the throwaway "memory" storage driver. Values are kept JSON-encoded so
// reads return copies, never aliases of what a caller wrote.
type MemoryAdapter struct {
	records map[string][]byte
	mu      sync.RWMutex
}

// NewMemoryAdapter creates an empty in-memory store.
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{
		records: make(map[string][]byte),
	}
}

// Read implements Adapter.
func (a *MemoryAdapter) Read(key string, out any) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()

	value, ok := a.records[key]
	if !ok {
		return false
	}
	if err := json.Unmarshal(value, out); err != nil {
		log.Printf("storage: record %q holds invalid JSON: %v", key, err)
		return false
	}
	return true
}

// Write implements Adapter.
func (a *MemoryAdapter) Write(key string, v any) {
	value, err := json.Marshal(v)
	if err != nil {
		log.Printf("storage: write %q dropped: %v", key, err)
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.records[key] = value
}

// WriteAll implements Adapter. All records are applied under one lock.
func (a *MemoryAdapter) WriteAll(records map[string]any) {
	encoded := make(map[string][]byte, len(records))
	for key, v := range records {
		value, err := json.Marshal(v)
		if err != nil {
			log.Printf("storage: batch write dropped: %v", err)
			return
		}
		encoded[key] = value
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	for key, value := range encoded {
		a.records[key] = value
	}
}

// Delete implements Adapter.
func (a *MemoryAdapter) Delete(key string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.records, key)
}
