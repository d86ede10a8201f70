package adsync

import (
	"sync"

	"github.com/aijay3/HubSpot-Integration-System/internal/domain"
)

// MemoryRecordStore is the in-process RecordStore implementation.
type MemoryRecordStore struct {
	mu      sync.RWMutex
	records map[string]domain.ConversionSyncRecord
}

func NewMemoryRecordStore() *MemoryRecordStore {
	return &MemoryRecordStore{
		records: make(map[string]domain.ConversionSyncRecord),
	}
}

func (s *MemoryRecordStore) Get(fingerprint string) (domain.ConversionSyncRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[fingerprint]
	return record, ok
}

func (s *MemoryRecordStore) Put(record domain.ConversionSyncRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.Fingerprint] = record
}

func (s *MemoryRecordStore) All() []domain.ConversionSyncRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ConversionSyncRecord, 0, len(s.records))
	for _, record := range s.records {
		out = append(out, record)
	}
	return out
}

// lockArena hands out one mutex per fingerprint so concurrent syncs of
// the same conversion serialize while distinct conversions proceed in
// parallel.
type lockArena struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newLockArena() *lockArena {
	return &lockArena{locks: make(map[string]*sync.Mutex)}
}

func (a *lockArena) lock(key string) *sync.Mutex {
	a.mu.Lock()
	m, ok := a.locks[key]
	if !ok {
		m = &sync.Mutex{}
		a.locks[key] = m
	}
	a.mu.Unlock()
	m.Lock()
	return m
}
