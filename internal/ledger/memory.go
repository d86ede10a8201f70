package ledger

import (
	"context"
	"hash/fnv"
	"sort"
	"sync"

	"github.com/aijay3/HubSpot-Integration-System/internal/domain"
)

const shardCount = 32

// contactLedger holds one contact's entries. Guarded by its shard lock.
type contactLedger struct {
	touchpoints []domain.Touchpoint
	transitions []domain.LifecycleTransition
	nextSeq     int
}

type shard struct {
	mu       sync.RWMutex
	contacts map[string]*contactLedger
}

// MemoryStore is the in-process ledger backend. Locking is sharded by
// contact id so appends and reads for unrelated contacts never contend.
type MemoryStore struct {
	shards [shardCount]*shard
}

// NewMemoryStore creates an empty in-memory ledger.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{}
	for i := range s.shards {
		s.shards[i] = &shard{contacts: make(map[string]*contactLedger)}
	}
	return s
}

func (s *MemoryStore) shardFor(contactID string) *shard {
	h := fnv.New32a()
	h.Write([]byte(contactID))
	return s.shards[h.Sum32()%shardCount]
}

// AppendTouchpoint appends a touchpoint, assigning its sequence number
// and deterministic ID. The per-contact sequence stays ordered by
// timestamp with insertion order breaking ties.
func (s *MemoryStore) AppendTouchpoint(ctx context.Context, tp domain.Touchpoint) (domain.Touchpoint, error) {
	sh := s.shardFor(tp.ContactID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	cl := sh.contacts[tp.ContactID]
	if cl == nil {
		cl = &contactLedger{}
		sh.contacts[tp.ContactID] = cl
	}

	tp.Seq = cl.nextSeq
	cl.nextSeq++
	tp.ID = TouchpointID(tp)

	// Insert after any touchpoint with an equal or earlier timestamp.
	idx := sort.Search(len(cl.touchpoints), func(i int) bool {
		return cl.touchpoints[i].Timestamp.After(tp.Timestamp)
	})
	cl.touchpoints = append(cl.touchpoints, domain.Touchpoint{})
	copy(cl.touchpoints[idx+1:], cl.touchpoints[idx:])
	cl.touchpoints[idx] = tp

	return tp, nil
}

// Touchpoints returns a copy of the contact's ordered touchpoints.
func (s *MemoryStore) Touchpoints(ctx context.Context, contactID string) ([]domain.Touchpoint, error) {
	sh := s.shardFor(contactID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	cl := sh.contacts[contactID]
	if cl == nil {
		return nil, nil
	}
	out := make([]domain.Touchpoint, len(cl.touchpoints))
	copy(out, cl.touchpoints)
	return out, nil
}

// RecordTransition records a lifecycle stage change.
func (s *MemoryStore) RecordTransition(ctx context.Context, tr domain.LifecycleTransition) error {
	sh := s.shardFor(tr.ContactID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	cl := sh.contacts[tr.ContactID]
	if cl == nil {
		cl = &contactLedger{}
		sh.contacts[tr.ContactID] = cl
	}

	idx := sort.Search(len(cl.transitions), func(i int) bool {
		return cl.transitions[i].Timestamp.After(tr.Timestamp)
	})
	cl.transitions = append(cl.transitions, domain.LifecycleTransition{})
	copy(cl.transitions[idx+1:], cl.transitions[idx:])
	cl.transitions[idx] = tr

	return nil
}

// Transitions returns a copy of the contact's ordered transitions.
func (s *MemoryStore) Transitions(ctx context.Context, contactID string) ([]domain.LifecycleTransition, error) {
	sh := s.shardFor(contactID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	cl := sh.contacts[contactID]
	if cl == nil {
		return nil, nil
	}
	out := make([]domain.LifecycleTransition, len(cl.transitions))
	copy(out, cl.transitions)
	return out, nil
}

// ContactIDs lists every contact with ledger entries.
func (s *MemoryStore) ContactIDs(ctx context.Context) ([]string, error) {
	var ids []string
	for _, sh := range s.shards {
		sh.mu.RLock()
		for id := range sh.contacts {
			ids = append(ids, id)
		}
		sh.mu.RUnlock()
	}
	sort.Strings(ids)
	return ids, nil
}

// Ping always succeeds for the in-memory backend.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op for the in-memory backend.
func (s *MemoryStore) Close() error {
	return nil
}
