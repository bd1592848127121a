package profile

import (
	"context"
	"sync"
)

// Store keeps the latest generated profile per session, guarded by a
// monotonically increasing submission sequence so a slow older
// submission can never clobber a newer one (last-submitted-wins).
type Store interface {
	// NextSeq allocates the next submission sequence for a session.
	NextSeq(ctx context.Context, sessionID string) (int64, error)
	// Put stores the result unless a result with a higher sequence is
	// already present. Returns false when the write was superseded.
	Put(ctx context.Context, sessionID string, seq int64, result Result) (bool, error)
	// Get returns the stored profile, or nil when none exists.
	Get(ctx context.Context, sessionID string) (*Stored, error)
}

// MemoryStore is the Redis-less Store used in tests and single-process
// deployments.
type MemoryStore struct {
	mu       sync.Mutex
	profiles map[string]Stored
	seqs     map[string]int64
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles: map[string]Stored{},
		seqs:     map[string]int64{},
	}
}

func (m *MemoryStore) NextSeq(_ context.Context, sessionID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seqs[sessionID]++
	return m.seqs[sessionID], nil
}

func (m *MemoryStore) Put(_ context.Context, sessionID string, seq int64, result Result) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.profiles[sessionID]; ok && existing.Seq > seq {
		return false, nil
	}
	m.profiles[sessionID] = Stored{Seq: seq, Result: result}
	return true, nil
}

func (m *MemoryStore) Get(_ context.Context, sessionID string) (*Stored, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if stored, ok := m.profiles[sessionID]; ok {
		return &stored, nil
	}
	return nil, nil
}
