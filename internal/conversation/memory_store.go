package conversation

import (
	"context"
	"maps"
	"sync"
	"time"

	"nutribot_backend/platform/apperr"
)

// MemoryStore is an in-process Store used in tests and single-replica
// deployments without Redis.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[int64]State
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[int64]State)}
}

var _ Store = (*MemoryStore)(nil)

func (m *MemoryStore) Get(_ context.Context, userID int64) (State, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	st, ok := m.states[userID]
	if !ok {
		return State{}, false, nil
	}
	return cloneState(st), true, nil
}

func (m *MemoryStore) Start(_ context.Context, userID int64, wizard, step string, fields map[string]string) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := State{
		UserID:    userID,
		Wizard:    wizard,
		Step:      step,
		Fields:    make(map[string]string, len(fields)),
		CreatedAt: time.Now().UTC(),
	}
	maps.Copy(st.Fields, fields)
	m.states[userID] = st
	return cloneState(st), nil
}

func (m *MemoryStore) Advance(_ context.Context, userID int64, fieldKey, value, nextStep string) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.states[userID]
	if !ok {
		return State{}, apperr.NoActiveState("no conversation in progress")
	}
	if fieldKey != "" {
		st.Fields[fieldKey] = value
	}
	st.Step = nextStep
	m.states[userID] = st
	return cloneState(st), nil
}

func (m *MemoryStore) Clear(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.states, userID)
	return nil
}

func (m *MemoryStore) ReapOlderThan(_ context.Context, cutoff time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	reaped := 0
	for id, st := range m.states {
		if st.CreatedAt.Before(cutoff) {
			delete(m.states, id)
			reaped++
		}
	}
	return reaped, nil
}

func cloneState(st State) State {
	out := st
	out.Fields = make(map[string]string, len(st.Fields))
	maps.Copy(out.Fields, st.Fields)
	return out
}
