// Package conversation holds the per-user conversation state and its store.
// A user has zero or one State at any time; the dispatcher serializes all
// access per user, so stores only need to be safe for concurrent use across
// different users.
package conversation

import (
	"context"
	"time"
)

// State is the per-user record of the active wizard, the current step and
// the field values accumulated by the steps already passed.
type State struct {
	UserID    int64             `json:"user_id"`
	Wizard    string            `json:"wizard"`
	Step      string            `json:"step"`
	Fields    map[string]string `json:"fields"`
	CreatedAt time.Time         `json:"created_at"`
}

// Field returns the accumulated value for a key and whether it is present.
func (s *State) Field(key string) (string, bool) {
	v, ok := s.Fields[key]
	return v, ok
}

// Store persists conversation states keyed by internal user id.
//
// Start overwrites any prior state for the user: a new wizard entry always
// wins over a stale one. Advance fails with apperr.KindNoActiveState when the
// user has no state. Clear is idempotent.
type Store interface {
	Get(ctx context.Context, userID int64) (State, bool, error)
	Start(ctx context.Context, userID int64, wizard, step string, fields map[string]string) (State, error)
	Advance(ctx context.Context, userID int64, fieldKey, value, nextStep string) (State, error)
	Clear(ctx context.Context, userID int64) error

	// ReapOlderThan removes states created before the cutoff and returns how
	// many were cleared. Used by the maintenance reaper only.
	ReapOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}
