// Package identity resolves an inbound sender to a stored user, carrying
// the result through the rest of the dispatch as an explicit value rather
// than ambient state.
package identity

import (
	"context"
	"fmt"

	"nutribot_backend/internal/i18n"
	"nutribot_backend/internal/records"
	"nutribot_backend/internal/transport"
	"nutribot_backend/platform/apperr"
)

// UserStore is the slice of the records repository the resolver needs.
type UserStore interface {
	GetUserByExternalID(ctx context.Context, externalID int64) (records.User, error)
}

// Identity is the resolved sender. User is nil for senders with no stored
// record yet; Language is always usable.
type Identity struct {
	ExternalID int64
	User       *records.User
	Language   string
}

// Known reports whether a user record exists for the sender.
func (id Identity) Known() bool { return id.User != nil }

// UserID returns the internal user id, or 0 when unknown.
func (id Identity) UserID() int64 {
	if id.User == nil {
		return 0
	}
	return id.User.ID
}

// Resolver looks up inbound senders. Resolution is read-only: user rows are
// created by the onboarding flow, never as a side effect of a lookup.
type Resolver struct {
	store           UserStore
	defaultLanguage string
}

// NewResolver creates a resolver with the given fallback language.
func NewResolver(store UserStore, defaultLanguage string) *Resolver {
	if !i18n.IsSupported(defaultLanguage) {
		defaultLanguage = "en"
	}
	return &Resolver{store: store, defaultLanguage: defaultLanguage}
}

// Resolve looks up the sender of the event. An unknown sender yields an
// Identity with a nil User and the default language, not an error.
func (r *Resolver) Resolve(ctx context.Context, event transport.InboundEvent) (Identity, error) {
	id := Identity{ExternalID: event.SenderID, Language: r.defaultLanguage}

	u, err := r.store.GetUserByExternalID(ctx, event.SenderID)
	if err != nil {
		if apperr.GetKind(err) == apperr.KindNotFound {
			return id, nil
		}
		return Identity{}, fmt.Errorf("resolve sender %d: %w", event.SenderID, err)
	}

	id.User = &u
	if i18n.IsSupported(u.Language) {
		id.Language = u.Language
	}
	return id, nil
}
