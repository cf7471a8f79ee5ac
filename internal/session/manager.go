package session

import (
	"context"
	"time"
)

// Manager combines the store and the cookie codec into the begin/resolve/end
// lifecycle the auth gate consumes.
type Manager struct {
	store Store
	codec *CookieCodec
}

// NewManager constructs a manager.
func NewManager(store Store, codec *CookieCodec) *Manager {
	return &Manager{store: store, codec: codec}
}

// Begin establishes a session for the user and returns the signed cookie
// value with its expiry.
func (m *Manager) Begin(ctx context.Context, userID string) (string, time.Time, error) {
	sessionID, err := m.store.Establish(ctx, userID)
	if err != nil {
		return "", time.Time{}, err
	}
	return m.codec.Encode(sessionID)
}

// Resolve maps a cookie value back to the bound user id.
func (m *Manager) Resolve(ctx context.Context, cookieValue string) (string, error) {
	sessionID, err := m.codec.Decode(cookieValue)
	if err != nil {
		return "", ErrNotFound
	}
	return m.store.Resolve(ctx, sessionID)
}

// End removes the binding for the session carried by the cookie value. An
// unparseable cookie ends trivially; logout always succeeds.
func (m *Manager) End(ctx context.Context, cookieValue string) error {
	sessionID, err := m.codec.Decode(cookieValue)
	if err != nil {
		return nil
	}
	return m.store.Destroy(ctx, sessionID)
}
