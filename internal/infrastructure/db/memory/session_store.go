// Package memory provides process-local stores used when no external backend
// is configured.
package memory

import (
	"context"
	"errors"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/marketplace/identity-api/internal/core/domain"
)

// SessionStore keeps sessions in a ttlcache keyed by session id. Each entry
// expires together with its session; reads do not extend the lifetime.
type SessionStore struct {
	cache *ttlcache.Cache[string, domain.Session]
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		cache: ttlcache.New[string, domain.Session](
			ttlcache.WithDisableTouchOnHit[string, domain.Session](),
		),
	}
}

// Start runs the expiry sweeper. It blocks until Stop is called.
func (s *SessionStore) Start() { s.cache.Start() }

// Stop ends the expiry sweeper started by Start.
func (s *SessionStore) Stop() { s.cache.Stop() }

func (s *SessionStore) Create(_ context.Context, session *domain.Session) error {
	ttl := ttlcache.NoTTL
	if !session.ExpiresAt.IsZero() {
		ttl = time.Until(session.ExpiresAt)
		if ttl <= 0 {
			return errors.New("create session: already expired")
		}
	}
	s.cache.Set(session.ID, *session, ttl)
	return nil
}

func (s *SessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	item := s.cache.Get(id)
	if item == nil {
		return nil, domain.ErrSessionNotFound
	}
	session := item.Value()
	return &session, nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	if _, ok := s.cache.GetAndDelete(id); !ok {
		return domain.ErrSessionNotFound
	}
	return nil
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	return s.cache.Len()
}
