package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/marketplace/identity-api/internal/core/domain"
	"github.com/marketplace/identity-api/internal/core/ports"
)

// Authenticator matches an identifier/secret pair to a user profile.
type Authenticator interface {
	Resolve(identifier, secret string) (domain.User, bool)
}

// AuthOptions tunes AuthService. Zero values fall back to defaults.
type AuthOptions struct {
	TokenTTL time.Duration
	// LoginDelay simulates backend latency before resolving credentials.
	LoginDelay time.Duration
}

// AuthService implements login, logout and session lookup.
type AuthService struct {
	resolver  Authenticator
	sessions  ports.SessionStore
	recorder  ports.LoginRecorder
	jwtSecret string
	opts      AuthOptions
	log       zerolog.Logger

	now   func() time.Time
	newID func() string
}

func NewAuthService(
	resolver Authenticator,
	sessions ports.SessionStore,
	recorder ports.LoginRecorder,
	jwtSecret string,
	opts AuthOptions,
	log zerolog.Logger,
) *AuthService {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	return &AuthService{
		resolver:  resolver,
		sessions:  sessions,
		recorder:  recorder,
		jwtSecret: jwtSecret,
		opts:      opts,
		log:       log,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	if s.opts.LoginDelay > 0 {
		t := time.NewTimer(s.opts.LoginDelay)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}

	fp := domain.Fingerprint(in.Identifier)
	now := s.now().UTC()

	user, ok := s.resolver.Resolve(in.Identifier, in.Secret)
	if !ok {
		s.record(domain.LoginEvent{
			Fingerprint: fp,
			Outcome:     domain.LoginFailed,
			IP:          in.IP,
			UserAgent:   in.UserAgent,
			Timestamp:   now,
		})
		s.log.Info().Str("identifier_fp", fp).Str("ip", in.IP).Msg("login rejected")
		return nil, domain.ErrInvalidCredentials
	}

	session := &domain.Session{
		ID:        s.newID(),
		User:      user,
		CreatedAt: now,
		ExpiresAt: now.Add(s.opts.TokenTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("login: create session: %w", err)
	}

	// The newer login supersedes whatever session the caller held before.
	if in.PreviousSessionID != "" && in.PreviousSessionID != session.ID {
		if err := s.sessions.Delete(ctx, in.PreviousSessionID); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
			s.log.Warn().Err(err).Str("session_id", in.PreviousSessionID).Msg("failed to revoke superseded session")
		}
	}

	token, err := s.generateToken(session)
	if err != nil {
		_ = s.sessions.Delete(ctx, session.ID)
		return nil, fmt.Errorf("login: sign token: %w", err)
	}

	s.record(domain.LoginEvent{
		Fingerprint: fp,
		Outcome:     domain.LoginSucceeded,
		UserID:      user.ID,
		Role:        user.Role,
		SessionID:   session.ID,
		IP:          in.IP,
		UserAgent:   in.UserAgent,
		Timestamp:   now,
	})
	s.log.Info().
		Str("user_id", user.ID).
		Str("role", string(user.Role)).
		Str("session_id", session.ID).
		Msg("login succeeded")

	return &ports.LoginResult{
		Token:      token,
		SessionID:  session.ID,
		ExpiresAt:  session.ExpiresAt,
		User:       user,
		RedirectTo: domain.LandingRoute(user.Role),
	}, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return domain.ErrSessionNotFound
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}

	s.record(domain.LoginEvent{
		Outcome:   domain.LoggedOut,
		UserID:    session.User.ID,
		Role:      session.User.Role,
		SessionID: sessionID,
		Timestamp: s.now().UTC(),
	})
	s.log.Info().Str("user_id", session.User.ID).Str("session_id", sessionID).Msg("logout")
	return nil
}

func (s *AuthService) Session(ctx context.Context, sessionID string) (*domain.Session, error) {
	if sessionID == "" {
		return nil, domain.ErrSessionNotFound
	}
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Expired(s.now()) {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

func (s *AuthService) record(event domain.LoginEvent) {
	if s.recorder == nil {
		return
	}
	s.recorder.Record(event)
}

func (s *AuthService) generateToken(session *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sub":  session.User.ID,
		"sid":  session.ID,
		"role": string(session.User.Role),
		"name": session.User.Name,
		"iat":  session.CreatedAt.Unix(),
		"exp":  session.ExpiresAt.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
