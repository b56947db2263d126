package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/neatway/proclubs-stats-sub000/internal/domain/user"
	"github.com/neatway/proclubs-stats-sub000/internal/platform/id"
)

const oauthStateTTL = 10 * time.Minute

type AuthService struct {
	users      user.Repository
	sessions   user.SessionRepository
	oauth      OAuthProvider
	ids        id.Generator
	sessionTTL time.Duration
	now        func() time.Time

	// Pending login states, single-use with a short TTL. Single-process
	// like the rate limiter; a multi-replica deployment would move this
	// behind the session store.
	stateMu sync.Mutex
	states  map[string]time.Time
}

func NewAuthService(
	users user.Repository,
	sessions user.SessionRepository,
	oauth OAuthProvider,
	ids id.Generator,
	sessionTTL time.Duration,
) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 30 * 24 * time.Hour
	}
	return &AuthService{
		users:      users,
		sessions:   sessions,
		oauth:      oauth,
		ids:        ids,
		sessionTTL: sessionTTL,
		now:        time.Now,
		states:     make(map[string]time.Time),
	}
}

// LoginURL builds the provider redirect plus the CSRF state the
// callback must echo back.
func (s *AuthService) LoginURL(ctx context.Context) (string, string, error) {
	_, span := startUsecaseSpan(ctx, "usecase.apiAuthLogin")
	defer span.End()

	state, err := s.ids.NewID()
	if err != nil {
		return "", "", fmt.Errorf("generate oauth state: %w", err)
	}
	s.rememberState(state)
	return s.oauth.AuthorizeURL(state), state, nil
}

func (s *AuthService) rememberState(state string) {
	now := s.now().UTC()

	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	for pending, expiresAt := range s.states {
		if !expiresAt.After(now) {
			delete(s.states, pending)
		}
	}
	s.states[state] = now.Add(oauthStateTTL)
}

// consumeState burns a pending login state, reporting whether it was
// issued by this service and is still fresh.
func (s *AuthService) consumeState(state string) bool {
	now := s.now().UTC()

	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	expiresAt, ok := s.states[state]
	delete(s.states, state)
	return ok && expiresAt.After(now)
}

// HandleCallback verifies the echoed CSRF state, trades the
// authorization code for an identity, upserts the local account and
// issues a session token. States are single-use.
func (s *AuthService) HandleCallback(ctx context.Context, code, state string) (user.User, string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.apiAuthCallback")
	defer span.End()

	code = strings.TrimSpace(code)
	if code == "" {
		return user.User{}, "", fmt.Errorf("%w: authorization code is required", ErrInvalidInput)
	}
	state = strings.TrimSpace(state)
	if state == "" {
		return user.User{}, "", fmt.Errorf("%w: oauth state is required", ErrInvalidInput)
	}
	if !s.consumeState(state) {
		return user.User{}, "", fmt.Errorf("%w: unknown or expired oauth state", ErrUnauthorized)
	}

	identity, err := s.oauth.Authenticate(ctx, code)
	if err != nil {
		return user.User{}, "", fmt.Errorf("authenticate with provider: %w", err)
	}

	account, err := s.upsertAccount(ctx, identity)
	if err != nil {
		return user.User{}, "", err
	}

	token, err := s.ids.NewID()
	if err != nil {
		return user.User{}, "", fmt.Errorf("generate session token: %w", err)
	}
	now := s.now().UTC()
	session := user.Session{
		Token:     token,
		UserID:    account.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return user.User{}, "", fmt.Errorf("create session: %w", err)
	}

	return account, token, nil
}

// VerifyToken resolves a bearer token to the authenticated principal.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (user.Principal, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.apiAuthVerify")
	defer span.End()

	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: missing bearer token", ErrUnauthorized)
	}

	session, exists, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return user.Principal{}, fmt.Errorf("get session: %w", err)
	}
	if !exists {
		return user.Principal{}, fmt.Errorf("%w: unknown session", ErrUnauthorized)
	}
	if session.Expired(s.now().UTC()) {
		_ = s.sessions.Delete(ctx, token)
		return user.Principal{}, fmt.Errorf("%w: session expired", ErrUnauthorized)
	}

	account, exists, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		return user.Principal{}, fmt.Errorf("get session user: %w", err)
	}
	if !exists {
		return user.Principal{}, fmt.Errorf("%w: session user no longer exists", ErrUnauthorized)
	}

	return user.Principal{
		UserID:      account.ID,
		DiscordID:   account.DiscordID,
		Username:    account.Username,
		ConsoleName: account.ConsoleName,
	}, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.apiAuthLogout")
	defer span.End()

	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("%w: missing bearer token", ErrUnauthorized)
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.apiAuthMe")
	defer span.End()

	account, exists, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	if !exists {
		return user.User{}, fmt.Errorf("%w: user_id=%s", ErrNotFound, userID)
	}
	return account, nil
}

// SetConsoleName records the in-game name claims are verified against.
func (s *AuthService) SetConsoleName(ctx context.Context, userID, consoleName string) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.apiAuthSetConsoleName")
	defer span.End()

	consoleName = strings.TrimSpace(consoleName)
	if consoleName == "" {
		return user.User{}, fmt.Errorf("%w: console name is required", ErrInvalidInput)
	}
	if len(consoleName) > 64 {
		return user.User{}, fmt.Errorf("%w: console name too long", ErrInvalidInput)
	}

	if err := s.users.SetConsoleName(ctx, userID, consoleName); err != nil {
		return user.User{}, fmt.Errorf("set console name: %w", err)
	}
	return s.Me(ctx, userID)
}

// PurgeExpiredSessions removes dead sessions, called from the internal
// job surface.
func (s *AuthService) PurgeExpiredSessions(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.jobPurgeSessions")
	defer span.End()

	if err := s.sessions.DeleteExpired(ctx); err != nil {
		return fmt.Errorf("delete expired sessions: %w", err)
	}
	return nil
}

func (s *AuthService) upsertAccount(ctx context.Context, identity OAuthIdentity) (user.User, error) {
	if strings.TrimSpace(identity.ProviderUserID) == "" {
		return user.User{}, fmt.Errorf("%w: provider identity missing id", ErrUnauthorized)
	}

	now := s.now().UTC()
	existing, exists, err := s.users.GetByDiscordID(ctx, identity.ProviderUserID)
	if err != nil {
		return user.User{}, fmt.Errorf("get user by discord id: %w", err)
	}

	account := existing
	if !exists {
		newID, err := s.ids.NewID()
		if err != nil {
			return user.User{}, fmt.Errorf("generate user id: %w", err)
		}
		account = user.User{
			ID:        newID,
			DiscordID: identity.ProviderUserID,
			CreatedAt: now,
		}
	}
	account.Username = strings.TrimSpace(identity.Username)
	account.AvatarHash = strings.TrimSpace(identity.AvatarHash)
	account.UpdatedAt = now

	if err := account.Validate(); err != nil {
		return user.User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.users.Upsert(ctx, account); err != nil {
		return user.User{}, fmt.Errorf("upsert user: %w", err)
	}
	return account, nil
}
