package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/SlowBrain97/E-Commerce/internal/apiclient"
	domainauth "github.com/SlowBrain97/E-Commerce/internal/domain/auth"
	"github.com/SlowBrain97/E-Commerce/internal/domain/model"
	apperrors "github.com/SlowBrain97/E-Commerce/internal/errors"
	"github.com/SlowBrain97/E-Commerce/internal/observability/metrics"
	"github.com/SlowBrain97/E-Commerce/internal/observability/notify"
	"github.com/SlowBrain97/E-Commerce/internal/observability/statsd"
	"github.com/SlowBrain97/E-Commerce/internal/ports"
)

// Session store notification messages.
const (
	MsgLoginSuccess         = "Login successful!"
	MsgLoginFailed          = "Login failed"
	MsgRegisterSuccess      = "Registration successful!"
	MsgRegisterFailed       = "Registration failed"
	MsgLogoutSuccess        = "Logged out successfully"
	MsgPasswordChanged      = "Password changed successfully"
	MsgPasswordChangeFailed = "Failed to change password"
)

// ErrNotSignedIn is returned to callers that need an identity while none is cached.
var ErrNotSignedIn = apperrors.Unauthorized("Please sign in first")

// SessionStoreOptions groups dependencies for SessionStore.
type SessionStoreOptions struct {
	Auth        AuthBackend
	State       ports.StateStore
	Cart        *CartStore
	Credentials CredentialResetter
	Sink        notify.Sink
	Logger      *slog.Logger
	Metrics     statsd.Sink
}

// SessionStore is the client's record of who is signed in.
// Actions are not serialized against each other; the mutex only keeps
// readers from observing a half-written snapshot.
type SessionStore struct {
	auth        AuthBackend
	state       ports.StateStore
	cart        *CartStore
	credentials CredentialResetter
	sink        notify.Sink
	logger      *slog.Logger
	metrics     statsd.Sink

	mu      sync.RWMutex
	session domainauth.Session
	status  domainauth.State
}

// NewSessionStore constructs an anonymous SessionStore.
func NewSessionStore(opts SessionStoreOptions) *SessionStore {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionStore{
		auth:        opts.Auth,
		state:       opts.State,
		cart:        opts.Cart,
		credentials: opts.Credentials,
		sink:        notify.OrNop(opts.Sink),
		logger:      logger.With("component", "session_store"),
		metrics:     opts.Metrics,
		status:      domainauth.StateAnonymous,
	}
}

// Snapshot returns a copy of the current session.
func (s *SessionStore) Snapshot() domainauth.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.session
	if out.User != nil {
		u := *out.User
		out.User = &u
	}
	return out
}

// State returns the lifecycle state.
func (s *SessionStore) State() domainauth.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// User returns a copy of the signed-in identity or nil.
func (s *SessionStore) User() *domainauth.UserInfo {
	return s.Snapshot().User
}

// RequireUser returns a copy of the signed-in identity or ErrNotSignedIn.
func (s *SessionStore) RequireUser() (*domainauth.UserInfo, error) {
	if u := s.User(); u != nil {
		return u, nil
	}
	return nil, ErrNotSignedIn
}

// IsAuthenticated reports whether a user is signed in.
func (s *SessionStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.IsAuthenticated
}

// set is the only writer of the snapshot. It refuses a session that claims
// to be authenticated without a user and persists what it accepted.
func (s *SessionStore) set(ctx context.Context, sess domainauth.Session, status domainauth.State) {
	if !sess.Valid() {
		s.logger.WarnContext(ctx, "refusing authenticated session without user")
		sess = domainauth.Session{}
		status = domainauth.StateAnonymous
	}
	s.mu.Lock()
	s.session = sess
	s.status = status
	s.mu.Unlock()

	if err := saveJSON(ctx, s.state, SessionStateKey, sess); err != nil {
		s.logger.WarnContext(ctx, "persist session failed", "error", err)
	}
}

func (s *SessionStore) setStatus(status domainauth.State) {
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
}

// Login signs in with credentials. On failure the previous session is kept,
// which for the usual anonymous caller means returning to anonymous.
func (s *SessionStore) Login(ctx context.Context, req domainauth.LoginRequest) (*domainauth.UserInfo, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.authenticate(ctx, "login", MsgLoginSuccess, MsgLoginFailed, func() (*domainauth.AuthResponse, error) {
		return s.auth.Login(ctx, req, apiclient.Quiet())
	})
}

// Register creates an account and signs it in.
func (s *SessionStore) Register(ctx context.Context, req domainauth.RegisterRequest) (*domainauth.UserInfo, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.authenticate(ctx, "register", MsgRegisterSuccess, MsgRegisterFailed, func() (*domainauth.AuthResponse, error) {
		return s.auth.Register(ctx, req, apiclient.Quiet())
	})
}

// CompleteOAuth2 finishes a provider login from its callback parameters.
func (s *SessionStore) CompleteOAuth2(ctx context.Context, params map[string]string) (*domainauth.UserInfo, error) {
	return s.authenticate(ctx, "oauth2", MsgLoginSuccess, MsgLoginFailed, func() (*domainauth.AuthResponse, error) {
		return s.auth.OAuth2Callback(ctx, params, apiclient.Quiet())
	})
}

func (s *SessionStore) authenticate(
	ctx context.Context,
	action, okMsg, failMsg string,
	call func() (*domainauth.AuthResponse, error),
) (*domainauth.UserInfo, error) {
	s.mu.RLock()
	prev, prevStatus := s.session, s.status
	s.mu.RUnlock()

	s.setStatus(domainauth.StateAuthenticating)
	resp, err := call()
	metrics.EmitStoreAction(s.metrics, metrics.StoreAction{Store: "session", Action: action, Err: err})
	if err != nil {
		s.mu.Lock()
		s.session, s.status = prev, prevStatus
		s.mu.Unlock()
		s.sink.Notify(ctx, notify.Error(apiclient.MessageOr(err, failMsg)))
		return nil, err
	}

	user := resp.User
	s.set(ctx, domainauth.Session{User: &user, IsAuthenticated: true}, domainauth.StateAuthenticated)
	s.logger.InfoContext(ctx, "signed in", "action", action, "user_id", user.ID, "role", string(user.Role))
	s.sink.Notify(ctx, notify.Success(okMsg))
	out := user
	return &out, nil
}

// Logout always ends anonymous. A failed remote logout is only logged; the
// returned error reports local cleanup failures.
func (s *SessionStore) Logout(ctx context.Context) error {
	if err := s.auth.Logout(ctx, apiclient.Quiet()); err != nil {
		s.logger.WarnContext(ctx, "remote logout failed", "error", err)
	}
	metrics.EmitStoreAction(s.metrics, metrics.StoreAction{Store: "session", Action: "logout"})

	s.mu.Lock()
	s.session = domainauth.Session{}
	s.status = domainauth.StateAnonymous
	s.mu.Unlock()

	var errs []error
	if err := deleteKey(ctx, s.state, SessionStateKey); err != nil {
		errs = append(errs, err)
	}
	if s.cart != nil {
		if err := s.cart.Reset(ctx); err != nil {
			errs = append(errs, err)
		}
	} else if err := deleteKey(ctx, s.state, CartStateKey); err != nil {
		errs = append(errs, err)
	}
	if s.credentials != nil {
		if err := s.credentials.ResetCredentials(); err != nil {
			errs = append(errs, err)
		}
	}

	s.sink.Notify(ctx, notify.Success(MsgLogoutSuccess))
	return errors.Join(errs...)
}

// CheckAuth refreshes the identity from the backend. Failures leave the
// session untouched and are only logged so startup never blocks on them.
func (s *SessionStore) CheckAuth(ctx context.Context) {
	user, err := s.auth.Me(ctx, apiclient.Quiet())
	if err != nil {
		s.logger.InfoContext(ctx, "auth check failed", "kind", string(apiclient.KindOf(err)), "error", err)
		return
	}
	s.set(ctx, domainauth.Session{User: user, IsAuthenticated: true}, domainauth.StateAuthenticated)
}

// ChangePassword changes the signed-in user's password.
func (s *SessionStore) ChangePassword(ctx context.Context, req domainauth.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	err := s.auth.ChangePassword(ctx, req, apiclient.Quiet())
	metrics.EmitStoreAction(s.metrics, metrics.StoreAction{Store: "session", Action: "change_password", Err: err})
	if err != nil {
		s.sink.Notify(ctx, notify.Error(apiclient.MessageOr(err, MsgPasswordChangeFailed)))
		return err
	}
	s.sink.Notify(ctx, notify.Success(MsgPasswordChanged))
	return nil
}

// SetUser replaces the cached identity. A nil user signs the session out locally.
func (s *SessionStore) SetUser(ctx context.Context, user *domainauth.UserInfo) {
	if user == nil {
		s.ClearAuth(ctx)
		return
	}
	u := *user
	s.mu.RLock()
	sess := s.session
	status := s.status
	s.mu.RUnlock()
	sess.User = &u
	s.set(ctx, sess, status)
}

// ApplyProfile mirrors an updated profile's names and avatar into the cached
// identity. It does nothing while signed out.
func (s *SessionStore) ApplyProfile(ctx context.Context, p *model.UserProfile) {
	user := s.User()
	if user == nil || p == nil {
		return
	}
	user.FirstName = p.FirstName
	user.LastName = p.LastName
	user.FullName = strings.TrimSpace(p.FirstName + " " + p.LastName)
	if p.AvatarURL != "" {
		user.AvatarURL = p.AvatarURL
	}
	s.SetUser(ctx, user)
}

// ClearAuth forgets the session locally without calling the backend.
func (s *SessionStore) ClearAuth(ctx context.Context) {
	s.mu.Lock()
	s.session = domainauth.Session{}
	s.status = domainauth.StateAnonymous
	s.mu.Unlock()
	if err := deleteKey(ctx, s.state, SessionStateKey); err != nil {
		s.logger.WarnContext(ctx, "clear persisted session failed", "error", err)
	}
}

// Restore loads the persisted session. A record that is unreadable or claims
// authentication without a user is discarded.
func (s *SessionStore) Restore(ctx context.Context) error {
	var sess domainauth.Session
	found, err := loadJSON(ctx, s.state, SessionStateKey, &sess)
	if !found {
		return err
	}
	if err != nil || !sess.Valid() {
		s.logger.WarnContext(ctx, "discarding persisted session", "error", err)
		return deleteKey(ctx, s.state, SessionStateKey)
	}

	status := domainauth.StateAnonymous
	if sess.IsAuthenticated {
		status = domainauth.StateAuthenticated
	}
	s.mu.Lock()
	s.session = sess
	s.status = status
	s.mu.Unlock()
	return nil
}
