package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/SlowBrain97/E-Commerce/internal/domain/auth"
	"github.com/SlowBrain97/E-Commerce/internal/guard"
	"github.com/SlowBrain97/E-Commerce/internal/service"
)

// AuthHandlers provides HTTP handlers for the session store.
type AuthHandlers struct {
	Session *service.SessionStore
	Logger  *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

type sessionView struct {
	State           domainauth.State     `json:"state"`
	IsAuthenticated bool                 `json:"isAuthenticated"`
	User            *domainauth.UserInfo `json:"user"`
}

func (h *AuthHandlers) view() sessionView {
	snap := h.Session.Snapshot()
	return sessionView{State: h.Session.State(), IsAuthenticated: snap.IsAuthenticated, User: snap.User}
}

// LoginPage reports the session and echoes the pending redirect.
// GET /auth/login?redirect=<path>.
func (h *AuthHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	v := h.view()
	if v.IsAuthenticated {
		if p := pageFrom(r.Context()); p != nil {
			p.setRedirect(guard.PostLoginPath(v.User))
		}
	}
	WritePage(w, r, http.StatusOK, map[string]any{
		"session":  v,
		"redirect": guard.SafeRedirect(r.URL.Query().Get(guard.RedirectParam), ""),
	})
}

// Login signs in and points the caller at the role's landing page.
// POST /auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req domainauth.LoginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	user, err := h.Session.Login(r.Context(), req)
	if err != nil {
		writeActionError(w, r, err)
		return
	}
	h.landOn(r, user)
	WritePage(w, r, http.StatusOK, h.view())
}

// Register creates an account and signs it in.
// POST /auth/register.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req domainauth.RegisterRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	user, err := h.Session.Register(r.Context(), req)
	if err != nil {
		writeActionError(w, r, err)
		return
	}
	h.landOn(r, user)
	WritePage(w, r, http.StatusCreated, h.view())
}

func (h *AuthHandlers) landOn(r *http.Request, user *domainauth.UserInfo) {
	if p := pageFrom(r.Context()); p != nil {
		p.setRedirect(guard.PostLoginPath(user))
	}
}

// Logout ends the session. It always succeeds from the caller's view.
// POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Session.Logout(r.Context()); err != nil {
		h.logger().WarnContext(r.Context(), "logout cleanup incomplete", "error", err)
	}
	if p := pageFrom(r.Context()); p != nil {
		p.setRedirect(guard.HomePath)
	}
	WritePage(w, r, http.StatusOK, h.view())
}

// Me refreshes the identity from the backend and returns the session.
// GET /auth/me.
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	h.Session.CheckAuth(r.Context())
	WritePage(w, r, http.StatusOK, h.view())
}

// ChangePassword changes the signed-in user's password.
// POST /auth/change-password.
func (h *AuthHandlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req domainauth.ChangePasswordRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if _, err := h.Session.RequireUser(); err != nil {
		writeActionError(w, r, err)
		return
	}
	if err := h.Session.ChangePassword(r.Context(), req); err != nil {
		writeActionError(w, r, err)
		return
	}
	WritePage(w, r, http.StatusOK, nil)
}

// OAuth2Callback completes a provider login from the callback query.
// GET /auth/oauth2/callback.
func (h *AuthHandlers) OAuth2Callback(w http.ResponseWriter, r *http.Request) {
	params := make(map[string]string)
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			params[k] = v[0]
		}
	}
	user, err := h.Session.CompleteOAuth2(r.Context(), params)
	if err != nil {
		writeActionError(w, r, err)
		return
	}
	h.landOn(r, user)
	WritePage(w, r, http.StatusOK, h.view())
}
