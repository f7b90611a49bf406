package httpx

import (
	"net/http"

	"github.com/SlowBrain97/E-Commerce/internal/api"
	"github.com/SlowBrain97/E-Commerce/internal/domain/model"
	"github.com/SlowBrain97/E-Commerce/internal/observability/notify"
	"github.com/SlowBrain97/E-Commerce/internal/service"
)

// MsgProfileUpdated is shown after a successful profile update.
const MsgProfileUpdated = "Profile updated successfully"

// ProfileHandlers serves the signed-in user's profile page.
type ProfileHandlers struct {
	API     *api.API
	Session *service.SessionStore
	Sink    notify.Sink
}

// Show returns the profile.
// GET /profile.
func (h *ProfileHandlers) Show(w http.ResponseWriter, r *http.Request) {
	profile, err := h.API.Users.Profile(r.Context())
	if err != nil {
		writeActionError(w, r, err)
		return
	}
	WritePage(w, r, http.StatusOK, profile)
}

// Update changes the profile and mirrors the new names into the session.
// PUT /profile.
func (h *ProfileHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateProfileRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	profile, err := h.API.Users.UpdateProfile(r.Context(), req)
	if err != nil {
		writeActionError(w, r, err)
		return
	}
	h.Session.ApplyProfile(r.Context(), profile)
	notify.OrNop(h.Sink).Notify(r.Context(), notify.Success(MsgProfileUpdated))
	WritePage(w, r, http.StatusOK, profile)
}
