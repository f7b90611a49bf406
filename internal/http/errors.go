package httpx

import (
	"errors"
	"net/http"

	"github.com/SlowBrain97/E-Commerce/internal/apiclient"
	apperrors "github.com/SlowBrain97/E-Commerce/internal/errors"
)

// AccessTokenCookie is the backend's access token cookie, also honoured on
// requests to the front door itself.
const AccessTokenCookie = apiclient.AccessTokenCookie

// writeActionError maps store and client failures onto an HTTP error response.
// The user-facing message has already been surfaced as a toast.
func writeActionError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		p := ErrorParams{Code: http.StatusInternalServerError, ErrCode: string(appErr.Code), Err: errors.New(appErr.Message)}
		switch appErr.Code {
		case apperrors.ErrCodeValidation:
			p.Code = http.StatusBadRequest
			if appErr.Field != "" {
				p.Fields = map[string]string{appErr.Field: appErr.Message}
			}
		case apperrors.ErrCodeNotFound:
			p.Code = http.StatusNotFound
		case apperrors.ErrCodeUnauthorized:
			p.Code = http.StatusUnauthorized
		case apperrors.ErrCodeInternal:
		}
		WriteError(w, r, p)
		return
	}

	var reqErr *apiclient.RequestError
	if errors.As(err, &reqErr) {
		p := ErrorParams{
			Code:    statusForKind(reqErr),
			ErrCode: string(reqErr.Kind),
			Err:     errors.New(apiclient.MessageOr(err, fallbackMessage(reqErr.Kind))),
			Fields:  reqErr.ValidationErrors,
		}
		WriteError(w, r, p)
		return
	}

	WriteError(w, r, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "internal", Err: errors.New(apiclient.MsgUnexpected)})
}

func statusForKind(e *apiclient.RequestError) int {
	switch e.Kind {
	case apiclient.KindNetwork:
		return http.StatusBadGateway
	case apiclient.KindConstruction:
		return http.StatusInternalServerError
	case apiclient.KindUnauthorized, apiclient.KindValidation, apiclient.KindForbidden,
		apiclient.KindNotFound, apiclient.KindConflict, apiclient.KindServer, apiclient.KindHTTP:
	}
	if e.Status >= 400 {
		return e.Status
	}
	return http.StatusBadGateway
}

func fallbackMessage(k apiclient.Kind) string {
	switch k {
	case apiclient.KindNetwork:
		return apiclient.MsgNetwork
	case apiclient.KindConstruction:
		return apiclient.MsgUnexpected
	default:
		return apiclient.MsgGeneric
	}
}
