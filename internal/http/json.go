package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/SlowBrain97/E-Commerce/internal/observability/notify"
)

// DecodeJSON decodes JSON from the request body into the destination and handles errors.
// Returns true if successful, false if there was an error (error response already written).
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		WriteError(w, r, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_json", Err: err})
		return false
	}

	return true
}

// WriteJSON writes a JSON response with the given status code and data.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		// Response writer errors (e.g., client disconnect) can't be recovered from here.
		return
	}
}

// PageResponse is the body of every front door page. Toasts and Redirect
// carry what the stores and the API client surfaced while serving it.
type PageResponse struct {
	Data     any            `json:"data,omitempty"`
	Toasts   []notify.Toast `json:"toasts,omitempty"`
	Redirect string         `json:"redirect,omitempty"`
}

// WritePage writes data together with the request's collected toasts and redirect.
func WritePage(w http.ResponseWriter, r *http.Request, code int, data any) {
	resp := PageResponse{Data: data}
	if p := pageFrom(r.Context()); p != nil {
		resp.Toasts = p.toasts.Drain()
		resp.Redirect = p.Redirect()
	}
	WriteJSON(w, code, resp)
}

// ErrorParams groups parameters for WriteError.
type ErrorParams struct {
	Code     int
	ErrCode  string
	Err      error
	Fields   map[string]string
	Redirect string
}

type errorBody struct {
	Error            string            `json:"error"`
	Message          string            `json:"message"`
	ValidationErrors map[string]string `json:"validationErrors,omitempty"`
	Toasts           []notify.Toast    `json:"toasts,omitempty"`
	Redirect         string            `json:"redirect,omitempty"`
}

// WriteError writes a JSON error response using ErrorParams.
func WriteError(w http.ResponseWriter, r *http.Request, p ErrorParams) {
	body := errorBody{Error: p.ErrCode, Message: p.Err.Error(), ValidationErrors: p.Fields, Redirect: p.Redirect}
	if pg := pageFrom(r.Context()); pg != nil {
		body.Toasts = pg.toasts.Drain()
		if body.Redirect == "" {
			body.Redirect = pg.Redirect()
		}
	}
	WriteJSON(w, p.Code, body)
}
