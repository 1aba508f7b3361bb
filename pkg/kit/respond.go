package kit

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"
)

const maxErrorBody = 64 << 10

// APIResponse is the envelope the storefront backend uses for non-data replies.
type APIResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	WriteJSON(w, status, APIResponse{
		Success:   false,
		Message:   msg,
		RequestID: chimw.GetReqID(r.Context()),
	})
}

func WriteOK(w http.ResponseWriter, status int) {
	WriteJSON(w, status, APIResponse{Success: true})
}

// ReadAPIError extracts the message of a {success:false,message} body.
// ok is false when the body is empty or not an envelope.
func ReadAPIError(body io.Reader) (msg string, ok bool) {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(strings.TrimSpace(string(raw))) == 0 {
		return "", false
	}

	var env APIResponse
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", false
	}
	if env.Message == "" {
		return "", false
	}
	return env.Message, true
}

// BearerToken returns the token of an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") {
		return "", false
	}
	tok := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	return tok, tok != ""
}
