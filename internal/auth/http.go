package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"QKart/pkg/kit"
)

const (
	maxBodyBytes = 1 << 20
	minFieldLen  = 6
	tokenTTL     = 24 * time.Hour
)

type Server struct {
	Log   *zap.Logger
	Store UserStore
	JWT   *TokenMaker
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResp struct {
	Success  bool   `json:"success"`
	Token    string `json:"token"`
	Username string `json:"username"`
	Balance  int64  `json:"balance"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	if msg := validateRegister(req); msg != "" {
		kit.WriteError(w, r, http.StatusBadRequest, msg)
		return
	}

	err := s.Store.Create(r.Context(), "u_"+uuid.NewString(), req.Username, req.Password)
	switch {
	case errors.Is(err, ErrUsernameTaken):
		kit.WriteError(w, r, http.StatusBadRequest, "Username is already taken")
		return
	case err != nil:
		s.log().Error("create user failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error")
		return
	}

	kit.WriteOK(w, http.StatusCreated)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	if req.Username == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "Username is a required field")
		return
	}
	if req.Password == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "Password is a required field")
		return
	}

	u, err := s.Store.Verify(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, ErrUnknownUser):
		kit.WriteError(w, r, http.StatusBadRequest, "Username does not exist")
		return
	case errors.Is(err, ErrInvalidPassword):
		kit.WriteError(w, r, http.StatusBadRequest, "Password is incorrect")
		return
	case err != nil:
		s.log().Error("verify user failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error")
		return
	}

	tok, err := s.JWT.New(u.ID, u.Username, tokenTTL)
	if err != nil {
		s.log().Error("token issue", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error")
		return
	}

	kit.WriteJSON(w, http.StatusCreated, loginResp{
		Success:  true,
		Token:    tok,
		Username: u.Username,
		Balance:  u.Balance,
	})
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (credentials, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req credentials
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json")
		return credentials{}, false
	}

	req.Username = normalizeUsername(req.Username)
	return req, true
}

func validateRegister(c credentials) string {
	switch {
	case c.Username == "":
		return "Username is a required field"
	case len(c.Username) < minFieldLen:
		return "Username must be at least 6 characters"
	case c.Password == "":
		return "Password is a required field"
	case len(c.Password) < minFieldLen:
		return "Password must be at least 6 characters"
	}
	return ""
}

func normalizeUsername(u string) string {
	return strings.ToLower(strings.TrimSpace(u))
}

func (s *Server) log() *zap.Logger { return kit.OrNop(s.Log) }
