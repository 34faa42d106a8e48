package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-music-gateway/internal/application/auth"
	"github.com/go-music-gateway/internal/domain"
	"github.com/go-music-gateway/internal/pkg/validate"
)

// AuthHandler handles registration, login and token verification.
type AuthHandler struct {
	svc auth.Service
}

func NewAuthHandler(svc auth.Service) *AuthHandler { return &AuthHandler{svc: svc} }

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	u, err := h.svc.Register(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, AuthEnvelope{
		Message: "User registered successfully",
		User:    u,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	tok, u, err := h.svc.Login(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthEnvelope{Token: tok, User: u})
}

// Verify reports whether a token is currently valid. The token comes from the
// Authorization header, or from a {"token": "..."} body for callers that
// cannot set headers.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	tokenStr := bearerToken(r)
	if tokenStr == "" {
		var req struct {
			Token string `json:"token"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			tokenStr = req.Token
		}
	}
	if tokenStr == "" {
		writeJSON(w, http.StatusUnauthorized, VerifyEnvelope{Valid: false, Error: "no token provided"})
		return
	}

	claims, err := h.svc.Verify(tokenStr)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, VerifyEnvelope{Valid: false, Error: "invalid or expired token"})
		return
	}
	writeJSON(w, http.StatusOK, VerifyEnvelope{
		Valid: true,
		User:  &domain.User{ID: claims.UserID, Email: claims.Email},
	})
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
