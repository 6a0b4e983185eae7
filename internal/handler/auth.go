package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/weddingwander/weddingwander/internal/model"
	"github.com/weddingwander/weddingwander/internal/repository"
	"github.com/weddingwander/weddingwander/internal/service"
)

type ctxKey int

const accountKey ctxKey = iota

// accountFrom returns the account stored by RequireAccount.
func accountFrom(ctx context.Context) model.Account {
	a, _ := ctx.Value(accountKey).(model.Account)
	return a
}

// AuthHandler holds the identity HTTP handlers.
type AuthHandler struct {
	identity *service.Identity
	tokens   *service.Tokens
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(identity *service.Identity, tokens *service.Tokens) *AuthHandler {
	return &AuthHandler{identity: identity, tokens: tokens}
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, r *http.Request, status int, account *model.Account) {
	token, err := h.tokens.Issue(account.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, status, model.AuthResponse{Token: token, Account: account.Public()})
}

// Signup handles POST /auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req model.SignupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	account, err := h.identity.Signup(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.respondWithToken(w, r, http.StatusCreated, account)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	account, err := h.identity.Login(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.respondWithToken(w, r, http.StatusOK, account)
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.identity.Logout(r.Context()); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Session handles GET /auth/session
// Returns the most recently logged-in account, or 204 when nobody is.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	account, err := h.identity.Current(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if account == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, account.Public())
}

// Me handles GET /me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, accountFrom(r.Context()).Public())
}

// RequireAccount resolves the bearer token to an account and rejects the
// request when it is missing or invalid.
func (h *AuthHandler) RequireAccount(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			writeServiceError(w, r, service.ErrUnauthenticated)
			return
		}
		id, err := h.tokens.Parse(strings.TrimSpace(raw))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		account, err := h.identity.Account(r.Context(), id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				writeServiceError(w, r, service.ErrUnauthenticated)
				return
			}
			writeServiceError(w, r, err)
			return
		}
		ctx := context.WithValue(r.Context(), accountKey, *account)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
