package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"devhub/internal/auth"
	"devhub/internal/store"
	"devhub/internal/validate"
)

type AuthHandler struct {
	Users store.UserStore
	JWT   *auth.JWT
	Log   *slog.Logger
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

var loginRules = []validate.Rule{
	validate.Email("email", "Please provide valid email"),
	validate.NotEmpty("password", "Password is required"),
}

// Login exchanges credentials for a token. A missing user and a wrong
// password produce the same response so the email's existence stays hidden.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if errs := validate.Run(loginRules, map[string]string{
		"email":    req.Email,
		"password": req.Password,
	}); len(errs) > 0 {
		writeFieldErrors(w, http.StatusUnprocessableEntity, errs)
		return
	}

	u, err := h.Users.FindByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeErrorList(w, http.StatusBadRequest, "Authentication Failed: Invalid credential provided")
			return
		}
		h.Log.Error("login: lookup failed", "error", err)
		writeMsg(w, http.StatusInternalServerError, "Server Error")
		return
	}
	if !auth.ComparePassword(u.PasswordHash, req.Password) {
		writeErrorList(w, http.StatusBadRequest, "Authentication Failed: Invalid credential provided")
		return
	}

	token, err := h.JWT.Issue(auth.Claim{UserID: u.ID.Hex(), Email: u.Email}, tokenTTL)
	if err != nil {
		h.Log.Error("login: token issue failed", "error", err)
		writeMsg(w, http.StatusInternalServerError, "Server Error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Current returns the authenticated user, password excluded. A valid token
// for a since-deleted user misses here, not at verification time.
func (h *AuthHandler) Current(w http.ResponseWriter, r *http.Request) {
	claim, _ := auth.ClaimFromContext(r.Context())

	u, err := h.Users.FindByID(r.Context(), claim.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrMalformedID) {
			writeMsg(w, http.StatusNotFound, "User not found")
			return
		}
		h.Log.Error("current user: lookup failed", "error", err)
		writeMsg(w, http.StatusInternalServerError, "Server Error: Unknown user")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": u})
}
