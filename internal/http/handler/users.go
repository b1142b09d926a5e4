package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"devhub/internal/auth"
	"devhub/internal/gravatar"
	"devhub/internal/store"
	"devhub/internal/validate"
)

// tokenTTL bounds how long an issued token stays valid.
const tokenTTL = 6 * 24 * time.Hour

type UsersHandler struct {
	Users store.UserStore
	JWT   *auth.JWT
	Log   *slog.Logger
}

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

var registerRules = []validate.Rule{
	validate.NotEmpty("name", "Name is required"),
	validate.Email("email", "Please provide valid email"),
	validate.MinLen("password", 6, "Please provide password with 6 or more character"),
}

func (h *UsersHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if errs := validate.Run(registerRules, map[string]string{
		"name":     req.Name,
		"email":    req.Email,
		"password": req.Password,
	}); len(errs) > 0 {
		writeFieldErrors(w, http.StatusUnprocessableEntity, errs)
		return
	}

	if _, err := h.Users.FindByEmail(r.Context(), req.Email); err == nil {
		writeErrorList(w, http.StatusBadRequest, "Email has already be taken")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		h.Log.Error("register: email lookup failed", "error", err)
		writeMsg(w, http.StatusInternalServerError, "Server Error: User cannot be created")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.Log.Error("register: hash failed", "error", err)
		writeMsg(w, http.StatusInternalServerError, "Server Error: User cannot be created")
		return
	}

	u := store.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		PasswordHash: hash,
		Avatar:       gravatar.URL(req.Email),
	}
	if err := h.Users.Create(r.Context(), &u); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			writeErrorList(w, http.StatusBadRequest, "Email has already be taken")
			return
		}
		h.Log.Error("register: insert failed", "error", err)
		writeMsg(w, http.StatusInternalServerError, "Server Error: User cannot be created")
		return
	}

	token, err := h.JWT.Issue(auth.Claim{UserID: u.ID.Hex(), Email: u.Email}, tokenTTL)
	if err != nil {
		h.Log.Error("register: token issue failed", "error", err)
		writeMsg(w, http.StatusInternalServerError, "Server Error: User cannot be created")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
