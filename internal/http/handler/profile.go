package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"devhub/internal/auth"
	"devhub/internal/github"
	"devhub/internal/store"
	"devhub/internal/validate"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type ProfileHandler struct {
	Profiles store.ProfileStore
	Users    store.UserStore
	Posts    store.PostStore
	Github   *github.Client
	Log      *slog.Logger
}

type upsertProfileReq struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Status         string `json:"status"`
	Skills         string `json:"skills"`
	Bio            string `json:"bio"`
	GithubUsername string `json:"githubusername"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	Linkedin       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

var profileRules = []validate.Rule{
	validate.NotEmpty("status", "Status is required"),
	validate.NotEmpty("skills", "Skills is required"),
}

// Upsert creates or updates the caller's profile. Skills arrive as a
// comma-separated string and are stored as a list.
func (h *ProfileHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	claim, _ := auth.ClaimFromContext(r.Context())

	var req upsertProfileReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validate.Run(profileRules, map[string]string{
		"status": req.Status,
		"skills": req.Skills,
	}); len(errs) > 0 {
		writeFieldErrors(w, http.StatusUnprocessableEntity, errs)
		return
	}

	uid, err := bson.ObjectIDFromHex(claim.UserID)
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	var skills []string
	for _, s := range strings.Split(req.Skills, ",") {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}

	p := store.Profile{
		UserID:         uid,
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Status:         req.Status,
		Skills:         skills,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Social: store.Social{
			Youtube:   req.Youtube,
			Twitter:   req.Twitter,
			Facebook:  req.Facebook,
			Linkedin:  req.Linkedin,
			Instagram: req.Instagram,
		},
	}

	saved, err := h.Profiles.Upsert(r.Context(), &p)
	if err != nil {
		h.Log.Error("upsert profile failed", "error", err)
		writeMsg(w, http.StatusInternalServerError, "Server Error")
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	claim, _ := auth.ClaimFromContext(r.Context())

	p, err := h.Profiles.FindByUser(r.Context(), claim.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMsg(w, http.StatusBadRequest, "No profile is available for this user")
			return
		}
		h.Log.Error("get own profile failed", "error", err)
		writeMsg(w, http.StatusInternalServerError, "Server Error")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.Profiles.FindAll(r.Context())
	if err != nil {
		h.Log.Error("list profiles failed", "error", err)
		writeMsg(w, http.StatusInternalServerError, "Server Error")
		return
	}
	if profiles == nil {
		profiles = []store.Profile{}
	}
	writeJSON(w, http.StatusOK, profiles)
}

func (h *ProfileHandler) ByUser(w http.ResponseWriter, r *http.Request) {
	p, err := h.Profiles.FindByUser(r.Context(), chi.URLParam(r, "user_id"))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrMalformedID):
			writeMsg(w, http.StatusBadRequest, "Invalid user id")
		case errors.Is(err, store.ErrNotFound):
			writeMsg(w, http.StatusNotFound, "Profile not found")
		default:
			h.Log.Error("get profile by user failed", "error", err)
			writeMsg(w, http.StatusInternalServerError, "Server Error")
		}
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// DeleteAccount removes the caller's posts, profile, and user record.
func (h *ProfileHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	claim, _ := auth.ClaimFromContext(r.Context())

	if err := h.Posts.DeleteByUser(r.Context(), claim.UserID); err != nil {
		h.Log.Error("delete account: posts cleanup failed", "error", err)
		writeMsg(w, http.StatusInternalServerError, "Server Error")
		return
	}
	if err := h.Profiles.DeleteByUser(r.Context(), claim.UserID); err != nil {
		h.Log.Error("delete account: profile cleanup failed", "error", err)
		writeMsg(w, http.StatusInternalServerError, "Server Error")
		return
	}
	if err := h.Users.Delete(r.Context(), claim.UserID); err != nil && !errors.Is(err, store.ErrNotFound) {
		h.Log.Error("delete account: user delete failed", "error", err)
		writeMsg(w, http.StatusInternalServerError, "Server Error")
		return
	}
	writeMsg(w, http.StatusOK, "User deleted successfully")
}

type experienceReq struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

var experienceRules = []validate.Rule{
	validate.NotEmpty("title", "Title is required"),
	validate.NotEmpty("company", "Company is required"),
	validate.NotEmpty("from", "From date is required"),
}

func (h *ProfileHandler) AddExperience(w http.ResponseWriter, r *http.Request) {
	claim, _ := auth.ClaimFromContext(r.Context())

	var req experienceReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validate.Run(experienceRules, map[string]string{
		"title":   req.Title,
		"company": req.Company,
		"from":    req.From,
	}); len(errs) > 0 {
		writeFieldErrors(w, http.StatusUnprocessableEntity, errs)
		return
	}

	from, err := parseDate(req.From)
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "Invalid from date")
		return
	}
	to, err := parseOptionalDate(req.To)
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "Invalid to date")
		return
	}

	p, err := h.Profiles.AddExperience(r.Context(), claim.UserID, store.Experience{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        from,
		To:          to,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		h.respondProfileErr(w, err, "add experience")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProfileHandler) RemoveExperience(w http.ResponseWriter, r *http.Request) {
	claim, _ := auth.ClaimFromContext(r.Context())

	p, err := h.Profiles.RemoveExperience(r.Context(), claim.UserID, chi.URLParam(r, "id"))
	if err != nil {
		h.respondProfileErr(w, err, "remove experience")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type educationReq struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

var educationRules = []validate.Rule{
	validate.NotEmpty("school", "School is required"),
	validate.NotEmpty("degree", "Degree is required"),
	validate.NotEmpty("fieldofstudy", "Field of study is required"),
	validate.NotEmpty("from", "From date is required"),
}

func (h *ProfileHandler) AddEducation(w http.ResponseWriter, r *http.Request) {
	claim, _ := auth.ClaimFromContext(r.Context())

	var req educationReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validate.Run(educationRules, map[string]string{
		"school":       req.School,
		"degree":       req.Degree,
		"fieldofstudy": req.FieldOfStudy,
		"from":         req.From,
	}); len(errs) > 0 {
		writeFieldErrors(w, http.StatusUnprocessableEntity, errs)
		return
	}

	from, err := parseDate(req.From)
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "Invalid from date")
		return
	}
	to, err := parseOptionalDate(req.To)
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "Invalid to date")
		return
	}

	p, err := h.Profiles.AddEducation(r.Context(), claim.UserID, store.Education{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		h.respondProfileErr(w, err, "add education")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProfileHandler) RemoveEducation(w http.ResponseWriter, r *http.Request) {
	claim, _ := auth.ClaimFromContext(r.Context())

	p, err := h.Profiles.RemoveEducation(r.Context(), claim.UserID, chi.URLParam(r, "id"))
	if err != nil {
		h.respondProfileErr(w, err, "remove education")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProfileHandler) GithubRepos(w http.ResponseWriter, r *http.Request) {
	repos, err := h.Github.Repos(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		if errors.Is(err, github.ErrUserNotFound) {
			writeMsg(w, http.StatusNotFound, "No Github profile found")
			return
		}
		h.Log.Error("github repos fetch failed", "error", err)
		writeMsg(w, http.StatusInternalServerError, "Server Error")
		return
	}
	writeJSON(w, http.StatusOK, repos)
}

func (h *ProfileHandler) respondProfileErr(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, store.ErrMalformedID):
		writeMsg(w, http.StatusBadRequest, "Invalid id")
	case errors.Is(err, store.ErrNotFound):
		writeMsg(w, http.StatusNotFound, "Profile not found")
	default:
		h.Log.Error(op+" failed", "error", err)
		writeMsg(w, http.StatusInternalServerError, "Server Error")
	}
}

// parseDate accepts RFC3339 or plain YYYY-MM-DD.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func parseOptionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
