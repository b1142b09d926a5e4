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

	"github.com/go-chi/chi/v5"
)

type PostsHandler struct {
	Posts store.PostStore
	Users store.UserStore
	Log   *slog.Logger
}

type createPostReq struct {
	Text string `json:"text"`
}

func (h *PostsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claim, _ := auth.ClaimFromContext(r.Context())

	var req createPostReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rules := []validate.Rule{validate.NotEmpty("text", "Text is required")}
	if errs := validate.Run(rules, map[string]string{"text": req.Text}); len(errs) > 0 {
		writeFieldErrors(w, http.StatusUnprocessableEntity, errs)
		return
	}

	u, err := h.Users.FindByID(r.Context(), claim.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrMalformedID) {
			writeMsg(w, http.StatusNotFound, "User not found")
			return
		}
		h.Log.Error("create post: user lookup failed", "error", err)
		writeMsg(w, http.StatusInternalServerError, "Server Error")
		return
	}

	p := store.Post{
		UserID: u.ID,
		Text:   strings.TrimSpace(req.Text),
		Name:   u.Name,
		Avatar: u.Avatar,
	}
	if err := h.Posts.Create(r.Context(), &p); err != nil {
		h.Log.Error("create post: insert failed", "error", err)
		writeMsg(w, http.StatusInternalServerError, "Server Error")
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (h *PostsHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Posts.FindAll(r.Context())
	if err != nil {
		h.Log.Error("list posts failed", "error", err)
		writeMsg(w, http.StatusInternalServerError, "Server Error")
		return
	}
	if posts == nil {
		posts = []store.Post{}
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *PostsHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.Posts.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondPostErr(w, err, "get post")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PostsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claim, _ := auth.ClaimFromContext(r.Context())
	id := chi.URLParam(r, "id")

	p, err := h.Posts.FindByID(r.Context(), id)
	if err != nil {
		h.respondPostErr(w, err, "delete post")
		return
	}
	if p.UserID.Hex() != claim.UserID {
		writeMsg(w, http.StatusUnauthorized, "You are unauthorized to delete this post")
		return
	}

	if err := h.Posts.Delete(r.Context(), id); err != nil {
		h.respondPostErr(w, err, "delete post")
		return
	}
	writeMsg(w, http.StatusOK, "Post deleted successfully")
}

func (h *PostsHandler) Like(w http.ResponseWriter, r *http.Request) {
	claim, _ := auth.ClaimFromContext(r.Context())

	likes, err := h.Posts.Like(r.Context(), chi.URLParam(r, "id"), claim.UserID)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyLiked) {
			writeMsg(w, http.StatusBadRequest, "Post already liked")
			return
		}
		h.respondPostErr(w, err, "like post")
		return
	}
	writeJSON(w, http.StatusOK, likes)
}

func (h *PostsHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	claim, _ := auth.ClaimFromContext(r.Context())

	likes, err := h.Posts.Unlike(r.Context(), chi.URLParam(r, "id"), claim.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotLiked) {
			writeMsg(w, http.StatusBadRequest, "Post has not been liked")
			return
		}
		h.respondPostErr(w, err, "unlike post")
		return
	}
	writeJSON(w, http.StatusOK, likes)
}

func (h *PostsHandler) respondPostErr(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, store.ErrMalformedID):
		writeMsg(w, http.StatusBadRequest, "Invalid post id")
	case errors.Is(err, store.ErrNotFound):
		writeMsg(w, http.StatusNotFound, "Post not found")
	default:
		h.Log.Error(op+" failed", "error", err)
		writeMsg(w, http.StatusInternalServerError, "Server Error")
	}
}
