package http

import (
	"log/slog"
	"net/http"

	"devhub/internal/auth"
	"devhub/internal/config"
	"devhub/internal/github"
	"devhub/internal/http/handler"
	mw "devhub/internal/http/middleware"
	"devhub/internal/store"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, s *store.Store, jwtSvc *auth.JWT, gh *github.Client, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	requireAuth := auth.RequireAuth(jwtSvc, log)

	uh := &handler.UsersHandler{Users: s.Users, JWT: jwtSvc, Log: log}
	ah := &handler.AuthHandler{Users: s.Users, JWT: jwtSvc, Log: log}
	ph := &handler.ProfileHandler{Profiles: s.Profiles, Users: s.Users, Posts: s.Posts, Github: gh, Log: log}
	posts := &handler.PostsHandler{Posts: s.Posts, Users: s.Users, Log: log}

	r.Route("/api", func(r chi.Router) {
		r.Post("/users/register", uh.Register)

		r.Post("/auth", ah.Login)
		r.With(requireAuth).Get("/auth", ah.Current)

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", ph.List)
			r.Get("/user/{user_id}", ph.ByUser)
			r.Get("/github/{username}", ph.GithubRepos)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", ph.Upsert)
				r.Get("/me", ph.Me)
				r.Delete("/", ph.DeleteAccount)
				r.Put("/experience", ph.AddExperience)
				r.Delete("/experience/{id}", ph.RemoveExperience)
				r.Put("/education", ph.AddEducation)
				r.Delete("/education/{id}", ph.RemoveEducation)
			})
		})

		r.Route("/posts", func(r chi.Router) {
			r.Use(requireAuth)

			r.Post("/", posts.Create)
			r.Get("/", posts.List)
			r.Get("/{id}", posts.Get)
			r.Delete("/{id}", posts.Delete)
			r.Put("/like/{id}", posts.Like)
			r.Put("/unlike/{id}", posts.Unlike)
		})
	})

	return r
}
