package httpserver

import (
	"net/http"
	"time"

	"clergy-registry-go/internal/config"
	"clergy-registry-go/internal/transport/httpserver/handler"
	authmw "clergy-registry-go/internal/transport/httpserver/middleware"
	"clergy-registry-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.CORSAllowedOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		auth := authmw.NewTokenAuth(cfg.Auth, log)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.With(authmw.RequirePermission("families.view")).Get("/families", handlers.ListFamilies)
			r.With(authmw.RequirePermission("families.create")).Post("/families", handlers.CreateFamily)
			r.With(authmw.RequirePermission("families.view")).Get("/families/{family_id}", handlers.GetFamilyDetail)
			r.With(authmw.RequirePermission("families.view")).Get("/families/{family_id}/tree", handlers.GetFamilyTree)

			r.With(authmw.RequirePermission("families.edit")).Post("/members", handlers.SaveMember)
			r.With(authmw.RequirePermission("families.view")).Get("/members/{member_id}/tree", handlers.GetMemberTree)

			r.With(authmw.RequirePermission("pastors.view")).Get("/pastors", handlers.ListPastors)
			r.With(authmw.RequirePermission("pastors.view")).Get("/pastors/{pastor_id}", handlers.GetPastor)
			r.With(authmw.RequirePermission("pastors.edit")).Post("/pastors", handlers.SavePastor)

			r.With(authmw.RequirePermission("pastors.view")).Get("/pastors/{pastor_id}/relationships", handlers.ListRelationships)
			r.With(authmw.RequirePermission("pastors.edit")).Post("/pastors/{pastor_id}/relationships", handlers.RecordRelationship)
			r.With(authmw.RequirePermission("pastors.edit")).Post("/pastors/{pastor_id}/relationships/close", handlers.CloseRelationship)

			r.With(authmw.RequirePermission("stats.view")).Get("/stats/summary", handlers.StatsSummary)
		})
	})

	return r
}
