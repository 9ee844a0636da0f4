// Package videoclass собирает HTTP-приложение платформы видеоуроков.
package videoclass

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/videoclass/internal/http/handlers/admin/classcreate"
	"github.com/magabrotheeeer/videoclass/internal/http/handlers/admin/classlist"
	"github.com/magabrotheeeer/videoclass/internal/http/handlers/admin/classread"
	"github.com/magabrotheeeer/videoclass/internal/http/handlers/admin/classremove"
	"github.com/magabrotheeeer/videoclass/internal/http/handlers/admin/classupdate"
	"github.com/magabrotheeeer/videoclass/internal/http/handlers/admin/dashboard"
	"github.com/magabrotheeeer/videoclass/internal/http/handlers/admin/setup"
	"github.com/magabrotheeeer/videoclass/internal/http/handlers/admin/userlist"
	"github.com/magabrotheeeer/videoclass/internal/http/handlers/admin/userremove"
	"github.com/magabrotheeeer/videoclass/internal/http/handlers/admin/userupdate"
	"github.com/magabrotheeeer/videoclass/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/videoclass/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/videoclass/internal/http/handlers/auth/me"
	"github.com/magabrotheeeer/videoclass/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/videoclass/internal/http/handlers/classes/enroll"
	"github.com/magabrotheeeer/videoclass/internal/http/handlers/classes/list"
	"github.com/magabrotheeeer/videoclass/internal/http/handlers/classes/myclasses"
	"github.com/magabrotheeeer/videoclass/internal/http/handlers/classes/read"
	"github.com/magabrotheeeer/videoclass/internal/http/handlers/classes/stats"
	"github.com/magabrotheeeer/videoclass/internal/http/handlers/health"
	"github.com/magabrotheeeer/videoclass/internal/http/middlewarectx"
	"github.com/magabrotheeeer/videoclass/internal/models"
	adminservice "github.com/magabrotheeeer/videoclass/internal/services/admin"
	authservice "github.com/magabrotheeeer/videoclass/internal/services/auth"
	catalogservice "github.com/magabrotheeeer/videoclass/internal/services/catalog"

	// Регистрация swagger-документа.
	_ "github.com/magabrotheeeer/videoclass/docs"
)

// Services зависимости обработчиков.
type Services struct {
	Auth    *authservice.AuthService
	Catalog *catalogservice.CatalogService
	Admin   *adminservice.AdminService
	DB      health.Pinger
	Cache   health.Pinger
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, svc Services, limiter *middlewarectx.IPRateLimiter, allowedOrigins []string) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middlewarectx.MetricsMiddleware,
		cors.Handler(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
			MaxAge:         300,
		}),
	)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", health.New(logger, svc.DB, svc.Cache).ServeHTTP)

		// Открытые конечные точки с ограничением частоты
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(limiter, logger))
			r.Post("/auth/register", register.New(logger, svc.Auth).ServeHTTP)
			r.Post("/auth/login", login.New(logger, svc.Auth).ServeHTTP)
			r.Post("/admin/setup", setup.New(logger, svc.Admin).ServeHTTP)
		})

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(svc.Auth, logger))

			r.Get("/auth/me", me.New(logger, svc.Auth).ServeHTTP)
			r.Post("/auth/logout", logout.New(logger, svc.Auth).ServeHTTP)

			r.Get("/classes", list.New(logger, svc.Catalog).ServeHTTP)
			r.Get("/classes/stats", stats.New(logger, svc.Catalog).ServeHTTP)
			r.Get("/classes/{id}", read.New(logger, svc.Catalog).ServeHTTP)
			r.Post("/classes/{id}/enroll", enroll.New(logger, svc.Catalog).ServeHTTP)
			r.Get("/user/classes", myclasses.New(logger, svc.Catalog).ServeHTTP)

			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(models.RoleAdmin, logger))
				r.Get("/admin/dashboard", dashboard.New(logger, svc.Admin).ServeHTTP)
				r.Get("/admin/classes", classlist.New(logger, svc.Admin).ServeHTTP)
				r.Post("/admin/classes", classcreate.New(logger, svc.Admin).ServeHTTP)
				r.Get("/admin/classes/{id}", classread.New(logger, svc.Admin).ServeHTTP)
				r.Put("/admin/classes/{id}", classupdate.New(logger, svc.Admin).ServeHTTP)
				r.Delete("/admin/classes/{id}", classremove.New(logger, svc.Admin).ServeHTTP)
				r.Get("/admin/users", userlist.New(logger, svc.Admin).ServeHTTP)
				r.Put("/admin/users/{id}", userupdate.New(logger, svc.Admin).ServeHTTP)
				r.Delete("/admin/users/{id}", userremove.New(logger, svc.Admin).ServeHTTP)
			})
		})

		// Swagger docs endpoint
		r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/api/docs/doc.json")))
	})

	r.Handle("/metrics", promhttp.Handler())
}
