// Package health отвечает на проверки живости и готовности сервиса.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/videoclass/internal/lib/sl"
)

// Pinger проверяет доступность внешней зависимости.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Response тело успешного ответа.
type Response struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Cache     string `json:"cache"`
	Timestamp string `json:"timestamp"`
}

// ErrorResponse тело ответа при недоступной базе или кеше.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Handler проверяет PostgreSQL и Redis.
type Handler struct {
	log   *slog.Logger
	db    Pinger
	cache Pinger
	now   func() time.Time
}

// New создает новый Handler с переданными логгером и проверками зависимостей.
func New(log *slog.Logger, db, cache Pinger) *Handler {
	return &Handler{
		log:   log,
		db:    db,
		cache: cache,
		now:   time.Now,
	}
}

// ServeHTTP godoc
// @Summary Health check
// @Tags Health
// @Produce  json
// @Success 200 {object} health.Response
// @Failure 500 {object} health.ErrorResponse
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := h.db.Ping(r.Context()); err != nil {
		log.Error("database ping failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Status: "error", Message: "database unavailable"})
		return
	}
	// без Redis не проходит проверка отзыва токенов на защищенных маршрутах
	if err := h.cache.Ping(r.Context()); err != nil {
		log.Error("cache ping failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Status: "error", Message: "cache unavailable"})
		return
	}

	render.JSON(w, r, Response{
		Status:    "ok",
		Database:  "connected",
		Cache:     "connected",
		Timestamp: h.now().UTC().Format(time.RFC3339Nano),
	})
}
