// Package dashboard возвращает сводку админ-панели: агрегаты, новых
// студентов, популярные классы и распределение по категориям.
package dashboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/videoclass/internal/http/response"
	"github.com/magabrotheeeer/videoclass/internal/models"
)

// Service описывает сбор данных админ-панели.
type Service interface {
	Dashboard(ctx context.Context) (*models.Dashboard, error)
}

// Handler обрабатывает запросы к админ-панели.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сводка админ-панели
// @Tags Admin
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} models.Dashboard
// @Failure 401 {object} response.MessageResponse
// @Failure 403 {object} response.MessageResponse
// @Failure 500 {object} response.MessageResponse
// @Router /admin/dashboard [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.dashboard"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.Dashboard(r.Context())
	if err != nil {
		response.RenderError(w, r, log, err)
		return
	}
	render.JSON(w, r, res)
}
