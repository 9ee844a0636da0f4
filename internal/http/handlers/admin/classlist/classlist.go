// Package classlist возвращает все классы, включая неактивные.
package classlist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/videoclass/internal/http/response"
	"github.com/magabrotheeeer/videoclass/internal/models"
)

// Service описывает выдачу всех классов для админ-панели.
type Service interface {
	ListClasses(ctx context.Context) ([]*models.Class, error)
}

// Handler обрабатывает запросы на список классов.
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
// @Summary Все классы
// @Tags Admin
// @Produce  json
// @Security BearerAuth
// @Success 200 {array} models.Class
// @Failure 401 {object} response.MessageResponse
// @Failure 403 {object} response.MessageResponse
// @Failure 500 {object} response.MessageResponse
// @Router /admin/classes [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.classlist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	classes, err := h.service.ListClasses(r.Context())
	if err != nil {
		response.RenderError(w, r, log, err)
		return
	}
	render.JSON(w, r, classes)
}
