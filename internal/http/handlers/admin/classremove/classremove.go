package classremove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/videoclass/internal/http/handlers/pathid"
	"github.com/magabrotheeeer/videoclass/internal/http/response"
)

// Handler обрабатывает запросы на удаление класса.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает удаление класса.
type Service interface {
	DeleteClass(ctx context.Context, id string) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить класс по ID
// @Tags Admin
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID класса"
// @Success 200 {object} response.MessageResponse
// @Failure 400 {object} response.MessageResponse
// @Failure 404 {object} response.MessageResponse
// @Failure 500 {object} response.MessageResponse
// @Router /admin/classes/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.classremove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := pathid.Parse(w, r, log)
	if !ok {
		return
	}

	if err := h.service.DeleteClass(r.Context(), id); err != nil {
		response.RenderError(w, r, log, err)
		return
	}

	log.Info("class deleted", slog.String("class_id", id))
	render.JSON(w, r, response.Message("Class deleted successfully"))
}
