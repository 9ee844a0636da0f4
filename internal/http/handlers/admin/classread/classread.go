// Package classread реализует HTTP-обработчик просмотра класса администратором.
//
// В отличие от каталога, чтение не увеличивает счетчик просмотров.
package classread

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/videoclass/internal/http/handlers/pathid"
	"github.com/magabrotheeeer/videoclass/internal/http/response"
	"github.com/magabrotheeeer/videoclass/internal/models"
)

// Service описывает чтение класса без учета просмотра.
type Service interface {
	GetClass(ctx context.Context, id string) (*models.Class, error)
}

// Handler обрабатывает запросы на просмотр класса в админ-панели.
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
// @Summary Получить класс по ID без учета просмотра
// @Tags Admin
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID класса"
// @Success 200 {object} models.Class
// @Failure 400 {object} response.MessageResponse
// @Failure 401 {object} response.MessageResponse
// @Failure 403 {object} response.MessageResponse
// @Failure 404 {object} response.MessageResponse
// @Failure 500 {object} response.MessageResponse
// @Router /admin/classes/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.classread"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := pathid.Parse(w, r, log)
	if !ok {
		return
	}

	class, err := h.service.GetClass(r.Context(), id)
	if err != nil {
		response.RenderError(w, r, log, err)
		return
	}

	render.JSON(w, r, class)
}
