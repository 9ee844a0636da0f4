// Package read реализует HTTP-обработчик просмотра класса по ID.
//
// Каждый успешный запрос увеличивает счетчик просмотров класса.
package read

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

// Service описывает получение класса.
type Service interface {
	Get(ctx context.Context, id string) (*models.Class, error)
}

// Handler обрабатывает запросы на получение класса.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис каталога
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить класс
// @Description Возвращает класс со списком записанных студентов и учитывает просмотр.
// @Tags Classes
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID класса"
// @Success 200 {object} models.Class
// @Failure 400 {object} response.MessageResponse "Некорректный ID"
// @Failure 401 {object} response.MessageResponse
// @Failure 404 {object} response.MessageResponse
// @Failure 500 {object} response.MessageResponse
// @Router /classes/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.classes.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := pathid.Parse(w, r, log)
	if !ok {
		return
	}

	class, err := h.service.Get(r.Context(), id)
	if err != nil {
		response.RenderError(w, r, log, err)
		return
	}

	log.Info("class viewed", slog.String("class_id", id), slog.Int64("views", class.Views))
	render.JSON(w, r, class)
}
