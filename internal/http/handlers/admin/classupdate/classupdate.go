// Package classupdate реализует HTTP-обработчик замены полей класса.
package classupdate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/videoclass/internal/http/handlers/pathid"
	"github.com/magabrotheeeer/videoclass/internal/http/response"
	"github.com/magabrotheeeer/videoclass/internal/models"
)

// Service описывает обновление класса.
type Service interface {
	UpdateClass(ctx context.Context, id string, in models.ClassInput) (*models.Class, error)
}

// Handler обрабатывает запросы на обновление класса.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: models.NewValidator(),
	}
}

// ServeHTTP godoc
// @Summary Обновить класс по ID
// @Description Заменяет редактируемые поля. Просмотры и записи студентов сохраняются.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID класса"
// @Param request body models.ClassInput true "Данные класса"
// @Success 200 {object} models.Class
// @Failure 400 {object} response.ValidationErrorResponse "Ошибка валидации"
// @Failure 401 {object} response.MessageResponse
// @Failure 403 {object} response.MessageResponse
// @Failure 404 {object} response.MessageResponse
// @Failure 500 {object} response.MessageResponse
// @Router /admin/classes/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.classupdate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := pathid.Parse(w, r, log)
	if !ok {
		return
	}

	var in models.ClassInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.RenderInvalid(w, r, log, err)
		return
	}
	if err := h.validate.Struct(in); err != nil {
		response.RenderInvalid(w, r, log, err)
		return
	}

	class, err := h.service.UpdateClass(r.Context(), id, in)
	if err != nil {
		response.RenderError(w, r, log, err)
		return
	}

	log.Info("class updated", slog.String("class_id", id))
	render.JSON(w, r, class)
}
