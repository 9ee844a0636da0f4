// Package classcreate реализует HTTP-обработчик создания класса.
//
// Handler принимает JSON с полями класса, проверяет обязательные поля,
// тип и наличие расписания у живого класса, и возвращает созданную запись.
package classcreate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/videoclass/internal/http/response"
	"github.com/magabrotheeeer/videoclass/internal/models"
)

// Service описывает создание класса.
type Service interface {
	CreateClass(ctx context.Context, in models.ClassInput) (*models.Class, error)
}

// Handler обрабатывает запросы на создание класса.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис администрирования
	validate *validator.Validate // Валидатор входящих данных
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
// @Summary Создать класс
// @Tags Admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.ClassInput true "Данные класса"
// @Success 201 {object} models.Class
// @Failure 400 {object} response.ValidationErrorResponse "Ошибка валидации"
// @Failure 401 {object} response.MessageResponse
// @Failure 403 {object} response.MessageResponse
// @Failure 500 {object} response.MessageResponse
// @Router /admin/classes [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.classcreate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var in models.ClassInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.RenderInvalid(w, r, log, err)
		return
	}
	if err := h.validate.Struct(in); err != nil {
		response.RenderInvalid(w, r, log, err)
		return
	}

	class, err := h.service.CreateClass(r.Context(), in)
	if err != nil {
		response.RenderError(w, r, log, err)
		return
	}

	log.Info("class created", slog.String("class_id", class.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, class)
}
