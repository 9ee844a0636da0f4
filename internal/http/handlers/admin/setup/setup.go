// Package setup создает первого администратора платформы.
//
// Маршрут не требует токена и срабатывает только пока в системе нет ни одного администратора.
package setup

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

// Service описывает создание первого администратора.
type Service interface {
	Setup(ctx context.Context, req models.SetupRequest) error
}

// Handler обрабатывает запросы на первичную настройку.
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
// @Summary Создать первого администратора
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param request body models.SetupRequest true "Данные администратора"
// @Success 201 {object} response.MessageResponse
// @Failure 400 {object} response.ValidationErrorResponse
// @Failure 409 {object} response.MessageResponse "Администратор уже существует"
// @Failure 500 {object} response.MessageResponse
// @Router /admin/setup [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.setup"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.SetupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RenderInvalid(w, r, log, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.RenderInvalid(w, r, log, err)
		return
	}

	if err := h.service.Setup(r.Context(), req); err != nil {
		response.RenderError(w, r, log, err)
		return
	}

	log.Info("admin created")
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.Message("Admin created successfully"))
}
