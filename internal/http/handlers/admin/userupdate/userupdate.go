// Package userupdate реализует HTTP-обработчик редактирования пользователя.
//
// Меняются только name, email и role, пропущенные поля сохраняются.
package userupdate

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

// Service описывает редактирование пользователя.
type Service interface {
	UpdateUser(ctx context.Context, id string, req models.UserUpdateRequest) (*models.User, error)
}

// Handler обрабатывает запросы на редактирование пользователя.
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
// @Summary Обновить пользователя по ID
// @Tags Admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID пользователя"
// @Param request body models.UserUpdateRequest true "Изменяемые поля"
// @Success 200 {object} models.User
// @Failure 400 {object} response.ValidationErrorResponse
// @Failure 404 {object} response.MessageResponse
// @Failure 409 {object} response.MessageResponse "Email уже занят"
// @Failure 500 {object} response.MessageResponse
// @Router /admin/users/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.userupdate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := pathid.Parse(w, r, log)
	if !ok {
		return
	}

	var req models.UserUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RenderInvalid(w, r, log, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.RenderInvalid(w, r, log, err)
		return
	}

	user, err := h.service.UpdateUser(r.Context(), id, req)
	if err != nil {
		response.RenderError(w, r, log, err)
		return
	}

	log.Info("user updated", slog.String("user_id", id))
	render.JSON(w, r, user)
}
