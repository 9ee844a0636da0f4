// Package enroll записывает текущего пользователя на класс.
package enroll

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/videoclass/internal/http/handlers/pathid"
	"github.com/magabrotheeeer/videoclass/internal/http/middlewarectx"
	"github.com/magabrotheeeer/videoclass/internal/http/response"
)

// Service описывает запись на класс.
type Service interface {
	Enroll(ctx context.Context, classID, userID string) error
}

// Handler обрабатывает запросы на запись на класс.
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
// @Summary Записаться на класс
// @Description Повторная запись ничего не меняет.
// @Tags Classes
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID класса"
// @Success 200 {object} response.MessageResponse
// @Failure 400 {object} response.MessageResponse "Некорректный ID"
// @Failure 401 {object} response.MessageResponse
// @Failure 404 {object} response.MessageResponse
// @Failure 500 {object} response.MessageResponse
// @Router /classes/{id}/enroll [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.classes.enroll"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	classID, ok := pathid.Parse(w, r, log)
	if !ok {
		return
	}
	userID, ok := middlewarectx.UserIDFrom(r.Context())
	if !ok {
		log.Error("user id missing in context")
		response.ServerError(w, r)
		return
	}

	if err := h.service.Enroll(r.Context(), classID, userID); err != nil {
		response.RenderError(w, r, log, err)
		return
	}

	log.Info("user enrolled", slog.String("class_id", classID), slog.String("user_id", userID))
	render.JSON(w, r, response.Message("Enrolled successfully"))
}
