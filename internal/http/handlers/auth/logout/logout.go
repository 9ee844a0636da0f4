// Package logout отзывает текущий токен до истечения его срока.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/videoclass/internal/http/middlewarectx"
	"github.com/magabrotheeeer/videoclass/internal/http/response"
	"github.com/magabrotheeeer/videoclass/internal/lib/jwt"
)

// Service описывает отзыв токена.
type Service interface {
	Logout(ctx context.Context, claims *jwt.CustomClaims) error
}

// Handler обрабатывает запросы на выход.
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
// @Summary Выход
// @Description Отзывает предъявленный токен. Повторное использование вернет 401.
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.MessageResponse
// @Failure 401 {object} response.MessageResponse
// @Failure 500 {object} response.MessageResponse
// @Router /auth/logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	claims, ok := middlewarectx.ClaimsFrom(r.Context())
	if !ok {
		log.Error("claims missing in context")
		response.ServerError(w, r)
		return
	}

	if err := h.service.Logout(r.Context(), claims); err != nil {
		response.RenderError(w, r, log, err)
		return
	}

	log.Info("token revoked", slog.String("user_id", claims.UserID))
	render.JSON(w, r, response.Message("Logged out successfully"))
}
