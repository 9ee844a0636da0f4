// Package list реализует HTTP-обработчик каталога активных классов.
//
// Handler читает фильтры type, category, search и limit из query-строки
// и возвращает классы без списков записанных студентов.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/videoclass/internal/http/response"
	"github.com/magabrotheeeer/videoclass/internal/models"
)

// Service описывает выборку каталога.
type Service interface {
	List(ctx context.Context, f models.ClassFilter) ([]*models.Class, error)
}

// Handler обрабатывает запросы к каталогу.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Каталог классов
// @Description Активные классы, новые первыми. Нечисловой или неположительный limit заменяется на 50, максимум 100.
// @Tags Classes
// @Produce  json
// @Security BearerAuth
// @Param type query string false "live или recorded"
// @Param category query string false "Категория"
// @Param search query string false "Подстрока в названии, описании или имени преподавателя"
// @Param limit query int false "Размер выдачи"
// @Success 200 {array} models.Class
// @Failure 401 {object} response.MessageResponse
// @Failure 500 {object} response.MessageResponse
// @Router /classes [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.classes.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	q := r.URL.Query()
	filter := models.ClassFilter{
		Type:     q.Get("type"),
		Category: q.Get("category"),
		Search:   q.Get("search"),
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			log.Debug("ignoring non-numeric limit", slog.String("limit", raw))
		}
		filter.Limit = limit
	}

	classes, err := h.service.List(r.Context(), filter)
	if err != nil {
		response.RenderError(w, r, log, err)
		return
	}

	log.Info("classes listed", slog.Int("count", len(classes)))
	render.JSON(w, r, models.Summaries(classes))
}
