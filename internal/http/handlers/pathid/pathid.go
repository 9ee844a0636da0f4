// Package pathid разбирает идентификаторы ресурсов из URL.
package pathid

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/videoclass/internal/http/response"
	"github.com/magabrotheeeer/videoclass/internal/lib/sl"
)

// Parse читает параметр {id} и проверяет, что это UUID. При ошибке
// отвечает 400 и возвращает false.
func Parse(w http.ResponseWriter, r *http.Request, log *slog.Logger) (string, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		log.Info("invalid id format", slog.String("id", raw), sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return "", false
	}
	return id.String(), true
}
