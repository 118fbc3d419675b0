package visit

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/gymadmin/internal/http/request"
	"github.com/magabrotheeeer/gymadmin/internal/http/response"
	"github.com/magabrotheeeer/gymadmin/internal/lib/sl"
)

// DeleteService описывает удаление посещения.
type DeleteService interface {
	DeleteVisit(ctx context.Context, id int) error
}

// Delete обрабатывает DELETE /visits/{id}.
type Delete struct {
	log     *slog.Logger
	service DeleteService
}

// NewDelete создаёт обработчик.
func NewDelete(log *slog.Logger, service DeleteService) *Delete {
	return &Delete{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить посещение
// @Tags Visits
// @Param id path int true "ID посещения"
// @Success 204
// @Failure 404 "Посещение не найдено"
// @Router /visits/{id} [delete]
func (h *Delete) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.visit.Delete"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := request.ID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	if err := h.service.DeleteVisit(r.Context(), id); err != nil {
		log.Error("failed to delete visit", slog.Int("id", id), sl.Err(err))
		response.ServiceError(w, r, err, "could not delete visit")
		return
	}

	log.Info("visit deleted", slog.Int("id", id))
	response.NoContent(w)
}
