package subscription

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/gymadmin/internal/http/request"
	"github.com/magabrotheeeer/gymadmin/internal/http/response"
	"github.com/magabrotheeeer/gymadmin/internal/lib/sl"
)

// DeleteService описывает удаление абонемента.
type DeleteService interface {
	DeleteSubscription(ctx context.Context, id int) error
}

// Delete обрабатывает DELETE /subscriptions/{id}.
type Delete struct {
	log     *slog.Logger
	service DeleteService
}

// NewDelete создаёт обработчик.
func NewDelete(log *slog.Logger, service DeleteService) *Delete {
	return &Delete{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить абонемент
// @Description Посещения абонемента удаляются вместе с ним.
// @Tags Subscriptions
// @Param id path int true "ID абонемента"
// @Success 204
// @Failure 404 "Абонемент не найден"
// @Router /subscriptions/{id} [delete]
func (h *Delete) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.Delete"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := request.ID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	if err := h.service.DeleteSubscription(r.Context(), id); err != nil {
		log.Error("failed to delete subscription", slog.Int("id", id), sl.Err(err))
		response.ServiceError(w, r, err, "could not delete subscription")
		return
	}

	log.Info("subscription deleted", slog.Int("id", id))
	response.NoContent(w)
}
