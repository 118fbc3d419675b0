package subscription

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/gymadmin/internal/http/request"
	"github.com/magabrotheeeer/gymadmin/internal/http/response"
	"github.com/magabrotheeeer/gymadmin/internal/lib/sl"
	"github.com/magabrotheeeer/gymadmin/internal/models"
)

// GetService описывает чтение абонемента.
type GetService interface {
	GetSubscription(ctx context.Context, id int) (*models.Subscription, error)
}

// Get обрабатывает GET /subscriptions/{id}.
type Get struct {
	log     *slog.Logger
	service GetService
}

// NewGet создаёт обработчик.
func NewGet(log *slog.Logger, service GetService) *Get {
	return &Get{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Карточка абонемента
// @Tags Subscriptions
// @Produce json
// @Param id path int true "ID абонемента"
// @Success 200 {object} map[string]models.Subscription
// @Failure 404 "Абонемент не найден"
// @Router /subscriptions/{id} [get]
func (h *Get) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.Get"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := request.ID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	sub, err := h.service.GetSubscription(r.Context(), id)
	if err != nil {
		log.Error("failed to get subscription", slog.Int("id", id), sl.Err(err))
		response.ServiceError(w, r, err, "could not read subscription")
		return
	}
	response.OK(w, r, "subscription", sub)
}
