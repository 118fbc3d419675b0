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

// ListService описывает выборку абонементов.
type ListService interface {
	ListSubscriptions(ctx context.Context, filter models.SubscriptionFilter) ([]models.Subscription, error)
}

// List обрабатывает GET /subscriptions.
type List struct {
	log     *slog.Logger
	service ListService
}

// NewList создаёт обработчик.
func NewList(log *slog.Logger, service ListService) *List {
	return &List{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список абонементов
// @Tags Subscriptions
// @Produce json
// @Param type query string false "Название типа"
// @Param user_id query int false "ID клиента (client_id тоже принимается)"
// @Success 200 {object} map[string][]models.Subscription
// @Failure 400 {object} response.ValidationErrorResponse
// @Router /subscriptions [get]
func (h *List) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.List"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	verr := &models.ValidationError{}
	filter := models.SubscriptionFilter{
		Type:   request.QueryString(r, "type"),
		UserID: request.QueryInt(r, "user_id", verr),
	}
	if filter.UserID == nil {
		filter.UserID = request.QueryInt(r, "client_id", verr)
	}
	if !verr.Empty() {
		response.BadRequest(w, r, verr.Fields)
		return
	}

	list, err := h.service.ListSubscriptions(r.Context(), filter)
	if err != nil {
		log.Error("failed to list subscriptions", sl.Err(err))
		response.ServiceError(w, r, err, "could not list subscriptions")
		return
	}
	response.OK(w, r, "subscriptions", list)
}
