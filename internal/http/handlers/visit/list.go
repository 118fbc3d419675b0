package visit

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

// ListService описывает выборку посещений.
type ListService interface {
	ListVisits(ctx context.Context, filter models.VisitFilter) ([]models.Visit, error)
}

// List обрабатывает GET /visits.
type List struct {
	log     *slog.Logger
	service ListService
}

// NewList создаёт обработчик.
func NewList(log *slog.Logger, service ListService) *List {
	return &List{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список посещений
// @Tags Visits
// @Produce json
// @Param subscription_id query int false "ID абонемента"
// @Param date query string false "Дата YYYY-MM-DD"
// @Success 200 {object} map[string][]models.Visit
// @Failure 400 {object} response.ValidationErrorResponse
// @Router /visits [get]
func (h *List) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.visit.List"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	verr := &models.ValidationError{}
	filter := models.VisitFilter{
		SubscriptionID: request.QueryInt(r, "subscription_id", verr),
		Date:           request.QueryDate(r, "date", verr),
	}
	if !verr.Empty() {
		response.BadRequest(w, r, verr.Fields)
		return
	}

	list, err := h.service.ListVisits(r.Context(), filter)
	if err != nil {
		log.Error("failed to list visits", sl.Err(err))
		response.ServiceError(w, r, err, "could not list visits")
		return
	}
	response.OK(w, r, "visits", list)
}

// BySubscriptionService описывает выборку посещений одного абонемента.
type BySubscriptionService interface {
	ListSubscriptionVisits(ctx context.Context, subscriptionID int) ([]models.Visit, error)
}

// BySubscription обрабатывает GET /subscriptions/{id}/visits. Если абонемента
// нет, отвечает 404.
type BySubscription struct {
	log     *slog.Logger
	service BySubscriptionService
}

// NewBySubscription создаёт обработчик.
func NewBySubscription(log *slog.Logger, service BySubscriptionService) *BySubscription {
	return &BySubscription{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Посещения абонемента
// @Tags Visits
// @Produce json
// @Param id path int true "ID абонемента"
// @Success 200 {object} map[string][]models.Visit
// @Failure 404 "Абонемент не найден"
// @Router /subscriptions/{id}/visits [get]
func (h *BySubscription) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.visit.BySubscription"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := request.ID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	list, err := h.service.ListSubscriptionVisits(r.Context(), id)
	if err != nil {
		log.Error("failed to list subscription visits", slog.Int("subscription_id", id), sl.Err(err))
		response.ServiceError(w, r, err, "could not list visits")
		return
	}
	response.OK(w, r, "visits", list)
}
