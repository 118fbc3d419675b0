package subscription

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/gymadmin/internal/http/request"
	"github.com/magabrotheeeer/gymadmin/internal/http/response"
	"github.com/magabrotheeeer/gymadmin/internal/lib/sl"
	"github.com/magabrotheeeer/gymadmin/internal/models"
)

// UpdateService описывает частичное обновление абонемента.
type UpdateService interface {
	UpdateSubscription(ctx context.Context, id int, upd models.DummySubscriptionUpdate) (*models.Subscription, error)
}

// Update обрабатывает PUT и PATCH /subscriptions/{id}.
type Update struct {
	log      *slog.Logger
	service  UpdateService
	validate *validator.Validate
}

// NewUpdate создаёт обработчик.
func NewUpdate(log *slog.Logger, service UpdateService) *Update {
	return &Update{
		log:      log,
		service:  service,
		validate: request.NewValidator(),
	}
}

// ServeHTTP godoc
// @Summary Изменить абонемент
// @Description Меняет только переданные поля. Порядок дат проверяется по итоговой записи.
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Param id path int true "ID абонемента"
// @Param request body models.DummySubscriptionUpdate true "Новые значения"
// @Success 200 {object} map[string]models.Subscription
// @Failure 400 {object} response.ValidationErrorResponse
// @Failure 404 "Абонемент не найден"
// @Router /subscriptions/{id} [put]
// @Router /subscriptions/{id} [patch]
func (h *Update) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.Update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := request.ID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	var req models.DummySubscriptionUpdate
	if err := request.DecodeJSON(r, &req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		response.InvalidBody(w, r)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		if verrs, ok := err.(validator.ValidationErrors); ok {
			response.BadRequest(w, r, response.ValidationError(verrs))
			return
		}
		response.InternalError(w, r, "could not validate request")
		return
	}

	sub, err := h.service.UpdateSubscription(r.Context(), id, req)
	if err != nil {
		log.Error("failed to update subscription", slog.Int("id", id), sl.Err(err))
		response.ServiceError(w, r, err, "could not update subscription")
		return
	}

	log.Info("subscription updated", slog.Int("id", id))
	response.OK(w, r, "subscription", sub)
}
