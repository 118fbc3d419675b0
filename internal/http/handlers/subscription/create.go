// Package subscription реализует HTTP-обработчики абонементов.
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

// CreateService описывает оформление абонемента.
type CreateService interface {
	CreateSubscription(ctx context.Context, req models.DummySubscription) (*models.Subscription, error)
}

// Create обрабатывает POST /subscriptions.
type Create struct {
	log      *slog.Logger
	service  CreateService
	validate *validator.Validate
}

// NewCreate создаёт обработчик.
func NewCreate(log *slog.Logger, service CreateService) *Create {
	return &Create{
		log:      log,
		service:  service,
		validate: request.NewValidator(),
	}
}

// ServeHTTP godoc
// @Summary Оформить абонемент
// @Description Тип указывается названием и создаётся при первом использовании. Дата начала не может быть позже даты окончания.
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Param request body models.DummySubscription true "Данные абонемента"
// @Success 201 {object} map[string]models.Subscription
// @Failure 400 {object} response.ValidationErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /subscriptions [post]
func (h *Create) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.Create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummySubscription
	if err := request.DecodeJSON(r, &req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		response.InvalidBody(w, r)
		return
	}
	log.Debug("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		if verrs, ok := err.(validator.ValidationErrors); ok {
			response.BadRequest(w, r, response.ValidationError(verrs))
			return
		}
		response.InternalError(w, r, "could not validate request")
		return
	}

	sub, err := h.service.CreateSubscription(r.Context(), req)
	if err != nil {
		log.Error("failed to create subscription", sl.Err(err))
		response.ServiceError(w, r, err, "could not create subscription")
		return
	}

	log.Info("subscription created", slog.Int("id", sub.ID))
	response.Created(w, r, "subscription", sub)
}
