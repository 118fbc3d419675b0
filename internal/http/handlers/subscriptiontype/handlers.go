// Package subscriptiontype реализует HTTP-обработчики справочника типов абонементов.
package subscriptiontype

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

// CreateService описывает создание типа.
type CreateService interface {
	CreateSubscriptionType(ctx context.Context, req models.DummySubscriptionType) (*models.SubscriptionType, error)
}

// Create обрабатывает POST /subscription-types.
type Create struct {
	log      *slog.Logger
	service  CreateService
	validate *validator.Validate
}

// NewCreate создаёт обработчик.
func NewCreate(log *slog.Logger, service CreateService) *Create {
	return &Create{log: log, service: service, validate: request.NewValidator()}
}

// ServeHTTP godoc
// @Summary Создать тип абонемента
// @Tags SubscriptionTypes
// @Accept json
// @Produce json
// @Param request body models.DummySubscriptionType true "Название"
// @Success 201 {object} map[string]models.SubscriptionType
// @Failure 400 {object} response.ValidationErrorResponse
// @Router /subscription-types [post]
func (h *Create) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscriptiontype.Create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummySubscriptionType
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

	t, err := h.service.CreateSubscriptionType(r.Context(), req)
	if err != nil {
		log.Error("failed to create subscription type", sl.Err(err))
		response.ServiceError(w, r, err, "could not create subscription type")
		return
	}

	log.Info("subscription type created", slog.Int("id", t.ID))
	response.Created(w, r, "subscription_type", t)
}

// ListService описывает выборку типов.
type ListService interface {
	ListSubscriptionTypes(ctx context.Context) ([]models.SubscriptionType, error)
}

// List обрабатывает GET /subscription-types.
type List struct {
	log     *slog.Logger
	service ListService
}

// NewList создаёт обработчик.
func NewList(log *slog.Logger, service ListService) *List {
	return &List{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список типов абонементов
// @Tags SubscriptionTypes
// @Produce json
// @Success 200 {object} map[string][]models.SubscriptionType
// @Router /subscription-types [get]
func (h *List) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscriptiontype.List"

	list, err := h.service.ListSubscriptionTypes(r.Context())
	if err != nil {
		h.log.Error("failed to list subscription types",
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			sl.Err(err),
		)
		response.ServiceError(w, r, err, "could not list subscription types")
		return
	}
	response.OK(w, r, "subscription_types", list)
}

// GetService описывает чтение типа.
type GetService interface {
	GetSubscriptionType(ctx context.Context, id int) (*models.SubscriptionType, error)
}

// Get обрабатывает GET /subscription-types/{id}.
type Get struct {
	log     *slog.Logger
	service GetService
}

// NewGet создаёт обработчик.
func NewGet(log *slog.Logger, service GetService) *Get {
	return &Get{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Тип абонемента
// @Tags SubscriptionTypes
// @Produce json
// @Param id path int true "ID типа"
// @Success 200 {object} map[string]models.SubscriptionType
// @Failure 404 "Тип не найден"
// @Router /subscription-types/{id} [get]
func (h *Get) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscriptiontype.Get"

	id, ok := request.ID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	t, err := h.service.GetSubscriptionType(r.Context(), id)
	if err != nil {
		h.log.Error("failed to get subscription type",
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.Int("id", id),
			sl.Err(err),
		)
		response.ServiceError(w, r, err, "could not read subscription type")
		return
	}
	response.OK(w, r, "subscription_type", t)
}

// DeleteService описывает удаление типа.
type DeleteService interface {
	DeleteSubscriptionType(ctx context.Context, id int) error
}

// Delete обрабатывает DELETE /subscription-types/{id}. Абонементы этого типа
// удаляются каскадно.
type Delete struct {
	log     *slog.Logger
	service DeleteService
}

// NewDelete создаёт обработчик.
func NewDelete(log *slog.Logger, service DeleteService) *Delete {
	return &Delete{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить тип абонемента
// @Tags SubscriptionTypes
// @Param id path int true "ID типа"
// @Success 204
// @Failure 404 "Тип не найден"
// @Router /subscription-types/{id} [delete]
func (h *Delete) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscriptiontype.Delete"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := request.ID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	if err := h.service.DeleteSubscriptionType(r.Context(), id); err != nil {
		log.Error("failed to delete subscription type", slog.Int("id", id), sl.Err(err))
		response.ServiceError(w, r, err, "could not delete subscription type")
		return
	}

	log.Info("subscription type deleted", slog.Int("id", id))
	response.NoContent(w)
}
