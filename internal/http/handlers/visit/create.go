// Package visit реализует HTTP-обработчики посещений зала, включая список
// посещений конкретного абонемента.
package visit

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

// CreateService описывает регистрацию посещения.
type CreateService interface {
	CreateVisit(ctx context.Context, req models.DummyVisit) (*models.Visit, error)
}

// Create обрабатывает POST /visits.
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
// @Summary Зарегистрировать посещение
// @Description exit_time можно не указывать, пока клиент в зале. Если указано, должно быть позже enter_time.
// @Tags Visits
// @Accept json
// @Produce json
// @Param request body models.DummyVisit true "Данные посещения"
// @Success 201 {object} map[string]models.Visit
// @Failure 400 {object} response.ValidationErrorResponse
// @Router /visits [post]
func (h *Create) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.visit.Create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyVisit
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

	v, err := h.service.CreateVisit(r.Context(), req)
	if err != nil {
		log.Error("failed to create visit", sl.Err(err))
		response.ServiceError(w, r, err, "could not create visit")
		return
	}

	log.Info("visit created", slog.Int("id", v.ID))
	response.Created(w, r, "visit", v)
}
