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

// UpdateService описывает частичное обновление посещения.
type UpdateService interface {
	UpdateVisit(ctx context.Context, id int, upd models.DummyVisitUpdate) (*models.Visit, error)
}

// Update обрабатывает PUT и PATCH /visits/{id}.
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
// @Summary Изменить посещение
// @Description Меняет только переданные поля. clear_exit=true сбрасывает время выхода.
// @Tags Visits
// @Accept json
// @Produce json
// @Param id path int true "ID посещения"
// @Param request body models.DummyVisitUpdate true "Новые значения"
// @Success 200 {object} map[string]models.Visit
// @Failure 400 {object} response.ValidationErrorResponse
// @Failure 404 "Посещение не найдено"
// @Router /visits/{id} [put]
// @Router /visits/{id} [patch]
func (h *Update) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.visit.Update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := request.ID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	var req models.DummyVisitUpdate
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

	v, err := h.service.UpdateVisit(r.Context(), id, req)
	if err != nil {
		log.Error("failed to update visit", slog.Int("id", id), sl.Err(err))
		response.ServiceError(w, r, err, "could not update visit")
		return
	}

	log.Info("visit updated", slog.Int("id", id))
	response.OK(w, r, "visit", v)
}
