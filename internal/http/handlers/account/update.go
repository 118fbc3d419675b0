package account

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

// UpdateService описывает изменение имени и фамилии.
type UpdateService interface {
	UpdateAccount(ctx context.Context, id int, upd models.DummyAccountUpdate) (*models.Account, error)
}

// Update обрабатывает PUT и PATCH /users/{id}. Оба метода меняют только
// переданные поля.
type Update struct {
	log      *slog.Logger
	service  UpdateService
	validate *validator.Validate
}

// NewUpdate создаёт обработчик обновления.
func NewUpdate(log *slog.Logger, service UpdateService) *Update {
	return &Update{
		log:      log,
		service:  service,
		validate: request.NewValidator(),
	}
}

// ServeHTTP godoc
// @Summary Изменить имя или фамилию клиента
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "ID клиента"
// @Param request body models.DummyAccountUpdate true "Новые значения"
// @Success 200 {object} map[string]models.Account
// @Failure 400 {object} response.ValidationErrorResponse
// @Failure 404 "Клиент не найден"
// @Router /users/{id} [put]
// @Router /users/{id} [patch]
func (h *Update) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.Update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := request.ID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	var req models.DummyAccountUpdate
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

	acc, err := h.service.UpdateAccount(r.Context(), id, req)
	if err != nil {
		log.Error("failed to update account", slog.Int("id", id), sl.Err(err))
		response.ServiceError(w, r, err, "could not update user")
		return
	}

	log.Info("account updated", slog.Int("id", id))
	response.OK(w, r, "user", acc)
}
