// Package account реализует HTTP-обработчики учётных записей клиентов:
// регистрацию, список с фильтрами, карточку, частичное обновление и удаление.
//
// Каждая операция оформлена отдельным типом со своим узким интерфейсом сервиса.
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

// CreateService описывает регистрацию учётной записи.
type CreateService interface {
	Register(ctx context.Context, req models.DummyAccount) (*models.Account, error)
}

// Create обрабатывает POST /users и POST /register.
type Create struct {
	log      *slog.Logger
	service  CreateService
	validate *validator.Validate
}

// NewCreate создаёт обработчик регистрации.
func NewCreate(log *slog.Logger, service CreateService) *Create {
	return &Create{
		log:      log,
		service:  service,
		validate: request.NewValidator(),
	}
}

// ServeHTTP godoc
// @Summary Зарегистрировать клиента
// @Description Создаёт учётную запись. Пароль хранится в виде хэша и не возвращается.
// @Tags Users
// @Accept json
// @Produce json
// @Param request body models.DummyAccount true "Данные клиента"
// @Success 201 {object} map[string]models.Account
// @Failure 400 {object} response.ValidationErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /users [post]
// @Router /register [post]
func (h *Create) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.Create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyAccount
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

	acc, err := h.service.Register(r.Context(), req)
	if err != nil {
		log.Error("failed to create account", sl.Err(err))
		response.ServiceError(w, r, err, "could not create account")
		return
	}

	log.Info("account created", slog.Int("id", acc.ID))
	response.Created(w, r, "user", acc)
}
