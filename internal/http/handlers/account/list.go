package account

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

// ListService описывает выборку учётных записей.
type ListService interface {
	ListAccounts(ctx context.Context, filter models.AccountFilter) ([]models.Account, error)
}

// List обрабатывает GET /users. Фильтры first_name, last_name и email
// сравниваются точно и объединяются через AND.
type List struct {
	log     *slog.Logger
	service ListService
}

// NewList создаёт обработчик списка.
func NewList(log *slog.Logger, service ListService) *List {
	return &List{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список клиентов
// @Tags Users
// @Produce json
// @Param first_name query string false "Имя"
// @Param last_name query string false "Фамилия"
// @Param email query string false "Email"
// @Success 200 {object} map[string][]models.Account
// @Failure 500 {object} response.ErrorResponse
// @Router /users [get]
func (h *List) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.List"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter := models.AccountFilter{
		FirstName: request.QueryString(r, "first_name"),
		LastName:  request.QueryString(r, "last_name"),
		Email:     request.QueryString(r, "email"),
	}

	list, err := h.service.ListAccounts(r.Context(), filter)
	if err != nil {
		log.Error("failed to list accounts", sl.Err(err))
		response.ServiceError(w, r, err, "could not list users")
		return
	}

	log.Debug("accounts listed", slog.Int("count", len(list)))
	response.OK(w, r, "users", list)
}
