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

// GetService описывает чтение карточки.
type GetService interface {
	GetAccount(ctx context.Context, id int) (*models.Account, error)
}

// Get обрабатывает GET /users/{id}.
type Get struct {
	log     *slog.Logger
	service GetService
}

// NewGet создаёт обработчик карточки.
func NewGet(log *slog.Logger, service GetService) *Get {
	return &Get{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Карточка клиента
// @Tags Users
// @Produce json
// @Param id path int true "ID клиента"
// @Success 200 {object} map[string]models.Account
// @Failure 404 "Клиент не найден"
// @Router /users/{id} [get]
func (h *Get) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.Get"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := request.ID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	acc, err := h.service.GetAccount(r.Context(), id)
	if err != nil {
		log.Error("failed to get account", slog.Int("id", id), sl.Err(err))
		response.ServiceError(w, r, err, "could not read user")
		return
	}
	response.OK(w, r, "user", acc)
}
