package account

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/gymadmin/internal/http/request"
	"github.com/magabrotheeeer/gymadmin/internal/http/response"
	"github.com/magabrotheeeer/gymadmin/internal/lib/sl"
)

// DeleteService описывает удаление учётной записи.
type DeleteService interface {
	DeleteAccount(ctx context.Context, id int) error
}

// Delete обрабатывает DELETE /users/{id}. Абонементы и посещения клиента
// удаляются каскадно.
type Delete struct {
	log     *slog.Logger
	service DeleteService
}

// NewDelete создаёт обработчик удаления.
func NewDelete(log *slog.Logger, service DeleteService) *Delete {
	return &Delete{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить клиента
// @Tags Users
// @Param id path int true "ID клиента"
// @Success 204
// @Failure 404 "Клиент не найден"
// @Router /users/{id} [delete]
func (h *Delete) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.Delete"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := request.ID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	if err := h.service.DeleteAccount(r.Context(), id); err != nil {
		log.Error("failed to delete account", slog.Int("id", id), sl.Err(err))
		response.ServiceError(w, r, err, "could not delete user")
		return
	}

	log.Info("account deleted", slog.Int("id", id))
	response.NoContent(w)
}
