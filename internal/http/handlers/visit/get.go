package visit

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

// GetService описывает чтение посещения.
type GetService interface {
	GetVisit(ctx context.Context, id int) (*models.Visit, error)
}

// Get обрабатывает GET /visits/{id}.
type Get struct {
	log     *slog.Logger
	service GetService
}

// NewGet создаёт обработчик.
func NewGet(log *slog.Logger, service GetService) *Get {
	return &Get{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Посещение
// @Tags Visits
// @Produce json
// @Param id path int true "ID посещения"
// @Success 200 {object} map[string]models.Visit
// @Failure 404 "Посещение не найдено"
// @Router /visits/{id} [get]
func (h *Get) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.visit.Get"

	id, ok := request.ID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	v, err := h.service.GetVisit(r.Context(), id)
	if err != nil {
		h.log.Error("failed to get visit",
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.Int("id", id),
			sl.Err(err),
		)
		response.ServiceError(w, r, err, "could not read visit")
		return
	}
	response.OK(w, r, "visit", v)
}
