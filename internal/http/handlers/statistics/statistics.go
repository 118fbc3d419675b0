// Package statistics отдаёт агрегированную статистику зала.
package statistics

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gymadmin/internal/http/response"
	"github.com/magabrotheeeer/gymadmin/internal/lib/sl"
	"github.com/magabrotheeeer/gymadmin/internal/models"
)

// Service описывает расчёт статистики.
type Service interface {
	ParsePeriod(from, to string) (*models.Period, error)
	GetStatistics(ctx context.Context, period *models.Period) (*models.Statistics, error)
}

// Handler обрабатывает GET /statistics.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создаёт обработчик.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Статистика зала
// @Description Считается заново на каждый запрос. С параметром from добавляется блок period; to по умолчанию сегодня.
// @Tags Statistics
// @Produce json
// @Param from query string false "Начало периода YYYY-MM-DD"
// @Param to query string false "Конец периода YYYY-MM-DD"
// @Success 200 {object} models.Statistics
// @Failure 400 {object} response.ValidationErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /statistics [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.statistics.Get"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	q := r.URL.Query()
	period, err := h.service.ParsePeriod(q.Get("from"), q.Get("to"))
	if err != nil {
		log.Error("invalid period", sl.Err(err))
		response.ServiceError(w, r, err, "invalid period")
		return
	}

	stats, err := h.service.GetStatistics(r.Context(), period)
	if err != nil {
		log.Error("failed to compute statistics", sl.Err(err))
		response.ServiceError(w, r, err, "could not compute statistics")
		return
	}
	render.JSON(w, r, stats)
}
