// Package statistics считает сводную статистику зала. Значения всегда
// вычисляются заново и не кэшируются.
package statistics

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/gymadmin/internal/models"
)

const msgPeriodOrder = "from must not be later than to"

// Repository агрегирующие запросы к хранилищу.
type Repository interface {
	CountAccounts(ctx context.Context) (int, error)
	CountCurrentVisits(ctx context.Context) (int, error)
	CountVisitsInPeriod(ctx context.Context, period models.Period) (int, error)
	CountSubscriptionsPerType(ctx context.Context, period *models.Period) ([]models.TypeCount, error)
}

// Service вычисляет статистику.
type Service struct {
	repo  Repository
	today func() models.Date
}

// New создаёт сервис статистики.
func New(repo Repository) *Service {
	return &Service{
		repo:  repo,
		today: models.Today,
	}
}

// ParsePeriod разбирает параметры from и to. Пустой from означает, что период
// не запрошен. Пустой to заменяется текущей датой.
func (s *Service) ParsePeriod(from, to string) (*models.Period, error) {
	if from == "" {
		return nil, nil
	}

	verr := &models.ValidationError{}
	start, err := models.ParseDate(from)
	if err != nil {
		verr.Add("from", err.Error())
	}
	end := s.today()
	if to != "" {
		end, err = models.ParseDate(to)
		if err != nil {
			verr.Add("to", err.Error())
		}
	}
	if verr.Empty() && start.After(end) {
		verr.Add(models.NonFieldErrors, msgPeriodOrder)
	}
	if !verr.Empty() {
		return nil, verr
	}
	return &models.Period{From: start, To: end}, nil
}

// GetStatistics возвращает общие счётчики и, если задан period, счётчики за
// закрытый интервал [From, To].
func (s *Service) GetStatistics(ctx context.Context, period *models.Period) (*models.Statistics, error) {
	const op = "statistics.GetStatistics"

	var (
		stats models.Statistics
		err   error
	)
	if stats.TotalClients, err = s.repo.CountAccounts(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if stats.TotalSubscriptionsPerType, err = s.repo.CountSubscriptionsPerType(ctx, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if stats.CurrentVisits, err = s.repo.CountCurrentVisits(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if period == nil {
		return &stats, nil
	}

	ps := models.PeriodStatistics{From: period.From, To: period.To}
	if ps.VisitsInPeriod, err = s.repo.CountVisitsInPeriod(ctx, *period); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if ps.SubscriptionsInPeriodPerType, err = s.repo.CountSubscriptionsPerType(ctx, period); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	stats.Period = &ps
	return &stats, nil
}
