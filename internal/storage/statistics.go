package storage

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/magabrotheeeer/gymadmin/internal/models"
)

// CountAccounts возвращает общее количество учётных записей.
func (s *Storage) CountAccounts(ctx context.Context) (int, error) {
	const op = "storage.CountAccounts"

	var n int
	if err := s.scalar(ctx, op, &n, s.builder.Select("COUNT(*)").From("accounts")); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// CountCurrentVisits возвращает количество посещений без времени выхода.
func (s *Storage) CountCurrentVisits(ctx context.Context) (int, error) {
	const op = "storage.CountCurrentVisits"

	var n int
	q := s.builder.Select("COUNT(*)").From("visits").Where(squirrel.Eq{"exit_time": nil})
	if err := s.scalar(ctx, op, &n, q); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// CountVisitsInPeriod возвращает количество посещений с датой в [From, To].
func (s *Storage) CountVisitsInPeriod(ctx context.Context, period models.Period) (int, error) {
	const op = "storage.CountVisitsInPeriod"

	var n int
	q := s.builder.
		Select("COUNT(*)").
		From("visits").
		Where(squirrel.Expr("date BETWEEN ? AND ?", period.From, period.To))
	if err := s.scalar(ctx, op, &n, q); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// CountSubscriptionsPerType группирует абонементы по названию типа.
// Если period задан, учитываются только абонементы, у которых дата начала
// или дата окончания попадает в период.
func (s *Storage) CountSubscriptionsPerType(ctx context.Context, period *models.Period) ([]models.TypeCount, error) {
	const op = "storage.CountSubscriptionsPerType"

	q := s.builder.
		Select("t.title AS type", "COUNT(s.id) AS count").
		From("subscriptions s").
		Join("subscription_types t ON t.id = s.type_id").
		GroupBy("t.title").
		OrderBy("t.title ASC")
	if period != nil {
		q = q.Where(squirrel.Or{
			squirrel.Expr("s.start_date BETWEEN ? AND ?", period.From, period.To),
			squirrel.Expr("s.end_date BETWEEN ? AND ?", period.From, period.To),
		})
	}

	counts := make([]models.TypeCount, 0)
	if err := s.selectAll(ctx, op, &counts, q); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return counts, nil
}
