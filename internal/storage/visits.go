package storage

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/magabrotheeeer/gymadmin/internal/models"
)

var visitColumns = []string{"id", "subscription_id", "date", "enter_time", "exit_time"}

// CreateVisit сохраняет посещение и возвращает его ID.
func (s *Storage) CreateVisit(ctx context.Context, v models.Visit) (int, error) {
	const op = "storage.CreateVisit"

	q := s.builder.
		Insert("visits").
		Columns("subscription_id", "date", "enter_time", "exit_time").
		Values(v.SubscriptionID, v.Date, v.EnterTime, v.ExitTime).
		Suffix("RETURNING id")

	var id int
	if err := s.scalar(ctx, op, &id, q); err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("%s: %w", op, models.NewError("subscription", models.ErrInvalidReference))
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// GetVisit возвращает посещение по ID.
func (s *Storage) GetVisit(ctx context.Context, id int) (*models.Visit, error) {
	const op = "storage.GetVisit"

	var v models.Visit
	q := s.builder.Select(visitColumns...).From("visits").Where(squirrel.Eq{"id": id})
	if err := s.get(ctx, op, &v, q); err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("%s: %w", op, models.NewError("visit", models.ErrNotFound))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &v, nil
}

// ListVisits возвращает посещения по фильтру абонемента и даты.
func (s *Storage) ListVisits(ctx context.Context, filter models.VisitFilter) ([]models.Visit, error) {
	const op = "storage.ListVisits"

	equals := squirrel.Eq{}
	if filter.SubscriptionID != nil {
		equals["subscription_id"] = *filter.SubscriptionID
	}
	if filter.Date != nil {
		equals["date"] = *filter.Date
	}

	visits := make([]models.Visit, 0)
	q := s.builder.Select(visitColumns...).From("visits").Where(equals).OrderBy("date ASC", "enter_time ASC", "id ASC")
	if err := s.selectAll(ctx, op, &visits, q); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return visits, nil
}

// UpdateVisit перезаписывает все поля посещения.
func (s *Storage) UpdateVisit(ctx context.Context, v models.Visit) error {
	const op = "storage.UpdateVisit"

	q := s.builder.
		Update("visits").
		Set("subscription_id", v.SubscriptionID).
		Set("date", v.Date).
		Set("enter_time", v.EnterTime).
		Set("exit_time", v.ExitTime).
		Where(squirrel.Eq{"id": v.ID})

	n, err := s.exec(ctx, op, q)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%s: %w", op, models.NewError("subscription", models.ErrInvalidReference))
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, models.NewError("visit", models.ErrNotFound))
	}
	return nil
}

// DeleteVisit удаляет посещение.
func (s *Storage) DeleteVisit(ctx context.Context, id int) error {
	const op = "storage.DeleteVisit"

	n, err := s.exec(ctx, op, s.builder.Delete("visits").Where(squirrel.Eq{"id": id}))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, models.NewError("visit", models.ErrNotFound))
	}
	return nil
}
