package storage

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/magabrotheeeer/gymadmin/internal/models"
)

// GetOrCreateSubscriptionType возвращает тип по названию, создавая его при первом обращении.
func (s *Storage) GetOrCreateSubscriptionType(ctx context.Context, title string) (*models.SubscriptionType, error) {
	const op = "storage.GetOrCreateSubscriptionType"

	q := s.builder.
		Insert("subscription_types").
		Columns("title").
		Values(title).
		Suffix("ON CONFLICT (title) DO UPDATE SET title = EXCLUDED.title RETURNING id, title")

	var t models.SubscriptionType
	if err := s.get(ctx, op, &t, q); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &t, nil
}

// CreateSubscriptionType создаёт новый тип абонемента.
func (s *Storage) CreateSubscriptionType(ctx context.Context, title string) (*models.SubscriptionType, error) {
	const op = "storage.CreateSubscriptionType"

	q := s.builder.
		Insert("subscription_types").
		Columns("title").
		Values(title).
		Suffix("RETURNING id, title")

	var t models.SubscriptionType
	if err := s.get(ctx, op, &t, q); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, models.NewError("subscription type", models.ErrExists))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &t, nil
}

// GetSubscriptionType возвращает тип по ID.
func (s *Storage) GetSubscriptionType(ctx context.Context, id int) (*models.SubscriptionType, error) {
	const op = "storage.GetSubscriptionType"

	q := s.builder.Select("id", "title").From("subscription_types").Where(squirrel.Eq{"id": id})

	var t models.SubscriptionType
	if err := s.get(ctx, op, &t, q); err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("%s: %w", op, models.NewError("subscription type", models.ErrNotFound))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &t, nil
}

// ListSubscriptionTypes возвращает все типы абонементов.
func (s *Storage) ListSubscriptionTypes(ctx context.Context) ([]models.SubscriptionType, error) {
	const op = "storage.ListSubscriptionTypes"

	types := make([]models.SubscriptionType, 0)
	q := s.builder.Select("id", "title").From("subscription_types").OrderBy("title ASC")
	if err := s.selectAll(ctx, op, &types, q); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return types, nil
}

// DeleteSubscriptionType удаляет тип вместе со всеми абонементами этого типа.
func (s *Storage) DeleteSubscriptionType(ctx context.Context, id int) error {
	const op = "storage.DeleteSubscriptionType"

	n, err := s.exec(ctx, op, s.builder.Delete("subscription_types").Where(squirrel.Eq{"id": id}))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, models.NewError("subscription type", models.ErrNotFound))
	}
	return nil
}
