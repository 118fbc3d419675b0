package storage

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/magabrotheeeer/gymadmin/internal/models"
)

func (s *Storage) selectSubscriptions() squirrel.SelectBuilder {
	return s.builder.
		Select("s.id", "s.user_id", "s.type_id", "t.title AS type", "s.start_date", "s.end_date", "s.price").
		From("subscriptions s").
		Join("subscription_types t ON t.id = s.type_id")
}

// CreateSubscription сохраняет абонемент и возвращает его ID.
// Поле TypeID должно ссылаться на существующий тип.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.Subscription) (int, error) {
	const op = "storage.CreateSubscription"

	q := s.builder.
		Insert("subscriptions").
		Columns("user_id", "type_id", "start_date", "end_date", "price").
		Values(sub.UserID, sub.TypeID, sub.StartDate, sub.EndDate, sub.Price).
		Suffix("RETURNING id")

	var id int
	if err := s.scalar(ctx, op, &id, q); err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("%s: %w", op, models.NewError("account", models.ErrInvalidReference))
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// GetSubscription возвращает абонемент по ID.
func (s *Storage) GetSubscription(ctx context.Context, id int) (*models.Subscription, error) {
	const op = "storage.GetSubscription"

	var sub models.Subscription
	if err := s.get(ctx, op, &sub, s.selectSubscriptions().Where(squirrel.Eq{"s.id": id})); err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("%s: %w", op, models.NewError("subscription", models.ErrNotFound))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &sub, nil
}

// ListSubscriptions возвращает абонементы по фильтру типа и владельца.
func (s *Storage) ListSubscriptions(ctx context.Context, filter models.SubscriptionFilter) ([]models.Subscription, error) {
	const op = "storage.ListSubscriptions"

	equals := squirrel.Eq{}
	if filter.Type != nil {
		equals["t.title"] = *filter.Type
	}
	if filter.UserID != nil {
		equals["s.user_id"] = *filter.UserID
	}

	subs := make([]models.Subscription, 0)
	if err := s.selectAll(ctx, op, &subs, s.selectSubscriptions().Where(equals).OrderBy("s.id ASC")); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return subs, nil
}

// UpdateSubscription перезаписывает тип, даты и цену абонемента.
func (s *Storage) UpdateSubscription(ctx context.Context, sub models.Subscription) error {
	const op = "storage.UpdateSubscription"

	q := s.builder.
		Update("subscriptions").
		Set("type_id", sub.TypeID).
		Set("start_date", sub.StartDate).
		Set("end_date", sub.EndDate).
		Set("price", sub.Price).
		Where(squirrel.Eq{"id": sub.ID})

	n, err := s.exec(ctx, op, q)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, models.NewError("subscription", models.ErrNotFound))
	}
	return nil
}

// DeleteSubscription удаляет абонемент вместе с его посещениями.
func (s *Storage) DeleteSubscription(ctx context.Context, id int) error {
	const op = "storage.DeleteSubscription"

	n, err := s.exec(ctx, op, s.builder.Delete("subscriptions").Where(squirrel.Eq{"id": id}))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, models.NewError("subscription", models.ErrNotFound))
	}
	return nil
}
