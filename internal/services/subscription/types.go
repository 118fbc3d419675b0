package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/gymadmin/internal/lib/sl"
	"github.com/magabrotheeeer/gymadmin/internal/models"
)

// CreateSubscriptionType создаёт тип абонемента с уникальным названием.
func (s *Service) CreateSubscriptionType(ctx context.Context, req models.DummySubscriptionType) (*models.SubscriptionType, error) {
	const op = "subscription.CreateSubscriptionType"
	if req.Title == "" {
		return nil, models.NewValidationError("title", msgBlankType)
	}
	t, err := s.repo.CreateSubscriptionType(ctx, req.Title)
	if err != nil {
		if errors.Is(err, models.ErrExists) {
			return nil, models.NewValidationError("title", msgTypeExists)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

// GetSubscriptionType возвращает тип по ID.
func (s *Service) GetSubscriptionType(ctx context.Context, id int) (*models.SubscriptionType, error) {
	const op = "subscription.GetSubscriptionType"
	t, err := s.repo.GetSubscriptionType(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

// ListSubscriptionTypes возвращает все типы.
func (s *Service) ListSubscriptionTypes(ctx context.Context) ([]models.SubscriptionType, error) {
	const op = "subscription.ListSubscriptionTypes"
	list, err := s.repo.ListSubscriptionTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// DeleteSubscriptionType удаляет тип и каскадно все абонементы этого типа.
func (s *Service) DeleteSubscriptionType(ctx context.Context, id int) error {
	const op = "subscription.DeleteSubscriptionType"
	if err := s.repo.DeleteSubscriptionType(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.InvalidatePrefix(ctx, subscriptionKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("prefix", subscriptionKey), sl.Err(err))
	}
	return nil
}
