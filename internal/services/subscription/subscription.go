// Package subscription содержит бизнес-логику абонементов и их типов.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/gymadmin/internal/events"
	"github.com/magabrotheeeer/gymadmin/internal/lib/sl"
	"github.com/magabrotheeeer/gymadmin/internal/models"
)

const (
	msgDateOrder    = "End of the subscription cannot be earlier than start date."
	msgUnknownUser  = `Invalid pk "%d" - object does not exist.`
	msgBlankType    = "This field may not be blank."
	msgTypeExists   = "subscription type with this title already exists."
	subscriptionKey = "subscription:"
)

// Repository методы хранилища, нужные сервису.
type Repository interface {
	GetAccount(ctx context.Context, id int) (*models.Account, error)

	GetOrCreateSubscriptionType(ctx context.Context, title string) (*models.SubscriptionType, error)
	CreateSubscriptionType(ctx context.Context, title string) (*models.SubscriptionType, error)
	GetSubscriptionType(ctx context.Context, id int) (*models.SubscriptionType, error)
	ListSubscriptionTypes(ctx context.Context) ([]models.SubscriptionType, error)
	DeleteSubscriptionType(ctx context.Context, id int) error

	CreateSubscription(ctx context.Context, sub models.Subscription) (int, error)
	GetSubscription(ctx context.Context, id int) (*models.Subscription, error)
	ListSubscriptions(ctx context.Context, filter models.SubscriptionFilter) ([]models.Subscription, error)
	UpdateSubscription(ctx context.Context, sub models.Subscription) error
	DeleteSubscription(ctx context.Context, id int) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
	InvalidatePrefix(ctx context.Context, prefix string) error
}

// Service реализует операции над абонементами.
type Service struct {
	repo      Repository
	cache     Cache
	publisher events.Publisher
	ttl       time.Duration
	log       *slog.Logger
}

// New создаёт сервис абонементов.
func New(repo Repository, cache Cache, publisher events.Publisher, ttl time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		ttl:       ttl,
		log:       log,
	}
}

// CacheKey ключ карточки абонемента в кэше.
func CacheKey(id int) string {
	return fmt.Sprintf("%s%d", subscriptionKey, id)
}

// CreateSubscription оформляет абонемент. Тип задаётся названием и создаётся
// при первом использовании.
func (s *Service) CreateSubscription(ctx context.Context, req models.DummySubscription) (*models.Subscription, error) {
	const op = "subscription.CreateSubscription"

	verr := &models.ValidationError{}
	start, err := models.ParseDate(req.StartDate)
	if err != nil {
		verr.Add("start_date", err.Error())
	}
	end, err := models.ParseDate(req.EndDate)
	if err != nil {
		verr.Add("end_date", err.Error())
	}
	price := 0
	if req.Price != nil {
		price = *req.Price
	}
	if price < 0 {
		verr.Add("price", "Ensure this value is greater than or equal to 0.")
	}
	if verr.Empty() && start.After(end) {
		verr.Add(models.NonFieldErrors, msgDateOrder)
	}
	if !verr.Empty() {
		return nil, verr
	}

	if _, err := s.repo.GetAccount(ctx, req.UserID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewValidationError("user_id", fmt.Sprintf(msgUnknownUser, req.UserID))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	t, err := s.repo.GetOrCreateSubscriptionType(ctx, req.Type)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sub := models.Subscription{
		UserID:    req.UserID,
		TypeID:    t.ID,
		Type:      t.Title,
		StartDate: start,
		EndDate:   end,
		Price:     price,
	}
	id, err := s.repo.CreateSubscription(ctx, sub)
	if err != nil {
		// учётную запись удалили между проверкой и вставкой
		if errors.Is(err, models.ErrInvalidReference) {
			return nil, models.NewValidationError("user_id", fmt.Sprintf(msgUnknownUser, req.UserID))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sub.ID = id

	s.log.Info("subscription created", slog.Int("id", id), slog.Int("user_id", sub.UserID))
	if err := s.publisher.Publish(ctx, events.SubscriptionCreated, sub); err != nil {
		s.log.Warn("failed to publish event", slog.String("event", events.SubscriptionCreated), sl.Err(err))
	}
	return &sub, nil
}

// GetSubscription возвращает абонемент по ID, используя кэш.
func (s *Service) GetSubscription(ctx context.Context, id int) (*models.Subscription, error) {
	const op = "subscription.GetSubscription"

	key := CacheKey(id)
	var cached models.Subscription
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", key), sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	sub, err := s.repo.GetSubscription(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(ctx, key, sub, s.ttl); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", key), sl.Err(err))
	}
	return sub, nil
}

// ListSubscriptions возвращает абонементы по фильтрам типа и владельца.
func (s *Service) ListSubscriptions(ctx context.Context, filter models.SubscriptionFilter) ([]models.Subscription, error) {
	const op = "subscription.ListSubscriptions"
	list, err := s.repo.ListSubscriptions(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// UpdateSubscription частично обновляет абонемент. Порядок дат проверяется
// по объединённой записи.
func (s *Service) UpdateSubscription(ctx context.Context, id int, upd models.DummySubscriptionUpdate) (*models.Subscription, error) {
	const op = "subscription.UpdateSubscription"

	sub, err := s.repo.GetSubscription(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	verr := &models.ValidationError{}
	if upd.StartDate != nil {
		d, err := models.ParseDate(*upd.StartDate)
		if err != nil {
			verr.Add("start_date", err.Error())
		}
		sub.StartDate = d
	}
	if upd.EndDate != nil {
		d, err := models.ParseDate(*upd.EndDate)
		if err != nil {
			verr.Add("end_date", err.Error())
		}
		sub.EndDate = d
	}
	if upd.Price != nil {
		if *upd.Price < 0 {
			verr.Add("price", "Ensure this value is greater than or equal to 0.")
		}
		sub.Price = *upd.Price
	}
	if upd.Type != nil && *upd.Type == "" {
		verr.Add("type", msgBlankType)
	}
	if verr.Empty() && sub.StartDate.After(sub.EndDate) {
		verr.Add(models.NonFieldErrors, msgDateOrder)
	}
	if !verr.Empty() {
		return nil, verr
	}

	if upd.Type != nil && *upd.Type != sub.Type {
		t, err := s.repo.GetOrCreateSubscriptionType(ctx, *upd.Type)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		sub.TypeID = t.ID
		sub.Type = t.Title
	}

	if err := s.repo.UpdateSubscription(ctx, *sub); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, CacheKey(id))
	return sub, nil
}

// DeleteSubscription удаляет абонемент вместе с посещениями.
func (s *Service) DeleteSubscription(ctx context.Context, id int) error {
	const op = "subscription.DeleteSubscription"
	if err := s.repo.DeleteSubscription(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, CacheKey(id))
	s.log.Info("subscription deleted", slog.Int("id", id))
	return nil
}

func (s *Service) invalidate(ctx context.Context, key string) {
	if err := s.cache.Invalidate(ctx, key); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", key), sl.Err(err))
	}
}
