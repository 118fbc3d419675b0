// Package visit содержит бизнес-логику посещений зала.
package visit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/gymadmin/internal/events"
	"github.com/magabrotheeeer/gymadmin/internal/lib/sl"
	"github.com/magabrotheeeer/gymadmin/internal/models"
)

const (
	msgTimeOrder           = "Enter time must be before exit time"
	msgUnknownSubscription = `Invalid pk "%d" - object does not exist.`
)

// Repository методы хранилища, нужные сервису.
type Repository interface {
	GetSubscription(ctx context.Context, id int) (*models.Subscription, error)

	CreateVisit(ctx context.Context, v models.Visit) (int, error)
	GetVisit(ctx context.Context, id int) (*models.Visit, error)
	ListVisits(ctx context.Context, filter models.VisitFilter) ([]models.Visit, error)
	UpdateVisit(ctx context.Context, v models.Visit) error
	DeleteVisit(ctx context.Context, id int) error
}

// Service реализует операции над посещениями.
type Service struct {
	repo      Repository
	publisher events.Publisher
	log       *slog.Logger
}

// New создаёт сервис посещений.
func New(repo Repository, publisher events.Publisher, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// CreateVisit регистрирует вход в зал. Время выхода необязательно, но если
// указано, должно быть строго позже входа.
func (s *Service) CreateVisit(ctx context.Context, req models.DummyVisit) (*models.Visit, error) {
	const op = "visit.CreateVisit"

	verr := &models.ValidationError{}
	v := models.Visit{SubscriptionID: req.SubscriptionID}

	d, err := models.ParseDate(req.Date)
	if err != nil {
		verr.Add("date", err.Error())
	}
	v.Date = d

	enter, err := models.ParseClock(req.EnterTime)
	if err != nil {
		verr.Add("enter_time", err.Error())
	}
	v.EnterTime = enter

	if req.ExitTime != nil {
		exit, err := models.ParseClock(*req.ExitTime)
		if err != nil {
			verr.Add("exit_time", err.Error())
		}
		v.ExitTime = &exit
	}
	if verr.Empty() {
		checkTimes(verr, v)
	}
	if !verr.Empty() {
		return nil, verr
	}

	if err := s.checkSubscription(ctx, op, v.SubscriptionID); err != nil {
		return nil, err
	}

	id, err := s.repo.CreateVisit(ctx, v)
	if err != nil {
		if errors.Is(err, models.ErrInvalidReference) {
			return nil, unknownSubscription(v.SubscriptionID)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	v.ID = id

	s.log.Info("visit recorded", slog.Int("id", id), slog.Int("subscription_id", v.SubscriptionID))
	s.publish(ctx, events.VisitRecorded, v)
	if v.ExitTime != nil {
		s.publish(ctx, events.VisitClosed, v)
	}
	return &v, nil
}

// GetVisit возвращает посещение по ID.
func (s *Service) GetVisit(ctx context.Context, id int) (*models.Visit, error) {
	const op = "visit.GetVisit"
	v, err := s.repo.GetVisit(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}

// ListVisits возвращает посещения по фильтрам абонемента и даты.
func (s *Service) ListVisits(ctx context.Context, filter models.VisitFilter) ([]models.Visit, error) {
	const op = "visit.ListVisits"
	list, err := s.repo.ListVisits(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// ListSubscriptionVisits возвращает посещения абонемента. Если абонемента нет,
// возвращается models.ErrNotFound.
func (s *Service) ListSubscriptionVisits(ctx context.Context, subscriptionID int) ([]models.Visit, error) {
	const op = "visit.ListSubscriptionVisits"
	if _, err := s.repo.GetSubscription(ctx, subscriptionID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	list, err := s.repo.ListVisits(ctx, models.VisitFilter{SubscriptionID: &subscriptionID})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// UpdateVisit частично обновляет посещение и заново проверяет порядок времени
// на объединённой записи.
func (s *Service) UpdateVisit(ctx context.Context, id int, upd models.DummyVisitUpdate) (*models.Visit, error) {
	const op = "visit.UpdateVisit"

	v, err := s.repo.GetVisit(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	wasOpen := v.ExitTime == nil

	verr := &models.ValidationError{}
	if upd.SubscriptionID != nil {
		v.SubscriptionID = *upd.SubscriptionID
	}
	if upd.Date != nil {
		d, err := models.ParseDate(*upd.Date)
		if err != nil {
			verr.Add("date", err.Error())
		}
		v.Date = d
	}
	if upd.EnterTime != nil {
		enter, err := models.ParseClock(*upd.EnterTime)
		if err != nil {
			verr.Add("enter_time", err.Error())
		}
		v.EnterTime = enter
	}
	switch {
	case upd.ClearExit && upd.ExitTime != nil:
		verr.Add(models.NonFieldErrors, "exit_time and clear_exit are mutually exclusive")
	case upd.ClearExit:
		v.ExitTime = nil
	case upd.ExitTime != nil:
		exit, err := models.ParseClock(*upd.ExitTime)
		if err != nil {
			verr.Add("exit_time", err.Error())
		}
		v.ExitTime = &exit
	}
	if verr.Empty() {
		checkTimes(verr, *v)
	}
	if !verr.Empty() {
		return nil, verr
	}

	if upd.SubscriptionID != nil {
		if err := s.checkSubscription(ctx, op, v.SubscriptionID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.UpdateVisit(ctx, *v); err != nil {
		if errors.Is(err, models.ErrInvalidReference) {
			return nil, unknownSubscription(v.SubscriptionID)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if wasOpen && v.ExitTime != nil {
		s.publish(ctx, events.VisitClosed, *v)
	}
	return v, nil
}

// DeleteVisit удаляет посещение.
func (s *Service) DeleteVisit(ctx context.Context, id int) error {
	const op = "visit.DeleteVisit"
	if err := s.repo.DeleteVisit(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Service) checkSubscription(ctx context.Context, op string, id int) error {
	if _, err := s.repo.GetSubscription(ctx, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return unknownSubscription(id)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Service) publish(ctx context.Context, event string, v models.Visit) {
	if err := s.publisher.Publish(ctx, event, v); err != nil {
		s.log.Warn("failed to publish event", slog.String("event", event), sl.Err(err))
	}
}

// checkTimes: время выхода, если есть, строго позже входа.
func checkTimes(verr *models.ValidationError, v models.Visit) {
	if v.ExitTime != nil && !v.EnterTime.Before(*v.ExitTime) {
		verr.Add(models.NonFieldErrors, msgTimeOrder)
	}
}

func unknownSubscription(id int) error {
	return models.NewValidationError("subscription_id", fmt.Sprintf(msgUnknownSubscription, id))
}
