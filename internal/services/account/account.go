// Package account содержит бизнес-логику учётных записей: фабрику с проверкой
// обязательных полей, чтение с кэшированием, частичное обновление и удаление.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/gymadmin/internal/events"
	"github.com/magabrotheeeer/gymadmin/internal/lib/password"
	"github.com/magabrotheeeer/gymadmin/internal/lib/sl"
	"github.com/magabrotheeeer/gymadmin/internal/models"
)

const (
	msgRequired    = "This field is required."
	msgEmailExists = "user with this email already exists."
)

// Repository методы хранилища, нужные сервису.
type Repository interface {
	CreateAccount(ctx context.Context, a models.Account) (int, error)
	GetAccount(ctx context.Context, id int) (*models.Account, error)
	ListAccounts(ctx context.Context, filter models.AccountFilter) ([]models.Account, error)
	UpdateAccount(ctx context.Context, id int, upd models.DummyAccountUpdate) (*models.Account, error)
	DeleteAccount(ctx context.Context, id int) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(ctx context.Context, key string) error
	// InvalidatePrefix удаляет все значения с общим префиксом ключа.
	InvalidatePrefix(ctx context.Context, prefix string) error
}

// Service реализует операции над учётными записями.
type Service struct {
	repo      Repository
	cache     Cache
	publisher events.Publisher
	ttl       time.Duration
	log       *slog.Logger
}

// New создаёт сервис учётных записей.
func New(repo Repository, cache Cache, publisher events.Publisher, ttl time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		ttl:       ttl,
		log:       log,
	}
}

// CacheKey ключ карточки учётной записи в кэше.
func CacheKey(id int) string {
	return fmt.Sprintf("account:%d", id)
}

// Register создаёт клиента из данных JSON-запроса.
func (s *Service) Register(ctx context.Context, req models.DummyAccount) (*models.Account, error) {
	params := models.NewAccountParams{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	}
	if req.BirthDate != "" {
		d, err := models.ParseDate(req.BirthDate)
		if err != nil {
			return nil, models.NewValidationError("birth_date", err.Error())
		}
		params.BirthDate = &d
	}
	return s.CreateAccount(ctx, params)
}

// CreateSuperuser создаёт учётную запись сотрудника с правами суперпользователя.
// birthDate может быть nil.
func (s *Service) CreateSuperuser(ctx context.Context, email, firstName, lastName, pass string, birthDate *models.Date) (*models.Account, error) {
	return s.CreateAccount(ctx, models.NewAccountParams{
		Email:       email,
		FirstName:   firstName,
		LastName:    lastName,
		Password:    pass,
		BirthDate:   birthDate,
		IsStaff:     true,
		IsSuperuser: true,
	})
}

// CreateAccount фабрика учётных записей. Email, имя и фамилия обязательны,
// пароль сохраняется только в виде bcrypt-хэша.
func (s *Service) CreateAccount(ctx context.Context, p models.NewAccountParams) (*models.Account, error) {
	const op = "account.CreateAccount"

	verr := &models.ValidationError{}
	if p.Email == "" {
		verr.Add("email", msgRequired)
	}
	if p.FirstName == "" {
		verr.Add("first_name", msgRequired)
	}
	if p.LastName == "" {
		verr.Add("last_name", msgRequired)
	}
	if p.Password == "" {
		verr.Add("password", msgRequired)
	}
	if !verr.Empty() {
		return nil, verr
	}

	hash, err := password.GetHash(p.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	a := models.Account{
		Email:        models.NormalizeEmail(p.Email),
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		BirthDate:    p.BirthDate,
		PasswordHash: hash,
		IsActive:     true,
		IsStaff:      p.IsStaff,
		IsSuperuser:  p.IsSuperuser,
	}

	id, err := s.repo.CreateAccount(ctx, a)
	if err != nil {
		if errors.Is(err, models.ErrExists) {
			return nil, models.NewValidationError("email", msgEmailExists)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	a.ID = id

	s.log.Info("account created", slog.Int("id", id))
	if err := s.publisher.Publish(ctx, events.AccountRegistered, a); err != nil {
		s.log.Warn("failed to publish event", slog.String("event", events.AccountRegistered), sl.Err(err))
	}
	return &a, nil
}

// GetAccount возвращает учётную запись по ID, используя кэш.
func (s *Service) GetAccount(ctx context.Context, id int) (*models.Account, error) {
	const op = "account.GetAccount"

	key := CacheKey(id)
	var cached models.Account
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", key), sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	a, err := s.repo.GetAccount(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(ctx, key, a, s.ttl); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", key), sl.Err(err))
	}
	return a, nil
}

// ListAccounts возвращает учётные записи, подходящие под все заданные фильтры.
func (s *Service) ListAccounts(ctx context.Context, filter models.AccountFilter) ([]models.Account, error) {
	const op = "account.ListAccounts"
	if filter.Email != nil {
		email := models.NormalizeEmail(*filter.Email)
		filter.Email = &email
	}
	list, err := s.repo.ListAccounts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// UpdateAccount меняет имя и/или фамилию.
func (s *Service) UpdateAccount(ctx context.Context, id int, upd models.DummyAccountUpdate) (*models.Account, error) {
	const op = "account.UpdateAccount"
	a, err := s.repo.UpdateAccount(ctx, id, upd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, CacheKey(id))
	return a, nil
}

// DeleteAccount удаляет учётную запись вместе с её абонементами и посещениями.
func (s *Service) DeleteAccount(ctx context.Context, id int) error {
	const op = "account.DeleteAccount"
	if err := s.repo.DeleteAccount(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, CacheKey(id))
	// абонементы удалены каскадно, их ID здесь неизвестны
	if err := s.cache.InvalidatePrefix(ctx, "subscription:"); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("prefix", "subscription:"), sl.Err(err))
	}
	s.log.Info("account deleted", slog.Int("id", id))
	return nil
}

func (s *Service) invalidate(ctx context.Context, key string) {
	if err := s.cache.Invalidate(ctx, key); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", key), sl.Err(err))
	}
}
