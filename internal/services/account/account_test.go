package account

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/gymadmin/internal/events"
	"github.com/magabrotheeeer/gymadmin/internal/lib/password"
	"github.com/magabrotheeeer/gymadmin/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateAccount(ctx context.Context, a models.Account) (int, error) {
	args := m.Called(ctx, a)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) GetAccount(ctx context.Context, id int) (*models.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *RepoMock) ListAccounts(ctx context.Context, filter models.AccountFilter) ([]models.Account, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Account), args.Error(1)
}

func (m *RepoMock) UpdateAccount(ctx context.Context, id int, upd models.DummyAccountUpdate) (*models.Account, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *RepoMock) DeleteAccount(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}

func (m *CacheMock) Invalidate(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *CacheMock) InvalidatePrefix(ctx context.Context, prefix string) error {
	return m.Called(ctx, prefix).Error(0)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(ctx context.Context, routingKey string, payload any) error {
	return m.Called(ctx, routingKey, payload).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestService_CreateAccount(t *testing.T) {
	tests := []struct {
		name        string
		params      models.NewAccountParams
		setupMocks  func(r *RepoMock, p *PublisherMock)
		wantFields  []string
		wantErr     bool
		checkResult func(t *testing.T, a *models.Account)
	}{
		{
			name: "success",
			params: models.NewAccountParams{
				Email: "anna@GYM.ru", FirstName: "Anna", LastName: "Petrova", Password: "secret",
			},
			setupMocks: func(r *RepoMock, p *PublisherMock) {
				r.On("CreateAccount", mock.Anything, mock.MatchedBy(func(a models.Account) bool {
					return a.Email == "anna@gym.ru" &&
						a.IsActive && !a.IsStaff && !a.IsSuperuser &&
						a.PasswordHash != "secret" &&
						password.CompareHash(a.PasswordHash, "secret") == nil
				})).Return(5, nil).Once()
				p.On("Publish", mock.Anything, events.AccountRegistered, mock.Anything).Return(nil).Once()
			},
			checkResult: func(t *testing.T, a *models.Account) {
				assert.Equal(t, 5, a.ID)
				assert.Equal(t, "anna@gym.ru", a.Email)
			},
		},
		{
			name:       "missing required fields",
			params:     models.NewAccountParams{Password: "x"},
			setupMocks: func(_ *RepoMock, _ *PublisherMock) {},
			wantFields: []string{"email", "first_name", "last_name"},
			wantErr:    true,
		},
		{
			name:       "missing password",
			params:     models.NewAccountParams{Email: "a@b.c", FirstName: "A", LastName: "B"},
			setupMocks: func(_ *RepoMock, _ *PublisherMock) {},
			wantFields: []string{"password"},
			wantErr:    true,
		},
		{
			name: "duplicate email",
			params: models.NewAccountParams{
				Email: "anna@gym.ru", FirstName: "Anna", LastName: "Petrova", Password: "secret",
			},
			setupMocks: func(r *RepoMock, _ *PublisherMock) {
				r.On("CreateAccount", mock.Anything, mock.Anything).
					Return(0, fmt.Errorf("storage.CreateAccount: %w", models.NewError("account", models.ErrExists))).Once()
			},
			wantFields: []string{"email"},
			wantErr:    true,
		},
		{
			name: "publish failure does not fail the request",
			params: models.NewAccountParams{
				Email: "ivan@gym.ru", FirstName: "Ivan", LastName: "Ivanov", Password: "secret",
			},
			setupMocks: func(r *RepoMock, p *PublisherMock) {
				r.On("CreateAccount", mock.Anything, mock.Anything).Return(6, nil).Once()
				p.On("Publish", mock.Anything, events.AccountRegistered, mock.Anything).Return(errors.New("broker down")).Once()
			},
			checkResult: func(t *testing.T, a *models.Account) {
				assert.Equal(t, 6, a.ID)
			},
		},
		{
			name: "storage error",
			params: models.NewAccountParams{
				Email: "ivan@gym.ru", FirstName: "Ivan", LastName: "Ivanov", Password: "secret",
			},
			setupMocks: func(r *RepoMock, _ *PublisherMock) {
				r.On("CreateAccount", mock.Anything, mock.Anything).Return(0, errors.New("db down")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			pub := new(PublisherMock)
			tt.setupMocks(repo, pub)
			svc := New(repo, new(CacheMock), pub, time.Hour, newNoopLogger())

			a, err := svc.CreateAccount(context.Background(), tt.params)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, a)
				if tt.wantFields != nil {
					verr, ok := models.AsValidationError(err)
					require.True(t, ok)
					for _, f := range tt.wantFields {
						assert.Contains(t, verr.Fields, f)
					}
				}
			} else {
				require.NoError(t, err)
				tt.checkResult(t, a)
			}
			repo.AssertExpectations(t)
			pub.AssertExpectations(t)
		})
	}
}

func TestService_CreateSuperuser(t *testing.T) {
	repo := new(RepoMock)
	repo.On("CreateAccount", mock.Anything, mock.MatchedBy(func(a models.Account) bool {
		return a.IsStaff && a.IsSuperuser && a.IsActive && a.BirthDate == nil
	})).Return(1, nil).Once()
	svc := New(repo, new(CacheMock), events.Nop{}, time.Hour, newNoopLogger())

	a, err := svc.CreateSuperuser(context.Background(), "admin@gym.ru", "Admin", "Root", "pass", nil)
	require.NoError(t, err)
	assert.True(t, a.IsSuperuser)
	repo.AssertExpectations(t)
}

func TestService_CreateSuperuser_WithBirthDate(t *testing.T) {
	repo := new(RepoMock)
	repo.On("CreateAccount", mock.Anything, mock.MatchedBy(func(a models.Account) bool {
		return a.IsSuperuser && a.BirthDate != nil && a.BirthDate.String() == "1985-06-15"
	})).Return(2, nil).Once()
	svc := New(repo, new(CacheMock), events.Nop{}, time.Hour, newNoopLogger())

	birth := models.NewDate(1985, time.June, 15)
	a, err := svc.CreateSuperuser(context.Background(), "admin@gym.ru", "Admin", "Root", "pass", &birth)
	require.NoError(t, err)
	require.NotNil(t, a.BirthDate)
	assert.Equal(t, "1985-06-15", a.BirthDate.String())
	repo.AssertExpectations(t)
}

func TestService_Register_BadBirthDate(t *testing.T) {
	svc := New(new(RepoMock), new(CacheMock), events.Nop{}, time.Hour, newNoopLogger())

	_, err := svc.Register(context.Background(), models.DummyAccount{
		Email: "a@b.c", FirstName: "A", LastName: "B", Password: "p", BirthDate: "31-12-1999",
	})
	verr, ok := models.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "birth_date")
}

func TestService_Register_WithBirthDate(t *testing.T) {
	repo := new(RepoMock)
	repo.On("CreateAccount", mock.Anything, mock.MatchedBy(func(a models.Account) bool {
		return a.BirthDate != nil && a.BirthDate.String() == "1999-12-31"
	})).Return(3, nil).Once()
	svc := New(repo, new(CacheMock), events.Nop{}, time.Hour, newNoopLogger())

	a, err := svc.Register(context.Background(), models.DummyAccount{
		Email: "a@b.c", FirstName: "A", LastName: "B", Password: "p", BirthDate: "1999-12-31",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, a.ID)
	repo.AssertExpectations(t)
}

func TestService_GetAccount(t *testing.T) {
	acc := &models.Account{ID: 4, Email: "a@b.c", FirstName: "A", LastName: "B"}

	tests := []struct {
		name       string
		setupMocks func(r *RepoMock, c *CacheMock)
		wantErr    error
	}{
		{
			name: "cache hit",
			setupMocks: func(_ *RepoMock, c *CacheMock) {
				c.On("Get", mock.Anything, "account:4", mock.Anything).
					Run(func(args mock.Arguments) {
						*args.Get(2).(*models.Account) = *acc
					}).Return(true, nil).Once()
			},
		},
		{
			name: "cache miss reads storage and fills cache",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				c.On("Get", mock.Anything, "account:4", mock.Anything).Return(false, nil).Once()
				r.On("GetAccount", mock.Anything, 4).Return(acc, nil).Once()
				c.On("Set", mock.Anything, "account:4", acc, time.Hour).Return(nil).Once()
			},
		},
		{
			name: "cache error falls back to storage",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				c.On("Get", mock.Anything, "account:4", mock.Anything).Return(false, errors.New("redis down")).Once()
				r.On("GetAccount", mock.Anything, 4).Return(acc, nil).Once()
				c.On("Set", mock.Anything, "account:4", acc, time.Hour).Return(errors.New("redis down")).Once()
			},
		},
		{
			name: "not found",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				c.On("Get", mock.Anything, "account:4", mock.Anything).Return(false, nil).Once()
				r.On("GetAccount", mock.Anything, 4).Return(nil, models.NewError("account", models.ErrNotFound)).Once()
			},
			wantErr: models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			c := new(CacheMock)
			tt.setupMocks(repo, c)
			svc := New(repo, c, events.Nop{}, time.Hour, newNoopLogger())

			got, err := svc.GetAccount(context.Background(), 4)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, acc.Email, got.Email)
			}
			repo.AssertExpectations(t)
			c.AssertExpectations(t)
		})
	}
}

func TestService_ListAccounts_NormalizesEmailFilter(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ListAccounts", mock.Anything, mock.MatchedBy(func(f models.AccountFilter) bool {
		return f.Email != nil && *f.Email == "anna@gym.ru"
	})).Return([]models.Account{{ID: 1}}, nil).Once()
	svc := New(repo, new(CacheMock), events.Nop{}, time.Hour, newNoopLogger())

	email := "anna@GYM.RU"
	list, err := svc.ListAccounts(context.Background(), models.AccountFilter{Email: &email})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	repo.AssertExpectations(t)
}

func TestService_UpdateAccount(t *testing.T) {
	name := "Maria"
	upd := models.DummyAccountUpdate{FirstName: &name}

	t.Run("success invalidates cache", func(t *testing.T) {
		repo := new(RepoMock)
		c := new(CacheMock)
		repo.On("UpdateAccount", mock.Anything, 2, upd).Return(&models.Account{ID: 2, FirstName: name}, nil).Once()
		c.On("Invalidate", mock.Anything, "account:2").Return(nil).Once()
		svc := New(repo, c, events.Nop{}, time.Hour, newNoopLogger())

		a, err := svc.UpdateAccount(context.Background(), 2, upd)
		require.NoError(t, err)
		assert.Equal(t, name, a.FirstName)
		repo.AssertExpectations(t)
		c.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(RepoMock)
		c := new(CacheMock)
		repo.On("UpdateAccount", mock.Anything, 2, upd).Return(nil, models.ErrNotFound).Once()
		svc := New(repo, c, events.Nop{}, time.Hour, newNoopLogger())

		_, err := svc.UpdateAccount(context.Background(), 2, upd)
		assert.ErrorIs(t, err, models.ErrNotFound)
		c.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
	})
}

func TestService_DeleteAccount(t *testing.T) {
	t.Run("success invalidates account and subscriptions", func(t *testing.T) {
		repo := new(RepoMock)
		c := new(CacheMock)
		repo.On("DeleteAccount", mock.Anything, 9).Return(nil).Once()
		c.On("Invalidate", mock.Anything, "account:9").Return(nil).Once()
		c.On("InvalidatePrefix", mock.Anything, "subscription:").Return(nil).Once()
		svc := New(repo, c, events.Nop{}, time.Hour, newNoopLogger())

		require.NoError(t, svc.DeleteAccount(context.Background(), 9))
		repo.AssertExpectations(t)
		c.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(RepoMock)
		c := new(CacheMock)
		repo.On("DeleteAccount", mock.Anything, 9).Return(models.NewError("account", models.ErrNotFound)).Once()
		svc := New(repo, c, events.Nop{}, time.Hour, newNoopLogger())

		err := svc.DeleteAccount(context.Background(), 9)
		assert.ErrorIs(t, err, models.ErrNotFound)
		c.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
	})
}
