package subscription

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/gymadmin/internal/events"
	"github.com/magabrotheeeer/gymadmin/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) GetAccount(ctx context.Context, id int) (*models.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *RepoMock) GetOrCreateSubscriptionType(ctx context.Context, title string) (*models.SubscriptionType, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubscriptionType), args.Error(1)
}

func (m *RepoMock) CreateSubscriptionType(ctx context.Context, title string) (*models.SubscriptionType, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubscriptionType), args.Error(1)
}

func (m *RepoMock) GetSubscriptionType(ctx context.Context, id int) (*models.SubscriptionType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubscriptionType), args.Error(1)
}

func (m *RepoMock) ListSubscriptionTypes(ctx context.Context) ([]models.SubscriptionType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SubscriptionType), args.Error(1)
}

func (m *RepoMock) DeleteSubscriptionType(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *RepoMock) CreateSubscription(ctx context.Context, sub models.Subscription) (int, error) {
	args := m.Called(ctx, sub)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) GetSubscription(ctx context.Context, id int) (*models.Subscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func (m *RepoMock) ListSubscriptions(ctx context.Context, filter models.SubscriptionFilter) ([]models.Subscription, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Subscription), args.Error(1)
}

func (m *RepoMock) UpdateSubscription(ctx context.Context, sub models.Subscription) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *RepoMock) DeleteSubscription(ctx context.Context, id int) error {
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

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
func newService(r *RepoMock, c *CacheMock) *Service {
	return New(r, c, events.Nop{}, time.Hour, newNoopLogger())
}

func TestService_CreateSubscription(t *testing.T) {
	sport := &models.SubscriptionType{ID: 2, Title: "sport"}

	tests := []struct {
		name       string
		req        models.DummySubscription
		setupMocks func(r *RepoMock)
		wantField  string
		wantErr    bool
		wantID     int
	}{
		{
			name: "success",
			req: models.DummySubscription{
				UserID: 1, Type: "sport", StartDate: "2024-01-01", EndDate: "2024-02-01", Price: intPtr(1500),
			},
			setupMocks: func(r *RepoMock) {
				r.On("GetAccount", mock.Anything, 1).Return(&models.Account{ID: 1}, nil).Once()
				r.On("GetOrCreateSubscriptionType", mock.Anything, "sport").Return(sport, nil).Once()
				r.On("CreateSubscription", mock.Anything, mock.MatchedBy(func(s models.Subscription) bool {
					return s.UserID == 1 && s.TypeID == 2 && s.Price == 1500 &&
						s.StartDate.String() == "2024-01-01" && s.EndDate.String() == "2024-02-01"
				})).Return(10, nil).Once()
			},
			wantID: 10,
		},
		{
			name: "start equal to end is accepted",
			req: models.DummySubscription{
				UserID: 1, Type: "sport", StartDate: "2024-01-01", EndDate: "2024-01-01", Price: intPtr(0),
			},
			setupMocks: func(r *RepoMock) {
				r.On("GetAccount", mock.Anything, 1).Return(&models.Account{ID: 1}, nil).Once()
				r.On("GetOrCreateSubscriptionType", mock.Anything, "sport").Return(sport, nil).Once()
				r.On("CreateSubscription", mock.Anything, mock.Anything).Return(11, nil).Once()
			},
			wantID: 11,
		},
		{
			name: "start after end is rejected",
			req: models.DummySubscription{
				UserID: 1, Type: "sport", StartDate: "2024-03-01", EndDate: "2024-02-01", Price: intPtr(100),
			},
			setupMocks: func(_ *RepoMock) {},
			wantField:  models.NonFieldErrors,
			wantErr:    true,
		},
		{
			name: "bad date format",
			req: models.DummySubscription{
				UserID: 1, Type: "sport", StartDate: "01.01.2024", EndDate: "2024-02-01", Price: intPtr(100),
			},
			setupMocks: func(_ *RepoMock) {},
			wantField:  "start_date",
			wantErr:    true,
		},
		{
			name: "unknown account",
			req: models.DummySubscription{
				UserID: 99, Type: "sport", StartDate: "2024-01-01", EndDate: "2024-02-01", Price: intPtr(100),
			},
			setupMocks: func(r *RepoMock) {
				r.On("GetAccount", mock.Anything, 99).Return(nil, models.NewError("account", models.ErrNotFound)).Once()
			},
			wantField: "user_id",
			wantErr:   true,
		},
		{
			name: "account removed concurrently",
			req: models.DummySubscription{
				UserID: 1, Type: "sport", StartDate: "2024-01-01", EndDate: "2024-02-01", Price: intPtr(100),
			},
			setupMocks: func(r *RepoMock) {
				r.On("GetAccount", mock.Anything, 1).Return(&models.Account{ID: 1}, nil).Once()
				r.On("GetOrCreateSubscriptionType", mock.Anything, "sport").Return(sport, nil).Once()
				r.On("CreateSubscription", mock.Anything, mock.Anything).
					Return(0, models.NewError("account", models.ErrInvalidReference)).Once()
			},
			wantField: "user_id",
			wantErr:   true,
		},
		{
			name: "storage error",
			req: models.DummySubscription{
				UserID: 1, Type: "sport", StartDate: "2024-01-01", EndDate: "2024-02-01", Price: intPtr(100),
			},
			setupMocks: func(r *RepoMock) {
				r.On("GetAccount", mock.Anything, 1).Return(nil, errors.New("db down")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)
			svc := newService(repo, new(CacheMock))

			sub, err := svc.CreateSubscription(context.Background(), tt.req)
			if tt.wantErr {
				require.Error(t, err)
				verr, ok := models.AsValidationError(err)
				if tt.wantField != "" {
					require.True(t, ok)
					assert.Contains(t, verr.Fields, tt.wantField)
				} else {
					assert.False(t, ok)
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, sub.ID)
				assert.Equal(t, "sport", sub.Type)
			}
			repo.AssertExpectations(t)
		})
	}
}

func existing() *models.Subscription {
	return &models.Subscription{
		ID:        5,
		UserID:    1,
		TypeID:    2,
		Type:      "sport",
		StartDate: models.NewDate(2024, time.January, 1),
		EndDate:   models.NewDate(2024, time.June, 1),
		Price:     1000,
	}
}

func TestService_UpdateSubscription(t *testing.T) {
	t.Run("each named field is written to itself", func(t *testing.T) {
		repo := new(RepoMock)
		c := new(CacheMock)
		repo.On("GetSubscription", mock.Anything, 5).Return(existing(), nil).Once()
		repo.On("GetOrCreateSubscriptionType", mock.Anything, "yoga").
			Return(&models.SubscriptionType{ID: 3, Title: "yoga"}, nil).Once()
		repo.On("UpdateSubscription", mock.Anything, mock.MatchedBy(func(s models.Subscription) bool {
			return s.ID == 5 && s.TypeID == 3 && s.Price == 2000 &&
				s.StartDate.String() == "2024-01-01" && s.EndDate.String() == "2024-07-01"
		})).Return(nil).Once()
		c.On("Invalidate", mock.Anything, "subscription:5").Return(nil).Once()

		sub, err := newService(repo, c).UpdateSubscription(context.Background(), 5, models.DummySubscriptionUpdate{
			Type:    strPtr("yoga"),
			EndDate: strPtr("2024-07-01"),
			Price:   intPtr(2000),
		})
		require.NoError(t, err)
		assert.Equal(t, "yoga", sub.Type)
		assert.Equal(t, 2000, sub.Price)
		assert.Equal(t, "2024-07-01", sub.EndDate.String())
		repo.AssertExpectations(t)
		c.AssertExpectations(t)
	})

	t.Run("merged record with start after end is rejected", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetSubscription", mock.Anything, 5).Return(existing(), nil).Once()

		_, err := newService(repo, new(CacheMock)).UpdateSubscription(context.Background(), 5, models.DummySubscriptionUpdate{
			StartDate: strPtr("2024-09-01"),
		})
		verr, ok := models.AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, []string{msgDateOrder}, verr.Fields[models.NonFieldErrors])
		repo.AssertNotCalled(t, "UpdateSubscription", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetSubscription", mock.Anything, 5).Return(nil, models.NewError("subscription", models.ErrNotFound)).Once()

		_, err := newService(repo, new(CacheMock)).UpdateSubscription(context.Background(), 5, models.DummySubscriptionUpdate{})
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestService_GetSubscription_CachesResult(t *testing.T) {
	repo := new(RepoMock)
	c := new(CacheMock)
	sub := existing()
	c.On("Get", mock.Anything, "subscription:5", mock.Anything).Return(false, nil).Once()
	repo.On("GetSubscription", mock.Anything, 5).Return(sub, nil).Once()
	c.On("Set", mock.Anything, "subscription:5", sub, time.Hour).Return(nil).Once()

	got, err := newService(repo, c).GetSubscription(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, sub, got)
	repo.AssertExpectations(t)
	c.AssertExpectations(t)
}

func TestService_DeleteSubscription(t *testing.T) {
	repo := new(RepoMock)
	c := new(CacheMock)
	repo.On("DeleteSubscription", mock.Anything, 5).Return(nil).Once()
	c.On("Invalidate", mock.Anything, "subscription:5").Return(nil).Once()

	require.NoError(t, newService(repo, c).DeleteSubscription(context.Background(), 5))
	repo.AssertExpectations(t)
	c.AssertExpectations(t)
}

func TestService_ListSubscriptions(t *testing.T) {
	repo := new(RepoMock)
	filter := models.SubscriptionFilter{Type: strPtr("sport"), UserID: intPtr(1)}
	repo.On("ListSubscriptions", mock.Anything, filter).Return([]models.Subscription{*existing()}, nil).Once()

	list, err := newService(repo, new(CacheMock)).ListSubscriptions(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestService_SubscriptionTypes(t *testing.T) {
	t.Run("duplicate title", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("CreateSubscriptionType", mock.Anything, "sport").
			Return(nil, models.NewError("subscription type", models.ErrExists)).Once()

		_, err := newService(repo, new(CacheMock)).CreateSubscriptionType(context.Background(), models.DummySubscriptionType{Title: "sport"})
		verr, ok := models.AsValidationError(err)
		require.True(t, ok)
		assert.Contains(t, verr.Fields, "title")
	})

	t.Run("delete drops cached subscriptions", func(t *testing.T) {
		repo := new(RepoMock)
		c := new(CacheMock)
		repo.On("DeleteSubscriptionType", mock.Anything, 2).Return(nil).Once()
		c.On("InvalidatePrefix", mock.Anything, "subscription:").Return(nil).Once()

		require.NoError(t, newService(repo, c).DeleteSubscriptionType(context.Background(), 2))
		c.AssertExpectations(t)
	})

	t.Run("get not found", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetSubscriptionType", mock.Anything, 8).Return(nil, models.ErrNotFound).Once()

		_, err := newService(repo, new(CacheMock)).GetSubscriptionType(context.Background(), 8)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}
