//go:build integration

package storage

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/gymadmin/internal/migrations"
	"github.com/magabrotheeeer/gymadmin/internal/models"
)

func setupTestDB(t *testing.T) *Storage {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := New(dsn, slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})))
	require.NoError(t, err, "failed to create storage")
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, migrations.Run(s.DB()))
	return s
}

func createAccount(t *testing.T, s *Storage, email, first, last string) int {
	t.Helper()
	id, err := s.CreateAccount(context.Background(), models.Account{
		Email:        email,
		FirstName:    first,
		LastName:     last,
		PasswordHash: "hash",
		IsActive:     true,
	})
	require.NoError(t, err)
	return id
}

func createSubscription(t *testing.T, s *Storage, userID int, title string, start, end models.Date) int {
	t.Helper()
	ctx := context.Background()
	typ, err := s.GetOrCreateSubscriptionType(ctx, title)
	require.NoError(t, err)
	id, err := s.CreateSubscription(ctx, models.Subscription{
		UserID:    userID,
		TypeID:    typ.ID,
		StartDate: start,
		EndDate:   end,
		Price:     1000,
	})
	require.NoError(t, err)
	return id
}

func d(month time.Month, day int) models.Date {
	return models.NewDate(2024, month, day)
}

func TestStorage_Accounts(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	id := createAccount(t, s, "ivan@gym.ru", "Ivan", "Petrov")
	createAccount(t, s, "ivan2@gym.ru", "Ivan", "Sidorov")
	createAccount(t, s, "anna@gym.ru", "Anna", "Petrova")

	_, err := s.CreateAccount(ctx, models.Account{Email: "ivan@gym.ru", FirstName: "x", LastName: "y", PasswordHash: "h"})
	assert.ErrorIs(t, err, models.ErrExists)

	acc, err := s.GetAccount(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Petrov", acc.LastName)
	assert.True(t, acc.IsActive)

	byEmail, err := s.GetAccountByEmail(ctx, "ivan@gym.ru")
	require.NoError(t, err)
	assert.Equal(t, id, byEmail.ID)

	first, last := "Ivan", "Petrov"
	list, err := s.ListAccounts(ctx, models.AccountFilter{FirstName: &first, LastName: &last})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)

	list, err = s.ListAccounts(ctx, models.AccountFilter{FirstName: &first})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	newName := "Ivan Jr"
	upd, err := s.UpdateAccount(ctx, id, models.DummyAccountUpdate{FirstName: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Ivan Jr", upd.FirstName)
	assert.Equal(t, "Petrov", upd.LastName)

	_, err = s.GetAccount(ctx, 100500)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.ErrorIs(t, s.DeleteAccount(ctx, 100500), models.ErrNotFound)
}

func TestStorage_CascadeDelete(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	userID := createAccount(t, s, "ivan@gym.ru", "Ivan", "Petrov")
	subID := createSubscription(t, s, userID, "sport", d(time.January, 1), d(time.December, 31))
	visitID, err := s.CreateVisit(ctx, models.Visit{
		SubscriptionID: subID,
		Date:           d(time.March, 1),
		EnterTime:      models.Clock{Hour: 9, Minute: 30},
	})
	require.NoError(t, err)

	v, err := s.GetVisit(ctx, visitID)
	require.NoError(t, err)
	assert.Nil(t, v.ExitTime)
	assert.Equal(t, models.Clock{Hour: 9, Minute: 30}, v.EnterTime)
	assert.Equal(t, "2024-03-01", v.Date.String())

	require.NoError(t, s.DeleteAccount(ctx, userID))

	_, err = s.GetSubscription(ctx, subID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = s.GetVisit(ctx, visitID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestStorage_SubscriptionTypeCascade(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	userID := createAccount(t, s, "ivan@gym.ru", "Ivan", "Petrov")
	subID := createSubscription(t, s, userID, "pool", d(time.January, 1), d(time.June, 30))

	typ, err := s.GetOrCreateSubscriptionType(ctx, "pool")
	require.NoError(t, err)
	again, err := s.GetOrCreateSubscriptionType(ctx, "pool")
	require.NoError(t, err)
	assert.Equal(t, typ.ID, again.ID)

	_, err = s.CreateSubscriptionType(ctx, "pool")
	assert.ErrorIs(t, err, models.ErrExists)

	require.NoError(t, s.DeleteSubscriptionType(ctx, typ.ID))
	_, err = s.GetSubscription(ctx, subID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestStorage_Subscriptions(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	ivan := createAccount(t, s, "ivan@gym.ru", "Ivan", "Petrov")
	anna := createAccount(t, s, "anna@gym.ru", "Anna", "Petrova")
	sport := createSubscription(t, s, ivan, "sport", d(time.January, 1), d(time.March, 31))
	createSubscription(t, s, ivan, "pool", d(time.January, 1), d(time.March, 31))
	createSubscription(t, s, anna, "sport", d(time.February, 1), d(time.April, 30))

	_, err := s.CreateSubscription(ctx, models.Subscription{UserID: 100500, TypeID: 1, StartDate: d(time.January, 1), EndDate: d(time.January, 2)})
	assert.ErrorIs(t, err, models.ErrInvalidReference)

	sub, err := s.GetSubscription(ctx, sport)
	require.NoError(t, err)
	assert.Equal(t, "sport", sub.Type)
	assert.Equal(t, ivan, sub.UserID)

	typ := "sport"
	list, err := s.ListSubscriptions(ctx, models.SubscriptionFilter{Type: &typ, UserID: &ivan})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, sport, list[0].ID)

	list, err = s.ListSubscriptions(ctx, models.SubscriptionFilter{Type: &typ})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	sub.EndDate = d(time.May, 31)
	sub.Price = 1500
	require.NoError(t, s.UpdateSubscription(ctx, *sub))
	sub, err = s.GetSubscription(ctx, sport)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", sub.StartDate.String())
	assert.Equal(t, "2024-05-31", sub.EndDate.String())
	assert.Equal(t, 1500, sub.Price)
}

func TestStorage_VisitsAndStatistics(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	ivan := createAccount(t, s, "ivan@gym.ru", "Ivan", "Petrov")
	anna := createAccount(t, s, "anna@gym.ru", "Anna", "Petrova")
	sport := createSubscription(t, s, ivan, "sport", d(time.January, 1), d(time.January, 31))
	createSubscription(t, s, anna, "sport", d(time.May, 1), d(time.May, 31))
	pool := createSubscription(t, s, anna, "pool", d(time.March, 1), d(time.March, 31))

	exit := models.Clock{Hour: 11}
	for _, v := range []models.Visit{
		{SubscriptionID: sport, Date: d(time.January, 10), EnterTime: models.Clock{Hour: 9}, ExitTime: &exit},
		{SubscriptionID: sport, Date: d(time.January, 20), EnterTime: models.Clock{Hour: 9}},
		{SubscriptionID: pool, Date: d(time.March, 5), EnterTime: models.Clock{Hour: 18, Minute: 15}},
	} {
		_, err := s.CreateVisit(ctx, v)
		require.NoError(t, err)
	}

	date := d(time.January, 10)
	list, err := s.ListVisits(ctx, models.VisitFilter{SubscriptionID: &sport, Date: &date})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].ExitTime)
	assert.Equal(t, "11:00:00", list[0].ExitTime.String())

	list, err = s.ListVisits(ctx, models.VisitFilter{SubscriptionID: &sport})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	total, err := s.CountAccounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	current, err := s.CountCurrentVisits(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, current)

	perType, err := s.CountSubscriptionsPerType(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []models.TypeCount{{Type: "pool", Count: 1}, {Type: "sport", Count: 2}}, perType)

	period := models.Period{From: d(time.January, 15), To: d(time.March, 1)}
	inPeriod, err := s.CountVisitsInPeriod(ctx, period)
	require.NoError(t, err)
	assert.Equal(t, 1, inPeriod)

	perType, err = s.CountSubscriptionsPerType(ctx, &period)
	require.NoError(t, err)
	assert.Equal(t, []models.TypeCount{{Type: "pool", Count: 1}, {Type: "sport", Count: 1}}, perType)

	_, err = s.CreateVisit(ctx, models.Visit{SubscriptionID: 100500, Date: date, EnterTime: models.Clock{Hour: 9}})
	assert.ErrorIs(t, err, models.ErrInvalidReference)
}
