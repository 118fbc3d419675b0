package subscriptiontype

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/gymadmin/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) CreateSubscriptionType(ctx context.Context, req models.DummySubscriptionType) (*models.SubscriptionType, error) {
	args := m.Called(ctx, req)
	if res := args.Get(0); res != nil {
		return res.(*models.SubscriptionType), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) ListSubscriptionTypes(ctx context.Context) ([]models.SubscriptionType, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.([]models.SubscriptionType), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) GetSubscriptionType(ctx context.Context, id int) (*models.SubscriptionType, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*models.SubscriptionType), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) DeleteSubscriptionType(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func withID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestCreateHandler(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := new(MockService)
		svc.On("CreateSubscriptionType", mock.Anything, models.DummySubscriptionType{Title: "sport"}).
			Return(&models.SubscriptionType{ID: 1, Title: "sport"}, nil).Once()

		w := httptest.NewRecorder()
		NewCreate(newNoopLogger(), svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/subscription-types", strings.NewReader(`{"title":"sport"}`)))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"subscription_type":{"id":1,"title":"sport"}}`, w.Body.String())
	})

	t.Run("duplicate", func(t *testing.T) {
		svc := new(MockService)
		svc.On("CreateSubscriptionType", mock.Anything, mock.Anything).
			Return(nil, models.NewValidationError("title", "subscription type with this title already exists.")).Once()

		w := httptest.NewRecorder()
		NewCreate(newNoopLogger(), svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/subscription-types", strings.NewReader(`{"title":"sport"}`)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"title":["subscription type with this title already exists."]}`, w.Body.String())
	})

	t.Run("missing title", func(t *testing.T) {
		w := httptest.NewRecorder()
		NewCreate(newNoopLogger(), new(MockService)).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/subscription-types", strings.NewReader(`{}`)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"title":["This field is required."]}`, w.Body.String())
	})
}

func TestListHandler(t *testing.T) {
	svc := new(MockService)
	svc.On("ListSubscriptionTypes", mock.Anything).Return([]models.SubscriptionType{{ID: 1, Title: "sport"}}, nil).Once()

	w := httptest.NewRecorder()
	NewList(newNoopLogger(), svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/subscription-types", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"subscription_types":[{"id":1,"title":"sport"}]}`, w.Body.String())
}

func TestGetHandler_NotFound(t *testing.T) {
	svc := new(MockService)
	svc.On("GetSubscriptionType", mock.Anything, 4).Return(nil, models.ErrNotFound).Once()

	w := httptest.NewRecorder()
	NewGet(newNoopLogger(), svc).ServeHTTP(w, withID(httptest.NewRequest(http.MethodGet, "/subscription-types/4", nil), "4"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestDeleteHandler(t *testing.T) {
	svc := new(MockService)
	svc.On("DeleteSubscriptionType", mock.Anything, 4).Return(nil).Once()

	w := httptest.NewRecorder()
	NewDelete(newNoopLogger(), svc).ServeHTTP(w, withID(httptest.NewRequest(http.MethodDelete, "/subscription-types/4", nil), "4"))

	assert.Equal(t, http.StatusNoContent, w.Code)
	svc.AssertExpectations(t)
}
