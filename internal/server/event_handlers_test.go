package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockEventRepository is a mock of the EventRepository interface
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Create(ctx context.Context, event *models.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventRepository) List(ctx context.Context, skip, limit int64) ([]models.Event, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *MockEventRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Event, error) {
	args := m.Called(ctx, id, set)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCreateEvent(t *testing.T) {
	actor := primitive.NewObjectID()

	tests := []struct {
		name           string
		body           map[string]any
		mockSetup      func(m *testMocks)
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]any{
				"title": "Writers Meetup",
				"date":  time.Now().Add(72 * time.Hour).Format(time.RFC3339),
			},
			mockSetup: func(m *testMocks) {
				m.events.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Missing Title",
			body:           map[string]any{"date": time.Now().Format(time.RFC3339)},
			mockSetup:      func(m *testMocks) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing Date",
			body:           map[string]any{"title": "Writers Meetup"},
			mockSetup:      func(m *testMocks) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := newTestServer()
			tt.mockSetup(m)

			app := fiber.New()
			app.Post("/api/events", asUser(actor, false), s.CreateEvent)

			resp, err := app.Test(jsonRequest(http.MethodPost, "/api/events", tt.body))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestGetEvent_NotFound(t *testing.T) {
	s, m := newTestServer()
	id := primitive.NewObjectID()

	m.events.On("GetByID", mock.Anything, id).Return(nil, nil)

	app := fiber.New()
	app.Get("/api/events/:id", s.GetEvent)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/events/"+id.Hex(), nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteEvent_OwnerOnly(t *testing.T) {
	owner := primitive.NewObjectID()
	eventID := primitive.NewObjectID()

	t.Run("owner", func(t *testing.T) {
		s, m := newTestServer()
		m.events.On("GetByID", mock.Anything, eventID).
			Return(&models.Event{ID: eventID, UserID: owner}, nil)
		m.events.On("Delete", mock.Anything, eventID).Return(nil)

		app := fiber.New()
		app.Delete("/api/events/:id", asUser(owner, false), s.DeleteEvent)

		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/events/"+eventID.Hex(), nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("other user", func(t *testing.T) {
		s, m := newTestServer()
		m.events.On("GetByID", mock.Anything, eventID).
			Return(&models.Event{ID: eventID, UserID: owner}, nil)

		app := fiber.New()
		app.Delete("/api/events/:id", asUser(primitive.NewObjectID(), false), s.DeleteEvent)

		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/events/"+eventID.Hex(), nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		m.events.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
