package service

import (
	"context"
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// eventRepoStub is a stub for repository.EventRepository.
type eventRepoStub struct {
	createFn  func(context.Context, *models.Event) error
	getByIDFn func(context.Context, primitive.ObjectID) (*models.Event, error)
	listFn    func(context.Context, int64, int64) ([]models.Event, error)
	updateFn  func(context.Context, primitive.ObjectID, bson.M) (*models.Event, error)
	deleteFn  func(context.Context, primitive.ObjectID) error
}

func (s *eventRepoStub) Create(ctx context.Context, event *models.Event) error {
	return s.createFn(ctx, event)
}
func (s *eventRepoStub) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	return s.getByIDFn(ctx, id)
}
func (s *eventRepoStub) List(ctx context.Context, skip, limit int64) ([]models.Event, error) {
	return s.listFn(ctx, skip, limit)
}
func (s *eventRepoStub) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Event, error) {
	return s.updateFn(ctx, id, set)
}
func (s *eventRepoStub) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.deleteFn(ctx, id)
}

func noopEventRepo() *eventRepoStub {
	return &eventRepoStub{
		createFn: func(_ context.Context, _ *models.Event) error { return nil },
		getByIDFn: func(_ context.Context, id primitive.ObjectID) (*models.Event, error) {
			return &models.Event{ID: id}, nil
		},
		listFn: func(_ context.Context, _, _ int64) ([]models.Event, error) { return nil, nil },
		updateFn: func(_ context.Context, id primitive.ObjectID, _ bson.M) (*models.Event, error) {
			return &models.Event{ID: id}, nil
		},
		deleteFn: func(_ context.Context, _ primitive.ObjectID) error { return nil },
	}
}

func TestEventService_CreateEvent_Validation(t *testing.T) {
	t.Parallel()

	svc := NewEventService(noopEventRepo())
	ctx := context.Background()
	actor := primitive.NewObjectID()

	t.Run("missing title", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreateEvent(ctx, CreateEventInput{ActorID: actor, Date: time.Now()})
		assertValidationError(t, err)
	})

	t.Run("missing date", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreateEvent(ctx, CreateEventInput{ActorID: actor, Title: "Meetup"})
		assertValidationError(t, err)
	})
}

func TestEventService_CreateEvent_Success(t *testing.T) {
	t.Parallel()

	actor := primitive.NewObjectID()
	date := time.Now().Add(48 * time.Hour)

	repo := noopEventRepo()
	repo.createFn = func(_ context.Context, e *models.Event) error {
		e.ID = primitive.NewObjectID()
		return nil
	}

	svc := NewEventService(repo)
	event, err := svc.CreateEvent(context.Background(), CreateEventInput{
		ActorID:  actor,
		Title:    "Go Meetup",
		Location: "Library",
		Date:     date,
	})
	require.NoError(t, err)
	assert.False(t, event.ID.IsZero())
	assert.Equal(t, actor, event.UserID)
	assert.Equal(t, date, event.Date)
	assert.False(t, event.CreatedAt.IsZero())
}

func TestEventService_GetEvent_NotFound(t *testing.T) {
	t.Parallel()

	repo := noopEventRepo()
	repo.getByIDFn = func(_ context.Context, _ primitive.ObjectID) (*models.Event, error) {
		return nil, nil
	}
	svc := NewEventService(repo)
	_, err := svc.GetEvent(context.Background(), primitive.NewObjectID())
	assertNotFoundError(t, err)
}

func TestEventService_UpdateEvent_Ownership(t *testing.T) {
	t.Parallel()

	owner := primitive.NewObjectID()
	eventID := primitive.NewObjectID()

	newRepo := func() *eventRepoStub {
		repo := noopEventRepo()
		repo.getByIDFn = func(_ context.Context, id primitive.ObjectID) (*models.Event, error) {
			return &models.Event{ID: id, UserID: owner, Title: "old"}, nil
		}
		return repo
	}

	t.Run("non-owner rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewEventService(newRepo())
		_, err := svc.UpdateEvent(context.Background(), UpdateEventInput{
			ActorID: primitive.NewObjectID(),
			EventID: eventID,
			Title:   "new",
		})
		assertForbiddenError(t, err)
	})

	t.Run("owner updates provided fields only", func(t *testing.T) {
		t.Parallel()
		repo := newRepo()
		repo.updateFn = func(_ context.Context, id primitive.ObjectID, set bson.M) (*models.Event, error) {
			assert.Equal(t, "new", set["title"])
			assert.NotContains(t, set, "location")
			assert.NotContains(t, set, "date")
			assert.Contains(t, set, "updatedAt")
			return &models.Event{ID: id, UserID: owner, Title: "new"}, nil
		}
		svc := NewEventService(repo)
		event, err := svc.UpdateEvent(context.Background(), UpdateEventInput{
			ActorID: owner,
			EventID: eventID,
			Title:   "new",
		})
		require.NoError(t, err)
		assert.Equal(t, "new", event.Title)
	})

	t.Run("empty update returns current event", func(t *testing.T) {
		t.Parallel()
		repo := newRepo()
		updateCalled := false
		repo.updateFn = func(_ context.Context, _ primitive.ObjectID, _ bson.M) (*models.Event, error) {
			updateCalled = true
			return nil, nil
		}
		svc := NewEventService(repo)
		event, err := svc.UpdateEvent(context.Background(), UpdateEventInput{
			ActorID: owner,
			EventID: eventID,
		})
		require.NoError(t, err)
		assert.Equal(t, "old", event.Title)
		assert.False(t, updateCalled)
	})
}

func TestEventService_DeleteEvent(t *testing.T) {
	t.Parallel()

	owner := primitive.NewObjectID()

	t.Run("admin deletes foreign event", func(t *testing.T) {
		t.Parallel()
		repo := noopEventRepo()
		repo.getByIDFn = func(_ context.Context, id primitive.ObjectID) (*models.Event, error) {
			return &models.Event{ID: id, UserID: owner}, nil
		}
		svc := NewEventService(repo)
		err := svc.DeleteEvent(context.Background(), DeleteEventInput{
			ActorID:    primitive.NewObjectID(),
			ActorAdmin: true,
			EventID:    primitive.NewObjectID(),
		})
		require.NoError(t, err)
	})

	t.Run("non-owner rejected", func(t *testing.T) {
		t.Parallel()
		repo := noopEventRepo()
		repo.getByIDFn = func(_ context.Context, id primitive.ObjectID) (*models.Event, error) {
			return &models.Event{ID: id, UserID: owner}, nil
		}
		svc := NewEventService(repo)
		err := svc.DeleteEvent(context.Background(), DeleteEventInput{
			ActorID: primitive.NewObjectID(),
			EventID: primitive.NewObjectID(),
		})
		assertForbiddenError(t, err)
	})
}
