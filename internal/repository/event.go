package repository

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/observability"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EventRepository defines the interface for event data operations
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error)
	List(ctx context.Context, skip, limit int64) ([]models.Event, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Event, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type eventRepository struct {
	col *mongo.Collection
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *mongo.Database) EventRepository {
	return &eventRepository{col: db.Collection("events")}
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	defer observability.TrackQuery("insert", "events")()

	res, err := r.col.InsertOne(ctx, event)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		event.ID = id
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var event models.Event
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) List(ctx context.Context, skip, limit int64) ([]models.Event, error) {
	defer observability.TrackQuery("find", "events")()

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	events := []models.Event{}
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Event, error) {
	defer observability.TrackQuery("update", "events")()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var event models.Event
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&event)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	defer observability.TrackQuery("delete", "events")()

	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
