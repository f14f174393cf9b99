package repository

import (
	"context"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/observability"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context, skip, limit int64, ascending bool) ([]models.User, error)
	Count(ctx context.Context) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.User, error)
}

type userRepository struct {
	col *mongo.Collection
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{col: db.Collection("users")}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	defer observability.TrackQuery("insert", "users")()

	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

func (r *userRepository) findOne(ctx context.Context, q bson.M) (*models.User, error) {
	var u models.User
	err := r.col.FindOne(ctx, q).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *userRepository) List(ctx context.Context, skip, limit int64, ascending bool) ([]models.User, error) {
	defer observability.TrackQuery("find", "users")()

	dir := -1
	if ascending {
		dir = 1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: dir}}).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	defer observability.TrackQuery("count", "users")()
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *userRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	defer observability.TrackQuery("count", "users")()
	return r.col.CountDocuments(ctx, bson.M{"createdAt": bson.M{"$gte": since}})
}

// Update applies a partial $set and returns the updated document, or
// (nil, nil) when the user does not exist.
func (r *userRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.User, error) {
	defer observability.TrackQuery("update", "users")()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var u models.User
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
