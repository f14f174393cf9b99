// Package repository provides MongoDB data access for the application.
package repository

import (
	"context"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/observability"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostFilter narrows a post listing. A nil field means "no constraint";
// SearchTerm matches title OR content case-insensitively.
type PostFilter struct {
	UserID      *primitive.ObjectID
	ID          *primitive.ObjectID
	Category    *string
	Slug        *string
	ReadingType *string
	SearchTerm  string
}

func (f PostFilter) query() bson.M {
	q := bson.M{}
	if f.UserID != nil {
		q["userId"] = *f.UserID
	}
	if f.ID != nil {
		q["_id"] = *f.ID
	}
	if f.Category != nil {
		q["category"] = *f.Category
	}
	if f.Slug != nil {
		q["slug"] = *f.Slug
	}
	if f.ReadingType != nil {
		q["readingType"] = *f.ReadingType
	}
	if f.SearchTerm != "" {
		regex := primitive.Regex{Pattern: f.SearchTerm, Options: "i"}
		q["$or"] = bson.A{
			bson.M{"title": regex},
			bson.M{"content": regex},
		}
	}
	return q
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Post, error)
	List(ctx context.Context, filter PostFilter, skip, limit int64, ascending bool) ([]models.Post, error)
	Recent(ctx context.Context, limit int64) ([]models.Post, error)
	Count(ctx context.Context) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Post, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type postRepository struct {
	col *mongo.Collection
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *mongo.Database) PostRepository {
	return &postRepository{col: db.Collection("posts")}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("insert", "posts")()

	res, err := r.col.InsertOne(ctx, post)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		post.ID = id
	}
	cache.InvalidateRecentPosts(ctx)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	err := cache.Aside(ctx, cache.PostKey(id.Hex()), &post, cache.PostTTL, func() error {
		return r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	})
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Post, error) {
	if len(ids) == 0 {
		return []models.Post{}, nil
	}
	defer observability.TrackQuery("find", "posts")()

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	posts := []models.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) List(ctx context.Context, filter PostFilter, skip, limit int64, ascending bool) ([]models.Post, error) {
	defer observability.TrackQuery("find", "posts")()

	dir := -1
	if ascending {
		dir = 1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "updatedAt", Value: dir}}).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, filter.query(), opts)
	if err != nil {
		return nil, err
	}
	posts := []models.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) Recent(ctx context.Context, limit int64) ([]models.Post, error) {
	posts := []models.Post{}
	err := cache.Aside(ctx, cache.RecentPostsKey, &posts, cache.RecentPostsTTL, func() error {
		defer observability.TrackQuery("find", "posts")()

		opts := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetLimit(limit)
		cur, err := r.col.Find(ctx, bson.M{}, opts)
		if err != nil {
			return err
		}
		return cur.All(ctx, &posts)
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	defer observability.TrackQuery("count", "posts")()
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *postRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	defer observability.TrackQuery("count", "posts")()
	return r.col.CountDocuments(ctx, bson.M{"createdAt": bson.M{"$gte": since}})
}

func (r *postRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Post, error) {
	defer observability.TrackQuery("update", "posts")()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var post models.Post
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	cache.InvalidatePost(ctx, id.Hex())
	cache.InvalidateRecentPosts(ctx)
	return &post, nil
}

func (r *postRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	defer observability.TrackQuery("delete", "posts")()

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return err
	}
	cache.InvalidatePost(ctx, id.Hex())
	cache.InvalidateRecentPosts(ctx)
	return nil
}
