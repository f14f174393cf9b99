package repository

import (
	"context"
	"errors"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/observability"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateBookmark is returned by Add when the (user, post) pair
// already exists. The unique index makes this atomic under concurrency.
var ErrDuplicateBookmark = errors.New("bookmark already exists")

// BookmarkRepository manages the user-to-post saved relation, stored as a
// join collection with a unique (userId, postId) index.
type BookmarkRepository interface {
	Add(ctx context.Context, userID, postID primitive.ObjectID) error
	Remove(ctx context.Context, userID, postID primitive.ObjectID) (bool, error)
	PostIDsForUser(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error)
	RemoveAllForPost(ctx context.Context, postID primitive.ObjectID) error
	EnsureIndexes(ctx context.Context) error
}

type bookmarkRepository struct {
	col *mongo.Collection
}

// NewBookmarkRepository creates a new bookmark repository
func NewBookmarkRepository(db *mongo.Database) BookmarkRepository {
	return &bookmarkRepository{col: db.Collection("bookmarks")}
}

func (r *bookmarkRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "postId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *bookmarkRepository) Add(ctx context.Context, userID, postID primitive.ObjectID) error {
	defer observability.TrackQuery("insert", "bookmarks")()

	_, err := r.col.InsertOne(ctx, models.Bookmark{
		UserID:    userID,
		PostID:    postID,
		CreatedAt: time.Now(),
	})
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateBookmark
	}
	return err
}

func (r *bookmarkRepository) Remove(ctx context.Context, userID, postID primitive.ObjectID) (bool, error) {
	defer observability.TrackQuery("delete", "bookmarks")()

	res, err := r.col.DeleteOne(ctx, bson.M{"userId": userID, "postId": postID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *bookmarkRepository) PostIDsForUser(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	defer observability.TrackQuery("find", "bookmarks")()

	cur, err := r.col.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	var bookmarks []models.Bookmark
	if err := cur.All(ctx, &bookmarks); err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(bookmarks))
	for _, b := range bookmarks {
		ids = append(ids, b.PostID)
	}
	return ids, nil
}

// RemoveAllForPost clears bookmarks pointing at a deleted post.
func (r *bookmarkRepository) RemoveAllForPost(ctx context.Context, postID primitive.ObjectID) error {
	defer observability.TrackQuery("delete", "bookmarks")()

	_, err := r.col.DeleteMany(ctx, bson.M{"postId": postID})
	return err
}
