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

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error)
	ListByPost(ctx context.Context, postID primitive.ObjectID) ([]models.Comment, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Comment, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteAllForPost(ctx context.Context, postID primitive.ObjectID) error
}

type commentRepository struct {
	col *mongo.Collection
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *mongo.Database) CommentRepository {
	return &commentRepository{col: db.Collection("comments")}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	defer observability.TrackQuery("insert", "comments")()

	res, err := r.col.InsertOne(ctx, comment)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		comment.ID = id
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	var comment models.Comment
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&comment)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID primitive.ObjectID) ([]models.Comment, error) {
	defer observability.TrackQuery("find", "comments")()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"postId": postID}, opts)
	if err != nil {
		return nil, err
	}
	comments := []models.Comment{}
	if err := cur.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Comment, error) {
	defer observability.TrackQuery("update", "comments")()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var comment models.Comment
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&comment)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	defer observability.TrackQuery("delete", "comments")()

	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// DeleteAllForPost clears comments on a deleted post.
func (r *commentRepository) DeleteAllForPost(ctx context.Context, postID primitive.ObjectID) error {
	defer observability.TrackQuery("delete", "comments")()

	_, err := r.col.DeleteMany(ctx, bson.M{"postId": postID})
	return err
}
