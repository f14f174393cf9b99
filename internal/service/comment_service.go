package service

import (
	"context"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxCommentLen = 10000

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

type CreateCommentInput struct {
	ActorID primitive.ObjectID
	PostID  primitive.ObjectID
	Content string
}

type UpdateCommentInput struct {
	ActorID    primitive.ObjectID
	ActorAdmin bool
	CommentID  primitive.ObjectID
	Content    string
}

type DeleteCommentInput struct {
	ActorID    primitive.ObjectID
	ActorAdmin bool
	CommentID  primitive.ObjectID
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post not found")
	}

	now := time.Now()
	comment := &models.Comment{
		Content:   in.Content,
		PostID:    in.PostID,
		UserID:    in.ActorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) ListComments(ctx context.Context, postID primitive.ObjectID) ([]models.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post not found")
	}
	return s.commentRepo.ListByPost(ctx, postID)
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, models.NewNotFoundError("Comment not found")
	}
	if !in.ActorAdmin && in.ActorID != comment.UserID {
		return nil, models.NewForbiddenError("You are not allowed to edit this comment")
	}

	updated, err := s.commentRepo.Update(ctx, in.CommentID, bson.M{
		"content":   in.Content,
		"updatedAt": time.Now(),
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, models.NewNotFoundError("Comment not found")
	}
	return updated, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return models.NewNotFoundError("Comment not found")
	}
	if !in.ActorAdmin && in.ActorID != comment.UserID {
		return models.NewForbiddenError("You are not allowed to delete this comment")
	}
	return s.commentRepo.Delete(ctx, in.CommentID)
}
