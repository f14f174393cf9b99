// Package service implements the business rules on top of the repositories.
package service

import (
	"context"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const recentPostsLimit = 20

type PostService struct {
	postRepo     repository.PostRepository
	commentRepo  repository.CommentRepository
	bookmarkRepo repository.BookmarkRepository
}

type CreatePostInput struct {
	UserID      primitive.ObjectID
	Title       string
	Content     string
	Category    string
	Image       string
	ReadingType string
}

type ListPostsInput struct {
	Filter     repository.PostFilter
	StartIndex int64
	Limit      int64
	Ascending  bool
}

// PostPage is the paginated listing response: the requested slice plus the
// full collection count and the trailing-calendar-month count, both
// independent of the filter.
type PostPage struct {
	Posts          []models.Post `json:"posts"`
	TotalPosts     int64         `json:"totalPosts"`
	LastMonthPosts int64         `json:"lastMonthPosts"`
}

type UpdatePostInput struct {
	ActorID    primitive.ObjectID
	ActorAdmin bool
	PostID     primitive.ObjectID
	Title      string
	Content    string
	Category   string
	Image      string
}

type DeletePostInput struct {
	ActorID    primitive.ObjectID
	ActorAdmin bool
	PostID     primitive.ObjectID
}

func NewPostService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	bookmarkRepo repository.BookmarkRepository,
) *PostService {
	return &PostService{
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		bookmarkRepo: bookmarkRepo,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Title == "" || in.Content == "" {
		return nil, models.NewValidationError("Please provide all required fields")
	}

	now := time.Now()
	post := &models.Post{
		Title:       in.Title,
		Content:     in.Content,
		Category:    in.Category,
		Image:       in.Image,
		Slug:        validation.SlugFromTitle(in.Title),
		UserID:      in.UserID,
		ReadingType: in.ReadingType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) (*PostPage, error) {
	posts, err := s.postRepo.List(ctx, in.Filter, in.StartIndex, in.Limit, in.Ascending)
	if err != nil {
		return nil, err
	}

	// Totals reflect the whole collection regardless of the filter.
	total, err := s.postRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	lastMonth, err := s.postRepo.CountCreatedSince(ctx, monthAgo(time.Now()))
	if err != nil {
		return nil, err
	}

	return &PostPage{
		Posts:          posts,
		TotalPosts:     total,
		LastMonthPosts: lastMonth,
	}, nil
}

func (s *PostService) RecentPosts(ctx context.Context) ([]models.Post, error) {
	return s.postRepo.Recent(ctx, recentPostsLimit)
}

// GetPost returns the post or nil when absent; the fetch-one route makes
// no not-found distinction.
func (s *PostService) GetPost(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post not found")
	}
	if !in.ActorAdmin && in.ActorID != post.UserID {
		return nil, models.NewForbiddenError("You are not allowed to update this post")
	}

	// Only these four fields are client-updatable; the slug stays bound to
	// the original title.
	set := bson.M{"updatedAt": time.Now()}
	if in.Title != "" {
		set["title"] = in.Title
	}
	if in.Content != "" {
		set["content"] = in.Content
	}
	if in.Category != "" {
		set["category"] = in.Category
	}
	if in.Image != "" {
		set["image"] = in.Image
	}

	updated, err := s.postRepo.Update(ctx, in.PostID, set)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, models.NewNotFoundError("Post not found")
	}
	return updated, nil
}

func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return err
	}
	if post == nil {
		return models.NewNotFoundError("Post not found")
	}
	if !in.ActorAdmin && in.ActorID != post.UserID {
		return models.NewForbiddenError("You are not allowed to delete this post")
	}

	if err := s.postRepo.Delete(ctx, in.PostID); err != nil {
		return err
	}
	// Cascade: comments and bookmarks must not dangle.
	if err := s.commentRepo.DeleteAllForPost(ctx, in.PostID); err != nil {
		return err
	}
	return s.bookmarkRepo.RemoveAllForPost(ctx, in.PostID)
}

// monthAgo returns the same calendar day one month before t (midnight),
// not a fixed 30-day window. January dates normalize into the previous
// December.
func monthAgo(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()-1, t.Day(), 0, 0, 0, 0, t.Location())
}
