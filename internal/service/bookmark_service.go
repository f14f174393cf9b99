package service

import (
	"context"
	"errors"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookmarkService manages the saved-post relation from both ends. The
// post side is strict (duplicate add and absent remove are client errors);
// the user side is lenient (save is a silent no-op when already saved,
// unsave always resolves). Both mutate the same join collection.
type BookmarkService struct {
	bookmarkRepo repository.BookmarkRepository
	postRepo     repository.PostRepository
	userRepo     repository.UserRepository
}

func NewBookmarkService(
	bookmarkRepo repository.BookmarkRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
) *BookmarkService {
	return &BookmarkService{
		bookmarkRepo: bookmarkRepo,
		postRepo:     postRepo,
		userRepo:     userRepo,
	}
}

func (s *BookmarkService) BookmarkPost(ctx context.Context, userID, postID primitive.ObjectID) error {
	if err := s.requirePost(ctx, postID); err != nil {
		return err
	}
	err := s.bookmarkRepo.Add(ctx, userID, postID)
	if errors.Is(err, repository.ErrDuplicateBookmark) {
		return models.NewValidationError("Post already bookmarked")
	}
	return err
}

func (s *BookmarkService) UnbookmarkPost(ctx context.Context, userID, postID primitive.ObjectID) error {
	if err := s.requirePost(ctx, postID); err != nil {
		return err
	}
	removed, err := s.bookmarkRepo.Remove(ctx, userID, postID)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewValidationError("Post is not bookmarked")
	}
	return nil
}

// SaveForUser is the user-side add: already-saved is not an error.
func (s *BookmarkService) SaveForUser(ctx context.Context, userID, postID primitive.ObjectID) (*models.User, error) {
	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.bookmarkRepo.Add(ctx, userID, postID); err != nil && !errors.Is(err, repository.ErrDuplicateBookmark) {
		return nil, err
	}
	return user, nil
}

// UnsaveForUser is the user-side remove: always resolves.
func (s *BookmarkService) UnsaveForUser(ctx context.Context, userID, postID primitive.ObjectID) (*models.User, error) {
	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.bookmarkRepo.Remove(ctx, userID, postID); err != nil {
		return nil, err
	}
	return user, nil
}

// ListForUser returns every post the user has bookmarked.
func (s *BookmarkService) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Post, error) {
	ids, err := s.bookmarkRepo.PostIDsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.postRepo.GetByIDs(ctx, ids)
}

func (s *BookmarkService) requirePost(ctx context.Context, postID primitive.ObjectID) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return models.NewNotFoundError("Post not found")
	}
	return nil
}

func (s *BookmarkService) requireUser(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User not found")
	}
	return user, nil
}
