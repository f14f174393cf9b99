package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn            func(context.Context, *models.Post) error
	getByIDFn           func(context.Context, primitive.ObjectID) (*models.Post, error)
	getByIDsFn          func(context.Context, []primitive.ObjectID) ([]models.Post, error)
	listFn              func(context.Context, repository.PostFilter, int64, int64, bool) ([]models.Post, error)
	recentFn            func(context.Context, int64) ([]models.Post, error)
	countFn             func(context.Context) (int64, error)
	countCreatedSinceFn func(context.Context, time.Time) (int64, error)
	updateFn            func(context.Context, primitive.ObjectID, bson.M) (*models.Post, error)
	deleteFn            func(context.Context, primitive.ObjectID) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Post, error) {
	return s.getByIDsFn(ctx, ids)
}
func (s *postRepoStub) List(ctx context.Context, filter repository.PostFilter, skip, limit int64, ascending bool) ([]models.Post, error) {
	return s.listFn(ctx, filter, skip, limit, ascending)
}
func (s *postRepoStub) Recent(ctx context.Context, limit int64) ([]models.Post, error) {
	return s.recentFn(ctx, limit)
}
func (s *postRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *postRepoStub) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	return s.countCreatedSinceFn(ctx, since)
}
func (s *postRepoStub) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Post, error) {
	return s.updateFn(ctx, id, set)
}
func (s *postRepoStub) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
			return &models.Post{ID: id}, nil
		},
		getByIDsFn: func(_ context.Context, _ []primitive.ObjectID) ([]models.Post, error) { return nil, nil },
		listFn: func(_ context.Context, _ repository.PostFilter, _, _ int64, _ bool) ([]models.Post, error) {
			return nil, nil
		},
		recentFn:            func(_ context.Context, _ int64) ([]models.Post, error) { return nil, nil },
		countFn:             func(_ context.Context) (int64, error) { return 0, nil },
		countCreatedSinceFn: func(_ context.Context, _ time.Time) (int64, error) { return 0, nil },
		updateFn: func(_ context.Context, id primitive.ObjectID, _ bson.M) (*models.Post, error) {
			return &models.Post{ID: id}, nil
		},
		deleteFn: func(_ context.Context, _ primitive.ObjectID) error { return nil },
	}
}

// bookmarkRepoStub is a stub for repository.BookmarkRepository.
type bookmarkRepoStub struct {
	addFn              func(context.Context, primitive.ObjectID, primitive.ObjectID) error
	removeFn           func(context.Context, primitive.ObjectID, primitive.ObjectID) (bool, error)
	postIDsForUserFn   func(context.Context, primitive.ObjectID) ([]primitive.ObjectID, error)
	removeAllForPostFn func(context.Context, primitive.ObjectID) error
	ensureIndexesFn    func(context.Context) error
}

func (s *bookmarkRepoStub) Add(ctx context.Context, userID, postID primitive.ObjectID) error {
	return s.addFn(ctx, userID, postID)
}
func (s *bookmarkRepoStub) Remove(ctx context.Context, userID, postID primitive.ObjectID) (bool, error) {
	return s.removeFn(ctx, userID, postID)
}
func (s *bookmarkRepoStub) PostIDsForUser(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	return s.postIDsForUserFn(ctx, userID)
}
func (s *bookmarkRepoStub) RemoveAllForPost(ctx context.Context, postID primitive.ObjectID) error {
	return s.removeAllForPostFn(ctx, postID)
}
func (s *bookmarkRepoStub) EnsureIndexes(ctx context.Context) error {
	return s.ensureIndexesFn(ctx)
}

func noopBookmarkRepo() *bookmarkRepoStub {
	return &bookmarkRepoStub{
		addFn:              func(_ context.Context, _, _ primitive.ObjectID) error { return nil },
		removeFn:           func(_ context.Context, _, _ primitive.ObjectID) (bool, error) { return true, nil },
		postIDsForUserFn:   func(_ context.Context, _ primitive.ObjectID) ([]primitive.ObjectID, error) { return nil, nil },
		removeAllForPostFn: func(_ context.Context, _ primitive.ObjectID) error { return nil },
		ensureIndexesFn:    func(_ context.Context) error { return nil },
	}
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

// assertForbiddenError asserts that err is an AppError with code FORBIDDEN.
func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "FORBIDDEN", appErr.Code)
}

// assertNotFoundError asserts that err is an AppError with code NOT_FOUND.
func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestPostService_CreatePost_Validation(t *testing.T) {
	t.Parallel()

	svc := NewPostService(noopPostRepo(), noopCommentRepo(), noopBookmarkRepo())
	ctx := context.Background()
	author := primitive.NewObjectID()

	tests := []struct {
		name  string
		input CreatePostInput
	}{
		{
			name:  "empty title",
			input: CreatePostInput{UserID: author, Content: "some content"},
		},
		{
			name:  "empty content",
			input: CreatePostInput{UserID: author, Title: "A title"},
		},
		{
			name:  "both empty",
			input: CreatePostInput{UserID: author},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.CreatePost(ctx, tt.input)
			assertValidationError(t, err)
		})
	}
}

func TestPostService_CreatePost_DerivesSlug(t *testing.T) {
	t.Parallel()

	var created *models.Post
	postRepo := noopPostRepo()
	postRepo.createFn = func(_ context.Context, p *models.Post) error {
		p.ID = primitive.NewObjectID()
		created = p
		return nil
	}

	svc := NewPostService(postRepo, noopCommentRepo(), noopBookmarkRepo())
	post, err := svc.CreatePost(context.Background(), CreatePostInput{
		UserID:  primitive.NewObjectID(),
		Title:   "Hello, World!",
		Content: "body",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "hello-world", post.Slug)
	assert.False(t, post.CreatedAt.IsZero())
	assert.Equal(t, post.CreatedAt, post.UpdatedAt)
}

func TestPostService_ListPosts_Counts(t *testing.T) {
	t.Parallel()

	category := "go"
	postRepo := noopPostRepo()
	postRepo.listFn = func(_ context.Context, filter repository.PostFilter, skip, limit int64, ascending bool) ([]models.Post, error) {
		assert.Equal(t, &category, filter.Category)
		assert.Equal(t, int64(9), limit)
		return []models.Post{{Title: "one"}}, nil
	}
	postRepo.countFn = func(_ context.Context) (int64, error) { return 42, nil }
	postRepo.countCreatedSinceFn = func(_ context.Context, since time.Time) (int64, error) {
		assert.True(t, since.Before(time.Now()))
		return 7, nil
	}

	svc := NewPostService(postRepo, noopCommentRepo(), noopBookmarkRepo())
	page, err := svc.ListPosts(context.Background(), ListPostsInput{
		Filter: repository.PostFilter{Category: &category},
		Limit:  9,
	})
	require.NoError(t, err)
	assert.Len(t, page.Posts, 1)
	assert.Equal(t, int64(42), page.TotalPosts)
	assert.Equal(t, int64(7), page.LastMonthPosts)
}

func TestPostService_UpdatePost_Authorization(t *testing.T) {
	t.Parallel()

	owner := primitive.NewObjectID()
	other := primitive.NewObjectID()
	postID := primitive.NewObjectID()

	newRepo := func() *postRepoStub {
		repo := noopPostRepo()
		repo.getByIDFn = func(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
			return &models.Post{ID: id, UserID: owner, Title: "old"}, nil
		}
		return repo
	}

	t.Run("non-owner rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(newRepo(), noopCommentRepo(), noopBookmarkRepo())
		_, err := svc.UpdatePost(context.Background(), UpdatePostInput{
			ActorID: other,
			PostID:  postID,
			Title:   "new",
		})
		assertForbiddenError(t, err)
	})

	t.Run("owner allowed", func(t *testing.T) {
		t.Parallel()
		repo := newRepo()
		repo.updateFn = func(_ context.Context, id primitive.ObjectID, set bson.M) (*models.Post, error) {
			assert.Equal(t, "new", set["title"])
			assert.Contains(t, set, "updatedAt")
			assert.NotContains(t, set, "content")
			return &models.Post{ID: id, UserID: owner, Title: "new"}, nil
		}
		svc := NewPostService(repo, noopCommentRepo(), noopBookmarkRepo())
		post, err := svc.UpdatePost(context.Background(), UpdatePostInput{
			ActorID: owner,
			PostID:  postID,
			Title:   "new",
		})
		require.NoError(t, err)
		assert.Equal(t, "new", post.Title)
	})

	t.Run("admin allowed on foreign post", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(newRepo(), noopCommentRepo(), noopBookmarkRepo())
		_, err := svc.UpdatePost(context.Background(), UpdatePostInput{
			ActorID:    other,
			ActorAdmin: true,
			PostID:     postID,
			Title:      "new",
		})
		require.NoError(t, err)
	})

	t.Run("missing post", func(t *testing.T) {
		t.Parallel()
		repo := newRepo()
		repo.getByIDFn = func(_ context.Context, _ primitive.ObjectID) (*models.Post, error) {
			return nil, nil
		}
		svc := NewPostService(repo, noopCommentRepo(), noopBookmarkRepo())
		_, err := svc.UpdatePost(context.Background(), UpdatePostInput{
			ActorID: owner,
			PostID:  postID,
			Title:   "new",
		})
		assertNotFoundError(t, err)
	})
}

func TestPostService_DeletePost_Cascades(t *testing.T) {
	t.Parallel()

	owner := primitive.NewObjectID()
	postID := primitive.NewObjectID()

	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
		return &models.Post{ID: id, UserID: owner}, nil
	}
	deleted := false
	postRepo.deleteFn = func(_ context.Context, id primitive.ObjectID) error {
		assert.Equal(t, postID, id)
		deleted = true
		return nil
	}

	commentsCleared := false
	commentRepo := noopCommentRepo()
	commentRepo.deleteAllForPostFn = func(_ context.Context, id primitive.ObjectID) error {
		assert.Equal(t, postID, id)
		commentsCleared = true
		return nil
	}

	bookmarksCleared := false
	bookmarkRepo := noopBookmarkRepo()
	bookmarkRepo.removeAllForPostFn = func(_ context.Context, id primitive.ObjectID) error {
		assert.Equal(t, postID, id)
		bookmarksCleared = true
		return nil
	}

	svc := NewPostService(postRepo, commentRepo, bookmarkRepo)
	err := svc.DeletePost(context.Background(), DeletePostInput{ActorID: owner, PostID: postID})
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.True(t, commentsCleared)
	assert.True(t, bookmarksCleared)
}

func TestPostService_DeletePost_NonOwnerRejected(t *testing.T) {
	t.Parallel()

	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
		return &models.Post{ID: id, UserID: primitive.NewObjectID()}, nil
	}
	svc := NewPostService(postRepo, noopCommentRepo(), noopBookmarkRepo())
	err := svc.DeletePost(context.Background(), DeletePostInput{
		ActorID: primitive.NewObjectID(),
		PostID:  primitive.NewObjectID(),
	})
	assertForbiddenError(t, err)
}

func TestMonthAgo(t *testing.T) {
	t.Parallel()

	loc := time.UTC
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "mid-month",
			in:   time.Date(2024, time.June, 15, 13, 45, 0, 0, loc),
			want: time.Date(2024, time.May, 15, 0, 0, 0, 0, loc),
		},
		{
			name: "january rolls into previous december",
			in:   time.Date(2024, time.January, 10, 0, 0, 0, 0, loc),
			want: time.Date(2023, time.December, 10, 0, 0, 0, 0, loc),
		},
		{
			name: "march 31 normalizes past february",
			in:   time.Date(2023, time.March, 31, 8, 0, 0, 0, loc),
			want: time.Date(2023, time.March, 3, 0, 0, 0, 0, loc),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, monthAgo(tt.in))
		})
	}
}
