// Package seed provides database seeding utilities for development and
// testing. These helpers are never imported by the server itself.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

var categories = []string{
	"technology", "travel", "food", "books", "writing",
	"science", "music", "film", "history", "philosophy",
}

var readingTypes = []string{"article", "longform", "note"}

// Seeder populates the database with plausible demo data.
type Seeder struct {
	db    *mongo.Database
	users repository.UserRepository
	posts repository.PostRepository
	rand  *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Mongo database.
func NewSeeder(db *mongo.Database) *Seeder {
	now := time.Now().UnixNano()
	gofakeit.Seed(now)
	return &Seeder{
		db:    db,
		users: repository.NewUserRepository(db),
		posts: repository.NewPostRepository(db),
		rand:  rand.New(rand.NewSource(now)),
	}
}

// ClearAll drops every seeded collection.
func (s *Seeder) ClearAll(ctx context.Context) error {
	for _, name := range []string{"users", "posts", "comments", "events", "bookmarks"} {
		if err := s.db.Collection(name).Drop(ctx); err != nil {
			return fmt.Errorf("dropping %s: %w", name, err)
		}
	}
	return nil
}

// Seed creates users, posts, comments, events and bookmarks.
func (s *Seeder) Seed(ctx context.Context, opts Options) error {
	log.Printf("🌱 Seeding %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	users, err := s.createUsers(ctx, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d users created", len(users))

	posts, err := s.createPosts(ctx, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	if err := s.createEngagement(ctx, users, posts); err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}
	log.Println("✓ comments, events and bookmarks created")

	return nil
}

func (s *Seeder) createUsers(ctx context.Context, n int) ([]*models.User, error) {
	// All seeded accounts share one password so the hash is computed once.
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		createdAt := s.pastTime(120)
		user := &models.User{
			Username:  fmt.Sprintf("%s%04d", gofakeit.Adjective()+gofakeit.NounAbstract(), i),
			Email:     fmt.Sprintf("seed%04d@%s", i, gofakeit.DomainName()),
			Password:  string(hash),
			IsAdmin:   i == 0,
			Bio:       gofakeit.Sentence(10),
			Country:   gofakeit.Country(),
			City:      gofakeit.City(),
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		}
		if err := validation.ValidateUsername(user.Username); err != nil {
			// Fake words occasionally break the username rules; fall back
			// to a plain deterministic handle.
			user.Username = fmt.Sprintf("inkwriter%04d", i)
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) createPosts(ctx context.Context, users []*models.User, n int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.rand.Intn(len(users))]
		title := gofakeit.Sentence(s.rand.Intn(5) + 3)
		createdAt := s.pastTime(90)
		post := &models.Post{
			Title:       title,
			Content:     gofakeit.Paragraph(2, 4, 8, "\n\n"),
			Category:    categories[s.rand.Intn(len(categories))],
			Image:       fmt.Sprintf("https://picsum.photos/seed/%s/800/400", gofakeit.UUID()),
			Slug:        validation.SlugFromTitle(title),
			UserID:      author.ID,
			ReadingType: readingTypes[s.rand.Intn(len(readingTypes))],
			CreatedAt:   createdAt,
			UpdatedAt:   createdAt,
		}
		if err := s.posts.Create(ctx, post); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (s *Seeder) createEngagement(ctx context.Context, users []*models.User, posts []*models.Post) error {
	comments := repository.NewCommentRepository(s.db)
	events := repository.NewEventRepository(s.db)
	bookmarks := repository.NewBookmarkRepository(s.db)

	if err := bookmarks.EnsureIndexes(ctx); err != nil {
		return err
	}

	for _, post := range posts {
		for i := 0; i < s.rand.Intn(5); i++ {
			commenter := users[s.rand.Intn(len(users))]
			createdAt := post.CreatedAt.Add(time.Duration(s.rand.Intn(72)) * time.Hour)
			if err := comments.Create(ctx, &models.Comment{
				Content:   gofakeit.Sentence(s.rand.Intn(15) + 3),
				PostID:    post.ID,
				UserID:    commenter.ID,
				CreatedAt: createdAt,
				UpdatedAt: createdAt,
			}); err != nil {
				return err
			}
		}
	}

	for i := 0; i < len(users)/5+1; i++ {
		host := users[s.rand.Intn(len(users))]
		createdAt := s.pastTime(30)
		if err := events.Create(ctx, &models.Event{
			Title:       gofakeit.Sentence(4),
			Description: gofakeit.Paragraph(1, 2, 6, "\n"),
			Location:    gofakeit.City(),
			Date:        time.Now().Add(time.Duration(s.rand.Intn(60)+1) * 24 * time.Hour),
			UserID:      host.ID,
			CreatedAt:   createdAt,
			UpdatedAt:   createdAt,
		}); err != nil {
			return err
		}
	}

	for _, user := range users {
		seen := map[primitive.ObjectID]bool{}
		for i := 0; i < s.rand.Intn(4); i++ {
			post := posts[s.rand.Intn(len(posts))]
			if seen[post.ID] {
				continue
			}
			seen[post.ID] = true
			if err := bookmarks.Add(ctx, user.ID, post.ID); err != nil {
				return err
			}
		}
	}

	return nil
}

// pastTime returns a random instant within the past maxDays days.
func (s *Seeder) pastTime(maxDays int) time.Time {
	return time.Now().
		Add(-time.Duration(s.rand.Intn(maxDays)) * 24 * time.Hour).
		Add(-time.Duration(s.rand.Intn(24)) * time.Hour).
		Add(-time.Duration(s.rand.Intn(60)) * time.Minute)
}
