package server

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/middleware"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *mongo.Database
	disconnect     func(context.Context) error
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo     repository.UserRepository
	postRepo     repository.PostRepository
	commentRepo  repository.CommentRepository
	eventRepo    repository.EventRepository
	bookmarkRepo repository.BookmarkRepository

	postService     *service.PostService
	userService     *service.UserService
	commentService  *service.CommentService
	eventService    *service.EventService
	bookmarkService *service.BookmarkService
}

// NewServer creates a new server instance with all dependencies
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	db, disconnect, err := database.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	srv := newServerWith(cfg, db, cache.GetClient())
	srv.disconnect = disconnect

	if err := srv.bookmarkRepo.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("index creation failed: %w", err)
	}

	return srv, nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes Mongo/Redis.
func NewServerWithDeps(cfg *config.Config, db *mongo.Database, redisClient *redis.Client) *Server {
	return newServerWith(cfg, db, redisClient)
}

func newServerWith(cfg *config.Config, db *mongo.Database, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	eventRepo := repository.NewEventRepository(db)
	bookmarkRepo := repository.NewBookmarkRepository(db)

	srv := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("inkwell-api"),
		userRepo:       userRepo,
		postRepo:       postRepo,
		commentRepo:    commentRepo,
		eventRepo:      eventRepo,
		bookmarkRepo:   bookmarkRepo,
	}
	srv.postService = service.NewPostService(postRepo, commentRepo, bookmarkRepo)
	srv.userService = service.NewUserService(userRepo)
	srv.commentService = service.NewCommentService(commentRepo, postRepo)
	srv.eventService = service.NewEventService(eventRepo)
	srv.bookmarkService = service.NewBookmarkService(bookmarkRepo, postRepo, userRepo)

	return srv
}

// Shutdown releases server-held resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.disconnect != nil {
		return s.disconnect(ctx)
	}
	return nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// CORS must run before middlewares that can short-circuit (e.g. the
	// limiter) so browser clients still receive CORS headers on errors.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they are handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	authRequired := middleware.AuthRequired(s.config.JWTSecret)
	adminRequired := middleware.AdminRequired()

	// Health check
	app.Get("/health", s.HealthCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Post routes
	app.Post("/post", authRequired, middleware.RateLimit(
		s.redis, 5, time.Minute, "create_post"), s.CreatePost)
	app.Get("/getposts", s.GetPosts)
	app.Get("/post", s.GetRecentPosts)
	app.Get("/post/:id", s.GetPost)
	app.Put("/updatepost/:postId/:userId", authRequired, s.UpdatePost)
	app.Delete("/deletepost/:postId/:userId", authRequired, s.DeletePost)

	// Post-side bookmark routes
	app.Post("/bookmark/:postId", authRequired, s.BookmarkPost)
	app.Post("/unbookmark/:postId", authRequired, s.UnbookmarkPost)
	app.Get("/bookmarks/:userId", s.GetBookmarks)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/signin", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "signin"), s.Signin)

	// User routes
	user := api.Group("/user")
	user.Put("/update/:userId", authRequired, s.UpdateUser)
	user.Post("/signout", s.Signout)
	user.Get("/getusers", authRequired, adminRequired, s.GetUsers)
	// User-side bookmark routes
	user.Post("/bookmark/:postId", authRequired, s.SaveBookmark)
	user.Post("/unbookmark/:postId", authRequired, s.RemoveBookmark)
	// Admin role toggles
	user.Put("/toggleContributor/:userId", authRequired, adminRequired, s.ToggleContributor)
	user.Put("/toggleReq/:userId", authRequired, adminRequired, s.ToggleReq)
	// Generic /:userId route must be last
	user.Get("/:userId", s.GetUser)

	// Comment routes
	comment := api.Group("/comment")
	comment.Post("/create", authRequired, middleware.RateLimit(
		s.redis, 10, time.Minute, "create_comment"), s.CreateComment)
	comment.Get("/getpostcomments/:postId", s.GetPostComments)
	comment.Put("/edit/:commentId", authRequired, s.EditComment)
	comment.Delete("/delete/:commentId", authRequired, s.DeleteComment)

	// Event routes
	events := api.Group("/events")
	events.Post("/", authRequired, s.CreateEvent)
	events.Get("/", s.GetEvents)
	events.Get("/:id", s.GetEvent)
	events.Put("/:id", authRequired, s.UpdateEvent)
	events.Delete("/:id", authRequired, s.DeleteEvent)

	// Static uploads and the prebuilt client bundle. The wildcard SPA
	// fallback must be registered after every API route.
	app.Static("/uploads", s.config.UploadsDir)
	app.Static("/", s.config.ClientDir)
	app.Get("*", func(c *fiber.Ctx) error {
		return c.SendFile(filepath.Join(s.config.ClientDir, "index.html"))
	})
}

// HealthCheck reports Mongo and Redis health
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	mongoStatus := "healthy"
	if err := s.db.Client().Ping(ctx, readpref.Primary()); err != nil {
		mongoStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overall := "healthy"
	if mongoStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"mongo": mongoStatus,
			"redis": redisStatus,
		},
		"time": time.Now(),
	})
}
