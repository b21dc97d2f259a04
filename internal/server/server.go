// Package server contains the HTTP handlers and routing for the API.
package server

import (
	"context"
	"fmt"
	"sync"
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
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	articleRepo repository.ArticleRepository
	commentRepo repository.CommentRepository

	userService    *service.UserService
	profileService *service.ProfileService
	articleService *service.ArticleService
	commentService *service.CommentService
}

// Prometheus collectors register globally, so the HTTP metrics middleware is
// created once even when multiple servers are built (as in tests).
var (
	promOnce sync.Once
	promMW   *fiberprometheus.FiberPrometheus
)

func httpMetrics() *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promMW = fiberprometheus.New("inkwell-api")
	})
	return promMW
}

// NewServer creates a new server instance with all dependencies.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if err := database.Migrate(db, cfg); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: httpMetrics(),
	}

	s.userRepo = repository.NewUserRepository(db)
	s.profileRepo = repository.NewProfileRepository(db)
	s.articleRepo = repository.NewArticleRepository(db)
	s.commentRepo = repository.NewCommentRepository(db)

	s.userService = service.NewUserService(s.userRepo)
	s.profileService = service.NewProfileService(s.profileRepo)
	s.articleService = service.NewArticleService(s.articleRepo, s.isAdminByUserID)
	s.commentService = service.NewCommentService(s.commentRepo, s.articleRepo, s.isAdminByUserID)

	return s, nil
}

// isAdminByUserID reports whether the user holds the admin role.
func (s *Server) isAdminByUserID(ctx context.Context, userID uint) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.IsAdmin, nil
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS runs before middlewares that can short-circuit (e.g. limiter) so
	// browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
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
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")

	// Registration and login
	api.Post("/users", middleware.RateLimit(
		s.redis, 10, 10*time.Minute, "register"), s.Register)
	api.Post("/users/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)

	// Current account
	api.Get("/user", s.AuthRequired(), s.GetCurrentUser)
	api.Put("/user", s.AuthRequired(), s.UpdateCurrentUser)

	// Profiles. Reads are public; everything that touches your own profile
	// requires authentication.
	profiles := api.Group("/profiles")
	profiles.Post("/", s.AuthRequired(), s.CreateProfile)
	profiles.Get("/", s.ListProfiles)
	profiles.Put("/edit", s.AuthRequired(), s.EditProfile)
	profiles.Put("/deactivate", s.AuthRequired(), s.DeactivateProfile)
	profiles.Put("/activate", s.AuthRequired(), s.ActivateProfile)
	profiles.Get("/:user_id", s.GetProfile)

	// Rating lives on its own prefix, not under /articles.
	api.Post("/rate/:slug", s.AuthRequired(), s.RateArticle)

	// Articles
	articles := api.Group("/articles")
	articles.Get("/", s.ListArticles)
	articles.Post("/", s.AuthRequired(), s.CreateArticle)
	articles.Get("/:slug", s.GetArticle)
	articles.Put("/:slug", s.AuthRequired(), s.UpdateArticle)
	articles.Delete("/:slug", s.AuthRequired(), s.DeleteArticle)
	articles.Post("/:slug/like", s.AuthRequired(), s.LikeArticle)
	articles.Post("/:slug/dislike", s.AuthRequired(), s.DislikeArticle)

	// Comments are scoped to their article's slug.
	articles.Get("/:slug/comments", s.ListComments)
	articles.Post("/:slug/comments", s.AuthRequired(), s.CreateComment)
	articles.Get("/:slug/comments/:id", s.GetComment)
	articles.Put("/:slug/comments/:id", s.AuthRequired(), s.UpdateComment)
	articles.Delete("/:slug/comments/:id", s.AuthRequired(), s.DeleteComment)
	articles.Post("/:slug/comments/:id/subcomment", s.AuthRequired(), s.ReplyToComment)
}

// LivenessCheck handles liveness probe requests.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
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
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// App builds (once) and returns the configured Fiber application.
func (s *Server) App() *fiber.App {
	if s.app == nil {
		s.app = fiber.New(fiber.Config{
			AppName:      "inkwell",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		})
		s.SetupMiddleware(s.app)
		s.SetupRoutes(s.app)
	}
	return s.app
}

// Start runs the HTTP server until it fails or is shut down.
func (s *Server) Start() error {
	return s.App().Listen(":" + s.config.Port)
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app == nil {
		return nil
	}
	return s.app.ShutdownWithContext(ctx)
}
