package router

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"civic-forum-api/internal/cache"
	"civic-forum-api/internal/client"
	"civic-forum-api/internal/handler"
	"civic-forum-api/internal/metrics"
	"civic-forum-api/internal/middleware"
	"civic-forum-api/internal/repository"
	"civic-forum-api/internal/service"
)

// Config holds the dependencies of the HTTP surface
type Config struct {
	DB             *gorm.DB
	Redis          *redis.Client
	Logger         *zap.Logger
	Metrics        *metrics.Metrics
	JWTSecret      string
	BasePath       string
	AllowedOrigins []string
	// ThreadCache defaults to a no-op cache
	ThreadCache cache.ThreadCache
	// NotificationClient defaults to a no-op client
	NotificationClient client.NotificationClient
}

// Setup wires repositories, services and handlers and registers all routes
func Setup(cfg Config) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewWithRegistry(prometheus.NewRegistry(), cfg.Logger)
	}
	if cfg.ThreadCache == nil {
		cfg.ThreadCache = cache.NewNoopThreadCache()
	}
	if cfg.NotificationClient == nil {
		cfg.NotificationClient = client.NewNoOpNotificationClient()
	}

	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.Metrics(cfg.Metrics))

	// Repositories
	transactor := repository.NewTransactor(cfg.DB)
	postRepo := repository.NewPostRepository(cfg.DB)
	commentRepo := repository.NewCommentRepository(cfg.DB)
	voteRepo := repository.NewVoteRepository(cfg.DB)

	// Services
	postService := service.NewPostService(postRepo, cfg.Metrics, cfg.Logger)
	voteService := service.NewVoteService(transactor, voteRepo, postRepo, commentRepo, cfg.ThreadCache, cfg.Metrics, cfg.Logger)
	commentService := service.NewCommentService(transactor, commentRepo, postRepo, voteRepo, cfg.ThreadCache, cfg.NotificationClient, cfg.Metrics, cfg.Logger)
	threadService := service.NewThreadService(postRepo, commentRepo, voteRepo, cfg.ThreadCache, cfg.Logger)

	// Handlers
	voteHandler := handler.NewVoteHandler(voteService, cfg.Logger)
	postHandler := handler.NewPostHandler(postService, threadService, cfg.Logger)
	commentHandler := handler.NewCommentHandler(commentService, cfg.Logger)
	healthHandler := handler.NewHealthHandler(cfg.DB, cfg.Redis)

	// Operational endpoints at the root for probes and scrapers
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	base := r.Group(cfg.BasePath)
	if cfg.BasePath != "" && cfg.BasePath != "/" {
		// Ingress only forwards the base path
		base.GET("/health", healthHandler.Health)
		base.GET("/ready", healthHandler.Ready)
		base.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
	base.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	requireAuth := middleware.Auth(cfg.JWTSecret)
	optionalAuth := middleware.OptionalAuth(cfg.JWTSecret)

	base.POST("/votes", requireAuth, voteHandler.CastVote)

	posts := base.Group("/posts")
	{
		posts.POST("", requireAuth, postHandler.CreatePost)
		posts.GET("/:postId", optionalAuth, postHandler.GetThread)
		posts.GET("/:postId/comments", optionalAuth, postHandler.GetComments)
		posts.POST("/:postId/comments", requireAuth, commentHandler.CreateComment)
	}

	comments := base.Group("/comments")
	{
		comments.GET("/:commentId", commentHandler.GetComment)
		comments.PUT("/:commentId", requireAuth, commentHandler.UpdateComment)
		comments.DELETE("/:commentId", requireAuth, commentHandler.DeleteComment)
	}

	return r
}
