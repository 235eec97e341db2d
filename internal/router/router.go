package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"learning-community-api/internal/client"
	"learning-community-api/internal/config"
	"learning-community-api/internal/handler"
	"learning-community-api/internal/metrics"
	"learning-community-api/internal/middleware"
	"learning-community-api/internal/repository"
	"learning-community-api/internal/service"
)

// Dependencies holds everything the router needs to wire the application
type Dependencies struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	S3Client    client.S3ClientInterface
	Notifier    client.NotificationClient
	Metrics     *metrics.Metrics
	Logger      *zap.Logger
}

// Services bundles the constructed service layer, exposed so the
// background jobs can share the same instances
type Services struct {
	Discussion service.DiscussionService
	Resolution service.ResolutionService
	Like       service.LikeService
	Booking    service.BookingService
	Course     service.CourseService
	Squad      service.SquadService
	Creation   service.CreationService
	Points     service.PointsService
}

// New builds the gin engine with all routes and returns it with the
// service layer
func New(deps Dependencies) (*gin.Engine, *Services) {
	gin.SetMode(deps.Config.Server.Mode)

	engine := gin.New()
	engine.Use(middleware.Recovery(deps.Logger))
	engine.Use(middleware.CORS())
	engine.Use(middleware.Metrics(deps.Metrics))

	// Repositories
	discussionRepo := repository.NewDiscussionRepository(deps.DB)
	replyRepo := repository.NewReplyRepository(deps.DB)
	likeRepo := repository.NewLikeRepository(deps.DB)
	bookingRepo := repository.NewBookingRepository(deps.DB)
	paymentRepo := repository.NewPaymentRepository(deps.DB)
	courseRepo := repository.NewCourseRepository(deps.DB)
	squadRepo := repository.NewSquadRepository(deps.DB)
	pointRepo := repository.NewPointRepository(deps.DB)
	creationRepo := repository.NewCreationRepository(deps.DB)

	// Services
	pointsService := service.NewPointsService(pointRepo, deps.RedisClient, deps.Config.Points.LeaderboardKey, deps.Metrics, deps.Logger)
	likeService := service.NewLikeService(likeRepo, discussionRepo, replyRepo, creationRepo, deps.Metrics)
	resolutionService := service.NewResolutionService(discussionRepo, replyRepo, likeRepo, pointsService, deps.Notifier, deps.Config.Points.ResolutionReward, deps.Metrics, deps.Logger)
	discussionService := service.NewDiscussionService(discussionRepo, replyRepo, likeRepo, courseRepo, deps.Logger)
	bookingService := service.NewBookingService(bookingRepo, paymentRepo, deps.S3Client, deps.Notifier, deps.Metrics, deps.Logger)
	courseService := service.NewCourseService(courseRepo, deps.Logger)
	squadService := service.NewSquadService(squadRepo, deps.Logger)
	creationService := service.NewCreationService(creationRepo, likeRepo, deps.S3Client, deps.Logger)

	// Handlers
	discussionHandler := handler.NewDiscussionHandler(discussionService, resolutionService, likeService, deps.Logger)
	bookingHandler := handler.NewBookingHandler(bookingService, deps.Logger)
	courseHandler := handler.NewCourseHandler(courseService, deps.Logger)
	squadHandler := handler.NewSquadHandler(squadService, deps.Logger)
	creationHandler := handler.NewCreationHandler(creationService, likeService, deps.Logger)
	pointsHandler := handler.NewPointsHandler(pointsService, deps.Logger)

	// Operational endpoints
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/ready", func(c *gin.Context) {
		sqlDB, err := deps.DB.DB()
		if err != nil || sqlDB.Ping() != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	api := engine.Group(deps.Config.Server.BasePath)
	api.Use(middleware.AuthMiddleware(deps.Config.JWT.Secret, deps.Logger))

	courses := api.Group("/courses")
	{
		courses.POST("", courseHandler.CreateCourse)
		courses.GET("", courseHandler.ListCourses)
		courses.GET("/:courseId", courseHandler.GetCourse)
		courses.POST("/:courseId/stages", courseHandler.AddStage)
		courses.POST("/:courseId/publish", courseHandler.PublishCourse)
	}

	stages := api.Group("/stages")
	{
		stages.GET("/:stageId/discussions", discussionHandler.GetDiscussionsByStage)
	}

	discussions := api.Group("/discussions")
	{
		discussions.POST("", discussionHandler.CreateDiscussion)
		discussions.GET("/:discussionId", discussionHandler.GetDiscussion)
		discussions.POST("/:discussionId/replies", discussionHandler.CreateReply)
		discussions.POST("/:discussionId/resolve/:replyId", discussionHandler.ResolveReply)
		discussions.DELETE("/replies/:replyId", discussionHandler.DeleteReply)
		discussions.POST("/discussion/:discussionId/like", discussionHandler.ToggleDiscussionLike)
		discussions.POST("/reply/:replyId/like", discussionHandler.ToggleReplyLike)
	}

	bookings := api.Group("/bookings")
	{
		bookings.POST("", bookingHandler.CreateBooking)
		bookings.GET("/customer", bookingHandler.GetMyBookings)
		bookings.GET("/provider", bookingHandler.GetProviderBookings)
		bookings.GET("/:bookingId", bookingHandler.GetBooking)
		bookings.POST("/:bookingId/status", bookingHandler.TransitionBooking)
		bookings.POST("/:bookingId/payment-proof", bookingHandler.UploadPaymentProof)
		bookings.POST("/:bookingId/verify", middleware.AdminOnly(), bookingHandler.VerifyPayment)
	}

	squads := api.Group("/squads")
	{
		squads.POST("", squadHandler.CreateSquad)
		squads.GET("", squadHandler.ListSquads)
		squads.GET("/:squadId", squadHandler.GetSquad)
		squads.POST("/:squadId/join", squadHandler.JoinSquad)
		squads.POST("/:squadId/leave", squadHandler.LeaveSquad)
	}

	creations := api.Group("/creations")
	{
		creations.POST("", creationHandler.CreateCreation)
		creations.GET("", creationHandler.ListCreations)
		creations.GET("/:creationId", creationHandler.GetCreation)
		creations.POST("/:creationId/comments", creationHandler.AddComment)
		creations.POST("/creation/:creationId/like", creationHandler.ToggleCreationLike)
		creations.POST("/comment/:commentId/like", creationHandler.ToggleCommentLike)
	}

	points := api.Group("/points")
	{
		points.GET("/me", pointsHandler.GetMyPoints)
		points.GET("/leaderboard", pointsHandler.GetLeaderboard)
	}

	return engine, &Services{
		Discussion: discussionService,
		Resolution: resolutionService,
		Like:       likeService,
		Booking:    bookingService,
		Course:     courseService,
		Squad:      squadService,
		Creation:   creationService,
		Points:     pointsService,
	}
}
