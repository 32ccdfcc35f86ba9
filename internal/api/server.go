package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/eventhub/eventhub-api/docs"
	v1 "github.com/eventhub/eventhub-api/internal/api/handler/v1"
	"github.com/eventhub/eventhub-api/internal/api/middleware"
	"github.com/eventhub/eventhub-api/internal/config"
	"github.com/eventhub/eventhub-api/internal/live"
	"github.com/eventhub/eventhub-api/internal/notification"
	"github.com/eventhub/eventhub-api/internal/repository"
	"github.com/eventhub/eventhub-api/internal/repository/dao"
	"github.com/eventhub/eventhub-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	hub        *live.Hub
	dispatcher *notification.Fanout
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.hub = live.NewHub()
	s.dispatcher = notification.NewFanout(
		notification.NewSMTPMailer(conf.SMTP),
		repository.NewNotificationRepository(dao.NewNotificationDAO(db)),
		repository.NewUserRepository(dao.NewUserDAO(db)),
		s.hub,
		zap.L(),
	)

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db)
	eventHandler := s.initEventHandler(db)
	participationHandler := s.initParticipationHandler(db)
	commentHandler := s.initCommentHandler(db)
	ratingHandler := s.initRatingHandler(db)
	dashboardHandler := s.initDashboardHandler(db)
	notificationHandler := s.initNotificationHandler(db)
	liveHandler := v1.NewLiveHandler(s.initEventService(db), s.hub)
	s.MountHandlers(authHandler, userHandler, eventHandler, participationHandler,
		commentHandler, ratingHandler, dashboardHandler, notificationHandler, liveHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewUserService(repo)
	handler := v1.NewUserHandler(svc)

	return handler
}

func (s *Server) initEventService(db *gorm.DB) *service.EventService {
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	participantRepo := repository.NewParticipantRepository(dao.NewParticipantDAO(db))
	ratingRepo := repository.NewRatingRepository(dao.NewRatingDAO(db))

	return service.NewEventService(eventRepo, participantRepo, ratingRepo, s.dispatcher)
}

func (s *Server) initEventHandler(db *gorm.DB) *v1.EventHandler {
	return v1.NewEventHandler(s.initEventService(db))
}

func (s *Server) initParticipationHandler(db *gorm.DB) *v1.ParticipationHandler {
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	svc := service.NewParticipationService(eventRepo, s.dispatcher, zap.L())
	handler := v1.NewParticipationHandler(svc)

	return handler
}

func (s *Server) initCommentHandler(db *gorm.DB) *v1.CommentHandler {
	commentRepo := repository.NewCommentRepository(dao.NewCommentDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	participantRepo := repository.NewParticipantRepository(dao.NewParticipantDAO(db))
	svc := service.NewCommentService(commentRepo, eventRepo, participantRepo, s.dispatcher)
	handler := v1.NewCommentHandler(svc)

	return handler
}

func (s *Server) initRatingHandler(db *gorm.DB) *v1.RatingHandler {
	ratingRepo := repository.NewRatingRepository(dao.NewRatingDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	participantRepo := repository.NewParticipantRepository(dao.NewParticipantDAO(db))
	svc := service.NewRatingService(ratingRepo, eventRepo, participantRepo)
	handler := v1.NewRatingHandler(svc)

	return handler
}

func (s *Server) initDashboardHandler(db *gorm.DB) *v1.DashboardHandler {
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	participantRepo := repository.NewParticipantRepository(dao.NewParticipantDAO(db))
	ratingRepo := repository.NewRatingRepository(dao.NewRatingDAO(db))
	svc := service.NewDashboardService(eventRepo, participantRepo, ratingRepo)
	handler := v1.NewDashboardHandler(svc)

	return handler
}

func (s *Server) initNotificationHandler(db *gorm.DB) *v1.NotificationHandler {
	repo := repository.NewNotificationRepository(dao.NewNotificationDAO(db))
	svc := service.NewNotificationService(repo)
	handler := v1.NewNotificationHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	eventHandler *v1.EventHandler,
	participationHandler *v1.ParticipationHandler,
	commentHandler *v1.CommentHandler,
	ratingHandler *v1.RatingHandler,
	dashboardHandler *v1.DashboardHandler,
	notificationHandler *v1.NotificationHandler,
	liveHandler *v1.LiveHandler,
) {
	const basePath = "/api/v1"

	authenticator := middleware.NewAuthenticator(s.Config.API.JWTSigningKey)

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	// Browsing works anonymously; a token only widens what is visible.
	public := s.Router.Group(basePath, authenticator.OptionalJWT())
	{
		public.GET("/events", eventHandler.HandleListEvents)
		public.GET("/events/:eventID", eventHandler.HandleGetEvent)
		public.GET("/events/:eventID/comments", commentHandler.HandleListComments)
		public.GET("/events/:eventID/ratings", ratingHandler.HandleListRatings)
		public.GET("/events/:eventID/live", liveHandler.HandleLiveUpdates)
		public.GET("/categories", eventHandler.HandleListCategories)
	}

	authed := s.Router.Group(basePath, authenticator.VerifyJWT())
	{
		authed.POST("/events", eventHandler.HandleCreateEvent)
		authed.PUT("/events/:eventID", eventHandler.HandleUpdateEvent)
		authed.DELETE("/events/:eventID", eventHandler.HandleDeleteEvent)
		authed.PUT("/events/:eventID/status", eventHandler.HandleTransitionEvent)

		authed.POST("/events/:eventID/register", participationHandler.HandleRegister)
		authed.DELETE("/events/:eventID/register", participationHandler.HandleCancel)
		authed.GET("/events/:eventID/participants", eventHandler.HandleGetRoster)
		authed.GET("/events/:eventID/participants/:participantID", eventHandler.HandleGetParticipant)
		authed.PUT("/events/:eventID/participants/:participantID", participationHandler.HandleUpdateParticipantStatus)

		authed.POST("/events/:eventID/comments", commentHandler.HandleCreateComment)
		authed.PUT("/events/:eventID/comments/:commentID", commentHandler.HandleUpdateComment)
		authed.DELETE("/events/:eventID/comments/:commentID", commentHandler.HandleDeleteComment)

		authed.POST("/events/:eventID/ratings", ratingHandler.HandleCreateRating)
		authed.PUT("/events/:eventID/ratings/:ratingID", ratingHandler.HandleUpdateRating)
		authed.DELETE("/events/:eventID/ratings/:ratingID", ratingHandler.HandleDeleteRating)

		authed.GET("/users/:userID", userHandler.HandleGetUser)

		authed.GET("/dashboard/registered", dashboardHandler.HandleRegisteredEvents)
		authed.GET("/dashboard/organized", dashboardHandler.HandleOrganizedEvents)
		authed.GET("/dashboard/upcoming", dashboardHandler.HandleUpcomingEvents)
		authed.GET("/dashboard/statistics", dashboardHandler.HandleStatistics)

		authed.GET("/notifications", notificationHandler.HandleListNotifications)
		authed.PUT("/notifications/:notificationID/read", notificationHandler.HandleMarkNotificationRead)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "EventHub API"
	docs.SwaggerInfo.Description = "Event management platform: publish events, manage registrations, comment and rate."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
