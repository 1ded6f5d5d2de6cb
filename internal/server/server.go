package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/auth"
	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/booking"
	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/catalog"
	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/config"
	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/gateway"
	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/notification"
	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/storage"
	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/transaction"
	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/user"
)

type Deps struct {
	DB       *sqlx.DB
	Config   *config.Config
	Store    storage.Storage
	Gateway  gateway.Client
	Notifier *notification.Service
}

type Server struct {
	router *gin.Engine
	http   *http.Server

	// BookingRepo is exposed so the sweeper can share the engine's
	// compare-and-set transition.
	BookingRepo booking.Repository
}

func New(deps Deps) *Server {
	cfg := deps.Config

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CORSMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())

	userRepo := user.NewRepository(deps.DB)
	catalogRepo := catalog.NewRepository(deps.DB)
	bookingRepo := booking.NewRepository(deps.DB)
	transactionRepo := transaction.NewRepository(deps.DB)
	notificationRepo := notification.NewRepository(deps.DB)

	userService := user.NewService(userRepo, cfg.JWTSecret)
	bookingService := booking.NewService(
		bookingRepo, catalogRepo, deps.Store, deps.Notifier,
		cfg.BookingTTL, cfg.UpstreamTimeout,
	)
	transactionService := transaction.NewService(
		transactionRepo, catalogRepo, deps.Gateway, deps.Notifier,
		cfg.UpstreamTimeout,
	)

	userHandler := user.NewHandler(userService)
	catalogHandler := catalog.NewHandler(catalogRepo)
	bookingHandler := booking.NewHandler(bookingService)
	transactionHandler := transaction.NewHandler(transactionService, userRepo)
	notificationHandler := notification.NewHandler(notificationRepo)

	authLimiter := NewRateLimiter(5, 10, 10*time.Minute)
	webhookLimiter := NewRateLimiter(20, 40, 10*time.Minute)

	public := router.Group("/auth")
	public.Use(authLimiter.Middleware())
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.Refresh)
	}

	router.GET("/trips", catalogHandler.ListTrips)
	router.GET("/trips/:tripID", catalogHandler.GetTrip)
	router.GET("/travels", catalogHandler.ListTravels)
	router.GET("/travels/:travelID", catalogHandler.GetTravel)

	router.POST("/webhooks/midtrans", webhookLimiter.Middleware(), transactionHandler.Webhook)

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.Me)

		protected.POST("/bookings", bookingHandler.Create)
		protected.GET("/bookings", bookingHandler.ListMine)
		protected.GET("/bookings/:bookingID", bookingHandler.Detail)
		protected.POST("/bookings/:bookingID/proof", bookingHandler.UploadProof)

		protected.POST("/transactions", transactionHandler.Create)
		protected.GET("/transactions", transactionHandler.ListMine)
		protected.GET("/transactions/:transactionID", transactionHandler.Detail)

		protected.GET("/notifications", notificationHandler.List)
		protected.POST("/notifications/:notificationID/read", notificationHandler.MarkRead)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, auth.RequireRole("admin"))
	{
		admin.GET("/bookings", bookingHandler.AdminList)
		admin.GET("/bookings/:bookingID", bookingHandler.AdminDetail)
		admin.POST("/bookings/:bookingID/approve", bookingHandler.Approve)
		admin.POST("/bookings/:bookingID/reject", bookingHandler.Reject)
		admin.GET("/statistics", bookingHandler.AdminStatistics)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	router.Static("/uploads", cfg.UploadDir)

	return &Server{
		router:      router,
		BookingRepo: bookingRepo,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:              ":" + port,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}
