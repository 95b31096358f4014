package main

import (
	"log"

	"github.com/Baaaki/ride-server/internal/config"
	"github.com/Baaaki/ride-server/internal/database"
	"github.com/Baaaki/ride-server/internal/handler"
	"github.com/Baaaki/ride-server/internal/middleware"
	"github.com/Baaaki/ride-server/internal/pricing"
	"github.com/Baaaki/ride-server/internal/repository"
	"github.com/Baaaki/ride-server/internal/service"
	"github.com/Baaaki/ride-server/internal/triplog"
	"github.com/Baaaki/ride-server/pkg/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()
	log.Println("Config loaded successfully")

	if err := logger.Init(cfg.Environment != "production"); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	database.Connect(cfg)
	database.Migrate()

	// Trip log (durable audit trail of ride lifecycle events)
	trips, err := triplog.Open(cfg.TripLogPath)
	if err != nil {
		log.Fatalf("Failed to open trip log: %v", err)
	}
	defer trips.Close()

	// Redis for rate limiting
	redisOpt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Invalid REDIS_URL: %v", err)
	}
	redisClient := redis.NewClient(redisOpt)
	defer redisClient.Close()

	rateLimiter := middleware.NewRateLimiter(redisClient, middleware.RateLimiterConfig{
		MaxRequests: cfg.RateLimitMaxRequests,
		Window:      cfg.RateLimitWindow,
		BlockTime:   cfg.RateLimitBlockTime,
	})

	// Initialize repositories
	userRepo := repository.NewUserRepository(database.DB)
	rideRepo := repository.NewRideRepository(database.DB)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry, cfg.Environment)
	rideService := service.NewRideService(rideRepo, userRepo, pricing.NewRandomEstimator(), trips)
	viewService := service.NewRideViewService(rideRepo, userRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	rideHandler := handler.NewRideHandler(rideService, viewService)

	// Setup Gin router
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.HSTSMiddleware(authService.IsProduction()))
	router.Use(rateLimiter.Middleware())

	// Public routes
	router.POST("/api/user/register", authHandler.Register)
	router.POST("/api/user/login", authHandler.Login)

	// Protected routes (require JWT)
	user := router.Group("/api/user")
	user.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		user.GET("/profile", authHandler.Profile)
		user.DELETE("/delete", authHandler.DeleteUser)
	}

	ride := router.Group("/api/ride")
	ride.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		ride.POST("/request", rideHandler.RequestRide)
		ride.POST("/updateStatus", rideHandler.UpdateStatus)
		ride.GET("/latest", rideHandler.Latest)
		ride.GET("/passengerHistory", rideHandler.PassengerHistory)
		ride.GET("/driverHistory", rideHandler.DriverHistory)
		ride.GET("/driverAvailable", middleware.DriverMiddleware(), rideHandler.AvailableRides)
		ride.GET("/getById", rideHandler.GetByID)
		ride.DELETE("/delete", rideHandler.Delete)
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ServerPort)
	if err := router.Run(cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
