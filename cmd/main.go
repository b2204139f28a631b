package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"roomlink/internal/analytics"
	"roomlink/internal/caching"
	"roomlink/internal/handlers"
	"roomlink/internal/jobs/background"
	"roomlink/internal/middleware"
	"roomlink/internal/models"
	"roomlink/internal/repositories"
	"roomlink/internal/services"
	"roomlink/pkg/database"
)

const version = "1.0.0"

func main() {
	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generated secret for development only
		log.Printf("WARNING: JWT_SECRET not set, using a generated secret; tokens will not survive restarts")
	}

	// Optional external identity provider. When a JWKS URL is configured,
	// RS256 tokens minted by the provider are accepted alongside local ones.
	var jwks *keyfunc.JWKS
	if jwksURL := os.Getenv("IDENTITY_JWKS_URL"); jwksURL != "" {
		jwks, err = keyfunc.Get(jwksURL, keyfunc.Options{
			RefreshInterval:  time.Hour,
			RefreshRateLimit: 5 * time.Minute,
			RefreshErrorHandler: func(err error) {
				log.Printf("JWKS refresh failed: %v", err)
			},
		})
		if err != nil {
			log.Fatalf("Failed to load JWKS from %s: %v", jwksURL, err)
		}
		defer jwks.EndBackground()
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	profileRepo := repositories.NewProfileRepository(pool)
	roomRepo := repositories.NewRoomRepository(pool)
	requestRepo := repositories.NewRequestRepository(pool)
	requestEventRepo := repositories.NewRequestEventRepository(pool)

	// Cache service
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Services
	authSvc := services.NewAuthService(cacheSvc, jwtSecret, 900, 7*24*3600)
	profileSvc := services.NewProfileService(profileRepo)
	roomSvc := services.NewRoomService(roomRepo, profileRepo, cacheSvc)
	requestSvc := services.NewRequestService(requestRepo, requestEventRepo, profileRepo, roomSvc, cacheSvc)
	dashboardSvc := analytics.NewDashboardService(roomRepo, requestRepo, cacheSvc)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(authSvc, userRepo)
	profileHandlers := handlers.NewProfileHandlers(profileSvc)
	roomHandlers := handlers.NewRoomHandlers(roomSvc)
	requestHandlers := handlers.NewRequestHandlers(requestSvc, cacheSvc)
	dashboardHandlers := handlers.NewDashboardHandlers(dashboardSvc, profileRepo)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Background jobs
	scheduler := background.NewJobScheduler(dashboardSvc, cacheSvc, profileRepo)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start job scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Pre(echoMiddleware.RemoveTrailingSlash())

	versionMiddleware := middleware.NewVersionMiddleware()
	e.Use(versionMiddleware.APIVersionResolver())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	// API routes
	v1 := e.Group("/v1")
	v1.Use(versionMiddleware.VersionHeader("v1"))

	// Authentication routes (no JWT required)
	auth := v1.Group("/auth")
	auth.POST("/signup", authHandlers.Signup)
	auth.POST("/login", authHandlers.Login)
	auth.POST("/refresh", authHandlers.Refresh)
	auth.POST("/logout", authHandlers.Logout)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.JWTMiddleware(authSvc, jwks))

	roleMiddleware := middleware.NewRoleMiddleware(profileRepo)
	ownerOnly := roleMiddleware.RequireRole(models.RoleOwner)
	tenantOnly := roleMiddleware.RequireRole(models.RoleTenant)

	// Profile routes
	protected.POST("/profiles", profileHandlers.CreateProfile)
	protected.GET("/me", profileHandlers.Me)

	// Room routes
	protected.GET("/rooms/search", roomHandlers.SearchRooms, tenantOnly)
	protected.GET("/rooms/mine", roomHandlers.ListMyRooms, ownerOnly)
	protected.GET("/rooms/:id", roomHandlers.GetRoom)
	protected.POST("/rooms", roomHandlers.CreateRoom, ownerOnly)
	protected.DELETE("/rooms/:id", roomHandlers.DeleteRoom, ownerOnly)

	// Request lifecycle routes
	protected.POST("/requests", requestHandlers.CreateRequest, tenantOnly)
	protected.POST("/requests/:id/decision", requestHandlers.Decide, ownerOnly)
	protected.GET("/requests/received", requestHandlers.ListReceived, ownerOnly)
	protected.GET("/requests/sent", requestHandlers.ListSent, tenantOnly)
	protected.GET("/requests/:id/events", requestHandlers.Events)

	// Dashboard
	protected.GET("/dashboard", dashboardHandlers.OwnerDashboard, ownerOnly)

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("Roomlink server v%s starting on port %d", version, port)

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
