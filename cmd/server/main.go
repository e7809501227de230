package main

import (
	"log"
	"os"
	"strconv"

	"pintdiary/config"
	"pintdiary/controllers"
	"pintdiary/db"
	"pintdiary/middlewares"
	"pintdiary/routes"
	"pintdiary/services"
	"pintdiary/utils"
	"pintdiary/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments configure via the YAML file
	godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "./config/config.prod.yml"
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	utils.SetJWTSecret(cfg.JWT.Secret)
	utils.SetJWTExpiry(cfg.JWT.Expiry)
	controllers.InitAuthService(cfg)
	services.InitPlacesService(cfg.Places.ApiKey)

	if err := services.InitStorage(cfg); err != nil {
		log.Printf("Photo storage unavailable: %v", err)
	}

	// Connect to MongoDB using the URI from the configuration
	if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB")

	// Set up the Gin router and configure routes
	router := setupRouter(cfg)
	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	// Set trusted proxies (adjust as needed)
	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	router.OPTIONS("/*path", func(c *gin.Context) { c.Status(204) })

	// Public routes for authentication
	router.POST("/signup", routes.SignUpRouteHandler)
	router.POST("/verifyEmail", routes.VerifyEmailRouteHandler)
	router.POST("/login", routes.LoginRouteHandler)
	router.POST("/forgotPassword", routes.ForgotPasswordRouteHandler)
	router.POST("/confirmForgotPassword", routes.VerifyForgotPasswordRouteHandler)
	router.POST("/verifyToken", routes.VerifyTokenRouteHandler)

	// Protected routes (JWT auth)
	auth := router.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/user/fetchprofile", routes.GetProfileRouteHandler)
		auth.PUT("/user/updateprofile", routes.UpdateProfileRouteHandler)
		auth.GET("/user/passport/:uid", routes.GetPassportRouteHandler)

		auth.POST("/pints", routes.CreatePintRouteHandler)
		auth.GET("/pints", routes.ListPintsRouteHandler)
		auth.PUT("/pints/:id", routes.UpdatePintRouteHandler)
		auth.DELETE("/pints/:id", routes.DeletePintRouteHandler)
		auth.POST("/pints/photo", routes.UploadPintPhotoRouteHandler)

		auth.GET("/stats", routes.GetStatsRouteHandler)

		auth.POST("/friends/:uid", routes.ConnectFriendRouteHandler)
		auth.GET("/friends", routes.ListFriendsRouteHandler)

		auth.GET("/feed", routes.GetFriendsFeedRouteHandler)
		auth.GET("/feed/all", routes.GetFullFriendsFeedRouteHandler)

		auth.GET("/places/nearby", routes.SearchNearbyPlacesRouteHandler)
		auth.GET("/places/search", routes.SearchPlacesByTextRouteHandler)

		// WebSocket stream for badge award notifications
		auth.GET("/ws/badges", websocket.BadgeSocketHandler)
	}

	return router
}
