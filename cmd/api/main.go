package main

import (
	"log"
	"os"
	"time"

	"github.com/delride/delride-backend/internal/database"
	"github.com/delride/delride-backend/internal/handlers"
	"github.com/delride/delride-backend/internal/rides"
	"github.com/delride/delride-backend/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	db, err := database.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Get underlying SQL DB instance
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	// Configure connection pool
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis
	if err := services.InitRedis(); err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}

	// Initialize WebSocket hub
	hub := services.NewHub()
	go hub.Run()

	rideService := rides.NewRideService(
		database.NewRideStore(db),
		database.NewUserStore(db),
	)

	// Initialize router
	r := gin.Default()

	// Configure CORS
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(config))

	r.GET("/health", handlers.HealthCheck(db))

	// Routes
	api := r.Group("/api")
	{
		// WebSocket connection for live ride updates
		api.GET("/ws", handlers.WebSocketHandler(hub))

		ridesGroup := api.Group("/rides")
		{
			ridesGroup.GET("", handlers.ListRides(rideService))
			ridesGroup.POST("", handlers.CreateRide(rideService, hub))
			ridesGroup.GET("/:id", handlers.GetRide(rideService))
			ridesGroup.PUT("/:id", handlers.UpdateRide(rideService))
			ridesGroup.DELETE("/:id", handlers.DeleteRide(rideService))
			ridesGroup.PUT("/:id/accept", handlers.AcceptRide(rideService, hub))
			ridesGroup.PUT("/:id/complete", handlers.CompleteRide(rideService, hub))
			ridesGroup.PUT("/:id/cancel", handlers.CancelRide(rideService, hub))
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
