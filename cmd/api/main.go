package main

import (
	"log"
	"os"
	"time"

	"github.com/D-Oracle1/Consignment/internal/database"
	"github.com/D-Oracle1/Consignment/internal/handlers"
	"github.com/D-Oracle1/Consignment/internal/middleware"
	"github.com/D-Oracle1/Consignment/internal/models"
	"github.com/D-Oracle1/Consignment/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	db, err := database.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

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
	if err := database.SeedDefaults(db); err != nil {
		log.Fatalf("Failed to seed defaults: %v", err)
	}

	// Redis is optional: tracking cache and pub/sub degrade to no-ops
	if err := services.InitRedis(); err != nil {
		log.Printf("Redis initialization warning: %v", err)
	}

	// Proof uploads fail individually if storage is unavailable
	if err := services.InitStorage(); err != nil {
		log.Printf("Storage initialization warning: %v", err)
	}

	notifier := services.NewNotifier(db)
	shipmentSvc := services.NewShipmentService(db, notifier)

	r := gin.Default()

	// Configure CORS
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(config))

	// Serve locally stored delivery proofs
	r.Static("/uploads", "./uploads")

	api := r.Group("/api")
	{
		// Public routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register(db))
			auth.POST("/login", handlers.Login(db))
		}

		api.GET("/tracking/:trackingNumber", handlers.TrackShipment(db))
		api.POST("/pricing/calculate", handlers.CalculateShipping(db))
		api.GET("/settings", handlers.GetSettings(db))

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			users := protected.Group("/users")
			{
				users.GET("/profile", handlers.GetProfile(db))
				users.PUT("/profile", handlers.UpdateProfile(db))
			}

			shipments := protected.Group("/shipments")
			{
				shipments.GET("", handlers.GetShipments(db))
				shipments.POST("", handlers.CreateShipment(shipmentSvc))
				shipments.GET("/:id", handlers.GetShipment(db))
				shipments.DELETE("/:id",
					middleware.RequireRoles(models.RoleAdmin),
					handlers.DeleteShipment(db))
				shipments.POST("/:id/status",
					middleware.RequireRoles(models.StaffRoles...),
					handlers.UpdateShipmentStatus(shipmentSvc))
				shipments.POST("/:id/proof",
					middleware.RequireRoles(models.StaffRoles...),
					handlers.UploadDeliveryProof(db))
			}

			pickups := protected.Group("/pickup")
			{
				pickups.GET("", handlers.GetPickups(db))
				pickups.POST("", handlers.CreatePickup(db))
				pickups.PATCH("/:id",
					middleware.RequireRoles(models.StaffRoles...),
					handlers.UpdatePickup(db, notifier))
			}

			pricing := protected.Group("/pricing")
			{
				pricing.GET("/rules",
					middleware.RequireRoles(models.StaffRoles...),
					handlers.GetPricingRules(db))
				pricing.POST("/rules",
					middleware.RequireRoles(models.RoleAdmin),
					handlers.CreatePricingRule(db))
			}

			notifications := protected.Group("/notifications")
			{
				notifications.GET("", handlers.GetNotifications(db))
				notifications.POST("/:id/read", handlers.MarkNotificationRead(db))
			}

			staff := protected.Group("/staff")
			staff.Use(middleware.RequireRoles(models.RoleAdmin))
			{
				staff.GET("", handlers.GetStaff(db))
				staff.POST("", handlers.CreateStaff(db))
			}

			protected.GET("/dashboard/stats", handlers.GetDashboardStats(db))
			protected.GET("/reports/shipments",
				middleware.RequireRoles(models.RoleAdmin, models.RoleWarehouse),
				handlers.GetShipmentsReport(db))

			protected.POST("/settings",
				middleware.RequireRoles(models.RoleAdmin),
				handlers.UpdateSetting(db))
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
