package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/atelier-ops/shopfloor-scheduler-api/config"
	"github.com/atelier-ops/shopfloor-scheduler-api/controllers"
	"github.com/atelier-ops/shopfloor-scheduler-api/middleware"
	"github.com/atelier-ops/shopfloor-scheduler-api/models"
	"github.com/atelier-ops/shopfloor-scheduler-api/services"
)

func main() {
	log.Println("Starting Shopfloor Scheduler API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.Technician{},
		&models.DayTechnician{},
		&models.ScheduleEntry{},
		&models.UnscheduledOrder{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	services.InitScheduleRepository(db)

	if cfg.AWSS3Bucket != "" {
		if _, err := services.InitSnapshotService(); err != nil {
			log.Fatalf("Failed to initialize snapshot service: %v", err)
		}
		log.Printf("Snapshot archive enabled on bucket %s", cfg.AWSS3Bucket)
	} else {
		log.Println("AWS_S3_BUCKET not set, snapshot archive disabled")
	}

	router := setupRouter(cfg)

	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter builds the Gin engine with all routes registered
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/database/status", databaseStatus)

		// Read-only endpoints
		v1.GET("/schedule", controllers.ListSchedule)
		v1.GET("/schedule/statistics", controllers.GetStatistics)
		v1.GET("/unscheduled", controllers.ListUnscheduled)
		v1.GET("/technicians", controllers.ListTechnicians)
		v1.GET("/block-reasons", controllers.ListBlockReasons)

		// Everything that mutates the schedule requires a valid token
		protected := v1.Group("")
		protected.Use(middleware.EnsureValidToken(cfg))
		{
			// Planner operations
			planner := protected.Group("")
			planner.Use(middleware.RequireRole("planner"))
			{
				planner.POST("/schedule/generate", controllers.GenerateSchedule)
				planner.POST("/schedule/assign", controllers.AssignUnscheduled)
				planner.PATCH("/schedule/:rowID/technician", controllers.ChangeTechnician)
				planner.PATCH("/schedule/:rowID/priority", controllers.ChangePriority)
				planner.PATCH("/schedule/:rowID/routing-time", controllers.ChangeRoutingTime)
				planner.DELETE("/schedule", controllers.ClearSchedule)
				planner.POST("/technicians", controllers.CreateTechnician)
				planner.POST("/schedule/snapshot", controllers.CreateSnapshot)
				planner.GET("/schedule/snapshot/url", controllers.GetSnapshotURL)
			}

			// Lifecycle transitions are open to any authenticated operator
			protected.POST("/schedule/:rowID/start", controllers.StartOrder)
			protected.POST("/schedule/:rowID/stop", controllers.StopOrder)
			protected.POST("/schedule/:rowID/end", controllers.EndOrder)
			protected.POST("/schedule/:rowID/block", controllers.BlockOrder)
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Shopfloor Scheduler API is running",
	})
}

// databaseStatus checks database connectivity and reports row counts
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	var technicians, entries, unscheduled int64
	db.Model(&models.Technician{}).Count(&technicians)
	db.Model(&models.ScheduleEntry{}).Count(&entries)
	db.Model(&models.UnscheduledOrder{}).Count(&unscheduled)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"counts": gin.H{
			"technicians":        technicians,
			"schedule_entries":   entries,
			"unscheduled_orders": unscheduled,
		},
	})
}
