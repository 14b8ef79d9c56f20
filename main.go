package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/nazihkhelifa/servair-webapp/config"
	"github.com/nazihkhelifa/servair-webapp/handlers"
	"github.com/nazihkhelifa/servair-webapp/preprocessing"
	"github.com/nazihkhelifa/servair-webapp/routing"
	"github.com/nazihkhelifa/servair-webapp/services"
)

const apiVersion = "1.0.0"

func main() {

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default environment variables")
	}

	cfg := config.Load()
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	loader := func(ctx context.Context) ([]routing.RoadSegment, error) {
		return preprocessing.LoadRoads(ctx, cfg.RoadsSource, cfg.RoadsTable)
	}
	svc := services.NewTruckpathService(loader, services.Options{
		SpeedLookup:     cfg.SpeedLookup,
		DefaultSpeedKmh: cfg.DefaultSpeedKmh,
		Logger:          log.Default(),
	})

	// The network is otherwise built by the first request that needs it
	if cfg.Warmup {
		go func() {
			status := svc.Status(context.Background())
			if !status.Ready {
				log.Printf("Warning: road network warmup failed: %s", status.Message)
			}
		}()
	}

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if cfg.AllowAllOrigins() {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSOrigins
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"*"}
	corsConfig.ExposeHeaders = []string{handlers.RequestIDHeader}
	r.Use(cors.New(corsConfig))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":   "Servair Pathfinding API running",
			"version":   apiVersion,
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "ready": svc.Ready()})
	})

	handlers.NewTruckpathHandler(svc).RegisterRoutes(r)

	log.Printf("Servair Pathfinding API starting on :%s", cfg.Port)
	log.Printf("Road source: %s (speed lookup %q, default %.0f km/h)", cfg.RoadsSource, cfg.SpeedLookup, cfg.DefaultSpeedKmh)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
