package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"go-milk-delivery/database"
	"go-milk-delivery/middleware"
	"go-milk-delivery/routes"
	"go-milk-delivery/scheduler"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("no .env file found, relying on the environment")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := database.Ping(ctx); err != nil {
		log.Printf("could not reach MongoDB: %v", err)
		os.Exit(1)
	}
	if err := database.EnsureIndexes(ctx); err != nil {
		log.Fatalf("could not create indexes: %v", err)
	}
	if err := database.SeedProducts(ctx); err != nil {
		log.Fatalf("could not seed products: %v", err)
	}
	if err := database.SeedAdmin(ctx); err != nil {
		log.Fatalf("could not seed admin account: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		log.Fatalf("could not create upload directory: %v", err)
	}

	corsOrigin := os.Getenv("CORS_ORIGIN")
	if corsOrigin == "" {
		corsOrigin = "http://localhost:3000"
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{corsOrigin},
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Payment proofs are served back to the admin UI from here.
	router.Static("/uploads", uploadDir)
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "page not found"})
	})

	routes.AuthRoutes(router)
	routes.ProductRoutes(router)

	router.Use(middleware.Authentication())
	routes.UserRoutes(router)
	routes.OrderRoutes(router)
	routes.MobileOrderRoutes(router)
	routes.InventoryRoutes(router)
	routes.AdminRoutes(router)

	interval := 30
	if raw := os.Getenv("SCHEDULER_INTERVAL_MINUTES"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			interval = n
		}
	}
	statusScheduler := scheduler.New(
		database.OpenCollection(database.Client, "order"),
		time.Duration(interval)*time.Minute,
	)
	statusScheduler.Start()

	log.Printf("listening on :%s (scheduler every %dm)", port, interval)
	if err := router.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
