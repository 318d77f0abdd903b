package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/openshelf-backend/src/db"
	"github.com/openshelf/openshelf-backend/src/middleware"
	"github.com/openshelf/openshelf-backend/src/models"
	"github.com/openshelf/openshelf-backend/src/routes"
	"github.com/openshelf/openshelf-backend/src/seed"
	"github.com/openshelf/openshelf-backend/src/services"
)

func main() {

	// Database connection
	db, err := db.Connect()
	if err != nil {
		log.Fatalf("Error connecting to database: %v\n", err)
	}

	// Auto-migrate models
	if err := db.AutoMigrate(&models.BookModel{}, &models.UserModel{}, &models.LoanModel{}); err != nil {
		log.Fatalf("Error during auto-migration: %v\n", err)
	}

	// Token verification setup
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatalln("JWT_SECRET is required")
	}
	issuer := os.Getenv("JWT_ISSUER")
	if issuer == "" {
		issuer = "openshelf"
	}
	audience := os.Getenv("JWT_AUDIENCE")
	if audience == "" {
		audience = "openshelf-clients"
	}
	middleware.Configure(secret, issuer, audience)

	if os.Getenv("SEED_DB") == "true" {
		seed.Seed(db)
	}

	// Port and host setup
	host := os.Getenv("SERVER_HOST")
	if host == "" {
		host = ":8080"
	}

	// Gin router setup
	router := gin.Default()
	router.Use(middleware.SetupCORS())

	// Services setup
	bookService := services.NewBookService(db)
	userService := services.NewUserService(db)
	loanService := services.NewLoanService(db, bookService)

	// Routes setup
	routes.SetupBookRoutes(router, bookService, loanService)
	routes.SetupUserRoutes(router, userService)
	routes.SetupLoanRoutes(router, loanService)

	// Server run
	if err := router.Run(host); err != nil {
		log.Fatalf("Error starting server on %s: %v\n", host, err)
	}
}
