package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"vendorhub/config"
	authController "vendorhub/controllers/auth"
	filesController "vendorhub/controllers/files"
	userController "vendorhub/controllers/userControllers"
	"vendorhub/database"
	"vendorhub/otp"
	authRoutes "vendorhub/routers/authRoutes"
	fileRoutes "vendorhub/routers/fileRoutes"
	userRoutes "vendorhub/routers/userRoutes"
)

func main() {
	cfg := config.LoadConfig()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	database.RunMigrations(db)

	otpStore := otp.NewStore(time.Duration(cfg.OTPExpirySeconds) * time.Second)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app, authController.New(db, cfg, otpStore))
	userRoutes.SetupUserRoutes(app, cfg, userController.New(db, cfg))
	fileRoutes.SetupFileRoutes(app, cfg, filesController.New(cfg))

	log.Printf("Server is running on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
