package fileRoutes

import (
	"github.com/gofiber/fiber/v2"

	"vendorhub/config"
	filesController "vendorhub/controllers/files"
)

func SetupFileRoutes(app *fiber.App, cfg *config.Config, ctl *filesController.Controller) {
	filesGroup := app.Group("/files")

	filesGroup.Post("/upload", ctl.Upload)

	// Serve previously stored files
	app.Static("/files/static", cfg.UploadDir)
}
