package userRoutes

import (
	"github.com/gofiber/fiber/v2"

	"vendorhub/config"
	userController "vendorhub/controllers/userControllers"
	"vendorhub/middleware"
	userValidator "vendorhub/validators/userValidator"
)

func SetupUserRoutes(app *fiber.App, cfg *config.Config, ctl *userController.Controller) {
	userGroup := app.Group("/user")

	userGroup.Get("/me", middleware.JWTMiddleware(cfg), ctl.Me)
	userGroup.Post("/update-profile", middleware.JWTMiddleware(cfg), userValidator.UpdateProfile(), ctl.UpdateProfile)
}
