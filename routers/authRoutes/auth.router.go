package authRoutes

import (
	"github.com/gofiber/fiber/v2"

	authController "vendorhub/controllers/auth"
	authValidator "vendorhub/validators/auth"
)

func SetupAuthRoutes(app *fiber.App, ctl *authController.Controller) {
	authGroup := app.Group("/auth")

	authGroup.Post("/send-otp", authValidator.SendOTP(), ctl.SendOTP)
	authGroup.Post("/register", authValidator.Register(), ctl.Register)
	authGroup.Post("/login", authValidator.Login(), ctl.Login)
}
