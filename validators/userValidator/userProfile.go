package userValidator

import (
	"regexp"

	"github.com/gofiber/fiber/v2"

	"vendorhub/middleware"
)

func isValidMobile(mobile string) bool {
	re := regexp.MustCompile(`^\d{8,15}$`)
	return re.MatchString(mobile)
}

// UpdateProfile validator middleware. Every field is optional; only
// supplied values are validated.
func UpdateProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			FullName *string `json:"full_name"`
			MobileNo *string `json:"mobile_no"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeBadRequest, "Invalid request body!")
		}

		errors := make(map[string]string)

		if reqData.FullName != nil && len(*reqData.FullName) < 3 {
			errors["full_name"] = "Full name must be at least 3 characters long!"
		}
		if reqData.MobileNo != nil && !isValidMobile(*reqData.MobileNo) {
			errors["mobile_no"] = "Invalid mobile number!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
