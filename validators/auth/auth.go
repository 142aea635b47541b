package authValidator

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"

	"vendorhub/middleware"
	"vendorhub/models"
)

// Helper to validate mobile number format
func isValidMobile(mobile string) bool {
	re := regexp.MustCompile(`^\d{8,15}$`)
	return re.MatchString(mobile)
}

// SendOTP validator middleware
func SendOTP() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			MobileNo string `json:"mobile_no"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeBadRequest, "Invalid request body!")
		}

		errors := make(map[string]string)

		if reqData.MobileNo == "" || !isValidMobile(reqData.MobileNo) {
			errors["mobile_no"] = "Invalid mobile number!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// Register validator middleware
func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			FullName string `json:"full_name"`
			MobileNo string `json:"mobile_no"`
			Password string `json:"password"`
			Category string `json:"category"`
			OTPCode  string `json:"otp_code"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeBadRequest, "Invalid request body!")
		}

		errors := make(map[string]string)

		// Validate Name
		if len(strings.TrimSpace(reqData.FullName)) < 3 {
			errors["full_name"] = "Full name must be at least 3 characters long!"
		}

		// Validate Mobile
		if reqData.MobileNo == "" || !isValidMobile(reqData.MobileNo) {
			errors["mobile_no"] = "Invalid mobile number!"
		}

		// Validate Password
		if len(strings.TrimSpace(reqData.Password)) < 8 {
			errors["password"] = "Password must be at least 8 characters long!"
		}

		// Validate Category
		if !models.IsValidCategory(reqData.Category) {
			errors["category"] = "Category must be one of Vendor, Women Merchant or Customer!"
		}

		// Validate OTP code
		if len(reqData.OTPCode) < 4 {
			errors["otp_code"] = "OTP code must be at least 4 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// Login validator middleware
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			MobileNo string `json:"mobile_no"`
			Password string `json:"password"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeBadRequest, "Invalid request body!")
		}

		errors := make(map[string]string)

		if reqData.MobileNo == "" {
			errors["mobile_no"] = "Mobile number is required!"
		}
		if reqData.Password == "" {
			errors["password"] = "Password is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
