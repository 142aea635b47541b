package middleware

import "github.com/gofiber/fiber/v2"

// Stable machine-readable error codes surfaced to clients.
const (
	CodeOTPRequired         = "otp_required"
	CodeOTPExpired          = "otp_expired"
	CodeOTPInvalid          = "otp_invalid"
	CodeMobileExists        = "mobile_exists"
	CodeInvalidCredentials  = "invalid_credentials"
	CodeInvalidToken        = "invalid_token"
	CodeNotFound            = "not_found"
	CodeUnsupportedFileType = "unsupported_file_type"
	CodeDatabaseError       = "database_error"
	CodeStorageError        = "storage_error"
	CodeValidationError     = "validation_error"
	CodeBadRequest          = "bad_request"
)

// JsonResponse writes the shared success/failure envelope.
func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// ErrorResponse writes a failure envelope carrying a stable error code.
func ErrorResponse(c *fiber.Ctx, statusCode int, code, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  false,
		"code":    code,
		"message": message,
		"data":    nil,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"status":  false,
		"code":    CodeValidationError,
		"message": "Validation failed!",
		"data":    errors,
	})
}
