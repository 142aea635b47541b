package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"vendorhub/config"
)

// GenerateJWT issues a signed token carrying the profile identifier as
// subject and the profile category. Signing uses the configured
// secret/algorithm pairing; tokens are valid for 24 hours.
func GenerateJWT(cfg *config.Config, userID, category string) (string, error) {
	method := jwt.GetSigningMethod(cfg.JWTAlgorithm)
	if method == nil {
		return "", fmt.Errorf("unknown signing algorithm: %s", cfg.JWTAlgorithm)
	}

	claims := jwt.MapClaims{
		"sub":      userID,
		"category": category,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(method, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// DecodeToken verifies the token against the configured secret and
// algorithm and returns the subject. Any failure (bad signature, wrong
// algorithm, expired or malformed payload) is an error.
func DecodeToken(cfg *config.Config, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != cfg.JWTAlgorithm {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token payload")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", fmt.Errorf("invalid token payload")
	}
	return sub, nil
}

// JWTMiddleware checks for a valid bearer token and stores the subject in
// the request context under "userId". Decoding failure rejects the
// request before any persistence access.
func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return ErrorResponse(c, fiber.StatusUnauthorized, CodeInvalidToken, "Missing or invalid Authorization header")
		}

		// The token should be prefixed with "Bearer "
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return ErrorResponse(c, fiber.StatusUnauthorized, CodeInvalidToken, "Invalid Authorization header format")
		}

		tokenString := authHeader[len("Bearer "):]

		sub, err := DecodeToken(cfg, tokenString)
		if err != nil {
			return ErrorResponse(c, fiber.StatusUnauthorized, CodeInvalidToken, "Invalid or expired token")
		}

		c.Locals("userId", sub)
		return c.Next()
	}
}
