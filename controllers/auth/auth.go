package authController

import (
	"encoding/base64"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"vendorhub/config"
	"vendorhub/middleware"
	"vendorhub/models"
	"vendorhub/otp"
	"vendorhub/utils"
)

// Controller bundles the dependencies of the auth endpoints.
type Controller struct {
	DB  *gorm.DB
	Cfg *config.Config
	OTP *otp.Store
}

func New(db *gorm.DB, cfg *config.Config, store *otp.Store) *Controller {
	return &Controller{DB: db, Cfg: cfg, OTP: store}
}

type sendOTPRequest struct {
	MobileNo string `json:"mobile_no"`
}

type registerRequest struct {
	FullName             string   `json:"full_name"`
	MobileNo             string   `json:"mobile_no"`
	Password             string   `json:"password"`
	Gender               *string  `json:"gender"`
	Category             string   `json:"category"`
	AddressLine          *string  `json:"address_line"`
	City                 *string  `json:"city"`
	State                *string  `json:"state"`
	Country              *string  `json:"country"`
	Pincode              *string  `json:"pincode"`
	Latitude             *float64 `json:"latitude"`
	Longitude            *float64 `json:"longitude"`
	ProfilePhotoURL      *string  `json:"profile_photo_url"`
	ProfilePhotoData     *string  `json:"profile_photo_data"`      // base64 encoded image data
	ProfilePhotoMimeType *string  `json:"profile_photo_mime_type"` // e.g. image/jpeg, image/png
	OTPCode              string   `json:"otp_code"`
}

type loginRequest struct {
	MobileNo string `json:"mobile_no"`
	Password string `json:"password"`
}

// SendOTP issues a fresh code for a mobile number. The code is delivered
// out of band (logged, and sent by SMS when configured), never in the
// response.
func (ctl *Controller) SendOTP(c *fiber.Ctx) error {
	var reqData sendOTPRequest
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeBadRequest, "Invalid request body!")
	}

	code, _ := ctl.OTP.Issue(reqData.MobileNo)
	log.Printf("OTP for %s: %s", reqData.MobileNo, code)

	if ctl.Cfg.SMSApiURL != "" {
		// Best effort; a delivery failure is logged and never surfaced.
		_ = utils.SendOTPToMobile(ctl.Cfg, reqData.MobileNo, code)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP sent.", fiber.Map{"sent": true})
}

// Register creates a profile after OTP verification and a mobile-number
// uniqueness check. The OTP is consumed only once the profile has
// persisted, so a database failure leaves the code usable.
func (ctl *Controller) Register(c *fiber.Ctx) error {
	var reqData registerRequest
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeBadRequest, "Invalid request body!")
	}

	log.Printf("Registration attempt for mobile: %s", reqData.MobileNo)

	if err := ctl.OTP.Verify(reqData.MobileNo, reqData.OTPCode); err != nil {
		switch {
		case errors.Is(err, otp.ErrRequired):
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeOTPRequired, "OTP required!")
		case errors.Is(err, otp.ErrExpired):
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeOTPExpired, "OTP expired!")
		default:
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeOTPInvalid, "Invalid OTP!")
		}
	}

	// Check if mobile already exists
	var existing models.UserProfile
	if err := ctl.DB.Where("mobile_no = ?", reqData.MobileNo).First(&existing).Error; err == nil {
		return middleware.ErrorResponse(c, fiber.StatusConflict, middleware.CodeMobileExists, "Mobile number is already registered!")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Error checking mobile uniqueness: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeDatabaseError, "Failed to register user!")
	}

	hashed, err := utils.HashPassword(reqData.Password)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeDatabaseError, "Failed to process your request!")
	}

	newUser := models.UserProfile{
		FullName:        reqData.FullName,
		MobileNo:        reqData.MobileNo,
		Password:        hashed,
		Gender:          reqData.Gender,
		Category:        reqData.Category,
		AddressLine:     reqData.AddressLine,
		City:            reqData.City,
		State:           reqData.State,
		Country:         reqData.Country,
		Pincode:         reqData.Pincode,
		Latitude:        reqData.Latitude,
		Longitude:       reqData.Longitude,
		ProfilePhotoURL: reqData.ProfilePhotoURL,
	}

	// An undecodable photo must not abort registration; the profile is
	// created without photo data.
	if reqData.ProfilePhotoData != nil && reqData.ProfilePhotoMimeType != nil {
		imageData, err := base64.StdEncoding.DecodeString(*reqData.ProfilePhotoData)
		if err != nil {
			log.Printf("Failed to process profile photo for mobile %s: %v", reqData.MobileNo, err)
		} else {
			newUser.SetProfilePhoto(imageData, *reqData.ProfilePhotoMimeType)
		}
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&newUser).Error
	})
	if err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeDatabaseError, "Failed to register user!")
	}

	// Codes are single-use; consume only after the profile persisted.
	ctl.OTP.Consume(reqData.MobileNo)

	log.Printf("Registration successful for mobile: %s, user id: %s", newUser.MobileNo, newUser.ID)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", fiber.Map{
		"id":        newUser.ID.String(),
		"mobile_no": newUser.MobileNo,
	})
}

// Login authenticates by mobile number and password. An unknown mobile
// number and a wrong password produce the identical response.
func (ctl *Controller) Login(c *fiber.Ctx) error {
	var reqData loginRequest
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeBadRequest, "Failed to parse request body!")
	}

	var user models.UserProfile
	if err := ctl.DB.Where("mobile_no = ?", reqData.MobileNo).First(&user).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, middleware.CodeInvalidCredentials, "Invalid credentials!")
	}

	if !utils.VerifyPassword(reqData.Password, user.Password) {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, middleware.CodeInvalidCredentials, "Invalid credentials!")
	}

	token, err := middleware.GenerateJWT(ctl.Cfg, user.ID.String(), user.Category)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeDatabaseError, "Failed to generate token")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
		"category":     user.Category,
	})
}
