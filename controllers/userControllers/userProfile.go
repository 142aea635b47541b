package userController

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"vendorhub/config"
	"vendorhub/middleware"
	"vendorhub/models"
)

// Controller bundles the dependencies of the user endpoints.
type Controller struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func New(db *gorm.DB, cfg *config.Config) *Controller {
	return &Controller{DB: db, Cfg: cfg}
}

// updateProfileRequest uses pointers throughout so an omitted field can
// be told apart from an explicitly supplied one. Only supplied fields
// overwrite stored values.
type updateProfileRequest struct {
	FullName             *string `json:"full_name"`
	MobileNo             *string `json:"mobile_no"`
	Gender               *string `json:"gender"`
	AddressLine          *string `json:"address_line"`
	City                 *string `json:"city"`
	State                *string `json:"state"`
	Country              *string `json:"country"`
	Pincode              *string `json:"pincode"`
	ProfilePhotoData     *string `json:"profile_photo_data"`
	ProfilePhotoMimeType *string `json:"profile_photo_mime_type"`
}

func profileResponse(user *models.UserProfile) fiber.Map {
	return fiber.Map{
		"id":                      user.ID.String(),
		"full_name":               user.FullName,
		"mobile_no":               user.MobileNo,
		"gender":                  user.Gender,
		"category":                user.Category,
		"address_line":            user.AddressLine,
		"city":                    user.City,
		"state":                   user.State,
		"country":                 user.Country,
		"pincode":                 user.Pincode,
		"latitude":                user.Latitude,
		"longitude":               user.Longitude,
		"profile_photo_url":       user.ProfilePhotoURL,
		"profile_photo_data":      user.ProfilePhotoData,
		"profile_photo_mime_type": user.ProfilePhotoMimeType,
	}
}

func (ctl *Controller) currentUser(c *fiber.Ctx) (*models.UserProfile, error) {
	sub, _ := c.Locals("userId").(string)
	uid, err := uuid.Parse(sub)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}

	var user models.UserProfile
	if err := ctl.DB.Where("id = ?", uid).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Me returns the authenticated caller's profile.
func (ctl *Controller) Me(c *fiber.Ctx) error {
	user, err := ctl.currentUser(c)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.CodeNotFound, "Profile not found!")
		}
		log.Printf("Error loading profile: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeDatabaseError, "Failed to load profile!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched.", profileResponse(user))
}

// UpdateProfile applies a partial update to the caller's profile. Fields
// absent from the payload are left untouched. Supplying photo data
// replaces the stored bytes, the MIME type and the derived display URL
// together, within the same transaction as the rest of the update.
func (ctl *Controller) UpdateProfile(c *fiber.Ctx) error {
	var reqData updateProfileRequest
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeBadRequest, "Invalid request body!")
	}

	user, err := ctl.currentUser(c)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.CodeNotFound, "Profile not found!")
		}
		log.Printf("Error loading profile: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeDatabaseError, "Failed to load profile!")
	}

	if reqData.FullName != nil {
		user.FullName = *reqData.FullName
	}
	if reqData.MobileNo != nil {
		// The mobile number doubles as the login key; changing it here is
		// an inherited contract, see DESIGN.md.
		user.MobileNo = *reqData.MobileNo
	}
	if reqData.Gender != nil {
		user.Gender = reqData.Gender
	}
	if reqData.AddressLine != nil {
		user.AddressLine = reqData.AddressLine
	}
	if reqData.City != nil {
		user.City = reqData.City
	}
	if reqData.State != nil {
		user.State = reqData.State
	}
	if reqData.Country != nil {
		user.Country = reqData.Country
	}
	if reqData.Pincode != nil {
		user.Pincode = reqData.Pincode
	}

	if reqData.ProfilePhotoData != nil && *reqData.ProfilePhotoData != "" {
		mimeType := "image/jpeg"
		if reqData.ProfilePhotoMimeType != nil && *reqData.ProfilePhotoMimeType != "" {
			mimeType = *reqData.ProfilePhotoMimeType
		}
		url := fmt.Sprintf("data:%s;base64,%s", mimeType, *reqData.ProfilePhotoData)
		user.ProfilePhotoData = reqData.ProfilePhotoData
		user.ProfilePhotoMimeType = &mimeType
		user.ProfilePhotoURL = &url
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Save(user).Error
	})
	if err != nil {
		log.Printf("Error updating profile: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeDatabaseError, "Failed to update profile!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated.", profileResponse(user))
}
