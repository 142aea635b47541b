package models

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile categories. Category is fixed at registration and embedded in
// the issued token.
const (
	CategoryVendor        = "Vendor"
	CategoryWomenMerchant = "Women Merchant"
	CategoryCustomer      = "Customer"
)

// IsValidCategory reports whether category is one of the fixed set.
func IsValidCategory(category string) bool {
	switch category {
	case CategoryVendor, CategoryWomenMerchant, CategoryCustomer:
		return true
	}
	return false
}

type UserProfile struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName             string    `gorm:"size:255;not null" json:"full_name"`
	MobileNo             string    `gorm:"size:20;uniqueIndex;not null" json:"mobile_no"`
	Password             string    `gorm:"type:text;not null" json:"-"`
	Gender               *string   `gorm:"size:20" json:"gender"`
	Category             string    `gorm:"size:50;not null" json:"category"`
	AddressLine          *string   `gorm:"type:text" json:"address_line"`
	City                 *string   `gorm:"size:100" json:"city"`
	State                *string   `gorm:"size:100" json:"state"`
	Country              *string   `gorm:"size:100" json:"country"`
	Pincode              *string   `gorm:"size:20" json:"pincode"`
	Latitude             *float64  `gorm:"type:numeric(10,7)" json:"latitude"`
	Longitude            *float64  `gorm:"type:numeric(10,7)" json:"longitude"`
	ProfilePhotoURL      *string   `gorm:"type:text" json:"profile_photo_url"`
	ProfilePhotoData     *string   `gorm:"type:text" json:"profile_photo_data"`
	ProfilePhotoMimeType *string   `gorm:"size:50" json:"profile_photo_mime_type"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// BeforeCreate assigns the immutable profile identifier.
func (u *UserProfile) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// SetProfilePhoto stores the raw image bytes base64-encoded alongside the
// MIME type and derives the display URL as a data-URI.
func (u *UserProfile) SetProfilePhoto(imageData []byte, mimeType string) {
	encoded := base64.StdEncoding.EncodeToString(imageData)
	url := fmt.Sprintf("data:%s;base64,%s", mimeType, encoded)
	u.ProfilePhotoData = &encoded
	u.ProfilePhotoMimeType = &mimeType
	u.ProfilePhotoURL = &url
}
