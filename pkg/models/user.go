package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User mirrors a record of the users collection. FCMToken is nil until the
// mobile client registers a device.
type User struct {
	ID        string    `gorm:"type:varchar(128);primary_key" json:"id"`
	Name      string    `gorm:"type:varchar(255)" json:"name"`
	Email     string    `gorm:"type:varchar(255);index" json:"email"`
	FCMToken  *string   `gorm:"column:fcm_token;type:text" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// HasToken reports whether the user has a non-blank delivery token.
func (u *User) HasToken() bool {
	return u.FCMToken != nil && strings.TrimSpace(*u.FCMToken) != ""
}
