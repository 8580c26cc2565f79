package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// DbConnection stores the target database credentials of a user. The password
// is write-only from the API's perspective and is never serialized back out.
type DbConnection struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"index;not null" json:"user_id"`
	Host      string         `gorm:"type:varchar(255)" json:"host" validate:"required,min=1,max=255"`
	Port      int            `json:"port" validate:"required,min=1,max=65535"`
	Database  string         `gorm:"type:varchar(150)" json:"database" validate:"required,min=1,max=150"`
	Username  string         `gorm:"type:varchar(150)" json:"username" validate:"required,min=1,max=150"`
	Password  string         `gorm:"type:text" json:"-" validate:"required"`
	SSL       bool           `gorm:"default:false" json:"ssl"`
	IsActive  bool           `gorm:"default:false;index" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *DbConnection) Validate() error {
	v := validator.New()

	return v.Struct(c)
}
