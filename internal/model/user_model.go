package model

import (
	"time"
)

type User struct {
	Id                   uint      `gorm:"primaryKey"`
	Email                string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash         *string   `gorm:"type:varchar(255)"`
	FullName             string    `gorm:"type:varchar(255)"`
	ActiveOrganizationId *uint     `gorm:"index"`
	CreatedAt            time.Time `gorm:"autoCreateTime"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
