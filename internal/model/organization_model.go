package model

import "time"

type Organization struct {
	Id        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Organization) TableName() string {
	return "organizations"
}

// Membership links one user to one organization. The composite unique index
// keeps a single row per (user, organization) pair.
type Membership struct {
	Id             uint      `gorm:"primaryKey"`
	UserId         uint      `gorm:"not null;uniqueIndex:idx_membership_user_org"`
	OrganizationId uint      `gorm:"not null;uniqueIndex:idx_membership_user_org;index"`
	Role           string    `gorm:"type:varchar(10);not null;default:'MEMBER';index"`
	JoinedAt       time.Time `gorm:"autoCreateTime;index"`

	User         *User         `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
	Organization *Organization `gorm:"foreignKey:OrganizationId;constraint:OnDelete:CASCADE"`
}

func (Membership) TableName() string {
	return "organization_memberships"
}
