package model

import "time"

type Document struct {
	Id             uint      `gorm:"primaryKey"`
	Title          string    `gorm:"type:varchar(255);not null;index"`
	Content        string    `gorm:"type:text;not null"`
	OrganizationId uint      `gorm:"not null;index:idx_document_org_created"`
	CreatedById    *uint     `gorm:"index"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index:idx_document_org_created"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`

	Organization *Organization `gorm:"foreignKey:OrganizationId;constraint:OnDelete:CASCADE"`
	CreatedBy    *User         `gorm:"foreignKey:CreatedById;constraint:OnDelete:SET NULL"`
}

func (Document) TableName() string {
	return "documents"
}
