package specification

import (
	"gorm.io/gorm"
)

type ByOrganizationID struct {
	OrganizationID uint
}

func (s ByOrganizationID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("organization_id = ?", s.OrganizationID)
}

// MemberOf restricts organizations to those the user holds a membership in.
type MemberOf struct {
	UserID uint
}

func (s MemberOf) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(
		"id IN (?)",
		db.Session(&gorm.Session{NewDB: true}).
			Table("organization_memberships").
			Select("organization_id").
			Where("user_id = ?", s.UserID),
	)
}
