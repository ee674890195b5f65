// FILE: internal/entity/user_entity.go
package entity

import (
	"time"
)

type User struct {
	Id           uint
	Email        string
	PasswordHash *string
	FullName     string
	// ActiveOrganizationId is the implicit tenant for operations that do not
	// name an organization. Not enforced as a foreign key.
	ActiveOrganizationId *uint
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (u *User) HasActiveOrganization() bool {
	return u.ActiveOrganizationId != nil && *u.ActiveOrganizationId != 0
}
