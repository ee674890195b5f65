package entity

import "time"

type Document struct {
	Id             uint
	Title          string
	Content        string
	OrganizationId uint
	CreatedById    *uint
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Loaded on demand
	Organization *Organization
	CreatedBy    *User
}
