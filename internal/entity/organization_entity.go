package entity

import (
	"fmt"
	"time"
)

type MembershipRole string

const (
	MembershipRoleAdmin  MembershipRole = "ADMIN"
	MembershipRoleMember MembershipRole = "MEMBER"
)

// ParseMembershipRole accepts only the two enumerated roles, case-sensitive.
func ParseMembershipRole(s string) (MembershipRole, error) {
	switch MembershipRole(s) {
	case MembershipRoleAdmin, MembershipRoleMember:
		return MembershipRole(s), nil
	default:
		return "", fmt.Errorf("invalid role: %s. Must be one of: %s, %s", s, MembershipRoleAdmin, MembershipRoleMember)
	}
}

func (r MembershipRole) Valid() bool {
	_, err := ParseMembershipRole(string(r))
	return err == nil
}

type Organization struct {
	Id        uint
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Membership struct {
	Id             uint
	UserId         uint
	OrganizationId uint
	Role           MembershipRole
	JoinedAt       time.Time

	Organization *Organization
	User         *User
}

func (m *Membership) IsAdmin() bool {
	return m.Role == MembershipRoleAdmin
}
