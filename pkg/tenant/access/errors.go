package access

import (
	"errors"
	"fmt"

	"doc-assistant-be/internal/entity"
)

var (
	ErrNotAMember           = errors.New("user is not a member of the organization")
	ErrInsufficientRole     = errors.New("user role is insufficient for this action")
	ErrNoActiveOrganization = errors.New("no active organization selected")
)

// DeniedError carries the user-facing message for an authorization failure.
// errors.Is matches it against the sentinel in Kind.
type DeniedError struct {
	Kind           error
	OrganizationId uint
	Message        string
}

func (e *DeniedError) Error() string {
	return e.Message
}

func (e *DeniedError) Unwrap() error {
	return e.Kind
}

func notAMember(orgId uint, orgName string) error {
	return &DeniedError{
		Kind:           ErrNotAMember,
		OrganizationId: orgId,
		Message:        fmt.Sprintf("User is not a member of organization \"%s\". Access denied.", orgName),
	}
}

func insufficientRole(orgId uint, orgName string, current entity.MembershipRole) error {
	return &DeniedError{
		Kind:           ErrInsufficientRole,
		OrganizationId: orgId,
		Message: fmt.Sprintf("User must be an %s in organization \"%s\" to perform this action. Current role: %s.",
			entity.MembershipRoleAdmin, orgName, current),
	}
}

func noActiveOrganization() error {
	return &DeniedError{
		Kind:    ErrNoActiveOrganization,
		Message: "No active organization selected. Please select an organization first.",
	}
}
