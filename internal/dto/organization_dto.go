package dto

type CreateOrganizationRequest struct {
	Name string `json:"name" validate:"notblank,max=255" msg:"Organization name cannot be empty."`
}

type InviteMemberRequest struct {
	OrganizationId uint   `json:"organization_id" validate:"required"`
	UserEmail      string `json:"user_email" validate:"required,email"`
	Role           string `json:"role"`
}

// MemberInvitedMessage is published on the in-process bus after an invite commits.
type MemberInvitedMessage struct {
	MembershipId     uint   `json:"membership_id"`
	OrganizationId   uint   `json:"organization_id"`
	OrganizationName string `json:"organization_name"`
	UserEmail        string `json:"user_email"`
	Role             string `json:"role"`
	InvitedBy        string `json:"invited_by"`
	Created          bool   `json:"created"`
}
