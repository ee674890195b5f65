// Package access answers whether a user may act inside an organization.
// Every tenant-scoped operation funnels through RequireMember, RequireAdmin
// or ActiveOrganization.
package access

import (
	"context"
	"fmt"

	"doc-assistant-be/internal/entity"
	"doc-assistant-be/internal/repository/specification"
	"doc-assistant-be/internal/repository/unitofwork"
)

// Evaluator reads membership state through the caller's unit of work.
type Evaluator struct{}

func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

func (e *Evaluator) membership(ctx context.Context, uow unitofwork.UnitOfWork, userId, orgId uint) (*entity.Membership, error) {
	m, err := uow.MembershipRepository().FindOne(ctx,
		specification.ByUserID{UserID: userId},
		specification.ByOrganizationID{OrganizationID: orgId},
	)
	if err != nil {
		return nil, fmt.Errorf("load membership: %w", err)
	}
	return m, nil
}

// organizationName falls back to "Organization <id>" when the row is gone.
func (e *Evaluator) organizationName(ctx context.Context, uow unitofwork.UnitOfWork, orgId uint) string {
	org, err := uow.OrganizationRepository().FindOne(ctx, specification.ByID{ID: orgId})
	if err != nil || org == nil {
		return fmt.Sprintf("Organization %d", orgId)
	}
	return org.Name
}

func (e *Evaluator) IsMember(ctx context.Context, uow unitofwork.UnitOfWork, user *entity.User, orgId uint) (bool, error) {
	m, err := e.membership(ctx, uow, user.Id, orgId)
	if err != nil {
		return false, err
	}
	return m != nil, nil
}

// RoleOf returns the user's role in the organization; ok is false when the
// user holds no membership there.
func (e *Evaluator) RoleOf(ctx context.Context, uow unitofwork.UnitOfWork, user *entity.User, orgId uint) (role entity.MembershipRole, ok bool, err error) {
	m, err := e.membership(ctx, uow, user.Id, orgId)
	if err != nil || m == nil {
		return "", false, err
	}
	return m.Role, true, nil
}

func (e *Evaluator) RequireMember(ctx context.Context, uow unitofwork.UnitOfWork, user *entity.User, orgId uint) (*entity.Membership, error) {
	m, err := e.membership(ctx, uow, user.Id, orgId)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, notAMember(orgId, e.organizationName(ctx, uow, orgId))
	}
	return m, nil
}

func (e *Evaluator) RequireAdmin(ctx context.Context, uow unitofwork.UnitOfWork, user *entity.User, orgId uint) (*entity.Membership, error) {
	m, err := e.RequireMember(ctx, uow, user, orgId)
	if err != nil {
		return nil, err
	}
	if !m.IsAdmin() {
		return nil, insufficientRole(orgId, e.organizationName(ctx, uow, orgId), m.Role)
	}
	return m, nil
}

// RequireDocumentAccess grants read access to any member of the document's organization.
func (e *Evaluator) RequireDocumentAccess(ctx context.Context, uow unitofwork.UnitOfWork, user *entity.User, doc *entity.Document) error {
	_, err := e.RequireMember(ctx, uow, user, doc.OrganizationId)
	return err
}

// ActiveOrganization resolves the user's implicit tenant. A membership revoked
// after the organization was made active yields ErrNotAMember.
func (e *Evaluator) ActiveOrganization(ctx context.Context, uow unitofwork.UnitOfWork, user *entity.User) (uint, error) {
	if !user.HasActiveOrganization() {
		return 0, noActiveOrganization()
	}
	orgId := *user.ActiveOrganizationId
	if _, err := e.RequireMember(ctx, uow, user, orgId); err != nil {
		return 0, err
	}
	return orgId, nil
}

// SetActiveOrganization checks membership and stores the new active
// organization. Run it on a unit of work with an open transaction so both
// steps commit together.
func (e *Evaluator) SetActiveOrganization(ctx context.Context, uow unitofwork.UnitOfWork, user *entity.User, orgId uint) error {
	if _, err := e.RequireMember(ctx, uow, user, orgId); err != nil {
		return err
	}
	if err := uow.UserRepository().UpdateActiveOrganization(ctx, user.Id, &orgId); err != nil {
		return fmt.Errorf("update active organization: %w", err)
	}
	user.ActiveOrganizationId = &orgId
	return nil
}
