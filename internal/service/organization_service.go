package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"doc-assistant-be/internal/dto"
	"doc-assistant-be/internal/entity"
	"doc-assistant-be/internal/pkg/logger"
	"doc-assistant-be/internal/repository/contract"
	"doc-assistant-be/internal/repository/specification"
	"doc-assistant-be/internal/repository/unitofwork"
	"doc-assistant-be/pkg/events"
	"doc-assistant-be/pkg/tenant/access"
)

type IOrganizationService interface {
	List(ctx context.Context, userId uint) ([]*entity.Organization, error)
	Create(ctx context.Context, userId uint, req *dto.CreateOrganizationRequest) (*entity.Organization, error)
	SetActive(ctx context.Context, userId uint, organizationId uint) (*entity.Organization, error)
	Invite(ctx context.Context, userId uint, req *dto.InviteMemberRequest) (*entity.Membership, error)
}

type organizationService struct {
	uowFactory       unitofwork.RepositoryFactory
	evaluator        *access.Evaluator
	publisherService IPublisherService
	eventPublisher   events.Publisher
	logger           logger.ILogger
}

// NewOrganizationService wires the service. publisherService may be nil when
// invitation mail is disabled.
func NewOrganizationService(
	uowFactory unitofwork.RepositoryFactory,
	evaluator *access.Evaluator,
	publisherService IPublisherService,
	eventPublisher events.Publisher,
	logger logger.ILogger,
) IOrganizationService {
	if eventPublisher == nil {
		eventPublisher = events.NopPublisher{}
	}
	return &organizationService{
		uowFactory:       uowFactory,
		evaluator:        evaluator,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           logger,
	}
}

// List returns the organizations the user belongs to, ordered by name.
func (s *organizationService) List(ctx context.Context, userId uint) ([]*entity.Organization, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := loadUser(ctx, uow, userId)
	if err != nil {
		return nil, err
	}
	return uow.OrganizationRepository().FindAll(ctx,
		specification.MemberOf{UserID: user.Id},
		specification.OrderBy{Field: "name"},
	)
}

// Create makes the caller ADMIN of the new organization and switches their
// active organization to it, all in one transaction.
func (s *organizationService) Create(ctx context.Context, userId uint, req *dto.CreateOrganizationRequest) (*entity.Organization, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := loadUser(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := validate(req); err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	org := &entity.Organization{Name: req.Name}
	if err := uow.OrganizationRepository().Create(ctx, org); err != nil {
		if errors.Is(err, contract.ErrDuplicateKey) {
			return nil, &ConflictError{Message: fmt.Sprintf("Organization with name %s already exists.", req.Name)}
		}
		return nil, err
	}

	membership := &entity.Membership{
		UserId:         user.Id,
		OrganizationId: org.Id,
		Role:           entity.MembershipRoleAdmin,
	}
	if _, err := uow.MembershipRepository().Upsert(ctx, membership); err != nil {
		return nil, err
	}

	if err := s.evaluator.SetActiveOrganization(ctx, uow, user, org.Id); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("ORGANIZATION", "Organization created", map[string]interface{}{
		"organization_id": org.Id,
		"user_id":         user.Id,
	})
	s.publishEvent(ctx, events.OrganizationCreated(org.Id, user.Id, org.Name))

	return org, nil
}

func (s *organizationService) SetActive(ctx context.Context, userId uint, organizationId uint) (*entity.Organization, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := loadUser(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := s.evaluator.SetActiveOrganization(ctx, uow, user, organizationId); err != nil {
		s.logDenied("set active organization", user.Id, organizationId, err)
		return nil, err
	}

	org, err := uow.OrganizationRepository().FindOne(ctx, specification.ByID{ID: organizationId})
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, organizationNotFound(organizationId)
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return org, nil
}

// Invite adds the user to the organization or updates the role of an
// existing membership. Only ADMINs of the organization may invite.
func (s *organizationService) Invite(ctx context.Context, userId uint, req *dto.InviteMemberRequest) (*entity.Membership, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	inviter, err := loadUser(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	if _, err := s.evaluator.RequireAdmin(ctx, uow, inviter, req.OrganizationId); err != nil {
		s.logDenied("invite member", inviter.Id, req.OrganizationId, err)
		return nil, err
	}

	org, err := uow.OrganizationRepository().FindOne(ctx, specification.ByID{ID: req.OrganizationId})
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, organizationNotFound(req.OrganizationId)
	}

	req.UserEmail = normalizeEmail(req.UserEmail)
	if err := validate(req); err != nil {
		return nil, err
	}
	invitee, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.UserEmail})
	if err != nil {
		return nil, err
	}
	if invitee == nil {
		return nil, userNotFound(req.UserEmail)
	}

	if req.Role == "" {
		req.Role = string(entity.MembershipRoleMember)
	}
	role, err := entity.ParseMembershipRole(req.Role)
	if err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("Invalid role: %s. Must be one of: %s, %s.", req.Role, entity.MembershipRoleAdmin, entity.MembershipRoleMember)}
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	membership := &entity.Membership{
		UserId:         invitee.Id,
		OrganizationId: org.Id,
		Role:           role,
	}
	created, err := uow.MembershipRepository().Upsert(ctx, membership)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	membership.Organization = org
	membership.User = invitee

	s.logger.Info("ORGANIZATION", "Member invited", map[string]interface{}{
		"organization_id": org.Id,
		"user_id":         invitee.Id,
		"role":            string(role),
		"created":         created,
	})

	s.notifyInvitation(ctx, membership, inviter, created)
	s.publishEvent(ctx, events.MemberInvited(org.Id, invitee.Id, inviter.Id, string(role), created))

	return membership, nil
}

var encodeInvitation = json.Marshal

func (s *organizationService) notifyInvitation(ctx context.Context, membership *entity.Membership, inviter *entity.User, created bool) {
	if s.publisherService == nil {
		return
	}
	invitedBy := inviter.FullName
	if invitedBy == "" {
		invitedBy = inviter.Email
	}
	payload, err := encodeInvitation(dto.MemberInvitedMessage{
		MembershipId:     membership.Id,
		OrganizationId:   membership.OrganizationId,
		OrganizationName: membership.Organization.Name,
		UserEmail:        membership.User.Email,
		Role:             string(membership.Role),
		InvitedBy:        invitedBy,
		Created:          created,
	})
	if err != nil {
		s.logger.Error("ORGANIZATION", "Failed to encode invitation mail", map[string]interface{}{
			"membership_id": membership.Id,
			"error":         err.Error(),
		})
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Warn("ORGANIZATION", "Failed to queue invitation mail", map[string]interface{}{
			"membership_id": membership.Id,
			"error":         err.Error(),
		})
	}
}

func (s *organizationService) publishEvent(ctx context.Context, evt events.Event) {
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("ORGANIZATION", "Failed to publish event", map[string]interface{}{
			"type":  evt.EventType(),
			"error": err.Error(),
		})
	}
}

// logDenied records authorization failures at INFO; anything else is a fault.
func (s *organizationService) logDenied(action string, userId, organizationId uint, err error) {
	details := map[string]interface{}{
		"action":          action,
		"user_id":         userId,
		"organization_id": organizationId,
		"reason":          err.Error(),
	}
	var denied *access.DeniedError
	if errors.As(err, &denied) {
		s.logger.Info("ORGANIZATION", "Access denied", details)
		return
	}
	s.logger.Error("ORGANIZATION", "Authorization check failed", details)
}
