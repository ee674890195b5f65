package graph

import (
	"context"

	"doc-assistant-be/internal/dto"
	"doc-assistant-be/internal/pkg/logger"
	"doc-assistant-be/internal/service"
)

type OrganizationResolver struct {
	organizationService service.IOrganizationService
	logger              logger.ILogger
}

func (r *OrganizationResolver) Organizations(ctx context.Context) ([]*organizationNode, error) {
	orgs, err := r.organizationService.List(ctx, UserID(ctx))
	if err != nil {
		return nil, failure(r.logger, "organizations", err)
	}
	nodes := make([]*organizationNode, len(orgs))
	for i, o := range orgs {
		nodes[i] = newOrganizationNode(o)
	}
	return nodes, nil
}

func (r *OrganizationResolver) CreateOrganization(ctx context.Context, args struct{ Name string }) (*createOrganizationPayload, error) {
	org, err := r.organizationService.Create(ctx, UserID(ctx), &dto.CreateOrganizationRequest{Name: args.Name})
	if err != nil {
		return nil, failure(r.logger, "createOrganization", err)
	}
	return &createOrganizationPayload{org: org}, nil
}

func (r *OrganizationResolver) SetActiveOrganization(ctx context.Context, args struct{ OrganizationID int32 }) (*setActiveOrganizationPayload, error) {
	organizationId, err := idArg("Organization", args.OrganizationID)
	if err != nil {
		return nil, failure(r.logger, "setActiveOrganization", err)
	}
	org, err := r.organizationService.SetActive(ctx, UserID(ctx), organizationId)
	if err != nil {
		return nil, failure(r.logger, "setActiveOrganization", err)
	}
	return &setActiveOrganizationPayload{org: org}, nil
}

func (r *OrganizationResolver) InviteUserToOrganization(ctx context.Context, args struct {
	OrganizationID int32
	UserEmail      string
	Role           string
}) (*inviteUserPayload, error) {
	organizationId, err := idArg("Organization", args.OrganizationID)
	if err != nil {
		return nil, failure(r.logger, "inviteUserToOrganization", err)
	}
	membership, err := r.organizationService.Invite(ctx, UserID(ctx), &dto.InviteMemberRequest{
		OrganizationId: organizationId,
		UserEmail:      args.UserEmail,
		Role:           args.Role,
	})
	if err != nil {
		return nil, failure(r.logger, "inviteUserToOrganization", err)
	}
	return &inviteUserPayload{membership: membership}, nil
}
