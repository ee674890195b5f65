package contract

import (
	"context"

	"doc-assistant-be/internal/entity"
	"doc-assistant-be/internal/repository/specification"
)

type OrganizationRepository interface {
	Create(ctx context.Context, org *entity.Organization) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Organization, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Organization, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type MembershipRepository interface {
	// Upsert creates the membership or, when the (user, organization) pair
	// already exists, updates its role. The returned bool reports creation.
	Upsert(ctx context.Context, membership *entity.Membership) (bool, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Membership, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Membership, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
