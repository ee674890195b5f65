package mapper

import (
	"doc-assistant-be/internal/entity"
	"doc-assistant-be/internal/model"
)

type OrganizationMapper struct{}

func NewOrganizationMapper() *OrganizationMapper {
	return &OrganizationMapper{}
}

func (m *OrganizationMapper) ToEntity(o *model.Organization) *entity.Organization {
	if o == nil {
		return nil
	}
	return &entity.Organization{
		Id:        o.Id,
		Name:      o.Name,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func (m *OrganizationMapper) ToModel(o *entity.Organization) *model.Organization {
	if o == nil {
		return nil
	}
	return &model.Organization{
		Id:        o.Id,
		Name:      o.Name,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func (m *OrganizationMapper) ToEntities(orgs []*model.Organization) []*entity.Organization {
	entities := make([]*entity.Organization, len(orgs))
	for i, o := range orgs {
		entities[i] = m.ToEntity(o)
	}
	return entities
}

func (m *OrganizationMapper) MembershipToEntity(ms *model.Membership) *entity.Membership {
	if ms == nil {
		return nil
	}
	return &entity.Membership{
		Id:             ms.Id,
		UserId:         ms.UserId,
		OrganizationId: ms.OrganizationId,
		Role:           entity.MembershipRole(ms.Role),
		JoinedAt:       ms.JoinedAt,
		Organization:   m.ToEntity(ms.Organization),
		User:           NewUserMapper().ToEntity(ms.User),
	}
}

// MembershipToModel leaves the association empty so gorm never upserts the
// organization row through a membership write.
func (m *OrganizationMapper) MembershipToModel(ms *entity.Membership) *model.Membership {
	if ms == nil {
		return nil
	}
	return &model.Membership{
		Id:             ms.Id,
		UserId:         ms.UserId,
		OrganizationId: ms.OrganizationId,
		Role:           string(ms.Role),
		JoinedAt:       ms.JoinedAt,
	}
}

func (m *OrganizationMapper) MembershipsToEntities(memberships []*model.Membership) []*entity.Membership {
	entities := make([]*entity.Membership, len(memberships))
	for i, ms := range memberships {
		entities[i] = m.MembershipToEntity(ms)
	}
	return entities
}
