package mapper

import (
	"doc-assistant-be/internal/entity"
	"doc-assistant-be/internal/model"
)

type DocumentMapper struct {
	orgMapper  *OrganizationMapper
	userMapper *UserMapper
}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{
		orgMapper:  NewOrganizationMapper(),
		userMapper: NewUserMapper(),
	}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}
	return &entity.Document{
		Id:             d.Id,
		Title:          d.Title,
		Content:        d.Content,
		OrganizationId: d.OrganizationId,
		CreatedById:    d.CreatedById,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
		Organization:   m.orgMapper.ToEntity(d.Organization),
		CreatedBy:      m.userMapper.ToEntity(d.CreatedBy),
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}
	return &model.Document{
		Id:             d.Id,
		Title:          d.Title,
		Content:        d.Content,
		OrganizationId: d.OrganizationId,
		CreatedById:    d.CreatedById,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func (m *DocumentMapper) ToEntities(docs []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, len(docs))
	for i, d := range docs {
		entities[i] = m.ToEntity(d)
	}
	return entities
}
