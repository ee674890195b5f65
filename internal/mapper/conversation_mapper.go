package mapper

import (
	"doc-assistant-be/internal/entity"
	"doc-assistant-be/internal/model"
)

type ConversationMapper struct {
	documentMapper *DocumentMapper
	userMapper     *UserMapper
}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{
		documentMapper: NewDocumentMapper(),
		userMapper:     NewUserMapper(),
	}
}

func (m *ConversationMapper) ToEntity(c *model.Conversation) *entity.Conversation {
	if c == nil {
		return nil
	}
	return &entity.Conversation{
		Id:         c.Id,
		DocumentId: c.DocumentId,
		UserId:     c.UserId,
		Question:   c.Question,
		Answer:     c.Answer,
		Provider:   c.Provider,
		Model:      c.Model,
		CreatedAt:  c.CreatedAt,
		Document:   m.documentMapper.ToEntity(c.Document),
		User:       m.userMapper.ToEntity(c.User),
	}
}

func (m *ConversationMapper) ToModel(c *entity.Conversation) *model.Conversation {
	if c == nil {
		return nil
	}
	return &model.Conversation{
		Id:         c.Id,
		DocumentId: c.DocumentId,
		UserId:     c.UserId,
		Question:   c.Question,
		Answer:     c.Answer,
		Provider:   c.Provider,
		Model:      c.Model,
		CreatedAt:  c.CreatedAt,
	}
}

func (m *ConversationMapper) ToEntities(conversations []*model.Conversation) []*entity.Conversation {
	entities := make([]*entity.Conversation, len(conversations))
	for i, c := range conversations {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
