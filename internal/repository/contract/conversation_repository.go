package contract

import (
	"context"

	"doc-assistant-be/internal/entity"
	"doc-assistant-be/internal/repository/specification"
)

// ConversationRepository is append-only: entries are never updated.
type ConversationRepository interface {
	Create(ctx context.Context, conversation *entity.Conversation) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Conversation, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
