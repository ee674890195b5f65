// Package conversation stores question and answer exchanges about documents.
package conversation

import (
	"context"
	"fmt"

	"doc-assistant-be/internal/entity"
	"doc-assistant-be/internal/repository/specification"
	"doc-assistant-be/internal/repository/unitofwork"
)

// Log is append-only: it has no update or delete path.
type Log struct {
	repoFactory unitofwork.RepositoryFactory
}

func NewLog(repoFactory unitofwork.RepositoryFactory) *Log {
	return &Log{repoFactory: repoFactory}
}

// Record appends one complete entry in its own transaction. Callers invoke it
// only after the model returned an answer.
func (l *Log) Record(ctx context.Context, entry *entity.Conversation) error {
	if entry.Answer == "" {
		return fmt.Errorf("conversation entry for document %d has no answer", entry.DocumentId)
	}

	uow := l.repoFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ConversationRepository().Create(ctx, entry); err != nil {
		return fmt.Errorf("record conversation: %w", err)
	}

	return uow.Commit()
}

// ListFor returns the document's entries, newest first, with the asking
// user loaded.
func (l *Log) ListFor(ctx context.Context, documentId uint) ([]*entity.Conversation, error) {
	uow := l.repoFactory.NewUnitOfWork(ctx)
	return uow.ConversationRepository().FindAll(ctx,
		specification.ByDocumentID{DocumentID: documentId},
		specification.Newest{},
		specification.Preload{Association: "User"},
	)
}
