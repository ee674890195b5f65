package unitofwork

import (
	"context"

	"doc-assistant-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	OrganizationRepository() contract.OrganizationRepository
	MembershipRepository() contract.MembershipRepository
	DocumentRepository() contract.DocumentRepository
	ConversationRepository() contract.ConversationRepository
}
