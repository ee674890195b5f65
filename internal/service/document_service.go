package service

import (
	"context"
	"errors"
	"strings"

	"doc-assistant-be/internal/dto"
	"doc-assistant-be/internal/entity"
	"doc-assistant-be/internal/pkg/logger"
	"doc-assistant-be/internal/repository/specification"
	"doc-assistant-be/internal/repository/unitofwork"
	"doc-assistant-be/pkg/answer"
	"doc-assistant-be/pkg/conversation"
	"doc-assistant-be/pkg/events"
	"doc-assistant-be/pkg/tenant/access"
)

type IDocumentService interface {
	List(ctx context.Context, userId uint) ([]*entity.Document, error)
	Get(ctx context.Context, userId uint, documentId uint) (*entity.Document, error)
	Create(ctx context.Context, userId uint, req *dto.CreateDocumentRequest) (*entity.Document, error)
	Ask(ctx context.Context, userId uint, req *dto.AskQuestionRequest) (*entity.Conversation, error)
	Conversations(ctx context.Context, userId uint, documentId uint) ([]*entity.Conversation, error)
}

type documentService struct {
	uowFactory      unitofwork.RepositoryFactory
	evaluator       *access.Evaluator
	answerService   *answer.Service
	conversationLog *conversation.Log
	eventPublisher  events.Publisher
	logger          logger.ILogger
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	evaluator *access.Evaluator,
	answerService *answer.Service,
	conversationLog *conversation.Log,
	eventPublisher events.Publisher,
	logger logger.ILogger,
) IDocumentService {
	if eventPublisher == nil {
		eventPublisher = events.NopPublisher{}
	}
	return &documentService{
		uowFactory:      uowFactory,
		evaluator:       evaluator,
		answerService:   answerService,
		conversationLog: conversationLog,
		eventPublisher:  eventPublisher,
		logger:          logger,
	}
}

var documentRelations = []specification.Specification{
	specification.Preload{Association: "Organization"},
	specification.Preload{Association: "CreatedBy"},
}

func withRelations(specs ...specification.Specification) []specification.Specification {
	return append(specs, documentRelations...)
}

// List returns the documents of the caller's active organization, newest first.
func (s *documentService) List(ctx context.Context, userId uint) ([]*entity.Document, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := loadUser(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	orgId, err := s.evaluator.ActiveOrganization(ctx, uow, user)
	if err != nil {
		s.logDenied("list documents", user.Id, 0, err)
		return nil, err
	}

	return uow.DocumentRepository().FindAll(ctx, withRelations(
		specification.ByOrganizationID{OrganizationID: orgId},
		specification.Newest{},
	)...)
}

func (s *documentService) Get(ctx context.Context, userId uint, documentId uint) (*entity.Document, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := loadUser(ctx, uow, userId)
	if err != nil {
		return nil, err
	}
	return s.accessibleDocument(ctx, uow, user, documentId, "view document")
}

// Create stores a document in the caller's active organization. Only ADMINs
// of that organization may create documents.
func (s *documentService) Create(ctx context.Context, userId uint, req *dto.CreateDocumentRequest) (*entity.Document, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := loadUser(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	orgId, err := s.evaluator.ActiveOrganization(ctx, uow, user)
	if err != nil {
		s.logDenied("create document", user.Id, 0, err)
		return nil, err
	}
	if _, err := s.evaluator.RequireAdmin(ctx, uow, user, orgId); err != nil {
		s.logDenied("create document", user.Id, orgId, err)
		return nil, err
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	if err := validate(req); err != nil {
		return nil, err
	}

	doc := &entity.Document{
		Title:          req.Title,
		Content:        req.Content,
		OrganizationId: orgId,
		CreatedById:    &user.Id,
	}
	if err := uow.DocumentRepository().Create(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("DOCUMENT", "Document created", map[string]interface{}{
		"document_id":     doc.Id,
		"organization_id": orgId,
		"user_id":         user.Id,
	})
	s.publishEvent(ctx, events.DocumentCreated(doc.Id, orgId, user.Id, doc.Title))

	created, err := uow.DocumentRepository().FindOne(ctx, withRelations(specification.ByID{ID: doc.Id})...)
	if err != nil || created == nil {
		return doc, nil
	}
	return created, nil
}

// Ask answers a question about a document the caller can read and appends
// the exchange to the conversation log. Nothing is stored when the model
// call fails. The request context's cancellation is detached so a client
// disconnect does not abort an answer that is already being produced.
func (s *documentService) Ask(ctx context.Context, userId uint, req *dto.AskQuestionRequest) (*entity.Conversation, error) {
	ctx = context.WithoutCancel(ctx)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := loadUser(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	doc, err := s.accessibleDocument(ctx, uow, user, req.DocumentId, "ask question")
	if err != nil {
		return nil, err
	}

	req.Question = strings.TrimSpace(req.Question)
	if err := validate(req); err != nil {
		return nil, err
	}

	reply, err := s.answerService.Answer(ctx, doc.Id, req.Question)
	if err != nil {
		return nil, err
	}

	entry := &entity.Conversation{
		DocumentId: doc.Id,
		UserId:     user.Id,
		Question:   req.Question,
		Answer:     reply.Text,
		Provider:   reply.Provider,
		Model:      reply.Model,
	}
	if err := s.conversationLog.Record(ctx, entry); err != nil {
		s.logger.Error("DOCUMENT", "Failed to record conversation", map[string]interface{}{
			"document_id": doc.Id,
			"user_id":     user.Id,
			"error":       err.Error(),
		})
		return nil, err
	}
	entry.Document = doc
	entry.User = user

	s.publishEvent(ctx, events.ConversationRecorded(entry.Id, doc.Id, user.Id, entry.Provider, entry.Model))

	return entry, nil
}

// Conversations lists the document's exchanges, newest first.
func (s *documentService) Conversations(ctx context.Context, userId uint, documentId uint) ([]*entity.Conversation, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := loadUser(ctx, uow, userId)
	if err != nil {
		return nil, err
	}
	doc, err := s.accessibleDocument(ctx, uow, user, documentId, "list conversations")
	if err != nil {
		return nil, err
	}

	entries, err := s.conversationLog.ListFor(ctx, documentId)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		e.Document = doc
	}
	return entries, nil
}

// accessibleDocument loads the document and checks the caller belongs to its
// organization. Existence is checked first.
func (s *documentService) accessibleDocument(ctx context.Context, uow unitofwork.UnitOfWork, user *entity.User, documentId uint, action string) (*entity.Document, error) {
	doc, err := uow.DocumentRepository().FindOne(ctx, withRelations(specification.ByID{ID: documentId})...)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, documentNotFound(documentId)
	}
	if err := s.evaluator.RequireDocumentAccess(ctx, uow, user, doc); err != nil {
		s.logDenied(action, user.Id, doc.OrganizationId, err)
		return nil, err
	}
	return doc, nil
}

func (s *documentService) publishEvent(ctx context.Context, evt events.Event) {
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("DOCUMENT", "Failed to publish event", map[string]interface{}{
			"type":  evt.EventType(),
			"error": err.Error(),
		})
	}
}

func (s *documentService) logDenied(action string, userId, organizationId uint, err error) {
	details := map[string]interface{}{
		"action":          action,
		"user_id":         userId,
		"organization_id": organizationId,
		"reason":          err.Error(),
	}
	var denied *access.DeniedError
	if errors.As(err, &denied) {
		s.logger.Info("DOCUMENT", "Access denied", details)
		return
	}
	s.logger.Error("DOCUMENT", "Authorization check failed", details)
}
