package graph

import (
	"context"

	"doc-assistant-be/internal/dto"
	"doc-assistant-be/internal/pkg/logger"
	"doc-assistant-be/internal/service"
)

type DocumentResolver struct {
	documentService service.IDocumentService
	logger          logger.ILogger
}

func (r *DocumentResolver) Documents(ctx context.Context) ([]*documentNode, error) {
	docs, err := r.documentService.List(ctx, UserID(ctx))
	if err != nil {
		return nil, failure(r.logger, "documents", err)
	}
	nodes := make([]*documentNode, len(docs))
	for i, d := range docs {
		nodes[i] = newDocumentNode(d)
	}
	return nodes, nil
}

func (r *DocumentResolver) Document(ctx context.Context, args struct{ ID int32 }) (*documentNode, error) {
	id, err := idArg("Document", args.ID)
	if err != nil {
		return nil, failure(r.logger, "document", err)
	}
	doc, err := r.documentService.Get(ctx, UserID(ctx), id)
	if err != nil {
		return nil, failure(r.logger, "document", err)
	}
	return newDocumentNode(doc), nil
}

func (r *DocumentResolver) AiConversations(ctx context.Context, args struct{ DocumentID int32 }) ([]*conversationNode, error) {
	documentId, err := idArg("Document", args.DocumentID)
	if err != nil {
		return nil, failure(r.logger, "aiConversations", err)
	}
	entries, err := r.documentService.Conversations(ctx, UserID(ctx), documentId)
	if err != nil {
		return nil, failure(r.logger, "aiConversations", err)
	}
	nodes := make([]*conversationNode, len(entries))
	for i, e := range entries {
		nodes[i] = &conversationNode{c: e}
	}
	return nodes, nil
}

func (r *DocumentResolver) CreateDocument(ctx context.Context, args struct {
	Title   string
	Content string
}) (*createDocumentPayload, error) {
	doc, err := r.documentService.Create(ctx, UserID(ctx), &dto.CreateDocumentRequest{
		Title:   args.Title,
		Content: args.Content,
	})
	if err != nil {
		return nil, failure(r.logger, "createDocument", err)
	}
	return &createDocumentPayload{doc: doc}, nil
}

func (r *DocumentResolver) AskDocumentAIQuestion(ctx context.Context, args struct {
	DocumentID int32
	Question   string
}) (*askDocumentAIQuestionPayload, error) {
	documentId, err := idArg("Document", args.DocumentID)
	if err != nil {
		return nil, failure(r.logger, "askDocumentAIQuestion", err)
	}
	entry, err := r.documentService.Ask(ctx, UserID(ctx), &dto.AskQuestionRequest{
		DocumentId: documentId,
		Question:   args.Question,
	})
	if err != nil {
		return nil, failure(r.logger, "askDocumentAIQuestion", err)
	}
	return &askDocumentAIQuestionPayload{conversation: entry}, nil
}
