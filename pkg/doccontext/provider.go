package doccontext

import (
	"context"
	"errors"
)

var ErrContextUnavailable = errors.New("context unavailable")

// ContextUnavailableError reports that no context could be built for a
// document. errors.Is matches ErrContextUnavailable.
type ContextUnavailableError struct {
	DocumentId uint
	Message    string
}

func (e *ContextUnavailableError) Error() string {
	return e.Message
}

func (e *ContextUnavailableError) Is(target error) bool {
	return target == ErrContextUnavailable
}

// Provider supplies a ready-to-send context string for a document.
type Provider interface {
	ProvideContext(ctx context.Context, documentId uint) (string, error)
}

// DocumentProvider builds context from a single stored document.
type DocumentProvider struct {
	server *Server
}

func NewDocumentProvider(server *Server) *DocumentProvider {
	return &DocumentProvider{server: server}
}

func (p *DocumentProvider) ProvideContext(ctx context.Context, documentId uint) (string, error) {
	res, err := p.server.BuildContext(ctx, documentId)
	if err != nil {
		return "", err
	}
	if !res.Found {
		return "", &ContextUnavailableError{DocumentId: documentId, Message: res.Message}
	}
	return Render(res.Block), nil
}
