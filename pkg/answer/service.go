// Package answer produces model answers to questions about one document.
package answer

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"doc-assistant-be/internal/pkg/logger"
	"doc-assistant-be/pkg/doccontext"
)

const module = "answer"

var tracer = otel.Tracer("doc-assistant-be/pkg/answer")

// ErrEmptyQuestion is returned for a question that is blank after trimming.
var ErrEmptyQuestion = errors.New("Question cannot be empty.")

// Answer is the plain-text reply plus the backend that produced it.
type Answer struct {
	Text     string
	Provider string
	Model    string
}

type Service struct {
	contextProvider doccontext.Provider
	dispatcher      *Dispatcher
	logger          logger.ILogger
}

func NewService(contextProvider doccontext.Provider, dispatcher *Dispatcher, logger logger.ILogger) *Service {
	return &Service{
		contextProvider: contextProvider,
		dispatcher:      dispatcher,
		logger:          logger,
	}
}

func (s *Service) Provider() string {
	return s.dispatcher.Provider()
}

// Answer obtains context for the document, composes the prompt and makes one
// call to the configured backend. Context failures and blank questions are
// returned without calling the backend.
func (s *Service) Answer(ctx context.Context, documentId uint, question string) (Answer, error) {
	if strings.TrimSpace(question) == "" {
		return Answer{}, ErrEmptyQuestion
	}

	ctx, span := tracer.Start(ctx, "answer.Answer")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("document.id", int64(documentId)),
		attribute.String("llm.provider", s.dispatcher.Provider()),
	)

	documentContext, err := s.contextProvider.ProvideContext(ctx, documentId)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "context unavailable")
		if errors.Is(err, doccontext.ErrContextUnavailable) {
			s.logger.Info(module, "Context unavailable", map[string]interface{}{
				"document_id": documentId,
				"reason":      err.Error(),
			})
		} else {
			s.logger.Error(module, "Failed to build document context", map[string]interface{}{
				"document_id": documentId,
				"error":       err.Error(),
			})
		}
		return Answer{}, err
	}

	prompt := ComposePrompt(documentContext, question)

	start := time.Now()
	text, err := s.dispatcher.Send(ctx, prompt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "provider call failed")
		s.logger.Error(module, "Provider call failed", map[string]interface{}{
			"document_id": documentId,
			"provider":    s.dispatcher.Provider(),
			"error":       err.Error(),
		})
		return Answer{}, err
	}

	s.logger.Info(module, "Question answered", map[string]interface{}{
		"document_id": documentId,
		"provider":    s.dispatcher.Provider(),
		"model":       s.dispatcher.Model(),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return Answer{
		Text:     text,
		Provider: s.dispatcher.Provider(),
		Model:    s.dispatcher.Model(),
	}, nil
}
