package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"doc-assistant-be/internal/pkg/logger"
	"doc-assistant-be/internal/pkg/serverutils"
	"doc-assistant-be/internal/repository/unitofwork"
	"doc-assistant-be/internal/testutil"
	"doc-assistant-be/pkg/answer"
	"doc-assistant-be/pkg/conversation"
	"doc-assistant-be/pkg/doccontext"
	"doc-assistant-be/pkg/events"
	"doc-assistant-be/pkg/tenant/access"

	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, evt events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

func (p *recordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, e := range p.events {
		types[i] = e.EventType()
	}
	return types
}

type recordingQueue struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (q *recordingQueue) Publish(ctx context.Context, payload []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.payloads = append(q.payloads, payload)
	return nil
}

type harness struct {
	db        *gorm.DB
	fixtures  *testutil.Fixtures
	llm       *testutil.FakeLLM
	events    *recordingPublisher
	queue     *recordingQueue
	issuer    *serverutils.TokenIssuer
	auth      IAuthService
	orgs      IOrganizationService
	documents IDocumentService
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db := testutil.NewDB(t)
	factory := unitofwork.NewRepositoryFactory(db)
	log := logger.NewNopLogger()
	evaluator := access.NewEvaluator()

	h := &harness{
		db:       db,
		fixtures: testutil.NewFixtures(t, db),
		llm:      &testutil.FakeLLM{Reply: "The deadline is Friday."},
		events:   &recordingPublisher{},
		queue:    &recordingQueue{},
		issuer:   serverutils.NewTokenIssuer("test-secret", time.Hour),
	}

	provider := doccontext.NewDocumentProvider(doccontext.NewServer(factory))
	answerService := answer.NewService(provider, answer.NewDispatcherFor(h.llm), log)

	h.auth = NewAuthService(factory, h.issuer, log)
	h.orgs = NewOrganizationService(factory, evaluator, h.queue, h.events, log)
	h.documents = NewDocumentService(factory, evaluator, answerService, conversation.NewLog(factory), h.events, log)
	return h
}
