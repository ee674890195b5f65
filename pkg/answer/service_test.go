package answer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc-assistant-be/internal/pkg/logger"
	"doc-assistant-be/internal/repository/unitofwork"
	"doc-assistant-be/internal/testutil"
	"doc-assistant-be/pkg/doccontext"
	"doc-assistant-be/pkg/llm"
)

type stubContext struct {
	calls int
	text  string
	err   error
}

func (s *stubContext) ProvideContext(ctx context.Context, documentId uint) (string, error) {
	s.calls++
	return s.text, s.err
}

func TestComposePrompt(t *testing.T) {
	got := ComposePrompt("Document Context:\nTitle: T", "What is the deadline?")

	want := "Document Context:\nTitle: T\n\n" +
		"User Question: What is the deadline?\n\n" +
		"Please answer the user's question based on the document context provided above.\n" +
		"Be concise, accurate, and helpful. If the answer cannot be determined from the\n" +
		"document context, please state that clearly."
	assert.Equal(t, want, got)
}

func TestAnswer_DispatchesComposedPrompt(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.NewFixtures(t, db)
	org := f.Organization("Acme")
	doc := f.Document(org.Id, nil, "Roadmap", "The deadline is Friday.")

	backend := &testutil.FakeLLM{Reply: "Friday."}
	provider := doccontext.NewDocumentProvider(doccontext.NewServer(unitofwork.NewRepositoryFactory(db)))
	svc := NewService(provider, NewDispatcherFor(backend), logger.NewNopLogger())

	got, err := svc.Answer(context.Background(), doc.Id, "What is the deadline?")
	require.NoError(t, err)
	assert.Equal(t, Answer{Text: "Friday.", Provider: "fake", Model: "fake-model"}, got)

	prompts := backend.Prompts()
	require.Len(t, prompts, 1)
	assert.True(t, strings.HasPrefix(prompts[0], "Document Context:\nTitle: Roadmap\n"))
	assert.Contains(t, prompts[0], "The deadline is Friday.")
	assert.Contains(t, prompts[0], "User Question: What is the deadline?")
}

func TestAnswer_MissingDocumentSkipsProvider(t *testing.T) {
	db := testutil.NewDB(t)
	backend := &testutil.FakeLLM{Reply: "unused"}
	provider := doccontext.NewDocumentProvider(doccontext.NewServer(unitofwork.NewRepositoryFactory(db)))
	svc := NewService(provider, NewDispatcherFor(backend), logger.NewNopLogger())

	_, err := svc.Answer(context.Background(), 999, "anything")
	require.Error(t, err)
	assert.True(t, errors.Is(err, doccontext.ErrContextUnavailable))
	assert.Empty(t, backend.Prompts())
}

func TestAnswer_UnsupportedProviderMakesNoCall(t *testing.T) {
	d, err := NewDispatcher(llm.Config{Provider: "mistral", APIKey: "key"})
	require.NoError(t, err)
	require.Error(t, d.Err())

	ctxStub := &stubContext{text: "Document Context:\n..."}
	svc := NewService(ctxStub, d, logger.NewNopLogger())

	for i := 0; i < 2; i++ {
		_, err = svc.Answer(context.Background(), 7, "What is the deadline?")
		require.Error(t, err)
		assert.True(t, errors.Is(err, llm.ErrUnsupportedProvider))
	}
	assert.Equal(t, "mistral", svc.Provider())
}

func TestAnswer_ProviderErrorPropagates(t *testing.T) {
	backend := &testutil.FakeLLM{Err: llm.NewProviderError("fake", errors.New("connection reset"))}
	svc := NewService(&stubContext{text: "ctx"}, NewDispatcherFor(backend), logger.NewNopLogger())

	_, err := svc.Answer(context.Background(), 7, "q")
	require.Error(t, err)
	assert.True(t, errors.Is(err, llm.ErrProvider))
	assert.Contains(t, err.Error(), "connection reset")
}

func TestAnswer_BlankQuestionSkipsContextAndProvider(t *testing.T) {
	backend := &testutil.FakeLLM{Reply: "unused"}
	ctxStub := &stubContext{text: "ctx"}
	svc := NewService(ctxStub, NewDispatcherFor(backend), logger.NewNopLogger())

	for _, q := range []string{"", "   ", "\n\t"} {
		_, err := svc.Answer(context.Background(), 7, q)
		assert.ErrorIs(t, err, ErrEmptyQuestion)
	}
	assert.Zero(t, ctxStub.calls)
	assert.Empty(t, backend.Prompts())
}

func TestNewDispatcher_MissingKeyIsFatal(t *testing.T) {
	_, err := NewDispatcher(llm.Config{Provider: llm.ProviderOpenAI})
	assert.Error(t, err)
}
