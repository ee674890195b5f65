package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc-assistant-be/internal/graph"
	"doc-assistant-be/internal/pkg/logger"
	"doc-assistant-be/internal/pkg/serverutils"
	"doc-assistant-be/internal/repository/unitofwork"
	"doc-assistant-be/internal/service"
	"doc-assistant-be/internal/testutil"
	"doc-assistant-be/pkg/answer"
	"doc-assistant-be/pkg/conversation"
	"doc-assistant-be/pkg/doccontext"
	"doc-assistant-be/pkg/events"
	"doc-assistant-be/pkg/tenant/access"
)

type graphqlResponse struct {
	Data   map[string]interface{} `json:"data"`
	Errors []struct {
		Message    string                 `json:"message"`
		Extensions map[string]interface{} `json:"extensions"`
	} `json:"errors"`
}

func newApp(t *testing.T) (*fiber.App, *testutil.Fixtures, *serverutils.TokenIssuer) {
	t.Helper()

	db := testutil.NewDB(t)
	factory := unitofwork.NewRepositoryFactory(db)
	log := logger.NewNopLogger()
	evaluator := access.NewEvaluator()
	issuer := serverutils.NewTokenIssuer("secret", time.Hour)

	answerService := answer.NewService(
		doccontext.NewDocumentProvider(doccontext.NewServer(factory)),
		answer.NewDispatcherFor(&testutil.FakeLLM{Reply: "ok"}),
		log,
	)
	schema, err := graph.NewSchema(graph.NewResolver(
		service.NewAuthService(factory, issuer, log),
		service.NewOrganizationService(factory, evaluator, nil, events.NopPublisher{}, log),
		service.NewDocumentService(factory, evaluator, answerService, conversation.NewLog(factory), events.NopPublisher{}, log),
		log,
	))
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: serverutils.ErrorHandler})
	NewHealthController().RegisterRoutes(app)
	NewGraphQLController(schema, issuer).RegisterRoutes(app)

	return app, testutil.NewFixtures(t, db), issuer
}

func postGraphQL(t *testing.T, app *fiber.App, authorization, query string) (int, graphqlResponse) {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{"query": query})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out graphqlResponse
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func TestHealth(t *testing.T) {
	app, _, _ := newApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"status":"ok"}`, string(raw))
}

func TestGraphQL_AcceptsJWTAndBearerSchemes(t *testing.T) {
	app, fixtures, issuer := newApp(t)
	user := fixtures.User("ada@example.test")
	token, _, err := issuer.Issue(user.Id, user.Email, time.Time{})
	require.NoError(t, err)

	for _, scheme := range []string{"JWT ", "Bearer "} {
		status, out := postGraphQL(t, app, scheme+token, `{ me { email } }`)
		require.Equal(t, http.StatusOK, status)
		require.Empty(t, out.Errors)
		assert.Equal(t, "ada@example.test", out.Data["me"].(map[string]interface{})["email"])
	}
}

func TestGraphQL_AnonymousGetsUnauthorizedCode(t *testing.T) {
	app, _, _ := newApp(t)

	status, out := postGraphQL(t, app, "", `{ documents { id } }`)

	require.Equal(t, http.StatusOK, status)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, graph.CodeUnauthorized, out.Errors[0].Extensions["code"])
}

func TestGraphQL_StaleTokenIsTreatedAsAnonymous(t *testing.T) {
	app, fixtures, _ := newApp(t)
	fixtures.User("ada@example.test")
	expired, _, err := serverutils.NewTokenIssuer("secret", -time.Hour).Issue(1, "ada@example.test", time.Time{})
	require.NoError(t, err)

	for _, header := range []string{"JWT not-a-token", "Bearer " + expired} {
		status, out := postGraphQL(t, app, header, `{ me { email } }`)
		require.Equal(t, http.StatusOK, status, header)
		require.Len(t, out.Errors, 1)
		assert.Equal(t, graph.CodeUnauthorized, out.Errors[0].Extensions["code"])

		status, out = postGraphQL(t, app, header,
			`mutation { tokenAuth(email: "ada@example.test", password: "password123") { token } }`)
		require.Equal(t, http.StatusOK, status, header)
		require.Empty(t, out.Errors)
		assert.NotEmpty(t, out.Data["tokenAuth"].(map[string]interface{})["token"])
	}
}

func TestGraphQL_EmptyQueryIsBadRequest(t *testing.T) {
	app, _, _ := newApp(t)

	status, _ := postGraphQL(t, app, "", "")

	assert.Equal(t, http.StatusBadRequest, status)
}
