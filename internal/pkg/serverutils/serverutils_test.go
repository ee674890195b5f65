package serverutils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	token, issued, err := issuer.Issue(42, "a@b.test", time.Time{})
	require.NoError(t, err)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserId)
	assert.Equal(t, "a@b.test", claims.Email)
	assert.Equal(t, issued.ExpiresAt.Unix(), claims.ExpiresAt.Unix())
	assert.Equal(t, issued.OrigIat.Unix(), claims.OrigIat.Unix())
}

func TestTokenIssuer_RejectsExpiredAndForeign(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	token, _, err := issuer.Issue(1, "a@b.test", time.Time{})
	require.NoError(t, err)

	other := NewTokenIssuer("other-secret", time.Hour)
	_, err = other.Parse(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))

	issuer.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = issuer.Parse(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestBearerToken(t *testing.T) {
	tok, ok := BearerToken("Bearer abc")
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)

	tok, ok = BearerToken("JWT xyz")
	assert.True(t, ok)
	assert.Equal(t, "xyz", tok)

	_, ok = BearerToken("Basic abc")
	assert.False(t, ok)
	_, ok = BearerToken("Bearer ")
	assert.False(t, ok)
}

func TestOptionalJwtMiddleware(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	app := fiber.New()
	app.Get("/", OptionalJwtMiddleware(issuer), func(c *fiber.Ctx) error {
		id, ok := UserID(c)
		return c.JSON(fiber.Map{"id": id, "ok": ok})
	})

	call := func(header string) (int, map[string]interface{}) {
		req := httptest.NewRequest("GET", "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		var out map[string]interface{}
		_ = json.Unmarshal(body, &out)
		return resp.StatusCode, out
	}

	status, body := call("")
	assert.Equal(t, 200, status)
	assert.Equal(t, false, body["ok"])

	token, _, err := issuer.Issue(9, "a@b.test", time.Time{})
	require.NoError(t, err)
	status, body = call("Bearer " + token)
	assert.Equal(t, 200, status)
	assert.Equal(t, float64(9), body["id"])

	for _, header := range []string{"Bearer not-a-token", "Token " + token} {
		status, body = call(header)
		assert.Equal(t, 200, status, header)
		assert.Equal(t, false, body["ok"], header)
	}

	expired, _, err := NewTokenIssuer("secret", -time.Hour).Issue(9, "a@b.test", time.Time{})
	require.NoError(t, err)
	status, body = call("JWT " + expired)
	assert.Equal(t, 200, status)
	assert.Equal(t, false, body["ok"])
}

type sampleRequest struct {
	Title string `json:"title" validate:"notblank" msg:"Document title cannot be empty."`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"oneof=ADMIN MEMBER"`
}

func TestValidateRequest(t *testing.T) {
	require.NoError(t, ValidateRequest(&sampleRequest{Title: "t", Email: "a@b.test", Role: "ADMIN"}))

	err := ValidateRequest(&sampleRequest{Title: "   ", Email: "nope", Role: "OWNER"})
	require.Error(t, err)
	var ve ValidationErrors
	require.True(t, errors.As(err, &ve))
	require.Len(t, ve, 3)
	assert.Equal(t, "title", ve[0].Field)
	assert.Equal(t, "Document title cannot be empty.", ve[0].Message)
	assert.Equal(t, "email must be a valid email address.", ve[1].Message)
	assert.Equal(t, "role must be one of: ADMIN, MEMBER.", ve[2].Message)
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("db down") })

	resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
	var body Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, "INTERNAL", body.Code)
	assert.Equal(t, "Internal server error", body.Message)
}
