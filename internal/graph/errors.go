package graph

import (
	"errors"
	"fmt"

	"doc-assistant-be/internal/pkg/logger"
	"doc-assistant-be/internal/service"
	"doc-assistant-be/pkg/answer"
	"doc-assistant-be/pkg/doccontext"
	"doc-assistant-be/pkg/llm"
	"doc-assistant-be/pkg/tenant/access"
)

const (
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeAuthenticationFailed = "AUTHENTICATION_FAILED"
	CodePermissionDenied     = "PERMISSION_DENIED"
	CodeNotFound             = "NOT_FOUND"
	CodeUserNotFound         = "USER_NOT_FOUND"
	CodeInvalidInput         = "INVALID_INPUT"
	CodeConflict             = "CONFLICT"
	CodeContextUnavailable   = "CONTEXT_UNAVAILABLE"
	CodeLLMError             = "LLM_ERROR"
	CodeLLMUnavailable       = "LLM_UNAVAILABLE"
	CodeInternal             = "INTERNAL"
)

// Error is a resolver error carrying extensions.code.
type Error struct {
	Code    string
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.Code}
}

func newError(code string, cause error, message string) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// idArg converts a GraphQL Int id. Ids start at 1, so anything lower cannot
// name a row and is reported as not found before it wraps around as uint.
func idArg(kind string, v int32) (uint, error) {
	if v <= 0 {
		return 0, newError(CodeNotFound, nil, fmt.Sprintf("%s %d not found.", kind, v))
	}
	return uint(v), nil
}

// classify maps domain errors to client-facing codes. Anything unrecognised
// becomes INTERNAL with a generic message.
func classify(err error) *Error {
	var (
		denied      *access.DeniedError
		notFound    *service.NotFoundError
		validation  *service.ValidationError
		conflict    *service.ConflictError
		unavailable *doccontext.ContextUnavailableError
		gerr        *Error
	)

	switch {
	case errors.As(err, &gerr):
		return gerr
	case errors.Is(err, service.ErrUnauthenticated):
		return newError(CodeUnauthorized, err, service.ErrUnauthenticated.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrRefreshExpired):
		return newError(CodeAuthenticationFailed, err, err.Error())
	case errors.As(err, &denied):
		return newError(CodePermissionDenied, err, denied.Message)
	case errors.As(err, &notFound):
		if errors.Is(err, service.ErrUserNotFound) {
			return newError(CodeUserNotFound, err, notFound.Message)
		}
		return newError(CodeNotFound, err, notFound.Message)
	case errors.As(err, &validation):
		return newError(CodeInvalidInput, err, validation.Message)
	case errors.Is(err, answer.ErrEmptyQuestion):
		return newError(CodeInvalidInput, err, err.Error())
	case errors.As(err, &conflict):
		return newError(CodeConflict, err, conflict.Message)
	case errors.As(err, &unavailable):
		return newError(CodeContextUnavailable, err, unavailable.Message)
	case errors.Is(err, llm.ErrUnsupportedProvider), errors.Is(err, llm.ErrProviderUnavailable):
		return newError(CodeLLMUnavailable, err, err.Error())
	case errors.Is(err, llm.ErrProvider):
		return newError(CodeLLMError, err, fmt.Sprintf("Error calling LLM: %v", err))
	default:
		return newError(CodeInternal, err, "Internal server error.")
	}
}

// failure classifies err and logs internal faults; client errors are not logged here.
func failure(log logger.ILogger, operation string, err error) error {
	gerr := classify(err)
	if gerr.Code == CodeInternal {
		log.Error("GRAPHQL", "Resolver failed", map[string]interface{}{
			"operation": operation,
			"error":     err.Error(),
		})
	}
	return gerr
}
