package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Success bool        `json:"success"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func ErrorResponse(code, message string) Response {
	return Response{Success: false, Code: code, Message: message}
}

// ErrorHandler renders errors escaping non-GraphQL handlers as JSON.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	code := "INTERNAL"
	message := "Internal server error"

	var fe *fiber.Error
	var ve ValidationErrors
	switch {
	case errors.As(err, &fe):
		status = fe.Code
		message = fe.Message
		switch fe.Code {
		case fiber.StatusNotFound:
			code = "NOT_FOUND"
		case fiber.StatusUnauthorized:
			code = "UNAUTHORIZED"
		case fiber.StatusBadRequest:
			code = "INVALID_INPUT"
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		}
	case errors.As(err, &ve):
		status = fiber.StatusBadRequest
		code = "INVALID_INPUT"
		message = ve.Error()
	}

	return ctx.Status(status).JSON(ErrorResponse(code, message))
}
