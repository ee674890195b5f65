package controller

import (
	"doc-assistant-be/internal/graph"
	"doc-assistant-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/graph-gophers/graphql-go"
)

type IGraphQLController interface {
	RegisterRoutes(r fiber.Router)
	Handle(ctx *fiber.Ctx) error
}

type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

type graphqlController struct {
	schema *graphql.Schema
	issuer *serverutils.TokenIssuer
}

func NewGraphQLController(schema *graphql.Schema, issuer *serverutils.TokenIssuer) IGraphQLController {
	return &graphqlController{schema: schema, issuer: issuer}
}

// RegisterRoutes mounts POST /graphql. Anonymous requests are let through so
// tokenAuth and register work; resolvers enforce authentication.
func (c *graphqlController) RegisterRoutes(r fiber.Router) {
	r.Post("/graphql", serverutils.OptionalJwtMiddleware(c.issuer), c.Handle)
}

func (c *graphqlController) Handle(ctx *fiber.Ctx) error {
	var req graphqlRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid GraphQL request body")
	}
	if req.Query == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Missing GraphQL query")
	}

	reqCtx := ctx.UserContext()
	if userId, ok := serverutils.UserID(ctx); ok {
		reqCtx = graph.WithUserID(reqCtx, userId)
	}

	resp := c.schema.Exec(reqCtx, req.Query, req.OperationName, req.Variables)
	return ctx.JSON(resp)
}
