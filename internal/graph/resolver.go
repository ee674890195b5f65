// Package graph exposes the services over GraphQL.
package graph

import (
	_ "embed"

	"doc-assistant-be/internal/pkg/logger"
	"doc-assistant-be/internal/service"

	"github.com/graph-gophers/graphql-go"
)

//go:embed schema.graphql
var schemaSDL string

// Resolver is the root resolver. Each area contributes its own fields.
type Resolver struct {
	*AuthResolver
	*OrganizationResolver
	*DocumentResolver
}

func NewResolver(
	authService service.IAuthService,
	organizationService service.IOrganizationService,
	documentService service.IDocumentService,
	log logger.ILogger,
) *Resolver {
	return &Resolver{
		AuthResolver:         &AuthResolver{authService: authService, logger: log},
		OrganizationResolver: &OrganizationResolver{organizationService: organizationService, logger: log},
		DocumentResolver:     &DocumentResolver{documentService: documentService, logger: log},
	}
}

// NewSchema parses the embedded SDL against the resolver.
func NewSchema(resolver *Resolver, opts ...graphql.SchemaOpt) (*graphql.Schema, error) {
	return graphql.ParseSchema(schemaSDL, resolver, opts...)
}
