// Package doccontext turns a stored document into the plain-text context
// block handed to a language model.
package doccontext

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"doc-assistant-be/internal/repository/specification"
	"doc-assistant-be/internal/repository/unitofwork"
)

// Block is the structured view of one document used to build a prompt.
type Block struct {
	DocumentId       uint
	Title            string
	Content          string
	OrganizationId   uint
	OrganizationName string
	Created          string
	CreatedBy        *string
}

// Result is either a Block (Found) or a not-found Message. It is a value,
// not an error, so callers can tell a missing document from a storage fault.
type Result struct {
	Found   bool
	Block   Block
	Message string
}

// Server loads documents and renders them into context blocks.
type Server struct {
	repoFactory unitofwork.RepositoryFactory
}

func NewServer(repoFactory unitofwork.RepositoryFactory) *Server {
	return &Server{repoFactory: repoFactory}
}

// BuildContext loads the document with its organization and creator. The
// error return is reserved for storage failures.
func (s *Server) BuildContext(ctx context.Context, documentId uint) (Result, error) {
	uow := s.repoFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: documentId},
		specification.Preload{Association: "Organization"},
		specification.Preload{Association: "CreatedBy"},
	)
	if err != nil {
		return Result{}, fmt.Errorf("load document %d: %w", documentId, err)
	}
	if doc == nil {
		return Result{Message: fmt.Sprintf("Document %d not found", documentId)}, nil
	}

	block := Block{
		DocumentId:     doc.Id,
		Title:          doc.Title,
		Content:        doc.Content,
		OrganizationId: doc.OrganizationId,
		Created:        doc.CreatedAt.UTC().Format(time.RFC3339),
	}
	if doc.Organization != nil {
		block.OrganizationName = doc.Organization.Name
	}
	if doc.CreatedBy != nil {
		email := doc.CreatedBy.Email
		block.CreatedBy = &email
	}

	return Result{Found: true, Block: block}, nil
}

const notAvailable = "N/A"

// Render serialises a Block with a fixed field order. Equal input always
// yields byte-identical output.
func Render(b Block) string {
	orgName := b.OrganizationName
	if orgName == "" {
		orgName = notAvailable
	}
	createdBy := notAvailable
	if b.CreatedBy != nil {
		createdBy = *b.CreatedBy
	}

	var sb strings.Builder
	sb.WriteString("Document Context:\n")
	sb.WriteString("Title: " + b.Title + "\n")
	sb.WriteString("\n")
	sb.WriteString("Content:\n")
	sb.WriteString(b.Content + "\n")
	sb.WriteString("\n")
	sb.WriteString("Metadata:\n")
	sb.WriteString("- Document ID: " + strconv.FormatUint(uint64(b.DocumentId), 10) + "\n")
	sb.WriteString("- Organization ID: " + strconv.FormatUint(uint64(b.OrganizationId), 10) + "\n")
	sb.WriteString("- Organization Name: " + orgName + "\n")
	sb.WriteString("- Created: " + b.Created + "\n")
	sb.WriteString("- Created By: " + createdBy)
	return sb.String()
}
