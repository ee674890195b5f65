package graph

import (
	"strconv"

	"doc-assistant-be/internal/dto"
	"doc-assistant-be/internal/entity"

	"github.com/graph-gophers/graphql-go"
)

func toID(id uint) graphql.ID {
	return graphql.ID(strconv.FormatUint(uint64(id), 10))
}

type userNode struct {
	u *entity.User
}

func newUserNode(u *entity.User) *userNode {
	if u == nil {
		return nil
	}
	return &userNode{u: u}
}

func (n *userNode) ID() graphql.ID   { return toID(n.u.Id) }
func (n *userNode) Email() string    { return n.u.Email }
func (n *userNode) FullName() string { return n.u.FullName }

func (n *userNode) ActiveOrganizationID() *int32 {
	if !n.u.HasActiveOrganization() {
		return nil
	}
	id := int32(*n.u.ActiveOrganizationId)
	return &id
}

type organizationNode struct {
	o *entity.Organization
}

func newOrganizationNode(o *entity.Organization) *organizationNode {
	if o == nil {
		return nil
	}
	return &organizationNode{o: o}
}

func (n *organizationNode) ID() graphql.ID          { return toID(n.o.Id) }
func (n *organizationNode) Name() string            { return n.o.Name }
func (n *organizationNode) CreatedAt() graphql.Time { return graphql.Time{Time: n.o.CreatedAt} }
func (n *organizationNode) UpdatedAt() graphql.Time { return graphql.Time{Time: n.o.UpdatedAt} }

type membershipNode struct {
	m *entity.Membership
}

func (n *membershipNode) ID() graphql.ID         { return toID(n.m.Id) }
func (n *membershipNode) Role() string           { return string(n.m.Role) }
func (n *membershipNode) JoinedAt() graphql.Time { return graphql.Time{Time: n.m.JoinedAt} }
func (n *membershipNode) User() *userNode        { return newUserNode(n.m.User) }

func (n *membershipNode) Organization() *organizationNode {
	return newOrganizationNode(n.m.Organization)
}

type documentNode struct {
	d *entity.Document
}

func newDocumentNode(d *entity.Document) *documentNode {
	if d == nil {
		return nil
	}
	return &documentNode{d: d}
}

func (n *documentNode) ID() graphql.ID          { return toID(n.d.Id) }
func (n *documentNode) Title() string           { return n.d.Title }
func (n *documentNode) Content() string         { return n.d.Content }
func (n *documentNode) CreatedBy() *userNode    { return newUserNode(n.d.CreatedBy) }
func (n *documentNode) CreatedAt() graphql.Time { return graphql.Time{Time: n.d.CreatedAt} }
func (n *documentNode) UpdatedAt() graphql.Time { return graphql.Time{Time: n.d.UpdatedAt} }

func (n *documentNode) Organization() *organizationNode {
	return newOrganizationNode(n.d.Organization)
}

type conversationNode struct {
	c *entity.Conversation
}

func (n *conversationNode) ID() graphql.ID          { return toID(n.c.Id) }
func (n *conversationNode) Question() string        { return n.c.Question }
func (n *conversationNode) Answer() string          { return n.c.Answer }
func (n *conversationNode) Provider() string        { return n.c.Provider }
func (n *conversationNode) Model() string           { return n.c.Model }
func (n *conversationNode) CreatedAt() graphql.Time { return graphql.Time{Time: n.c.CreatedAt} }
func (n *conversationNode) Document() *documentNode { return newDocumentNode(n.c.Document) }
func (n *conversationNode) User() *userNode         { return newUserNode(n.c.User) }

type tokenPayloadNode struct {
	email     string
	expiresAt graphql.Time
}

func (n *tokenPayloadNode) Email() string           { return n.email }
func (n *tokenPayloadNode) ExpiresAt() graphql.Time { return n.expiresAt }

type authPayload struct {
	resp *dto.TokenResponse
}

func (p *authPayload) Token() string   { return p.resp.Token }
func (p *authPayload) User() *userNode { return newUserNode(p.resp.User) }

func (p *authPayload) Payload() *tokenPayloadNode {
	return &tokenPayloadNode{email: p.resp.User.Email, expiresAt: graphql.Time{Time: p.resp.ExpiresAt}}
}

type verifyTokenPayload struct {
	payload *tokenPayloadNode
}

func (p *verifyTokenPayload) Payload() *tokenPayloadNode { return p.payload }

type createOrganizationPayload struct {
	org *entity.Organization
}

func (p *createOrganizationPayload) Organization() *organizationNode {
	return newOrganizationNode(p.org)
}

type setActiveOrganizationPayload struct {
	org *entity.Organization
}

func (p *setActiveOrganizationPayload) Success() bool { return true }

func (p *setActiveOrganizationPayload) Organization() *organizationNode {
	return newOrganizationNode(p.org)
}

type inviteUserPayload struct {
	membership *entity.Membership
}

func (p *inviteUserPayload) Success() bool { return true }

func (p *inviteUserPayload) Membership() *membershipNode {
	return &membershipNode{m: p.membership}
}

type createDocumentPayload struct {
	doc *entity.Document
}

func (p *createDocumentPayload) Document() *documentNode { return newDocumentNode(p.doc) }

type askDocumentAIQuestionPayload struct {
	conversation *entity.Conversation
}

func (p *askDocumentAIQuestionPayload) Conversation() *conversationNode {
	return &conversationNode{c: p.conversation}
}
