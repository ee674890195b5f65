package events

import "time"

const (
	TypeDocumentCreated      = "DOCUMENT_CREATED"
	TypeMemberInvited        = "MEMBER_INVITED"
	TypeConversationRecorded = "CONVERSATION_RECORDED"
	TypeOrganizationCreated  = "ORGANIZATION_CREATED"
)

func newEvent(eventType string, data map[string]interface{}) BaseEvent {
	now := time.Now().UTC()
	data["occurred_at"] = now.Format(time.RFC3339)
	return BaseEvent{Type: eventType, Data: data, OccurredAt: now}
}

func DocumentCreated(documentId, organizationId, userId uint, title string) BaseEvent {
	return newEvent(TypeDocumentCreated, map[string]interface{}{
		"document_id":     documentId,
		"organization_id": organizationId,
		"created_by":      userId,
		"title":           title,
	})
}

func MemberInvited(organizationId, userId, invitedBy uint, role string, created bool) BaseEvent {
	return newEvent(TypeMemberInvited, map[string]interface{}{
		"organization_id": organizationId,
		"user_id":         userId,
		"invited_by":      invitedBy,
		"role":            role,
		"created":         created,
	})
}

// ConversationRecorded carries identifiers only; question and answer text
// stay in the database.
func ConversationRecorded(conversationId, documentId, userId uint, provider, model string) BaseEvent {
	return newEvent(TypeConversationRecorded, map[string]interface{}{
		"conversation_id": conversationId,
		"document_id":     documentId,
		"user_id":         userId,
		"provider":        provider,
		"model":           model,
	})
}

func OrganizationCreated(organizationId, userId uint, name string) BaseEvent {
	return newEvent(TypeOrganizationCreated, map[string]interface{}{
		"organization_id": organizationId,
		"created_by":      userId,
		"name":            name,
	})
}
