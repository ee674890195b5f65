package service

import (
	"context"
	"encoding/json"

	"doc-assistant-be/internal/dto"
	"doc-assistant-be/internal/pkg/logger"
	"doc-assistant-be/internal/pkg/mailer"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// invitationConsumer sends the invitation email for every committed invite.
type invitationConsumer struct {
	subscriber   message.Subscriber
	topicName    string
	emailService mailer.IEmailService
	logger       logger.ILogger
}

func NewInvitationConsumer(
	subscriber message.Subscriber,
	topicName string,
	emailService mailer.IEmailService,
	logger logger.ILogger,
) IConsumerService {
	return &invitationConsumer{
		subscriber:   subscriber,
		topicName:    topicName,
		emailService: emailService,
		logger:       logger,
	}
}

func (c *invitationConsumer) Consume(ctx context.Context) error {
	messages, err := c.subscriber.Subscribe(ctx, c.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			c.processMessage(msg)
		}
	}()

	return nil
}

func (c *invitationConsumer) processMessage(msg *message.Message) {
	var payload dto.MemberInvitedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		c.logger.Error("INVITE_MAIL", "Failed to unmarshal message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		// Malformed payloads never become valid
		msg.Ack()
		return
	}

	// Role changes on an existing membership do not send mail
	if !payload.Created {
		msg.Ack()
		return
	}

	if err := c.emailService.SendInvitation(payload.UserEmail, payload.OrganizationName, payload.Role, payload.InvitedBy); err != nil {
		c.logger.Error("INVITE_MAIL", "Failed to send invitation", map[string]interface{}{
			"membership_id": payload.MembershipId,
			"error":         err.Error(),
		})
		// gochannel redelivers a nacked message immediately; failed sends are dropped
		msg.Ack()
		return
	}

	c.logger.Info("INVITE_MAIL", "Invitation sent", map[string]interface{}{
		"membership_id":   payload.MembershipId,
		"organization_id": payload.OrganizationId,
	})
	msg.Ack()
}
