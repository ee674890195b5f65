package mailer

import (
	"fmt"
	"html"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendInvitation(toEmail, organizationName, role, invitedBy string) error
}

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type emailService struct {
	dialer      sender
	senderEmail string
	appURL      string
}

func NewEmailService(host string, port int, username, password, senderEmail, appURL string) IEmailService {
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: senderEmail,
		appURL:      appURL,
	}
}

// InvitationMessage builds the invitation email without sending it.
func (s *emailService) InvitationMessage(toEmail, organizationName, role, invitedBy string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("You have been added to %s", organizationName))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Welcome to %s</h2>
			<p>%s added you to the organization as <strong>%s</strong>.</p>
			<p>Sign in to start asking questions about its documents:</p>
			<p><a href="%s">%s</a></p>
		</div>
	`,
		html.EscapeString(organizationName),
		html.EscapeString(invitedBy),
		html.EscapeString(role),
		s.appURL, s.appURL,
	)
	m.SetBody("text/html", body)
	return m
}

func (s *emailService) SendInvitation(toEmail, organizationName, role, invitedBy string) error {
	m := s.InvitationMessage(toEmail, organizationName, role, invitedBy)
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send invitation to %s: %w", toEmail, err)
	}
	return nil
}
