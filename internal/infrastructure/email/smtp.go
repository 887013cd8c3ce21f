package email

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
	BaseURL     string // Base URL for email links (e.g., "https://app.fitmo.ma")
}

type SMTPEmailService struct {
	config SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPEmailService(config SMTPConfig) *SMTPEmailService {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	return &SMTPEmailService{
		config: config,
		dialer: dialer,
	}
}

// SendInvitation emails an organization invitation with its accept link.
func (s *SMTPEmailService) SendInvitation(ctx context.Context, toEmail, orgName, token string, expiresAt time.Time) error {
	acceptURL := fmt.Sprintf("%s/invitations/accept?token=%s", s.config.BaseURL, token)
	expiry := expiresAt.Format("January 2, 2006")

	subject := fmt.Sprintf("You've been invited to join %s", orgName)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Team Invitation</h2>
			<p><strong>%s</strong> has invited you to join their team on Fitmo.</p>
			<p>As a team member, your subscription is covered by the organization's plan.</p>
			<p><a href="%s">Accept Invitation</a></p>
			<p>Or copy and paste this URL into your browser:</p>
			<p>%s</p>
			<p>This invitation expires on %s.</p>
			<p>If you weren't expecting this invitation, please ignore this email.</p>
		</body>
		</html>
	`, orgName, acceptURL, acceptURL, expiry)

	plainBody := fmt.Sprintf(`
Team Invitation

%s has invited you to join their team on Fitmo.

As a team member, your subscription is covered by the organization's plan.

Accept the invitation by visiting:
%s

This invitation expires on %s.

If you weren't expecting this invitation, please ignore this email.
	`, orgName, acceptURL, expiry)

	return s.sendEmail(toEmail, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) sendEmail(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.config.FromAddress)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
