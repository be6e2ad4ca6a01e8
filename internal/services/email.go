package services

import (
	"fmt"
	"net/smtp"
	"strings"

	"automateace/internal/config"
	"automateace/internal/domain"
)

// EmailService sends admin notification emails for new inquiries
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// IsEnabled reports whether outbound email is configured
func (s *EmailService) IsEnabled() bool {
	return s.cfg.Enabled
}

// SendInquiryNotification notifies the admin about a new inquiry. When
// email is disabled (development) it logs to stdout instead.
func (s *EmailService) SendInquiryNotification(inquiry *domain.ServiceInquiry, sub *Submission) error {
	if !s.cfg.Enabled {
		fmt.Printf("[EMAIL] New inquiry from %s (%s): %s\n", sub.Name, sub.Email, sub.Service)
		return nil
	}

	company := "Not provided"
	if sub.Company != nil {
		company = *sub.Company
	}
	message := sub.Message
	if message == "" {
		message = "None"
	}

	subject := fmt.Sprintf("New Inquiry from %s", sub.Name)
	body := fmt.Sprintf(`New Get Started Submission

Name: %s
Email: %s
Company: %s
Service: %s

Message:
%s

Inquiry ID: #%d`, sub.Name, sub.Email, company, sub.Service, message, inquiry.ID)

	return s.send(s.cfg.AdminEmail, subject, body)
}

// send delivers a plain-text email over SMTP
func (s *EmailService) send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, s.cfg.FromEmail))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	msg.WriteString(body)

	if err := smtp.SendMail(addr, auth, s.cfg.FromEmail, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
