package notifications

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/ameen0saad/TO-DO-List/domain"
)

// SMTPMailer implements domain.Mailer. When no host is configured the mailer
// logs the message instead of sending, so local setups work without an SMTP
// endpoint.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPMailer creates a new SMTP-backed mailer
func NewSMTPMailer(host string, port int, username, password, from string) domain.Mailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// SendVerification implements domain.Mailer
func (m *SMTPMailer) SendVerification(user *domain.User, verificationURL string) error {
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nPlease verify your email address by opening the link below. The link is valid for 24 hours.\r\n\r\n%s\r\n",
		user.Name, verificationURL,
	)
	return m.send(user.Email, "Verify your email address", body)
}

// SendOTP implements domain.Mailer
func (m *SMTPMailer) SendOTP(user *domain.User, code string) error {
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nYour password reset code is: %s\r\nIt is valid for 10 minutes. If you did not request a reset, ignore this email.\r\n",
		user.Name, code,
	)
	return m.send(user.Email, "Your password reset OTP (valid for only 10 minutes)", body)
}

// SendWelcome implements domain.Mailer
func (m *SMTPMailer) SendWelcome(user *domain.User, profileURL string) error {
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nWelcome to the Task Manager App! Your email has been verified.\r\n\r\n%s\r\n",
		user.Name, profileURL,
	)
	return m.send(user.Email, "Welcome to the Task Manager App!", body)
}

func (m *SMTPMailer) send(to, subject, body string) error {
	// If the mailer is not configured, log instead of sending
	if m.host == "" {
		fmt.Printf("[MOCK EMAIL] To: %s, Subject: %s\n", to, subject)
		return nil
	}

	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}
	if err := smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
