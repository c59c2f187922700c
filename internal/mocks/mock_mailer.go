package mocks

import "github.com/ameen0saad/TO-DO-List/domain"

// MockMailer implements domain.Mailer interface for testing
type MockMailer struct {
	SendVerificationFunc func(user *domain.User, verificationURL string) error
	SendOTPFunc          func(user *domain.User, code string) error
	SendWelcomeFunc      func(user *domain.User, profileURL string) error

	// Sent records every delivery made through the default behaviors.
	Sent []string
}

// NewMockMailer creates a new MockMailer with default behaviors
func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

// SendVerification records a verification email
func (m *MockMailer) SendVerification(user *domain.User, verificationURL string) error {
	if m.SendVerificationFunc != nil {
		return m.SendVerificationFunc(user, verificationURL)
	}
	m.Sent = append(m.Sent, "verification:"+user.Email)
	return nil
}

// SendOTP records an OTP email
func (m *MockMailer) SendOTP(user *domain.User, code string) error {
	if m.SendOTPFunc != nil {
		return m.SendOTPFunc(user, code)
	}
	m.Sent = append(m.Sent, "otp:"+user.Email)
	return nil
}

// SendWelcome records a welcome email
func (m *MockMailer) SendWelcome(user *domain.User, profileURL string) error {
	if m.SendWelcomeFunc != nil {
		return m.SendWelcomeFunc(user, profileURL)
	}
	m.Sent = append(m.Sent, "welcome:"+user.Email)
	return nil
}

// Compile-time interface compliance verification
var _ domain.Mailer = (*MockMailer)(nil)
