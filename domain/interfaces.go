package domain

import (
	"context"
	"net/url"
	"time"

	"github.com/ameen0saad/TO-DO-List/internal/query"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	UpdatePassword(ctx context.Context, userID uint, hash string, changedAt time.Time) error
	SetVerified(ctx context.Context, userID uint) error
}

// TaskRepository defines personal task data access operations. Every lookup
// is scoped to the owning user; a task id belonging to someone else behaves
// exactly like a missing one.
type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	FindByID(ctx context.Context, id, userID uint) (*Task, error)
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id, userID uint) error
	ListByUser(ctx context.Context, userID uint, params url.Values) ([]Task, query.Pagination, error)
}

// TeamRepository defines team data access operations
type TeamRepository interface {
	Create(ctx context.Context, team *Team) error
	FindByID(ctx context.Context, id uint) (*Team, error)
	ListForUser(ctx context.Context, userID uint) ([]Team, error)
	UpdateInfo(ctx context.Context, teamID uint, name, description *string) error
	AddMembers(ctx context.Context, teamID uint, userIDs []uint) error
	RemoveMember(ctx context.Context, teamID, userID uint) error
	UpdateOwner(ctx context.Context, teamID, ownerID uint) error
	Delete(ctx context.Context, teamID uint) error
}

// TeamTaskRepository defines shared task data access operations, scoped to a team.
type TeamTaskRepository interface {
	Create(ctx context.Context, task *TeamTask) error
	FindByID(ctx context.Context, id, teamID uint) (*TeamTask, error)
	Update(ctx context.Context, task *TeamTask) error
	Delete(ctx context.Context, id, teamID uint) error
	ListByTeam(ctx context.Context, teamID uint, params url.Values) ([]TeamTask, query.Pagination, error)
}

// VerificationTokenRepository defines email verification token persistence
type VerificationTokenRepository interface {
	Create(ctx context.Context, token *VerificationToken) error
	FindByUserAndToken(ctx context.Context, userID uint, token string) (*VerificationToken, error)
	FindLatestByUser(ctx context.Context, userID uint) (*VerificationToken, error)
	DeleteAllForUser(ctx context.Context, userID uint) error
}

// PasswordResetRepository defines password reset OTP persistence
type PasswordResetRepository interface {
	Create(ctx context.Context, otp *PasswordResetOTP) error
	FindByID(ctx context.Context, id uint) (*PasswordResetOTP, error)
	Delete(ctx context.Context, id uint) error
}

// AuthService defines authentication business logic
type AuthService interface {
	Signup(ctx context.Context, name, email, password, confirm string) (*User, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Profile(ctx context.Context, userID uint) (*User, error)
	UpdatePassword(ctx context.Context, userID uint, password, confirm string) (*AuthResult, error)
	VerifyEmail(ctx context.Context, userID uint, token string) error
	ForgotPassword(ctx context.Context, email string) (string, error)
	VerifyOTP(ctx context.Context, otpSessionToken, code string) (string, error)
	ResetPassword(ctx context.Context, resetSessionToken, password, confirm string) (*AuthResult, error)
	FindOrCreateOAuthUser(ctx context.Context, name, email string) (*AuthResult, error)
}

// TaskService defines personal task business logic
type TaskService interface {
	List(ctx context.Context, userID uint, params url.Values) ([]Task, query.Pagination, error)
	Get(ctx context.Context, userID, taskID uint) (*Task, error)
	Create(ctx context.Context, userID uint, input TaskInput) (*Task, error)
	Update(ctx context.Context, userID, taskID uint, patch TaskPatch) (*Task, error)
	Delete(ctx context.Context, userID, taskID uint) error
}

// TeamService defines team business logic and the membership/ownership rules.
type TeamService interface {
	List(ctx context.Context, userID uint) ([]Team, error)
	Access(ctx context.Context, teamID, userID uint) (*Team, error)
	Create(ctx context.Context, ownerID uint, name, description string) (*Team, error)
	Update(ctx context.Context, team *Team, callerID uint, name, description *string, memberEmails []string) (*Team, error)
	Delete(ctx context.Context, team *Team, callerID uint) error
	RemoveMembers(ctx context.Context, team *Team, callerID uint, memberEmails []string) (*Team, error)
	Leave(ctx context.Context, team *Team, callerID uint) (*Team, error)
	TransferOwnership(ctx context.Context, team *Team, callerID, memberID uint) (*Team, error)
}

// TeamTaskService defines shared task business logic, including the
// status-only exception for non-owner members.
type TeamTaskService interface {
	List(ctx context.Context, teamID uint, params url.Values) ([]TeamTask, query.Pagination, error)
	Get(ctx context.Context, teamID, taskID uint) (*TeamTask, error)
	Create(ctx context.Context, team *Team, callerID uint, input TaskInput) (*TeamTask, error)
	Update(ctx context.Context, team *Team, callerID, taskID uint, patch TaskPatch) (*TeamTask, error)
	Delete(ctx context.Context, team *Team, callerID, taskID uint) error
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenPurpose binds a credential to one phase of the authentication flows.
// A token issued for one purpose is rejected when presented for another.
type TokenPurpose string

const (
	PurposeAccess TokenPurpose = "access"
	PurposeOTP    TokenPurpose = "otp_session"
	PurposeReset  TokenPurpose = "reset_session"
)

// TokenClaims represents verified JWT claims
type TokenClaims struct {
	Subject   uint
	Purpose   TokenPurpose
	IssuedAt  int64
	ExpiresAt int64
}

// TokenService defines token signing and verification
type TokenService interface {
	Sign(subject uint, purpose TokenPurpose) (string, error)
	Verify(token string, purpose TokenPurpose) (*TokenClaims, error)
}

// Mailer defines outbound email delivery
type Mailer interface {
	SendVerification(user *User, verificationURL string) error
	SendOTP(user *User, code string) error
	SendWelcome(user *User, profileURL string) error
}
