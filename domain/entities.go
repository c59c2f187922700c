package domain

import (
	"strings"
	"time"
)

// Priority is the task priority level, stored canonically in lower case.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Status is the task progress state. Input naming varies between clients
// ("in_progress", "IN PROGRESS", "done"), so it is canonicalized at the edge.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// ParsePriority canonicalizes a priority value. Empty input defaults to medium.
func ParsePriority(s string) (Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return PriorityMedium, true
	case "low":
		return PriorityLow, true
	case "medium":
		return PriorityMedium, true
	case "high":
		return PriorityHigh, true
	}
	return "", false
}

// ParseStatus canonicalizes a status value. Empty input defaults to pending.
func ParseStatus(s string) (Status, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer(" ", "-", "_", "-").Replace(normalized)
	switch normalized {
	case "", "todo", "to-do", "pending":
		return StatusPending, true
	case "in-progress", "inprogress":
		return StatusInProgress, true
	case "completed", "done":
		return StatusCompleted, true
	}
	return "", false
}

// User represents an account. PasswordHash is nil for OAuth-only accounts.
type User struct {
	ID                uint       `json:"id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	PasswordHash      *string    `json:"-"`
	Verified          bool       `json:"verified"`
	PasswordChangedAt *time.Time `json:"-"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// Task is a personal to-do item owned by exactly one user.
type Task struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    Priority   `json:"priority"`
	Status      Status     `json:"status"`
	Completed   bool       `json:"completed"`
	DueDate     *time.Time `json:"dueDate"`
	UserID      uint       `json:"userId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Team groups users around shared tasks. The owner is tracked separately from
// the membership relation but is always connected as a member on creation.
type Team struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     uint      `json:"ownerId"`
	Owner       *User     `json:"owner,omitempty"`
	Members     []User    `json:"members,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// IsOwner reports whether the given user owns the team.
func (t *Team) IsOwner(userID uint) bool {
	return t.OwnerID == userID
}

// HasMember reports whether the given user is a listed member of the team.
func (t *Team) HasMember(userID uint) bool {
	for _, m := range t.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

// TeamTask is a shared task belonging to exactly one team.
type TeamTask struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    Priority   `json:"priority"`
	Status      Status     `json:"status"`
	Completed   bool       `json:"completed"`
	DueDate     *time.Time `json:"dueDate"`
	TeamID      uint       `json:"teamId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// VerificationToken is a single-use email verification token, valid 24h.
// All tokens for a user are purged once one is consumed.
type VerificationToken struct {
	ID        uint
	Token     string
	UserID    uint
	ExpiresAt time.Time
	CreatedAt time.Time
}

// PasswordResetOTP is a pending password-reset code. Only the bcrypt hash of
// the 6-digit code is stored; the record is deleted on successful verification.
type PasswordResetOTP struct {
	ID        uint
	CodeHash  string
	UserID    uint
	ExpiresAt time.Time
	CreatedAt time.Time
}

// AuthResult carries a signed session credential together with its user.
type AuthResult struct {
	User  *User
	Token string
}

// TaskInput holds the writable fields for task creation.
type TaskInput struct {
	Title       string
	Description string
	Priority    string
	Status      string
	Completed   *bool
	DueDate     *time.Time
}

// TaskPatch holds a partial task update; nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *string
	Status      *string
	Completed   *bool
	DueDate     *time.Time
}

// IsStatusOnly reports whether the patch touches nothing besides the status
// field and its derived completed flag. This is the one mutation non-owner
// team members are allowed to perform on a team task.
func (p *TaskPatch) IsStatusOnly() bool {
	return p.Status != nil &&
		p.Title == nil &&
		p.Description == nil &&
		p.Priority == nil &&
		p.Completed == nil &&
		p.DueDate == nil
}
