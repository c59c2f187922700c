package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/ameen0saad/TO-DO-List/domain"
	"github.com/ameen0saad/TO-DO-List/internal/mocks"
)

type authFixture struct {
	userRepo    *mocks.MockUserRepository
	tokenRepo   *mocks.MockVerificationTokenRepository
	resetRepo   *mocks.MockPasswordResetRepository
	passwordSvc *mocks.MockPasswordService
	tokenSvc    *mocks.MockTokenService
	mailer      *mocks.MockMailer
	svc         domain.AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	f := &authFixture{
		userRepo:    mocks.NewMockUserRepository(),
		tokenRepo:   mocks.NewMockVerificationTokenRepository(),
		resetRepo:   mocks.NewMockPasswordResetRepository(),
		passwordSvc: mocks.NewMockPasswordService(),
		tokenSvc:    mocks.NewMockTokenService(),
		mailer:      mocks.NewMockMailer(),
	}
	f.svc = NewAuthService(f.userRepo, f.tokenRepo, f.resetRepo, f.passwordSvc, f.tokenSvc, f.mailer, rdb, "http://localhost:3000", "http://localhost:5173")
	return f
}

func verifiedUser(t *testing.T) *domain.User {
	t.Helper()
	hash := "hashed_password123"
	return &domain.User{
		ID:           1,
		Name:         "Test User",
		Email:        "user@example.com",
		PasswordHash: &hash,
		Verified:     true,
	}
}

func expectCode(t *testing.T, err error, code int) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	opErr, ok := domain.AsError(err)
	if !ok {
		t.Fatalf("expected operational error, got %v", err)
	}
	if opErr.Code != code {
		t.Errorf("expected status %d, got %d (%s)", code, opErr.Code, opErr.Message)
	}
}

func TestAuthServiceImpl_Signup(t *testing.T) {
	tests := []struct {
		name         string
		userName     string
		email        string
		password     string
		confirm      string
		setupMocks   func(*authFixture)
		expectedCode int
	}{
		{
			name:     "successful signup",
			userName: "New User",
			email:    "New.User@Example.com",
			password: "password123",
			confirm:  "password123",
		},
		{
			name:         "password mismatch",
			userName:     "New User",
			email:        "new@example.com",
			password:     "password123",
			confirm:      "password124",
			expectedCode: 400,
		},
		{
			name:         "short password",
			userName:     "New User",
			email:        "new@example.com",
			password:     "short",
			confirm:      "short",
			expectedCode: 400,
		},
		{
			name:         "invalid email",
			userName:     "New User",
			email:        "not-an-email",
			password:     "password123",
			confirm:      "password123",
			expectedCode: 400,
		},
		{
			name:         "name too short",
			userName:     "ab",
			email:        "new@example.com",
			password:     "password123",
			confirm:      "password123",
			expectedCode: 400,
		},
		{
			name:     "duplicate email",
			userName: "New User",
			email:    "taken@example.com",
			password: "password123",
			confirm:  "password123",
			setupMocks: func(f *authFixture) {
				f.userRepo.CreateFunc = func(ctx context.Context, user *domain.User) error {
					return domain.ErrDuplicateEmail
				}
			},
			expectedCode: 409,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(t)
			if tt.setupMocks != nil {
				tt.setupMocks(f)
			}

			user, err := f.svc.Signup(context.Background(), tt.userName, tt.email, tt.password, tt.confirm)
			if tt.expectedCode != 0 {
				expectCode(t, err, tt.expectedCode)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user.Email != strings.ToLower(tt.email) {
				t.Errorf("expected lowercased email, got %s", user.Email)
			}
			if user.Verified {
				t.Error("new account must start unverified")
			}
			if len(f.mailer.Sent) != 1 || !strings.HasPrefix(f.mailer.Sent[0], "verification:") {
				t.Errorf("expected one verification email, got %v", f.mailer.Sent)
			}
		})
	}
}

func TestAuthServiceImpl_Login(t *testing.T) {
	t.Run("unknown email", func(t *testing.T) {
		f := newAuthFixture(t)
		_, err := f.svc.Login(context.Background(), "nobody@example.com", "password123")
		expectCode(t, err, 401)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newAuthFixture(t)
		f.userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
			return verifiedUser(t), nil
		}
		_, err := f.svc.Login(context.Background(), "user@example.com", "wrongpassword")
		expectCode(t, err, 401)
	})

	t.Run("unverified account gets a fresh verification email", func(t *testing.T) {
		f := newAuthFixture(t)
		f.userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
			u := verifiedUser(t)
			u.Verified = false
			return u, nil
		}
		_, err := f.svc.Login(context.Background(), "user@example.com", "password123")
		expectCode(t, err, 401)
		if len(f.mailer.Sent) != 1 || !strings.HasPrefix(f.mailer.Sent[0], "verification:") {
			t.Errorf("expected a verification email, got %v", f.mailer.Sent)
		}
	})

	t.Run("successful login", func(t *testing.T) {
		f := newAuthFixture(t)
		f.userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
			if email != "user@example.com" {
				t.Errorf("expected lowercased email lookup, got %s", email)
			}
			return verifiedUser(t), nil
		}
		result, err := f.svc.Login(context.Background(), "User@Example.com", "password123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Token == "" {
			t.Error("expected a session token")
		}
	})
}

func TestAuthServiceImpl_ForgotPassword(t *testing.T) {
	t.Run("unknown email", func(t *testing.T) {
		f := newAuthFixture(t)
		_, err := f.svc.ForgotPassword(context.Background(), "nobody@example.com")
		expectCode(t, err, 400)
	})

	t.Run("sends OTP and returns otp session token", func(t *testing.T) {
		f := newAuthFixture(t)
		f.userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
			return verifiedUser(t), nil
		}
		var created *domain.PasswordResetOTP
		f.resetRepo.CreateFunc = func(ctx context.Context, otp *domain.PasswordResetOTP) error {
			otp.ID = 7
			created = otp
			return nil
		}
		var signedSubject uint
		var signedPurpose domain.TokenPurpose
		f.tokenSvc.SignFunc = func(subject uint, purpose domain.TokenPurpose) (string, error) {
			signedSubject, signedPurpose = subject, purpose
			return "otp-session-token", nil
		}

		token, err := f.svc.ForgotPassword(context.Background(), "user@example.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token != "otp-session-token" {
			t.Errorf("unexpected token %q", token)
		}
		if created == nil || created.UserID != 1 {
			t.Fatalf("expected OTP record for user 1, got %+v", created)
		}
		if !strings.HasPrefix(created.CodeHash, "hashed_") {
			t.Errorf("expected hashed code, got %q", created.CodeHash)
		}
		if signedSubject != 7 || signedPurpose != domain.PurposeOTP {
			t.Errorf("token must embed the OTP record id with the otp purpose, got subject=%d purpose=%s", signedSubject, signedPurpose)
		}
		if len(f.mailer.Sent) != 1 || !strings.HasPrefix(f.mailer.Sent[0], "otp:") {
			t.Errorf("expected one OTP email, got %v", f.mailer.Sent)
		}
	})

	t.Run("second request inside the resend window is throttled", func(t *testing.T) {
		f := newAuthFixture(t)
		f.userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
			return verifiedUser(t), nil
		}
		if _, err := f.svc.ForgotPassword(context.Background(), "user@example.com"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err := f.svc.ForgotPassword(context.Background(), "user@example.com")
		expectCode(t, err, 429)
	})
}

func TestAuthServiceImpl_VerifyOTP(t *testing.T) {
	setup := func(f *authFixture, expires time.Time) {
		f.tokenSvc.VerifyFunc = func(token string, purpose domain.TokenPurpose) (*domain.TokenClaims, error) {
			if purpose != domain.PurposeOTP {
				t.Fatalf("expected otp purpose, got %s", purpose)
			}
			if token != "otp-session-token" {
				return nil, domain.ErrTokenInvalid
			}
			return &domain.TokenClaims{Subject: 7, Purpose: purpose}, nil
		}
		f.resetRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.PasswordResetOTP, error) {
			if id != 7 {
				return nil, domain.ErrOTPNotFound
			}
			return &domain.PasswordResetOTP{ID: 7, CodeHash: "hashed_123456", UserID: 1, ExpiresAt: expires}, nil
		}
		f.userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
			return verifiedUser(t), nil
		}
	}

	t.Run("invalid session token", func(t *testing.T) {
		f := newAuthFixture(t)
		setup(f, time.Now().Add(time.Minute))
		_, err := f.svc.VerifyOTP(context.Background(), "bogus", "123456")
		expectCode(t, err, 401)
	})

	t.Run("expired OTP", func(t *testing.T) {
		f := newAuthFixture(t)
		setup(f, time.Now().Add(-time.Minute))
		_, err := f.svc.VerifyOTP(context.Background(), "otp-session-token", "123456")
		expectCode(t, err, 400)
	})

	t.Run("wrong code", func(t *testing.T) {
		f := newAuthFixture(t)
		setup(f, time.Now().Add(time.Minute))
		_, err := f.svc.VerifyOTP(context.Background(), "otp-session-token", "654321")
		expectCode(t, err, 400)
	})

	t.Run("success consumes the record and issues a reset token", func(t *testing.T) {
		f := newAuthFixture(t)
		setup(f, time.Now().Add(time.Minute))
		deleted := false
		f.resetRepo.DeleteFunc = func(ctx context.Context, id uint) error {
			deleted = id == 7
			return nil
		}
		var signedPurpose domain.TokenPurpose
		var signedSubject uint
		f.tokenSvc.SignFunc = func(subject uint, purpose domain.TokenPurpose) (string, error) {
			signedSubject, signedPurpose = subject, purpose
			return "reset-session-token", nil
		}

		token, err := f.svc.VerifyOTP(context.Background(), "otp-session-token", "123456")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token != "reset-session-token" {
			t.Errorf("unexpected token %q", token)
		}
		if !deleted {
			t.Error("expected the OTP record to be consumed")
		}
		if signedSubject != 1 || signedPurpose != domain.PurposeReset {
			t.Errorf("reset token must be bound to the user, got subject=%d purpose=%s", signedSubject, signedPurpose)
		}
	})
}

func TestAuthServiceImpl_ResetPassword(t *testing.T) {
	setup := func(f *authFixture) {
		f.tokenSvc.VerifyFunc = func(token string, purpose domain.TokenPurpose) (*domain.TokenClaims, error) {
			if purpose != domain.PurposeReset || token != "reset-session-token" {
				return nil, domain.ErrTokenInvalid
			}
			return &domain.TokenClaims{Subject: 1, Purpose: purpose}, nil
		}
		f.userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
			return verifiedUser(t), nil
		}
	}

	t.Run("rejects the current password", func(t *testing.T) {
		f := newAuthFixture(t)
		setup(f)
		_, err := f.svc.ResetPassword(context.Background(), "reset-session-token", "password123", "password123")
		expectCode(t, err, 400)
	})

	t.Run("rejects a token with the wrong purpose", func(t *testing.T) {
		f := newAuthFixture(t)
		setup(f)
		_, err := f.svc.ResetPassword(context.Background(), "otp-session-token", "newpassword1", "newpassword1")
		expectCode(t, err, 401)
	})

	t.Run("success stores the new hash and logs the user in", func(t *testing.T) {
		f := newAuthFixture(t)
		setup(f)
		var storedHash string
		f.userRepo.UpdatePasswordFunc = func(ctx context.Context, userID uint, hash string, changedAt time.Time) error {
			storedHash = hash
			return nil
		}

		result, err := f.svc.ResetPassword(context.Background(), "reset-session-token", "newpassword1", "newpassword1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if storedHash != "hashed_newpassword1" {
			t.Errorf("unexpected stored hash %q", storedHash)
		}
		if result.Token == "" {
			t.Error("expected a fresh session token")
		}
	})
}

func TestAuthServiceImpl_VerifyEmail(t *testing.T) {
	t.Run("expired token", func(t *testing.T) {
		f := newAuthFixture(t)
		f.userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
			return verifiedUser(t), nil
		}
		f.tokenRepo.FindByUserAndTokenFunc = func(ctx context.Context, userID uint, token string) (*domain.VerificationToken, error) {
			return &domain.VerificationToken{ID: 1, UserID: userID, Token: token, ExpiresAt: time.Now().Add(-time.Hour)}, nil
		}
		err := f.svc.VerifyEmail(context.Background(), 1, "sometoken")
		expectCode(t, err, 400)
	})

	t.Run("success verifies, purges tokens and sends a welcome email", func(t *testing.T) {
		f := newAuthFixture(t)
		f.userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
			u := verifiedUser(t)
			u.Verified = false
			return u, nil
		}
		f.tokenRepo.FindByUserAndTokenFunc = func(ctx context.Context, userID uint, token string) (*domain.VerificationToken, error) {
			return &domain.VerificationToken{ID: 1, UserID: userID, Token: token, ExpiresAt: time.Now().Add(time.Hour)}, nil
		}
		verified := false
		f.userRepo.SetVerifiedFunc = func(ctx context.Context, userID uint) error {
			verified = true
			return nil
		}
		purged := false
		f.tokenRepo.DeleteAllForUserFunc = func(ctx context.Context, userID uint) error {
			purged = true
			return nil
		}

		if err := f.svc.VerifyEmail(context.Background(), 1, "sometoken"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !verified {
			t.Error("expected the account to be marked verified")
		}
		if !purged {
			t.Error("expected all verification tokens to be purged")
		}
		if len(f.mailer.Sent) != 1 || !strings.HasPrefix(f.mailer.Sent[0], "welcome:") {
			t.Errorf("expected a welcome email, got %v", f.mailer.Sent)
		}
	})
}

func TestAuthServiceImpl_FindOrCreateOAuthUser(t *testing.T) {
	t.Run("first login creates a verified account without a password", func(t *testing.T) {
		f := newAuthFixture(t)
		var created *domain.User
		f.userRepo.CreateFunc = func(ctx context.Context, user *domain.User) error {
			user.ID = 5
			created = user
			return nil
		}

		result, err := f.svc.FindOrCreateOAuthUser(context.Background(), "OAuth User", "OAuth.User@Example.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created == nil {
			t.Fatal("expected a new account")
		}
		if created.Email != "oauth.user@example.com" {
			t.Errorf("expected lowercased email, got %s", created.Email)
		}
		if !created.Verified {
			t.Error("OAuth accounts must start verified")
		}
		if created.PasswordHash != nil {
			t.Error("OAuth accounts must not have a local password")
		}
		if result.Token == "" {
			t.Error("expected a session token")
		}
	})

	t.Run("repository errors other than not-found propagate", func(t *testing.T) {
		f := newAuthFixture(t)
		f.userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
			return nil, errors.New("connection refused")
		}
		if _, err := f.svc.FindOrCreateOAuthUser(context.Background(), "X", "x@example.com"); err == nil {
			t.Fatal("expected an error")
		}
	})
}
