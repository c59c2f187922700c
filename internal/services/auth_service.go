package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ameen0saad/TO-DO-List/domain"
)

const (
	verificationTokenTTL = 24 * time.Hour
	resetOTPTTL          = 10 * time.Minute
	resendWindow         = time.Minute
)

var emailRx = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	tokenRepo   domain.VerificationTokenRepository
	resetRepo   domain.PasswordResetRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	mailer      domain.Mailer
	redisClient *redis.Client
	baseURL     string
	frontendURL string
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	tokenRepo domain.VerificationTokenRepository,
	resetRepo domain.PasswordResetRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	mailer domain.Mailer,
	redisClient *redis.Client,
	baseURL, frontendURL string,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		tokenRepo:   tokenRepo,
		resetRepo:   resetRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		mailer:      mailer,
		redisClient: redisClient,
		baseURL:     baseURL,
		frontendURL: frontendURL,
	}
}

// Signup implements domain.AuthService. The email is stored lowercased and
// the account starts unverified; a 24h verification token is emailed.
func (s *AuthServiceImpl) Signup(ctx context.Context, name, email, password, confirm string) (*domain.User, error) {
	if name == "" || email == "" || password == "" || confirm == "" {
		return nil, domain.Validation("please provide name, email, password and confirmPassword")
	}
	if password != confirm {
		return nil, domain.Validation("passwords are not the same")
	}
	if !emailRx.MatchString(email) {
		return nil, domain.Validation("please provide a valid email")
	}
	if len(password) < 8 {
		return nil, domain.Validation("password must be at least 8 characters")
	}
	if len(name) < 3 || len(name) > 30 {
		return nil, domain.Validation("name must be between 3 and 30 characters")
	}

	hash, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        strings.ToLower(email),
		PasswordHash: &hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.issueVerificationToken(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login implements domain.AuthService. An unverified account gets a fresh
// verification email (reissuing the token when missing or expired) and a
// 401 telling the user to verify first.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.Validation("please provide email and password")
	}
	if !emailRx.MatchString(email) {
		return nil, domain.Validation("please provide a valid email")
	}

	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.Unauthenticated("incorrect email or password")
		}
		return nil, err
	}
	if user.PasswordHash == nil || !s.passwordSvc.Verify(*user.PasswordHash, password) {
		return nil, domain.Unauthenticated("incorrect email or password")
	}

	if !user.Verified {
		if err := s.resendVerification(ctx, user); err != nil {
			return nil, err
		}
		return nil, domain.Unauthenticated("please verify your email to login")
	}

	token, err := s.tokenSvc.Sign(user.ID, domain.PurposeAccess)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	return &domain.AuthResult{User: user, Token: token}, nil
}

// Profile implements domain.AuthService
func (s *AuthServiceImpl) Profile(ctx context.Context, userID uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// UpdatePassword implements domain.AuthService. The change timestamp
// invalidates every previously issued token; a fresh one is returned.
func (s *AuthServiceImpl) UpdatePassword(ctx context.Context, userID uint, password, confirm string) (*domain.AuthResult, error) {
	if err := validateNewPassword(password, confirm); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	hash, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, hash, time.Now()); err != nil {
		return nil, err
	}

	token, err := s.tokenSvc.Sign(user.ID, domain.PurposeAccess)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	return &domain.AuthResult{User: user, Token: token}, nil
}

// VerifyEmail implements domain.AuthService. Consuming one token purges all
// of the user's tokens.
func (s *AuthServiceImpl) VerifyEmail(ctx context.Context, userID uint, token string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	record, err := s.tokenRepo.FindByUserAndToken(ctx, userID, token)
	if err != nil {
		return err
	}
	if record.ExpiresAt.Before(time.Now()) {
		return domain.TransientAuth("verification token has expired, please log in to request a new one")
	}

	if err := s.userRepo.SetVerified(ctx, userID); err != nil {
		return err
	}
	if err := s.tokenRepo.DeleteAllForUser(ctx, userID); err != nil {
		return err
	}

	if err := s.mailer.SendWelcome(user, s.frontendURL); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}

// ForgotPassword implements domain.AuthService: first step of the reset
// chain. The returned otp-session token embeds the OTP record id, not the
// user id.
func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", domain.Validation("please provide your email")
	}
	if !emailRx.MatchString(email) {
		return "", domain.Validation("please provide a valid email")
	}

	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.Validation("there is no user with that email address")
		}
		return "", err
	}

	if err := s.throttleResend(ctx, "otp:res:"+user.Email); err != nil {
		return "", err
	}

	code, err := generateOTPCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP code: %w", err)
	}
	hash, err := s.passwordSvc.Hash(code)
	if err != nil {
		return "", fmt.Errorf("failed to hash OTP code: %w", err)
	}

	otp := &domain.PasswordResetOTP{
		CodeHash:  hash,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(resetOTPTTL),
	}
	if err := s.resetRepo.Create(ctx, otp); err != nil {
		return "", err
	}

	if err := s.mailer.SendOTP(user, code); err != nil {
		return "", fmt.Errorf("failed to send OTP email: %w", err)
	}

	token, err := s.tokenSvc.Sign(otp.ID, domain.PurposeOTP)
	if err != nil {
		return "", fmt.Errorf("failed to sign OTP session token: %w", err)
	}
	return token, nil
}

// VerifyOTP implements domain.AuthService: second step of the reset chain.
// The OTP record is consumed and exchanged for a reset-session token bound
// to the user.
func (s *AuthServiceImpl) VerifyOTP(ctx context.Context, otpSessionToken, code string) (string, error) {
	if code == "" {
		return "", domain.Validation("please provide your OTP")
	}

	claims, err := s.tokenSvc.Verify(otpSessionToken, domain.PurposeOTP)
	if err != nil {
		return "", domain.Unauthenticated("session expired or invalid")
	}

	otp, err := s.resetRepo.FindByID(ctx, claims.Subject)
	if err != nil {
		return "", err
	}
	if otp.ExpiresAt.Before(time.Now()) {
		return "", domain.TransientAuth("the OTP has expired, please request a new one")
	}
	if !s.passwordSvc.Verify(otp.CodeHash, code) {
		return "", domain.Validation("the OTP is incorrect, please try again")
	}

	user, err := s.userRepo.FindByID(ctx, otp.UserID)
	if err != nil {
		return "", err
	}
	if err := s.resetRepo.Delete(ctx, otp.ID); err != nil {
		return "", err
	}

	token, err := s.tokenSvc.Sign(user.ID, domain.PurposeReset)
	if err != nil {
		return "", fmt.Errorf("failed to sign reset session token: %w", err)
	}
	return token, nil
}

// ResetPassword implements domain.AuthService: final step of the reset
// chain. Only reset-purpose tokens are accepted.
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, resetSessionToken, password, confirm string) (*domain.AuthResult, error) {
	if err := validateNewPassword(password, confirm); err != nil {
		return nil, err
	}

	claims, err := s.tokenSvc.Verify(resetSessionToken, domain.PurposeReset)
	if err != nil {
		return nil, domain.Unauthenticated("session expired or invalid")
	}

	user, err := s.userRepo.FindByID(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if user.PasswordHash != nil && s.passwordSvc.Verify(*user.PasswordHash, password) {
		return nil, domain.Validation("new password must be different from current password")
	}

	hash, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, hash, time.Now()); err != nil {
		return nil, err
	}

	token, err := s.tokenSvc.Sign(user.ID, domain.PurposeAccess)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	return &domain.AuthResult{User: user, Token: token}, nil
}

// FindOrCreateOAuthUser implements domain.AuthService: first OAuth login
// creates a verified account with no local password.
func (s *AuthServiceImpl) FindOrCreateOAuthUser(ctx context.Context, name, email string) (*domain.AuthResult, error) {
	normalized := strings.ToLower(email)
	user, err := s.userRepo.FindByEmail(ctx, normalized)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		user = &domain.User{
			Name:     name,
			Email:    normalized,
			Verified: true,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
	}

	token, err := s.tokenSvc.Sign(user.ID, domain.PurposeAccess)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	return &domain.AuthResult{User: user, Token: token}, nil
}

// issueVerificationToken creates and emails a fresh verification token.
func (s *AuthServiceImpl) issueVerificationToken(ctx context.Context, user *domain.User) error {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("failed to generate verification token: %w", err)
	}

	token := &domain.VerificationToken{
		Token:     hex.EncodeToString(raw),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(verificationTokenTTL),
	}
	if err := s.tokenRepo.Create(ctx, token); err != nil {
		return err
	}

	url := fmt.Sprintf("%s/api/v1/users/%d/verifyEmail/%s", s.baseURL, user.ID, token.Token)
	if err := s.mailer.SendVerification(user, url); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}

// resendVerification reuses a still-valid token or issues a new one, behind
// the redis resend throttle.
func (s *AuthServiceImpl) resendVerification(ctx context.Context, user *domain.User) error {
	if err := s.throttleResend(ctx, "verify:res:"+user.Email); err != nil {
		return err
	}

	existing, err := s.tokenRepo.FindLatestByUser(ctx, user.ID)
	if err == nil && existing.ExpiresAt.After(time.Now()) {
		url := fmt.Sprintf("%s/api/v1/users/%d/verifyEmail/%s", s.baseURL, user.ID, existing.Token)
		if err := s.mailer.SendVerification(user, url); err != nil {
			return fmt.Errorf("failed to send verification email: %w", err)
		}
		return nil
	}
	return s.issueVerificationToken(ctx, user)
}

// throttleResend rejects a second send inside the resend window. The key
// expires on its own, so a stuck window cannot outlive the TTL.
func (s *AuthServiceImpl) throttleResend(ctx context.Context, key string) error {
	ttl, err := s.redisClient.TTL(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to check resend throttle: %w", err)
	}
	if ttl > 0 {
		return domain.NewError(429, fmt.Sprintf("please wait %d seconds before requesting a new email", int64(ttl.Seconds())))
	}
	if err := s.redisClient.Set(ctx, key, 1, resendWindow).Err(); err != nil {
		return fmt.Errorf("failed to set resend throttle: %w", err)
	}
	return nil
}

func validateNewPassword(password, confirm string) error {
	if password == "" || confirm == "" {
		return domain.Validation("please provide password and confirmPassword")
	}
	if password != confirm {
		return domain.Validation("passwords are not the same")
	}
	if len(password) < 8 {
		return domain.Validation("password must be at least 8 characters")
	}
	return nil
}

// generateOTPCode returns a 6-digit code from crypto/rand.
func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
