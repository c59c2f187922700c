package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ameen0saad/TO-DO-List/domain"
)

// JWTServiceImpl implements domain.TokenService. The same signing secret
// backs all three credential phases; the purpose claim keeps a token from
// one phase from being replayed in another.
type JWTServiceImpl struct {
	secretKey []byte
	issuer    string
	ttls      map[domain.TokenPurpose]time.Duration
}

// NewJWTService creates a new JWT service
func NewJWTService(secretKey, issuer string, accessTTL, otpTTL, resetTTL time.Duration) domain.TokenService {
	return &JWTServiceImpl{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		ttls: map[domain.TokenPurpose]time.Duration{
			domain.PurposeAccess: accessTTL,
			domain.PurposeOTP:    otpTTL,
			domain.PurposeReset:  resetTTL,
		},
	}
}

// generateJTI creates a unique JWT ID
func (j *JWTServiceImpl) generateJTI() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// Sign implements domain.TokenService. The subject is a user id for access
// and reset tokens, and an OTP record id for otp-session tokens.
func (j *JWTServiceImpl) Sign(subject uint, purpose domain.TokenPurpose) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":     float64(subject),
		"purpose": string(purpose),
		"iss":     j.issuer,
		"iat":     now.Unix(),
		"exp":     now.Add(j.ttls[purpose]).Unix(),
		"jti":     j.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// Verify implements domain.TokenService
func (j *JWTServiceImpl) Verify(tokenString string, purpose domain.TokenPurpose) (*domain.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenInvalid
		}
		return j.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	subject, ok := claims["sub"].(float64)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	tokenPurpose, ok := claims["purpose"].(string)
	if !ok || domain.TokenPurpose(tokenPurpose) != purpose {
		return nil, domain.ErrTokenInvalid
	}
	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	return &domain.TokenClaims{
		Subject:   uint(subject),
		Purpose:   domain.TokenPurpose(tokenPurpose),
		IssuedAt:  int64(iat),
		ExpiresAt: int64(exp),
	}, nil
}
