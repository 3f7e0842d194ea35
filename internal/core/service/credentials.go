package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/orgtree/hierarchy-api/internal/core/domain"
	"github.com/orgtree/hierarchy-api/internal/core/ports"
)

const (
	bcryptCost        = 8
	defaultAccessTTL  = 20 * time.Minute
	defaultRefreshTTL = time.Hour
)

// CredentialService implements password hashing and the access/refresh token
// pair. The two token families are signed with separate secrets so one
// compromised secret cannot forge the other family.
type CredentialService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewCredentialService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *CredentialService {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &CredentialService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

type tokenClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (s *CredentialService) HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *CredentialService) CheckPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

func (s *CredentialService) IssueAccessToken(userID, role string) (string, error) {
	return s.issue(userID, role, s.accessSecret, s.accessTTL)
}

func (s *CredentialService) IssueRefreshToken(userID, role string) (string, error) {
	return s.issue(userID, role, s.refreshSecret, s.refreshTTL)
}

func (s *CredentialService) VerifyAccessToken(token string) (*ports.TokenClaims, error) {
	return s.verify(token, s.accessSecret)
}

func (s *CredentialService) VerifyRefreshToken(token string) (*ports.TokenClaims, error) {
	return s.verify(token, s.refreshSecret)
}

func (s *CredentialService) RefreshTTL() time.Duration {
	return s.refreshTTL
}

func (s *CredentialService) issue(userID, role string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// verify checks signature and expiry, translating the library's error kinds
// into the domain token taxonomy so raw crypto errors never leak upward.
func (s *CredentialService) verify(token string, secret []byte) (*ports.TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, domain.ErrTokenMalformed
		default:
			return nil, domain.ErrTokenInvalid
		}
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return nil, domain.ErrTokenInvalid
	}

	return &ports.TokenClaims{UserID: claims.UserID, Role: claims.Role}, nil
}
