package ports

import "time"

// TokenClaims is the identity carried by both access and refresh tokens.
type TokenClaims struct {
	UserID string
	Role   string
}

// CredentialService covers password hashing and token issuance/verification.
// Access and refresh tokens are signed with separate secrets so compromise of
// one cannot forge the other.
type CredentialService interface {
	HashPassword(plaintext string) (string, error)
	CheckPassword(plaintext, hash string) bool

	IssueAccessToken(userID, role string) (string, error)
	IssueRefreshToken(userID, role string) (string, error)
	VerifyAccessToken(token string) (*TokenClaims, error)
	VerifyRefreshToken(token string) (*TokenClaims, error)

	// RefreshTTL is the refresh-token lifetime, exposed so callers can align
	// external state (the Redis record) with token expiry.
	RefreshTTL() time.Duration
}
