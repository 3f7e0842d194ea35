package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/orgtree/hierarchy-api/internal/core/domain"
	"github.com/orgtree/hierarchy-api/internal/core/service"
)

func newAuthContext(authorization string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestAuth_ValidTokenInjectsClaims(t *testing.T) {
	creds := service.NewCredentialService("access-secret", "refresh-secret", time.Minute, time.Hour)
	token, err := creds.IssueAccessToken("u1", domain.RoleBoss)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	called := false
	next := func(c echo.Context) error {
		called = true
		if c.Get("user_id") != "u1" || c.Get("role") != domain.RoleBoss {
			t.Fatalf("claims not injected: %v %v", c.Get("user_id"), c.Get("role"))
		}
		return nil
	}

	c := newAuthContext("Bearer " + token)
	if err := Auth(creds)(next)(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if !called {
		t.Fatal("next handler was not called")
	}
}

func TestAuth_Rejections(t *testing.T) {
	creds := service.NewCredentialService("access-secret", "refresh-secret", time.Minute, time.Hour)
	refreshToken, err := creds.IssueRefreshToken("u1", domain.RoleBoss)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	otherCreds := service.NewCredentialService("other-secret", "refresh-secret", time.Minute, time.Hour)
	foreignToken, err := otherCreds.IssueAccessToken("u1", domain.RoleBoss)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	cases := []struct {
		name          string
		authorization string
		want          error
	}{
		{"missing header", "", domain.ErrTokenInvalid},
		{"no bearer prefix", "token-without-scheme", domain.ErrTokenInvalid},
		{"empty token", "Bearer ", domain.ErrTokenInvalid},
		{"wrong scheme", "Basic dXNlcjpwYXNz", domain.ErrTokenInvalid},
		{"garbage token", "Bearer not.a.token", domain.ErrTokenMalformed},
		{"refresh token is not an access token", "Bearer " + refreshToken, domain.ErrTokenInvalid},
		{"token signed with another secret", "Bearer " + foreignToken, domain.ErrTokenInvalid},
	}

	next := func(echo.Context) error {
		t.Fatal("next handler must not run")
		return nil
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newAuthContext(tc.authorization)
			if err := Auth(creds)(next)(c); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	creds := service.NewCredentialService("access-secret", "refresh-secret", time.Minute, time.Hour)

	// Sign with the same secret but an already-past expiry.
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": "u1",
		"role":    domain.RoleBoss,
		"iat":     jwt.NewNumericDate(now.Add(-2 * time.Hour)),
		"exp":     jwt.NewNumericDate(now.Add(-time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("access-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	next := func(echo.Context) error {
		t.Fatal("next handler must not run")
		return nil
	}
	c := newAuthContext("Bearer " + token)
	if err := Auth(creds)(next)(c); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}
