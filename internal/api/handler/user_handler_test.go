package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/orgtree/hierarchy-api/internal/core/domain"
	"github.com/orgtree/hierarchy-api/internal/core/ports"
)

type stubUserService struct {
	registerFn     func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	authenticateFn func(ctx context.Context, username, password string) (*ports.AuthTokens, error)
	refreshFn      func(ctx context.Context, refreshToken string) (string, error)
	listFn         func(ctx context.Context, requester ports.TokenClaims) ([]*domain.User, error)
	reassignFn     func(ctx context.Context, in ports.ReassignBossInput) error
	hierarchyFn    func(ctx context.Context) ([]*ports.HierarchyNode, error)
}

func (s *stubUserService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubUserService) Authenticate(ctx context.Context, username, password string) (*ports.AuthTokens, error) {
	return s.authenticateFn(ctx, username, password)
}

func (s *stubUserService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	return s.refreshFn(ctx, refreshToken)
}

func (s *stubUserService) ListUsers(ctx context.Context, requester ports.TokenClaims) ([]*domain.User, error) {
	return s.listFn(ctx, requester)
}

func (s *stubUserService) ReassignBoss(ctx context.Context, in ports.ReassignBossInput) error {
	return s.reassignFn(ctx, in)
}

func (s *stubUserService) Hierarchy(ctx context.Context) ([]*ports.HierarchyNode, error) {
	return s.hierarchyFn(ctx)
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestUserHandler_Register_Success(t *testing.T) {
	bossID := "u1"
	stub := &stubUserService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (*domain.User, error) {
			if in.Username != "boss1_user" || in.Role != "" {
				t.Fatalf("unexpected input: %+v", in)
			}
			if in.BossID == nil || *in.BossID != bossID {
				t.Fatalf("expected bossId %s, got %v", bossID, in.BossID)
			}
			return &domain.User{
				ID:           "u2",
				Username:     in.Username,
				Role:         domain.RoleRegularUser,
				BossID:       in.BossID,
				Subordinates: []string{},
			}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/users",
		`{"username":"boss1_user","password":"secret-pass","bossId":"u1"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "User registered successfully" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
	data, ok := resp["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", resp["data"])
	}
	if data["id"] != "u2" || data["username"] != "boss1_user" || data["role"] != domain.RoleRegularUser {
		t.Fatalf("unexpected data payload: %+v", data)
	}
	if _, leaked := data["password"]; leaked {
		t.Fatal("password must never appear in responses")
	}
}

func TestUserHandler_Register_ValidationMessages(t *testing.T) {
	h := NewUserHandler(&stubUserService{})

	c, _ := newTestContext(t, http.MethodPost, "/users", `{"username":"abc","password":""}`)
	err := h.Register(c)

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	joined := strings.Join(ve.Messages, "; ")
	if !strings.Contains(joined, "Username must be at least 5 characters long") {
		t.Fatalf("missing username message in %q", joined)
	}
	if !strings.Contains(joined, "Password is required") {
		t.Fatalf("missing password message in %q", joined)
	}
}

func TestUserHandler_Register_ServiceErrorPropagates(t *testing.T) {
	stub := &stubUserService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrUsernameTaken
		},
	}
	h := NewUserHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/users",
		`{"username":"admin_user","password":"secret-pass","role":"Administrator"}`)
	if err := h.Register(c); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestUserHandler_Authenticate_Success(t *testing.T) {
	stub := &stubUserService{
		authenticateFn: func(_ context.Context, username, password string) (*ports.AuthTokens, error) {
			if username != "admin_user" || password != "secret-pass" {
				t.Fatalf("unexpected credentials: %s", username)
			}
			return &ports.AuthTokens{AccessToken: "acc", RefreshToken: "ref"}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/users/authenticate",
		`{"username":"admin_user","password":"secret-pass"}`)
	if err := h.Authenticate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "acc" || resp["refreshToken"] != "ref" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestUserHandler_Refresh_Success(t *testing.T) {
	stub := &stubUserService{
		refreshFn: func(_ context.Context, token string) (string, error) {
			if token != "ref" {
				t.Fatalf("unexpected token %q", token)
			}
			return "acc2", nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/users/refresh", `{"refreshToken":"ref"}`)
	if err := h.Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"token":"acc2"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestUserHandler_List_UsesClaims(t *testing.T) {
	stub := &stubUserService{
		listFn: func(_ context.Context, requester ports.TokenClaims) ([]*domain.User, error) {
			if requester.UserID != "u1" || requester.Role != domain.RoleBoss {
				t.Fatalf("unexpected requester: %+v", requester)
			}
			return []*domain.User{
				{ID: "u1", Username: "boss1_user", Role: domain.RoleBoss, Subordinates: []string{"u2"}},
				{ID: "u2", Username: "sub1_user", Role: domain.RoleRegularUser},
			}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/users", "")
	c.Set("user_id", "u1")
	c.Set("role", domain.RoleBoss)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("expected 2 users, got %d", len(resp.Data))
	}
	// A nil subordinate slice must still serialize as an empty array.
	if subs, ok := resp.Data[1]["subordinates"].([]any); !ok || len(subs) != 0 {
		t.Fatalf("expected empty subordinates array, got %v", resp.Data[1]["subordinates"])
	}
}

func TestUserHandler_List_MissingClaims(t *testing.T) {
	h := NewUserHandler(&stubUserService{})

	c, _ := newTestContext(t, http.MethodGet, "/users", "")
	if err := h.List(c); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestUserHandler_ChangeBoss_Success(t *testing.T) {
	stub := &stubUserService{
		reassignFn: func(_ context.Context, in ports.ReassignBossInput) error {
			if in.UserID != "u3" || in.BossID != "u1" {
				t.Fatalf("unexpected input: %+v", in)
			}
			if in.Requester.UserID != "u2" || in.Requester.Role != domain.RoleBoss {
				t.Fatalf("unexpected requester: %+v", in.Requester)
			}
			return nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPatch, "/users/u3", `{"bossId":"u1"}`)
	c.SetParamNames("userId")
	c.SetParamValues("u3")
	c.Set("user_id", "u2")
	c.Set("role", domain.RoleBoss)

	if err := h.ChangeBoss(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "User boss changed successfully") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestUserHandler_ChangeBoss_MissingBossID(t *testing.T) {
	h := NewUserHandler(&stubUserService{})

	c, _ := newTestContext(t, http.MethodPatch, "/users/u3", `{}`)
	c.SetParamNames("userId")
	c.SetParamValues("u3")

	err := h.ChangeBoss(c)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Messages) != 1 || ve.Messages[0] != "BossID is required" {
		t.Fatalf("unexpected messages: %v", ve.Messages)
	}
}

func TestUserHandler_Visualize(t *testing.T) {
	stub := &stubUserService{
		hierarchyFn: func(context.Context) ([]*ports.HierarchyNode, error) {
			return []*ports.HierarchyNode{
				{
					ID: "u1", Username: "admin_user", Role: domain.RoleAdministrator,
					Subordinates: []*ports.HierarchyNode{
						{ID: "u2", Username: "sub1_user", Role: domain.RoleRegularUser, Subordinates: []*ports.HierarchyNode{}},
					},
				},
			}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/visualize", "")
	if err := h.Visualize(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var forest []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &forest); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(forest) != 1 || forest[0]["id"] != "u1" {
		t.Fatalf("unexpected forest: %v", forest)
	}
}

func TestUserHandler_Visualize_EmptyForest(t *testing.T) {
	stub := &stubUserService{
		hierarchyFn: func(context.Context) ([]*ports.HierarchyNode, error) {
			return nil, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/visualize", "")
	if err := h.Visualize(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %s", rec.Body.String())
	}
}

var _ ports.UserService = (*stubUserService)(nil)
