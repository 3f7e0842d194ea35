package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orgtree/hierarchy-api/internal/core/domain"
	"github.com/orgtree/hierarchy-api/internal/core/ports"
)

// UserHandler handles all /users and /visualize routes.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func toUserResponse(u *domain.User) userResponse {
	subs := u.Subordinates
	if subs == nil {
		subs = []string{}
	}
	return userResponse{
		ID:           u.ID,
		Username:     u.Username,
		Role:         u.Role,
		BossID:       u.BossID,
		Subordinates: subs,
	}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  errorsResponse
// @Failure      404   {object}  errorsResponse
// @Failure      409   {object}  errorsResponse
// @Router       /users [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.service.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
		BossID:   req.BossID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, registerResponse{
		Message: "User registered successfully",
		Data:    toUserResponse(user),
	})
}

// Authenticate verifies credentials and returns an access/refresh token pair.
//
// @Summary      Authenticate a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      authenticateRequest  true  "Credentials"
// @Success      200   {object}  authenticateResponse
// @Failure      400   {object}  errorsResponse
// @Failure      401   {object}  errorsResponse
// @Router       /users/authenticate [post]
func (h *UserHandler) Authenticate(c echo.Context) error {
	var req authenticateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tokens, err := h.service.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authenticateResponse{
		Token:        tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

// Refresh exchanges a refresh token for a new access token.
//
// @Summary      Refresh the access token
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  true  "Refresh token"
// @Success      200   {object}  refreshResponse
// @Failure      400   {object}  errorsResponse
// @Failure      401   {object}  errorsResponse
// @Router       /users/refresh [post]
func (h *UserHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.service.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, refreshResponse{Token: token})
}

// List returns the users visible to the requester.
//
// @Summary      List visible users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listUsersResponse
// @Failure      401  {object}  errorsResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	users, err := h.service.ListUsers(c.Request().Context(), claims)
	if err != nil {
		return err
	}

	data := make([]userResponse, 0, len(users))
	for _, u := range users {
		data = append(data, toUserResponse(u))
	}
	return c.JSON(http.StatusOK, listUsersResponse{Data: data})
}

// ChangeBoss reassigns a user to a new boss.
//
// @Summary      Change a user's boss
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string             true  "User id to reassign"
// @Param        body    body      changeBossRequest  true  "New boss id"
// @Success      200     {object}  messageResponse
// @Failure      400     {object}  errorsResponse
// @Failure      403     {object}  errorsResponse
// @Failure      404     {object}  errorsResponse
// @Router       /users/{userId} [patch]
func (h *UserHandler) ChangeBoss(c echo.Context) error {
	var req changeBossRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	err = h.service.ReassignBoss(c.Request().Context(), ports.ReassignBossInput{
		Requester: claims,
		UserID:    c.Param("userId"),
		BossID:    req.BossID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "User boss changed successfully"})
}

// Visualize renders the whole hierarchy as nested trees. Testing aid.
//
// @Summary      Visualize the user hierarchy
// @Tags         users
// @Produce      json
// @Success      200  {array}  ports.HierarchyNode
// @Router       /visualize [get]
func (h *UserHandler) Visualize(c echo.Context) error {
	forest, err := h.service.Hierarchy(c.Request().Context())
	if err != nil {
		return err
	}
	if forest == nil {
		forest = []*ports.HierarchyNode{}
	}
	return c.JSON(http.StatusOK, forest)
}
