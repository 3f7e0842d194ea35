package handler

// --- Request types ---

type registerRequest struct {
	Username string `json:"username" validate:"required,min=5"`
	Password string `json:"password" validate:"required,min=5"`
	// Role is checked against the registration enum by the service so that
	// the multi-word role names keep their exact error message.
	Role   string  `json:"role"`
	BossID *string `json:"bossId"`
}

type authenticateRequest struct {
	Username string `json:"username" validate:"required,min=5"`
	Password string `json:"password" validate:"required,min=5"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type changeBossRequest struct {
	BossID string `json:"bossId" validate:"required"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract is not coupled to
// internal service changes. The password hash has no field here at all.

type userResponse struct {
	ID           string   `json:"id"`
	Username     string   `json:"username"`
	Role         string   `json:"role"`
	BossID       *string  `json:"bossId"`
	Subordinates []string `json:"subordinates"`
}

type registerResponse struct {
	Message string       `json:"message"`
	Data    userResponse `json:"data"`
}

type authenticateResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	Token string `json:"token"`
}

type listUsersResponse struct {
	Data []userResponse `json:"data"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// errorsResponse documents the error envelope for swagger only; the actual
// rendering happens in the central error handler.
type errorsResponse struct {
	Errors []string `json:"errors"`
}
