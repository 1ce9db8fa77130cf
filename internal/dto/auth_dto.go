package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegisterRequest struct {
	Username string `json:"username"  validate:"required,min=1,max=150"`
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required,min=8"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1"`
	Password string `json:"password" validate:"required,min=4"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type CreateUserRequest struct {
	Username string  `json:"username"  validate:"required,min=1,max=150"`
	FullName string  `json:"full_name" validate:"required,min=2,max=100"`
	Email    *string `json:"email"     validate:"omitempty,email"`
	Password string  `json:"password"  validate:"required,min=8"`
	Role     string  `json:"role"      validate:"required,oneof=admin manager cashier waiter chef customer"`
}

type UpdateUserRequest struct {
	FullName string  `json:"full_name" validate:"omitempty,min=2,max=100"`
	Email    *string `json:"email"     validate:"omitempty,email"`
	Role     string  `json:"role"      validate:"omitempty,oneof=admin manager cashier waiter chef customer"`
	Password string  `json:"password"  validate:"omitempty,min=8"`
}

// UpdateProfileRequest is the self-service subset: username and role are
// deliberately absent.
type UpdateProfileRequest struct {
	FullName string  `json:"full_name" validate:"omitempty,min=2,max=100"`
	Email    *string `json:"email"     validate:"omitempty,email"`
	Password string  `json:"password"  validate:"omitempty,min=8"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UserResponse struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	FullName string  `json:"full_name"`
	Email    *string `json:"email"`
	Role     string  `json:"role"`
	Active   bool    `json:"active"`
}

type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"` // seconds
	User         UserResponse `json:"user"`
}
