package dto

// LoginRequest is the login form payload
type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// SignupRequest is the sign-up form payload. Role is never client-supplied;
// new accounts always start as registrar.
type SignupRequest struct {
	Username string `form:"username" binding:"required,min=3,max=50"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,min=8"`
	FullName string `form:"full_name" binding:"required,max=100"`
}

// ChangePasswordRequest is the change-password form payload
type ChangePasswordRequest struct {
	CurrentPassword string `form:"current_password" binding:"required"`
	NewPassword     string `form:"new_password" binding:"required,min=8"`
	ConfirmPassword string `form:"confirm_password" binding:"required"`
}
