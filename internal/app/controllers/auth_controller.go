package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/schoolsys/registrar/internal/app/models/dto"
	"github.com/schoolsys/registrar/internal/app/services"
	"github.com/schoolsys/registrar/internal/middleware"
	"github.com/schoolsys/registrar/internal/pkg/apperrors"
	"github.com/schoolsys/registrar/internal/pkg/auth"
	"github.com/schoolsys/registrar/internal/pkg/flash"
)

// AuthController handles login, sign-up, password change and logout
type AuthController struct {
	authService services.AuthService
	sessions    *auth.SessionService
	cookieName  string
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, sessions *auth.SessionService, cookieName string, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		sessions:    sessions,
		cookieName:  cookieName,
		logger:      logger,
	}
}

// Home redirects to the dashboard when a session exists, otherwise to login
func (ctl *AuthController) Home(c *gin.Context) {
	if _, ok := middleware.CurrentIdentity(c); ok {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

// LoginForm renders the login page. Rendered even when a session cookie is
// present: a session whose account was deleted can only recover by logging
// in again, so the form must stay reachable.
func (ctl *AuthController) LoginForm(c *gin.Context) {
	render(c, "login.html", nil)
}

// Login authenticates the submitted credentials and establishes a session
func (ctl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		flash.Set(c, "danger", "Username and password are required")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	user, err := ctl.authService.Login(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleError(c, err, "/login")
		return
	}

	token, err := ctl.sessions.Issue(user)
	if err != nil {
		ctl.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to issue session token")
		middleware.HandleError(c, err, "/login")
		return
	}

	maxAge := int(ctl.sessions.TTL().Seconds())
	c.SetCookie(ctl.cookieName, token, maxAge, "/", "", false, true)

	flash.Set(c, "success", "Login successful!")
	c.Redirect(http.StatusFound, "/dashboard")
}

// SignupForm renders the sign-up page
func (ctl *AuthController) SignupForm(c *gin.Context) {
	render(c, "signup.html", nil)
}

// Signup registers a new staff account with the default registrar role
func (ctl *AuthController) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBind(&req); err != nil {
		flash.Set(c, "danger", "All fields are required: username, email, password (8+ characters) and full name")
		c.Redirect(http.StatusFound, "/signup")
		return
	}

	if _, err := ctl.authService.Register(c.Request.Context(), &req); err != nil {
		middleware.HandleError(c, err, "/signup")
		return
	}

	flash.Set(c, "success", "Account created successfully! Please log in.")
	c.Redirect(http.StatusFound, "/login")
}

// Dashboard renders the landing page for authenticated staff
func (ctl *AuthController) Dashboard(c *gin.Context) {
	render(c, "dashboard.html", nil)
}

// ChangePasswordForm renders the change-password page
func (ctl *AuthController) ChangePasswordForm(c *gin.Context) {
	render(c, "change_password.html", nil)
}

// ChangePassword replaces the caller's password; the session stays valid
func (ctl *AuthController) ChangePassword(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var req dto.ChangePasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		flash.Set(c, "danger", "All password fields are required (new password 8+ characters)")
		c.Redirect(http.StatusFound, "/change_password")
		return
	}

	if err := ctl.authService.ChangePassword(c.Request.Context(), identity.UserID, &req); err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			flash.Set(c, "danger", "Current password is incorrect")
			c.Redirect(http.StatusFound, "/change_password")
			return
		}
		middleware.HandleError(c, err, "/change_password")
		return
	}

	flash.Set(c, "success", "Password changed successfully!")
	c.Redirect(http.StatusFound, "/dashboard")
}

// Logout clears the session cookie. Idempotent; always succeeds.
func (ctl *AuthController) Logout(c *gin.Context) {
	c.SetCookie(ctl.cookieName, "", -1, "/", "", false, true)
	flash.Set(c, "info", "You have been logged out")
	c.Redirect(http.StatusFound, "/login")
}

// Users renders the staff user list. Admin only.
func (ctl *AuthController) Users(c *gin.Context) {
	users, err := ctl.authService.ListUsers(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err, "/dashboard")
		return
	}

	render(c, "users.html", gin.H{"Users": users})
}
