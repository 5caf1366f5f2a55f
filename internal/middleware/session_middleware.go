package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolsys/registrar/internal/app/models"
	"github.com/schoolsys/registrar/internal/pkg/auth"
	"github.com/schoolsys/registrar/internal/pkg/flash"
)

// identityKey is the gin context key carrying the authenticated identity
const identityKey = "identity"

// Identity is the request-scoped authenticated identity taken from a verified
// session cookie. Handlers read it from the context instead of ambient state.
type Identity struct {
	UserID   int64
	Username string
	Role     models.Role
}

// SessionMiddleware resolves and gates the session cookie
type SessionMiddleware struct {
	sessions   *auth.SessionService
	cookieName string
}

// NewSessionMiddleware creates a new SessionMiddleware
func NewSessionMiddleware(sessions *auth.SessionService, cookieName string) *SessionMiddleware {
	return &SessionMiddleware{
		sessions:   sessions,
		cookieName: cookieName,
	}
}

// CookieName returns the configured session cookie name
func (m *SessionMiddleware) CookieName() string {
	return m.cookieName
}

// LoadSession puts the identity from a valid session cookie into the request
// context. It never aborts; public pages branch on presence themselves.
func (m *SessionMiddleware) LoadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(m.cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		claims, err := m.sessions.Validate(token)
		if err != nil {
			// Expired or tampered cookie: treat as unauthenticated and drop it
			c.SetCookie(m.cookieName, "", -1, "/", "", false, true)
			c.Next()
			return
		}

		c.Set(identityKey, Identity{
			UserID:   claims.UserID,
			Username: claims.Username,
			Role:     models.Role(claims.Role),
		})
		c.Next()
	}
}

// RequireSession passes iff an authenticated identity is present; otherwise it
// redirects to the login page and stops the chain.
func (m *SessionMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentIdentity(c); !ok {
			flash.Set(c, "danger", "Please log in to access this page")
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin passes iff the identity's role is admin; otherwise it redirects
// to the dashboard and stops the chain. Must run after RequireSession.
func (m *SessionMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok || identity.Role != models.RoleAdmin {
			flash.Set(c, "danger", "Admin access required")
			c.Redirect(http.StatusFound, "/dashboard")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the authenticated identity from the request context
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, false
	}
	identity, ok := value.(Identity)
	return identity, ok
}
