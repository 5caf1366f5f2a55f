package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/schoolsys/registrar/internal/app/models"
	"github.com/schoolsys/registrar/internal/pkg/auth"
)

const testCookieName = "registrar_session"

func newTestRouter() (*gin.Engine, *auth.SessionService) {
	gin.SetMode(gin.TestMode)

	sessions := auth.NewSessionService(auth.SessionConfig{
		SecretKey: "test-secret",
		TTL:       time.Hour,
		Issuer:    "registrar",
	})
	m := NewSessionMiddleware(sessions, testCookieName)

	router := gin.New()
	router.Use(m.LoadSession())

	authed := router.Group("")
	authed.Use(m.RequireSession())
	authed.GET("/dashboard", func(c *gin.Context) {
		identity, _ := CurrentIdentity(c)
		c.String(http.StatusOK, identity.Username)
	})

	admin := authed.Group("")
	admin.Use(m.RequireAdmin())
	admin.GET("/users", func(c *gin.Context) {
		c.String(http.StatusOK, "admin page")
	})

	return router, sessions
}

func sessionCookie(t *testing.T, sessions *auth.SessionService, role models.Role) *http.Cookie {
	t.Helper()
	token, err := sessions.Issue(&models.User{ID: 7, Username: "jdoe", Role: role})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	return &http.Cookie{Name: testCookieName, Value: token}
}

func TestRequireSession_RedirectsAnonymous(t *testing.T) {
	router, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("Expected 302, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Errorf("Expected redirect to /login, got %s", loc)
	}
}

func TestRequireSession_PassesAuthenticated(t *testing.T) {
	router, sessions := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(sessionCookie(t, sessions, models.RoleRegistrar))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if w.Body.String() != "jdoe" {
		t.Errorf("Expected identity to reach the handler, got '%s'", w.Body.String())
	}
}

func TestLoadSession_DropsTamperedCookie(t *testing.T) {
	router, sessions := newTestRouter()

	cookie := sessionCookie(t, sessions, models.RoleRegistrar)
	cookie.Value += "tampered"

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("Expected 302 for tampered cookie, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Errorf("Expected redirect to /login, got %s", loc)
	}

	cleared := false
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Errorf("Expected tampered session cookie to be cleared")
	}
}

func TestRequireAdmin_BlocksRegistrar(t *testing.T) {
	router, sessions := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.AddCookie(sessionCookie(t, sessions, models.RoleRegistrar))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("Expected 302 for registrar on admin page, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/dashboard" {
		t.Errorf("Expected redirect to /dashboard, got %s", loc)
	}
}

func TestRequireAdmin_PassesAdmin(t *testing.T) {
	router, sessions := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.AddCookie(sessionCookie(t, sessions, models.RoleAdmin))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for admin, got %d", w.Code)
	}
}
