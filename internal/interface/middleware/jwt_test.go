package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/classtalk/classtalk-api/pkg/helpers"
)

func newGateRouter(jwt *helpers.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", JWTAuth(jwt), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(CtxUserIDKey))
	})
	return r
}

func TestJWTAuthAcceptsValidCookie(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	r := newGateRouter(jwt)

	token, _, err := jwt.Generate("user-42")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: helpers.SessionCookieName, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", w.Code)
	}
	if w.Body.String() != "user-42" {
		t.Fatalf("resolved uid %q, want user-42", w.Body.String())
	}
}

func TestJWTAuthRejectsMissingCookie(t *testing.T) {
	r := newGateRouter(helpers.NewJWTManager("test-secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", w.Code)
	}
}

func TestJWTAuthRejectsBadToken(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	r := newGateRouter(jwt)

	for name, token := range map[string]string{
		"garbage": "not-a-token",
		"expired": mustToken(t, helpers.NewJWTManager("test-secret", -time.Minute)),
		"foreign": mustToken(t, helpers.NewJWTManager("other-secret", time.Hour)),
	} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: helpers.SessionCookieName, Value: token})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: status %d, want 401", name, w.Code)
		}
	}
}

func mustToken(t *testing.T, m *helpers.JWTManager) string {
	t.Helper()
	token, _, err := m.Generate("user-42")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return token
}
