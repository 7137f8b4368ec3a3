package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"abcbus/internal/domain/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret")

func authRouter(demoMode bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", Auth(testSecret, demoMode), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": GetUserID(c)})
	})
	return r
}

func signTestToken(t *testing.T, secret []byte, userID int64) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	s, err := token.SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestAuthAcceptsValidBearer(t *testing.T) {
	r := authRouter(false)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, testSecret, 42))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: %d body=%s", w.Code, w.Body.String())
	}
	if body := w.Body.String(); body != `{"userId":42}` {
		t.Fatalf("body: %s", body)
	}
}

func TestAuthRejectsWhenNotDemoMode(t *testing.T) {
	r := authRouter(false)

	for _, header := range []string{"", "Bearer garbage", "Token abc"} {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: status %d", header, w.Code)
		}
	}
}

func TestAuthRejectsForeignSignature(t *testing.T) {
	r := authRouter(false)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, []byte("other-secret"), 42))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status: %d", w.Code)
	}
}

func TestAuthDemoModeFallsBackToDemoUser(t *testing.T) {
	r := authRouter(true)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
	if body := w.Body.String(); body != `{"userId":1}` {
		t.Fatalf("body: %s", body)
	}
	if models.DemoUserID != 1 {
		t.Fatalf("demo user id changed: %d", models.DemoUserID)
	}
}

func TestAuthDemoModeStillHonorsRealToken(t *testing.T) {
	r := authRouter(true)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, testSecret, 7))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if body := w.Body.String(); body != `{"userId":7}` {
		t.Fatalf("body: %s", body)
	}
}
