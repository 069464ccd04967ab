package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func newGateRouter(resolve SessionResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/secure", SessionAuth(resolve), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": UserIDFrom(c)})
	})
	return r
}

func TestSessionAuth_ResolvedUser_PassesThrough(t *testing.T) {
	r := newGateRouter(func(c *gin.Context) (string, error) { return "u42", nil })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/secure", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["user"] != "u42" {
		t.Fatalf("handler saw user %q", body["user"])
	}
}

func TestSessionAuth_Failure_Aborts401(t *testing.T) {
	cases := []struct {
		name    string
		resolve SessionResolver
	}{
		{"resolver error", func(c *gin.Context) (string, error) { return "", ErrNoSession }},
		{"empty id", func(c *gin.Context) (string, error) { return "", nil }},
		{"arbitrary error", func(c *gin.Context) (string, error) { return "u1", errors.New("idp down") }},
	}
	for _, tc := range cases {
		r := newGateRouter(tc.resolve)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/secure", nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: status = %d, want 401", tc.name, w.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s: decode: %v", tc.name, err)
		}
		if body["code"] != "unauthorized" || body["message"] != "authentication required" {
			t.Fatalf("%s: unexpected envelope: %v", tc.name, body)
		}
	}
}

func signHS256(t *testing.T, secret, sub string, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestBearerTokenResolver(t *testing.T) {
	const secret = "test-secret"
	r := newGateRouter(BearerTokenResolver(secret))

	do := func(authz string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/secure", nil)
		if authz != "" {
			req.Header.Set("Authorization", authz)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	// Valid token yields the subject.
	good := signHS256(t, secret, "u7", time.Now().Add(time.Hour))
	if w := do("Bearer " + good); w.Code != http.StatusOK {
		t.Fatalf("valid token: status = %d; body=%s", w.Code, w.Body.String())
	}

	// Everything else is a 401.
	expired := signHS256(t, secret, "u7", time.Now().Add(-time.Hour))
	wrongKey := signHS256(t, "other-secret", "u7", time.Now().Add(time.Hour))
	noSub := func() string {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
		s, _ := tok.SignedString([]byte(secret))
		return s
	}()

	for name, authz := range map[string]string{
		"missing header":   "",
		"not bearer":       "Basic dXNlcjpwYXNz",
		"malformed token":  "Bearer not.a.jwt",
		"expired":          "Bearer " + expired,
		"wrong key":        "Bearer " + wrongKey,
		"no subject claim": "Bearer " + noSub,
	} {
		if w := do(authz); w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: status = %d, want 401", name, w.Code)
		}
	}
}

func TestUserIDFrom_WithoutGate_IsEmpty(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := UserIDFrom(c); got != "" {
		t.Fatalf("UserIDFrom = %q, want empty", got)
	}
}
