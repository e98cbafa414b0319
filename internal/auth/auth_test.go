package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(cfg Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware(cfg))
	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) }
	r.GET("/healthz", ok)
	r.GET("/metrics", ok)
	r.GET("/api/v1/satellites", ok)
	return r
}

func get(t *testing.T, r *gin.Engine, path, token string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestMiddlewareDisabled(t *testing.T) {
	r := newTestRouter(Config{})
	if code := get(t, r, "/api/v1/satellites", ""); code != http.StatusOK {
		t.Fatalf("expected 200 with auth disabled, got %d", code)
	}
}

func TestMiddlewareEnabled(t *testing.T) {
	r := newTestRouter(Config{Enabled: true, Token: "secret"})

	cases := []struct {
		name  string
		path  string
		token string
		want  int
	}{
		{"missing header", "/api/v1/satellites", "", http.StatusUnauthorized},
		{"wrong scheme", "/api/v1/satellites", "Basic secret", http.StatusUnauthorized},
		{"wrong token", "/api/v1/satellites", "Bearer nope", http.StatusUnauthorized},
		{"valid token", "/api/v1/satellites", "Bearer secret", http.StatusOK},
		{"healthz exempt", "/healthz", "", http.StatusOK},
		{"metrics exempt", "/metrics", "", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if code := get(t, r, tc.path, tc.token); code != tc.want {
				t.Fatalf("got %d, want %d", code, tc.want)
			}
		})
	}
}
