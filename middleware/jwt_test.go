package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("user-123", "Asha", true)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	var got *Claims
	handler := JWTMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetClaims(r)
	}))

	r := httptest.NewRequest("GET", "/api/v1/tasks", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got == nil {
		t.Fatal("claims not stashed in context")
	}
	if got.UserID != "user-123" || got.Name != "Asha" || !got.IsAdmin {
		t.Errorf("claims = %+v", got)
	}
}

func TestJWTMiddlewareRejects(t *testing.T) {
	handler := JWTMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run")
	}))

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"garbage token", "Bearer not.a.token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/v1/tasks", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)
			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", w.Code)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	adminToken, _ := GenerateToken("u1", "admin", true)
	plainToken, _ := GenerateToken("u2", "plain", false)

	chain := JWTMiddleware(RequireAdmin(inner))

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"admin passes", adminToken, http.StatusNoContent},
		{"non-admin forbidden", plainToken, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("DELETE", "/api/v1/purchases/x", nil)
			r.Header.Set("Authorization", "Bearer "+tt.token)
			w := httptest.NewRecorder()
			chain.ServeHTTP(w, r)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}
