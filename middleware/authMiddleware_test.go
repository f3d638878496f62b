package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestIsAdmin(t *testing.T) {
	os.Setenv("ADMIN_EMAIL", "owner@dairy.example")
	defer os.Unsetenv("ADMIN_EMAIL")

	tests := []struct {
		name  string
		role  string
		email string
		want  bool
	}{
		{"admin role", "admin", "whoever@example.com", true},
		{"configured email without role", "customer", "owner@dairy.example", true},
		{"plain customer", "customer", "shop@example.com", false},
		{"empty claims", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAdmin(tt.role, tt.email); got != tt.want {
				t.Errorf("IsAdmin(%q, %q) = %v, want %v", tt.role, tt.email, got, tt.want)
			}
		})
	}
}

func TestIsAdminWithoutConfiguredEmail(t *testing.T) {
	os.Unsetenv("ADMIN_EMAIL")
	if IsAdmin("customer", "") {
		t.Error("empty email matched an unset ADMIN_EMAIL")
	}
	if !IsAdmin("admin", "") {
		t.Error("admin role rejected")
	}
}

// The gate must answer 403 and stop the chain for anyone who is not an
// admin; admin-only handlers must stay unreached.
func TestAdminOnlyMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	os.Setenv("ADMIN_EMAIL", "owner@dairy.example")
	defer os.Unsetenv("ADMIN_EMAIL")

	tests := []struct {
		name     string
		role     string
		email    string
		wantCode int
	}{
		{"customer rejected", "customer", "shop@example.com", http.StatusForbidden},
		{"empty claims rejected", "", "", http.StatusForbidden},
		{"admin role passes", "admin", "whoever@example.com", http.StatusOK},
		{"configured email passes", "customer", "owner@dairy.example", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/admin",
				func(c *gin.Context) {
					c.Set("role", tt.role)
					c.Set("email", tt.email)
				},
				AdminOnly(),
				func(c *gin.Context) {
					c.JSON(http.StatusOK, gin.H{"reached": true})
				},
			)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantCode)
			}
			if tt.wantCode == http.StatusForbidden {
				if !strings.Contains(w.Body.String(), "admin access required") {
					t.Errorf("body = %s", w.Body.String())
				}
				if strings.Contains(w.Body.String(), "reached") {
					t.Error("handler ran after rejection")
				}
			}
		})
	}
}
