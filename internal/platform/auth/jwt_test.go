package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestIssueAndParse(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	tok, err := issuer.Issue("user-1", "dana")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	claims, err := issuer.Parse(tok)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Errorf("expected subject user-1, got %s", claims.Subject)
	}
	if claims.Username != "dana" {
		t.Errorf("expected username dana, got %s", claims.Username)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	tok, _ := NewTokenIssuer("secret-a", time.Hour).Issue("user-1", "dana")
	if _, err := NewTokenIssuer("secret-b", time.Hour).Parse(tok); err == nil {
		t.Error("expected parse to fail with wrong secret")
	}
}

func TestParse_Expired(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", -time.Minute)
	tok, _ := issuer.Issue("user-1", "dana")
	if _, err := issuer.Parse(tok); err == nil {
		t.Error("expected parse to fail for expired token")
	}
}

func TestRequireAuth(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	e := echo.New()
	handler := RequireAuth(issuer)(func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get("username").(string))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	err := handler(e.NewContext(req, rec))
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %v", err)
	}

	tok, _ := issuer.Issue("user-1", "dana")
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok)
	rec = httptest.NewRecorder()
	if err := handler(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error with valid token: %v", err)
	}
	if rec.Body.String() != "dana" {
		t.Errorf("expected username in context, got %q", rec.Body.String())
	}
}
