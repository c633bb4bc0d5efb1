package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

const testPaneToken = "pane-secret"

func protectedHandler(t *testing.T, wantViewer string) http.Handler {
	t.Helper()
	return RequireAuth(testPaneToken, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		viewer, ok := GetViewerFromContext(r.Context())
		if !ok {
			t.Error("expected viewer address in context")
		}
		if viewer != wantViewer {
			t.Errorf("expected viewer '%s', got '%s'", wantViewer, viewer)
		}
		w.WriteHeader(http.StatusOK)
	}))
}

func TestRequireAuth(t *testing.T) {
	t.Run("passes valid token and viewer through", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/transcript/abc", nil)
		req.Header.Set("Authorization", "Bearer "+testPaneToken)
		req.Header.Set(ViewerAddressHeader, "me@example.com")
		rec := httptest.NewRecorder()

		protectedHandler(t, "me@example.com").ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("rejects missing Authorization header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		rec := httptest.NewRecorder()

		protectedHandler(t, "").ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("rejects malformed Authorization header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Basic abc123")
		rec := httptest.NewRecorder()

		protectedHandler(t, "").ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("rejects wrong token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer wrong")
		req.Header.Set(ViewerAddressHeader, "me@example.com")
		rec := httptest.NewRecorder()

		protectedHandler(t, "").ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("rejects missing viewer address", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+testPaneToken)
		rec := httptest.NewRecorder()

		protectedHandler(t, "").ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("accepts case-insensitive bearer scheme", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "bearer "+testPaneToken)
		req.Header.Set(ViewerAddressHeader, "me@example.com")
		rec := httptest.NewRecorder()

		protectedHandler(t, "me@example.com").ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})
}

func TestValidateToken(t *testing.T) {
	t.Run("returns viewer for valid input", func(t *testing.T) {
		viewer, err := ValidateToken(testPaneToken, testPaneToken, "me@example.com")
		if err != nil {
			t.Fatalf("ValidateToken returned error: %v", err)
		}
		if viewer != "me@example.com" {
			t.Errorf("expected 'me@example.com', got '%s'", viewer)
		}
	})

	t.Run("rejects empty token", func(t *testing.T) {
		if _, err := ValidateToken(testPaneToken, "", "me@example.com"); err == nil {
			t.Error("expected error for empty token")
		}
	})

	t.Run("rejects blank viewer", func(t *testing.T) {
		if _, err := ValidateToken(testPaneToken, testPaneToken, "  "); err == nil {
			t.Error("expected error for blank viewer")
		}
	})
}
