package auth

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
)

type contextKey string

// ViewerAddressKey is the context key used to store the viewer's mailbox
// address.
const ViewerAddressKey contextKey = "viewer_address"

// ViewerAddressHeader carries the viewer's own mailbox address, set by the
// pane from the host user profile. Authorship classification depends on it.
const ViewerAddressHeader = "X-Viewer-Address"

// RequireAuth checks for a valid bearer token in the Authorization header
// and stores the viewer's mailbox address in the request context for use
// by downstream handlers. Returns 401 Unauthorized when either is missing.
func RequireAuth(paneToken string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Println("Auth: No Authorization header present")
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		// Parse Authorization header: "Bearer <token>" (RFC 7235).
		// The Bearer scheme is case-insensitive.
		fields := strings.Fields(authHeader)
		if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
			log.Println("Auth: Invalid Authorization header format")
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		token := strings.TrimSpace(strings.Join(fields[1:], " "))

		viewer, err := ValidateToken(paneToken, token, r.Header.Get(ViewerAddressHeader))
		if err != nil {
			log.Printf("Auth: Token validation failed: %v", err)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ViewerAddressKey, viewer)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetViewerFromContext returns the viewer's mailbox address from the context.
func GetViewerFromContext(ctx context.Context) (string, bool) {
	viewer, ok := ctx.Value(ViewerAddressKey).(string)
	return viewer, ok
}

// ValidateToken checks the pane token and the accompanying viewer address.
// The pane runs behind the host application's own sign-in, so the shared
// pane token only gates access to this backend; the viewer address is what
// the host reported for the signed-in mailbox.
func ValidateToken(paneToken, token, viewerAddress string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", fmt.Errorf("token is empty")
	}
	if token != paneToken {
		return "", fmt.Errorf("token mismatch")
	}
	viewerAddress = strings.TrimSpace(viewerAddress)
	if viewerAddress == "" {
		return "", fmt.Errorf("viewer address is missing")
	}
	return viewerAddress, nil
}
