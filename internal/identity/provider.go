// Package identity acquires bearer credentials for the remote mail API.
//
// The provider is constructed once at startup and injected where needed;
// tokens are acquired fresh per call with no hidden shared cache.
package identity

import (
	"context"
	"fmt"

	"golang.org/x/oauth2/clientcredentials"
)

// ScopeDefault is the Graph scope used for app-only token requests. The
// Mail.Read permission itself is granted on the app registration; the
// token endpoint only accepts the resource-wide default scope.
const ScopeDefault = "https://graph.microsoft.com/.default"

// Provider supplies a bearer token usable for one mail API request.
type Provider interface {
	AccessToken(ctx context.Context, scopes ...string) (string, error)
}

// ClientCredentialsProvider acquires tokens from the Microsoft identity
// platform using the OAuth2 client-credentials flow.
type ClientCredentialsProvider struct {
	clientID     string
	clientSecret string
	tokenURL     string
}

var _ Provider = (*ClientCredentialsProvider)(nil)

// NewClientCredentialsProvider validates the app registration settings and
// returns a provider for the given tenant.
func NewClientCredentialsProvider(tenantID, clientID, clientSecret string) (*ClientCredentialsProvider, error) {
	if tenantID == "" || clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("tenant id, client id, and client secret are all required")
	}
	return &ClientCredentialsProvider{
		clientID:     clientID,
		clientSecret: clientSecret,
		tokenURL:     fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", tenantID),
	}, nil
}

// AccessToken requests a fresh token for the given scopes.
func (p *ClientCredentialsProvider) AccessToken(ctx context.Context, scopes ...string) (string, error) {
	if len(scopes) == 0 {
		scopes = []string{ScopeDefault}
	}
	conf := clientcredentials.Config{
		ClientID:     p.clientID,
		ClientSecret: p.clientSecret,
		TokenURL:     p.tokenURL,
		Scopes:       scopes,
	}
	token, err := conf.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("requesting access token: %w", err)
	}
	return token.AccessToken, nil
}

// StaticProvider returns a fixed token. Used in development, where the
// pane forwards a token it already holds.
type StaticProvider struct {
	Token string
}

var _ Provider = (*StaticProvider)(nil)

// AccessToken returns the configured token, failing when none is set.
func (p *StaticProvider) AccessToken(_ context.Context, _ ...string) (string, error) {
	if p.Token == "" {
		return "", fmt.Errorf("no static token configured")
	}
	return p.Token, nil
}
