package google

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"
)

// redirectOOB is the out-of-band redirect used by the interactive auth
// command, which prints the code instead of running a callback server.
const redirectOOB = "urn:ietf:wg:oauth:2.0:oob"

// Credentials holds the OAuth client and the long-lived refresh token the
// server authenticates with. There is no on-disk token storage; the refresh
// token comes from the environment and access tokens live only in memory.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// oauthConfig returns the OAuth2 configuration for the Calendar API.
func oauthConfig(clientID, clientSecret string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     googleoauth.Endpoint,
		RedirectURL:  redirectOOB,
		Scopes: []string{
			calendar.CalendarScope,
		},
	}
}

// NewTokenSource returns a token source that mints access tokens from the
// refresh token. The source caches the current access token and refreshes it
// at most once at a time, so concurrent tool calls share one refresh.
func NewTokenSource(ctx context.Context, creds Credentials) oauth2.TokenSource {
	conf := oauthConfig(creds.ClientID, creds.ClientSecret)
	return conf.TokenSource(ctx, &oauth2.Token{
		TokenType:    "Bearer",
		RefreshToken: creds.RefreshToken,
		// An already-expired expiry forces a refresh on first use instead
		// of trusting a stale access token.
		Expiry: time.Unix(1, 0),
	})
}

// Verify performs one refresh to prove the credentials work before the
// server starts accepting tool calls.
func Verify(ts oauth2.TokenSource) error {
	if _, err := ts.Token(); err != nil {
		return fmt.Errorf("refresh token rejected: %w", err)
	}
	return nil
}

// NewHTTPClient returns an HTTP client that injects access tokens from the
// credentials. The client is configured to use HTTP/1.1 to avoid HTTP/2
// protocol errors against the Google APIs.
func NewHTTPClient(ctx context.Context, creds Credentials) *http.Client {
	client := oauth2.NewClient(ctx, NewTokenSource(ctx, creds))

	transport := client.Transport.(*oauth2.Transport)
	transport.Base = &http.Transport{
		ForceAttemptHTTP2: false,
	}

	return client
}

// AuthCodeURL returns the consent URL for the interactive auth command.
// Offline access with forced approval guarantees the response carries a
// refresh token even when the user consented before.
func AuthCodeURL(clientID, clientSecret string) string {
	conf := oauthConfig(clientID, clientSecret)
	return conf.AuthCodeURL("state", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange trades an authorization code for a token pair.
func Exchange(ctx context.Context, clientID, clientSecret, authCode string) (*oauth2.Token, error) {
	conf := oauthConfig(clientID, clientSecret)
	token, err := conf.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange auth code: %w", err)
	}
	if token.RefreshToken == "" {
		return nil, fmt.Errorf("authorization response carried no refresh token")
	}
	return token, nil
}
