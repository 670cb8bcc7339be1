// Package google provides OAuth2 authentication for the Google Calendar API.
//
// The server authenticates with a long-lived refresh token supplied through
// the environment; access tokens are minted and cached in memory only. The
// package also backs the interactive auth command that obtains a refresh
// token in the first place.
package google
