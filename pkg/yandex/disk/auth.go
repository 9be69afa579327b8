package yadisk

import (
	"fmt"
	"net/url"
)

// AuthorizeEndpoint is the page that issues OAuth tokens to the user.
const AuthorizeEndpoint = "https://oauth.yandex.com/authorize"

// AuthorizeURL returns the page a user opens in a browser to grant the
// application identified by clientID a token. The token is shown to the
// user, who then stores it in YADISK_TOKEN.
func AuthorizeURL(clientID string) (string, error) {
	if clientID == "" {
		return "", fmt.Errorf("YADISK_CLIENT_ID is required")
	}
	u, err := url.Parse(AuthorizeEndpoint)
	if err != nil {
		return "", err
	}
	u.RawQuery = url.Values{
		"response_type": {"token"},
		"client_id":     {clientID},
	}.Encode()
	return u.String(), nil
}
