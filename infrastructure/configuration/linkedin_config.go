package configuration

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/linkedin"
)

const (
	DefaultLinkedInAPIVersion = "202411"
	DefaultOAuthBaseURL       = "https://www.linkedin.com"
	DefaultAPIBaseURL         = "https://api.linkedin.com"
)

// LinkedIn holds the app registration plus endpoint overrides used in tests.
type LinkedIn struct {
	ClientID            string `json:"clientId"`
	ClientSecret        string `json:"clientSecret"`
	RedirectURI         string `json:"redirectURI"`
	OAuthBaseURL        string `json:"oauthBaseURL"`
	APIBaseURL          string `json:"apiBaseURL"`
	APIVersion          string `json:"apiVersion"`
	TimeoutSeconds      int    `json:"timeoutSeconds"`
	MediaTimeoutSeconds int    `json:"mediaTimeoutSeconds"`
}

func (l LinkedIn) Timeout() time.Duration { return time.Duration(l.TimeoutSeconds) * time.Second }

func (l LinkedIn) MediaTimeout() time.Duration {
	return time.Duration(l.MediaTimeoutSeconds) * time.Second
}

func (l LinkedIn) AuthURL() string { return l.OAuthBaseURL + "/oauth/v2/authorization" }

func (l LinkedIn) TokenURL() string { return l.OAuthBaseURL + "/oauth/v2/accessToken" }

// Endpoint sends client credentials in the form body, as LinkedIn requires.
func (l LinkedIn) Endpoint() oauth2.Endpoint {
	ep := linkedin.Endpoint
	if l.OAuthBaseURL != "" && l.OAuthBaseURL != DefaultOAuthBaseURL {
		ep.AuthURL = l.AuthURL()
		ep.TokenURL = l.TokenURL()
	}
	ep.AuthStyle = oauth2.AuthStyleInParams
	return ep
}

func initLinkedIn(c *Config) {
	l := &c.LinkedIn
	l.ClientID = getConfigValue(l.ClientID, "LINKEDIN_CLIENT_ID", "")
	l.ClientSecret = getConfigValue(l.ClientSecret, "LINKEDIN_CLIENT_SECRET", "")
	l.RedirectURI = getConfigValue(l.RedirectURI, "LINKEDIN_REDIRECT_URI", fmt.Sprintf("%s/auth/linkedin/callback", c.App.BaseURL))
	// Prefer https redirect URIs when TLS is enabled
	if c.App.TLSEnabled && strings.HasPrefix(l.RedirectURI, "http://") {
		l.RedirectURI = "https://" + strings.TrimPrefix(l.RedirectURI, "http://")
	}
	l.OAuthBaseURL = strings.TrimRight(getConfigValue(l.OAuthBaseURL, "LINKEDIN_OAUTH_BASE_URL", DefaultOAuthBaseURL), "/")
	l.APIBaseURL = strings.TrimRight(getConfigValue(l.APIBaseURL, "LINKEDIN_API_BASE_URL", DefaultAPIBaseURL), "/")
	l.APIVersion = getConfigValue(l.APIVersion, "LINKEDIN_API_VERSION", DefaultLinkedInAPIVersion)
	if v, err := strconv.Atoi(os.Getenv("LINKEDIN_TIMEOUT_SECONDS")); err == nil && v > 0 {
		l.TimeoutSeconds = v
	}
	if l.TimeoutSeconds <= 0 {
		l.TimeoutSeconds = 15
	}
	if l.MediaTimeoutSeconds <= 0 {
		l.MediaTimeoutSeconds = 60
	}
}
