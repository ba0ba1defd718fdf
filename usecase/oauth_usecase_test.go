package usecase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"linkedin-autoposter/domain/apperror"
	"linkedin-autoposter/domain/model"
	"linkedin-autoposter/infrastructure/cache"
	"linkedin-autoposter/infrastructure/persistence"
)

var fixedNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type oauthFixture struct {
	uc     IOAuthUsecase
	li     *MockLinkedIn
	tokens *persistence.TokenStore
	states *cache.MemoryStateStore
}

func newOAuthFixture(t *testing.T, tokenHandler http.HandlerFunc) *oauthFixture {
	t.Helper()
	srv := httptest.NewServer(tokenHandler)
	t.Cleanup(srv.Close)

	kv := persistence.NewMemoryKeyValue()
	settings := NewSettingsUsecase(persistence.NewSettingsRepository(kv), SettingsDefaults{
		Credentials: model.Credentials{ClientID: "cid", ClientSecret: "csecret"},
	})
	f := &oauthFixture{
		li:     new(MockLinkedIn),
		tokens: persistence.NewTokenStore(kv),
		states: cache.NewMemoryStateStore(func() time.Time { return fixedNow }),
	}
	f.uc = NewOAuthUsecase(OAuthConfig{
		Endpoint: oauth2.Endpoint{
			AuthURL:   srv.URL + "/oauth/v2/authorization",
			TokenURL:  srv.URL + "/oauth/v2/accessToken",
			AuthStyle: oauth2.AuthStyleInParams,
		},
		RedirectURI: "https://site.test/auth/linkedin/callback",
		HTTPClient:  srv.Client(),
	}, settings, f.tokens, f.states, f.li, func() time.Time { return fixedNow })
	return f
}

func tokenOK(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "/oauth/v2/accessToken", r.URL.Path)
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "the-code", r.PostForm.Get("code"))
		assert.Equal(t, "cid", r.PostForm.Get("client_id"))
		assert.Equal(t, "csecret", r.PostForm.Get("client_secret"))
		assert.Equal(t, "https://site.test/auth/linkedin/callback", r.PostForm.Get("redirect_uri"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-1","expires_in":5184000}`))
	}
}

func TestOAuthUsecase_BuildAuthorizationURL(t *testing.T) {
	f := newOAuthFixture(t, tokenOK(t))
	ctx := context.Background()
	creds := model.Credentials{ClientID: "cid"}

	raw, err := f.uc.BuildAuthorizationURL(ctx, creds, "https://site.test/cb", model.TargetPersonal)
	require.NoError(t, err)
	u, err := url.Parse(raw)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "cid", q.Get("client_id"))
	assert.Equal(t, "https://site.test/cb", q.Get("redirect_uri"))
	assert.Equal(t, "openid profile w_member_social", q.Get("scope"))

	ok, err := f.states.Consume(ctx, q.Get("state"))
	require.NoError(t, err)
	assert.True(t, ok)

	raw, err = f.uc.BuildAuthorizationURL(ctx, creds, "https://site.test/cb", model.TargetBoth)
	require.NoError(t, err)
	u, _ = url.Parse(raw)
	assert.Equal(t, "openid profile w_member_social w_organization_social r_organization_social", u.Query().Get("scope"))

	_, err = f.uc.BuildAuthorizationURL(ctx, model.Credentials{}, "https://site.test/cb", model.TargetPersonal)
	assert.True(t, apperror.IsConfig(err))
}

func TestOAuthUsecase_ConnectRoundTrip(t *testing.T) {
	f := newOAuthFixture(t, tokenOK(t))
	ctx := context.Background()
	orgs := []model.OrganizationRef{{ID: "99", Name: "Acme"}}
	f.li.On("UserInfo", mock.Anything, "tok-1").Return("member-1", nil)
	f.li.On("AdminOrganizations", mock.Anything, "tok-1").Return(orgs, nil)

	auth, err := f.uc.AuthorizationURL(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, auth.State)
	assert.True(t, strings.Contains(auth.AuthURL, "state="+auth.State))

	status, err := f.uc.Connect(ctx, "the-code", auth.State)
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 60, status.DaysLeft)
	assert.Equal(t, "member-1", status.MemberID)
	assert.Equal(t, orgs, status.Organizations)
	assert.Empty(t, status.Notices)

	rec, err := f.tokens.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", rec.AccessToken)
	assert.True(t, rec.ExpiresAt.Equal(fixedNow.Add(5184000*time.Second)))

	// the state is single use
	_, err = f.uc.Connect(ctx, "the-code", auth.State)
	assert.True(t, apperror.IsAuth(err))
}

func TestOAuthUsecase_ConnectDegradesWithoutProfile(t *testing.T) {
	f := newOAuthFixture(t, tokenOK(t))
	ctx := context.Background()
	f.li.On("UserInfo", mock.Anything, "tok-1").Return("", &apperror.APIError{Op: "userinfo", StatusCode: 403})
	f.li.On("AdminOrganizations", mock.Anything, "tok-1").Return(nil, &apperror.APIError{Op: "acls", StatusCode: 403})

	auth, err := f.uc.AuthorizationURL(ctx)
	require.NoError(t, err)
	status, err := f.uc.Connect(ctx, "the-code", auth.State)
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Empty(t, status.MemberID)
	assert.Equal(t, []model.OrganizationRef{}, status.Organizations)
}

func TestOAuthUsecase_ConnectInvalidState(t *testing.T) {
	f := newOAuthFixture(t, tokenOK(t))
	_, err := f.uc.Connect(context.Background(), "the-code", "forged")
	require.Error(t, err)
	assert.True(t, apperror.IsAuth(err))
	assert.Contains(t, err.Error(), "invalid state")
}

func TestOAuthUsecase_ExchangeErrors(t *testing.T) {
	creds := model.Credentials{ClientID: "cid", ClientSecret: "csecret"}

	t.Run("provider rejects code", func(t *testing.T) {
		f := newOAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_request","error_description":"Unable to retrieve access token: appid/redirect uri/code verifier does not match"}`))
		})
		_, err := f.uc.ExchangeCode(context.Background(), "c", creds, "https://site.test/cb")
		var authErr *apperror.AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Contains(t, authErr.Message, "Unable to retrieve access token")
	})

	t.Run("missing access token", func(t *testing.T) {
		f := newOAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"expires_in":10}`))
		})
		_, err := f.uc.ExchangeCode(context.Background(), "c", creds, "https://site.test/cb")
		var authErr *apperror.AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, "Unknown error", authErr.Message)
	})

	t.Run("missing expires_in", func(t *testing.T) {
		f := newOAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"tok-1"}`))
		})
		rec, err := f.uc.ExchangeCode(context.Background(), "c", creds, "https://site.test/cb")
		var authErr *apperror.AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, "missing expires_in", authErr.Message)
		assert.Empty(t, rec.AccessToken)
	})

	t.Run("network failure", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		tokenURL := srv.URL + "/oauth/v2/accessToken"
		srv.Close()
		uc := NewOAuthUsecase(OAuthConfig{Endpoint: oauth2.Endpoint{TokenURL: tokenURL, AuthStyle: oauth2.AuthStyleInParams}},
			nil, nil, nil, nil, nil)
		_, err := uc.ExchangeCode(context.Background(), "c", creds, "https://site.test/cb")
		assert.True(t, apperror.IsTransport(err))
	})

	t.Run("incomplete credentials", func(t *testing.T) {
		f := newOAuthFixture(t, tokenOK(t))
		_, err := f.uc.ExchangeCode(context.Background(), "c", model.Credentials{ClientID: "cid"}, "https://site.test/cb")
		assert.True(t, apperror.IsConfig(err))
	})
}

func TestOAuthUsecase_StatusNoticeAndDisconnect(t *testing.T) {
	f := newOAuthFixture(t, tokenOK(t))
	ctx := context.Background()
	require.NoError(t, f.tokens.Save(ctx, model.TokenRecord{AccessToken: "tok", ExpiresAt: fixedNow.Add(50 * time.Hour), MemberID: "m"}))
	require.NoError(t, f.tokens.SaveOrganizations(ctx, []model.OrganizationRef{{ID: "1", Name: "Org"}}))

	status, err := f.uc.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, status.DaysLeft)
	assert.Equal(t, []string{"LinkedIn token expires in 2 days. Reconnect now."}, status.Notices)

	require.NoError(t, f.uc.Disconnect(ctx))
	status, err = f.uc.Status(ctx)
	require.NoError(t, err)
	assert.False(t, status.Connected)
	assert.Empty(t, status.Organizations)
	assert.Nil(t, status.ExpiresAt)
	assert.Empty(t, status.Notices)
}
