package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"linkedin-autoposter/domain/apperror"
	"linkedin-autoposter/domain/dto"
	"linkedin-autoposter/domain/model"
	"linkedin-autoposter/domain/repository"
	"linkedin-autoposter/infrastructure/logger"
)

// ExpiryWarningDays is the threshold below which operators are warned.
const ExpiryWarningDays = 3

var (
	memberScopes       = []string{"openid", "profile", "w_member_social"}
	organizationScopes = []string{"w_organization_social", "r_organization_social"}
)

type IOAuthUsecase interface {
	// AuthorizationURL builds the consent URL from the stored settings.
	AuthorizationURL(ctx context.Context) (dto.AuthorizationResponse, error)
	BuildAuthorizationURL(ctx context.Context, creds model.Credentials, redirectURI, target string) (string, error)
	ExchangeCode(ctx context.Context, code string, creds model.Credentials, redirectURI string) (model.TokenRecord, error)
	FetchMemberID(ctx context.Context, accessToken string) string
	FetchAdminOrganizations(ctx context.Context, accessToken string) []model.OrganizationRef
	// Connect validates the state, exchanges the code and stores the connection.
	Connect(ctx context.Context, code, state string) (model.ConnectionStatus, error)
	Disconnect(ctx context.Context) error
	Status(ctx context.Context) (model.ConnectionStatus, error)
}

type OAuthConfig struct {
	Endpoint    oauth2.Endpoint
	RedirectURI string
	// HTTPClient is used for the token exchange.
	HTTPClient *http.Client
}

type OAuthUsecase struct {
	cfg      OAuthConfig
	settings ISettingsUsecase
	tokens   repository.ITokenStore
	states   repository.IStateStore
	linkedin repository.ILinkedIn
	now      func() time.Time
}

func NewOAuthUsecase(
	cfg OAuthConfig,
	settings ISettingsUsecase,
	tokens repository.ITokenStore,
	states repository.IStateStore,
	linkedin repository.ILinkedIn,
	now func() time.Time,
) IOAuthUsecase {
	if now == nil {
		now = time.Now
	}
	return &OAuthUsecase{cfg: cfg, settings: settings, tokens: tokens, states: states, linkedin: linkedin, now: now}
}

func (u *OAuthUsecase) oauthConfig(creds model.Credentials, redirectURI string, scopes []string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint:     u.cfg.Endpoint,
		RedirectURL:  redirectURI,
		Scopes:       scopes,
	}
}

func (u *OAuthUsecase) AuthorizationURL(ctx context.Context) (dto.AuthorizationResponse, error) {
	s, err := u.settings.Get(ctx)
	if err != nil {
		return dto.AuthorizationResponse{}, err
	}
	authURL, err := u.BuildAuthorizationURL(ctx, s.Credentials, u.cfg.RedirectURI, s.PostTarget)
	if err != nil {
		return dto.AuthorizationResponse{}, err
	}
	parsed, err := url.Parse(authURL)
	if err != nil {
		return dto.AuthorizationResponse{}, err
	}
	return dto.AuthorizationResponse{AuthURL: authURL, State: parsed.Query().Get("state")}, nil
}

func (u *OAuthUsecase) BuildAuthorizationURL(ctx context.Context, creds model.Credentials, redirectURI, target string) (string, error) {
	if creds.ClientID == "" {
		return "", apperror.NewConfigError("LinkedIn Client ID is not configured")
	}
	scopes := append([]string(nil), memberScopes...)
	if target == model.TargetOrganization || target == model.TargetBoth {
		scopes = append(scopes, organizationScopes...)
	}
	state := uuid.NewString()
	if err := u.states.Put(ctx, state); err != nil {
		return "", fmt.Errorf("store oauth state: %w", err)
	}
	return u.oauthConfig(creds, redirectURI, scopes).AuthCodeURL(state), nil
}

func (u *OAuthUsecase) ExchangeCode(ctx context.Context, code string, creds model.Credentials, redirectURI string) (model.TokenRecord, error) {
	if !creds.Complete() {
		return model.TokenRecord{}, apperror.NewConfigError("LinkedIn Client ID and Client Secret are required")
	}
	if u.cfg.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, u.cfg.HTTPClient)
	}
	tok, err := u.oauthConfig(creds, redirectURI, nil).Exchange(ctx, code)
	if err != nil {
		return model.TokenRecord{}, exchangeError(err)
	}
	now := u.now()
	rec := model.TokenRecord{AccessToken: tok.AccessToken}
	switch {
	case tok.ExpiresIn > 0:
		rec.ExpiresAt = now.Add(time.Duration(tok.ExpiresIn) * time.Second)
	case !tok.Expiry.IsZero():
		rec.ExpiresAt = tok.Expiry
	default:
		return model.TokenRecord{}, &apperror.AuthError{Message: "missing expires_in"}
	}
	return rec, nil
}

func exchangeError(err error) error {
	var rErr *oauth2.RetrieveError
	if errors.As(err, &rErr) {
		msg := rErr.ErrorDescription
		if msg == "" {
			msg = "Unknown error"
		}
		return &apperror.AuthError{Message: msg}
	}
	var uErr *url.Error
	if errors.As(err, &uErr) {
		return &apperror.TransportError{Op: "exchange code", Err: err}
	}
	return &apperror.AuthError{Message: "Unknown error"}
}

func (u *OAuthUsecase) FetchMemberID(ctx context.Context, accessToken string) string {
	sub, err := u.linkedin.UserInfo(ctx, accessToken)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Could not fetch LinkedIn member id")
		return ""
	}
	return sub
}

func (u *OAuthUsecase) FetchAdminOrganizations(ctx context.Context, accessToken string) []model.OrganizationRef {
	orgs, err := u.linkedin.AdminOrganizations(ctx, accessToken)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Could not fetch administered organizations")
		return []model.OrganizationRef{}
	}
	return orgs
}

func (u *OAuthUsecase) Connect(ctx context.Context, code, state string) (model.ConnectionStatus, error) {
	if code == "" {
		return model.ConnectionStatus{}, &apperror.AuthError{Message: "missing code"}
	}
	ok, err := u.states.Consume(ctx, state)
	if err != nil {
		return model.ConnectionStatus{}, fmt.Errorf("consume oauth state: %w", err)
	}
	if !ok {
		return model.ConnectionStatus{}, &apperror.AuthError{Message: "invalid state"}
	}

	s, err := u.settings.Get(ctx)
	if err != nil {
		return model.ConnectionStatus{}, err
	}
	rec, err := u.ExchangeCode(ctx, code, s.Credentials, u.cfg.RedirectURI)
	if err != nil {
		return model.ConnectionStatus{}, err
	}
	rec.MemberID = u.FetchMemberID(ctx, rec.AccessToken)
	orgs := u.FetchAdminOrganizations(ctx, rec.AccessToken)

	if err := u.tokens.Save(ctx, rec); err != nil {
		return model.ConnectionStatus{}, err
	}
	if err := u.tokens.SaveOrganizations(ctx, orgs); err != nil {
		return model.ConnectionStatus{}, err
	}
	logger.GetLogger().
		WithField("member_id", rec.MemberID).
		WithField("organizations", len(orgs)).
		Info("LinkedIn connected")
	return u.Status(ctx)
}

func (u *OAuthUsecase) Disconnect(ctx context.Context) error {
	if err := u.tokens.Clear(ctx); err != nil {
		return err
	}
	logger.GetLogger().Info("LinkedIn disconnected")
	return nil
}

func (u *OAuthUsecase) Status(ctx context.Context) (model.ConnectionStatus, error) {
	rec, err := u.tokens.Load(ctx)
	if err != nil {
		return model.ConnectionStatus{}, err
	}
	orgs, err := u.tokens.Organizations(ctx)
	if err != nil {
		return model.ConnectionStatus{}, err
	}
	if orgs == nil {
		orgs = []model.OrganizationRef{}
	}
	now := u.now()
	st := model.ConnectionStatus{
		Connected:     rec.IsConnected(now),
		DaysLeft:      rec.DaysLeft(now),
		MemberID:      rec.MemberID,
		Organizations: orgs,
		Notices:       []string{},
	}
	if !rec.ExpiresAt.IsZero() {
		exp := rec.ExpiresAt
		st.ExpiresAt = &exp
	}
	if st.Connected && st.DaysLeft < ExpiryWarningDays {
		st.Notices = append(st.Notices, fmt.Sprintf("LinkedIn token expires in %d days. Reconnect now.", st.DaysLeft))
	}
	return st, nil
}
