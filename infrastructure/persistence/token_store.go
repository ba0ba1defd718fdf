package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"linkedin-autoposter/domain/model"
	"linkedin-autoposter/domain/repository"
)

// TokenStore keeps the LinkedIn connection in the settings store.
type TokenStore struct{ kv repository.IKeyValue }

func NewTokenStore(kv repository.IKeyValue) *TokenStore { return &TokenStore{kv: kv} }

func (s *TokenStore) Load(ctx context.Context) (model.TokenRecord, error) {
	var rec model.TokenRecord
	token, _, err := s.kv.Get(ctx, KeyAccessToken)
	if err != nil {
		return rec, fmt.Errorf("load access token: %w", err)
	}
	rec.AccessToken = token

	expires, ok, err := s.kv.Get(ctx, KeyTokenExpires)
	if err != nil {
		return rec, fmt.Errorf("load token expiry: %w", err)
	}
	if ok && expires != "" {
		secs, err := strconv.ParseInt(expires, 10, 64)
		if err != nil {
			return rec, fmt.Errorf("parse token expiry %q: %w", expires, err)
		}
		rec.ExpiresAt = time.Unix(secs, 0).UTC()
	}

	memberID, _, err := s.kv.Get(ctx, KeyMemberID)
	if err != nil {
		return rec, fmt.Errorf("load member id: %w", err)
	}
	rec.MemberID = memberID
	return rec, nil
}

func (s *TokenStore) Save(ctx context.Context, rec model.TokenRecord) error {
	if err := s.kv.Set(ctx, KeyAccessToken, rec.AccessToken); err != nil {
		return err
	}
	if err := s.kv.Set(ctx, KeyTokenExpires, strconv.FormatInt(rec.ExpiresAt.Unix(), 10)); err != nil {
		return err
	}
	if rec.MemberID == "" {
		return s.kv.Delete(ctx, KeyMemberID)
	}
	return s.kv.Set(ctx, KeyMemberID, rec.MemberID)
}

func (s *TokenStore) Organizations(ctx context.Context) ([]model.OrganizationRef, error) {
	orgs := []model.OrganizationRef{}
	raw, ok, err := s.kv.Get(ctx, KeyOrganizations)
	if err != nil || !ok || raw == "" {
		return orgs, err
	}
	if err := json.Unmarshal([]byte(raw), &orgs); err != nil {
		return []model.OrganizationRef{}, fmt.Errorf("decode organizations: %w", err)
	}
	return orgs, nil
}

func (s *TokenStore) SaveOrganizations(ctx context.Context, orgs []model.OrganizationRef) error {
	if orgs == nil {
		orgs = []model.OrganizationRef{}
	}
	b, err := json.Marshal(orgs)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, KeyOrganizations, string(b))
}

func (s *TokenStore) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, KeyAccessToken, KeyTokenExpires, KeyMemberID, KeyOrganizations)
}
