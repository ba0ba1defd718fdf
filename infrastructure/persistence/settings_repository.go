package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"linkedin-autoposter/domain/model"
	"linkedin-autoposter/domain/repository"
)

// SettingsRepository maps operator settings onto individual keys.
type SettingsRepository struct{ kv repository.IKeyValue }

func NewSettingsRepository(kv repository.IKeyValue) *SettingsRepository {
	return &SettingsRepository{kv: kv}
}

func (r *SettingsRepository) Load(ctx context.Context) (model.Settings, error) {
	var s model.Settings
	scalars := []struct {
		key string
		dst *string
	}{
		{KeyClientID, &s.Credentials.ClientID},
		{KeyClientSecret, &s.Credentials.ClientSecret},
		{KeyPostTarget, &s.PostTarget},
		{KeyOrganizationID, &s.OrganizationID},
		{KeyPostTemplate, &s.PostTemplate},
		{KeyDefaultImage, &s.DefaultImage},
		{KeyImageSource, &s.ImageSource},
	}
	for _, f := range scalars {
		v, _, err := r.kv.Get(ctx, f.key)
		if err != nil {
			return s, fmt.Errorf("load %s: %w", f.key, err)
		}
		*f.dst = v
	}
	if err := r.loadList(ctx, KeyPostTypes, &s.PostTypes); err != nil {
		return s, err
	}
	if err := r.loadList(ctx, KeyImageGallery, &s.Gallery); err != nil {
		return s, err
	}
	return s, nil
}

func (r *SettingsRepository) Save(ctx context.Context, s model.Settings) error {
	scalars := map[string]string{
		KeyClientID:       s.Credentials.ClientID,
		KeyClientSecret:   s.Credentials.ClientSecret,
		KeyPostTarget:     s.PostTarget,
		KeyOrganizationID: s.OrganizationID,
		KeyPostTemplate:   s.PostTemplate,
		KeyDefaultImage:   s.DefaultImage,
		KeyImageSource:    s.ImageSource,
	}
	for k, v := range scalars {
		if err := r.kv.Set(ctx, k, v); err != nil {
			return fmt.Errorf("save %s: %w", k, err)
		}
	}
	if err := r.saveList(ctx, KeyPostTypes, s.PostTypes); err != nil {
		return err
	}
	return r.saveList(ctx, KeyImageGallery, s.Gallery)
}

func (r *SettingsRepository) loadList(ctx context.Context, key string, dst *[]string) error {
	raw, ok, err := r.kv.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if !ok || raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (r *SettingsRepository) saveList(ctx context.Context, key string, list []string) error {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return r.kv.Set(ctx, key, string(b))
}
