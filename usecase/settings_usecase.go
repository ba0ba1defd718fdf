package usecase

import (
	"context"
	"strings"

	"linkedin-autoposter/domain/apperror"
	"linkedin-autoposter/domain/dto"
	"linkedin-autoposter/domain/model"
	"linkedin-autoposter/domain/repository"
)

type ISettingsUsecase interface {
	// Get returns stored settings with configuration fallbacks and defaults applied.
	Get(ctx context.Context) (model.Settings, error)
	Update(ctx context.Context, req dto.SettingsUpdate) (model.Settings, error)
}

// SettingsDefaults are used for values the operator has not saved.
type SettingsDefaults struct {
	Credentials model.Credentials
	PostTypes   []string
}

type SettingsUsecase struct {
	repo     repository.ISettings
	defaults SettingsDefaults
}

func NewSettingsUsecase(repo repository.ISettings, defaults SettingsDefaults) ISettingsUsecase {
	return &SettingsUsecase{repo: repo, defaults: defaults}
}

func (u *SettingsUsecase) Get(ctx context.Context) (model.Settings, error) {
	s, err := u.repo.Load(ctx)
	if err != nil {
		return model.Settings{}, err
	}
	if s.Credentials.ClientID == "" {
		s.Credentials.ClientID = u.defaults.Credentials.ClientID
	}
	if s.Credentials.ClientSecret == "" {
		s.Credentials.ClientSecret = u.defaults.Credentials.ClientSecret
	}
	if len(s.PostTypes) == 0 && len(u.defaults.PostTypes) > 0 {
		s.PostTypes = append([]string(nil), u.defaults.PostTypes...)
	}
	return s.WithDefaults(), nil
}

// Update replaces the settings form. Nil credentials keep the stored values.
// The gallery rotation index is not touched.
func (u *SettingsUsecase) Update(ctx context.Context, req dto.SettingsUpdate) (model.Settings, error) {
	if req.PostTarget == "" {
		req.PostTarget = model.TargetPersonal
	}
	if req.ImageSource == "" {
		req.ImageSource = model.ImageSourceFeaturedFirst
	}
	req.OrganizationID = model.OrganizationIDFromURN(strings.TrimSpace(req.OrganizationID))
	req.DefaultImage = strings.TrimSpace(req.DefaultImage)
	req.PostTypes = compact(req.PostTypes)
	req.Gallery = compact(req.Gallery)
	if err := req.Validate(); err != nil {
		return model.Settings{}, apperror.NewConfigError(err.Error())
	}

	current, err := u.repo.Load(ctx)
	if err != nil {
		return model.Settings{}, err
	}
	next := model.Settings{
		Credentials:    current.Credentials,
		PostTarget:     req.PostTarget,
		OrganizationID: req.OrganizationID,
		PostTypes:      req.PostTypes,
		PostTemplate:   req.PostTemplate,
		DefaultImage:   req.DefaultImage,
		Gallery:        req.Gallery,
		ImageSource:    req.ImageSource,
	}
	if req.ClientID != nil {
		next.Credentials.ClientID = strings.TrimSpace(*req.ClientID)
	}
	if req.ClientSecret != nil {
		next.Credentials.ClientSecret = strings.TrimSpace(*req.ClientSecret)
	}
	if err := u.repo.Save(ctx, next); err != nil {
		return model.Settings{}, err
	}
	return u.Get(ctx)
}

// compact trims entries and drops blanks and duplicates, keeping order.
func compact(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
