package dto

import (
	"strings"

	v "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"linkedin-autoposter/domain/model"
)

// SettingsUpdate is the operator's settings form.
type SettingsUpdate struct {
	ClientID       *string  `json:"client_id"`
	ClientSecret   *string  `json:"client_secret"`
	PostTarget     string   `json:"post_target"`
	OrganizationID string   `json:"organization_id"`
	PostTypes      []string `json:"post_types"`
	PostTemplate   string   `json:"post_template"`
	DefaultImage   string   `json:"default_image"`
	Gallery        []string `json:"image_gallery"`
	ImageSource    string   `json:"image_source"`
}

func (b SettingsUpdate) Validate() error {
	includesOrg := b.PostTarget == model.TargetOrganization || b.PostTarget == model.TargetBoth
	return v.ValidateStruct(&b,
		v.Field(&b.PostTarget, v.Required, v.In(model.TargetPersonal, model.TargetOrganization, model.TargetBoth)),
		v.Field(&b.ImageSource, v.Required, v.In(model.ImageSourceFeaturedFirst, model.ImageSourceGalleryFirst, model.ImageSourceGalleryOnly)),
		v.Field(&b.OrganizationID, v.When(includesOrg, v.Required)),
		v.Field(&b.DefaultImage, v.When(LooksLikeURL(b.DefaultImage), is.URL)),
		v.Field(&b.PostTypes, v.Required),
	)
}

// LooksLikeURL tells a default image URL apart from a media id.
func LooksLikeURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "//")
}

// ShareStatus is the per-item share box.
type ShareStatus struct {
	Record  model.PublishRecord  `json:"record"`
	History []model.PublishAudit `json:"history"`
}

// AuthorizationResponse is returned by GET /auth/linkedin.
type AuthorizationResponse struct {
	AuthURL string `json:"auth_url"`
	State   string `json:"state"`
}
