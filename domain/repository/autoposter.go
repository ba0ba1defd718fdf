package repository

import (
	"context"

	"linkedin-autoposter/domain/model"
)

type ITokenStore interface {
	Load(ctx context.Context) (model.TokenRecord, error)
	Save(ctx context.Context, rec model.TokenRecord) error
	Organizations(ctx context.Context) ([]model.OrganizationRef, error)
	SaveOrganizations(ctx context.Context, orgs []model.OrganizationRef) error
	// Clear forgets the token, member id and organizations together.
	Clear(ctx context.Context) error
}

type ISettings interface {
	Load(ctx context.Context) (model.Settings, error)
	Save(ctx context.Context, s model.Settings) error
}

type IGallery interface {
	State(ctx context.Context) (model.GalleryState, error)
	// Advance claims the current rotation slot and returns it.
	Advance(ctx context.Context) (uint64, error)
}

type IExpiryEmailState interface {
	LastSentDate(ctx context.Context) (string, error)
	SetLastSentDate(ctx context.Context, date string) error
	Clear(ctx context.Context) error
}

type IPublishRecord interface {
	Get(ctx context.Context, itemID string) (model.PublishRecord, error)
	SetDisabled(ctx context.Context, itemID string, disabled bool) error
	Record(ctx context.Context, outcome model.PublishOutcome) error
}

type IPublishAudit interface {
	Append(ctx context.Context, rows []model.PublishAudit) error
	ListByItem(ctx context.Context, itemID string, limit int) ([]model.PublishAudit, error)
}

// IMedia maps attachment ids to URLs and updates featured images.
type IMedia interface {
	ImageURL(ctx context.Context, imageID string) (string, error)
	SetFeaturedImage(ctx context.Context, itemID, imageID string) error
}

type IMailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// IOutcomeNotifier receives every publish outcome after it is recorded.
type IOutcomeNotifier interface {
	Notify(ctx context.Context, outcome model.PublishOutcome) error
}
