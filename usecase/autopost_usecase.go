package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"linkedin-autoposter/domain/apperror"
	"linkedin-autoposter/domain/dto"
	"linkedin-autoposter/domain/model"
	"linkedin-autoposter/domain/repository"
	"linkedin-autoposter/infrastructure/logger"
)

const (
	SkipNotPublishTransition = "not a publish transition"
	SkipNotConnected         = "not connected"
	SkipPostTypeDisabled     = "post type not enabled"
	SkipSharingDisabled      = "sharing disabled for item"
	SkipGalleryEmpty         = "gallery is empty"
	SkipGalleryUnresolved    = "gallery image could not be resolved"

	historyLimit = 20
)

type IAutopostUsecase interface {
	OnPublish(ctx context.Context, event model.PublishEvent) (model.PublishOutcome, error)
	SendTestPost(ctx context.Context) (model.TestPostResult, error)
	SetDisabled(ctx context.Context, itemID string, disabled bool) error
	Record(ctx context.Context, itemID string) (dto.ShareStatus, error)
}

type SiteConfig struct {
	Name    string
	URL     string
	LogoURL string
}

type AutopostUsecase struct {
	site      SiteConfig
	settings  ISettingsUsecase
	tokens    repository.ITokenStore
	gallery   repository.IGallery
	records   repository.IPublishRecord
	publisher *PostPublisher
	composer  *PostComposer
	selector  *ImageSelector
	media     repository.IMedia        // optional
	audit     repository.IPublishAudit // optional
	notifiers []repository.IOutcomeNotifier
	now       func() time.Time
}

func NewAutopostUsecase(
	site SiteConfig,
	settings ISettingsUsecase,
	tokens repository.ITokenStore,
	gallery repository.IGallery,
	records repository.IPublishRecord,
	publisher *PostPublisher,
	now func() time.Time,
) *AutopostUsecase {
	if now == nil {
		now = time.Now
	}
	return &AutopostUsecase{
		site:      site,
		settings:  settings,
		tokens:    tokens,
		gallery:   gallery,
		records:   records,
		publisher: publisher,
		composer:  NewPostComposer(),
		selector:  NewImageSelector(nil),
		now:       now,
	}
}

// WithMedia enables media id resolution and featured image updates (fluent)
func (u *AutopostUsecase) WithMedia(media repository.IMedia) *AutopostUsecase {
	u.media = media
	u.selector = NewImageSelector(media)
	return u
}

func (u *AutopostUsecase) WithAudit(audit repository.IPublishAudit) *AutopostUsecase {
	u.audit = audit
	return u
}

func (u *AutopostUsecase) WithNotifiers(n ...repository.IOutcomeNotifier) *AutopostUsecase {
	u.notifiers = append(u.notifiers, n...)
	return u
}

func (u *AutopostUsecase) OnPublish(ctx context.Context, event model.PublishEvent) (model.PublishOutcome, error) {
	item := event.Item
	out := model.PublishOutcome{ItemID: item.ID, Results: []model.TargetResult{}}
	if !event.IsPublishTransition() {
		return skipped(out, SkipNotPublishTransition), nil
	}
	if item.ID == "" {
		return out, apperror.NewConfigError("item id is required")
	}
	log := logger.GetLogger().WithField("item_id", item.ID)

	token, err := u.tokens.Load(ctx)
	if err != nil {
		return out, err
	}
	if !token.IsConnected(u.now()) {
		return u.finish(ctx, skipped(out, SkipNotConnected)), nil
	}
	settings, err := u.settings.Get(ctx)
	if err != nil {
		return out, err
	}
	if !settings.AllowsType(item.Type) {
		return u.finish(ctx, skipped(out, SkipPostTypeDisabled)), nil
	}
	rec, err := u.records.Get(ctx, item.ID)
	if err != nil {
		return out, err
	}
	if rec.Disabled {
		return u.finish(ctx, skipped(out, SkipSharingDisabled)), nil
	}

	text := u.composer.Render(settings.PostTemplate, item)
	imageURL, skipReason := u.selectImage(ctx, settings, item)
	if skipReason != "" {
		return u.finish(ctx, skipped(out, skipReason)), nil
	}
	out.ImageURL = imageURL

	urns, invalid := ResolveTargets(settings, token)
	var published []model.TargetResult
	if len(urns) > 0 {
		res := u.publisher.Publish(ctx, PublishRequest{
			AccessToken: token.AccessToken,
			Targets:     urns,
			Text:        text,
			ImageURL:    imageURL,
		})
		published = res.Results
		if res.Success {
			sharedAt := u.now().UTC()
			out.SharedAt = &sharedAt
		}
	}
	out.Results = mergeResults(invalid, published)
	out.Status = model.OutcomeFailed
	if out.SharedAt != nil {
		out.Status = model.OutcomeShared
	}

	// the post is live at this point; a storage failure must not turn into a retry
	if err := u.records.Record(ctx, out); err != nil {
		log.WithField("error", err).Error("Failed to record publish outcome")
	}
	log.WithField("status", out.Status).Info("Publish event handled")
	return u.finish(ctx, out), nil
}

func skipped(out model.PublishOutcome, reason string) model.PublishOutcome {
	out.Status = model.OutcomeSkipped
	out.SkipReason = reason
	return out
}

// selectImage peeks, advances the gallery when it was consulted and applies
// the default image and site logo fallbacks.
func (u *AutopostUsecase) selectImage(ctx context.Context, s model.Settings, item model.ContentItem) (string, string) {
	log := logger.GetLogger().WithField("item_id", item.ID)
	gallery, err := u.gallery.State(ctx)
	if err != nil {
		log.WithField("error", err).Warn("Failed to load gallery state")
		gallery = model.GalleryState{}
	}
	sel := u.selector.Select(ctx, s.ImageSource, gallery, CandidatesFromItem(item))

	if sel.GalleryConsulted {
		slot, err := u.gallery.Advance(ctx)
		switch {
		case err != nil:
			log.WithField("error", err).Warn("Failed to advance gallery rotation")
		case slot != sel.GallerySlot && sel.Source == ImageFromGallery:
			// another publish claimed the peeked slot first
			if img := u.selector.GalleryImageAt(ctx, gallery, slot); img != nil {
				sel.GalleryImage = img
				sel.URL = img.URL
			}
		}
	}

	if sel.URL == "" {
		if s.ImageSource == model.ImageSourceGalleryOnly {
			if sel.GalleryConsulted {
				return "", SkipGalleryUnresolved
			}
			return "", SkipGalleryEmpty
		}
		return u.fallbackImage(ctx, s), ""
	}

	if sel.Source == ImageFromGallery && sel.GalleryImage != nil && u.media != nil && !item.HasThumbnail &&
		!dto.LooksLikeURL(sel.GalleryImage.ID) {
		if err := u.media.SetFeaturedImage(ctx, item.ID, sel.GalleryImage.ID); err != nil {
			log.WithField("error", err).Warn("Failed to set featured image from gallery")
		}
	}
	return sel.URL, ""
}

func (u *AutopostUsecase) fallbackImage(ctx context.Context, s model.Settings) string {
	if url := u.selector.ResolveMedia(ctx, s.DefaultImage); url != "" {
		return url
	}
	return u.site.LogoURL
}

// finish writes the audit rows and fans the outcome out to notifiers.
func (u *AutopostUsecase) finish(ctx context.Context, out model.PublishOutcome) model.PublishOutcome {
	log := logger.GetLogger().WithField("item_id", out.ItemID)
	if u.audit != nil && len(out.Results) > 0 {
		now := u.now().UTC()
		rows := make([]model.PublishAudit, 0, len(out.Results))
		for _, r := range out.Results {
			rows = append(rows, model.PublishAudit{
				ItemID:    out.ItemID,
				Target:    r.Target,
				Status:    string(r.State),
				PostID:    r.PostID,
				Error:     apperror.Truncate(r.Error, apperror.DisplayLimit),
				CreatedAt: now,
			})
		}
		if err := u.audit.Append(ctx, rows); err != nil {
			log.WithField("error", err).Warn("Failed to append publish audit")
		}
	}
	for _, n := range u.notifiers {
		if err := n.Notify(ctx, out); err != nil {
			log.WithField("error", err).Warn("Outcome notifier failed")
		}
	}
	return out
}

func (u *AutopostUsecase) SendTestPost(ctx context.Context) (model.TestPostResult, error) {
	token, err := u.tokens.Load(ctx)
	if err != nil {
		return model.TestPostResult{}, err
	}
	if !token.IsConnected(u.now()) {
		return model.TestPostResult{}, apperror.NewConfigError("No access token")
	}
	settings, err := u.settings.Get(ctx)
	if err != nil {
		return model.TestPostResult{}, err
	}

	urns, invalid := ResolveTargets(settings, token)
	var published []model.TargetResult
	if len(urns) > 0 {
		text := fmt.Sprintf("Test post from LinkedIn Autoposter for %s. If you see this, the connection is working! %s",
			u.site.Name, u.site.URL)
		published = u.publisher.Publish(ctx, PublishRequest{
			AccessToken: token.AccessToken,
			Targets:     urns,
			Text:        text,
		}).Results
	}
	results := mergeResults(invalid, published)

	var errs []string
	succeeded := 0
	for _, r := range results {
		if r.Succeeded() {
			succeeded++
		} else if r.Error != "" {
			errs = append(errs, r.Error)
		}
	}
	out := model.TestPostResult{Success: succeeded > 0, Results: results}
	switch {
	case succeeded > 0 && len(errs) == 0:
		out.Message = "Test post published successfully!"
	case succeeded > 0:
		out.Message = "Partial success. Errors: " + strings.Join(errs, "; ")
	default:
		out.Message = strings.Join(errs, "; ")
	}
	logger.GetLogger().WithField("success", out.Success).Info("Test post sent")
	return out, nil
}

func (u *AutopostUsecase) SetDisabled(ctx context.Context, itemID string, disabled bool) error {
	if itemID == "" {
		return apperror.NewConfigError("item id is required")
	}
	return u.records.SetDisabled(ctx, itemID, disabled)
}

func (u *AutopostUsecase) Record(ctx context.Context, itemID string) (dto.ShareStatus, error) {
	rec, err := u.records.Get(ctx, itemID)
	if err != nil {
		return dto.ShareStatus{}, err
	}
	status := dto.ShareStatus{Record: rec, History: []model.PublishAudit{}}
	if u.audit != nil {
		history, err := u.audit.ListByItem(ctx, itemID, historyLimit)
		if err != nil {
			return dto.ShareStatus{}, err
		}
		status.History = history
	}
	return status, nil
}

var targetRank = map[string]int{model.TargetPersonal: 0, model.TargetOrganization: 1}

// mergeResults orders per-target results personal first.
func mergeResults(groups ...[]model.TargetResult) []model.TargetResult {
	out := []model.TargetResult{}
	for _, g := range groups {
		out = append(out, g...)
	}
	sort.SliceStable(out, func(i, j int) bool { return targetRank[out[i].Target] < targetRank[out[j].Target] })
	return out
}
