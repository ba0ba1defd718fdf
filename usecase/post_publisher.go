package usecase

import (
	"context"

	"linkedin-autoposter/domain/apperror"
	"linkedin-autoposter/domain/dto"
	"linkedin-autoposter/domain/model"
	"linkedin-autoposter/domain/repository"
	"linkedin-autoposter/infrastructure/logger"
)

const (
	errNoMemberID       = "No member ID for personal profile"
	errNoOrganizationID = "No organization ID for company page"
)

type PublishRequest struct {
	AccessToken string
	Targets     []model.URN
	Text        string
	ImageURL    string
}

type PublishResult struct {
	Success bool
	Results []model.TargetResult
}

// Errors lists the display errors of failed targets in order.
func (r PublishResult) Errors() []string {
	var out []string
	for _, res := range r.Results {
		if res.State == model.TargetFailed && res.Error != "" {
			out = append(out, res.Error)
		}
	}
	return out
}

// PostPublisher submits one post per target. Targets never retry.
type PostPublisher struct {
	linkedin repository.ILinkedIn
}

func NewPostPublisher(linkedin repository.ILinkedIn) *PostPublisher {
	return &PostPublisher{linkedin: linkedin}
}

// ResolveTargets returns the authors to post as, personal first, and a failed
// result for every selected audience that lacks an id.
func ResolveTargets(settings model.Settings, token model.TokenRecord) ([]model.URN, []model.TargetResult) {
	var urns []model.URN
	var invalid []model.TargetResult
	if settings.IncludesPersonal() {
		if token.MemberID == "" {
			invalid = append(invalid, configFailure(model.TargetPersonal, errNoMemberID))
		} else {
			urns = append(urns, model.PersonURN(token.MemberID))
		}
	}
	if settings.IncludesOrganization() {
		if settings.OrganizationID == "" {
			invalid = append(invalid, configFailure(model.TargetOrganization, errNoOrganizationID))
		} else {
			urns = append(urns, model.OrganizationURN(settings.OrganizationID))
		}
	}
	return urns, invalid
}

func configFailure(target, reason string) model.TargetResult {
	return model.TargetResult{
		Target: target,
		State:  model.TargetFailed,
		Error:  apperror.Message(apperror.NewConfigError(reason)),
	}
}

func (p *PostPublisher) Publish(ctx context.Context, req PublishRequest) PublishResult {
	var out PublishResult
	images := &imageSource{linkedin: p.linkedin, url: req.ImageURL}
	for _, urn := range req.Targets {
		res := p.publishTarget(ctx, req, urn, images)
		if res.Succeeded() {
			out.Success = true
		}
		out.Results = append(out.Results, res)
	}
	return out
}

func (p *PostPublisher) publishTarget(ctx context.Context, req PublishRequest, urn model.URN, images *imageSource) model.TargetResult {
	log := logger.GetLogger().WithField("target", urn.Target()).WithField("urn", urn.String())
	res := model.TargetResult{Target: urn.Target(), URN: urn.String(), State: model.TargetNotAttempted}

	var imageURN string
	if req.ImageURL != "" {
		res.State = model.TargetImageUploading
		var err error
		imageURN, err = p.uploadImage(ctx, req.AccessToken, urn, images)
		if err != nil {
			res.ImageError = apperror.Message(err)
			log.WithField("error", err).Warn("Image upload failed, posting text only")
		}
	}

	res.State = model.TargetSubmitting
	postID, err := p.linkedin.CreatePost(ctx, req.AccessToken, dto.PostRequest{
		Author:     urn,
		Commentary: req.Text,
		ImageURN:   imageURN,
	})
	if err != nil {
		res.State = model.TargetFailed
		res.Error = apperror.Message(err)
		log.WithField("error", err).Error("LinkedIn post failed")
		return res
	}
	res.State = model.TargetSucceeded
	res.PostID = postID
	res.ImageAttached = imageURN != ""
	log.WithField("post_id", postID).Info("LinkedIn post created")
	return res
}

func (p *PostPublisher) uploadImage(ctx context.Context, token string, owner model.URN, images *imageSource) (string, error) {
	upload, err := p.linkedin.InitializeImageUpload(ctx, token, owner)
	if err != nil {
		return "", err
	}
	img, err := images.get(ctx)
	if err != nil {
		return "", err
	}
	if err := p.linkedin.UploadImage(ctx, token, upload.UploadURL, img); err != nil {
		return "", err
	}
	return upload.ImageURN, nil
}

// imageSource downloads the source image at most once per publish.
type imageSource struct {
	linkedin repository.ILinkedIn
	url      string
	img      *dto.Image
	err      error
	fetched  bool
}

func (s *imageSource) get(ctx context.Context) (*dto.Image, error) {
	if !s.fetched {
		s.img, s.err = s.linkedin.DownloadImage(ctx, s.url)
		s.fetched = true
	}
	return s.img, s.err
}
