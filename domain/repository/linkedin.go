package repository

import (
	"context"

	"linkedin-autoposter/domain/dto"
	"linkedin-autoposter/domain/model"
)

// ILinkedIn defines the LinkedIn REST calls made after authorization.
type ILinkedIn interface {
	// UserInfo returns the OpenID subject of the token owner.
	UserInfo(ctx context.Context, accessToken string) (string, error)
	AdminOrganizations(ctx context.Context, accessToken string) ([]model.OrganizationRef, error)

	InitializeImageUpload(ctx context.Context, accessToken string, owner model.URN) (*dto.ImageUpload, error)
	DownloadImage(ctx context.Context, imageURL string) (*dto.Image, error)
	UploadImage(ctx context.Context, accessToken, uploadURL string, img *dto.Image) error

	// CreatePost returns the id of the created post.
	CreatePost(ctx context.Context, accessToken string, req dto.PostRequest) (string, error)
}
