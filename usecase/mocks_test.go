package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"
	"linkedin-autoposter/domain/dto"
	"linkedin-autoposter/domain/model"
)

type MockLinkedIn struct {
	mock.Mock
}

func (m *MockLinkedIn) UserInfo(ctx context.Context, accessToken string) (string, error) {
	args := m.Called(ctx, accessToken)
	return args.String(0), args.Error(1)
}

func (m *MockLinkedIn) AdminOrganizations(ctx context.Context, accessToken string) ([]model.OrganizationRef, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OrganizationRef), args.Error(1)
}

func (m *MockLinkedIn) InitializeImageUpload(ctx context.Context, accessToken string, owner model.URN) (*dto.ImageUpload, error) {
	args := m.Called(ctx, accessToken, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ImageUpload), args.Error(1)
}

func (m *MockLinkedIn) DownloadImage(ctx context.Context, imageURL string) (*dto.Image, error) {
	args := m.Called(ctx, imageURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Image), args.Error(1)
}

func (m *MockLinkedIn) UploadImage(ctx context.Context, accessToken, uploadURL string, img *dto.Image) error {
	args := m.Called(ctx, accessToken, uploadURL, img)
	return args.Error(0)
}

func (m *MockLinkedIn) CreatePost(ctx context.Context, accessToken string, req dto.PostRequest) (string, error) {
	args := m.Called(ctx, accessToken, req)
	return args.String(0), args.Error(1)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

type recordingNotifier struct {
	outcomes []model.PublishOutcome
	err      error
}

func (r *recordingNotifier) Notify(_ context.Context, o model.PublishOutcome) error {
	r.outcomes = append(r.outcomes, o)
	return r.err
}
