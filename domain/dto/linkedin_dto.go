package dto

import "linkedin-autoposter/domain/model"

// ImageUpload is the session returned by images?action=initializeUpload.
type ImageUpload struct {
	UploadURL string `json:"uploadUrl"`
	ImageURN  string `json:"image"`
}

type Image struct {
	Data        []byte
	ContentType string
}

type PostRequest struct {
	Author     model.URN
	Commentary string
	ImageURN   string
}

// PostBody mirrors the /rest/posts payload.
type PostBody struct {
	Author                    string           `json:"author"`
	Commentary                string           `json:"commentary"`
	Visibility                string           `json:"visibility"`
	Distribution              PostDistribution `json:"distribution"`
	Content                   *PostContent     `json:"content,omitempty"`
	LifecycleState            string           `json:"lifecycleState"`
	IsReshareDisabledByAuthor bool             `json:"isReshareDisabledByAuthor"`
}

type PostDistribution struct {
	FeedDistribution               string   `json:"feedDistribution"`
	TargetEntities                 []string `json:"targetEntities"`
	ThirdPartyDistributionChannels []string `json:"thirdPartyDistributionChannels"`
}

type PostContent struct {
	Media PostMedia `json:"media"`
}

type PostMedia struct {
	ID string `json:"id"`
}

// NewPostBody builds a public main-feed post, with image content when imageURN is set.
func NewPostBody(req PostRequest) PostBody {
	body := PostBody{
		Author:     req.Author.String(),
		Commentary: req.Commentary,
		Visibility: "PUBLIC",
		Distribution: PostDistribution{
			FeedDistribution:               "MAIN_FEED",
			TargetEntities:                 []string{},
			ThirdPartyDistributionChannels: []string{},
		},
		LifecycleState:            "PUBLISHED",
		IsReshareDisabledByAuthor: false,
	}
	if req.ImageURN != "" {
		body.Content = &PostContent{Media: PostMedia{ID: req.ImageURN}}
	}
	return body
}

type InitializeUploadBody struct {
	InitializeUploadRequest InitializeUploadRequest `json:"initializeUploadRequest"`
}

type InitializeUploadRequest struct {
	Owner string `json:"owner"`
}

type InitializeUploadResponse struct {
	Value ImageUpload `json:"value"`
}

type OrganizationACLResponse struct {
	Elements []OrganizationACL `json:"elements"`
}

type OrganizationACL struct {
	Organization         string `json:"organization"`
	OrganizationExpanded struct {
		LocalizedName string `json:"localizedName"`
	} `json:"organization~"`
}

type UserInfoResponse struct {
	Sub string `json:"sub"`
}

type DisableRequest struct {
	Disabled bool `json:"disabled"`
}
