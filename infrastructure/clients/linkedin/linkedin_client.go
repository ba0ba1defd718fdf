package linkedin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"linkedin-autoposter/domain/apperror"
	"linkedin-autoposter/domain/dto"
	"linkedin-autoposter/domain/model"

	"github.com/go-resty/resty/v2"
	"github.com/google/go-querystring/query"
)

const (
	restliProtocolVersion = "2.0.0"
	defaultContentType    = "image/jpeg"
	// Rest.li 2.0 treats encoded parentheses as literals, so the projection
	// is appended to the query string unescaped.
	organizationProjection = "(elements*(organization~(localizedName)))"
	unknownOrganization    = "Unknown"
)

type Config struct {
	APIBaseURL   string
	APIVersion   string
	Timeout      time.Duration
	MediaTimeout time.Duration
}

// Client calls the LinkedIn REST API. Image transfer uses a separate client
// with the longer media timeout.
type Client struct {
	api     *resty.Client
	media   *resty.Client
	baseURL string
	version string
}

func NewLinkedInClient(cfg Config) *Client {
	return &Client{
		api:     resty.New().SetTimeout(cfg.Timeout),
		media:   resty.New().SetTimeout(cfg.MediaTimeout),
		baseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		version: cfg.APIVersion,
	}
}

type aclQuery struct {
	Q    string `url:"q"`
	Role string `url:"role"`
}

// restli returns a bearer request carrying the versioned API headers.
func (c *Client) restli(ctx context.Context, accessToken string) *resty.Request {
	return c.api.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetHeader("X-Restli-Protocol-Version", restliProtocolVersion).
		SetHeader("LinkedIn-Version", c.version)
}

func (c *Client) UserInfo(ctx context.Context, accessToken string) (string, error) {
	resp, err := c.api.R().SetContext(ctx).SetAuthToken(accessToken).Get(c.baseURL + "/v2/userinfo")
	if err != nil {
		return "", &apperror.TransportError{Op: "userinfo", Err: err}
	}
	if resp.StatusCode() != http.StatusOK {
		return "", &apperror.APIError{Op: "userinfo", StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	var out dto.UserInfoResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", fmt.Errorf("decode userinfo: %w", err)
	}
	if out.Sub == "" {
		return "", errors.New("userinfo: missing sub")
	}
	return out.Sub, nil
}

func (c *Client) AdminOrganizations(ctx context.Context, accessToken string) ([]model.OrganizationRef, error) {
	v, err := query.Values(aclQuery{Q: "roleAssignee", Role: "ADMINISTRATOR"})
	if err != nil {
		return nil, err
	}
	endpoint := c.baseURL + "/rest/organizationAcls?" + v.Encode() + "&projection=" + organizationProjection

	resp, err := c.restli(ctx, accessToken).Get(endpoint)
	if err != nil {
		return nil, &apperror.TransportError{Op: "organization acls", Err: err}
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &apperror.APIError{Op: "organization acls", StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	var out dto.OrganizationACLResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("decode organization acls: %w", err)
	}
	orgs := make([]model.OrganizationRef, 0, len(out.Elements))
	for _, el := range out.Elements {
		if el.Organization == "" {
			continue
		}
		name := el.OrganizationExpanded.LocalizedName
		if name == "" {
			name = unknownOrganization
		}
		orgs = append(orgs, model.OrganizationRef{ID: model.OrganizationIDFromURN(el.Organization), Name: name})
	}
	return orgs, nil
}

func (c *Client) InitializeImageUpload(ctx context.Context, accessToken string, owner model.URN) (*dto.ImageUpload, error) {
	body := dto.InitializeUploadBody{InitializeUploadRequest: dto.InitializeUploadRequest{Owner: owner.String()}}
	resp, err := c.restli(ctx, accessToken).
		SetBody(body).
		Post(c.baseURL + "/rest/images?action=initializeUpload")
	if err != nil {
		return nil, &apperror.TransportError{Op: "initialize image upload", Err: err}
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &apperror.APIError{Op: "initialize image upload", StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	var out dto.InitializeUploadResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("decode initialize upload: %w", err)
	}
	if out.Value.UploadURL == "" || out.Value.ImageURN == "" {
		return nil, errors.New("initialize image upload: response missing uploadUrl or image")
	}
	return &out.Value, nil
}

func (c *Client) DownloadImage(ctx context.Context, imageURL string) (*dto.Image, error) {
	resp, err := c.media.R().SetContext(ctx).Get(imageURL)
	if err != nil {
		return nil, &apperror.TransportError{Op: "download image", Err: err}
	}
	if resp.IsError() {
		return nil, &apperror.APIError{Op: "download image", StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	if len(resp.Body()) == 0 {
		return nil, errors.New("download image: empty body")
	}
	return &dto.Image{Data: resp.Body(), ContentType: ContentType(resp.Header().Get("Content-Type"), imageURL)}, nil
}

func (c *Client) UploadImage(ctx context.Context, accessToken, uploadURL string, img *dto.Image) error {
	resp, err := c.media.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetHeader("Content-Type", img.ContentType).
		SetBody(img.Data).
		Put(uploadURL)
	if err != nil {
		return &apperror.TransportError{Op: "upload image", Err: err}
	}
	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusCreated {
		return &apperror.APIError{Op: "upload image", StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	return nil
}

func (c *Client) CreatePost(ctx context.Context, accessToken string, req dto.PostRequest) (string, error) {
	resp, err := c.restli(ctx, accessToken).
		SetBody(dto.NewPostBody(req)).
		Post(c.baseURL + "/rest/posts")
	if err != nil {
		return "", &apperror.TransportError{Op: "create post", Err: err}
	}
	if resp.StatusCode() != http.StatusCreated {
		return "", &apperror.APIError{Op: "create post", StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	id := resp.Header().Get("x-restli-id")
	if id == "" {
		id = resp.Header().Get("x-linkedin-id")
	}
	return id, nil
}

// ContentType picks the upload content type from the download response
// header, then the URL's file extension, then image/jpeg.
func ContentType(header, imageURL string) string {
	if header != "" {
		if mt, _, err := mime.ParseMediaType(header); err == nil && strings.HasPrefix(mt, "image/") {
			return mt
		}
	}
	if u, err := url.Parse(imageURL); err == nil {
		if ext := strings.ToLower(path.Ext(u.Path)); ext != "" {
			if mt, _, err := mime.ParseMediaType(mime.TypeByExtension(ext)); err == nil && strings.HasPrefix(mt, "image/") {
				return mt
			}
		}
	}
	return defaultContentType
}
