package model

const (
	TargetPersonal     = "personal"
	TargetOrganization = "organization"
	TargetBoth         = "both"
)

const (
	ImageSourceFeaturedFirst = "featured_first"
	ImageSourceGalleryFirst  = "gallery_first"
	ImageSourceGalleryOnly   = "gallery_only"
)

const DefaultPostTemplate = "{title}\n\n{excerpt}\n\n{url}"

var DefaultPostTypes = []string{"post"}

// Settings is the operator configuration snapshot loaded once per request.
type Settings struct {
	Credentials    Credentials `json:"credentials"`
	PostTarget     string      `json:"post_target"`
	OrganizationID string      `json:"organization_id"`
	PostTypes      []string    `json:"post_types"`
	PostTemplate   string      `json:"post_template"`
	DefaultImage   string      `json:"default_image"`
	Gallery        []string    `json:"image_gallery"`
	ImageSource    string      `json:"image_source"`
}

// WithDefaults fills unset fields.
func (s Settings) WithDefaults() Settings {
	if s.PostTarget == "" {
		s.PostTarget = TargetPersonal
	}
	if len(s.PostTypes) == 0 {
		s.PostTypes = append([]string(nil), DefaultPostTypes...)
	}
	if s.PostTemplate == "" {
		s.PostTemplate = DefaultPostTemplate
	}
	if s.ImageSource == "" {
		s.ImageSource = ImageSourceFeaturedFirst
	}
	return s
}

func (s Settings) IncludesPersonal() bool {
	return s.PostTarget == TargetPersonal || s.PostTarget == TargetBoth
}

func (s Settings) IncludesOrganization() bool {
	return s.PostTarget == TargetOrganization || s.PostTarget == TargetBoth
}

func (s Settings) AllowsType(itemType string) bool {
	for _, t := range s.PostTypes {
		if t == itemType {
			return true
		}
	}
	return false
}

// GalleryState is the ordered gallery plus its monotonically increasing
// rotation counter.
type GalleryState struct {
	ImageIDs      []string `json:"image_ids"`
	RotationIndex uint64   `json:"rotation_index"`
}

// PeekNext returns the image id at the current rotation slot without
// advancing it.
func (g GalleryState) PeekNext() (string, bool) {
	if len(g.ImageIDs) == 0 {
		return "", false
	}
	return g.ImageIDs[g.RotationIndex%uint64(len(g.ImageIDs))], true
}

type GalleryImage struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}
