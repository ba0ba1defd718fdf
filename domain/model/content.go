package model

const StatusPublish = "publish"

// ContentItem is the slice of a host CMS item the autoposter needs.
type ContentItem struct {
	ID               string `json:"id"`
	Type             string `json:"type"`
	Title            string `json:"title"`
	Excerpt          string `json:"excerpt"`
	Content          string `json:"content"`
	Author           string `json:"author"`
	Permalink        string `json:"permalink"`
	FeaturedImageID  string `json:"featured_image_id"`
	FeaturedImageURL string `json:"featured_image_url"`
	HasThumbnail     bool   `json:"has_thumbnail"`
}

// PublishEvent is sent by the host on every content state change.
type PublishEvent struct {
	NewStatus string      `json:"new_status"`
	OldStatus string      `json:"old_status"`
	Item      ContentItem `json:"item"`
}

// IsPublishTransition reports a move into the published state.
func (e PublishEvent) IsPublishTransition() bool {
	return e.NewStatus == StatusPublish && e.OldStatus != StatusPublish
}
