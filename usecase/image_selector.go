package usecase

import (
	"context"

	"linkedin-autoposter/domain/dto"
	"linkedin-autoposter/domain/model"
	"linkedin-autoposter/domain/repository"
	"linkedin-autoposter/infrastructure/logger"
)

const (
	ImageFromGallery  = "gallery"
	ImageFromFeatured = "featured"
	ImageFromInline   = "inline"
)

// ImageCandidates are the item-derived image sources.
type ImageCandidates struct {
	FeaturedURL string
	FeaturedID  string
	InlineURL   string
}

func CandidatesFromItem(item model.ContentItem) ImageCandidates {
	return ImageCandidates{
		FeaturedURL: item.FeaturedImageURL,
		FeaturedID:  item.FeaturedImageID,
		InlineURL:   FirstImageSrc(item.Content),
	}
}

type ImageSelection struct {
	URL    string
	Source string
	// GalleryImage is set when the gallery produced the URL.
	GalleryImage     *model.GalleryImage
	GalleryConsulted bool
	// GallerySlot is the rotation index that was peeked.
	GallerySlot uint64
}

// ImageSelector never advances the gallery; callers do that after selecting.
type ImageSelector struct {
	media repository.IMedia
}

func NewImageSelector(media repository.IMedia) *ImageSelector {
	return &ImageSelector{media: media}
}

func (s *ImageSelector) Select(ctx context.Context, policy string, gallery model.GalleryState, c ImageCandidates) ImageSelection {
	var sel ImageSelection
	var order []string
	switch policy {
	case model.ImageSourceGalleryOnly:
		order = []string{ImageFromGallery}
	case model.ImageSourceGalleryFirst:
		order = []string{ImageFromGallery, ImageFromFeatured, ImageFromInline}
	default:
		order = []string{ImageFromFeatured, ImageFromInline, ImageFromGallery}
	}

	for _, source := range order {
		var url string
		switch source {
		case ImageFromFeatured:
			url = s.featured(ctx, c)
		case ImageFromInline:
			url = c.InlineURL
		case ImageFromGallery:
			if len(gallery.ImageIDs) == 0 {
				continue
			}
			sel.GalleryConsulted = true
			sel.GallerySlot = gallery.RotationIndex
			if img := s.GalleryImageAt(ctx, gallery, gallery.RotationIndex); img != nil {
				sel.GalleryImage = img
				url = img.URL
			}
		}
		if url != "" {
			sel.URL = url
			sel.Source = source
			if source != ImageFromGallery {
				sel.GalleryImage = nil
			}
			return sel
		}
	}
	return sel
}

// GalleryImageAt resolves the gallery image for a rotation slot.
func (s *ImageSelector) GalleryImageAt(ctx context.Context, gallery model.GalleryState, slot uint64) *model.GalleryImage {
	if len(gallery.ImageIDs) == 0 {
		return nil
	}
	id := gallery.ImageIDs[slot%uint64(len(gallery.ImageIDs))]
	url := s.resolve(ctx, id)
	if url == "" {
		return nil
	}
	return &model.GalleryImage{ID: id, URL: url}
}

// ResolveMedia returns the URL of a media id, or "" when unknown. Ids that
// already look like URLs resolve to themselves.
func (s *ImageSelector) ResolveMedia(ctx context.Context, id string) string {
	return s.resolve(ctx, id)
}

func (s *ImageSelector) featured(ctx context.Context, c ImageCandidates) string {
	if c.FeaturedURL != "" {
		return c.FeaturedURL
	}
	return s.resolve(ctx, c.FeaturedID)
}

func (s *ImageSelector) resolve(ctx context.Context, id string) string {
	if id == "" {
		return ""
	}
	if dto.LooksLikeURL(id) {
		return id
	}
	if s.media == nil {
		return ""
	}
	url, err := s.media.ImageURL(ctx, id)
	if err != nil {
		logger.GetLogger().WithField("media_id", id).WithField("error", err).Warn("Failed to resolve media url")
		return ""
	}
	return url
}
