package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"linkedin-autoposter/domain/model"
	"linkedin-autoposter/domain/repository"
)

type GalleryRepository struct{ kv repository.IKeyValue }

func NewGalleryRepository(kv repository.IKeyValue) *GalleryRepository {
	return &GalleryRepository{kv: kv}
}

func (r *GalleryRepository) State(ctx context.Context) (model.GalleryState, error) {
	var g model.GalleryState
	raw, ok, err := r.kv.Get(ctx, KeyImageGallery)
	if err != nil {
		return g, err
	}
	if ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &g.ImageIDs); err != nil {
			return g, fmt.Errorf("decode gallery: %w", err)
		}
	}
	idx, ok, err := r.kv.Get(ctx, KeyGalleryRotationIndex)
	if err != nil {
		return g, err
	}
	if ok && idx != "" {
		n, err := strconv.ParseUint(idx, 10, 64)
		if err != nil {
			return g, fmt.Errorf("parse rotation index %q: %w", idx, err)
		}
		g.RotationIndex = n
	}
	return g, nil
}

// Advance increments the counter in one store operation so concurrent
// publishes never claim the same slot.
func (r *GalleryRepository) Advance(ctx context.Context) (uint64, error) {
	n, err := r.kv.Increment(ctx, KeyGalleryRotationIndex)
	if err != nil {
		return 0, fmt.Errorf("advance gallery rotation: %w", err)
	}
	return uint64(n - 1), nil
}
