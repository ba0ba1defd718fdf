package persistence

import (
	"context"
	"fmt"
	"time"

	"linkedin-autoposter/domain/apperror"
	"linkedin-autoposter/domain/model"
	"linkedin-autoposter/domain/repository"
)

var recordTargets = []string{model.TargetPersonal, model.TargetOrganization}

// PublishRecordRepository keeps per-item share state as item:{id}:* keys.
type PublishRecordRepository struct{ kv repository.IKeyValue }

func NewPublishRecordRepository(kv repository.IKeyValue) *PublishRecordRepository {
	return &PublishRecordRepository{kv: kv}
}

func (r *PublishRecordRepository) Get(ctx context.Context, itemID string) (model.PublishRecord, error) {
	rec := model.PublishRecord{ItemID: itemID, PostIDs: map[string]string{}, Errors: map[string]string{}}

	disabled, _, err := r.kv.Get(ctx, itemKey(itemID, "disabled"))
	if err != nil {
		return rec, err
	}
	rec.Disabled = disabled == "1"

	sharedAt, ok, err := r.kv.Get(ctx, itemKey(itemID, "shared_at"))
	if err != nil {
		return rec, err
	}
	if ok && sharedAt != "" {
		t, err := time.Parse(time.RFC3339, sharedAt)
		if err != nil {
			return rec, fmt.Errorf("parse shared_at %q: %w", sharedAt, err)
		}
		rec.SharedAt = &t
	}

	for _, target := range recordTargets {
		if v, ok, err := r.kv.Get(ctx, itemTargetKey(itemID, "post_id", target)); err != nil {
			return rec, err
		} else if ok && v != "" {
			rec.PostIDs[target] = v
		}
		if v, ok, err := r.kv.Get(ctx, itemTargetKey(itemID, "last_error", target)); err != nil {
			return rec, err
		} else if ok && v != "" {
			rec.Errors[target] = v
		}
	}
	return rec, nil
}

func (r *PublishRecordRepository) SetDisabled(ctx context.Context, itemID string, disabled bool) error {
	if !disabled {
		return r.kv.Delete(ctx, itemKey(itemID, "disabled"))
	}
	return r.kv.Set(ctx, itemKey(itemID, "disabled"), "1")
}

// Record stores the outcome of one publish attempt. A failed target keeps
// any post id from an earlier successful share.
func (r *PublishRecordRepository) Record(ctx context.Context, outcome model.PublishOutcome) error {
	if outcome.SharedAt != nil {
		if err := r.kv.Set(ctx, itemKey(outcome.ItemID, "shared_at"), outcome.SharedAt.UTC().Format(time.RFC3339)); err != nil {
			return err
		}
	}
	for _, res := range outcome.Results {
		errKey := itemTargetKey(outcome.ItemID, "last_error", res.Target)
		if res.Succeeded() {
			if err := r.kv.Set(ctx, itemTargetKey(outcome.ItemID, "post_id", res.Target), res.PostID); err != nil {
				return err
			}
			if err := r.kv.Delete(ctx, errKey); err != nil {
				return err
			}
			continue
		}
		if err := r.kv.Set(ctx, errKey, apperror.Truncate(res.Error, apperror.DisplayLimit)); err != nil {
			return err
		}
	}
	return nil
}
