package model

import "time"

type TargetState string

const (
	TargetNotAttempted   TargetState = "not_attempted"
	TargetImageUploading TargetState = "image_uploading"
	TargetSubmitting     TargetState = "submitting"
	TargetSucceeded      TargetState = "succeeded"
	TargetFailed         TargetState = "failed"
)

const (
	OutcomeShared  = "shared"
	OutcomeFailed  = "failed"
	OutcomeSkipped = "skipped"
)

// TargetResult is the result of posting to one audience.
type TargetResult struct {
	Target        string      `json:"target"`
	URN           string      `json:"urn,omitempty"`
	State         TargetState `json:"state"`
	PostID        string      `json:"post_id,omitempty"`
	Error         string      `json:"error,omitempty"`
	ImageAttached bool        `json:"image_attached"`
	ImageError    string      `json:"image_error,omitempty"`
}

func (r TargetResult) Succeeded() bool { return r.State == TargetSucceeded }

// PublishOutcome is returned from a publish notification.
type PublishOutcome struct {
	ItemID     string         `json:"item_id"`
	Status     string         `json:"status"`
	SkipReason string         `json:"skip_reason,omitempty"`
	ImageURL   string         `json:"image_url,omitempty"`
	Results    []TargetResult `json:"results"`
	SharedAt   *time.Time     `json:"shared_at,omitempty"`
}

// PublishRecord is the persisted per-item share state.
type PublishRecord struct {
	ItemID   string            `json:"item_id"`
	SharedAt *time.Time        `json:"shared_at,omitempty"`
	PostIDs  map[string]string `json:"post_ids"`
	Errors   map[string]string `json:"errors"`
	Disabled bool              `json:"disabled"`
}

// PublishAudit is an append-only log row per target attempt.
type PublishAudit struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	ItemID    string    `json:"item_id" gorm:"size:128;index"`
	Target    string    `json:"target" gorm:"size:32"`
	Status    string    `json:"status" gorm:"size:32"`
	PostID    string    `json:"post_id,omitempty" gorm:"size:255"`
	Error     string    `json:"error,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}

// TestPostResult is the interactive result of a test post.
type TestPostResult struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Results []TargetResult `json:"results"`
}
