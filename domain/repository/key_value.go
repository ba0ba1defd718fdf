package repository

import "context"

// IKeyValue is the settings store every other repository is built on.
type IKeyValue interface {
	// Get returns ok=false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	// Delete removes all keys in one atomic operation.
	Delete(ctx context.Context, keys ...string) error
	// Increment atomically adds one to an integer value, treating an absent
	// key as zero, and returns the new value.
	Increment(ctx context.Context, key string) (int64, error)
}

// IStateStore keeps short-lived OAuth anti-forgery state tokens.
type IStateStore interface {
	Put(ctx context.Context, state string) error
	// Consume returns true once for a live state and then forgets it.
	Consume(ctx context.Context, state string) (bool, error)
}
