package persistence

import (
	"context"

	"linkedin-autoposter/domain/repository"
)

type ExpiryEmailStateRepository struct{ kv repository.IKeyValue }

func NewExpiryEmailStateRepository(kv repository.IKeyValue) *ExpiryEmailStateRepository {
	return &ExpiryEmailStateRepository{kv: kv}
}

func (r *ExpiryEmailStateRepository) LastSentDate(ctx context.Context) (string, error) {
	v, _, err := r.kv.Get(ctx, KeyLastExpiryEmailDate)
	return v, err
}

func (r *ExpiryEmailStateRepository) SetLastSentDate(ctx context.Context, date string) error {
	return r.kv.Set(ctx, KeyLastExpiryEmailDate, date)
}

func (r *ExpiryEmailStateRepository) Clear(ctx context.Context) error {
	return r.kv.Delete(ctx, KeyLastExpiryEmailDate)
}
