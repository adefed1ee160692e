package repositories

import (
	"context"
	"fmt"

	"along/internal/domain"
)

// KeyValueStore is the durable storage behind the search history.
// Every failure wraps domain.ErrStorageUnavailable.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

func storageErr(op, key string, err error) error {
	return fmt.Errorf("%s %q: %w: %w", op, key, domain.ErrStorageUnavailable, err)
}
