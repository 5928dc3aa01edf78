package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/flipcards/internal/logger"
)

// record is one JSON encoded value stored under a single key. A missing or
// unparsable value loads as the zero value of T.
type record[T any] struct {
	kv  KV
	key string
	log *logger.Logger
}

func (r record[T]) load(ctx context.Context) (T, error) {
	var v T
	raw, ok, err := r.kv.Get(ctx, r.key)
	if err != nil || !ok {
		return v, err
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		r.log.Warn("Discarding corrupt progress record", "key", r.key, "error", err)
		var zero T
		return zero, nil
	}
	return v, nil
}

func (r record[T]) save(ctx context.Context, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", r.key, err)
	}
	return r.kv.Set(ctx, r.key, string(data))
}
