package kv

import "context"

// Repository is the durable local key-value storage behind the cart and
// session state. Values are opaque JSON documents; callers own the schema.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
