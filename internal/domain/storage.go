package domain

import "context"

// KeyValueStorage is the durable string store behind the session. Get returns
// ErrKeyNotFound for absent keys.
type KeyValueStorage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
