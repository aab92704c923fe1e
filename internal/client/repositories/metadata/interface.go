package metadata

import "context"

// Repository is a small key/value store for client state that is not an
// entity: the access token, the signed-in email, UI preferences.
type Repository interface {
	// Get returns the stored value, or nil when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
