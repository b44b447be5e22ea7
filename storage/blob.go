// Package storage holds the key -> JSON blob backends the domain store
// persists its collections to.
package storage

import "context"

// BlobStore is a durable string dictionary. There are no transactions across
// keys. Get reports a missing key with ok == false and a nil error.
type BlobStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	// Clear removes every key starting with prefix.
	Clear(ctx context.Context, prefix string) error
}
