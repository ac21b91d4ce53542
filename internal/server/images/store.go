// Package images stores map images uploaded by account owners.
package images

import "context"

// Store persists an uploaded image for an account.
type Store interface {
	Put(ctx context.Context, accountID string, image string) error
}

// NopStore accepts every image and keeps nothing.
type NopStore struct{}

func (NopStore) Put(context.Context, string, string) error { return nil }
