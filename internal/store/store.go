// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key has no value in the store.
var ErrNotFound = errors.New("key not found")

// KVStore is the device-local key-value store used for guest-mode data.
// Implementations must be safe for use from a single process; arc-recall
// serializes all mutations through the data manager.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
