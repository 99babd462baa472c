package kvstore

import (
	"errors"
)

var (
	ErrKeyEmpty    = errors.New("key is empty")
	ErrValueNil    = errors.New("value is nil")
	ErrKeyNotFound = errors.New("key not found")
)

// Store is a small key-value store for client-side persisted state.
// Badger is the only backend; the interface keeps callers testable.
type Store interface {
	Set(k string, v string) error
	Get(k string) (v string, err error)
	// SetAny/GetAny codec-encode structured values.
	SetAny(k string, v any) error
	GetAny(k string, v any) (found bool, err error)
	Delete(k string) error
	Close() error
}

func checkKeyAndValue(key string, value any) error {
	if key == "" {
		return ErrKeyEmpty
	}
	if value == nil {
		return ErrValueNil
	}
	return nil
}
