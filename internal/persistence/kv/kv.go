// Package kv provides the durable key-value medium the feed persists
// into: an in-memory store for tests, a single-file sqlite store for
// real durability, and a zstd-compressing decorator.
package kv

// Store is the capability the persistence bridge needs. Get reports
// found=false for a missing key without error.
type Store interface {
	Get(key string) (value []byte, found bool, err error)
	Set(key string, value []byte) error
	Delete(key string) error
}
