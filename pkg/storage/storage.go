package storage

import "fmt"

var (
	ErrorNotFound = fmt.Errorf("not found in DB")
)

type Storage interface {
	Write

	// Get retrieves the object `value` named by `key`.
	// Get returns ErrorNotFound if the key is not mapped to a value.
	Get(key []byte) ([]byte, error)

	// Has returns whether the `key` is mapped to a `value`.
	Has(key []byte) (bool, error)

	// Prefix iterates over a DB's key/value pairs in key order including prefix.
	Prefix(prefix []byte) Iterator

	NewBatch() Batch

	Close() error
}

// Write is the write-side of the storage interface.
type Write interface {
	// Put stores the object `value` named by `key`.
	Put(key, value []byte) error

	// Delete removes the value for given `key`.
	Delete(key []byte) error
}

type Iterator interface {
	// Next moves the iterator to the next key/value pair.
	// It returns false if the iterator is exhausted.
	Next() bool

	// Key returns the key of the current key/value pair, or nil if done.
	Key() []byte

	// Value returns the value of the current key/value pair, or nil if done.
	Value() []byte

	// Release frees the iterator. Error reports any failure met while
	// iterating.
	Release()
	Error() error
}

// Batch collects writes that are applied atomically on Commit.
type Batch interface {
	Put(key, value []byte)
	Delete(key []byte)
	Commit() error
}
