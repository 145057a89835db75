/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package isequence

import "context"

// Ordered append-only sequences, one per storage row. Entries are ordered by
// Key (timestamp, then suffix); equal timestamps are disambiguated by the
// suffix, so appends never overwrite each other unless both parts collide.
type ISequences interface {
	// Append stores value under a new Key and returns it.
	// The sequence marker attribute is written together with the entry, in
	// the same batch.
	// Could return ErrEmptySequenceKey, ErrSuffixOverflow
	// @ConcurrentAccess
	Append(seq []byte, value []byte, opts ...AppendOption) (Key, error)

	// Scan reads entries in ascending Key order, strictly after "after"
	// (nil means from the beginning). limit <= 0 means no limit.
	// cb error stops the scan and is returned as is.
	// @ConcurrentAccess
	Scan(ctx context.Context, seq []byte, after *Key, limit int, cb ScanCallback) error

	// Length counts the entries. O(n), recomputed on every call.
	Length(ctx context.Context, seq []byte) (int, error)
}

// value is a temporary internal value, must NOT be changed
type ScanCallback func(key Key, value []byte) (err error)
