/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package imtcoll

import (
	"context"

	"github.com/voedger/mtcoll/pkg/isequence"
)

// IMultiTypeCollection is a logical append-only collection that demultiplexes
// typed values into per-type ordered sub-sequences. Types in use are
// discovered from marker attributes on the collection's own row, so the cost
// of discovery is O(distinct types), not O(entries).
type IMultiTypeCollection interface {
	Name() string

	// Add routes the value into the sub-sequence of its type and returns the
	// ordering key. A value that is not an *Envelope is wrapped first.
	// Could return ErrNilValue before any store interaction.
	// Without WithBatch the entry and the type marker are written
	// independently: between the two writes the entry is readable via
	// ScanByType while its type is not yet listed by ListStoredTypes, and a
	// crash in between leaves the type unlisted until the next Add of that
	// type. WithBatch commits both together.
	// @ConcurrentAccess
	Add(value IValue, opts ...AddOption) (isequence.Key, error)

	// ListStoredTypes returns the names of all types ever added.
	// No order guarantee.
	ListStoredTypes(ctx context.Context) ([]string, error)

	// ScanByType reads the entries of one type in ascending key order,
	// strictly after "after" (nil means from the beginning), limit <= 0 means
	// no limit
	ScanByType(ctx context.Context, typeName string, after *isequence.Key, limit int, cb ScanCallback) error

	// LengthByType counts the entries of one type. O(entries of the type),
	// never cached.
	LengthByType(ctx context.Context, typeName string) (int, error)

	// IterateAll drains every stored type fully, type after type, without
	// cross-type interleaving
	IterateAll(ctx context.Context, cb ScanCallback) error

	// CountAll sums the per-type lengths, recomputed on every call
	CountAll(ctx context.Context) (int, error)

	// OnDelete registers every sub-sequence row of the collection plus the
	// collection's own row with the pool. Sub-sequences are discovered from
	// the sequence marker attribute, so rows whose type marker write was lost
	// are still included.
	OnDelete(ctx context.Context, pool IDeletionPool) error
}

// env is valid for the duration of the callback only
type ScanCallback func(key isequence.Key, env *Envelope) (err error)

// IValue is anything the collection can store
type IValue interface {
	// TypeName is the routing key, the empty string routes to "Envelope"
	TypeName() string

	MarshalBinary() (data []byte, err error)
}

// IDeletionPool collects storage rows for subsequent cascading erasure,
// implemented in pkg/idelpool
type IDeletionPool interface {
	// MarkForDeletion must copy pKey, the slice is valid during the call only
	MarkForDeletion(pKey []byte)
}
