/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package isequence

import (
	"encoding/binary"

	"github.com/voedger/mtcoll/pkg/istorage"
)

// Key orders entries within one sequence
type Key struct {
	// Timestamp is in microseconds since the unix epoch
	Timestamp int64

	// Suffix disambiguates entries with equal timestamps, 24 bits are used
	Suffix uint32
}

const (
	// MaxSuffix is the largest allowed Key.Suffix value
	MaxSuffix = 1<<24 - 1

	entryTag      = byte(0x02)
	entryCColsLen = 1 + 8 + 4
)

// markerCCols is the constant sequence marker attribute, written on the
// sequence's row with every append. It must differ from the single zero byte
// which drivers reserve as the stand-in for empty cCols.
var (
	markerCCols  = []byte{0x01}
	markerValue  = []byte{0x01}
	entryTagOnly = []byte{entryTag}
)

// MarkerCCols returns the cCols of the sequence marker attribute.
// The result must not be modified.
func MarkerCCols() []byte {
	return markerCCols
}

// CCols returns the entry attribute name encoding the Key.
// The bytewise order of CCols matches the (Timestamp, Suffix) order.
func (k Key) CCols() []byte {
	cCols := make([]byte, 0, entryCColsLen)
	cCols = append(cCols, entryTag)
	cCols = binary.BigEndian.AppendUint64(cCols, uint64(k.Timestamp))
	cCols = binary.BigEndian.AppendUint32(cCols, k.Suffix)
	return cCols
}

func keyFromCCols(cCols []byte) (key Key, ok bool) {
	if len(cCols) != entryCColsLen || cCols[0] != entryTag {
		return Key{}, false
	}
	key.Timestamp = int64(binary.BigEndian.Uint64(cCols[1:9]))
	key.Suffix = binary.BigEndian.Uint32(cCols[9:])
	return key, true
}

// successorCCols returns the smallest entry cCols strictly greater than the
// given one
func successorCCols(cCols []byte) []byte {
	succ := make([]byte, len(cCols))
	copy(succ, cCols)
	for i := len(succ) - 1; i >= 0; i-- {
		succ[i]++
		if succ[i] != 0 {
			break
		}
	}
	return succ
}

type appendOptions struct {
	timestamp *int64
	suffix    *uint32
	batch     *istorage.Batch
}

type AppendOption func(*appendOptions)

// WithTimestamp overrides the clock-provided timestamp (microseconds)
func WithTimestamp(timestamp int64) AppendOption {
	return func(o *appendOptions) {
		o.timestamp = &timestamp
	}
}

// WithSuffix overrides the randomly drawn suffix
func WithSuffix(suffix uint32) AppendOption {
	return func(o *appendOptions) {
		o.suffix = &suffix
	}
}

// WithBatch stages the entry and the sequence marker into the caller's batch
// instead of writing them immediately. Nothing hits the storage until the
// caller applies the batch.
func WithBatch(batch *istorage.Batch) AppendOption {
	return func(o *appendOptions) {
		o.batch = batch
	}
}
