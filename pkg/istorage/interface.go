/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package istorage

import (
	"context"
)

// Called per request or frequently inside services, implemented in istorage/provider
type IStorageProvider interface {
	// Storage returns the IStorage for the given keyspace, initializing the
	// underlying driver keyspace on first use.
	// Could return ErrInvalidKeyspaceName, ErrStoppingState
	Storage(keyspace string) (storage IStorage, err error)

	// Stop makes all subsequent Storage calls fail with ErrStoppingState
	Stop()
}

// Implemented by a certain driver
type IStorageFactory interface {
	// Returns IStorage for an existing keyspace
	// Returns ErrStorageDoesNotExist
	Storage(name SafeName) (storage IStorage, err error)

	// Creates a new keyspace
	// Returns ErrStorageAlreadyExists
	Init(name SafeName) error
}

// Row/attribute storage: rows are identified by pKey, attributes within a row
// by cCols. Within one row attributes are ordered by the bytewise order of cCols.
type IStorage interface {
	// @ConcurrentAccess
	Put(pKey []byte, cCols []byte, value []byte) (err error)

	// Applies all items in one batch; atomicity is as good as the driver allows
	PutBatch(items []BatchItem) (err error)

	// ok == false means that the record does not exist
	// len(cCols) may be 0, in this case the record which was written with zero len(cCols) is returned
	// @ConcurrentAccess
	Get(pKey []byte, cCols []byte, data *[]byte) (ok bool, err error)

	// Gets and appends each result to items[i].Data
	// items[i].Ok == false means the record is not found
	// items[i].Ok & Data are undefined in case of error
	GetBatch(pKey []byte, items []GetBatchItem) (err error)

	// Reads the row's attributes in ascending cCols order.
	// startCCols and finishCCols are inclusive bounds; an empty (nil or zero
	// len) bound means the corresponding end of the row is open.
	// Returns nil when ctx is canceled mid-scan.
	// @ConcurrentAccess
	Read(ctx context.Context, pKey []byte, startCCols, finishCCols []byte, cb ReadCallback) (err error)

	// ReadPKeys yields every row whose pKey starts with pKeyPrefix and which
	// carries the given attribute, together with the attribute value.
	// Row order is driver-defined. Expensive: drivers may have to filter
	// server- or client-side, never call it on a hot path.
	// @ConcurrentAccess
	ReadPKeys(ctx context.Context, pKeyPrefix []byte, cCols []byte, cb PKeysCallback) (err error)

	// DeleteRow removes the row with all its attributes. Deleting an absent
	// row is not an error.
	DeleteRow(pKey []byte) (err error)
}

// ccols and value are temporary internal values, must NOT be changed
type ReadCallback func(ccols []byte, value []byte) (err error)

// pKey and value are temporary internal values, must NOT be changed
type PKeysCallback func(pKey []byte, value []byte) (err error)

type BatchItem struct {
	PKey  []byte
	CCols []byte
	Value []byte
}

type GetBatchItem struct {
	CCols []byte
	Ok    bool
	Data  *[]byte
}
