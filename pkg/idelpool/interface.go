/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package idelpool

import (
	"context"

	"github.com/voedger/mtcoll/pkg/imtcoll"
	"github.com/voedger/mtcoll/pkg/istorage"
)

// IDeletionPool accumulates storage rows marked for cascading erasure and
// erases them on Flush
type IDeletionPool interface {
	imtcoll.IDeletionPool

	// Len returns the number of distinct registered rows
	Len() int

	// Flush erases the registered rows, best effort: a failed row is logged,
	// kept registered and reported in the joined error, the rest are still
	// processed. Successfully erased rows are unregistered.
	Flush(ctx context.Context, storage istorage.IStorage) error
}
