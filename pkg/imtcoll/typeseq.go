/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package imtcoll

import (
	"context"

	"github.com/voedger/mtcoll/pkg/isequence"
)

// typeSequence addresses the ordered sub-sequence of one type within one
// collection. The row key is derived, never stored anywhere.
type typeSequence struct {
	collection string
	typeName   string
	seqs       isequence.ISequences
}

func newTypeSequence(collection string, typeName string, seqs isequence.ISequences) (typeSequence, error) {
	if typeName == "" {
		return typeSequence{}, ErrEmptyTypeName
	}
	return typeSequence{collection: collection, typeName: typeName, seqs: seqs}, nil
}

func (ts typeSequence) row() []byte {
	return []byte(ts.collection + "/" + ts.typeName)
}

func (ts typeSequence) append(value []byte, opts ...isequence.AppendOption) (isequence.Key, error) {
	return ts.seqs.Append(ts.row(), value, opts...)
}

func (ts typeSequence) scan(ctx context.Context, after *isequence.Key, limit int, cb isequence.ScanCallback) error {
	return ts.seqs.Scan(ctx, ts.row(), after, limit, cb)
}

func (ts typeSequence) length(ctx context.Context) (int, error) {
	return ts.seqs.Length(ctx, ts.row())
}
