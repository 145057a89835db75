/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package isequence

import (
	"context"

	"github.com/voedger/mtcoll/pkg/coreutils"
	"github.com/voedger/mtcoll/pkg/istorage"
)

type implISequences struct {
	storage   istorage.IStorage
	iTime     coreutils.ITime
	newSuffix func() uint32
}

func (s *implISequences) Append(seq []byte, value []byte, opts ...AppendOption) (Key, error) {
	if len(seq) == 0 {
		return Key{}, ErrEmptySequenceKey
	}

	options := appendOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	key := Key{}
	if options.timestamp != nil {
		key.Timestamp = *options.timestamp
	} else {
		key.Timestamp = s.iTime.Now().UnixMicro()
	}
	if options.suffix != nil {
		key.Suffix = *options.suffix
	} else {
		key.Suffix = s.newSuffix()
	}
	if key.Suffix > MaxSuffix {
		return Key{}, ErrSuffixOverflow
	}

	if options.batch != nil {
		options.batch.Put(seq, key.CCols(), value)
		options.batch.Put(seq, markerCCols, markerValue)
		return key, nil
	}

	err := s.storage.PutBatch([]istorage.BatchItem{
		{PKey: seq, CCols: key.CCols(), Value: value},
		{PKey: seq, CCols: markerCCols, Value: markerValue},
	})
	if err != nil {
		return Key{}, err
	}
	return key, nil
}

func (s *implISequences) Scan(ctx context.Context, seq []byte, after *Key, limit int, cb ScanCallback) error {
	if len(seq) == 0 {
		return ErrEmptySequenceKey
	}

	startCCols := entryTagOnly
	if after != nil {
		startCCols = successorCCols(after.CCols())
	}

	scanCtx := ctx
	cancel := context.CancelFunc(func() {})
	if limit > 0 {
		scanCtx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	read := 0
	return s.storage.Read(scanCtx, seq, startCCols, nil, func(cCols, value []byte) error {
		key, ok := keyFromCCols(cCols)
		if !ok {
			return nil // foreign attribute on the sequence row
		}
		if err := cb(key, value); err != nil {
			return err
		}
		read++
		if limit > 0 && read >= limit {
			cancel()
		}
		return nil
	})
}

func (s *implISequences) Length(ctx context.Context, seq []byte) (int, error) {
	if len(seq) == 0 {
		return 0, ErrEmptySequenceKey
	}

	length := 0
	err := s.storage.Read(ctx, seq, entryTagOnly, nil, func(cCols, value []byte) error {
		if _, ok := keyFromCCols(cCols); ok {
			length++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return length, nil
}
