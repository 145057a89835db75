/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package pebble

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/cockroachdb/pebble"

	"github.com/voedger/mtcoll/pkg/coreutils"
	"github.com/voedger/mtcoll/pkg/istorage"
)

type storageFactory struct {
	params ParamsType
}

func (p *storageFactory) dbDir(name istorage.SafeName) string {
	return filepath.Join(p.params.DataDir, name.String())
}

func (p *storageFactory) Init(name istorage.SafeName) error {
	dbDir := p.dbDir(name)
	exists, err := coreutils.Exists(dbDir)
	if err != nil {
		// notest
		return err
	}
	if exists {
		return istorage.ErrStorageAlreadyExists
	}
	if err = os.MkdirAll(dbDir, coreutils.FileMode_rwxrwxrwx); err != nil {
		// notest
		return err
	}
	db, err := pebble.Open(dbDir, p.params.pebbleOptions())
	if err != nil {
		return err
	}
	return db.Close()
}

func (p *storageFactory) Storage(name istorage.SafeName) (istorage.IStorage, error) {
	dbDir := p.dbDir(name)
	exists, err := coreutils.Exists(dbDir)
	if err != nil {
		// notest
		return nil, err
	}
	if !exists {
		return nil, istorage.ErrStorageDoesNotExist
	}
	db, err := pebble.Open(dbDir, p.params.pebbleOptions())
	if err != nil {
		return nil, err
	}
	return &storageType{db: db}, nil
}

// implementation for istorage.IStorage
type storageType struct {
	db *pebble.DB
}

func (s *storageType) Put(pKey []byte, cCols []byte, value []byte) (err error) {
	return s.db.Set(encodeKey(pKey, cCols), value, pebble.Sync)
}

func (s *storageType) PutBatch(items []istorage.BatchItem) (err error) {
	batch := s.db.NewBatch()
	defer batch.Close()
	for i := range items {
		if err := batch.Set(encodeKey(items[i].PKey, items[i].CCols), items[i].Value, nil); err != nil {
			return err
		}
	}
	return batch.Commit(pebble.Sync)
}

func (s *storageType) Get(pKey []byte, cCols []byte, data *[]byte) (ok bool, err error) {
	*data = (*data)[0:0]
	value, closer, err := s.db.Get(encodeKey(pKey, cCols))
	if errors.Is(err, pebble.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	*data = append(*data, value...)
	return true, closer.Close()
}

func (s *storageType) GetBatch(pKey []byte, items []istorage.GetBatchItem) (err error) {
	for i := range items {
		if items[i].Ok, err = s.Get(pKey, items[i].CCols, items[i].Data); err != nil {
			return err
		}
	}
	return nil
}

func (s *storageType) Read(ctx context.Context, pKey []byte, startCCols, finishCCols []byte, cb istorage.ReadCallback) (err error) {
	if (len(startCCols) > 0) && (len(finishCCols) > 0) && (bytes.Compare(startCCols, finishCCols) > 0) {
		return nil // absurd range
	}

	lower := rowPrefix(pKey)
	if len(startCCols) > 0 {
		lower = encodeKey(pKey, startCCols)
	}
	upper := keyUpperBound(rowPrefix(pKey))
	if len(finishCCols) > 0 {
		upper = keyUpperBound(encodeKey(pKey, finishCCols)) // finish bound is inclusive
	}

	iter, err := s.db.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := iter.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	for iter.First(); iter.Valid(); iter.Next() {
		if ctx.Err() != nil {
			return nil
		}
		if cb != nil {
			_, cCols, ok := splitKey(iter.Key())
			if !ok {
				continue
			}
			if err := cb(cCols, iter.Value()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *storageType) ReadPKeys(ctx context.Context, pKeyPrefix []byte, cCols []byte, cb istorage.PKeysCallback) (err error) {
	lower := escapePKey(pKeyPrefix)
	upper := keyUpperBound(lower)

	iter, err := s.db.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := iter.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	for iter.First(); iter.Valid(); iter.Next() {
		if ctx.Err() != nil {
			return nil
		}
		pKey, cc, ok := splitKey(iter.Key())
		if !ok || !bytes.Equal(cc, cCols) {
			continue
		}
		if err := cb(pKey, iter.Value()); err != nil {
			return err
		}
	}
	return nil
}

func (s *storageType) DeleteRow(pKey []byte) (err error) {
	prefix := rowPrefix(pKey)
	return s.db.DeleteRange(prefix, keyUpperBound(prefix), pebble.Sync)
}
