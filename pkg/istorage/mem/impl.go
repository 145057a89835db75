/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package mem

import (
	"bytes"
	"context"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/voedger/mtcoll/pkg/istorage"
)

type storageFactory struct {
	lock      sync.Mutex
	keyspaces map[string]*storageType
}

func (f *storageFactory) Init(name istorage.SafeName) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	if _, ok := f.keyspaces[name.String()]; ok {
		return istorage.ErrStorageAlreadyExists
	}
	f.keyspaces[name.String()] = &storageType{rows: map[string]map[string][]byte{}}
	return nil
}

func (f *storageFactory) Storage(name istorage.SafeName) (istorage.IStorage, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	s, ok := f.keyspaces[name.String()]
	if !ok {
		return nil, istorage.ErrStorageDoesNotExist
	}
	return s, nil
}

// implementation for istorage.IStorage
type storageType struct {
	lock sync.RWMutex
	rows map[string]map[string][]byte
}

func (s *storageType) Put(pKey []byte, cCols []byte, value []byte) (err error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.put(pKey, cCols, value)
	return nil
}

func (s *storageType) PutBatch(items []istorage.BatchItem) (err error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	for i := range items {
		s.put(items[i].PKey, items[i].CCols, items[i].Value)
	}
	return nil
}

func (s *storageType) put(pKey []byte, cCols []byte, value []byte) {
	row, ok := s.rows[string(pKey)]
	if !ok {
		row = map[string][]byte{}
		s.rows[string(pKey)] = row
	}
	row[string(cCols)] = slices.Clone(value)
}

func (s *storageType) Get(pKey []byte, cCols []byte, data *[]byte) (ok bool, err error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	*data = (*data)[0:0]
	value, ok := s.rows[string(pKey)][string(cCols)]
	if !ok {
		return false, nil
	}
	*data = append(*data, value...)
	return true, nil
}

func (s *storageType) GetBatch(pKey []byte, items []istorage.GetBatchItem) (err error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	row := s.rows[string(pKey)]
	for i := range items {
		value, ok := row[string(items[i].CCols)]
		items[i].Ok = ok
		*items[i].Data = append((*items[i].Data)[0:0], value...)
	}
	return nil
}

func (s *storageType) Read(ctx context.Context, pKey []byte, startCCols, finishCCols []byte, cb istorage.ReadCallback) (err error) {
	if (len(startCCols) > 0) && (len(finishCCols) > 0) && (bytes.Compare(startCCols, finishCCols) > 0) {
		return nil // absurd range
	}

	s.lock.RLock()
	row, ok := s.rows[string(pKey)]
	if !ok {
		s.lock.RUnlock()
		return nil
	}
	ccols := maps.Keys(row)
	slices.Sort(ccols)
	values := make([][]byte, len(ccols))
	for i, cc := range ccols {
		values[i] = row[cc]
	}
	s.lock.RUnlock()

	for i, cc := range ccols {
		if ctx.Err() != nil {
			return nil
		}
		if len(startCCols) > 0 && cc < string(startCCols) {
			continue
		}
		if len(finishCCols) > 0 && cc > string(finishCCols) {
			break
		}
		if cb != nil {
			if err := cb([]byte(cc), values[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *storageType) ReadPKeys(ctx context.Context, pKeyPrefix []byte, cCols []byte, cb istorage.PKeysCallback) (err error) {
	s.lock.RLock()
	pKeys := maps.Keys(s.rows)
	slices.Sort(pKeys)
	s.lock.RUnlock()

	for _, pk := range pKeys {
		if ctx.Err() != nil {
			return nil
		}
		if !bytes.HasPrefix([]byte(pk), pKeyPrefix) {
			continue
		}
		s.lock.RLock()
		value, ok := s.rows[pk][string(cCols)]
		s.lock.RUnlock()
		if !ok {
			continue
		}
		if err := cb([]byte(pk), value); err != nil {
			return err
		}
	}
	return nil
}

func (s *storageType) DeleteRow(pKey []byte) (err error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.rows, string(pKey))
	return nil
}
