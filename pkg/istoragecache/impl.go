/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package istoragecache

import (
	"context"
	"encoding/binary"

	"github.com/VictoriaMetrics/fastcache"

	"github.com/voedger/mtcoll/pkg/imetrics"
	"github.com/voedger/mtcoll/pkg/istorage"
)

type implCachingStorageProvider struct {
	storageProvider istorage.IStorageProvider
	maxBytes        int
	metrics         imetrics.IMetrics
}

func (sp *implCachingStorageProvider) Storage(keyspace string) (istorage.IStorage, error) {
	nonCachingStorage, err := sp.storageProvider.Storage(keyspace)
	if err != nil {
		return nil, err
	}
	return newCachingStorage(sp.maxBytes, nonCachingStorage, sp.metrics, keyspace), nil
}

func (sp *implCachingStorageProvider) Stop() {
	sp.storageProvider.Stop()
}

type cachedStorage struct {
	cache    *fastcache.Cache
	storage  istorage.IStorage
	metrics  imetrics.IMetrics
	keyspace string
}

func newCachingStorage(maxBytes int, nonCachingStorage istorage.IStorage, metrics imetrics.IMetrics, keyspace string) istorage.IStorage {
	return &cachedStorage{
		cache:    fastcache.New(maxBytes),
		storage:  nonCachingStorage,
		metrics:  metrics,
		keyspace: keyspace,
	}
}

func (s *cachedStorage) Put(pKey []byte, cCols []byte, value []byte) (err error) {
	s.metrics.Increase(putTotal, s.keyspace, 1.0)
	err = s.storage.Put(pKey, cCols, value)
	if err == nil {
		s.cache.Set(key(pKey, cCols), value)
	}
	return err
}

func (s *cachedStorage) PutBatch(items []istorage.BatchItem) (err error) {
	s.metrics.Increase(putBatchTotal, s.keyspace, 1.0)
	s.metrics.Increase(putBatchItemsTotal, s.keyspace, float64(len(items)))

	err = s.storage.PutBatch(items)
	if err == nil {
		for _, i := range items {
			s.cache.Set(key(i.PKey, i.CCols), i.Value)
		}
	}
	return err
}

func (s *cachedStorage) Get(pKey []byte, cCols []byte, data *[]byte) (ok bool, err error) {
	s.metrics.Increase(getTotal, s.keyspace, 1.0)

	*data = (*data)[0:0]
	*data = s.cache.Get(*data, key(pKey, cCols))
	if len(*data) != 0 {
		s.metrics.Increase(getCachedTotal, s.keyspace, 1.0)
		return true, nil
	}
	ok, err = s.storage.Get(pKey, cCols, data)
	if err != nil {
		return false, err
	}
	if ok {
		s.cache.Set(key(pKey, cCols), *data)
	}
	return
}

func (s *cachedStorage) GetBatch(pKey []byte, items []istorage.GetBatchItem) (err error) {
	s.metrics.Increase(getBatchTotal, s.keyspace, 1.0)
	if !s.getBatchFromCache(pKey, items) {
		return s.getBatchFromStorage(pKey, items)
	}
	return
}

func (s *cachedStorage) getBatchFromCache(pKey []byte, items []istorage.GetBatchItem) (ok bool) {
	for i := range items {
		*items[i].Data = s.cache.Get((*items[i].Data)[0:0], key(pKey, items[i].CCols))
		if len(*items[i].Data) == 0 {
			return false
		}
		items[i].Ok = true
	}
	s.metrics.Increase(getBatchCachedTotal, s.keyspace, 1.0)
	return true
}

func (s *cachedStorage) getBatchFromStorage(pKey []byte, items []istorage.GetBatchItem) (err error) {
	err = s.storage.GetBatch(pKey, items)
	if err != nil {
		return err
	}
	for _, item := range items {
		if item.Ok {
			s.cache.Set(key(pKey, item.CCols), *item.Data)
		} else {
			s.cache.Del(key(pKey, item.CCols))
		}
	}
	return err
}

func (s *cachedStorage) Read(ctx context.Context, pKey []byte, startCCols, finishCCols []byte, cb istorage.ReadCallback) (err error) {
	s.metrics.Increase(readTotal, s.keyspace, 1.0)
	return s.storage.Read(ctx, pKey, startCCols, finishCCols, cb)
}

func (s *cachedStorage) ReadPKeys(ctx context.Context, pKeyPrefix []byte, cCols []byte, cb istorage.PKeysCallback) (err error) {
	s.metrics.Increase(readPKeysTotal, s.keyspace, 1.0)
	return s.storage.ReadPKeys(ctx, pKeyPrefix, cCols, cb)
}

func (s *cachedStorage) DeleteRow(pKey []byte) (err error) {
	s.metrics.Increase(deleteRowTotal, s.keyspace, 1.0)
	err = s.storage.DeleteRow(pKey)
	if err == nil {
		// fastcache has no prefix eviction, drop everything
		s.cache.Reset()
	}
	return err
}

// the cache holds one flat keyspace, the pKey length prefix keeps
// (pKey, cCols) pairs with equal concatenations apart
func key(pKey []byte, cCols []byte) []byte {
	res := make([]byte, 0, 4+len(pKey)+len(cCols))
	res = binary.BigEndian.AppendUint32(res, uint32(len(pKey)))
	res = append(res, pKey...)
	res = append(res, cCols...)
	return res
}
