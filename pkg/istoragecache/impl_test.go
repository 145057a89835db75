/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package istoragecache

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voedger/mtcoll/pkg/imetrics"
	"github.com/voedger/mtcoll/pkg/istorage"
	"github.com/voedger/mtcoll/pkg/istorage/mem"
	"github.com/voedger/mtcoll/pkg/istorage/provider"
)

const testCacheSize = 1000 * 1000

func TestTCK(t *testing.T) {
	sp := Provide(testCacheSize, provider.Provide(mem.Provide()), imetrics.Provide())
	storage, err := sp.Storage("tck")
	require.NoError(t, err)

	istorage.TechnologyCompatibilityKit_Storage(t, storage)
}

func TestGetIsServedFromCache(t *testing.T) {
	require := require.New(t)
	metrics := imetrics.Provide()

	underlying := newMemStorage(t)
	cached := newCachingStorage(testCacheSize, underlying, metrics, "test")

	pKey := []byte("row")
	cCols := []byte("attr")
	require.NoError(cached.Put(pKey, cCols, []byte("value")))

	// drop the row behind the cache's back, the cached value must survive
	require.NoError(underlying.DeleteRow(pKey))

	data := make([]byte, 0)
	ok, err := cached.Get(pKey, cCols, &data)
	require.NoError(err)
	require.True(ok)
	require.Equal([]byte("value"), data)

	require.Equal(float64(1), metricValue(t, metrics, getCachedTotal))
}

func TestDeleteRowResetsCache(t *testing.T) {
	require := require.New(t)

	underlying := newMemStorage(t)
	cached := newCachingStorage(testCacheSize, underlying, imetrics.Provide(), "test")

	pKey := []byte("row")
	cCols := []byte("attr")
	require.NoError(cached.Put(pKey, cCols, []byte("value")))
	require.NoError(cached.DeleteRow(pKey))

	data := make([]byte, 0)
	ok, err := cached.Get(pKey, cCols, &data)
	require.NoError(err)
	require.False(ok)
}

func TestKeyIsUnambiguous(t *testing.T) {
	require := require.New(t)
	require.NotEqual(string(key([]byte("ab"), []byte("c"))), string(key([]byte("a"), []byte("bc"))))
}

func newMemStorage(t *testing.T) istorage.IStorage {
	factory := mem.Provide()
	name := istorage.NewTestSafeName(t)
	require.NoError(t, factory.Init(name))
	storage, err := factory.Storage(name)
	require.NoError(t, err)
	return storage
}

func metricValue(t *testing.T, metrics imetrics.IMetrics, name string) float64 {
	res := float64(0)
	require.NoError(t, metrics.List(func(metric imetrics.IMetric, metricValue float64) (err error) {
		if metric.Name() == name {
			res = metricValue
		}
		return nil
	}))
	return res
}
