/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package istorage

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// TechnologyCompatibilityKit test suit
func TechnologyCompatibilityKit(t *testing.T, storageFactory IStorageFactory) {
	storage := testStorageFactory(t, storageFactory)
	TechnologyCompatibilityKit_Storage(t, storage)
}

// need to test e.g. istoragecache
func TechnologyCompatibilityKit_Storage(t *testing.T, storage IStorage) {
	t.Run("TestStorage_GetPutRead", func(t *testing.T) { testStorage_GetPutRead(t, storage) })
	t.Run("TestStorage_PutBatch", func(t *testing.T) { testStorage_PutBatch(t, storage) })
	t.Run("TestStorage_GetBatch", func(t *testing.T) { testStorage_GetBatch(t, storage) })
	t.Run("TestStorage_ReadPKeys", func(t *testing.T) { testStorage_ReadPKeys(t, storage) })
	t.Run("TestStorage_DeleteRow", func(t *testing.T) { testStorage_DeleteRow(t, storage) })
}

// unique keyspace name per run: the same Cassandra cluster may serve TCK runs
// of several packages simultaneously
func NewTestSafeName(t *testing.T) SafeName {
	name := "tck" + strings.ReplaceAll(uuid.NewString(), "-", "")
	if len(name) > MaxSafeNameLength {
		name = name[:MaxSafeNameLength]
	}
	sn, err := NewSafeName(name)
	require.NoError(t, err)
	return sn
}

func testStorageFactory(t *testing.T, sf IStorageFactory) IStorage {
	require := require.New(t)

	sn := NewTestSafeName(t)
	t.Run("ErrStorageDoesNotExist", func(t *testing.T) {
		s, err := sf.Storage(sn)
		require.ErrorIs(err, ErrStorageDoesNotExist)
		require.Nil(s)
	})

	t.Run("ErrStorageAlreadyExists", func(t *testing.T) {
		err := sf.Init(sn)
		require.NoError(err)
		err = sf.Init(sn)
		require.ErrorIs(err, ErrStorageAlreadyExists)
	})

	storage, err := sf.Storage(sn)
	require.NoError(err)
	return storage
}

// nolint
func testStorage_GetPutRead(t *testing.T, storage IStorage) {

	t.Run("Should read not existing row", func(t *testing.T) {
		ctx := context.Background()
		err := storage.Read(ctx, []byte{1}, nil, nil, nil)
		require.NoError(t, err, err)
	})

	t.Run("Should get not existing", func(t *testing.T) {
		require := require.New(t)
		require.NoError(storage.Put([]byte("*"), []byte("month"), []byte("January")))

		data := make([]byte, 0)

		// not existing row
		ok, err := storage.Get([]byte("0"), []byte("month"), &data)
		require.False(ok)
		require.NoError(err)

		// not existing clustering columns
		ok, err = storage.Get([]byte("*"), []byte("year"), &data)
		require.False(ok)
		require.NoError(err)
	})

	t.Run("Should put and get", func(t *testing.T) {
		require := require.New(t)
		require.NoError(storage.Put([]byte("pk1"), []byte("cc1"), []byte("v1")))

		data := make([]byte, 0)
		ok, err := storage.Get([]byte("pk1"), []byte("cc1"), &data)
		require.True(ok)
		require.NoError(err)
		require.Equal([]byte("v1"), data)
	})

	t.Run("Read method should read one row in cCols order", func(t *testing.T) {
		ctx := context.Background()
		require := require.New(t)
		values := make([]string, 0, 2)
		ccols := make([]string, 0, 2)
		reader := func(cc, value []byte) (err error) {
			values = append(values, string(value))
			ccols = append(ccols, string(cc))
			return err
		}
		require.NoError(storage.Put([]byte("r1"), []byte("bravo"), []byte("second")))
		require.NoError(storage.Put([]byte("r1"), []byte("alpha"), []byte("first")))
		require.NoError(storage.Put([]byte("r2"), []byte("alpha"), []byte("other row")))

		err := storage.Read(ctx, []byte("r1"), nil, nil, reader)
		require.NoError(err)

		require.Equal([]string{"first", "second"}, values)
		require.Equal([]string{"alpha", "bravo"}, ccols)
	})

	t.Run("Read method should honor inclusive cCols bounds", func(t *testing.T) {
		ctx := context.Background()
		require := require.New(t)
		require.NoError(storage.Put([]byte{0xa}, []byte{0x10, 0x11}, []byte("100")))
		require.NoError(storage.Put([]byte{0xa}, []byte{0x10, 0x12}, []byte("200")))
		require.NoError(storage.Put([]byte{0xa}, []byte{0x10, 0x13}, []byte("300")))

		read := func(start, finish []byte) (values []string) {
			err := storage.Read(ctx, []byte{0xa}, start, finish, func(_, value []byte) error {
				values = append(values, string(value))
				return nil
			})
			require.NoError(err)
			return values
		}

		require.Equal([]string{"100", "200", "300"}, read(nil, nil))
		require.Equal([]string{"200", "300"}, read([]byte{0x10, 0x12}, nil))
		require.Equal([]string{"100", "200"}, read(nil, []byte{0x10, 0x12}))
		require.Equal([]string{"200"}, read([]byte{0x10, 0x12}, []byte{0x10, 0x12}))
		require.Empty(read([]byte{0x10, 0x14}, nil))
	})

	t.Run("Read must be stopped by the callback error", func(t *testing.T) {
		ctx := context.Background()
		require := require.New(t)
		require.NoError(storage.Put([]byte("stop"), []byte("a"), []byte("1")))
		require.NoError(storage.Put([]byte("stop"), []byte("b"), []byte("2")))

		calls := 0
		testErr := context.DeadlineExceeded
		err := storage.Read(ctx, []byte("stop"), nil, nil, func(_, _ []byte) error {
			calls++
			return testErr
		})
		require.ErrorIs(err, testErr)
		require.Equal(1, calls)
	})

	t.Run("Read must quit on ctx cancel", func(t *testing.T) {
		require := require.New(t)
		require.NoError(storage.Put([]byte("cancel"), []byte("a"), []byte("1")))
		require.NoError(storage.Put([]byte("cancel"), []byte("b"), []byte("2")))

		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		err := storage.Read(ctx, []byte("cancel"), nil, nil, func(_, _ []byte) error {
			calls++
			cancel()
			return nil
		})
		require.NoError(err)
		require.Equal(1, calls)
	})

	t.Run("Should put and get empty cCols", func(t *testing.T) {
		require := require.New(t)
		require.NoError(storage.Put([]byte("emptycc"), nil, []byte("value")))

		data := make([]byte, 0)
		ok, err := storage.Get([]byte("emptycc"), nil, &data)
		require.True(ok)
		require.NoError(err)
		require.Equal([]byte("value"), data)
	})
}

func testStorage_PutBatch(t *testing.T, storage IStorage) {
	require := require.New(t)

	items := []BatchItem{
		{PKey: []byte("batch"), CCols: []byte("cc1"), Value: []byte("v1")},
		{PKey: []byte("batch"), CCols: []byte("cc2"), Value: []byte("v2")},
		{PKey: []byte("batch2"), CCols: []byte("cc1"), Value: []byte("v3")},
	}
	require.NoError(storage.PutBatch(items))

	data := make([]byte, 0)
	for _, item := range items {
		ok, err := storage.Get(item.PKey, item.CCols, &data)
		require.NoError(err)
		require.True(ok)
		require.Equal(item.Value, data)
	}
}

func testStorage_GetBatch(t *testing.T, storage IStorage) {
	require := require.New(t)

	require.NoError(storage.Put([]byte("gb"), []byte("cc1"), []byte("v1")))
	require.NoError(storage.Put([]byte("gb"), []byte("cc3"), []byte("v3")))

	data1 := make([]byte, 0)
	data2 := make([]byte, 0)
	data3 := make([]byte, 0)
	items := []GetBatchItem{
		{CCols: []byte("cc1"), Data: &data1},
		{CCols: []byte("cc2"), Data: &data2},
		{CCols: []byte("cc3"), Data: &data3},
	}
	require.NoError(storage.GetBatch([]byte("gb"), items))

	require.True(items[0].Ok)
	require.Equal([]byte("v1"), *items[0].Data)
	require.False(items[1].Ok)
	require.True(items[2].Ok)
	require.Equal([]byte("v3"), *items[2].Data)

	t.Run("not existing row", func(t *testing.T) {
		items := []GetBatchItem{{CCols: []byte("cc1"), Data: &data1}}
		require.NoError(storage.GetBatch([]byte("gb-unknown"), items))
		require.False(items[0].Ok)
	})
}

func testStorage_ReadPKeys(t *testing.T, storage IStorage) {
	require := require.New(t)
	ctx := context.Background()

	marker := []byte{0x01}
	require.NoError(storage.Put([]byte("coll/typeA"), marker, []byte{1}))
	require.NoError(storage.Put([]byte("coll/typeA"), []byte("entry"), []byte("e1")))
	require.NoError(storage.Put([]byte("coll/typeB"), marker, []byte{1}))
	require.NoError(storage.Put([]byte("coll"), []byte("attr"), []byte("parent row, no marker")))
	require.NoError(storage.Put([]byte("other/typeC"), marker, []byte{1}))

	pKeys := map[string]string{}
	err := storage.ReadPKeys(ctx, []byte("coll/"), marker, func(pKey, value []byte) error {
		pKeys[string(pKey)] = string(value)
		return nil
	})
	require.NoError(err)
	require.Equal(map[string]string{
		"coll/typeA": "\x01",
		"coll/typeB": "\x01",
	}, pKeys)

	t.Run("no matches", func(t *testing.T) {
		err := storage.ReadPKeys(ctx, []byte("missing/"), marker, func(pKey, value []byte) error {
			t.Fatal("unexpected callback")
			return nil
		})
		require.NoError(err)
	})
}

func testStorage_DeleteRow(t *testing.T, storage IStorage) {
	require := require.New(t)

	require.NoError(storage.Put([]byte("del"), []byte("cc1"), []byte("v1")))
	require.NoError(storage.Put([]byte("del"), []byte("cc2"), []byte("v2")))
	require.NoError(storage.Put([]byte("keep"), []byte("cc1"), []byte("v3")))

	require.NoError(storage.DeleteRow([]byte("del")))

	data := make([]byte, 0)
	ok, err := storage.Get([]byte("del"), []byte("cc1"), &data)
	require.NoError(err)
	require.False(ok)
	ok, err = storage.Get([]byte("del"), []byte("cc2"), &data)
	require.NoError(err)
	require.False(ok)
	ok, err = storage.Get([]byte("keep"), []byte("cc1"), &data)
	require.NoError(err)
	require.True(ok)

	// deleting an absent row is not an error
	require.NoError(storage.DeleteRow([]byte("del")))
}
