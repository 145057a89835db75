/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package bbolt

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	bolt "go.etcd.io/bbolt"

	"github.com/voedger/mtcoll/pkg/coreutils"
	"github.com/voedger/mtcoll/pkg/istorage"
)

type storageFactory struct {
	bboltParams ParamsType
}

func (p *storageFactory) Storage(name istorage.SafeName) (istorage.IStorage, error) {
	dbName := filepath.Join(p.bboltParams.DBDir, name.String()+".db")
	exists, err := coreutils.Exists(dbName)
	if err != nil {
		// notest
		return nil, err
	}
	if !exists {
		return nil, istorage.ErrStorageDoesNotExist
	}
	db, err := bolt.Open(dbName, coreutils.FileMode_rw_rw_rw_, bolt.DefaultOptions)
	if err != nil {
		// notest
		return nil, err
	}
	if err := initDB(db); err != nil {
		return nil, err
	}
	return &storageType{db: db}, nil
}

func (p *storageFactory) Init(name istorage.SafeName) error {
	dbName := filepath.Join(p.bboltParams.DBDir, name.String()+".db")
	exists, err := coreutils.Exists(dbName)
	if err != nil {
		// notest
		return err
	}
	if exists {
		return istorage.ErrStorageAlreadyExists
	}
	if err = os.MkdirAll(p.bboltParams.DBDir, coreutils.FileMode_rwxrwxrwx); err != nil {
		// notest
		return err
	}
	db, err := bolt.Open(dbName, coreutils.FileMode_rw_rw_rw_, bolt.DefaultOptions)
	if err != nil {
		// notest
		return err
	}
	if err := initDB(db); err != nil {
		return err
	}
	return db.Close()
}

// bolt disallows zero-length keys: empty cCols are stored under nullKey
func safeKey(value []byte) []byte {
	if len(value) == 0 {
		return nullKey
	}
	return value
}

// if the key is nullKey, then convert it to nil
func unSafeKey(value []byte) []byte {
	if len(value) == 0 || (len(value) == 1 && value[0] == 0) {
		return nil
	}
	return value
}

// implementation for istorage.IStorage
type storageType struct {
	db *bolt.DB
}

// istorage.IStorage.Put(pKey []byte, cCols []byte, value []byte) (err error)
func (s *storageType) Put(pKey []byte, cCols []byte, value []byte) (err error) {
	return s.db.Update(func(tx *bolt.Tx) error {
		dataBucket := tx.Bucket([]byte(dataBucketName))
		if dataBucket == nil {
			return ErrDataBucketNotFound
		}
		bucket, err := dataBucket.CreateBucketIfNotExists(pKey)
		if err != nil {
			return err
		}
		return bucket.Put(safeKey(cCols), value)
	})
}

// istorage.IStorage.PutBatch(items []BatchItem) (err error)
func (s *storageType) PutBatch(items []istorage.BatchItem) (err error) {
	return s.db.Update(func(tx *bolt.Tx) error {
		dataBucket := tx.Bucket([]byte(dataBucketName))
		if dataBucket == nil {
			return ErrDataBucketNotFound
		}
		for i := 0; i < len(items); i++ {
			bucket, err := dataBucket.CreateBucketIfNotExists(items[i].PKey)
			if err != nil {
				return err
			}
			if err := bucket.Put(safeKey(items[i].CCols), items[i].Value); err != nil {
				return err
			}
		}
		return nil
	})
}

// istorage.IStorage.Get(pKey []byte, cCols []byte, data *[]byte) (ok bool, err error)
func (s *storageType) Get(pKey []byte, cCols []byte, data *[]byte) (ok bool, err error) {
	*data = (*data)[0:0]

	err = s.db.View(func(tx *bolt.Tx) error {
		dataBucket := tx.Bucket([]byte(dataBucketName))
		if dataBucket == nil {
			return ErrDataBucketNotFound
		}
		bucket := dataBucket.Bucket(pKey)
		if bucket == nil {
			return nil
		}
		v := bucket.Get(safeKey(cCols))
		if v == nil {
			return nil
		}
		*data = append(*data, v...)
		ok = true
		return nil
	})
	return ok, err
}

// istorage.IStorage.GetBatch(pKey []byte, items []GetBatchItem) (err error)
func (s *storageType) GetBatch(pKey []byte, items []istorage.GetBatchItem) (err error) {
	return s.db.View(func(tx *bolt.Tx) error {
		dataBucket := tx.Bucket([]byte(dataBucketName))
		if dataBucket == nil {
			return ErrDataBucketNotFound
		}
		bucket := dataBucket.Bucket(pKey)
		if bucket == nil {
			for i := 0; i < len(items); i++ {
				items[i].Ok = false
				*items[i].Data = (*items[i].Data)[0:0]
			}
			return nil
		}
		for i := 0; i < len(items); i++ {
			v := bucket.Get(safeKey(items[i].CCols))
			items[i].Ok = v != nil
			*items[i].Data = append((*items[i].Data)[0:0], v...)
		}
		return nil
	})
}

// istorage.IStorage.Read(ctx context.Context, pKey []byte, startCCols, finishCCols []byte, cb ReadCallback) (err error)
func (s *storageType) Read(ctx context.Context, pKey []byte, startCCols, finishCCols []byte, cb istorage.ReadCallback) (err error) {
	if (len(startCCols) > 0) && (len(finishCCols) > 0) && (bytes.Compare(startCCols, finishCCols) > 0) {
		return nil // absurd range
	}

	return s.db.View(func(tx *bolt.Tx) error {
		dataBucket := tx.Bucket([]byte(dataBucketName))
		if dataBucket == nil {
			return ErrDataBucketNotFound
		}

		bucket := dataBucket.Bucket(pKey)
		if bucket == nil {
			return nil
		}

		var (
			k []byte
			v []byte
		)
		cr := bucket.Cursor()
		if len(startCCols) == 0 {
			k, v = cr.First()
		} else {
			k, v = cr.Seek(safeKey(startCCols))
		}

		for (k != nil) && (len(finishCCols) == 0 || string(k) <= string(finishCCols)) {
			if ctx.Err() != nil {
				return nil
			}
			if cb != nil {
				if err := cb(unSafeKey(k), v); err != nil {
					return err
				}
			}
			k, v = cr.Next()
		}
		return nil
	})
}

// istorage.IStorage.ReadPKeys(ctx context.Context, pKeyPrefix, cCols []byte, cb PKeysCallback) (err error)
func (s *storageType) ReadPKeys(ctx context.Context, pKeyPrefix []byte, cCols []byte, cb istorage.PKeysCallback) (err error) {
	return s.db.View(func(tx *bolt.Tx) error {
		dataBucket := tx.Bucket([]byte(dataBucketName))
		if dataBucket == nil {
			return ErrDataBucketNotFound
		}

		// nested buckets appear in the parent cursor with a nil value
		cr := dataBucket.Cursor()
		for k, v := cr.Seek(pKeyPrefix); k != nil && bytes.HasPrefix(k, pKeyPrefix); k, v = cr.Next() {
			if ctx.Err() != nil {
				return nil
			}
			if v != nil {
				continue
			}
			bucket := dataBucket.Bucket(k)
			if bucket == nil {
				continue
			}
			value := bucket.Get(safeKey(cCols))
			if value == nil {
				continue
			}
			if err := cb(k, value); err != nil {
				return err
			}
		}
		return nil
	})
}

// istorage.IStorage.DeleteRow(pKey []byte) (err error)
func (s *storageType) DeleteRow(pKey []byte) (err error) {
	return s.db.Update(func(tx *bolt.Tx) error {
		dataBucket := tx.Bucket([]byte(dataBucketName))
		if dataBucket == nil {
			return ErrDataBucketNotFound
		}
		err := dataBucket.DeleteBucket(pKey)
		if err == bolt.ErrBucketNotFound {
			return nil
		}
		return err
	})
}

func initDB(db *bolt.DB) error {
	return db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(dataBucketName))
		return err
	})
}
