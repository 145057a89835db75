/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package cas

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gocql/gocql"

	"github.com/voedger/mtcoll/pkg/istorage"
)

type casStorageFactory struct {
	casPar CassandraParamsType
}

func newCasStorageFactory(casPar CassandraParamsType) istorage.IStorageFactory {
	return &casStorageFactory{casPar: casPar}
}

func (p *casStorageFactory) newCluster(keyspace string) *gocql.ClusterConfig {
	cluster := gocql.NewCluster(strings.Split(p.casPar.Hosts, ",")...)
	if p.casPar.Port > 0 {
		cluster.Port = p.casPar.Port
	}
	cluster.Consistency = gocql.Quorum
	cluster.Timeout = ConnectionTimeout
	cluster.CQLVersion = p.casPar.cqlVersion()
	if p.casPar.ProtoVersion > 0 {
		cluster.ProtoVersion = p.casPar.ProtoVersion
	}
	if p.casPar.NumRetries > 0 {
		cluster.RetryPolicy = &gocql.SimpleRetryPolicy{NumRetries: p.casPar.NumRetries}
	}
	if p.casPar.Username != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{Username: p.casPar.Username, Password: p.casPar.Pwd}
	}
	if p.casPar.DC != "" {
		cluster.PoolConfig.HostSelectionPolicy = gocql.DCAwareRoundRobinPolicy(p.casPar.DC)
	}
	cluster.Keyspace = keyspace
	return cluster
}

func (p *casStorageFactory) keyspaceExists(session *gocql.Session, name istorage.SafeName) (bool, error) {
	var ksName string
	err := session.Query("SELECT keyspace_name FROM system_schema.keyspaces WHERE keyspace_name = ?", name.String()).Scan(&ksName)
	if errors.Is(err, gocql.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (p *casStorageFactory) Init(name istorage.SafeName) error {
	session, err := p.newCluster("").CreateSession()
	if err != nil {
		return fmt.Errorf("can't connect to cluster: %w", err)
	}
	defer session.Close()

	exists, err := p.keyspaceExists(session, name)
	if err != nil {
		return err
	}
	if exists {
		return istorage.ErrStorageAlreadyExists
	}

	err = session.Query(fmt.Sprintf("CREATE KEYSPACE IF NOT EXISTS %s WITH replication = %s", name.String(), p.casPar.KeyspaceWithReplication)).
		Exec()
	if err != nil {
		return fmt.Errorf("can't create keyspace %s: %w", name.String(), err)
	}

	err = session.Query(fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s.values (p_key blob, c_col blob, value blob, PRIMARY KEY ((p_key), c_col))", name.String())).
		Exec()
	if err != nil {
		return fmt.Errorf("can't create table %s.values: %w", name.String(), err)
	}
	return nil
}

func (p *casStorageFactory) Storage(name istorage.SafeName) (istorage.IStorage, error) {
	session, err := p.newCluster("").CreateSession()
	if err != nil {
		return nil, fmt.Errorf("can't connect to cluster: %w", err)
	}
	exists, err := p.keyspaceExists(session, name)
	session.Close()
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, istorage.ErrStorageDoesNotExist
	}

	keyspaceSession, err := p.newCluster(name.String()).CreateSession()
	if err != nil {
		return nil, fmt.Errorf("can't connect to keyspace %s: %w", name.String(), err)
	}
	return &storageType{session: keyspaceSession}, nil
}

// implementation for istorage.IStorage
type storageType struct {
	session *gocql.Session
}

func (s *storageType) Put(pKey []byte, cCols []byte, value []byte) (err error) {
	return s.session.Query("INSERT INTO values (p_key, c_col, value) VALUES (?,?,?)", pKey, safeCcols(cCols), value).
		Exec()
}

func (s *storageType) PutBatch(items []istorage.BatchItem) (err error) {
	batch := s.session.NewBatch(gocql.LoggedBatch)
	for _, item := range items {
		batch.Query("INSERT INTO values (p_key, c_col, value) VALUES (?,?,?)", item.PKey, safeCcols(item.CCols), item.Value)
	}
	return s.session.ExecuteBatch(batch)
}

func (s *storageType) Get(pKey []byte, cCols []byte, data *[]byte) (ok bool, err error) {
	*data = (*data)[0:0]
	err = s.session.Query("SELECT value FROM values WHERE p_key = ? AND c_col = ?", pKey, safeCcols(cCols)).
		Scan(data)
	if errors.Is(err, gocql.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *storageType) GetBatch(pKey []byte, items []istorage.GetBatchItem) (err error) {
	ccolsToIdx := make(map[string][]int, len(items))
	ccols := make([][]byte, 0, len(items))
	for i := range items {
		items[i].Ok = false
		*items[i].Data = (*items[i].Data)[0:0]
		cc := safeCcols(items[i].CCols)
		ccolsToIdx[string(cc)] = append(ccolsToIdx[string(cc)], i)
		ccols = append(ccols, cc)
	}

	iter := s.session.Query("SELECT c_col, value FROM values WHERE p_key = ? AND c_col IN ?", pKey, ccols).Iter()
	defer func() {
		if closeErr := iter.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	var (
		cc    []byte
		value []byte
	)
	for iter.Scan(&cc, &value) {
		for _, i := range ccolsToIdx[string(cc)] {
			items[i].Ok = true
			*items[i].Data = append((*items[i].Data)[0:0], value...)
		}
		cc = nil
		value = nil
	}
	return err
}

func (s *storageType) Read(ctx context.Context, pKey []byte, startCCols, finishCCols []byte, cb istorage.ReadCallback) (err error) {
	if (len(startCCols) > 0) && (len(finishCCols) > 0) && (bytes.Compare(startCCols, finishCCols) > 0) {
		return nil // absurd range
	}

	q := "SELECT c_col, value FROM values WHERE p_key = ?"
	args := []interface{}{pKey}
	if len(startCCols) > 0 {
		q += " AND c_col >= ?"
		args = append(args, startCCols)
	}
	if len(finishCCols) > 0 {
		q += " AND c_col <= ?"
		args = append(args, finishCCols)
	}

	iter := s.session.Query(q, args...).WithContext(ctx).Iter()
	var (
		cc    []byte
		value []byte
	)
	for iter.Scan(&cc, &value) {
		if ctx.Err() != nil {
			break
		}
		if cb != nil {
			if err := cb(unsafeCcols(cc), value); err != nil {
				_ = iter.Close()
				return err
			}
		}
		cc = nil
		value = nil
	}
	err = iter.Close()
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func (s *storageType) ReadPKeys(ctx context.Context, pKeyPrefix []byte, cCols []byte, cb istorage.PKeysCallback) (err error) {
	// no cross-partition prefix queries in Cassandra: filter by the attribute
	// server-side, by the prefix client-side
	iter := s.session.Query("SELECT p_key, value FROM values WHERE c_col = ? ALLOW FILTERING", safeCcols(cCols)).
		WithContext(ctx).Iter()
	var (
		pKey  []byte
		value []byte
	)
	for iter.Scan(&pKey, &value) {
		if ctx.Err() != nil {
			break
		}
		if bytes.HasPrefix(pKey, pKeyPrefix) {
			if err := cb(pKey, value); err != nil {
				_ = iter.Close()
				return err
			}
		}
		pKey = nil
		value = nil
	}
	err = iter.Close()
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func (s *storageType) DeleteRow(pKey []byte) (err error) {
	return s.session.Query("DELETE FROM values WHERE p_key = ?", pKey).Exec()
}

// Cassandra treats an empty blob in a prepared statement as null: keep empty
// cCols as a single zero byte, like the bbolt driver does with its nullKey
func safeCcols(value []byte) []byte {
	if len(value) == 0 {
		return nullCcols
	}
	return value
}

func unsafeCcols(value []byte) []byte {
	if len(value) == 1 && value[0] == 0 {
		return nil
	}
	return value
}

var nullCcols = []byte{0}
