/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package provider

import (
	"errors"
	"sync"

	"github.com/untillpro/goutils/logger"

	"github.com/voedger/mtcoll/pkg/istorage"
)

type implIStorageProvider struct {
	asf        istorage.IStorageFactory
	cache      map[string]istorage.IStorage
	lock       sync.Mutex
	suffix     string // used in tests only, see Provide
	isStopping bool
}

func (p *implIStorageProvider) Storage(keyspace string) (storage istorage.IStorage, err error) {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.isStopping {
		return nil, ErrStoppingState
	}
	if storage, ok := p.cache[keyspace]; ok {
		return storage, nil
	}

	sn, err := istorage.NewSafeName(keyspace + p.suffix)
	if err != nil {
		return nil, err
	}

	// init-on-first-use; a keyspace created by a previous process is reused
	if err = p.asf.Init(sn); err != nil && !errors.Is(err, istorage.ErrStorageAlreadyExists) {
		return nil, err
	}
	if err == nil && logger.IsVerbose() {
		logger.Verbose("keyspace initialized:", sn.String())
	}

	if storage, err = p.asf.Storage(sn); err != nil {
		return nil, err
	}
	p.cache[keyspace] = storage
	return storage, nil
}

func (p *implIStorageProvider) Stop() {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.isStopping = true
}
