/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package idelpool

import (
	"context"
	"errors"
	"sync"

	"github.com/untillpro/goutils/logger"

	"github.com/voedger/mtcoll/pkg/istorage"
)

type implIDeletionPool struct {
	lock sync.Mutex
	rows map[string]struct{}
}

func (p *implIDeletionPool) MarkForDeletion(pKey []byte) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.rows[string(pKey)] = struct{}{}
}

func (p *implIDeletionPool) Len() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return len(p.rows)
}

func (p *implIDeletionPool) Flush(ctx context.Context, storage istorage.IStorage) error {
	p.lock.Lock()
	rows := make([]string, 0, len(p.rows))
	for row := range p.rows {
		rows = append(rows, row)
	}
	p.lock.Unlock()

	errs := []error{}
	for _, row := range rows {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		if err := storage.DeleteRow([]byte(row)); err != nil {
			logger.Error("failed to erase row", row, ":", err)
			errs = append(errs, err)
			continue
		}
		p.lock.Lock()
		delete(p.rows, row)
		p.lock.Unlock()
	}
	return errors.Join(errs...)
}
