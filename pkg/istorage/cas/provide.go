/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package cas

import (
	"errors"

	"github.com/voedger/mtcoll/pkg/istorage"
)

func Provide(casPar CassandraParamsType) (asf istorage.IStorageFactory, err error) {
	if len(casPar.KeyspaceWithReplication) == 0 {
		return nil, errors.New("casPar.KeyspaceWithReplication can not be empty")
	}
	return newCasStorageFactory(casPar), nil
}
