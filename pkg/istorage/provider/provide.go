/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package provider

import (
	"github.com/voedger/mtcoll/pkg/istorage"
)

// keyspaceNameSuffix is used in tests only: TCK runs of different packages may
// share one Cassandra cluster, a unique suffix keeps their keyspaces apart
func Provide(asf istorage.IStorageFactory, keyspaceNameSuffix ...string) istorage.IStorageProvider {
	res := &implIStorageProvider{
		asf:   asf,
		cache: map[string]istorage.IStorage{},
	}
	if len(keyspaceNameSuffix) > 0 {
		res.suffix = keyspaceNameSuffix[0]
	}
	return res
}
