/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package mem

import (
	"github.com/voedger/mtcoll/pkg/istorage"
)

func Provide() istorage.IStorageFactory {
	return &storageFactory{keyspaces: map[string]*storageType{}}
}
