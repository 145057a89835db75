/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package bbolt

import (
	"github.com/voedger/mtcoll/pkg/istorage"
)

func Provide(params ParamsType) istorage.IStorageFactory {
	return &storageFactory{
		bboltParams: params,
	}
}
