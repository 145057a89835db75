/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package pebble

import "github.com/voedger/mtcoll/pkg/istorage"

func Provide(params ParamsType) istorage.IStorageFactory {
	return &storageFactory{params: params}
}
