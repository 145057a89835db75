/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package istoragecache

import (
	"github.com/voedger/mtcoll/pkg/imetrics"
	"github.com/voedger/mtcoll/pkg/istorage"
)

// Provide s.e.
func Provide(maxBytes int, storageProvider istorage.IStorageProvider, metrics imetrics.IMetrics) istorage.IStorageProvider {
	return &implCachingStorageProvider{
		maxBytes:        maxBytes,
		storageProvider: storageProvider,
		metrics:         metrics,
	}
}
