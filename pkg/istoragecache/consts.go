/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package istoragecache

const (
	getTotal            = "mtcoll_istoragecache_get_total"
	getCachedTotal      = "mtcoll_istoragecache_get_cached_total"
	getBatchTotal       = "mtcoll_istoragecache_getbatch_total"
	getBatchCachedTotal = "mtcoll_istoragecache_getbatch_cached_total"
	putTotal            = "mtcoll_istoragecache_put_total"
	putBatchTotal       = "mtcoll_istoragecache_putbatch_total"
	putBatchItemsTotal  = "mtcoll_istoragecache_putbatch_items_total"
	readTotal           = "mtcoll_istoragecache_read_total"
	readPKeysTotal      = "mtcoll_istoragecache_readpkeys_total"
	deleteRowTotal      = "mtcoll_istoragecache_deleterow_total"
)
