/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package bbolt

type ParamsType struct {
	// DBDir is the directory holding one .db file per keyspace
	DBDir string
}
