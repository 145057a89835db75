/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package idelpool

func Provide() IDeletionPool {
	return &implIDeletionPool{rows: map[string]struct{}{}}
}
