/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package isequence

import "errors"

var (
	ErrEmptySequenceKey = errors.New("empty sequence key")
	ErrSuffixOverflow   = errors.New("suffix exceeds 24 bits")
)
