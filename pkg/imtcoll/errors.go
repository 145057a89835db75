/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package imtcoll

import "errors"

var (
	ErrNilValue              = errors.New("nil value")
	ErrInvalidCollectionName = errors.New("invalid collection name")
	ErrEmptyTypeName         = errors.New("empty type name")
	ErrUnknownCodec          = errors.New("unknown codec version")
	ErrCorruptedData         = errors.New("corrupted data")
)
