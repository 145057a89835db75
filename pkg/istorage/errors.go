/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package istorage

import "errors"

var (
	ErrStorageDoesNotExist  = errors.New("storage does not exist")
	ErrStorageAlreadyExists = errors.New("storage already exists")
	ErrInvalidKeyspaceName  = errors.New("invalid keyspace name")
)
