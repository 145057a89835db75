/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package bbolt

import "errors"

var ErrDataBucketNotFound = errors.New("data bucket not found")
