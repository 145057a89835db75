/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package provider

import "errors"

var ErrStoppingState = errors.New("storage is in stopping state")
