/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package coreutils

import (
	"errors"
	"io/fs"
	"os"
)

func Exists(filePath string) (exists bool, err error) {
	if _, err = os.Stat(filePath); err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	// notest
	return false, err
}
