/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package bbolt

const dataBucketName = "dataBucket"

var nullKey = []byte{0}
