/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package cas

import "time"

const (
	SimpleWithReplication = "{ 'class' : 'SimpleStrategy', 'replication_factor' : 1 }"
	ConnectionTimeout     = 30 * time.Second
)
