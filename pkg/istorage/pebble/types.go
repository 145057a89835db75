/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package pebble

import "github.com/cockroachdb/pebble"

type ParamsType struct {
	// DataDir is the root directory, each keyspace gets its own subdirectory
	DataDir string

	// Opts are passed to pebble.Open as is, nil means defaults
	Opts *pebble.Options
}

func (p ParamsType) pebbleOptions() *pebble.Options {
	if p.Opts != nil {
		return p.Opts
	}
	return &pebble.Options{}
}
