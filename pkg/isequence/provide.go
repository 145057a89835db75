/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package isequence

import (
	"math/rand"

	"github.com/voedger/mtcoll/pkg/coreutils"
	"github.com/voedger/mtcoll/pkg/istorage"
)

type Option func(*implISequences)

// WithSuffixSource replaces the random suffix source, tests use it for
// deterministic keys
func WithSuffixSource(newSuffix func() uint32) Option {
	return func(s *implISequences) {
		s.newSuffix = newSuffix
	}
}

func Provide(storage istorage.IStorage, iTime coreutils.ITime, opts ...Option) ISequences {
	res := &implISequences{
		storage:   storage,
		iTime:     iTime,
		newSuffix: func() uint32 { return rand.Uint32() & MaxSuffix },
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}
