/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package provider

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voedger/mtcoll/pkg/istorage"
	"github.com/voedger/mtcoll/pkg/istorage/mem"
)

func TestBasicUsage(t *testing.T) {
	require := require.New(t)

	p := Provide(mem.Provide())

	s1, err := p.Storage("ks1")
	require.NoError(err)
	require.NotNil(s1)

	// same keyspace -> same storage
	s2, err := p.Storage("ks1")
	require.NoError(err)
	require.Same(s1, s2)

	// different keyspace -> different storage
	s3, err := p.Storage("ks2")
	require.NoError(err)
	require.NotSame(s1, s3)
}

func TestInvalidKeyspaceName(t *testing.T) {
	require := require.New(t)

	p := Provide(mem.Provide())
	cases := []string{"", "1abc", "with-dash", "with space", "прописные"}
	for _, name := range cases {
		s, err := p.Storage(name)
		require.ErrorIs(err, istorage.ErrInvalidKeyspaceName, name)
		require.Nil(s)
	}
}

func TestStop(t *testing.T) {
	require := require.New(t)

	p := Provide(mem.Provide())
	_, err := p.Storage("ks1")
	require.NoError(err)

	p.Stop()

	s, err := p.Storage("ks1")
	require.ErrorIs(err, ErrStoppingState)
	require.Nil(s)
}
