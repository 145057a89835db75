/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package pebble

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voedger/mtcoll/pkg/istorage"
)

func TestTCK(t *testing.T) {
	factory := Provide(ParamsType{DataDir: t.TempDir()})
	istorage.TechnologyCompatibilityKit(t, factory)
}

func TestInitStorage(t *testing.T) {
	require := require.New(t)
	factory := Provide(ParamsType{DataDir: t.TempDir()})
	name := istorage.NewTestSafeName(t)

	_, err := factory.Storage(name)
	require.ErrorIs(err, istorage.ErrStorageDoesNotExist)

	require.NoError(factory.Init(name))
	require.ErrorIs(factory.Init(name), istorage.ErrStorageAlreadyExists)

	storage, err := factory.Storage(name)
	require.NoError(err)
	require.NotNil(storage)
}
