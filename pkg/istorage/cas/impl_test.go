/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package cas

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voedger/mtcoll/pkg/istorage"
)

// requires a running Cassandra, e.g.
//
//	docker run -p 9042:9042 cassandra:4
//	MTCOLL_CAS_HOSTS=127.0.0.1 go test ./pkg/istorage/cas/...
func TestTCK(t *testing.T) {
	hosts, ok := os.LookupEnv("MTCOLL_CAS_HOSTS")
	if !ok {
		t.Skip("MTCOLL_CAS_HOSTS is not set, skipping Cassandra TCK")
	}

	factory, err := Provide(CassandraParamsType{
		Hosts:                   hosts,
		KeyspaceWithReplication: SimpleWithReplication,
	})
	require.NoError(t, err)

	istorage.TechnologyCompatibilityKit(t, factory)
}

func TestProvide_KeyspaceWithReplicationIsRequired(t *testing.T) {
	factory, err := Provide(CassandraParamsType{Hosts: "127.0.0.1"})
	require.Error(t, err)
	require.Nil(t, factory)
}
