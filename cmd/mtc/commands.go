/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/voedger/mtcoll/pkg/coreutils"
	"github.com/voedger/mtcoll/pkg/imtcoll"
	"github.com/voedger/mtcoll/pkg/isequence"
	"github.com/voedger/mtcoll/pkg/istorage/bbolt"
	"github.com/voedger/mtcoll/pkg/istorage/provider"
)

type storeParams struct {
	dbDir    string
	keyspace string
}

func addStoreFlags(cmd *cobra.Command, params *storeParams) {
	cmd.Flags().StringVar(&params.dbDir, "db-dir", ".", "Directory with the bbolt keyspace files")
	cmd.Flags().StringVar(&params.keyspace, "keyspace", "mtcoll", "Keyspace name")
}

func openCollection(params storeParams, collection string) (imtcoll.IMultiTypeCollection, error) {
	storageProvider := provider.Provide(bbolt.Provide(bbolt.ParamsType{DBDir: params.dbDir}))
	storage, err := storageProvider.Storage(params.keyspace)
	if err != nil {
		return nil, err
	}
	seqs := isequence.Provide(storage, coreutils.NewITime())
	return imtcoll.Provide(collection, seqs, storage)
}

func newTypesCmd() *cobra.Command {
	params := storeParams{}
	cmd := &cobra.Command{
		Use:   "types <collection>",
		Short: "List the stored types of a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coll, err := openCollection(params, args[0])
			if err != nil {
				return err
			}
			types, err := coll.ListStoredTypes(cmd.Context())
			if err != nil {
				return err
			}
			sort.Strings(types)
			for _, typeName := range types {
				fmt.Fprintln(cmd.OutOrStdout(), typeName)
			}
			return nil
		},
	}
	addStoreFlags(cmd, &params)
	return cmd
}

func newCountCmd() *cobra.Command {
	params := storeParams{}
	typeName := ""
	cmd := &cobra.Command{
		Use:   "count <collection>",
		Short: "Count the entries of a collection or of one type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coll, err := openCollection(params, args[0])
			if err != nil {
				return err
			}
			count := 0
			if typeName != "" {
				count, err = coll.LengthByType(cmd.Context(), typeName)
			} else {
				count, err = coll.CountAll(cmd.Context())
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), count)
			return nil
		},
	}
	addStoreFlags(cmd, &params)
	cmd.Flags().StringVar(&typeName, "type", "", "Count entries of this type only")
	return cmd
}

func newScanCmd() *cobra.Command {
	params := storeParams{}
	typeName := ""
	limit := 0
	cmd := &cobra.Command{
		Use:   "scan <collection>",
		Short: "Print the entries of one type in key order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coll, err := openCollection(params, args[0])
			if err != nil {
				return err
			}
			return coll.ScanByType(cmd.Context(), typeName, nil, limit, func(key isequence.Key, env *imtcoll.Envelope) error {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%d\t%s\t%x\n", key.Timestamp, key.Suffix, env.ValueType, env.Payload)
				return nil
			})
		},
	}
	addStoreFlags(cmd, &params)
	cmd.Flags().StringVar(&typeName, "type", "", "Type to scan")
	cmd.Flags().IntVar(&limit, "limit", 0, "Stop after this many entries, 0 means no limit")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}
