/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package imtcoll

import (
	"github.com/voedger/mtcoll/pkg/isequence"
	"github.com/voedger/mtcoll/pkg/istorage"
)

// Provide returns the collection with the given name over the given storage.
// The name must be non-empty and must not contain "/", it doubles as the
// prefix of the sub-sequence row keys.
func Provide(name string, seqs isequence.ISequences, storage istorage.IStorage) (IMultiTypeCollection, error) {
	if err := validateCollectionName(name); err != nil {
		return nil, err
	}
	return &implIMultiTypeCollection{
		name:    name,
		seqs:    seqs,
		storage: storage,
	}, nil
}
