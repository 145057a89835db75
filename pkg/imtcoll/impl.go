/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package imtcoll

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/voedger/mtcoll/pkg/isequence"
	"github.com/voedger/mtcoll/pkg/istorage"
)

type implIMultiTypeCollection struct {
	name    string
	seqs    isequence.ISequences
	storage istorage.IStorage
}

// Add is the package-level form of IMultiTypeCollection.Add for callers that
// do not hold a collection instance
func Add(seqs isequence.ISequences, storage istorage.IStorage, collection string, value IValue, opts ...AddOption) (isequence.Key, error) {
	if value == nil {
		return isequence.Key{}, ErrNilValue
	}
	if err := validateCollectionName(collection); err != nil {
		return isequence.Key{}, err
	}

	options := addOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	env, err := wrap(value)
	if err != nil {
		return isequence.Key{}, err
	}
	typeName := env.ValueType
	if typeName == "" {
		typeName = envelopeTypeName
	}

	data, err := env.MarshalBinary()
	if err != nil {
		return isequence.Key{}, err
	}

	ts, err := newTypeSequence(collection, typeName, seqs)
	if err != nil {
		// notest: typeName is never empty here
		return isequence.Key{}, err
	}
	key, err := ts.append(data, options.seqOpts...)
	if err != nil {
		return isequence.Key{}, err
	}

	// the type marker goes after the entry: a lost marker leaves the entry
	// invisible to discovery but never the other way around
	markerCCols := []byte(typeMarkerPrefix + typeName)
	if options.batch != nil {
		options.batch.Put([]byte(collection), markerCCols, typeMarkerValue)
		return key, nil
	}
	if err := storage.Put([]byte(collection), markerCCols, typeMarkerValue); err != nil {
		return isequence.Key{}, err
	}
	return key, nil
}

// wrap puts a foreign value into an Envelope, an Envelope passes through as is
func wrap(value IValue) (*Envelope, error) {
	if env, ok := value.(*Envelope); ok {
		return env, nil
	}
	payload, err := value.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("cannot marshal value of type %q: %w", value.TypeName(), err)
	}
	return &Envelope{ValueType: value.TypeName(), Payload: payload}, nil
}

func (c *implIMultiTypeCollection) Name() string {
	return c.name
}

func (c *implIMultiTypeCollection) Add(value IValue, opts ...AddOption) (isequence.Key, error) {
	return Add(c.seqs, c.storage, c.name, value, opts...)
}

func (c *implIMultiTypeCollection) ListStoredTypes(ctx context.Context) (types []string, err error) {
	prefix := []byte(typeMarkerPrefix)
	err = c.storage.Read(ctx, []byte(c.name), nil, nil, func(cCols, value []byte) error {
		if bytes.HasPrefix(cCols, prefix) {
			types = append(types, string(cCols[len(prefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return types, nil
}

func (c *implIMultiTypeCollection) ScanByType(ctx context.Context, typeName string, after *isequence.Key, limit int, cb ScanCallback) error {
	ts, err := newTypeSequence(c.name, typeName, c.seqs)
	if err != nil {
		return err
	}
	return ts.scan(ctx, after, limit, func(key isequence.Key, value []byte) error {
		env := &Envelope{}
		if err := env.UnmarshalBinary(value); err != nil {
			return fmt.Errorf("collection %q, type %q, entry (%d, %d): %w", c.name, typeName, key.Timestamp, key.Suffix, err)
		}
		return cb(key, env)
	})
}

func (c *implIMultiTypeCollection) LengthByType(ctx context.Context, typeName string) (int, error) {
	ts, err := newTypeSequence(c.name, typeName, c.seqs)
	if err != nil {
		return 0, err
	}
	return ts.length(ctx)
}

func (c *implIMultiTypeCollection) IterateAll(ctx context.Context, cb ScanCallback) error {
	types, err := c.ListStoredTypes(ctx)
	if err != nil {
		return err
	}
	for _, typeName := range types {
		if err := c.ScanByType(ctx, typeName, nil, 0, cb); err != nil {
			return err
		}
	}
	return nil
}

func (c *implIMultiTypeCollection) CountAll(ctx context.Context) (int, error) {
	types, err := c.ListStoredTypes(ctx)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, typeName := range types {
		length, err := c.LengthByType(ctx, typeName)
		if err != nil {
			return 0, err
		}
		total += length
	}
	return total, nil
}

func (c *implIMultiTypeCollection) OnDelete(ctx context.Context, pool IDeletionPool) error {
	// sub-sequence rows carry the sequence marker, the type markers on the
	// collection's own row are not consulted: a sub-sequence whose type
	// marker write was lost is still found
	prefix := []byte(c.name + "/")
	err := c.storage.ReadPKeys(ctx, prefix, isequence.MarkerCCols(), func(pKey, value []byte) error {
		pool.MarkForDeletion(pKey)
		return nil
	})
	if err != nil {
		return err
	}
	pool.MarkForDeletion([]byte(c.name))
	return nil
}

func validateCollectionName(collection string) error {
	if collection == "" || strings.Contains(collection, "/") {
		return fmt.Errorf("%q: %w", collection, ErrInvalidCollectionName)
	}
	return nil
}
