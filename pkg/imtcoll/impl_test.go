/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package imtcoll

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/voedger/mtcoll/pkg/coreutils"
	"github.com/voedger/mtcoll/pkg/isequence"
	"github.com/voedger/mtcoll/pkg/istorage"
	"github.com/voedger/mtcoll/pkg/istorage/mem"
)

type order struct {
	id string
}

func (o order) TypeName() string               { return "Order" }
func (o order) MarshalBinary() ([]byte, error) { return []byte(o.id), nil }

type payment struct {
	id string
}

func (p payment) TypeName() string               { return "Payment" }
func (p payment) MarshalBinary() ([]byte, error) { return []byte(p.id), nil }

func TestBasicUsage(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	coll, _, _ := newCollection(t, "flows")

	_, err := coll.Add(order{id: "o1"})
	require.NoError(err)
	coreutils.MockTime.Add(time.Microsecond)
	_, err = coll.Add(order{id: "o2"})
	require.NoError(err)
	coreutils.MockTime.Add(time.Microsecond)
	_, err = coll.Add(payment{id: "p1"})
	require.NoError(err)

	types, err := coll.ListStoredTypes(ctx)
	require.NoError(err)
	require.ElementsMatch([]string{"Order", "Payment"}, types)

	payloads := []string{}
	require.NoError(coll.ScanByType(ctx, "Order", nil, 0, func(key isequence.Key, env *Envelope) error {
		require.Equal("Order", env.ValueType)
		payloads = append(payloads, string(env.Payload))
		return nil
	}))
	require.Equal([]string{"o1", "o2"}, payloads)

	total, err := coll.CountAll(ctx)
	require.NoError(err)
	require.Equal(3, total)
}

// two entries of type A at timestamp 100 with suffixes 5 and 7 plus one entry
// of type B at timestamp 50
func TestOrderingScenario(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	coll, _, _ := newCollection(t, "flows")

	_, err := coll.Add(&Envelope{ValueType: "A", Payload: []byte("a2")}, WithTimestamp(100), WithSuffix(7))
	require.NoError(err)
	_, err = coll.Add(&Envelope{ValueType: "A", Payload: []byte("a1")}, WithTimestamp(100), WithSuffix(5))
	require.NoError(err)
	_, err = coll.Add(&Envelope{ValueType: "B", Payload: []byte("b1")}, WithTimestamp(50), WithSuffix(1))
	require.NoError(err)

	keys := []isequence.Key{}
	payloads := []string{}
	require.NoError(coll.ScanByType(ctx, "A", nil, 0, func(key isequence.Key, env *Envelope) error {
		keys = append(keys, key)
		payloads = append(payloads, string(env.Payload))
		return nil
	}))
	require.Equal([]isequence.Key{{Timestamp: 100, Suffix: 5}, {Timestamp: 100, Suffix: 7}}, keys)
	require.Equal([]string{"a1", "a2"}, payloads)

	types, err := coll.ListStoredTypes(ctx)
	require.NoError(err)
	require.ElementsMatch([]string{"A", "B"}, types)

	total, err := coll.CountAll(ctx)
	require.NoError(err)
	require.Equal(3, total)
}

func TestTypeIsolation(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	coll, _, _ := newCollection(t, "flows")

	_, err := coll.Add(order{id: "o1"})
	require.NoError(err)
	_, err = coll.Add(payment{id: "p1"})
	require.NoError(err)

	require.NoError(coll.ScanByType(ctx, "Order", nil, 0, func(key isequence.Key, env *Envelope) error {
		require.Equal("Order", env.ValueType)
		return nil
	}))

	length, err := coll.LengthByType(ctx, "Order")
	require.NoError(err)
	require.Equal(1, length)
}

func TestEmptyTypeRoutesToEnvelope(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	coll, _, _ := newCollection(t, "flows")

	_, err := coll.Add(&Envelope{Payload: []byte("raw")})
	require.NoError(err)

	types, err := coll.ListStoredTypes(ctx)
	require.NoError(err)
	require.Equal([]string{"Envelope"}, types)

	length, err := coll.LengthByType(ctx, "Envelope")
	require.NoError(err)
	require.Equal(1, length)
}

func TestCountConsistency(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	coll, _, _ := newCollection(t, "flows")

	for i := 0; i < 3; i++ {
		coreutils.MockTime.Add(time.Microsecond)
		_, err := coll.Add(order{id: "o"})
		require.NoError(err)
	}
	for i := 0; i < 2; i++ {
		coreutils.MockTime.Add(time.Microsecond)
		_, err := coll.Add(payment{id: "p"})
		require.NoError(err)
	}

	total, err := coll.CountAll(ctx)
	require.NoError(err)
	require.Equal(5, total)

	types, err := coll.ListStoredTypes(ctx)
	require.NoError(err)
	sum := 0
	for _, typeName := range types {
		length, err := coll.LengthByType(ctx, typeName)
		require.NoError(err)
		sum += length
	}
	require.Equal(total, sum)

	yielded := 0
	lastType := ""
	switches := 0
	require.NoError(coll.IterateAll(ctx, func(key isequence.Key, env *Envelope) error {
		yielded++
		if env.ValueType != lastType {
			lastType = env.ValueType
			switches++
		}
		return nil
	}))
	require.Equal(total, yielded)
	// no cross-type interleaving: each type shows up as one contiguous run
	require.Equal(len(types), switches)
}

func TestAdd_NilValueLeavesNoState(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	coll, _, _ := newCollection(t, "flows")

	_, err := coll.Add(nil)
	require.ErrorIs(err, ErrNilValue)

	types, err := coll.ListStoredTypes(ctx)
	require.NoError(err)
	require.Empty(types)

	total, err := coll.CountAll(ctx)
	require.NoError(err)
	require.Zero(total)
}

func TestAdd_Batch(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	coll, _, storage := newCollection(t, "flows")

	batch := istorage.NewBatch()
	key, err := coll.Add(order{id: "o1"}, WithTimestamp(100), WithSuffix(5), WithBatch(batch))
	require.NoError(err)
	require.Equal(isequence.Key{Timestamp: 100, Suffix: 5}, key)

	// invisible until the batch is applied
	total, err := coll.CountAll(ctx)
	require.NoError(err)
	require.Zero(total)

	require.NoError(batch.Apply(storage))

	types, err := coll.ListStoredTypes(ctx)
	require.NoError(err)
	require.Equal([]string{"Order"}, types)
	total, err = coll.CountAll(ctx)
	require.NoError(err)
	require.Equal(1, total)
}

func TestOnDelete(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	coll, seqs, _ := newCollection(t, "flows")

	_, err := coll.Add(order{id: "o1"})
	require.NoError(err)
	_, err = coll.Add(payment{id: "p1"})
	require.NoError(err)

	// a sub-sequence whose type marker write was lost: appended directly,
	// bypassing the collection
	_, err = seqs.Append([]byte("flows/Refund"), []byte("r1"))
	require.NoError(err)

	pool := &testPool{rows: map[string]bool{}}
	require.NoError(coll.OnDelete(ctx, pool))
	require.Equal(map[string]bool{
		"flows/Order":   true,
		"flows/Payment": true,
		"flows/Refund":  true,
		"flows":         true,
	}, pool.rows)
}

func TestOnDelete_DoesNotTouchOtherCollections(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	coll, seqs, storage := newCollection(t, "flows")

	_, err := coll.Add(order{id: "o1"})
	require.NoError(err)

	other, err := Provide("flowsarchive", seqs, storage)
	require.NoError(err)
	_, err = other.Add(order{id: "o2"})
	require.NoError(err)

	pool := &testPool{rows: map[string]bool{}}
	require.NoError(coll.OnDelete(ctx, pool))
	require.Equal(map[string]bool{
		"flows/Order": true,
		"flows":       true,
	}, pool.rows)
}

func TestErrors(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	coll, seqs, storage := newCollection(t, "flows")

	_, err := Provide("", seqs, storage)
	require.ErrorIs(err, ErrInvalidCollectionName)
	_, err = Provide("a/b", seqs, storage)
	require.ErrorIs(err, ErrInvalidCollectionName)

	err = coll.ScanByType(ctx, "", nil, 0, func(isequence.Key, *Envelope) error { return nil })
	require.ErrorIs(err, ErrEmptyTypeName)

	_, err = coll.LengthByType(ctx, "")
	require.ErrorIs(err, ErrEmptyTypeName)
}

func TestScanByType_AfterAndLimit(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	coll, _, _ := newCollection(t, "flows")

	for _, suffix := range []uint32{1, 2, 3} {
		_, err := coll.Add(order{id: "o"}, WithTimestamp(100), WithSuffix(suffix))
		require.NoError(err)
	}

	keys := []isequence.Key{}
	require.NoError(coll.ScanByType(ctx, "Order", &isequence.Key{Timestamp: 100, Suffix: 1}, 1, func(key isequence.Key, env *Envelope) error {
		keys = append(keys, key)
		return nil
	}))
	require.Equal([]isequence.Key{{Timestamp: 100, Suffix: 2}}, keys)
}

type testPool struct {
	rows map[string]bool
}

func (p *testPool) MarkForDeletion(pKey []byte) {
	p.rows[string(pKey)] = true
}

func newCollection(t *testing.T, name string) (IMultiTypeCollection, isequence.ISequences, istorage.IStorage) {
	factory := mem.Provide()
	safeName := istorage.NewTestSafeName(t)
	require.NoError(t, factory.Init(safeName))
	storage, err := factory.Storage(safeName)
	require.NoError(t, err)

	seqs := isequence.Provide(storage, coreutils.MockTime)
	coll, err := Provide(name, seqs, storage)
	require.NoError(t, err)
	return coll, seqs, storage
}
