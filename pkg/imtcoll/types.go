/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package imtcoll

import (
	"github.com/voedger/mtcoll/pkg/isequence"
	"github.com/voedger/mtcoll/pkg/istorage"
)

// Envelope carries one stored value together with its routing type
type Envelope struct {
	ValueType string
	Payload   []byte
}

func (e *Envelope) TypeName() string {
	return e.ValueType
}

type addOptions struct {
	batch   *istorage.Batch
	seqOpts []isequence.AppendOption
}

type AddOption func(*addOptions)

// WithTimestamp overrides the clock-provided ordering timestamp (microseconds)
func WithTimestamp(timestamp int64) AddOption {
	return func(o *addOptions) {
		o.seqOpts = append(o.seqOpts, isequence.WithTimestamp(timestamp))
	}
}

// WithSuffix overrides the randomly drawn ordering suffix
func WithSuffix(suffix uint32) AddOption {
	return func(o *addOptions) {
		o.seqOpts = append(o.seqOpts, isequence.WithSuffix(suffix))
	}
}

// WithBatch stages the entry, the sequence marker and the type marker into
// the caller's batch. Nothing hits the storage until the caller applies it.
func WithBatch(batch *istorage.Batch) AddOption {
	return func(o *addOptions) {
		o.batch = batch
		o.seqOpts = append(o.seqOpts, isequence.WithBatch(batch))
	}
}
