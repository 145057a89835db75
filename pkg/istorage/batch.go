/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package istorage

// Batch is a caller-supplied write-batching handle: writes are staged with
// Put and reach the storage only on Apply, all in one PutBatch.
// Not safe for concurrent use.
type Batch struct {
	items []BatchItem
}

func NewBatch() *Batch {
	return &Batch{}
}

// Put stages a point write. Byte slices are not copied, the caller must not
// modify them until Apply.
func (b *Batch) Put(pKey []byte, cCols []byte, value []byte) {
	b.items = append(b.items, BatchItem{PKey: pKey, CCols: cCols, Value: value})
}

func (b *Batch) Len() int {
	return len(b.items)
}

// Apply commits the staged writes and clears the batch on success.
func (b *Batch) Apply(storage IStorage) error {
	if len(b.items) == 0 {
		return nil
	}
	if err := storage.PutBatch(b.items); err != nil {
		return err
	}
	b.items = b.items[:0]
	return nil
}
