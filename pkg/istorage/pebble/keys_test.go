/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package pebble

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyCodec(t *testing.T) {
	require := require.New(t)

	cases := []struct {
		pKey  []byte
		cCols []byte
	}{
		{[]byte("coll/typeA"), []byte{0x02, 0, 0, 0, 0, 0, 0, 0, 100, 0, 0, 0, 5}},
		{[]byte("coll"), nil},
		{[]byte{0x00}, []byte{0x00}},
		{[]byte{0x00, 0x00, 0xff}, []byte("ccols")},
		{[]byte("plain"), []byte{}},
	}

	for _, c := range cases {
		pKey, cCols, ok := splitKey(encodeKey(c.pKey, c.cCols))
		require.True(ok)
		require.Equal(c.pKey, pKey)
		require.True(bytes.Equal(c.cCols, cCols))
	}
}

func TestKeyOrderIsPrefixSafe(t *testing.T) {
	require := require.New(t)

	// a pKey prefix must stay a byte prefix after escaping
	require.True(bytes.HasPrefix(escapePKey([]byte{'a', 0x00, 'b'}), escapePKey([]byte{'a', 0x00})))

	// rows of different pKeys never interleave: the separator sorts below any
	// escaped pKey continuation
	shorter := rowPrefix([]byte("coll"))
	longer := rowPrefix([]byte("coll/typeA"))
	require.Less(string(shorter), string(longer))
	require.True(bytes.Compare(keyUpperBound(shorter), longer) < 0 || bytes.HasPrefix(longer, shorter))
}

func TestKeyUpperBound(t *testing.T) {
	require := require.New(t)

	require.Equal([]byte{0x01, 0x03}, keyUpperBound([]byte{0x01, 0x02}))
	require.Equal([]byte{0x02}, keyUpperBound([]byte{0x01, 0xff}))
	require.Nil(keyUpperBound([]byte{0xff, 0xff}))
}
