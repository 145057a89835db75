/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package pebble

import "bytes"

// Pebble holds one flat keyspace, rows are encoded as
//
//	esc(pKey) ‖ 0x00 0x00 ‖ cCols
//
// where esc replaces 0x00 with 0x00 0x01. The escaping keeps the byte order
// of encoded pKeys consistent with the raw pKey order, so a prefix of a pKey
// is always a byte prefix of the encoded form (needed by ReadPKeys).
var rowSeparator = []byte{0x00, 0x00}

func escapePKey(pKey []byte) []byte {
	res := make([]byte, 0, len(pKey)+2)
	for _, b := range pKey {
		if b == 0x00 {
			res = append(res, 0x00, 0x01)
			continue
		}
		res = append(res, b)
	}
	return res
}

func unescapePKey(escaped []byte) []byte {
	res := make([]byte, 0, len(escaped))
	for i := 0; i < len(escaped); i++ {
		if escaped[i] == 0x00 && i+1 < len(escaped) && escaped[i+1] == 0x01 {
			res = append(res, 0x00)
			i++
			continue
		}
		res = append(res, escaped[i])
	}
	return res
}

// rowPrefix returns the encoded prefix covering all cCols of one row
func rowPrefix(pKey []byte) []byte {
	return append(escapePKey(pKey), rowSeparator...)
}

func encodeKey(pKey []byte, cCols []byte) []byte {
	return append(rowPrefix(pKey), cCols...)
}

// splitKey splits an encoded key back into (pKey, cCols)
func splitKey(key []byte) (pKey, cCols []byte, ok bool) {
	idx := bytes.Index(key, rowSeparator)
	if idx < 0 {
		return nil, nil, false
	}
	return unescapePKey(key[:idx]), key[idx+len(rowSeparator):], true
}

// keyUpperBound returns the smallest key strictly greater than every key with
// the given prefix; nil means no upper bound
func keyUpperBound(prefix []byte) []byte {
	upper := make([]byte, len(prefix))
	copy(upper, prefix)
	for i := len(upper) - 1; i >= 0; i-- {
		if upper[i] != 0xff {
			upper[i]++
			return upper[:i+1]
		}
	}
	return nil // prefix is all 0xff
}
