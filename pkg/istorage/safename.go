/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package istorage

import (
	"fmt"
	"strings"
)

// Keyspace name sanitized to the lowest common denominator of the supported
// drivers: Cassandra keyspace names, bbolt file names, pebble directory names.
type SafeName struct {
	name string
}

const MaxSafeNameLength = 48

// NewSafeName lowercases the given keyspace name and validates it:
// [a-z0-9_] only, starts with a letter, up to MaxSafeNameLength runes.
// Returns ErrInvalidKeyspaceName otherwise.
func NewSafeName(keyspace string) (SafeName, error) {
	name := strings.ToLower(keyspace)
	if len(name) == 0 || len(name) > MaxSafeNameLength {
		return SafeName{}, fmt.Errorf("%w: %q", ErrInvalidKeyspaceName, keyspace)
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9' && i > 0:
		case c == '_' && i > 0:
		default:
			return SafeName{}, fmt.Errorf("%w: %q", ErrInvalidKeyspaceName, keyspace)
		}
	}
	return SafeName{name: name}, nil
}

func (sn SafeName) String() string {
	return sn.name
}
