/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package imtcoll

const (
	// typeMarkerPrefix namespaces the type marker attributes on the
	// collection's own row
	typeMarkerPrefix = "mtc:vt_"

	// envelopeTypeName is the routing fallback for values with an empty type
	envelopeTypeName = "Envelope"
)

var typeMarkerValue = []byte{0x01}
