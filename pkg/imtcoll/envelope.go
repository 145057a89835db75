/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package imtcoll

import (
	"fmt"

	"github.com/untillpro/dynobuffers"
)

// wire format: one codec version byte, then the dynobuffer

const codec_RawDynoBuffer = byte(0x00)

const (
	field_ValueType = "valueType"
	field_Payload   = "payload"
)

var envelopeScheme = func() *dynobuffers.Scheme {
	scheme := dynobuffers.NewScheme()
	scheme.Name = "Envelope"
	scheme.AddField(field_ValueType, dynobuffers.FieldTypeString, false)
	scheme.AddArray(field_Payload, dynobuffers.FieldTypeByte, false)
	return scheme
}()

func (e *Envelope) MarshalBinary() (data []byte, err error) {
	b := dynobuffers.NewBuffer(envelopeScheme)
	defer b.Release()

	b.Set(field_ValueType, e.ValueType)
	if len(e.Payload) > 0 {
		b.Set(field_Payload, e.Payload)
	}
	buf, err := b.ToBytes()
	if err != nil {
		return nil, err
	}

	data = make([]byte, 0, 1+len(buf))
	data = append(data, codec_RawDynoBuffer)
	data = append(data, buf...)
	return data, nil
}

func (e *Envelope) UnmarshalBinary(data []byte) error {
	if len(data) == 0 {
		return ErrCorruptedData
	}
	if data[0] != codec_RawDynoBuffer {
		return fmt.Errorf("codec version %d: %w", data[0], ErrUnknownCodec)
	}

	b := dynobuffers.NewBuffer(envelopeScheme)
	defer b.Release()
	buf := make([]byte, len(data)-1)
	copy(buf, data[1:])
	b.Reset(buf)

	e.ValueType = ""
	if valueType, ok := b.GetString(field_ValueType); ok {
		e.ValueType = valueType
	}
	e.Payload = nil
	if payload := b.GetByteArray(field_Payload); payload != nil {
		e.Payload = append([]byte(nil), payload.Bytes()...)
	}
	return nil
}
