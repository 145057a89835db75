/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package imtcoll

import (
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeCodec(t *testing.T) {
	require := require.New(t)

	src := Envelope{ValueType: "Order", Payload: []byte("payload")}
	data, err := src.MarshalBinary()
	require.NoError(err)
	require.Equal(codec_RawDynoBuffer, data[0])

	dst := Envelope{}
	require.NoError(dst.UnmarshalBinary(data))
	require.Equal(src, dst)
}

func TestEnvelopeCodec_Empty(t *testing.T) {
	require := require.New(t)

	src := Envelope{}
	data, err := src.MarshalBinary()
	require.NoError(err)

	dst := Envelope{ValueType: "stale", Payload: []byte("stale")}
	require.NoError(dst.UnmarshalBinary(data))
	require.Equal(src, dst)
}

func TestEnvelopeCodec_Fuzz(t *testing.T) {
	require := require.New(t)
	fuzzer := fuzz.New()

	for i := 0; i < 100; i++ {
		src := Envelope{}
		fuzzer.Fuzz(&src)

		data, err := src.MarshalBinary()
		require.NoError(err)

		dst := Envelope{}
		require.NoError(dst.UnmarshalBinary(data))
		require.Equal(src.ValueType, dst.ValueType)
		if len(src.Payload) == 0 {
			require.Empty(dst.Payload)
		} else {
			require.Equal(src.Payload, dst.Payload)
		}
	}
}

func TestEnvelopeCodec_Errors(t *testing.T) {
	require := require.New(t)

	env := Envelope{}
	require.ErrorIs(env.UnmarshalBinary(nil), ErrCorruptedData)
	require.ErrorIs(env.UnmarshalBinary([]byte{}), ErrCorruptedData)
	require.ErrorIs(env.UnmarshalBinary([]byte{0xff, 0x01}), ErrUnknownCodec)
}
