// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua_test

import (
	"bytes"
	"testing"

	"github.com/awcullen/uacodec/ua"
	"gotest.tools/assert"
)

func diagnosticChain(depth int) *ua.DiagnosticInfo {
	var d *ua.DiagnosticInfo
	for i := depth; i > 0; i-- {
		d = &ua.DiagnosticInfo{SymbolicID: int32Ptr(int32(i)), InnerDiagnosticInfo: d}
	}
	return d
}

func TestRecursionDepth(t *testing.T) {
	limited := ua.NewEncodingContext(ua.WithLimits(ua.EncodingLimits{MaxRecursionDepth: 4}))
	unlimited := ua.NewEncodingContext(ua.WithLimits(ua.EncodingLimits{}))
	for _, format := range allFormats {
		// within the limit.
		buf := &bytes.Buffer{}
		enc, err := ua.NewEncoder(buf, limited, format)
		if err != nil {
			t.Fatal(err)
		}
		assert.NilError(t, enc.WriteDiagnosticInfo("DiagnosticInfo", diagnosticChain(4)))
		dec, err := ua.NewDecoder(buf, limited, format)
		if err != nil {
			t.Fatal(err)
		}
		var out *ua.DiagnosticInfo
		assert.NilError(t, dec.ReadDiagnosticInfo("DiagnosticInfo", &out))
		assert.DeepEqual(t, out, diagnosticChain(4))

		// one level too deep.
		enc, err = ua.NewEncoder(&bytes.Buffer{}, limited, format)
		if err != nil {
			t.Fatal(err)
		}
		err = enc.WriteDiagnosticInfo("DiagnosticInfo", diagnosticChain(5))
		assert.Equal(t, ua.StatusCodeOf(err), ua.BadEncodingLimitsExceeded, format.String())

		buf = &bytes.Buffer{}
		enc, err = ua.NewEncoder(buf, unlimited, format)
		if err != nil {
			t.Fatal(err)
		}
		assert.NilError(t, enc.WriteDiagnosticInfo("DiagnosticInfo", diagnosticChain(5)))
		dec, err = ua.NewDecoder(buf, limited, format)
		if err != nil {
			t.Fatal(err)
		}
		err = dec.ReadDiagnosticInfo("DiagnosticInfo", &out)
		assert.Equal(t, ua.StatusCodeOf(err), ua.BadEncodingLimitsExceeded, format.String())
	}
}

func TestRecursionDepthBinaryStream(t *testing.T) {
	// mask 0x40 repeated: each DiagnosticInfo holds only an inner one.
	b := bytes.Repeat([]byte{0x40}, 200)
	b = append(b, 0x00)
	dec := ua.NewBinaryDecoder(bytes.NewReader(b), ua.NewEncodingContext())
	var out *ua.DiagnosticInfo
	err := dec.ReadDiagnosticInfo("", &out)
	assert.Equal(t, ua.StatusCodeOf(err), ua.BadEncodingLimitsExceeded)
}

func TestRecursionDepthZeroUsesDefault(t *testing.T) {
	b := bytes.Repeat([]byte{0x40}, 200)
	b = append(b, 0x00)
	ec := ua.NewEncodingContext(ua.WithLimits(ua.EncodingLimits{}))
	dec := ua.NewBinaryDecoder(bytes.NewReader(b), ec)
	var out *ua.DiagnosticInfo
	err := dec.ReadDiagnosticInfo("", &out)
	assert.Equal(t, ua.StatusCodeOf(err), ua.BadEncodingLimitsExceeded)

	err = ua.NewBinaryEncoder(&bytes.Buffer{}, ec).WriteDiagnosticInfo("", diagnosticChain(200))
	assert.Equal(t, ua.StatusCodeOf(err), ua.BadEncodingLimitsExceeded)
}

func TestBinaryDecoderLimits(t *testing.T) {
	ec := ua.NewEncodingContext(ua.WithLimits(ua.EncodingLimits{MaxStringLength: 3, MaxByteStringLength: 2, MaxArrayLength: 2}))
	cases := []struct {
		name string
		in   []byte
		read func(ua.Decoder) error
		want ua.StatusCode
	}{
		{
			"string",
			[]byte{0x04, 0x00, 0x00, 0x00, 0x61, 0x62, 0x63, 0x64},
			func(dec ua.Decoder) error { var v string; return dec.ReadString("", &v) },
			ua.BadEncodingLimitsExceeded,
		},
		{
			"bytestring",
			[]byte{0x03, 0x00, 0x00, 0x00, 0x01, 0x02, 0x03},
			func(dec ua.Decoder) error { var v ua.ByteString; return dec.ReadByteString("", &v) },
			ua.BadEncodingLimitsExceeded,
		},
		{
			"array",
			[]byte{0x03, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00, 0x03, 0x00, 0x00, 0x00},
			func(dec ua.Decoder) error { var v []int32; return ua.ReadArray(dec, "", &v, ua.Decoder.ReadInt32) },
			ua.BadEncodingLimitsExceeded,
		},
		{
			"string beyond the input",
			[]byte{0x02, 0x00, 0x00, 0x00, 0x61},
			func(dec ua.Decoder) error { var v string; return dec.ReadString("", &v) },
			ua.BadDecodingError,
		},
		{
			"truncated int32",
			[]byte{0x01, 0x00},
			func(dec ua.Decoder) error { var v int32; return dec.ReadInt32("", &v) },
			ua.BadDecodingError,
		},
	}
	for _, c := range cases {
		dec := ua.NewBinaryDecoder(bytes.NewReader(c.in), ec)
		err := c.read(dec)
		assert.Equal(t, ua.StatusCodeOf(err), c.want, c.name)
	}
}

func TestJSONDecoderLimits(t *testing.T) {
	ec := ua.NewEncodingContext(ua.WithLimits(ua.EncodingLimits{MaxStringLength: 3, MaxArrayLength: 2}))
	dec, err := ua.NewJSONDecoder(bytes.NewBufferString(`{"Name":"abcd"}`), ec)
	if err != nil {
		t.Fatal(err)
	}
	_, err = dec.ReadStruct("", ua.ArgumentCodec)
	assert.Equal(t, ua.StatusCodeOf(err), ua.BadEncodingLimitsExceeded)
}
