// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua_test

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/awcullen/uacodec/ua"
	"github.com/djherbis/buffer"
	"gotest.tools/assert"
)

func TestExtensionObjectBinary(t *testing.T) {
	in := ua.NewExtensionObject(ua.WriteResponse{
		ResponseHeader: ua.ResponseHeader{Timestamp: time.Date(1601, time.January, 01, 12, 0, 0, 0, time.UTC), RequestHandle: 1000085},
		Results:        []ua.StatusCode{ua.Good, ua.BadNodeIDUnknown},
	})
	want := []byte{
		0x01, 0x00, 0xa4, 0x02, // encoding id
		0x01,                   // binary body
		0x28, 0x00, 0x00, 0x00, // len
		0x00, 0xe0, 0x34, 0x95, 0x64, 0x00, 0x00, 0x00, 0x95, 0x42, 0x0f, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xff, 0xff, 0xff, 0xff, 0x00, 0x00, 0x00, // header
		0x02, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x34, 0x80, // results
		0xff, 0xff, 0xff, 0xff, // diag infos
	}
	buf := &bytes.Buffer{}
	if err := ua.EncodeExtensionObject(ua.NewEncodingContext(), ua.EncodingFormatBinary, buf, in); err != nil {
		t.Fatal(err)
	}
	assert.DeepEqual(t, buf.Bytes(), want)

	out, err := ua.DecodeExtensionObject(ua.NewEncodingContext(), ua.EncodingFormatBinary, buf)
	if err != nil {
		t.Fatal(err)
	}
	assert.DeepEqual(t, out, in)
	resp, ok := ua.StructureAs[ua.WriteResponse](out)
	assert.Assert(t, ok)
	assert.Equal(t, resp.ResponseHeader.RequestHandle, uint32(1000085))
}

func TestWriteResponseNullAndEmptyArrays(t *testing.T) {
	in := ua.WriteResponse{
		ResponseHeader:  ua.ResponseHeader{Timestamp: time.Date(1601, time.January, 01, 12, 0, 0, 0, time.UTC), RequestHandle: 1000085},
		Results:         nil,
		DiagnosticInfos: []*ua.DiagnosticInfo{},
	}
	want := []byte{
		0x00, 0xe0, 0x34, 0x95, 0x64, 0x00, 0x00, 0x00, 0x95, 0x42, 0x0f, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xff, 0xff, 0xff, 0xff, 0x00, 0x00, 0x00, // header
		0xff, 0xff, 0xff, 0xff, // results
		0x00, 0x00, 0x00, 0x00, // diag infos
	}
	ec := ua.NewEncodingContext()
	buf := &bytes.Buffer{}
	if err := ua.Encode(ec, ua.EncodingFormatBinary, buf, in); err != nil {
		t.Fatal(err)
	}
	assert.DeepEqual(t, buf.Bytes(), want)

	for _, format := range allFormats {
		buf := &bytes.Buffer{}
		if err := ua.Encode(ec, format, buf, in); err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		v, err := ua.Decode(ec, format, buf, ua.WriteResponseCodec)
		if err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		out, ok := v.(ua.WriteResponse)
		assert.Assert(t, ok, format.String())
		assert.Assert(t, out.Results == nil, format.String())
		assert.Assert(t, out.DiagnosticInfos != nil, format.String())
		assert.Equal(t, len(out.DiagnosticInfos), 0, format.String())
	}
}

func TestStructureAsPointer(t *testing.T) {
	eo := ua.NewExtensionObject(&ua.Argument{Name: "x"})
	arg, ok := ua.StructureAs[ua.Argument](eo)
	assert.Assert(t, ok)
	assert.Equal(t, arg.Name, "x")
	_, ok = ua.StructureAs[ua.WriteResponse](eo)
	assert.Assert(t, !ok)
}

func TestExtensionObjectNull(t *testing.T) {
	for _, format := range []ua.EncodingFormat{ua.EncodingFormatBinary, ua.EncodingFormatXML, ua.EncodingFormatJSON} {
		buf := &bytes.Buffer{}
		enc, err := ua.NewEncoder(buf, ua.NewEncodingContext(), format)
		if err != nil {
			t.Fatal(err)
		}
		// an array holds the null, since a json object omits it.
		if err := ua.WriteArray(enc, "ListOfExtensionObject", []ua.ExtensionObject{ua.NilExtensionObject}, ua.Encoder.WriteExtensionObject); err != nil {
			t.Fatal(err)
		}
		dec, err := ua.NewDecoder(buf, ua.NewEncodingContext(), format)
		if err != nil {
			t.Fatal(err)
		}
		var out []ua.ExtensionObject
		if err := ua.ReadArray(dec, "ListOfExtensionObject", &out, ua.Decoder.ReadExtensionObject); err != nil {
			t.Fatal(err)
		}
		assert.Equal(t, len(out), 1, format.String())
		assert.Assert(t, out[0].IsNull(), format.String())
	}
}

func TestUnknownExtensionObjectRoundTrips(t *testing.T) {
	cases := []struct {
		format ua.EncodingFormat
		doc    string
	}{
		{
			ua.EncodingFormatBinary,
			string([]byte{
				0x01, 0x01, 0x71, 0x17, // ns=1;i=6001
				0x01,                   // binary body
				0x03, 0x00, 0x00, 0x00, // len
				0xaa, 0xbb, 0xcc,
			}),
		},
		{
			ua.EncodingFormatXML,
			`<ExtensionObject xmlns="http://opcfoundation.org/UA/2008/02/Types.xsd"><TypeId><Identifier>ns=1;i=6001</Identifier></TypeId><Body><Foo><Bar>1</Bar></Foo></Body></ExtensionObject>`,
		},
		{
			ua.EncodingFormatJSON,
			`{"TypeId":{"Id":6001,"Namespace":1},"Body":{"Foo":{"Bar":1}}}`,
		},
	}
	ec := ua.NewEncodingContext(ua.WithNamespaceURIs("urn:test"))
	for _, c := range cases {
		out, err := ua.DecodeExtensionObject(ec, c.format, bytes.NewBufferString(c.doc))
		if err != nil {
			t.Fatal(err)
		}
		assert.Assert(t, out.IsEncoded(), c.format.String())
		assert.DeepEqual(t, out.EncodingID(), ua.NewExpandedNodeID(ua.NewNodeIDNumeric(1, 6001)))

		buf := &bytes.Buffer{}
		if err := ua.EncodeExtensionObject(ec, c.format, buf, out); err != nil {
			t.Fatal(err)
		}
		assert.Equal(t, buf.String(), c.doc, c.format.String())
	}
}

func TestUnknownBinaryBodyCrossesFormats(t *testing.T) {
	ec := ua.NewEncodingContext()
	in := ua.NewEncodedExtensionObject(ua.NewExpandedNodeID(ua.NewNodeIDNumeric(0, 99999)), ua.EncodingFormatBinary, ua.ByteString("\x01\x02\x03"))
	for _, format := range []ua.EncodingFormat{ua.EncodingFormatXML, ua.EncodingFormatJSON} {
		buf := &bytes.Buffer{}
		if err := ua.EncodeExtensionObject(ec, format, buf, in); err != nil {
			t.Fatal(err)
		}
		out, err := ua.DecodeExtensionObject(ec, format, buf)
		if err != nil {
			t.Fatal(err)
		}
		assert.DeepEqual(t, out, in)
	}
}

func TestExtensionObjectDecodeOnDemand(t *testing.T) {
	body := ua.ByteString("\x2a\x00\x00\x00")
	ec := ua.NewEncodingContext(ua.WithNamespaceURIs("urn:test"))
	in := ua.NewEncodedExtensionObject(ua.NewExpandedNodeID(ua.NewNodeIDNumeric(1, 5001)), ua.EncodingFormatBinary, body)

	// not registered yet, so the body is kept.
	out, err := in.Decode(ec)
	if err != nil {
		t.Fatal(err)
	}
	assert.Assert(t, out.IsEncoded())

	registry := ua.NewStandardRegistry()
	codec, err := ua.NewDynamicCodec("Counter", ua.DataTypeIDs{
		DataType: ua.NewExpandedNodeIDNumeric(0, "urn:test", 5000),
		Binary:   ua.NewExpandedNodeIDNumeric(0, "urn:test", 5001),
	}, &ua.StructureDefinition{
		Fields: []ua.StructureField{
			{Name: "Count", DataType: ua.DataTypeIDInt32, ValueRank: ua.ValueRankScalar},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := registry.Register(codec); err != nil {
		t.Fatal(err)
	}
	ec = ua.NewEncodingContext(ua.WithNamespaceURIs("urn:test"), ua.WithRegistry(registry))
	out, err = in.Decode(ec)
	if err != nil {
		t.Fatal(err)
	}
	assert.Assert(t, !out.IsEncoded())
	assert.DeepEqual(t, out.Value(), &ua.DynamicStructure{
		DataType: ua.NewExpandedNodeIDNumeric(0, "urn:test", 5000),
		Fields:   map[string]any{"Count": int32(42)},
	})

	// re-encoding the decoded value gives the original bytes.
	buf := &bytes.Buffer{}
	if err := ua.EncodeExtensionObject(ec, ua.EncodingFormatBinary, buf, out); err != nil {
		t.Fatal(err)
	}
	assert.DeepEqual(t, buf.Bytes(), []byte{0x01, 0x01, 0x89, 0x13, 0x01, 0x04, 0x00, 0x00, 0x00, 0x2a, 0x00, 0x00, 0x00})
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	registry := ua.NewStandardRegistry()
	codec, err := ua.NewDynamicCodec("Argument", ua.ArgumentCodec.IDs(), ua.ArgumentCodec.Definition())
	if err != nil {
		t.Fatal(err)
	}
	err = registry.Register(codec)
	assert.Equal(t, ua.StatusCodeOf(err), ua.BadInvalidArgument)
	// registering the same codec again is allowed.
	assert.NilError(t, registry.Register(ua.ArgumentCodec))

	c, format, ok := registry.Resolve(ua.NewExpandedNodeID(ua.ObjectIDArgumentEncodingDefaultXML))
	assert.Assert(t, ok)
	assert.Equal(t, format, ua.EncodingFormatXML)
	assert.Equal(t, c.Name(), "Argument")
}

func TestEncodeUnregisteredStructure(t *testing.T) {
	ec := ua.NewEncodingContext(ua.WithRegistry(ua.NewRegistry()))
	err := ua.Encode(ec, ua.EncodingFormatBinary, &bytes.Buffer{}, ua.ElementOperand{Index: 1})
	assert.Equal(t, ua.StatusCodeOf(err), ua.BadDataTypeIDUnknown)
}

func TestExtensionObjectLengthIntoBufferAt(t *testing.T) {
	in := ua.NewExtensionObject(ua.ContentFilterElement{
		FilterOperator: ua.FilterOperatorOfType,
		FilterOperands: []ua.ExtensionObject{ua.NewExtensionObject(ua.ElementOperand{Index: 7})},
	})
	want := &bytes.Buffer{}
	if err := ua.EncodeExtensionObject(ua.NewEncodingContext(), ua.EncodingFormatBinary, want, in); err != nil {
		t.Fatal(err)
	}
	// a BufferAt gets the length written in place after the body.
	got := buffer.NewPartitionAt(buffer.NewMemPoolAt(16))
	defer got.Reset()
	if err := ua.EncodeExtensionObject(ua.NewEncodingContext(), ua.EncodingFormatBinary, got, in); err != nil {
		t.Fatal(err)
	}
	b, err := io.ReadAll(got)
	if err != nil {
		t.Fatal(err)
	}
	assert.DeepEqual(t, b, want.Bytes())
}
