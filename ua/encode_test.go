// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua_test

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/awcullen/uacodec/ua"
	"gotest.tools/assert"
)

func int32Ptr(v int32) *int32 { return &v }

func stringPtr(v string) *string { return &v }

func roundTripValues(t *testing.T) []struct {
	name  string
	in    ua.Structure
	codec ua.Codec
} {
	grid, err := ua.NewMatrix([]float64{1, 2, 3, 4, 5, 6}, []int32{3, 2})
	if err != nil {
		t.Fatal(err)
	}
	inner := ua.BadNodeIDUnknown
	return []struct {
		name  string
		in    ua.Structure
		codec ua.Codec
	}{
		{
			"Argument",
			ua.Argument{Name: "Setpoints", DataType: ua.DataTypeIDDouble, ValueRank: ua.ValueRankOneDimension, ArrayDimensions: []uint32{0}, Description: ua.NewLocalizedText("setpoints", "en")},
			ua.ArgumentCodec,
		},
		{
			"RequestHeader",
			ua.RequestHeader{
				AuthenticationToken: ua.NewNodeIDOpaque(0, ua.ByteString("token")),
				Timestamp:           time.Date(2021, time.March, 1, 8, 30, 0, 125000000, time.UTC),
				RequestHandle:       42,
				AuditEntryID:        "audit",
				TimeoutHint:         1500,
				AdditionalHeader:    ua.NewExtensionObject(ua.ElementOperand{Index: 3}),
			},
			ua.RequestHeaderCodec,
		},
		{
			"WriteResponse",
			ua.WriteResponse{
				ResponseHeader: ua.ResponseHeader{
					Timestamp:     time.Date(2021, time.March, 1, 8, 30, 0, 0, time.UTC),
					RequestHandle: 42,
					ServiceResult: ua.Good,
					ServiceDiagnostics: &ua.DiagnosticInfo{
						SymbolicID:     int32Ptr(0),
						AdditionalInfo: stringPtr("outer"),
						InnerDiagnosticInfo: &ua.DiagnosticInfo{
							LocalizedText:   int32Ptr(1),
							InnerStatusCode: &inner,
						},
					},
					StringTable: []string{"BadNodeIdUnknown", "node not found"},
				},
				Results:         []ua.StatusCode{ua.Good, ua.BadNodeIDUnknown},
				DiagnosticInfos: []*ua.DiagnosticInfo{nil, {SymbolicID: int32Ptr(0)}},
			},
			ua.WriteResponseCodec,
		},
		{
			"ContentFilterElement",
			ua.NewContentFilterElement(ua.FilterOperatorInList,
				ua.SimpleAttributeOperand{
					TypeDefinitionID: ua.NewNodeIDNumeric(0, 2041),
					BrowsePath:       []ua.QualifiedName{ua.NewQualifiedName(0, "Severity")},
					AttributeID:      13,
				},
				ua.LiteralOperand{Value: ua.NewVariant(grid)},
				ua.LiteralOperand{Value: ua.NewVariant([]string{"a", "b"})},
				ua.ElementOperand{Index: 1},
			),
			ua.ContentFilterElementCodec,
		},
		{
			"StructureDefinition",
			ua.StructureDefinition{
				DefaultEncodingID: ua.NewNodeIDNumeric(1, 5001),
				BaseDataType:      ua.DataTypeIDStructure,
				StructureType:     ua.StructureTypeStructureWithOptionalFields,
				Fields: []ua.StructureField{
					{Name: "Name", DataType: ua.DataTypeIDString, ValueRank: ua.ValueRankScalar, MaxStringLength: 16},
					{Name: "Value", DataType: ua.DataTypeIDDouble, ValueRank: ua.ValueRankScalar, IsOptional: true},
				},
			},
			ua.StructureDefinitionCodec,
		},
		{
			"EnumDefinition",
			ua.EnumDefinition{
				Fields: []ua.EnumField{
					{Value: 0, DisplayName: ua.NewLocalizedText("Off", ""), Name: "Off"},
					{Value: 1, DisplayName: ua.NewLocalizedText("On", ""), Name: "On"},
				},
			},
			ua.EnumDefinitionCodec,
		},
	}
}

func TestRoundTrip(t *testing.T) {
	ec := ua.NewEncodingContext()
	for _, format := range []ua.EncodingFormat{ua.EncodingFormatBinary, ua.EncodingFormatXML, ua.EncodingFormatJSON} {
		for _, c := range roundTripValues(t) {
			buf := &bytes.Buffer{}
			if err := ua.Encode(ec, format, buf, c.in); err != nil {
				t.Fatalf("%s %s: %v", format, c.name, err)
			}
			out, err := ua.Decode(ec, format, buf, c.codec)
			if err != nil {
				t.Fatalf("%s %s: %v", format, c.name, err)
			}
			assert.DeepEqual(t, out, c.in)
		}
	}
}

func TestRoundTripExtensionObject(t *testing.T) {
	ec := ua.NewEncodingContext()
	for _, format := range []ua.EncodingFormat{ua.EncodingFormatBinary, ua.EncodingFormatXML, ua.EncodingFormatJSON} {
		for _, c := range roundTripValues(t) {
			buf := &bytes.Buffer{}
			if err := ua.EncodeExtensionObject(ec, format, buf, ua.NewExtensionObject(c.in)); err != nil {
				t.Fatalf("%s %s: %v", format, c.name, err)
			}
			out, err := ua.DecodeExtensionObject(ec, format, buf)
			if err != nil {
				t.Fatalf("%s %s: %v", format, c.name, err)
			}
			assert.Assert(t, !out.IsEncoded(), "%s %s", format, c.name)
			assert.DeepEqual(t, out.Value(), c.in)
		}
	}
}

func TestEncodeJSON(t *testing.T) {
	in := ua.Argument{Name: "Speed", DataType: ua.DataTypeIDDouble, ValueRank: ua.ValueRankScalar, Description: ua.NewLocalizedText("rpm", "")}
	buf := &bytes.Buffer{}
	if err := ua.Encode(ua.NewEncodingContext(), ua.EncodingFormatJSON, buf, in); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, buf.String(), `{"Name":"Speed","DataType":{"Id":11},"ValueRank":-1,"Description":{"Text":"rpm"}}`)

	buf.Reset()
	if err := ua.EncodeExtensionObject(ua.NewEncodingContext(), ua.EncodingFormatJSON, buf, ua.NewExtensionObject(ua.ElementOperand{Index: 2})); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, buf.String(), `{"TypeId":{"Id":15206},"Body":{"Index":2}}`)
}

func TestEncodeJSONNodeIDs(t *testing.T) {
	cases := []struct {
		in   ua.NodeID
		json string
	}{
		{ua.NewNodeIDNumeric(0, 85), `{"Id":85}`},
		{ua.NewNodeIDNumeric(2, 85), `{"Id":85,"Namespace":2}`},
		{ua.NewNodeIDString(1, "Demo"), `{"IdType":1,"Id":"Demo","Namespace":1}`},
		{ua.NewNodeIDOpaque(0, ua.ByteString("abcd")), `{"IdType":3,"Id":"YWJjZA=="}`},
	}
	for _, c := range cases {
		buf := &bytes.Buffer{}
		enc := ua.NewJSONEncoder(buf, ua.NewEncodingContext())
		if err := enc.WriteNodeID("", c.in); err != nil {
			t.Fatal(err)
		}
		assert.Equal(t, buf.String(), c.json)

		dec, err := ua.NewJSONDecoder(buf, ua.NewEncodingContext())
		if err != nil {
			t.Fatal(err)
		}
		var out ua.NodeID
		if err := dec.ReadNodeID("", &out); err != nil {
			t.Fatal(err)
		}
		assert.DeepEqual(t, out, c.in)
	}
}

func TestEncodeNonReversibleJSON(t *testing.T) {
	m, err := ua.NewMatrix([]int32{1, 2, 3, 4, 5, 6}, []int32{2, 3})
	if err != nil {
		t.Fatal(err)
	}
	ec := ua.NewEncodingContext(ua.WithNamespaceURIs("urn:a", "urn:b"))
	cases := []struct {
		in    ua.Structure
		codec ua.Codec
		json  string
	}{
		{
			ua.LiteralOperand{Value: ua.NewVariant(m)},
			ua.LiteralOperandCodec,
			`{"Value":[[1,2,3],[4,5,6]]}`,
		},
		{
			ua.ContentFilterElement{FilterOperator: ua.FilterOperatorOfType},
			ua.ContentFilterElementCodec,
			`{"FilterOperator":"OfType_14"}`,
		},
		{
			ua.Argument{Name: "Speed", DataType: ua.NewNodeIDNumeric(2, 7), ValueRank: ua.ValueRankScalar, Description: ua.NewLocalizedText("rpm", "en")},
			ua.ArgumentCodec,
			`{"Name":"Speed","DataType":{"Id":7,"Namespace":"urn:b"},"ValueRank":-1,"Description":"rpm"}`,
		},
		{
			ua.WriteResponse{Results: []ua.StatusCode{ua.Good}},
			ua.WriteResponseCodec,
			`{"ResponseHeader":{"Timestamp":"0001-01-01T00:00:00Z","RequestHandle":0,"ServiceResult":{"Code":0,"Symbol":"Good"}},"Results":[{"Code":0,"Symbol":"Good"}]}`,
		},
	}
	for _, c := range cases {
		buf := &bytes.Buffer{}
		enc := ua.NewNonReversibleJSONEncoder(buf, ec)
		if err := enc.WriteStruct("", c.in, c.codec); err != nil {
			t.Fatal(err)
		}
		assert.Equal(t, buf.String(), c.json)
	}
}

func TestEncodeXML(t *testing.T) {
	in := ua.Argument{Name: "Speed", DataType: ua.DataTypeIDDouble, ValueRank: ua.ValueRankScalar, Description: ua.NewLocalizedText("rpm", "")}
	buf := &bytes.Buffer{}
	if err := ua.Encode(ua.NewEncodingContext(), ua.EncodingFormatXML, buf, in); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, buf.String(), `<Argument xmlns="http://opcfoundation.org/UA/2008/02/Types.xsd">`+
		`<Name>Speed</Name><DataType><Identifier>i=11</Identifier></DataType><ValueRank>-1</ValueRank>`+
		`<Description><Text>rpm</Text></Description></Argument>`)
}

func TestDecodeXMLToleratesWhitespaceAndOrder(t *testing.T) {
	doc := `<?xml version="1.0" encoding="utf-8"?>
<Argument xmlns="http://opcfoundation.org/UA/2008/02/Types.xsd">
  <DataType>
    <Identifier> i=11 </Identifier>
  </DataType>
  <Name>Speed</Name>
  <ArrayDimensions>
    <UInt32>2</UInt32>
    <UInt32>3</UInt32>
  </ArrayDimensions>
  <ValueRank>2</ValueRank>
</Argument>`
	out, err := ua.Decode(ua.NewEncodingContext(), ua.EncodingFormatXML, bytes.NewBufferString(doc), ua.ArgumentCodec)
	if err != nil {
		t.Fatal(err)
	}
	assert.DeepEqual(t, out, ua.Argument{Name: "Speed", DataType: ua.DataTypeIDDouble, ValueRank: 2, ArrayDimensions: []uint32{2, 3}})
}

func TestDecodeJSONAcceptsNumbersAsStrings(t *testing.T) {
	doc := `{"Name":"Speed","DataType":{"Id":"11"},"ValueRank":"-1","ArrayDimensions":null}`
	out, err := ua.Decode(ua.NewEncodingContext(), ua.EncodingFormatJSON, bytes.NewBufferString(doc), ua.ArgumentCodec)
	if err != nil {
		t.Fatal(err)
	}
	assert.DeepEqual(t, out, ua.Argument{Name: "Speed", DataType: ua.DataTypeIDDouble, ValueRank: -1})
}

func TestJSONSpecialFloats(t *testing.T) {
	buf := &bytes.Buffer{}
	enc := ua.NewJSONEncoder(buf, ua.NewEncodingContext())
	if err := ua.WriteArray(enc, "", []float64{1.5, math.Inf(1), math.Inf(-1)}, ua.Encoder.WriteDouble); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, buf.String(), `[1.5,"Infinity","-Infinity"]`)

	dec, err := ua.NewJSONDecoder(buf, ua.NewEncodingContext())
	if err != nil {
		t.Fatal(err)
	}
	var out []float64
	if err := ua.ReadArray(dec, "", &out, ua.Decoder.ReadDouble); err != nil {
		t.Fatal(err)
	}
	assert.DeepEqual(t, out, []float64{1.5, math.Inf(1), math.Inf(-1)})
}

func TestNewEncoderUnknownFormat(t *testing.T) {
	_, err := ua.NewEncoder(&bytes.Buffer{}, ua.NewEncodingContext(), ua.EncodingFormat(9))
	assert.Equal(t, ua.StatusCodeOf(err), ua.BadEncodingError)
	_, err = ua.ParseEncodingFormat("yaml")
	assert.Equal(t, ua.StatusCodeOf(err), ua.BadDataEncodingUnsupported)
	f, err := ua.ParseEncodingFormat("JSON")
	assert.NilError(t, err)
	assert.Equal(t, f, ua.EncodingFormatJSON)
}
