// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua_test

import (
	"bytes"
	"testing"

	"github.com/awcullen/uacodec/ua"
	"gotest.tools/assert"
)

const testNamespace = "urn:test"

var allFormats = []ua.EncodingFormat{ua.EncodingFormatBinary, ua.EncodingFormatXML, ua.EncodingFormatJSON}

// newTestCodec registers a dynamic codec with ids starting at id in the test namespace.
func newTestCodec(t *testing.T, name string, id uint32, def *ua.StructureDefinition) (*ua.DynamicCodec, ua.EncodingContext) {
	t.Helper()
	codec, err := ua.NewDynamicCodec(name, ua.DataTypeIDs{
		DataType: ua.NewExpandedNodeIDNumeric(0, testNamespace, id),
		Binary:   ua.NewExpandedNodeIDNumeric(0, testNamespace, id+1),
		XML:      ua.NewExpandedNodeIDNumeric(0, testNamespace, id+2),
		JSON:     ua.NewExpandedNodeIDNumeric(0, testNamespace, id+3),
	}, def)
	if err != nil {
		t.Fatal(err)
	}
	registry := ua.NewStandardRegistry()
	if err := registry.Register(codec); err != nil {
		t.Fatal(err)
	}
	return codec, ua.NewEncodingContext(ua.WithNamespaceURIs(testNamespace), ua.WithRegistry(registry))
}

func newTestStructure(id uint32, fields map[string]any) *ua.DynamicStructure {
	s := ua.NewDynamicStructure(ua.NewExpandedNodeIDNumeric(0, testNamespace, id))
	for k, v := range fields {
		s.Fields[k] = v
	}
	return s
}

func roundTrip(t *testing.T, ec ua.EncodingContext, codec ua.Codec, in *ua.DynamicStructure) {
	t.Helper()
	for _, format := range allFormats {
		buf := &bytes.Buffer{}
		if err := ua.Encode(ec, format, buf, in); err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		out, err := ua.Decode(ec, format, buf, codec)
		if err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		assert.DeepEqual(t, out, in)
	}
}

var optionalFieldsDefinition = &ua.StructureDefinition{
	StructureType: ua.StructureTypeStructureWithOptionalFields,
	Fields: []ua.StructureField{
		{Name: "Name", DataType: ua.DataTypeIDString, ValueRank: ua.ValueRankScalar},
		{Name: "Count", DataType: ua.DataTypeIDInt32, ValueRank: ua.ValueRankScalar, IsOptional: true},
		{Name: "Tags", DataType: ua.DataTypeIDString, ValueRank: ua.ValueRankOneDimension, IsOptional: true},
	},
}

func TestDynamicCodecOptionalFields(t *testing.T) {
	codec, ec := newTestCodec(t, "Tagged", 7000, optionalFieldsDefinition)
	cases := []struct {
		in    *ua.DynamicStructure
		bytes []byte
	}{
		{
			newTestStructure(7000, map[string]any{"Name": "x", "Tags": []string{"a"}}),
			[]byte{
				0x02, 0x00, 0x00, 0x00, // mask
				0x01, 0x00, 0x00, 0x00, 0x78,
				0x01, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x61,
			},
		},
		{
			newTestStructure(7000, map[string]any{"Name": "x", "Count": int32(3)}),
			[]byte{
				0x01, 0x00, 0x00, 0x00,
				0x01, 0x00, 0x00, 0x00, 0x78,
				0x03, 0x00, 0x00, 0x00,
			},
		},
		{
			// a field set to nil is absent.
			newTestStructure(7000, map[string]any{"Name": "x", "Count": nil}),
			[]byte{
				0x00, 0x00, 0x00, 0x00,
				0x01, 0x00, 0x00, 0x00, 0x78,
			},
		},
	}
	for _, c := range cases {
		buf := &bytes.Buffer{}
		if err := ua.Encode(ec, ua.EncodingFormatBinary, buf, c.in); err != nil {
			t.Fatal(err)
		}
		assert.DeepEqual(t, buf.Bytes(), c.bytes)
	}
	roundTrip(t, ec, codec, cases[0].in)
	roundTrip(t, ec, codec, cases[1].in)
}

func TestDynamicCodecMissingRequiredField(t *testing.T) {
	_, ec := newTestCodec(t, "Tagged", 7000, optionalFieldsDefinition)
	err := ua.Encode(ec, ua.EncodingFormatBinary, &bytes.Buffer{}, newTestStructure(7000, map[string]any{"Count": int32(3)}))
	assert.Equal(t, ua.StatusCodeOf(err), ua.BadEncodingError)
}

func TestDynamicCodecUnion(t *testing.T) {
	codec, ec := newTestCodec(t, "NumberOrText", 7100, &ua.StructureDefinition{
		StructureType: ua.StructureTypeUnion,
		Fields: []ua.StructureField{
			{Name: "Number", DataType: ua.DataTypeIDInt32, ValueRank: ua.ValueRankScalar},
			{Name: "Text", DataType: ua.DataTypeIDString, ValueRank: ua.ValueRankScalar},
		},
	})
	cases := []struct {
		in    *ua.DynamicStructure
		bytes []byte
	}{
		{
			newTestStructure(7100, map[string]any{"Text": "hi"}),
			[]byte{0x02, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00, 0x68, 0x69},
		},
		{
			newTestStructure(7100, map[string]any{"Number": int32(-1)}),
			[]byte{0x01, 0x00, 0x00, 0x00, 0xff, 0xff, 0xff, 0xff},
		},
		{
			newTestStructure(7100, nil),
			[]byte{0x00, 0x00, 0x00, 0x00},
		},
	}
	for _, c := range cases {
		buf := &bytes.Buffer{}
		if err := ua.Encode(ec, ua.EncodingFormatBinary, buf, c.in); err != nil {
			t.Fatal(err)
		}
		assert.DeepEqual(t, buf.Bytes(), c.bytes)
		roundTrip(t, ec, codec, c.in)
	}

	err := ua.Encode(ec, ua.EncodingFormatBinary, &bytes.Buffer{}, newTestStructure(7100, map[string]any{"Number": int32(1), "Text": "hi"}))
	assert.Equal(t, ua.StatusCodeOf(err), ua.BadEncodingError)

	_, err = ua.Decode(ec, ua.EncodingFormatBinary, bytes.NewReader([]byte{0x03, 0x00, 0x00, 0x00}), codec)
	assert.Equal(t, ua.StatusCodeOf(err), ua.BadDecodingError)
}

func TestDynamicCodecMatchesGeneratedCodec(t *testing.T) {
	codec, err := ua.NewDynamicCodec("Argument", ua.ArgumentCodec.IDs(), ua.ArgumentCodec.Definition())
	if err != nil {
		t.Fatal(err)
	}
	ec := ua.NewEncodingContext()
	arg := ua.Argument{
		Name:            "Speed",
		DataType:        ua.DataTypeIDDouble,
		ValueRank:       ua.ValueRankOneDimension,
		ArrayDimensions: []uint32{4},
		Description:     ua.NewLocalizedText("rpm", "en"),
	}
	want := &bytes.Buffer{}
	if err := ua.Encode(ec, ua.EncodingFormatBinary, want, arg); err != nil {
		t.Fatal(err)
	}

	s := ua.NewDynamicStructure(ua.NewExpandedNodeID(ua.DataTypeIDArgument))
	s.Fields["Name"] = "Speed"
	s.Fields["DataType"] = ua.DataTypeIDDouble
	s.Fields["ValueRank"] = ua.ValueRankOneDimension
	s.Fields["ArrayDimensions"] = []uint32{4}
	s.Fields["Description"] = ua.NewLocalizedText("rpm", "en")

	got := &bytes.Buffer{}
	enc, err := ua.NewEncoder(got, ec, ua.EncodingFormatBinary)
	if err != nil {
		t.Fatal(err)
	}
	if err := enc.WriteStruct("", s, codec); err != nil {
		t.Fatal(err)
	}
	assert.DeepEqual(t, got.Bytes(), want.Bytes())

	dec, err := ua.NewDecoder(want, ec, ua.EncodingFormatBinary)
	if err != nil {
		t.Fatal(err)
	}
	out, err := dec.ReadStruct("", codec)
	if err != nil {
		t.Fatal(err)
	}
	assert.DeepEqual(t, out, s)
}

func TestDynamicCodecFieldKinds(t *testing.T) {
	m, err := ua.NewMatrix([]int32{1, 2, 3, 4, 5, 6}, []int32{2, 3})
	if err != nil {
		t.Fatal(err)
	}
	codec, ec := newTestCodec(t, "Recipe", 7200, &ua.StructureDefinition{
		Fields: []ua.StructureField{
			{Name: "Grid", DataType: ua.DataTypeIDInt32, ValueRank: 2},
			{Name: "Operator", DataType: ua.DataTypeIDFilterOperator, ValueRank: ua.ValueRankScalar},
			{Name: "Operators", DataType: ua.DataTypeIDFilterOperator, ValueRank: ua.ValueRankOneDimension},
			{Name: "Input", DataType: ua.DataTypeIDArgument, ValueRank: ua.ValueRankScalar},
			{Name: "Outputs", DataType: ua.DataTypeIDArgument, ValueRank: ua.ValueRankOneDimension},
			{Name: "Any", DataType: ua.DataTypeIDBaseDataType, ValueRank: ua.ValueRankScalar},
			{Name: "Status", DataType: ua.DataTypeIDStatusCode, ValueRank: ua.ValueRankScalar},
		},
	})
	in := newTestStructure(7200, map[string]any{
		"Grid":      m,
		"Operator":  int32(1),
		"Operators": []int32{0, 14},
		"Input":     ua.Argument{Name: "Speed", DataType: ua.DataTypeIDDouble, ValueRank: ua.ValueRankScalar},
		"Outputs": []ua.Argument{
			{Name: "Torque", DataType: ua.DataTypeIDFloat, ValueRank: ua.ValueRankScalar},
			{Name: "Log", DataType: ua.DataTypeIDString, ValueRank: ua.ValueRankOneDimension, ArrayDimensions: []uint32{0}},
		},
		"Any":    ua.NewVariant(uint16(7)),
		"Status": ua.BadNodeIDUnknown,
	})
	roundTrip(t, ec, codec, in)
}

func TestDynamicCodecMatrixDimensions(t *testing.T) {
	m, err := ua.NewMatrix([]int32{1, 2, 3, 4}, []int32{4})
	if err != nil {
		t.Fatal(err)
	}
	_, ec := newTestCodec(t, "Grid", 7300, &ua.StructureDefinition{
		Fields: []ua.StructureField{
			{Name: "Grid", DataType: ua.DataTypeIDInt32, ValueRank: 2},
		},
	})
	err = ua.Encode(ec, ua.EncodingFormatBinary, &bytes.Buffer{}, newTestStructure(7300, map[string]any{"Grid": m}))
	assert.Equal(t, ua.StatusCodeOf(err), ua.BadEncodingError)
}

func TestDynamicCodecMaxStringLength(t *testing.T) {
	codec, ec := newTestCodec(t, "Short", 7400, &ua.StructureDefinition{
		Fields: []ua.StructureField{
			{Name: "Code", DataType: ua.DataTypeIDString, ValueRank: ua.ValueRankScalar, MaxStringLength: 3},
		},
	})
	buf := &bytes.Buffer{}
	assert.NilError(t, ua.Encode(ec, ua.EncodingFormatBinary, buf, newTestStructure(7400, map[string]any{"Code": "abc"})))

	err := ua.Encode(ec, ua.EncodingFormatBinary, &bytes.Buffer{}, newTestStructure(7400, map[string]any{"Code": "abcd"}))
	assert.Equal(t, ua.StatusCodeOf(err), ua.BadEncodingError)

	_, err = ua.Decode(ec, ua.EncodingFormatBinary, bytes.NewReader([]byte{0x04, 0x00, 0x00, 0x00, 0x61, 0x62, 0x63, 0x64}), codec)
	assert.Equal(t, ua.StatusCodeOf(err), ua.BadDecodingError)
}

func TestDynamicCodecUnknownFieldType(t *testing.T) {
	codec, ec := newTestCodec(t, "Opaque", 7500, &ua.StructureDefinition{
		Fields: []ua.StructureField{
			{Name: "Thing", DataType: ua.NewNodeIDNumeric(1, 9999), ValueRank: ua.ValueRankScalar},
		},
	})
	err := ua.Encode(ec, ua.EncodingFormatBinary, &bytes.Buffer{}, newTestStructure(7500, map[string]any{"Thing": int32(1)}))
	assert.Equal(t, ua.StatusCodeOf(err), ua.BadEncodingError)

	_, err = ua.Decode(ec, ua.EncodingFormatBinary, bytes.NewReader([]byte{0x00}), codec)
	assert.Equal(t, ua.StatusCodeOf(err), ua.BadDecodingError)
}

func TestDynamicCodecAbstractField(t *testing.T) {
	codec, ec := newTestCodec(t, "Holder", 7700, &ua.StructureDefinition{
		Fields: []ua.StructureField{
			{Name: "Definition", DataType: ua.DataTypeIDDataTypeDefinition, ValueRank: ua.ValueRankScalar},
			{Name: "Shape", DataType: ua.NewNodeIDNumeric(1, 7800), ValueRank: ua.ValueRankScalar},
		},
	})
	in := newTestStructure(7700, map[string]any{
		"Definition": ua.NewExtensionObject(ua.EnumDefinition{
			Fields: []ua.EnumField{{Value: 1, DisplayName: ua.NewLocalizedText("On", ""), Name: "On"}},
		}),
		"Shape": ua.NewExtensionObject(ua.Argument{Name: "x", DataType: ua.DataTypeIDInt32, ValueRank: ua.ValueRankScalar}),
	})

	// the custom base is unknown until it is registered as abstract.
	err := ua.Encode(ec, ua.EncodingFormatBinary, &bytes.Buffer{}, in)
	assert.Equal(t, ua.StatusCodeOf(err), ua.BadEncodingError)

	assert.NilError(t, ec.Registry().RegisterAbstract(ua.NewExpandedNodeIDNumeric(0, testNamespace, 7800)))
	roundTrip(t, ec, codec, in)

	err = ec.Registry().RegisterAbstract(ua.NewExpandedNodeIDNumeric(0, testNamespace, 7700))
	assert.Equal(t, ua.StatusCodeOf(err), ua.BadInvalidArgument)
}

func TestNewDynamicCodecRejectsDefinitions(t *testing.T) {
	ids := ua.DataTypeIDs{DataType: ua.NewExpandedNodeIDNumeric(0, testNamespace, 7600)}
	cases := []*ua.StructureDefinition{
		nil,
		{Fields: []ua.StructureField{{Name: "Any", DataType: ua.DataTypeIDInt32, ValueRank: ua.ValueRankAny}}},
		{Fields: []ua.StructureField{{Name: "Maybe", DataType: ua.DataTypeIDInt32, ValueRank: ua.ValueRankScalarOrOneDimension}}},
		{Fields: []ua.StructureField{{Name: "A", DataType: ua.DataTypeIDInt32, ValueRank: ua.ValueRankScalar, IsOptional: true}}},
		{Fields: []ua.StructureField{{Name: "A", DataType: ua.DataTypeIDInt32, ValueRank: ua.ValueRankScalar}, {Name: "A", DataType: ua.DataTypeIDInt32, ValueRank: ua.ValueRankScalar}}},
		{StructureType: ua.StructureType(9)},
	}
	for i, def := range cases {
		_, err := ua.NewDynamicCodec("Bad", ids, def)
		assert.Equal(t, ua.StatusCodeOf(err), ua.BadInvalidArgument, "case %d", i)
	}
}
