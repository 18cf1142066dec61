// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

// Argument describes an input or output argument of a method.
type Argument struct {
	Name            string
	DataType        NodeID
	ValueRank       int32
	ArrayDimensions []uint32
	Description     LocalizedText
}

// TypeID returns the id of the data type.
func (Argument) TypeID() ExpandedNodeID {
	return NewExpandedNodeID(DataTypeIDArgument)
}

// ArgumentCodec encodes Argument.
var ArgumentCodec = NewDataTypeCodec("Argument",
	standardIDs(DataTypeIDArgument, ObjectIDArgumentEncodingDefaultBinary, ObjectIDArgumentEncodingDefaultXML, ObjectIDArgumentEncodingDefaultJSON),
	&StructureDefinition{
		DefaultEncodingID: ObjectIDArgumentEncodingDefaultBinary,
		Fields: []StructureField{
			newField("Name", DataTypeIDString, ValueRankScalar),
			newField("DataType", DataTypeIDNodeID, ValueRankScalar),
			newField("ValueRank", DataTypeIDInt32, ValueRankScalar),
			newField("ArrayDimensions", DataTypeIDUInt32, ValueRankOneDimension),
			newField("Description", DataTypeIDLocalizedText, ValueRankScalar),
		},
	},
	func(_ EncodingContext, enc Encoder, v Argument) error {
		if err := enc.WriteString("Name", v.Name); err != nil {
			return err
		}
		if err := enc.WriteNodeID("DataType", v.DataType); err != nil {
			return err
		}
		if err := enc.WriteInt32("ValueRank", v.ValueRank); err != nil {
			return err
		}
		if err := WriteArray(enc, "ArrayDimensions", v.ArrayDimensions, Encoder.WriteUInt32); err != nil {
			return err
		}
		return enc.WriteLocalizedText("Description", v.Description)
	},
	func(_ EncodingContext, dec Decoder) (Argument, error) {
		var v Argument
		if err := dec.ReadString("Name", &v.Name); err != nil {
			return v, err
		}
		if err := dec.ReadNodeID("DataType", &v.DataType); err != nil {
			return v, err
		}
		if err := dec.ReadInt32("ValueRank", &v.ValueRank); err != nil {
			return v, err
		}
		if err := ReadArray(dec, "ArrayDimensions", &v.ArrayDimensions, Decoder.ReadUInt32); err != nil {
			return v, err
		}
		if err := dec.ReadLocalizedText("Description", &v.Description); err != nil {
			return v, err
		}
		return v, nil
	})
