// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

import "strconv"

// EnumValueType names one value of an enumeration.
type EnumValueType struct {
	Value       int64
	DisplayName LocalizedText
	Description LocalizedText
}

// TypeID returns the id of the data type.
func (EnumValueType) TypeID() ExpandedNodeID {
	return NewExpandedNodeID(DataTypeIDEnumValueType)
}

// EnumField names one value of an enumeration, in an EnumDefinition.
type EnumField struct {
	Value       int64
	DisplayName LocalizedText
	Description LocalizedText
	Name        string
}

// TypeID returns the id of the data type.
func (EnumField) TypeID() ExpandedNodeID {
	return NewExpandedNodeID(DataTypeIDEnumField)
}

// EnumDefinition describes the values of an enumeration.
type EnumDefinition struct {
	Fields []EnumField
}

// TypeID returns the id of the data type.
func (EnumDefinition) TypeID() ExpandedNodeID {
	return NewExpandedNodeID(DataTypeIDEnumDefinition)
}

// Name returns the name of the value, or the value as text if it has no name.
func (d *EnumDefinition) Name(value int32) string {
	if d != nil {
		for _, f := range d.Fields {
			if f.Value == int64(value) {
				return f.Name
			}
		}
	}
	return strconv.FormatInt(int64(value), 10)
}

// enumDefinitionOf lists the names of an enumeration with values 0..n-1.
func enumDefinitionOf(names ...string) *EnumDefinition {
	d := &EnumDefinition{Fields: make([]EnumField, len(names))}
	for i, name := range names {
		d.Fields[i] = EnumField{Value: int64(i), DisplayName: NewLocalizedText(name, ""), Name: name}
	}
	return d
}

// enumValue is an enumerated value of a type known only by its EnumDefinition.
type enumValue struct {
	value int32
	def   *EnumDefinition
}

func (e enumValue) EnumValue() int32 { return e.value }

func (e enumValue) String() string { return e.def.Name(e.value) }

var (
	// EnumValueTypeCodec encodes EnumValueType.
	EnumValueTypeCodec = NewDataTypeCodec("EnumValueType",
		standardIDs(DataTypeIDEnumValueType, ObjectIDEnumValueTypeEncodingDefaultBinary, ObjectIDEnumValueTypeEncodingDefaultXML, ObjectIDEnumValueTypeEncodingDefaultJSON),
		&StructureDefinition{
			DefaultEncodingID: ObjectIDEnumValueTypeEncodingDefaultBinary,
			Fields: []StructureField{
				newField("Value", DataTypeIDInt64, ValueRankScalar),
				newField("DisplayName", DataTypeIDLocalizedText, ValueRankScalar),
				newField("Description", DataTypeIDLocalizedText, ValueRankScalar),
			},
		},
		encodeEnumValueType, decodeEnumValueType)

	// EnumFieldCodec encodes EnumField.
	EnumFieldCodec = NewDataTypeCodec("EnumField",
		standardIDs(DataTypeIDEnumField, ObjectIDEnumFieldEncodingDefaultBinary, ObjectIDEnumFieldEncodingDefaultXML, ObjectIDEnumFieldEncodingDefaultJSON),
		&StructureDefinition{
			DefaultEncodingID: ObjectIDEnumFieldEncodingDefaultBinary,
			BaseDataType:      DataTypeIDEnumValueType,
			Fields: []StructureField{
				newField("Value", DataTypeIDInt64, ValueRankScalar),
				newField("DisplayName", DataTypeIDLocalizedText, ValueRankScalar),
				newField("Description", DataTypeIDLocalizedText, ValueRankScalar),
				newField("Name", DataTypeIDString, ValueRankScalar),
			},
		},
		encodeEnumField, decodeEnumField)

	// EnumDefinitionCodec encodes EnumDefinition.
	EnumDefinitionCodec = NewDataTypeCodec("EnumDefinition",
		standardIDs(DataTypeIDEnumDefinition, ObjectIDEnumDefinitionEncodingDefaultBinary, ObjectIDEnumDefinitionEncodingDefaultXML, ObjectIDEnumDefinitionEncodingDefaultJSON),
		&StructureDefinition{
			DefaultEncodingID: ObjectIDEnumDefinitionEncodingDefaultBinary,
			Fields: []StructureField{
				newField("Fields", DataTypeIDEnumField, ValueRankOneDimension),
			},
		},
		encodeEnumDefinition, decodeEnumDefinition)
)

func encodeEnumValueType(_ EncodingContext, enc Encoder, v EnumValueType) error {
	if err := enc.WriteInt64("Value", v.Value); err != nil {
		return err
	}
	if err := enc.WriteLocalizedText("DisplayName", v.DisplayName); err != nil {
		return err
	}
	return enc.WriteLocalizedText("Description", v.Description)
}

func decodeEnumValueType(_ EncodingContext, dec Decoder) (EnumValueType, error) {
	var v EnumValueType
	if err := dec.ReadInt64("Value", &v.Value); err != nil {
		return v, err
	}
	if err := dec.ReadLocalizedText("DisplayName", &v.DisplayName); err != nil {
		return v, err
	}
	if err := dec.ReadLocalizedText("Description", &v.Description); err != nil {
		return v, err
	}
	return v, nil
}

func encodeEnumField(_ EncodingContext, enc Encoder, v EnumField) error {
	if err := enc.WriteInt64("Value", v.Value); err != nil {
		return err
	}
	if err := enc.WriteLocalizedText("DisplayName", v.DisplayName); err != nil {
		return err
	}
	if err := enc.WriteLocalizedText("Description", v.Description); err != nil {
		return err
	}
	return enc.WriteString("Name", v.Name)
}

func decodeEnumField(_ EncodingContext, dec Decoder) (EnumField, error) {
	var v EnumField
	if err := dec.ReadInt64("Value", &v.Value); err != nil {
		return v, err
	}
	if err := dec.ReadLocalizedText("DisplayName", &v.DisplayName); err != nil {
		return v, err
	}
	if err := dec.ReadLocalizedText("Description", &v.Description); err != nil {
		return v, err
	}
	if err := dec.ReadString("Name", &v.Name); err != nil {
		return v, err
	}
	return v, nil
}

func encodeEnumDefinition(_ EncodingContext, enc Encoder, v EnumDefinition) error {
	return WriteStructArray(enc, "Fields", v.Fields, EnumFieldCodec)
}

func decodeEnumDefinition(_ EncodingContext, dec Decoder) (EnumDefinition, error) {
	var v EnumDefinition
	if err := ReadStructArray(dec, "Fields", EnumFieldCodec, &v.Fields); err != nil {
		return v, err
	}
	return v, nil
}
