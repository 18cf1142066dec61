// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

import (
	"github.com/pkg/errors"
)

// StructureType is the kind of a structure.
type StructureType int32

// StructureTypes
const (
	StructureTypeStructure                   StructureType = 0
	StructureTypeStructureWithOptionalFields StructureType = 1
	StructureTypeUnion                       StructureType = 2
	StructureTypeStructureWithSubtypedValues StructureType = 3
	StructureTypeUnionWithSubtypedValues     StructureType = 4
)

var structureTypeNames = [...]string{"Structure", "StructureWithOptionalFields", "Union", "StructureWithSubtypedValues", "UnionWithSubtypedValues"}

// EnumValue returns the value of the enumeration.
func (t StructureType) EnumValue() int32 { return int32(t) }

func (t StructureType) String() string {
	if t >= 0 && int(t) < len(structureTypeNames) {
		return structureTypeNames[t]
	}
	return "Unknown"
}

// IsUnion returns true for the union kinds.
func (t StructureType) IsUnion() bool {
	return t == StructureTypeUnion || t == StructureTypeUnionWithSubtypedValues
}

// ValueRanks of a field or variable.
const (
	ValueRankScalarOrOneDimension int32 = -3
	ValueRankAny                  int32 = -2
	ValueRankScalar               int32 = -1
	ValueRankOneOrMoreDimensions  int32 = 0
	ValueRankOneDimension         int32 = 1
)

// StructureField describes a field of a structure.
type StructureField struct {
	Name            string
	Description     LocalizedText
	DataType        NodeID
	ValueRank       int32
	ArrayDimensions []uint32
	MaxStringLength uint32
	IsOptional      bool
}

// TypeID returns the id of the data type.
func (StructureField) TypeID() ExpandedNodeID {
	return NewExpandedNodeID(DataTypeIDStructureField)
}

// newField returns a field with the data type and value rank.
func newField(name string, dataType NodeID, valueRank int32) StructureField {
	return StructureField{Name: name, DataType: dataType, ValueRank: valueRank}
}

// StructureDefinition describes the fields of a structure in encoding order.
type StructureDefinition struct {
	DefaultEncodingID NodeID
	BaseDataType      NodeID
	StructureType     StructureType
	Fields            []StructureField
}

// TypeID returns the id of the data type.
func (StructureDefinition) TypeID() ExpandedNodeID {
	return NewExpandedNodeID(DataTypeIDStructureDefinition)
}

// Validate checks the definition can be encoded.
func (d *StructureDefinition) Validate() error {
	if d.StructureType < StructureTypeStructure || d.StructureType > StructureTypeUnionWithSubtypedValues {
		return errors.Wrapf(BadInvalidArgument, "unknown structure type %d", d.StructureType)
	}
	names := make(map[string]struct{}, len(d.Fields))
	optional := 0
	for i, f := range d.Fields {
		if f.Name == "" {
			return errors.Wrapf(BadInvalidArgument, "field %d has no name", i)
		}
		if _, ok := names[f.Name]; ok {
			return errors.Wrapf(BadInvalidArgument, "duplicate field %q", f.Name)
		}
		names[f.Name] = struct{}{}
		if f.IsOptional {
			if d.StructureType != StructureTypeStructureWithOptionalFields {
				return errors.Wrapf(BadInvalidArgument, "field %q is optional in a %s", f.Name, d.StructureType)
			}
			optional++
		}
	}
	if optional > 32 {
		return errors.Wrapf(BadInvalidArgument, "%d optional fields exceed 32", optional)
	}
	if d.StructureType.IsUnion() && len(d.Fields) > 32 {
		return errors.Wrapf(BadInvalidArgument, "%d union fields exceed 32", len(d.Fields))
	}
	return nil
}

// OptionalFields returns the names of the optional fields, in the order of their bit in the encoding mask.
func (d *StructureDefinition) OptionalFields() []string {
	var names []string
	for _, f := range d.Fields {
		if f.IsOptional {
			names = append(names, f.Name)
		}
	}
	return names
}

// FieldNames returns the names of all fields.
func (d *StructureDefinition) FieldNames() []string {
	names := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		names[i] = f.Name
	}
	return names
}

var (
	// StructureFieldCodec encodes StructureField.
	StructureFieldCodec = NewDataTypeCodec("StructureField",
		standardIDs(DataTypeIDStructureField, ObjectIDStructureFieldEncodingDefaultBinary, ObjectIDStructureFieldEncodingDefaultXML, ObjectIDStructureFieldEncodingDefaultJSON),
		&StructureDefinition{
			DefaultEncodingID: ObjectIDStructureFieldEncodingDefaultBinary,
			Fields: []StructureField{
				newField("Name", DataTypeIDString, ValueRankScalar),
				newField("Description", DataTypeIDLocalizedText, ValueRankScalar),
				newField("DataType", DataTypeIDNodeID, ValueRankScalar),
				newField("ValueRank", DataTypeIDInt32, ValueRankScalar),
				newField("ArrayDimensions", DataTypeIDUInt32, ValueRankOneDimension),
				newField("MaxStringLength", DataTypeIDUInt32, ValueRankScalar),
				newField("IsOptional", DataTypeIDBoolean, ValueRankScalar),
			},
		},
		encodeStructureField, decodeStructureField)

	// StructureDefinitionCodec encodes StructureDefinition.
	StructureDefinitionCodec = NewDataTypeCodec("StructureDefinition",
		standardIDs(DataTypeIDStructureDefinition, ObjectIDStructureDefinitionEncodingDefaultBinary, ObjectIDStructureDefinitionEncodingDefaultXML, ObjectIDStructureDefinitionEncodingDefaultJSON),
		&StructureDefinition{
			DefaultEncodingID: ObjectIDStructureDefinitionEncodingDefaultBinary,
			Fields: []StructureField{
				newField("DefaultEncodingId", DataTypeIDNodeID, ValueRankScalar),
				newField("BaseDataType", DataTypeIDNodeID, ValueRankScalar),
				newField("StructureType", DataTypeIDStructureType, ValueRankScalar),
				newField("Fields", DataTypeIDStructureField, ValueRankOneDimension),
			},
		},
		encodeStructureDefinition, decodeStructureDefinition)
)

func encodeStructureField(_ EncodingContext, enc Encoder, v StructureField) error {
	if err := enc.WriteString("Name", v.Name); err != nil {
		return err
	}
	if err := enc.WriteLocalizedText("Description", v.Description); err != nil {
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
	if err := enc.WriteUInt32("MaxStringLength", v.MaxStringLength); err != nil {
		return err
	}
	return enc.WriteBoolean("IsOptional", v.IsOptional)
}

func decodeStructureField(_ EncodingContext, dec Decoder) (StructureField, error) {
	var v StructureField
	if err := dec.ReadString("Name", &v.Name); err != nil {
		return v, err
	}
	if err := dec.ReadLocalizedText("Description", &v.Description); err != nil {
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
	if err := dec.ReadUInt32("MaxStringLength", &v.MaxStringLength); err != nil {
		return v, err
	}
	if err := dec.ReadBoolean("IsOptional", &v.IsOptional); err != nil {
		return v, err
	}
	return v, nil
}

func encodeStructureDefinition(_ EncodingContext, enc Encoder, v StructureDefinition) error {
	if err := enc.WriteNodeID("DefaultEncodingId", v.DefaultEncodingID); err != nil {
		return err
	}
	if err := enc.WriteNodeID("BaseDataType", v.BaseDataType); err != nil {
		return err
	}
	if err := enc.WriteEnum("StructureType", v.StructureType); err != nil {
		return err
	}
	return WriteStructArray(enc, "Fields", v.Fields, StructureFieldCodec)
}

func decodeStructureDefinition(_ EncodingContext, dec Decoder) (StructureDefinition, error) {
	var v StructureDefinition
	if err := dec.ReadNodeID("DefaultEncodingId", &v.DefaultEncodingID); err != nil {
		return v, err
	}
	if err := dec.ReadNodeID("BaseDataType", &v.BaseDataType); err != nil {
		return v, err
	}
	if err := ReadEnumAs(dec, "StructureType", &v.StructureType); err != nil {
		return v, err
	}
	if err := ReadStructArray(dec, "Fields", StructureFieldCodec, &v.Fields); err != nil {
		return v, err
	}
	return v, nil
}
