// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

// FilterOperator is the operator of a ContentFilterElement.
type FilterOperator int32

// FilterOperators
const (
	FilterOperatorEquals             FilterOperator = 0
	FilterOperatorIsNull             FilterOperator = 1
	FilterOperatorGreaterThan        FilterOperator = 2
	FilterOperatorLessThan           FilterOperator = 3
	FilterOperatorGreaterThanOrEqual FilterOperator = 4
	FilterOperatorLessThanOrEqual    FilterOperator = 5
	FilterOperatorLike               FilterOperator = 6
	FilterOperatorNot                FilterOperator = 7
	FilterOperatorBetween            FilterOperator = 8
	FilterOperatorInList             FilterOperator = 9
	FilterOperatorAnd                FilterOperator = 10
	FilterOperatorOr                 FilterOperator = 11
	FilterOperatorCast               FilterOperator = 12
	FilterOperatorInView             FilterOperator = 13
	FilterOperatorOfType             FilterOperator = 14
	FilterOperatorRelatedTo          FilterOperator = 15
	FilterOperatorBitwiseAnd         FilterOperator = 16
	FilterOperatorBitwiseOr          FilterOperator = 17
)

var filterOperatorNames = [...]string{
	"Equals", "IsNull", "GreaterThan", "LessThan", "GreaterThanOrEqual", "LessThanOrEqual",
	"Like", "Not", "Between", "InList", "And", "Or", "Cast", "InView", "OfType", "RelatedTo",
	"BitwiseAnd", "BitwiseOr",
}

// EnumValue returns the value of the enumeration.
func (op FilterOperator) EnumValue() int32 { return int32(op) }

func (op FilterOperator) String() string {
	if op >= 0 && int(op) < len(filterOperatorNames) {
		return filterOperatorNames[op]
	}
	return "Unknown"
}

// ContentFilterElement applies an operator to operands. Each operand is one of
// ElementOperand, LiteralOperand or SimpleAttributeOperand, carried in an ExtensionObject.
type ContentFilterElement struct {
	FilterOperator FilterOperator
	FilterOperands []ExtensionObject
}

// TypeID returns the id of the data type.
func (ContentFilterElement) TypeID() ExpandedNodeID {
	return NewExpandedNodeID(DataTypeIDContentFilterElement)
}

// NewContentFilterElement returns an element holding the operands.
func NewContentFilterElement(op FilterOperator, operands ...Structure) ContentFilterElement {
	list := make([]ExtensionObject, len(operands))
	for i, o := range operands {
		list[i] = NewExtensionObject(o)
	}
	return ContentFilterElement{FilterOperator: op, FilterOperands: list}
}

// ElementOperand refers to another element of the filter by index.
type ElementOperand struct {
	Index uint32
}

// TypeID returns the id of the data type.
func (ElementOperand) TypeID() ExpandedNodeID {
	return NewExpandedNodeID(DataTypeIDElementOperand)
}

// LiteralOperand is a literal value.
type LiteralOperand struct {
	Value Variant
}

// TypeID returns the id of the data type.
func (LiteralOperand) TypeID() ExpandedNodeID {
	return NewExpandedNodeID(DataTypeIDLiteralOperand)
}

// SimpleAttributeOperand selects an attribute of a node found by browse path from a type definition.
type SimpleAttributeOperand struct {
	TypeDefinitionID NodeID
	BrowsePath       []QualifiedName
	AttributeID      uint32
	IndexRange       string
}

// TypeID returns the id of the data type.
func (SimpleAttributeOperand) TypeID() ExpandedNodeID {
	return NewExpandedNodeID(DataTypeIDSimpleAttributeOperand)
}

// EqualSimpleAttributeOperand returns true if the operands select the same attribute.
func EqualSimpleAttributeOperand(a, b SimpleAttributeOperand) bool {
	if a.TypeDefinitionID != b.TypeDefinitionID || a.AttributeID != b.AttributeID || a.IndexRange != b.IndexRange {
		return false
	}
	if len(a.BrowsePath) != len(b.BrowsePath) {
		return false
	}
	for i := range a.BrowsePath {
		if a.BrowsePath[i] != b.BrowsePath[i] {
			return false
		}
	}
	return true
}

var (
	// ContentFilterElementCodec encodes ContentFilterElement.
	ContentFilterElementCodec = NewDataTypeCodec("ContentFilterElement",
		standardIDs(DataTypeIDContentFilterElement, ObjectIDContentFilterElementEncodingDefaultBinary, ObjectIDContentFilterElementEncodingDefaultXML, ObjectIDContentFilterElementEncodingDefaultJSON),
		&StructureDefinition{
			DefaultEncodingID: ObjectIDContentFilterElementEncodingDefaultBinary,
			Fields: []StructureField{
				newField("FilterOperator", DataTypeIDFilterOperator, ValueRankScalar),
				newField("FilterOperands", DataTypeIDFilterOperand, ValueRankOneDimension),
			},
		},
		func(_ EncodingContext, enc Encoder, v ContentFilterElement) error {
			if err := enc.WriteEnum("FilterOperator", v.FilterOperator); err != nil {
				return err
			}
			return WriteArray(enc, "FilterOperands", v.FilterOperands, Encoder.WriteExtensionObject)
		},
		func(_ EncodingContext, dec Decoder) (ContentFilterElement, error) {
			var v ContentFilterElement
			if err := ReadEnumAs(dec, "FilterOperator", &v.FilterOperator); err != nil {
				return v, err
			}
			if err := ReadArray(dec, "FilterOperands", &v.FilterOperands, Decoder.ReadExtensionObject); err != nil {
				return v, err
			}
			return v, nil
		})

	// ElementOperandCodec encodes ElementOperand.
	ElementOperandCodec = NewDataTypeCodec("ElementOperand",
		standardIDs(DataTypeIDElementOperand, ObjectIDElementOperandEncodingDefaultBinary, ObjectIDElementOperandEncodingDefaultXML, ObjectIDElementOperandEncodingDefaultJSON),
		&StructureDefinition{
			DefaultEncodingID: ObjectIDElementOperandEncodingDefaultBinary,
			BaseDataType:      DataTypeIDFilterOperand,
			Fields: []StructureField{
				newField("Index", DataTypeIDUInt32, ValueRankScalar),
			},
		},
		func(_ EncodingContext, enc Encoder, v ElementOperand) error {
			return enc.WriteUInt32("Index", v.Index)
		},
		func(_ EncodingContext, dec Decoder) (ElementOperand, error) {
			var v ElementOperand
			err := dec.ReadUInt32("Index", &v.Index)
			return v, err
		})

	// LiteralOperandCodec encodes LiteralOperand.
	LiteralOperandCodec = NewDataTypeCodec("LiteralOperand",
		standardIDs(DataTypeIDLiteralOperand, ObjectIDLiteralOperandEncodingDefaultBinary, ObjectIDLiteralOperandEncodingDefaultXML, ObjectIDLiteralOperandEncodingDefaultJSON),
		&StructureDefinition{
			DefaultEncodingID: ObjectIDLiteralOperandEncodingDefaultBinary,
			BaseDataType:      DataTypeIDFilterOperand,
			Fields: []StructureField{
				newField("Value", DataTypeIDBaseDataType, ValueRankScalar),
			},
		},
		func(_ EncodingContext, enc Encoder, v LiteralOperand) error {
			return enc.WriteVariant("Value", v.Value)
		},
		func(_ EncodingContext, dec Decoder) (LiteralOperand, error) {
			var v LiteralOperand
			err := dec.ReadVariant("Value", &v.Value)
			return v, err
		})

	// SimpleAttributeOperandCodec encodes SimpleAttributeOperand.
	SimpleAttributeOperandCodec = NewDataTypeCodec("SimpleAttributeOperand",
		standardIDs(DataTypeIDSimpleAttributeOperand, ObjectIDSimpleAttributeOperandEncodingDefaultBinary, ObjectIDSimpleAttributeOperandEncodingDefaultXML, ObjectIDSimpleAttributeOperandEncodingDefaultJSON),
		&StructureDefinition{
			DefaultEncodingID: ObjectIDSimpleAttributeOperandEncodingDefaultBinary,
			BaseDataType:      DataTypeIDFilterOperand,
			Fields: []StructureField{
				newField("TypeDefinitionId", DataTypeIDNodeID, ValueRankScalar),
				newField("BrowsePath", DataTypeIDQualifiedName, ValueRankOneDimension),
				newField("AttributeId", DataTypeIDIntegerID, ValueRankScalar),
				newField("IndexRange", DataTypeIDNumericRange, ValueRankScalar),
			},
		},
		func(_ EncodingContext, enc Encoder, v SimpleAttributeOperand) error {
			if err := enc.WriteNodeID("TypeDefinitionId", v.TypeDefinitionID); err != nil {
				return err
			}
			if err := WriteArray(enc, "BrowsePath", v.BrowsePath, Encoder.WriteQualifiedName); err != nil {
				return err
			}
			if err := enc.WriteUInt32("AttributeId", v.AttributeID); err != nil {
				return err
			}
			return enc.WriteString("IndexRange", v.IndexRange)
		},
		func(_ EncodingContext, dec Decoder) (SimpleAttributeOperand, error) {
			var v SimpleAttributeOperand
			if err := dec.ReadNodeID("TypeDefinitionId", &v.TypeDefinitionID); err != nil {
				return v, err
			}
			if err := ReadArray(dec, "BrowsePath", &v.BrowsePath, Decoder.ReadQualifiedName); err != nil {
				return v, err
			}
			if err := dec.ReadUInt32("AttributeId", &v.AttributeID); err != nil {
				return v, err
			}
			if err := dec.ReadString("IndexRange", &v.IndexRange); err != nil {
				return v, err
			}
			return v, nil
		})
)
