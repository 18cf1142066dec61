// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

import (
	"reflect"
	"time"

	"github.com/google/uuid"
)

// VariantType is the kind of value stored in the Variant. The values are the
// ids of the built-in data types.
type VariantType byte

// VariantTypes
const (
	VariantTypeNull VariantType = iota
	VariantTypeBoolean
	VariantTypeSByte
	VariantTypeByte
	VariantTypeInt16
	VariantTypeUInt16
	VariantTypeInt32
	VariantTypeUInt32
	VariantTypeInt64
	VariantTypeUInt64
	VariantTypeFloat
	VariantTypeDouble
	VariantTypeString
	VariantTypeDateTime
	VariantTypeGUID
	VariantTypeByteString
	VariantTypeXMLElement
	VariantTypeNodeID
	VariantTypeExpandedNodeID
	VariantTypeStatusCode
	VariantTypeQualifiedName
	VariantTypeLocalizedText
	VariantTypeExtensionObject
	VariantTypeDataValue
	VariantTypeVariant
	VariantTypeDiagnosticInfo
)

var variantTypeNames = [...]string{
	"Null", "Boolean", "SByte", "Byte", "Int16", "UInt16", "Int32", "UInt32", "Int64", "UInt64",
	"Float", "Double", "String", "DateTime", "Guid", "ByteString", "XmlElement", "NodeId",
	"ExpandedNodeId", "StatusCode", "QualifiedName", "LocalizedText", "ExtensionObject",
	"DataValue", "Variant", "DiagnosticInfo",
}

// String returns the name of the built-in type, as used in xml element names.
func (t VariantType) String() string {
	if int(t) < len(variantTypeNames) {
		return variantTypeNames[t]
	}
	return "Unknown"
}

// IsValid returns true for the built-in types.
func (t VariantType) IsValid() bool {
	return t > VariantTypeNull && t <= VariantTypeDiagnosticInfo
}

func variantTypeByName(name string) (VariantType, bool) {
	for i, n := range variantTypeNames {
		if n == name && i > 0 {
			return VariantType(i), true
		}
	}
	return VariantTypeNull, false
}

var variantTypeOfElem = map[reflect.Type]VariantType{
	reflect.TypeOf(false):                  VariantTypeBoolean,
	reflect.TypeOf(int8(0)):                VariantTypeSByte,
	reflect.TypeOf(uint8(0)):               VariantTypeByte,
	reflect.TypeOf(int16(0)):               VariantTypeInt16,
	reflect.TypeOf(uint16(0)):              VariantTypeUInt16,
	reflect.TypeOf(int32(0)):               VariantTypeInt32,
	reflect.TypeOf(uint32(0)):              VariantTypeUInt32,
	reflect.TypeOf(int64(0)):               VariantTypeInt64,
	reflect.TypeOf(uint64(0)):              VariantTypeUInt64,
	reflect.TypeOf(float32(0)):             VariantTypeFloat,
	reflect.TypeOf(float64(0)):             VariantTypeDouble,
	reflect.TypeOf(""):                     VariantTypeString,
	reflect.TypeOf(time.Time{}):            VariantTypeDateTime,
	reflect.TypeOf(uuid.UUID{}):            VariantTypeGUID,
	reflect.TypeOf(ByteString("")):         VariantTypeByteString,
	reflect.TypeOf(XMLElement("")):         VariantTypeXMLElement,
	reflect.TypeOf(NodeID{}):               VariantTypeNodeID,
	reflect.TypeOf(ExpandedNodeID{}):       VariantTypeExpandedNodeID,
	reflect.TypeOf(StatusCode(0)):          VariantTypeStatusCode,
	reflect.TypeOf(QualifiedName{}):        VariantTypeQualifiedName,
	reflect.TypeOf(LocalizedText{}):        VariantTypeLocalizedText,
	reflect.TypeOf(ExtensionObject{}):      VariantTypeExtensionObject,
	reflect.TypeOf(DataValue{}):            VariantTypeDataValue,
	reflect.TypeOf(Variant{}):              VariantTypeVariant,
	reflect.TypeOf((*DiagnosticInfo)(nil)): VariantTypeDiagnosticInfo,
}

// Variant stores a scalar, a one-dimensional array or a Matrix of a built-in type.
type Variant struct {
	value       any
	variantType VariantType
}

// NilVariant is the nil value.
var NilVariant = Variant{}

// NewVariant returns a Variant holding the value. Scalars and slices of the
// built-in types are accepted as is; a Structure is wrapped in an ExtensionObject,
// a slice of structures in a slice of ExtensionObjects.
func NewVariant(value any) Variant {
	switch v := value.(type) {
	case nil:
		return NilVariant
	case Variant:
		return v
	case Matrix:
		return Variant{v, v.ElementType()}
	case Structure:
		return Variant{NewExtensionObject(v), VariantTypeExtensionObject}
	}
	typ := reflect.TypeOf(value)
	if t, ok := variantTypeOfElem[typ]; ok {
		return Variant{value, t}
	}
	if typ.Kind() == reflect.Slice {
		if t, ok := variantTypeOfElem[typ.Elem()]; ok {
			return Variant{value, t}
		}
		if typ.Elem().Implements(structureType) {
			rv := reflect.ValueOf(value)
			if rv.IsNil() {
				return Variant{[]ExtensionObject(nil), VariantTypeExtensionObject}
			}
			list := make([]ExtensionObject, rv.Len())
			for i := range list {
				s, _ := rv.Index(i).Interface().(Structure)
				list[i] = NewExtensionObject(s)
			}
			return Variant{list, VariantTypeExtensionObject}
		}
	}
	// not a built-in type; encoding fails.
	return Variant{value, VariantTypeNull}
}

var structureType = reflect.TypeOf((*Structure)(nil)).Elem()

// Value returns the scalar, slice or Matrix.
func (v Variant) Value() any {
	return v.value
}

// Type returns the built-in type of the value, or of the array elements.
func (v Variant) Type() VariantType {
	return v.variantType
}

// IsNil returns true if the Variant holds no value.
func (v Variant) IsNil() bool {
	return v.value == nil
}

// IsArray returns true if the Variant holds a one-dimensional array.
func (v Variant) IsArray() bool {
	if v.value == nil {
		return false
	}
	if _, ok := v.value.(Matrix); ok {
		return false
	}
	return reflect.TypeOf(v.value).Kind() == reflect.Slice && v.variantType != VariantTypeNull
}

// IsMatrix returns true if the Variant holds a Matrix.
func (v Variant) IsMatrix() bool {
	_, ok := v.value.(Matrix)
	return ok
}

// ArrayDimensions returns the length of each dimension, or nil for a scalar.
func (v Variant) ArrayDimensions() []int32 {
	if m, ok := v.value.(Matrix); ok {
		return m.Dimensions()
	}
	if v.IsArray() {
		return []int32{int32(reflect.ValueOf(v.value).Len())}
	}
	return nil
}

// Equal reports whether both hold deeply equal values.
func (v Variant) Equal(other Variant) bool {
	return v.variantType == other.variantType && reflect.DeepEqual(v.value, other.value)
}

func (v Variant) validate() error {
	if v.value == nil {
		return nil
	}
	if !v.variantType.IsValid() {
		return encodingError("variant cannot hold %T", v.value)
	}
	if v.variantType == VariantTypeVariant && !v.IsArray() && !v.IsMatrix() {
		return encodingError("variant cannot hold a scalar variant")
	}
	return nil
}
