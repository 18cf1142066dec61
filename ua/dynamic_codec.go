// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

import (
	"reflect"

	"github.com/pkg/errors"
)

// DynamicStructure is a value of a structured data type known only by its
// StructureDefinition. Fields maps field names to values; absent optional fields
// and unselected union fields have no entry.
type DynamicStructure struct {
	DataType ExpandedNodeID
	Fields   map[string]any
}

// NewDynamicStructure returns an empty structure of the data type.
func NewDynamicStructure(dataType ExpandedNodeID) *DynamicStructure {
	return &DynamicStructure{DataType: dataType, Fields: map[string]any{}}
}

// TypeID returns the id of the data type.
func (s DynamicStructure) TypeID() ExpandedNodeID {
	return s.DataType
}

var dynamicStructureType = reflect.TypeOf((*DynamicStructure)(nil))

// DynamicCodec encodes *DynamicStructure values as described by a StructureDefinition.
// Field values are the go types of the built-in types, slices of them for arrays,
// Matrix for fixed rank arrays, int32 for enumerations, and the decoded values of
// the codec registered for a structured data type.
type DynamicCodec struct {
	name     string
	ids      DataTypeIDs
	def      *StructureDefinition
	optional []string
	names    []string
}

// NewDynamicCodec returns a codec for the definition. If the ids have no binary
// encoding id the definition's DefaultEncodingID is used.
func NewDynamicCodec(name string, ids DataTypeIDs, def *StructureDefinition) (*DynamicCodec, error) {
	if def == nil {
		return nil, errors.Wrapf(BadInvalidArgument, "%s has no structure definition", name)
	}
	if err := def.Validate(); err != nil {
		return nil, errors.Wrapf(err, "%s", name)
	}
	for _, f := range def.Fields {
		if f.ValueRank < ValueRankOneOrMoreDimensions {
			if f.ValueRank != ValueRankScalar {
				return nil, errors.Wrapf(BadInvalidArgument, "%s.%s has value rank %d, which cannot be encoded in a structure", name, f.Name, f.ValueRank)
			}
		}
	}
	if ids.Binary.IsNil() && !def.DefaultEncodingID.IsNil() {
		ids.Binary = NewExpandedNodeID(def.DefaultEncodingID)
	}
	return &DynamicCodec{
		name:     name,
		ids:      ids,
		def:      def,
		optional: def.OptionalFields(),
		names:    def.FieldNames(),
	}, nil
}

// Name returns the browse name of the data type.
func (c *DynamicCodec) Name() string { return c.name }

// IDs returns the data type and encoding ids.
func (c *DynamicCodec) IDs() DataTypeIDs { return c.ids }

// Type returns the type *DynamicStructure.
func (c *DynamicCodec) Type() reflect.Type { return dynamicStructureType }

// Definition returns the structure definition.
func (c *DynamicCodec) Definition() *StructureDefinition { return c.def }

type fieldKind int

const (
	fieldBuiltin fieldKind = iota
	fieldStruct
	fieldEnum
)

// fieldType is the resolved encoding of a field's data type.
type fieldType struct {
	kind    fieldKind
	builtin VariantType
	codec   Codec
	enum    *EnumDefinition
}

func (c *DynamicCodec) resolveField(ec EncodingContext, f StructureField) (fieldType, error) {
	if t, ok := builtinDataTypes[f.DataType]; ok {
		return fieldType{kind: fieldBuiltin, builtin: t}, nil
	}
	if f.DataType == DataTypeIDEnumeration {
		return fieldType{kind: fieldEnum}, nil
	}
	if r := ec.Registry(); r != nil {
		ids := []ExpandedNodeID{f.DataType.ToExpandedNodeID(ec.Namespaces()), NewExpandedNodeID(f.DataType)}
		for _, id := range ids {
			if r.IsAbstract(id) {
				return fieldType{kind: fieldBuiltin, builtin: VariantTypeExtensionObject}, nil
			}
			if codec, ok := r.ResolveDataType(id); ok {
				if c.def.StructureType == StructureTypeStructureWithSubtypedValues || c.def.StructureType == StructureTypeUnionWithSubtypedValues {
					return fieldType{kind: fieldBuiltin, builtin: VariantTypeExtensionObject}, nil
				}
				return fieldType{kind: fieldStruct, codec: codec}, nil
			}
			if def, ok := r.ResolveEnum(id); ok {
				return fieldType{kind: fieldEnum, enum: def}, nil
			}
		}
	}
	return fieldType{}, errors.Wrapf(BadDataTypeIDUnknown, "%s.%s has unknown data type %s", c.name, f.Name, f.DataType)
}

func dynamicStructureOf(name string, value any) (*DynamicStructure, error) {
	switch v := value.(type) {
	case *DynamicStructure:
		if v != nil {
			return v, nil
		}
	case DynamicStructure:
		return &v, nil
	}
	return nil, encodingError("%s codec cannot encode %T", name, value)
}

// present returns the value of the field, if it is set to a non-nil value.
func present(s *DynamicStructure, name string) (any, bool) {
	v, ok := s.Fields[name]
	return v, ok && v != nil
}

// Encode writes a *DynamicStructure.
func (c *DynamicCodec) Encode(ec EncodingContext, enc Encoder, value any) error {
	s, err := dynamicStructureOf(c.name, value)
	if err != nil {
		return err
	}
	if c.def.StructureType.IsUnion() {
		selected := -1
		for i, f := range c.def.Fields {
			if _, ok := present(s, f.Name); ok {
				if selected >= 0 {
					return encodingError("%s union has more than one field set", c.name)
				}
				selected = i
			}
		}
		if err := enc.WriteSwitchField(uint32(selected + 1)); err != nil {
			return err
		}
		if selected < 0 {
			return nil
		}
		f := c.def.Fields[selected]
		return c.writeField(ec, enc, f, s.Fields[f.Name])
	}
	if c.def.StructureType == StructureTypeStructureWithOptionalFields {
		var mask uint32
		for i, name := range c.optional {
			if _, ok := present(s, name); ok {
				mask |= 1 << uint(i)
			}
		}
		if err := enc.WriteEncodingMask(mask); err != nil {
			return err
		}
	}
	for _, f := range c.def.Fields {
		v, ok := present(s, f.Name)
		if !ok {
			if f.IsOptional {
				continue
			}
			if _, set := s.Fields[f.Name]; !set {
				return encodingError("%s is missing field %s", c.name, f.Name)
			}
		}
		if err := c.writeField(ec, enc, f, v); err != nil {
			return err
		}
	}
	return nil
}

func (c *DynamicCodec) checkString(f StructureField, value any) error {
	if f.MaxStringLength == 0 {
		return nil
	}
	var n int
	switch v := value.(type) {
	case string:
		n = len(v)
	case ByteString:
		n = len(v)
	case []string:
		for _, s := range v {
			if err := c.checkString(f, s); err != nil {
				return err
			}
		}
		return nil
	}
	if n > int(f.MaxStringLength) {
		return encodingError("%s.%s length %d exceeds %d", c.name, f.Name, n, f.MaxStringLength)
	}
	return nil
}

// writeField writes one field. A nil value is written as the null of the field's type.
func (c *DynamicCodec) writeField(ec EncodingContext, enc Encoder, f StructureField, value any) error {
	ft, err := c.resolveField(ec, f)
	if err != nil {
		return errors.Wrap(BadEncodingError, err.Error())
	}
	switch {
	case f.ValueRank == ValueRankScalar:
		return c.writeScalar(enc, f, ft, value)
	case f.ValueRank > ValueRankOneDimension:
		m, ok := value.(Matrix)
		if !ok {
			if value == nil {
				return enc.WriteMatrix(f.Name, Matrix{})
			}
			return encodingError("%s.%s expects a Matrix, found %T", c.name, f.Name, value)
		}
		if ft.kind != fieldBuiltin || m.ElementType() != ft.builtin {
			return encodingError("%s.%s expects a Matrix of %s", c.name, f.Name, f.DataType)
		}
		if len(m.Dimensions()) != int(f.ValueRank) {
			return encodingError("%s.%s expects %d dimensions, found %d", c.name, f.Name, f.ValueRank, len(m.Dimensions()))
		}
		if err := c.checkString(f, m.Elements()); err != nil {
			return err
		}
		return enc.WriteMatrix(f.Name, m)
	default:
		return c.writeArray(enc, f, ft, value)
	}
}

func (c *DynamicCodec) writeScalar(enc Encoder, f StructureField, ft fieldType, value any) error {
	switch ft.kind {
	case fieldStruct:
		return enc.WriteStruct(f.Name, value, ft.codec)
	case fieldEnum:
		e, err := enumOf(ft.enum, value)
		if err != nil {
			return errors.Wrapf(err, "%s.%s", c.name, f.Name)
		}
		return enc.WriteEnum(f.Name, e)
	}
	switch ft.builtin {
	case VariantTypeExtensionObject:
		if s, ok := value.(Structure); ok {
			value = NewExtensionObject(s)
		} else if value == nil {
			value = NilExtensionObject
		}
	case VariantTypeVariant:
		if _, ok := value.(Variant); !ok {
			value = NewVariant(value)
		}
	case VariantTypeDiagnosticInfo:
		if value == nil {
			value = (*DiagnosticInfo)(nil)
		}
	}
	if err := c.checkString(f, value); err != nil {
		return err
	}
	return writeBuiltin(enc, f.Name, ft.builtin, value)
}

func (c *DynamicCodec) writeArray(enc Encoder, f StructureField, ft fieldType, value any) error {
	switch ft.kind {
	case fieldBuiltin:
		if value == nil {
			return enc.WriteNullArray(f.Name)
		}
		if err := c.checkString(f, value); err != nil {
			return err
		}
		return writeBuiltinArray(enc, f.Name, ft.builtin, value)
	case fieldEnum:
		values, ok := value.([]int32)
		if !ok && value != nil {
			return encodingError("%s.%s expects []int32, found %T", c.name, f.Name, value)
		}
		return WriteArray(enc, f.Name, values, func(enc Encoder, name string, v int32) error {
			return enc.WriteEnum(name, enumValue{v, ft.enum})
		})
	}
	rv := reflect.ValueOf(value)
	if value == nil || (rv.Kind() == reflect.Slice && rv.IsNil()) {
		return enc.WriteNullArray(f.Name)
	}
	if rv.Kind() != reflect.Slice {
		return encodingError("%s.%s expects a slice, found %T", c.name, f.Name, value)
	}
	if err := enc.WriteArrayStart(f.Name, rv.Len()); err != nil {
		return err
	}
	for i := 0; i < rv.Len(); i++ {
		if err := enc.WriteStruct(ft.codec.Name(), rv.Index(i).Interface(), ft.codec); err != nil {
			return err
		}
	}
	return enc.WriteArrayEnd(f.Name)
}

func enumOf(def *EnumDefinition, value any) (Enumeration, error) {
	switch v := value.(type) {
	case int32:
		return enumValue{v, def}, nil
	case Enumeration:
		return v, nil
	case nil:
		return enumValue{0, def}, nil
	}
	return nil, encodingError("expected int32 enumeration, found %T", value)
}

// Decode reads a *DynamicStructure.
func (c *DynamicCodec) Decode(ec EncodingContext, dec Decoder) (any, error) {
	s := NewDynamicStructure(c.ids.DataType)
	if c.def.StructureType.IsUnion() {
		sw, err := dec.ReadSwitchField(c.names)
		if err != nil {
			return nil, err
		}
		if sw == 0 {
			return s, nil
		}
		if int(sw) > len(c.def.Fields) {
			return nil, decodingError("%s switch field %d exceeds %d fields", c.name, sw, len(c.def.Fields))
		}
		f := c.def.Fields[sw-1]
		v, err := c.readField(ec, dec, f)
		if err != nil {
			return nil, err
		}
		s.Fields[f.Name] = v
		return s, nil
	}
	var mask uint32
	if c.def.StructureType == StructureTypeStructureWithOptionalFields {
		var err error
		if mask, err = dec.ReadEncodingMask(c.optional); err != nil {
			return nil, err
		}
	}
	bit := 0
	for _, f := range c.def.Fields {
		if f.IsOptional {
			set := mask&(1<<uint(bit)) != 0
			bit++
			if !set {
				continue
			}
		}
		v, err := c.readField(ec, dec, f)
		if err != nil {
			return nil, err
		}
		s.Fields[f.Name] = v
	}
	return s, nil
}

func (c *DynamicCodec) readField(ec EncodingContext, dec Decoder, f StructureField) (any, error) {
	ft, err := c.resolveField(ec, f)
	if err != nil {
		return nil, errors.Wrap(BadDecodingError, err.Error())
	}
	var v any
	switch {
	case f.ValueRank == ValueRankScalar:
		v, err = c.readScalar(dec, f, ft)
	case f.ValueRank > ValueRankOneDimension:
		if ft.kind != fieldBuiltin {
			return nil, decodingError("%s.%s is a matrix of %s, which is not a built-in type", c.name, f.Name, f.DataType)
		}
		var m Matrix
		if err := dec.ReadMatrix(f.Name, ft.builtin, &m); err != nil {
			return nil, err
		}
		if m.Elements() != nil && len(m.Dimensions()) != int(f.ValueRank) {
			return nil, decodingError("%s.%s expects %d dimensions, found %d", c.name, f.Name, f.ValueRank, len(m.Dimensions()))
		}
		v = m
	default:
		v, err = c.readArray(dec, f, ft)
	}
	if err != nil {
		return nil, err
	}
	if err := c.checkString(f, v); err != nil {
		return nil, errors.Wrap(BadDecodingError, err.Error())
	}
	return v, nil
}

func (c *DynamicCodec) readScalar(dec Decoder, f StructureField, ft fieldType) (any, error) {
	switch ft.kind {
	case fieldStruct:
		return dec.ReadStruct(f.Name, ft.codec)
	case fieldEnum:
		var v int32
		err := dec.ReadEnum(f.Name, &v)
		return v, err
	}
	return readBuiltin(dec, f.Name, ft.builtin)
}

func (c *DynamicCodec) readArray(dec Decoder, f StructureField, ft fieldType) (any, error) {
	switch ft.kind {
	case fieldBuiltin:
		return readBuiltinArray(dec, f.Name, ft.builtin)
	case fieldEnum:
		var v []int32
		err := ReadEnumArray(dec, f.Name, &v)
		return v, err
	}
	n, err := dec.ReadArrayStart(f.Name)
	if err != nil {
		return nil, err
	}
	typ := reflect.SliceOf(ft.codec.Type())
	if n < 0 {
		return reflect.Zero(typ).Interface(), nil
	}
	out := reflect.MakeSlice(typ, n, n)
	for i := 0; i < n; i++ {
		v, err := dec.ReadStruct(ft.codec.Name(), ft.codec)
		if err != nil {
			return nil, err
		}
		rv := reflect.ValueOf(v)
		if !rv.IsValid() || !rv.Type().AssignableTo(ft.codec.Type()) {
			return nil, decodingError("%s codec returned %T", ft.codec.Name(), v)
		}
		out.Index(i).Set(rv)
	}
	if err := dec.ReadArrayEnd(f.Name); err != nil {
		return nil, err
	}
	return out.Interface(), nil
}
