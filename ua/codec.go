// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

import (
	"reflect"
)

// Structure is implemented by structured values that can travel in an ExtensionObject.
type Structure interface {
	// TypeID returns the id of the data type.
	TypeID() ExpandedNodeID
}

// DataTypeIDs are the identifiers of a structured data type and its three encodings.
type DataTypeIDs struct {
	DataType ExpandedNodeID
	Binary   ExpandedNodeID
	XML      ExpandedNodeID
	JSON     ExpandedNodeID
}

// EncodingID returns the encoding id for the format.
func (ids DataTypeIDs) EncodingID(format EncodingFormat) ExpandedNodeID {
	switch format {
	case EncodingFormatBinary:
		return ids.Binary
	case EncodingFormatXML:
		return ids.XML
	case EncodingFormatJSON:
		return ids.JSON
	}
	return NilExpandedNodeID
}

// Codec encodes and decodes one structured data type in every format.
type Codec interface {
	// Name returns the browse name of the data type, used as the xml element name.
	Name() string
	IDs() DataTypeIDs
	// Type returns the go type of decoded values.
	Type() reflect.Type
	Definition() *StructureDefinition
	Encode(ec EncodingContext, enc Encoder, value any) error
	Decode(ec EncodingContext, dec Decoder) (any, error)
}

// DataTypeCodec is a Codec bound to the go type T.
type DataTypeCodec[T any] struct {
	name   string
	ids    DataTypeIDs
	def    *StructureDefinition
	encode func(EncodingContext, Encoder, T) error
	decode func(EncodingContext, Decoder) (T, error)
}

// NewDataTypeCodec returns a codec that delegates to the encode and decode funcs.
func NewDataTypeCodec[T any](name string, ids DataTypeIDs, def *StructureDefinition,
	encode func(EncodingContext, Encoder, T) error,
	decode func(EncodingContext, Decoder) (T, error)) *DataTypeCodec[T] {
	return &DataTypeCodec[T]{name, ids, def, encode, decode}
}

// Name returns the browse name of the data type.
func (c *DataTypeCodec[T]) Name() string { return c.name }

// IDs returns the data type and encoding ids.
func (c *DataTypeCodec[T]) IDs() DataTypeIDs { return c.ids }

// Type returns the go type T.
func (c *DataTypeCodec[T]) Type() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }

// Definition returns the structure definition, or nil.
func (c *DataTypeCodec[T]) Definition() *StructureDefinition { return c.def }

// EncodeType writes the value.
func (c *DataTypeCodec[T]) EncodeType(ec EncodingContext, enc Encoder, value T) error {
	return c.encode(ec, enc, value)
}

// DecodeType reads a value. On error the zero value is returned.
func (c *DataTypeCodec[T]) DecodeType(ec EncodingContext, dec Decoder) (T, error) {
	v, err := c.decode(ec, dec)
	if err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// Encode writes a value of type T or *T.
func (c *DataTypeCodec[T]) Encode(ec EncodingContext, enc Encoder, value any) error {
	switch v := value.(type) {
	case T:
		return c.encode(ec, enc, v)
	case *T:
		if v == nil {
			return encodingError("%s codec cannot encode nil", c.name)
		}
		return c.encode(ec, enc, *v)
	}
	return encodingError("%s codec cannot encode %T", c.name, value)
}

// Decode reads a value of type T.
func (c *DataTypeCodec[T]) Decode(ec EncodingContext, dec Decoder) (any, error) {
	v, err := c.decode(ec, dec)
	if err != nil {
		return nil, err
	}
	return v, nil
}
