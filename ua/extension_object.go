// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

import (
	"bytes"
	"reflect"
)

// ExtensionObject carries a structure whose type is only known at runtime.
// It is either null, a decoded Structure, or a body that no registered codec
// could decode, kept as bytes with the encoding id it arrived with.
type ExtensionObject struct {
	value      Structure
	encodingID ExpandedNodeID
	format     EncodingFormat
	body       ByteString
	hasBody    bool
}

// NilExtensionObject is the nil value.
var NilExtensionObject = ExtensionObject{}

// NewExtensionObject returns an ExtensionObject holding the structure.
func NewExtensionObject(value Structure) ExtensionObject {
	if value == nil {
		return ExtensionObject{}
	}
	return ExtensionObject{value: value}
}

// NewEncodedExtensionObject returns an ExtensionObject holding an encoded body.
func NewEncodedExtensionObject(encodingID ExpandedNodeID, format EncodingFormat, body ByteString) ExtensionObject {
	return ExtensionObject{encodingID: encodingID, format: format, body: body, hasBody: true}
}

func newEmptyExtensionObject(encodingID ExpandedNodeID) ExtensionObject {
	return ExtensionObject{encodingID: encodingID}
}

// IsNull returns true if the ExtensionObject carries nothing.
func (e ExtensionObject) IsNull() bool {
	return e.value == nil && e.encodingID.IsNil() && !e.hasBody
}

// IsEncoded returns true if the body could not be decoded and is kept as bytes.
func (e ExtensionObject) IsEncoded() bool {
	return e.value == nil && !e.IsNull()
}

// Value returns the decoded structure, or nil.
func (e ExtensionObject) Value() Structure {
	return e.value
}

// EncodingID returns the encoding id of an encoded body.
func (e ExtensionObject) EncodingID() ExpandedNodeID {
	return e.encodingID
}

// Body returns the format and bytes of an encoded body.
func (e ExtensionObject) Body() (EncodingFormat, ByteString) {
	return e.format, e.body
}

// Equal reports whether both hold equal structures or identical encoded bodies.
func (e ExtensionObject) Equal(other ExtensionObject) bool {
	if e.value != nil || other.value != nil {
		return reflect.DeepEqual(e.value, other.value)
	}
	return e.encodingID == other.encodingID && e.hasBody == other.hasBody &&
		(!e.hasBody || (e.format == other.format && e.body == other.body))
}

// Decode returns the ExtensionObject with an encoded body decoded by the
// registered codec. If no codec is registered the ExtensionObject is returned as is.
func (e ExtensionObject) Decode(ec EncodingContext) (ExtensionObject, error) {
	if !e.IsEncoded() || !e.hasBody {
		return e, nil
	}
	codec, format, ok := resolveEncodingID(ec, e.encodingID)
	if !ok || format != e.format {
		return e, nil
	}
	v, err := decodeBody(ec, format, e.body, codec)
	if err != nil {
		return NilExtensionObject, err
	}
	return NewExtensionObject(v), nil
}

// decodeBody decodes a body held as bytes.
func decodeBody(ec EncodingContext, format EncodingFormat, body ByteString, codec Codec) (Structure, error) {
	var dec Decoder
	switch format {
	case EncodingFormatBinary:
		dec = NewBinaryDecoder(bytes.NewReader([]byte(body)), ec)
	case EncodingFormatXML:
		d, err := NewXMLDecoder(bytes.NewReader([]byte(body)), ec)
		if err != nil {
			return nil, err
		}
		dec = d
	case EncodingFormatJSON:
		d, err := NewJSONDecoder(bytes.NewReader([]byte(body)), ec)
		if err != nil {
			return nil, err
		}
		dec = d
	default:
		return nil, decodingError("unknown body format %d", format)
	}
	v, err := dec.ReadStruct("", codec)
	if err != nil {
		return nil, err
	}
	s, ok := v.(Structure)
	if !ok {
		return nil, decodingError("%s codec returned %T, which is not a Structure", codec.Name(), v)
	}
	return s, nil
}

// StructureAs returns the structure held by the ExtensionObject as type T.
func StructureAs[T any](e ExtensionObject) (T, bool) {
	switch v := any(e.value).(type) {
	case T:
		return v, true
	case *T:
		if v != nil {
			return *v, true
		}
	}
	var zero T
	return zero, false
}
