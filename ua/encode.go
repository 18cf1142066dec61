// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

import (
	"io"
)

// NewEncoder returns an encoder for the format. JSON is written in the reversible form.
func NewEncoder(w io.Writer, ec EncodingContext, format EncodingFormat) (Encoder, error) {
	switch format {
	case EncodingFormatBinary:
		return NewBinaryEncoder(w, ec), nil
	case EncodingFormatXML:
		return NewXMLEncoder(w, ec), nil
	case EncodingFormatJSON:
		return NewJSONEncoder(w, ec), nil
	}
	return nil, encodingError("unknown encoding format %d", format)
}

// NewDecoder returns a decoder for the format. The XML and JSON decoders read the whole document.
func NewDecoder(r io.Reader, ec EncodingContext, format EncodingFormat) (Decoder, error) {
	switch format {
	case EncodingFormatBinary:
		return NewBinaryDecoder(r, ec), nil
	case EncodingFormatXML:
		return NewXMLDecoder(r, ec)
	case EncodingFormatJSON:
		return NewJSONDecoder(r, ec)
	}
	return nil, decodingError("unknown encoding format %d", format)
}

// Encode writes the structure with the codec registered for its data type.
func Encode(ec EncodingContext, format EncodingFormat, w io.Writer, value Structure) error {
	codec, err := codecFor(ec, value)
	if err != nil {
		return err
	}
	enc, err := NewEncoder(w, ec, format)
	if err != nil {
		return err
	}
	return enc.WriteStruct("", value, codec)
}

// Decode reads a structure with the codec.
func Decode(ec EncodingContext, format EncodingFormat, r io.Reader, codec Codec) (any, error) {
	dec, err := NewDecoder(r, ec, format)
	if err != nil {
		return nil, err
	}
	return dec.ReadStruct("", codec)
}

// EncodeExtensionObject writes the ExtensionObject, preceded by its encoding id.
func EncodeExtensionObject(ec EncodingContext, format EncodingFormat, w io.Writer, value ExtensionObject) error {
	enc, err := NewEncoder(w, ec, format)
	if err != nil {
		return err
	}
	return enc.WriteExtensionObject("ExtensionObject", value)
}

// DecodeExtensionObject reads an ExtensionObject. A body with no codec registered
// for the format is kept encoded.
func DecodeExtensionObject(ec EncodingContext, format EncodingFormat, r io.Reader) (ExtensionObject, error) {
	dec, err := NewDecoder(r, ec, format)
	if err != nil {
		return NilExtensionObject, err
	}
	var v ExtensionObject
	if err := dec.ReadExtensionObject("", &v); err != nil {
		return NilExtensionObject, err
	}
	return v, nil
}
