// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

import (
	"reflect"

	"github.com/pkg/errors"
)

// elementName returns the xml element name of an array item of type T.
func elementName[T any]() string {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if t, ok := variantTypeOfElem[typ]; ok {
		return t.String()
	}
	return typ.Name()
}

// WriteArray writes a nil slice as a null array, otherwise the length followed by each element.
//
//	err := WriteArray(enc, "Results", v.Results, Encoder.WriteStatusCode)
func WriteArray[T any](enc Encoder, field string, values []T, write func(Encoder, string, T) error) error {
	if values == nil {
		return enc.WriteNullArray(field)
	}
	if err := enc.WriteArrayStart(field, len(values)); err != nil {
		return err
	}
	name := elementName[T]()
	for i := range values {
		if err := write(enc, name, values[i]); err != nil {
			return err
		}
	}
	return enc.WriteArrayEnd(field)
}

// ReadArray reads a null array as a nil slice, and an empty array as an empty slice.
func ReadArray[T any](dec Decoder, field string, values *[]T, read func(Decoder, string, *T) error) error {
	n, err := dec.ReadArrayStart(field)
	if err != nil {
		return err
	}
	if n < 0 {
		*values = nil
		return nil
	}
	name := elementName[T]()
	out := make([]T, n)
	for i := range out {
		if err := read(dec, name, &out[i]); err != nil {
			return err
		}
	}
	if err := dec.ReadArrayEnd(field); err != nil {
		return err
	}
	*values = out
	return nil
}

// WriteStructArray writes an array of structures with the codec.
func WriteStructArray[T any](enc Encoder, field string, values []T, codec Codec) error {
	if values == nil {
		return enc.WriteNullArray(field)
	}
	if err := enc.WriteArrayStart(field, len(values)); err != nil {
		return err
	}
	for i := range values {
		if err := enc.WriteStruct(codec.Name(), values[i], codec); err != nil {
			return err
		}
	}
	return enc.WriteArrayEnd(field)
}

// ReadStructArray reads an array of structures with the codec.
func ReadStructArray[T any](dec Decoder, field string, codec Codec, values *[]T) error {
	n, err := dec.ReadArrayStart(field)
	if err != nil {
		return err
	}
	if n < 0 {
		*values = nil
		return nil
	}
	out := make([]T, n)
	for i := range out {
		if err := ReadStructAs(dec, codec.Name(), codec, &out[i]); err != nil {
			return err
		}
	}
	if err := dec.ReadArrayEnd(field); err != nil {
		return err
	}
	*values = out
	return nil
}

// ReadStructAs reads a structure with the codec into a value of type T.
func ReadStructAs[T any](dec Decoder, field string, codec Codec, value *T) error {
	v, err := dec.ReadStruct(field, codec)
	if err != nil {
		return err
	}
	t, ok := v.(T)
	if !ok {
		return errors.Wrapf(BadDecodingError, "%s codec returned %T, not %T", codec.Name(), v, *value)
	}
	*value = t
	return nil
}

// enumeration is an Enumeration backed by int32.
type enumeration interface {
	~int32
	Enumeration
}

// ReadEnumAs reads an enumerated value.
func ReadEnumAs[E ~int32](dec Decoder, field string, value *E) error {
	var v int32
	if err := dec.ReadEnum(field, &v); err != nil {
		return err
	}
	*value = E(v)
	return nil
}

// WriteEnumArray writes an array of enumerated values.
func WriteEnumArray[E enumeration](enc Encoder, field string, values []E) error {
	return WriteArray(enc, field, values, func(enc Encoder, name string, v E) error {
		return enc.WriteEnum(name, v)
	})
}

// ReadEnumArray reads an array of enumerated values.
func ReadEnumArray[E ~int32](dec Decoder, field string, values *[]E) error {
	return ReadArray(dec, field, values, ReadEnumAs[E])
}
