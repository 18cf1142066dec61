// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

import (
	"math"
	"reflect"
)

// builtinCodec reads and writes one built-in type, or arrays of it, given as any.
type builtinCodec struct {
	elemType   reflect.Type
	write      func(Encoder, string, any) error
	read       func(Decoder, string) (any, error)
	writeArray func(Encoder, string, any) error
	readArray  func(Decoder, string) (any, error)
}

var builtins [VariantTypeDiagnosticInfo + 1]builtinCodec

func init() {
	builtins[VariantTypeBoolean] = newBuiltinCodec(Encoder.WriteBoolean, Decoder.ReadBoolean)
	builtins[VariantTypeSByte] = newBuiltinCodec(Encoder.WriteSByte, Decoder.ReadSByte)
	builtins[VariantTypeByte] = newBuiltinCodec(Encoder.WriteByte, Decoder.ReadByte)
	builtins[VariantTypeInt16] = newBuiltinCodec(Encoder.WriteInt16, Decoder.ReadInt16)
	builtins[VariantTypeUInt16] = newBuiltinCodec(Encoder.WriteUInt16, Decoder.ReadUInt16)
	builtins[VariantTypeInt32] = newBuiltinCodec(Encoder.WriteInt32, Decoder.ReadInt32)
	builtins[VariantTypeUInt32] = newBuiltinCodec(Encoder.WriteUInt32, Decoder.ReadUInt32)
	builtins[VariantTypeInt64] = newBuiltinCodec(Encoder.WriteInt64, Decoder.ReadInt64)
	builtins[VariantTypeUInt64] = newBuiltinCodec(Encoder.WriteUInt64, Decoder.ReadUInt64)
	builtins[VariantTypeFloat] = newBuiltinCodec(Encoder.WriteFloat, Decoder.ReadFloat)
	builtins[VariantTypeDouble] = newBuiltinCodec(Encoder.WriteDouble, Decoder.ReadDouble)
	builtins[VariantTypeString] = newBuiltinCodec(Encoder.WriteString, Decoder.ReadString)
	builtins[VariantTypeDateTime] = newBuiltinCodec(Encoder.WriteDateTime, Decoder.ReadDateTime)
	builtins[VariantTypeGUID] = newBuiltinCodec(Encoder.WriteGUID, Decoder.ReadGUID)
	builtins[VariantTypeByteString] = newBuiltinCodec(Encoder.WriteByteString, Decoder.ReadByteString)
	builtins[VariantTypeXMLElement] = newBuiltinCodec(Encoder.WriteXMLElement, Decoder.ReadXMLElement)
	builtins[VariantTypeNodeID] = newBuiltinCodec(Encoder.WriteNodeID, Decoder.ReadNodeID)
	builtins[VariantTypeExpandedNodeID] = newBuiltinCodec(Encoder.WriteExpandedNodeID, Decoder.ReadExpandedNodeID)
	builtins[VariantTypeStatusCode] = newBuiltinCodec(Encoder.WriteStatusCode, Decoder.ReadStatusCode)
	builtins[VariantTypeQualifiedName] = newBuiltinCodec(Encoder.WriteQualifiedName, Decoder.ReadQualifiedName)
	builtins[VariantTypeLocalizedText] = newBuiltinCodec(Encoder.WriteLocalizedText, Decoder.ReadLocalizedText)
	builtins[VariantTypeExtensionObject] = newBuiltinCodec(Encoder.WriteExtensionObject, Decoder.ReadExtensionObject)
	builtins[VariantTypeDataValue] = newBuiltinCodec(Encoder.WriteDataValue, Decoder.ReadDataValue)
	builtins[VariantTypeVariant] = newBuiltinCodec(Encoder.WriteVariant, Decoder.ReadVariant)
	builtins[VariantTypeDiagnosticInfo] = newBuiltinCodec(Encoder.WriteDiagnosticInfo, Decoder.ReadDiagnosticInfo)
}

func newBuiltinCodec[T any](write func(Encoder, string, T) error, read func(Decoder, string, *T) error) builtinCodec {
	return builtinCodec{
		elemType: reflect.TypeOf((*T)(nil)).Elem(),
		write: func(enc Encoder, field string, value any) error {
			v, ok := value.(T)
			if !ok {
				return encodingError("expected %T, found %T", *new(T), value)
			}
			return write(enc, field, v)
		},
		read: func(dec Decoder, field string) (any, error) {
			var v T
			if err := read(dec, field, &v); err != nil {
				return nil, err
			}
			return v, nil
		},
		writeArray: func(enc Encoder, field string, value any) error {
			v, ok := value.([]T)
			if !ok {
				return encodingError("expected %T, found %T", []T(nil), value)
			}
			return WriteArray(enc, field, v, write)
		},
		readArray: func(dec Decoder, field string) (any, error) {
			var v []T
			if err := ReadArray(dec, field, &v, read); err != nil {
				return nil, err
			}
			return v, nil
		},
	}
}

func builtinFor(t VariantType) (*builtinCodec, bool) {
	if !t.IsValid() {
		return nil, false
	}
	return &builtins[t], true
}

// writeBuiltin writes a scalar of the built-in type.
func writeBuiltin(enc Encoder, field string, t VariantType, value any) error {
	b, ok := builtinFor(t)
	if !ok {
		return encodingError("unknown built-in type %d", t)
	}
	return b.write(enc, field, value)
}

// readBuiltin reads a scalar of the built-in type.
func readBuiltin(dec Decoder, field string, t VariantType) (any, error) {
	b, ok := builtinFor(t)
	if !ok {
		return nil, decodingError("unknown built-in type %d", t)
	}
	return b.read(dec, field)
}

// writeBuiltinArray writes a slice of the built-in type.
func writeBuiltinArray(enc Encoder, field string, t VariantType, value any) error {
	b, ok := builtinFor(t)
	if !ok {
		return encodingError("unknown built-in type %d", t)
	}
	return b.writeArray(enc, field, value)
}

// readBuiltinArray reads a slice of the built-in type.
func readBuiltinArray(dec Decoder, field string, t VariantType) (any, error) {
	b, ok := builtinFor(t)
	if !ok {
		return nil, decodingError("unknown built-in type %d", t)
	}
	return b.readArray(dec, field)
}

// writeMatrixElements writes the flat elements of a matrix one by one, without a length.
func writeMatrixElements(enc Encoder, m Matrix) error {
	b, ok := builtinFor(m.ElementType())
	if !ok {
		return encodingError("matrix has unknown element type %d", m.ElementType())
	}
	rv := reflect.ValueOf(m.Elements())
	name := m.ElementType().String()
	for i := 0; i < rv.Len(); i++ {
		if err := b.write(enc, name, rv.Index(i).Interface()); err != nil {
			return err
		}
	}
	return nil
}

// readMatrixElements reads n elements of the built-in type into a new slice.
func readMatrixElements(dec Decoder, t VariantType, n int) (any, error) {
	b, ok := builtinFor(t)
	if !ok {
		return nil, decodingError("matrix has unknown element type %d", t)
	}
	out := reflect.MakeSlice(reflect.SliceOf(b.elemType), n, n)
	name := t.String()
	for i := 0; i < n; i++ {
		v, err := b.read(dec, name)
		if err != nil {
			return nil, err
		}
		out.Index(i).Set(reflect.ValueOf(v))
	}
	return out.Interface(), nil
}

// matrixLength returns the product of the dimensions, or an error if one is negative
// or the product exceeds the limit.
func matrixLength(dims []int32, limit int) (int, error) {
	n := int64(1)
	for _, d := range dims {
		if d < 0 {
			return 0, decodingError("matrix dimension %d is negative", d)
		}
		n *= int64(d)
		if n > math.MaxInt32 {
			return 0, limitsExceeded("matrix length exceeds %d", math.MaxInt32)
		}
		if limit > 0 && n > int64(limit) {
			return 0, limitsExceeded("matrix length exceeds %d", limit)
		}
	}
	return int(n), nil
}
