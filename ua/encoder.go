// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// EncodingFormat is one of the wire formats.
type EncodingFormat int

// EncodingFormats
const (
	EncodingFormatBinary EncodingFormat = iota
	EncodingFormatXML
	EncodingFormatJSON
)

func (f EncodingFormat) String() string {
	switch f {
	case EncodingFormatBinary:
		return "binary"
	case EncodingFormatXML:
		return "xml"
	case EncodingFormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseEncodingFormat returns the format named "binary", "xml" or "json".
func ParseEncodingFormat(s string) (EncodingFormat, error) {
	switch strings.ToLower(s) {
	case "binary", "bin", "uabinary":
		return EncodingFormatBinary, nil
	case "xml":
		return EncodingFormatXML, nil
	case "json":
		return EncodingFormatJSON, nil
	}
	return 0, errors.Wrapf(BadDataEncodingUnsupported, "unknown encoding format %q", s)
}

// Enumeration is implemented by enumerated data types.
type Enumeration interface {
	EnumValue() int32
	String() string
}

// Encoder writes values in one of the wire formats. Field names are used by
// the XML and JSON formats and ignored by the binary format.
type Encoder interface {
	Context() EncodingContext
	Format() EncodingFormat

	WriteBoolean(field string, value bool) error
	WriteSByte(field string, value int8) error
	WriteByte(field string, value byte) error
	WriteInt16(field string, value int16) error
	WriteUInt16(field string, value uint16) error
	WriteInt32(field string, value int32) error
	WriteUInt32(field string, value uint32) error
	WriteInt64(field string, value int64) error
	WriteUInt64(field string, value uint64) error
	WriteFloat(field string, value float32) error
	WriteDouble(field string, value float64) error
	WriteString(field string, value string) error
	WriteDateTime(field string, value time.Time) error
	WriteGUID(field string, value uuid.UUID) error
	WriteByteString(field string, value ByteString) error
	WriteXMLElement(field string, value XMLElement) error
	WriteNodeID(field string, value NodeID) error
	WriteExpandedNodeID(field string, value ExpandedNodeID) error
	WriteStatusCode(field string, value StatusCode) error
	WriteQualifiedName(field string, value QualifiedName) error
	WriteLocalizedText(field string, value LocalizedText) error
	WriteExtensionObject(field string, value ExtensionObject) error
	WriteDataValue(field string, value DataValue) error
	WriteVariant(field string, value Variant) error
	WriteDiagnosticInfo(field string, value *DiagnosticInfo) error

	WriteEnum(field string, value Enumeration) error
	WriteStruct(field string, value any, codec Codec) error
	WriteEncodingMask(mask uint32) error
	WriteSwitchField(value uint32) error
	WriteMatrix(field string, value Matrix) error

	WriteArrayStart(field string, length int) error
	WriteArrayEnd(field string) error
	WriteNullArray(field string) error
}

// Decoder reads values in one of the wire formats. A failed read leaves the value unchanged.
type Decoder interface {
	Context() EncodingContext
	Format() EncodingFormat

	ReadBoolean(field string, value *bool) error
	ReadSByte(field string, value *int8) error
	ReadByte(field string, value *byte) error
	ReadInt16(field string, value *int16) error
	ReadUInt16(field string, value *uint16) error
	ReadInt32(field string, value *int32) error
	ReadUInt32(field string, value *uint32) error
	ReadInt64(field string, value *int64) error
	ReadUInt64(field string, value *uint64) error
	ReadFloat(field string, value *float32) error
	ReadDouble(field string, value *float64) error
	ReadString(field string, value *string) error
	ReadDateTime(field string, value *time.Time) error
	ReadGUID(field string, value *uuid.UUID) error
	ReadByteString(field string, value *ByteString) error
	ReadXMLElement(field string, value *XMLElement) error
	ReadNodeID(field string, value *NodeID) error
	ReadExpandedNodeID(field string, value *ExpandedNodeID) error
	ReadStatusCode(field string, value *StatusCode) error
	ReadQualifiedName(field string, value *QualifiedName) error
	ReadLocalizedText(field string, value *LocalizedText) error
	ReadExtensionObject(field string, value *ExtensionObject) error
	ReadDataValue(field string, value *DataValue) error
	ReadVariant(field string, value *Variant) error
	ReadDiagnosticInfo(field string, value **DiagnosticInfo) error

	ReadEnum(field string, value *int32) error
	ReadStruct(field string, codec Codec) (any, error)
	// ReadEncodingMask returns the presence mask of a structure with optional fields.
	ReadEncodingMask(optionalFields []string) (uint32, error)
	// ReadSwitchField returns the 1-based index of the union member, or 0 for none.
	ReadSwitchField(fieldNames []string) (uint32, error)
	ReadMatrix(field string, elementType VariantType, value *Matrix) error

	// ReadArrayStart returns the number of elements, or -1 for a null array.
	ReadArrayStart(field string) (int, error)
	ReadArrayEnd(field string) error
}

// depthGuard counts nesting of structures, variants and diagnostics.
type depthGuard struct {
	depth int
	max   int
}

func (g *depthGuard) enter() error {
	limit := g.max
	if limit <= 0 {
		limit = defaultMaxRecursionDepth
	}
	g.depth++
	if g.depth > limit {
		g.depth--
		return limitsExceeded("nesting depth exceeds %d", limit)
	}
	return nil
}

func (g *depthGuard) leave() {
	g.depth--
}
