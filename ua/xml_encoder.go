// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

import (
	"encoding/base64"
	"encoding/xml"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// NamespaceXMLTypes is the xml namespace of the built-in types.
const NamespaceXMLTypes = "http://opcfoundation.org/UA/2008/02/Types.xsd"

// XMLEncoder encodes the UA XML format. Each field is an element named after the field.
type XMLEncoder struct {
	w     io.Writer
	ec    EncodingContext
	level int
	guard depthGuard
}

// NewXMLEncoder returns a new encoder that writes to an io.Writer.
func NewXMLEncoder(w io.Writer, ec EncodingContext) *XMLEncoder {
	return &XMLEncoder{w: w, ec: ec, guard: depthGuard{max: ec.Limits().MaxRecursionDepth}}
}

// Context returns the EncodingContext.
func (enc *XMLEncoder) Context() EncodingContext {
	return enc.ec
}

// Format returns EncodingFormatXML.
func (enc *XMLEncoder) Format() EncodingFormat {
	return EncodingFormatXML
}

func (enc *XMLEncoder) writeRaw(s string) error {
	if _, err := io.WriteString(enc.w, s); err != nil {
		return errors.Wrap(BadEncodingError, err.Error())
	}
	return nil
}

func (enc *XMLEncoder) writeText(s string) error {
	if err := xml.EscapeText(enc.w, []byte(s)); err != nil {
		return errors.Wrap(BadEncodingError, err.Error())
	}
	return nil
}

func (enc *XMLEncoder) start(name string) error {
	if enc.level == 0 {
		enc.level++
		return enc.writeRaw("<" + name + ` xmlns="` + NamespaceXMLTypes + `">`)
	}
	enc.level++
	return enc.writeRaw("<" + name + ">")
}

func (enc *XMLEncoder) end(name string) error {
	enc.level--
	return enc.writeRaw("</" + name + ">")
}

func (enc *XMLEncoder) element(name, text string) error {
	if err := enc.start(name); err != nil {
		return err
	}
	if err := enc.writeText(text); err != nil {
		return err
	}
	return enc.end(name)
}

// WriteBoolean writes a boolean.
func (enc *XMLEncoder) WriteBoolean(field string, value bool) error {
	return enc.element(field, strconv.FormatBool(value))
}

// WriteSByte writes a sbyte.
func (enc *XMLEncoder) WriteSByte(field string, value int8) error {
	return enc.element(field, strconv.FormatInt(int64(value), 10))
}

// WriteByte writes a byte.
func (enc *XMLEncoder) WriteByte(field string, value byte) error {
	return enc.element(field, strconv.FormatUint(uint64(value), 10))
}

// WriteInt16 writes an int16.
func (enc *XMLEncoder) WriteInt16(field string, value int16) error {
	return enc.element(field, strconv.FormatInt(int64(value), 10))
}

// WriteUInt16 writes an uint16.
func (enc *XMLEncoder) WriteUInt16(field string, value uint16) error {
	return enc.element(field, strconv.FormatUint(uint64(value), 10))
}

// WriteInt32 writes an int32.
func (enc *XMLEncoder) WriteInt32(field string, value int32) error {
	return enc.element(field, strconv.FormatInt(int64(value), 10))
}

// WriteUInt32 writes an uint32.
func (enc *XMLEncoder) WriteUInt32(field string, value uint32) error {
	return enc.element(field, strconv.FormatUint(uint64(value), 10))
}

// WriteInt64 writes an int64.
func (enc *XMLEncoder) WriteInt64(field string, value int64) error {
	return enc.element(field, strconv.FormatInt(value, 10))
}

// WriteUInt64 writes an uint64.
func (enc *XMLEncoder) WriteUInt64(field string, value uint64) error {
	return enc.element(field, strconv.FormatUint(value, 10))
}

func formatXMLFloat(v float64, bitSize int) string {
	switch {
	case math.IsInf(v, 1):
		return "INF"
	case math.IsInf(v, -1):
		return "-INF"
	case math.IsNaN(v):
		return "NaN"
	}
	return strconv.FormatFloat(v, 'g', -1, bitSize)
}

// WriteFloat writes a float.
func (enc *XMLEncoder) WriteFloat(field string, value float32) error {
	return enc.element(field, formatXMLFloat(float64(value), 32))
}

// WriteDouble writes a double.
func (enc *XMLEncoder) WriteDouble(field string, value float64) error {
	return enc.element(field, formatXMLFloat(value, 64))
}

// WriteString writes a string.
func (enc *XMLEncoder) WriteString(field string, value string) error {
	return enc.element(field, value)
}

// WriteDateTime writes a date/time in UTC.
func (enc *XMLEncoder) WriteDateTime(field string, value time.Time) error {
	return enc.element(field, value.UTC().Format(time.RFC3339Nano))
}

// WriteGUID writes a UUID
func (enc *XMLEncoder) WriteGUID(field string, value uuid.UUID) error {
	if err := enc.start(field); err != nil {
		return err
	}
	if err := enc.element("String", value.String()); err != nil {
		return err
	}
	return enc.end(field)
}

// WriteByteString writes a ByteString in base64.
func (enc *XMLEncoder) WriteByteString(field string, value ByteString) error {
	return enc.element(field, base64.StdEncoding.EncodeToString([]byte(value)))
}

// WriteXMLElement writes the xml fragment as the content of the element.
func (enc *XMLEncoder) WriteXMLElement(field string, value XMLElement) error {
	if err := enc.start(field); err != nil {
		return err
	}
	if err := enc.writeRaw(value.String()); err != nil {
		return err
	}
	return enc.end(field)
}

func (enc *XMLEncoder) writeIdentifier(field, id string) error {
	if err := enc.start(field); err != nil {
		return err
	}
	if err := enc.element("Identifier", id); err != nil {
		return err
	}
	return enc.end(field)
}

// WriteNodeID writes a NodeID
func (enc *XMLEncoder) WriteNodeID(field string, value NodeID) error {
	return enc.writeIdentifier(field, value.String())
}

// WriteExpandedNodeID writes an ExpandedNodeID
func (enc *XMLEncoder) WriteExpandedNodeID(field string, value ExpandedNodeID) error {
	return enc.writeIdentifier(field, value.String())
}

// WriteStatusCode writes a StatusCode
func (enc *XMLEncoder) WriteStatusCode(field string, value StatusCode) error {
	if err := enc.start(field); err != nil {
		return err
	}
	if err := enc.WriteUInt32("Code", uint32(value)); err != nil {
		return err
	}
	return enc.end(field)
}

// WriteQualifiedName writes a QualifiedName
func (enc *XMLEncoder) WriteQualifiedName(field string, value QualifiedName) error {
	if err := enc.start(field); err != nil {
		return err
	}
	if err := enc.WriteUInt16("NamespaceIndex", value.NamespaceIndex); err != nil {
		return err
	}
	if err := enc.WriteString("Name", value.Name); err != nil {
		return err
	}
	return enc.end(field)
}

// WriteLocalizedText writes a LocalizedText
func (enc *XMLEncoder) WriteLocalizedText(field string, value LocalizedText) error {
	if err := enc.start(field); err != nil {
		return err
	}
	if value.Locale != "" {
		if err := enc.WriteString("Locale", value.Locale); err != nil {
			return err
		}
	}
	if value.Text != "" {
		if err := enc.WriteString("Text", value.Text); err != nil {
			return err
		}
	}
	return enc.end(field)
}

// WriteExtensionObject writes an ExtensionObject as a TypeId element holding the
// xml encoding id, followed by a Body element.
func (enc *XMLEncoder) WriteExtensionObject(field string, value ExtensionObject) error {
	if value.IsNull() {
		if err := enc.start(field); err != nil {
			return err
		}
		return enc.end(field)
	}
	if value.value == nil && value.hasBody && value.format == EncodingFormatJSON {
		decoded, err := value.Decode(enc.ec)
		if err != nil {
			return err
		}
		if decoded.value == nil {
			return encodingError("cannot write json body of %s in xml", value.encodingID)
		}
		value = decoded
	}
	if err := enc.start(field); err != nil {
		return err
	}
	if value.value == nil {
		id, err := wireNodeID(enc.ec, value.encodingID)
		if err != nil {
			return err
		}
		if err := enc.WriteNodeID("TypeId", id); err != nil {
			return err
		}
		if value.hasBody {
			if err := enc.start("Body"); err != nil {
				return err
			}
			if value.format == EncodingFormatXML {
				if err := enc.writeRaw(string(value.body)); err != nil {
					return err
				}
			} else if err := enc.WriteByteString("ByteString", value.body); err != nil {
				return err
			}
			if err := enc.end("Body"); err != nil {
				return err
			}
		}
		return enc.end(field)
	}
	codec, err := codecFor(enc.ec, value.value)
	if err != nil {
		return err
	}
	encodingID := codec.IDs().XML
	if encodingID.IsNil() {
		return encodingError("%s has no xml encoding", codec.Name())
	}
	id, err := wireNodeID(enc.ec, encodingID)
	if err != nil {
		return err
	}
	if err := enc.WriteNodeID("TypeId", id); err != nil {
		return err
	}
	if err := enc.start("Body"); err != nil {
		return err
	}
	if err := enc.WriteStruct(codec.Name(), value.value, codec); err != nil {
		return err
	}
	if err := enc.end("Body"); err != nil {
		return err
	}
	return enc.end(field)
}

// WriteDataValue writes a DataValue, omitting fields with default values.
func (enc *XMLEncoder) WriteDataValue(field string, value DataValue) error {
	if err := enc.start(field); err != nil {
		return err
	}
	if err := writeDataValueFields(enc, value); err != nil {
		return err
	}
	return enc.end(field)
}

// WriteVariant writes a Variant as a Value element holding one element named after
// the built-in type, a ListOf element, or a Matrix element.
func (enc *XMLEncoder) WriteVariant(field string, value Variant) error {
	if err := value.validate(); err != nil {
		return err
	}
	if err := enc.start(field); err != nil {
		return err
	}
	if !value.IsNil() {
		if err := enc.guard.enter(); err != nil {
			return err
		}
		defer enc.guard.leave()
		if err := enc.start("Value"); err != nil {
			return err
		}
		t := value.Type()
		switch {
		case value.IsMatrix():
			if err := enc.WriteMatrix("Matrix", value.value.(Matrix)); err != nil {
				return err
			}
		case value.IsArray():
			if err := writeBuiltinArray(enc, "ListOf"+t.String(), t, value.value); err != nil {
				return err
			}
		default:
			if err := writeBuiltin(enc, t.String(), t, value.value); err != nil {
				return err
			}
		}
		if err := enc.end("Value"); err != nil {
			return err
		}
	}
	return enc.end(field)
}

// WriteDiagnosticInfo writes a DiagnosticInfo, omitting absent fields.
func (enc *XMLEncoder) WriteDiagnosticInfo(field string, value *DiagnosticInfo) error {
	if err := enc.start(field); err != nil {
		return err
	}
	if value != nil {
		if err := enc.guard.enter(); err != nil {
			return err
		}
		defer enc.guard.leave()
		if err := writeDiagnosticInfoFields(enc, value); err != nil {
			return err
		}
	}
	return enc.end(field)
}

// WriteEnum writes an enumeration as Name_Value.
func (enc *XMLEncoder) WriteEnum(field string, value Enumeration) error {
	return enc.element(field, value.String()+"_"+strconv.FormatInt(int64(value.EnumValue()), 10))
}

// WriteStruct writes the structure as an element holding the fields.
func (enc *XMLEncoder) WriteStruct(field string, value any, codec Codec) error {
	if field == "" {
		field = codec.Name()
	}
	if err := enc.guard.enter(); err != nil {
		return err
	}
	defer enc.guard.leave()
	if err := enc.start(field); err != nil {
		return err
	}
	if err := codec.Encode(enc.ec, enc, value); err != nil {
		return err
	}
	return enc.end(field)
}

// WriteEncodingMask writes the mask of optional fields that are present.
func (enc *XMLEncoder) WriteEncodingMask(mask uint32) error {
	return enc.WriteUInt32("EncodingMask", mask)
}

// WriteSwitchField writes the index of the union member.
func (enc *XMLEncoder) WriteSwitchField(value uint32) error {
	return enc.WriteUInt32("SwitchField", value)
}

// WriteMatrix writes a Dimensions element and an Elements element.
func (enc *XMLEncoder) WriteMatrix(field string, value Matrix) error {
	if value.Elements() == nil {
		return nil
	}
	if err := enc.start(field); err != nil {
		return err
	}
	if err := WriteArray(enc, "Dimensions", value.Dimensions(), Encoder.WriteInt32); err != nil {
		return err
	}
	if err := enc.start("Elements"); err != nil {
		return err
	}
	if err := writeMatrixElements(enc, value); err != nil {
		return err
	}
	if err := enc.end("Elements"); err != nil {
		return err
	}
	return enc.end(field)
}

// WriteArrayStart starts the element holding the items.
func (enc *XMLEncoder) WriteArrayStart(field string, _ int) error {
	return enc.start(field)
}

// WriteArrayEnd ends the element holding the items.
func (enc *XMLEncoder) WriteArrayEnd(field string) error {
	return enc.end(field)
}

// WriteNullArray omits the element.
func (enc *XMLEncoder) WriteNullArray(_ string) error {
	return nil
}
