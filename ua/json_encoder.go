// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"math"
	"reflect"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type jsonScope struct {
	array bool
	count int
}

// JSONEncoder encodes the UA JSON format. The reversible form can be decoded again;
// the non-reversible form is meant for consumers that know nothing of the type system.
type JSONEncoder struct {
	w          io.Writer
	ec         EncodingContext
	reversible bool
	scopes     []jsonScope
	guard      depthGuard
}

// NewJSONEncoder returns a new encoder that writes the reversible form to an io.Writer.
func NewJSONEncoder(w io.Writer, ec EncodingContext) *JSONEncoder {
	return newJSONEncoder(w, ec, true)
}

// NewNonReversibleJSONEncoder returns a new encoder that writes the non-reversible form to an io.Writer.
func NewNonReversibleJSONEncoder(w io.Writer, ec EncodingContext) *JSONEncoder {
	return newJSONEncoder(w, ec, false)
}

func newJSONEncoder(w io.Writer, ec EncodingContext, reversible bool) *JSONEncoder {
	return &JSONEncoder{
		w:          w,
		ec:         ec,
		reversible: reversible,
		scopes:     []jsonScope{{array: true}},
		guard:      depthGuard{max: ec.Limits().MaxRecursionDepth},
	}
}

// Context returns the EncodingContext.
func (enc *JSONEncoder) Context() EncodingContext {
	return enc.ec
}

// Format returns EncodingFormatJSON.
func (enc *JSONEncoder) Format() EncodingFormat {
	return EncodingFormatJSON
}

// Reversible returns true if the encoder writes the reversible form.
func (enc *JSONEncoder) Reversible() bool {
	return enc.reversible
}

func (enc *JSONEncoder) writeRaw(s string) error {
	if _, err := io.WriteString(enc.w, s); err != nil {
		return errors.Wrap(BadEncodingError, err.Error())
	}
	return nil
}

func (enc *JSONEncoder) inArray() bool {
	return enc.scopes[len(enc.scopes)-1].array
}

// key writes the separator and, inside an object, the field name.
func (enc *JSONEncoder) key(field string) error {
	s := &enc.scopes[len(enc.scopes)-1]
	if s.array && len(enc.scopes) == 1 && s.count > 0 {
		return encodingError("json document already holds a value")
	}
	var prefix string
	if s.count > 0 {
		prefix = ","
	}
	s.count++
	if s.array {
		return enc.writeRaw(prefix)
	}
	return enc.writeRaw(prefix + quoteJSON(field) + ":")
}

func (enc *JSONEncoder) open(field string, array bool) error {
	if err := enc.key(field); err != nil {
		return err
	}
	enc.scopes = append(enc.scopes, jsonScope{array: array})
	if array {
		return enc.writeRaw("[")
	}
	return enc.writeRaw("{")
}

func (enc *JSONEncoder) close() error {
	s := enc.scopes[len(enc.scopes)-1]
	enc.scopes = enc.scopes[:len(enc.scopes)-1]
	if s.array {
		return enc.writeRaw("]")
	}
	return enc.writeRaw("}")
}

func (enc *JSONEncoder) value(field, raw string) error {
	if err := enc.key(field); err != nil {
		return err
	}
	return enc.writeRaw(raw)
}

// null writes null inside an array and omits the field inside an object.
func (enc *JSONEncoder) null(field string) error {
	if enc.inArray() {
		return enc.value(field, "null")
	}
	return nil
}

func quoteJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// WriteBoolean writes a boolean.
func (enc *JSONEncoder) WriteBoolean(field string, value bool) error {
	return enc.value(field, strconv.FormatBool(value))
}

// WriteSByte writes a sbyte.
func (enc *JSONEncoder) WriteSByte(field string, value int8) error {
	return enc.value(field, strconv.FormatInt(int64(value), 10))
}

// WriteByte writes a byte.
func (enc *JSONEncoder) WriteByte(field string, value byte) error {
	return enc.value(field, strconv.FormatUint(uint64(value), 10))
}

// WriteInt16 writes an int16.
func (enc *JSONEncoder) WriteInt16(field string, value int16) error {
	return enc.value(field, strconv.FormatInt(int64(value), 10))
}

// WriteUInt16 writes an uint16.
func (enc *JSONEncoder) WriteUInt16(field string, value uint16) error {
	return enc.value(field, strconv.FormatUint(uint64(value), 10))
}

// WriteInt32 writes an int32.
func (enc *JSONEncoder) WriteInt32(field string, value int32) error {
	return enc.value(field, strconv.FormatInt(int64(value), 10))
}

// WriteUInt32 writes an uint32.
func (enc *JSONEncoder) WriteUInt32(field string, value uint32) error {
	return enc.value(field, strconv.FormatUint(uint64(value), 10))
}

// WriteInt64 writes an int64 as a string.
func (enc *JSONEncoder) WriteInt64(field string, value int64) error {
	return enc.value(field, `"`+strconv.FormatInt(value, 10)+`"`)
}

// WriteUInt64 writes an uint64 as a string.
func (enc *JSONEncoder) WriteUInt64(field string, value uint64) error {
	return enc.value(field, `"`+strconv.FormatUint(value, 10)+`"`)
}

func formatJSONFloat(v float64, bitSize int) string {
	switch {
	case math.IsInf(v, 1):
		return `"Infinity"`
	case math.IsInf(v, -1):
		return `"-Infinity"`
	case math.IsNaN(v):
		return `"NaN"`
	}
	return strconv.FormatFloat(v, 'g', -1, bitSize)
}

// WriteFloat writes a float.
func (enc *JSONEncoder) WriteFloat(field string, value float32) error {
	return enc.value(field, formatJSONFloat(float64(value), 32))
}

// WriteDouble writes a double.
func (enc *JSONEncoder) WriteDouble(field string, value float64) error {
	return enc.value(field, formatJSONFloat(value, 64))
}

// WriteString writes a string.
func (enc *JSONEncoder) WriteString(field string, value string) error {
	return enc.value(field, quoteJSON(value))
}

// WriteDateTime writes a date/time in UTC.
func (enc *JSONEncoder) WriteDateTime(field string, value time.Time) error {
	return enc.value(field, `"`+value.UTC().Format(time.RFC3339Nano)+`"`)
}

// WriteGUID writes a UUID
func (enc *JSONEncoder) WriteGUID(field string, value uuid.UUID) error {
	return enc.value(field, `"`+value.String()+`"`)
}

// WriteByteString writes a ByteString in base64.
func (enc *JSONEncoder) WriteByteString(field string, value ByteString) error {
	return enc.value(field, `"`+base64.StdEncoding.EncodeToString([]byte(value))+`"`)
}

// WriteXMLElement writes the xml fragment as a string.
func (enc *JSONEncoder) WriteXMLElement(field string, value XMLElement) error {
	return enc.value(field, quoteJSON(string(value)))
}

// writeNamespace writes an index as a number, or as the uri in the non-reversible form.
func (enc *JSONEncoder) writeNamespace(field string, ns uint16) error {
	if ns == 0 {
		return nil
	}
	if !enc.reversible && ns > 1 {
		if uri, ok := enc.ec.Namespaces().URI(ns); ok {
			return enc.WriteString(field, uri)
		}
	}
	return enc.WriteUInt16(field, ns)
}

func (enc *JSONEncoder) writeNodeIDFields(value NodeID) error {
	switch value.idType {
	case IDTypeNumeric:
		if err := enc.WriteUInt32("Id", value.nid); err != nil {
			return err
		}
	case IDTypeString:
		if err := enc.WriteUInt32("IdType", 1); err != nil {
			return err
		}
		if err := enc.WriteString("Id", value.sid); err != nil {
			return err
		}
	case IDTypeGUID:
		if err := enc.WriteUInt32("IdType", 2); err != nil {
			return err
		}
		if err := enc.WriteGUID("Id", value.gid); err != nil {
			return err
		}
	case IDTypeOpaque:
		if err := enc.WriteUInt32("IdType", 3); err != nil {
			return err
		}
		if err := enc.WriteByteString("Id", value.bid); err != nil {
			return err
		}
	}
	return nil
}

// WriteNodeID writes a NodeID as an object holding IdType, Id and Namespace.
func (enc *JSONEncoder) WriteNodeID(field string, value NodeID) error {
	if err := enc.open(field, false); err != nil {
		return err
	}
	if err := enc.writeNodeIDFields(value); err != nil {
		return err
	}
	if err := enc.writeNamespace("Namespace", value.namespaceIndex); err != nil {
		return err
	}
	return enc.close()
}

// WriteExpandedNodeID writes an ExpandedNodeID as an object holding IdType, Id, Namespace and ServerUri.
func (enc *JSONEncoder) WriteExpandedNodeID(field string, value ExpandedNodeID) error {
	if err := enc.open(field, false); err != nil {
		return err
	}
	if err := enc.writeNodeIDFields(value.nodeID); err != nil {
		return err
	}
	if value.namespaceURI != "" {
		if err := enc.WriteString("Namespace", value.namespaceURI); err != nil {
			return err
		}
	} else if err := enc.writeNamespace("Namespace", value.nodeID.namespaceIndex); err != nil {
		return err
	}
	if value.serverIndex != 0 {
		if err := enc.WriteUInt32("ServerUri", value.serverIndex); err != nil {
			return err
		}
	}
	return enc.close()
}

// WriteStatusCode writes a StatusCode as a number, or as an object holding
// Code and Symbol in the non-reversible form.
func (enc *JSONEncoder) WriteStatusCode(field string, value StatusCode) error {
	if enc.reversible {
		return enc.WriteUInt32(field, uint32(value))
	}
	if err := enc.open(field, false); err != nil {
		return err
	}
	if err := enc.WriteUInt32("Code", uint32(value)); err != nil {
		return err
	}
	if err := enc.WriteString("Symbol", value.Symbol()); err != nil {
		return err
	}
	return enc.close()
}

// WriteQualifiedName writes a QualifiedName
func (enc *JSONEncoder) WriteQualifiedName(field string, value QualifiedName) error {
	if err := enc.open(field, false); err != nil {
		return err
	}
	if err := enc.WriteString("Name", value.Name); err != nil {
		return err
	}
	if err := enc.writeNamespace("Uri", value.NamespaceIndex); err != nil {
		return err
	}
	return enc.close()
}

// WriteLocalizedText writes a LocalizedText, or only the text in the non-reversible form.
func (enc *JSONEncoder) WriteLocalizedText(field string, value LocalizedText) error {
	if !enc.reversible {
		return enc.WriteString(field, value.Text)
	}
	if err := enc.open(field, false); err != nil {
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
	return enc.close()
}

// WriteExtensionObject writes an ExtensionObject as an object holding TypeId,
// Encoding and Body. The non-reversible form writes the Body only.
func (enc *JSONEncoder) WriteExtensionObject(field string, value ExtensionObject) error {
	if value.IsNull() {
		return enc.null(field)
	}
	if value.value == nil {
		if !enc.reversible && value.hasBody && value.format == EncodingFormatJSON {
			return enc.value(field, string(value.body))
		}
		id, err := wireNodeID(enc.ec, value.encodingID)
		if err != nil {
			return err
		}
		if err := enc.open(field, false); err != nil {
			return err
		}
		if err := enc.WriteNodeID("TypeId", id); err != nil {
			return err
		}
		if value.hasBody {
			switch value.format {
			case EncodingFormatBinary:
				if err := enc.WriteByte("Encoding", 1); err != nil {
					return err
				}
				if err := enc.WriteByteString("Body", value.body); err != nil {
					return err
				}
			case EncodingFormatXML:
				if err := enc.WriteByte("Encoding", 2); err != nil {
					return err
				}
				if err := enc.WriteString("Body", string(value.body)); err != nil {
					return err
				}
			default:
				if err := enc.value("Body", string(value.body)); err != nil {
					return err
				}
			}
		}
		return enc.close()
	}
	codec, err := codecFor(enc.ec, value.value)
	if err != nil {
		return err
	}
	if !enc.reversible {
		return enc.WriteStruct(field, value.value, codec)
	}
	encodingID := codec.IDs().JSON
	if encodingID.IsNil() {
		return encodingError("%s has no json encoding", codec.Name())
	}
	id, err := wireNodeID(enc.ec, encodingID)
	if err != nil {
		return err
	}
	if err := enc.open(field, false); err != nil {
		return err
	}
	if err := enc.WriteNodeID("TypeId", id); err != nil {
		return err
	}
	if err := enc.WriteStruct("Body", value.value, codec); err != nil {
		return err
	}
	return enc.close()
}

// WriteDataValue writes a DataValue, omitting fields with default values.
func (enc *JSONEncoder) WriteDataValue(field string, value DataValue) error {
	if err := enc.open(field, false); err != nil {
		return err
	}
	if err := writeDataValueFields(enc, value); err != nil {
		return err
	}
	return enc.close()
}

// WriteVariant writes a Variant as an object holding Type, Body and Dimensions.
// The non-reversible form writes the Body only, with a matrix as nested arrays.
func (enc *JSONEncoder) WriteVariant(field string, value Variant) error {
	if err := value.validate(); err != nil {
		return err
	}
	if value.IsNil() {
		return enc.null(field)
	}
	if err := enc.guard.enter(); err != nil {
		return err
	}
	defer enc.guard.leave()
	t := value.Type()
	if !enc.reversible {
		switch {
		case value.IsMatrix():
			return enc.writeNested(field, value.value.(Matrix))
		case value.IsArray():
			return writeBuiltinArray(enc, field, t, value.value)
		default:
			return writeBuiltin(enc, field, t, value.value)
		}
	}
	if err := enc.open(field, false); err != nil {
		return err
	}
	if err := enc.WriteByte("Type", byte(t)); err != nil {
		return err
	}
	switch {
	case value.IsMatrix():
		m := value.value.(Matrix)
		if err := enc.open("Body", true); err != nil {
			return err
		}
		if err := writeMatrixElements(enc, m); err != nil {
			return err
		}
		if err := enc.close(); err != nil {
			return err
		}
		if err := WriteArray(enc, "Dimensions", m.Dimensions(), Encoder.WriteInt32); err != nil {
			return err
		}
	case value.IsArray():
		if err := writeBuiltinArray(enc, "Body", t, value.value); err != nil {
			return err
		}
	default:
		if err := writeBuiltin(enc, "Body", t, value.value); err != nil {
			return err
		}
	}
	return enc.close()
}

// writeNested writes the elements of a matrix as nested arrays.
func (enc *JSONEncoder) writeNested(field string, m Matrix) error {
	b, ok := builtinFor(m.ElementType())
	if !ok {
		return encodingError("matrix has unknown element type %d", m.ElementType())
	}
	dims := m.Dimensions()
	flat := reflect.ValueOf(m.Elements())
	var walk func(field string, level, offset int) error
	walk = func(field string, level, offset int) error {
		if err := enc.open(field, true); err != nil {
			return err
		}
		stride := 1
		for _, d := range dims[level+1:] {
			stride *= int(d)
		}
		for i := 0; i < int(dims[level]); i++ {
			if level == len(dims)-1 {
				if err := b.write(enc, "", flat.Index(offset+i).Interface()); err != nil {
					return err
				}
				continue
			}
			if err := walk("", level+1, offset+i*stride); err != nil {
				return err
			}
		}
		return enc.close()
	}
	return walk(field, 0, 0)
}

// WriteDiagnosticInfo writes a DiagnosticInfo, omitting absent fields.
func (enc *JSONEncoder) WriteDiagnosticInfo(field string, value *DiagnosticInfo) error {
	if value == nil {
		return enc.null(field)
	}
	if err := enc.guard.enter(); err != nil {
		return err
	}
	defer enc.guard.leave()
	if err := enc.open(field, false); err != nil {
		return err
	}
	if err := writeDiagnosticInfoFields(enc, value); err != nil {
		return err
	}
	return enc.close()
}

// WriteEnum writes an enumeration as a number, or as Name_Value in the non-reversible form.
func (enc *JSONEncoder) WriteEnum(field string, value Enumeration) error {
	if enc.reversible {
		return enc.WriteInt32(field, value.EnumValue())
	}
	return enc.WriteString(field, value.String()+"_"+strconv.FormatInt(int64(value.EnumValue()), 10))
}

// WriteStruct writes the structure as an object holding the fields.
func (enc *JSONEncoder) WriteStruct(field string, value any, codec Codec) error {
	if err := enc.guard.enter(); err != nil {
		return err
	}
	defer enc.guard.leave()
	if err := enc.open(field, false); err != nil {
		return err
	}
	if err := codec.Encode(enc.ec, enc, value); err != nil {
		return err
	}
	return enc.close()
}

// WriteEncodingMask writes nothing; absent optional fields are omitted.
func (enc *JSONEncoder) WriteEncodingMask(_ uint32) error {
	return nil
}

// WriteSwitchField writes the index of the union member. The non-reversible form omits it.
func (enc *JSONEncoder) WriteSwitchField(value uint32) error {
	if !enc.reversible {
		return nil
	}
	return enc.WriteUInt32("SwitchField", value)
}

// WriteMatrix writes an object holding Dimensions and Array, or nested arrays in
// the non-reversible form.
func (enc *JSONEncoder) WriteMatrix(field string, value Matrix) error {
	if value.Elements() == nil {
		return enc.null(field)
	}
	if !enc.reversible {
		return enc.writeNested(field, value)
	}
	if err := enc.open(field, false); err != nil {
		return err
	}
	if err := WriteArray(enc, "Dimensions", value.Dimensions(), Encoder.WriteInt32); err != nil {
		return err
	}
	if err := enc.open("Array", true); err != nil {
		return err
	}
	if err := writeMatrixElements(enc, value); err != nil {
		return err
	}
	if err := enc.close(); err != nil {
		return err
	}
	return enc.close()
}

// WriteArrayStart opens an array.
func (enc *JSONEncoder) WriteArrayStart(field string, _ int) error {
	return enc.open(field, true)
}

// WriteArrayEnd closes the array.
func (enc *JSONEncoder) WriteArrayEnd(_ string) error {
	return enc.close()
}

// WriteNullArray omits the field.
func (enc *JSONEncoder) WriteNullArray(field string) error {
	return enc.null(field)
}
