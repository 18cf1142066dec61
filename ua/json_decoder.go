// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type jsonDecoderScope struct {
	object map[string]json.RawMessage
	array  []json.RawMessage
	next   int
}

// JSONDecoder decodes the reversible UA JSON format. Objects are unmarshaled one
// level at a time, as they are entered.
type JSONDecoder struct {
	ec     EncodingContext
	limits EncodingLimits
	scopes []*jsonDecoderScope
	guard  depthGuard
}

// NewJSONDecoder returns a new decoder that reads the whole document from an io.Reader.
func NewJSONDecoder(r io.Reader, ec EncodingContext) (*JSONDecoder, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(BadDecodingError, err.Error())
	}
	if !json.Valid(data) {
		return nil, decodingError("invalid json document")
	}
	limits := ec.Limits()
	return &JSONDecoder{
		ec:     ec,
		limits: limits,
		scopes: []*jsonDecoderScope{{array: []json.RawMessage{data}}},
		guard:  depthGuard{max: limits.MaxRecursionDepth},
	}, nil
}

// Context returns the EncodingContext.
func (dec *JSONDecoder) Context() EncodingContext {
	return dec.ec
}

// Format returns EncodingFormatJSON.
func (dec *JSONDecoder) Format() EncodingFormat {
	return EncodingFormatJSON
}

func (dec *JSONDecoder) scope() *jsonDecoderScope {
	return dec.scopes[len(dec.scopes)-1]
}

func (dec *JSONDecoder) pop() {
	dec.scopes = dec.scopes[:len(dec.scopes)-1]
}

func isJSONNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// value returns the next item of an array, or the member named field. Null counts as absent.
func (dec *JSONDecoder) value(field string) (json.RawMessage, bool) {
	s := dec.scope()
	var raw json.RawMessage
	if s.object == nil {
		if s.next >= len(s.array) {
			return nil, false
		}
		raw = s.array[s.next]
		s.next++
	} else {
		raw = s.object[field]
	}
	raw = bytes.TrimSpace(raw)
	if isJSONNull(raw) {
		return nil, false
	}
	return raw, true
}

func (dec *JSONDecoder) hasField(name string) bool {
	s := dec.scope()
	if s.object == nil {
		return false
	}
	raw, ok := s.object[name]
	return ok && !isJSONNull(bytes.TrimSpace(raw))
}

func (dec *JSONDecoder) pushObject(raw json.RawMessage) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return decodingError("expected json object, found %.32s", raw)
	}
	if obj == nil {
		obj = map[string]json.RawMessage{}
	}
	dec.scopes = append(dec.scopes, &jsonDecoderScope{object: obj})
	return nil
}

func (dec *JSONDecoder) pushArray(raw json.RawMessage) (int, error) {
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err != nil {
		return 0, decodingError("expected json array, found %.32s", raw)
	}
	if dec.limits.MaxArrayLength > 0 && len(arr) > dec.limits.MaxArrayLength {
		return 0, limitsExceeded("array length %d exceeds %d", len(arr), dec.limits.MaxArrayLength)
	}
	dec.scopes = append(dec.scopes, &jsonDecoderScope{array: arr})
	return len(arr), nil
}

// text returns a number or the content of a string.
func (dec *JSONDecoder) text(field string) (string, bool, error) {
	raw, ok := dec.value(field)
	if !ok {
		return "", false, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false, decodingError("invalid json string in %s", field)
		}
		return s, true, nil
	}
	return string(raw), true, nil
}

func (dec *JSONDecoder) parseInt(field string, bitSize int) (int64, error) {
	s, ok, err := dec.text(field)
	if err != nil || !ok {
		return 0, err
	}
	v, err := strconv.ParseInt(s, 10, bitSize)
	if err != nil {
		return 0, decodingError("invalid integer %q in %s", s, field)
	}
	return v, nil
}

func (dec *JSONDecoder) parseUint(field string, bitSize int) (uint64, error) {
	s, ok, err := dec.text(field)
	if err != nil || !ok {
		return 0, err
	}
	v, err := strconv.ParseUint(s, 10, bitSize)
	if err != nil {
		return 0, decodingError("invalid unsigned integer %q in %s", s, field)
	}
	return v, nil
}

func (dec *JSONDecoder) parseFloat(field string, bitSize int) (float64, error) {
	s, ok, err := dec.text(field)
	if err != nil || !ok {
		return 0, err
	}
	switch s {
	case "Infinity":
		return math.Inf(1), nil
	case "-Infinity":
		return math.Inf(-1), nil
	case "NaN":
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, bitSize)
	if err != nil {
		return 0, decodingError("invalid float %q in %s", s, field)
	}
	return v, nil
}

// ReadBoolean reads a boolean.
func (dec *JSONDecoder) ReadBoolean(field string, value *bool) error {
	s, _, err := dec.text(field)
	if err != nil {
		return err
	}
	switch s {
	case "true":
		*value = true
	case "false", "":
		*value = false
	default:
		return decodingError("invalid boolean %q in %s", s, field)
	}
	return nil
}

// ReadSByte reads a sbyte.
func (dec *JSONDecoder) ReadSByte(field string, value *int8) error {
	v, err := dec.parseInt(field, 8)
	if err != nil {
		return err
	}
	*value = int8(v)
	return nil
}

// ReadByte reads a byte.
func (dec *JSONDecoder) ReadByte(field string, value *byte) error {
	v, err := dec.parseUint(field, 8)
	if err != nil {
		return err
	}
	*value = byte(v)
	return nil
}

// ReadInt16 reads a int16.
func (dec *JSONDecoder) ReadInt16(field string, value *int16) error {
	v, err := dec.parseInt(field, 16)
	if err != nil {
		return err
	}
	*value = int16(v)
	return nil
}

// ReadUInt16 reads a uint16.
func (dec *JSONDecoder) ReadUInt16(field string, value *uint16) error {
	v, err := dec.parseUint(field, 16)
	if err != nil {
		return err
	}
	*value = uint16(v)
	return nil
}

// ReadInt32 reads a int32.
func (dec *JSONDecoder) ReadInt32(field string, value *int32) error {
	v, err := dec.parseInt(field, 32)
	if err != nil {
		return err
	}
	*value = int32(v)
	return nil
}

// ReadUInt32 reads a uint32.
func (dec *JSONDecoder) ReadUInt32(field string, value *uint32) error {
	v, err := dec.parseUint(field, 32)
	if err != nil {
		return err
	}
	*value = uint32(v)
	return nil
}

// ReadInt64 reads a int64.
func (dec *JSONDecoder) ReadInt64(field string, value *int64) error {
	v, err := dec.parseInt(field, 64)
	if err != nil {
		return err
	}
	*value = v
	return nil
}

// ReadUInt64 reads a uint64.
func (dec *JSONDecoder) ReadUInt64(field string, value *uint64) error {
	v, err := dec.parseUint(field, 64)
	if err != nil {
		return err
	}
	*value = v
	return nil
}

// ReadFloat reads a float.
func (dec *JSONDecoder) ReadFloat(field string, value *float32) error {
	v, err := dec.parseFloat(field, 32)
	if err != nil {
		return err
	}
	*value = float32(v)
	return nil
}

// ReadDouble reads a double.
func (dec *JSONDecoder) ReadDouble(field string, value *float64) error {
	v, err := dec.parseFloat(field, 64)
	if err != nil {
		return err
	}
	*value = v
	return nil
}

// ReadString reads a string.
func (dec *JSONDecoder) ReadString(field string, value *string) error {
	s, _, err := dec.text(field)
	if err != nil {
		return err
	}
	if dec.limits.MaxStringLength > 0 && len(s) > dec.limits.MaxStringLength {
		return limitsExceeded("string length %d exceeds %d", len(s), dec.limits.MaxStringLength)
	}
	*value = s
	return nil
}

// ReadDateTime reads a date/time.
func (dec *JSONDecoder) ReadDateTime(field string, value *time.Time) error {
	s, _, err := dec.text(field)
	if err != nil {
		return err
	}
	if s == "" {
		*value = time.Time{}
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return decodingError("invalid date/time %q in %s", s, field)
	}
	if t.IsZero() {
		*value = time.Time{}
		return nil
	}
	*value = t.UTC()
	return nil
}

// ReadGUID reads a guid.
func (dec *JSONDecoder) ReadGUID(field string, value *uuid.UUID) error {
	s, _, err := dec.text(field)
	if err != nil {
		return err
	}
	if s == "" {
		*value = uuid.Nil
		return nil
	}
	v, err := uuid.Parse(s)
	if err != nil {
		return decodingError("invalid guid %q in %s", s, field)
	}
	*value = v
	return nil
}

// ReadByteString reads a ByteString.
func (dec *JSONDecoder) ReadByteString(field string, value *ByteString) error {
	s, _, err := dec.text(field)
	if err != nil {
		return err
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return decodingError("invalid base64 in %s", field)
	}
	if dec.limits.MaxByteStringLength > 0 && len(b) > dec.limits.MaxByteStringLength {
		return limitsExceeded("bytestring length %d exceeds %d", len(b), dec.limits.MaxByteStringLength)
	}
	*value = ByteString(b)
	return nil
}

// ReadXMLElement reads an xml fragment held as a string.
func (dec *JSONDecoder) ReadXMLElement(field string, value *XMLElement) error {
	var s string
	if err := dec.ReadString(field, &s); err != nil {
		return err
	}
	*value = XMLElement(s)
	return nil
}

// readNamespace reads an index, or a uri that is returned as is.
func (dec *JSONDecoder) readNamespace(field string) (uint16, string, error) {
	raw, ok := dec.value(field)
	if !ok {
		return 0, "", nil
	}
	if raw[0] == '"' {
		var uri string
		if err := json.Unmarshal(raw, &uri); err != nil {
			return 0, "", decodingError("invalid namespace in %s", field)
		}
		if n, err := strconv.ParseUint(uri, 10, 16); err == nil {
			return uint16(n), "", nil
		}
		return 0, uri, nil
	}
	n, err := strconv.ParseUint(string(raw), 10, 16)
	if err != nil {
		return 0, "", decodingError("invalid namespace %s in %s", raw, field)
	}
	return uint16(n), "", nil
}

func (dec *JSONDecoder) readNodeIDFields() (NodeID, error) {
	var idType uint32
	if err := dec.ReadUInt32("IdType", &idType); err != nil {
		return NilNodeID, err
	}
	switch idType {
	case 0:
		var id uint32
		if err := dec.ReadUInt32("Id", &id); err != nil {
			return NilNodeID, err
		}
		return NewNodeIDNumeric(0, id), nil
	case 1:
		var id string
		if err := dec.ReadString("Id", &id); err != nil {
			return NilNodeID, err
		}
		return NewNodeIDString(0, id), nil
	case 2:
		var id uuid.UUID
		if err := dec.ReadGUID("Id", &id); err != nil {
			return NilNodeID, err
		}
		return NewNodeIDGUID(0, id), nil
	case 3:
		var id ByteString
		if err := dec.ReadByteString("Id", &id); err != nil {
			return NilNodeID, err
		}
		return NewNodeIDOpaque(0, id), nil
	}
	return NilNodeID, decodingError("invalid IdType %d", idType)
}

// ReadNodeID reads a NodeID.
func (dec *JSONDecoder) ReadNodeID(field string, value *NodeID) error {
	raw, ok := dec.value(field)
	if !ok {
		*value = NilNodeID
		return nil
	}
	if err := dec.pushObject(raw); err != nil {
		return err
	}
	defer dec.pop()
	id, err := dec.readNodeIDFields()
	if err != nil {
		return err
	}
	ns, uri, err := dec.readNamespace("Namespace")
	if err != nil {
		return err
	}
	if uri != "" {
		i, ok := dec.ec.Namespaces().Index(uri)
		if !ok {
			return errors.Wrapf(BadDecodingError, "namespace %q is not in the namespace table", uri)
		}
		ns = i
	}
	*value = id.WithNamespaceIndex(ns)
	return nil
}

// ReadExpandedNodeID reads an ExpandedNodeID.
func (dec *JSONDecoder) ReadExpandedNodeID(field string, value *ExpandedNodeID) error {
	raw, ok := dec.value(field)
	if !ok {
		*value = NilExpandedNodeID
		return nil
	}
	if err := dec.pushObject(raw); err != nil {
		return err
	}
	defer dec.pop()
	id, err := dec.readNodeIDFields()
	if err != nil {
		return err
	}
	ns, uri, err := dec.readNamespace("Namespace")
	if err != nil {
		return err
	}
	var svr uint32
	if err := dec.ReadUInt32("ServerUri", &svr); err != nil {
		return err
	}
	*value = ExpandedNodeID{svr, uri, id.WithNamespaceIndex(ns)}
	return nil
}

// ReadStatusCode reads a StatusCode held as a number, or as an object holding Code.
func (dec *JSONDecoder) ReadStatusCode(field string, value *StatusCode) error {
	raw, ok := dec.value(field)
	if !ok {
		*value = Good
		return nil
	}
	var v uint32
	if raw[0] == '{' {
		if err := dec.pushObject(raw); err != nil {
			return err
		}
		defer dec.pop()
		if err := dec.ReadUInt32("Code", &v); err != nil {
			return err
		}
	} else {
		n, err := strconv.ParseUint(string(raw), 10, 32)
		if err != nil {
			return decodingError("invalid status code %s in %s", raw, field)
		}
		v = uint32(n)
	}
	*value = StatusCode(v)
	return nil
}

// ReadQualifiedName reads a QualifiedName.
func (dec *JSONDecoder) ReadQualifiedName(field string, value *QualifiedName) error {
	raw, ok := dec.value(field)
	if !ok {
		*value = QualifiedName{}
		return nil
	}
	if err := dec.pushObject(raw); err != nil {
		return err
	}
	defer dec.pop()
	var v QualifiedName
	if err := dec.ReadString("Name", &v.Name); err != nil {
		return err
	}
	ns, uri, err := dec.readNamespace("Uri")
	if err != nil {
		return err
	}
	if uri != "" {
		i, ok := dec.ec.Namespaces().Index(uri)
		if !ok {
			return errors.Wrapf(BadDecodingError, "namespace %q is not in the namespace table", uri)
		}
		ns = i
	}
	v.NamespaceIndex = ns
	*value = v
	return nil
}

// ReadLocalizedText reads a LocalizedText held as an object, or as a string holding the text.
func (dec *JSONDecoder) ReadLocalizedText(field string, value *LocalizedText) error {
	raw, ok := dec.value(field)
	if !ok {
		*value = LocalizedText{}
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return decodingError("invalid localized text in %s", field)
		}
		*value = LocalizedText{Text: s}
		return nil
	}
	if err := dec.pushObject(raw); err != nil {
		return err
	}
	defer dec.pop()
	var v LocalizedText
	if err := dec.ReadString("Locale", &v.Locale); err != nil {
		return err
	}
	if err := dec.ReadString("Text", &v.Text); err != nil {
		return err
	}
	*value = v
	return nil
}

// ReadExtensionObject reads an ExtensionObject. A json body whose TypeId has a json
// codec in the registry is decoded; any other body is kept as is.
func (dec *JSONDecoder) ReadExtensionObject(field string, value *ExtensionObject) error {
	raw, ok := dec.value(field)
	if !ok {
		*value = NilExtensionObject
		return nil
	}
	if err := dec.pushObject(raw); err != nil {
		return err
	}
	defer dec.pop()
	var id NodeID
	if err := dec.ReadNodeID("TypeId", &id); err != nil {
		return err
	}
	if id.IsNil() && !dec.hasField("Body") {
		*value = NilExtensionObject
		return nil
	}
	encodingID := NewExpandedNodeID(id)
	if !dec.hasField("Body") {
		*value = newEmptyExtensionObject(encodingID)
		return nil
	}
	var encoding byte
	if err := dec.ReadByte("Encoding", &encoding); err != nil {
		return err
	}
	switch encoding {
	case 0:
	case 1:
		var body ByteString
		if err := dec.ReadByteString("Body", &body); err != nil {
			return err
		}
		*value = NewEncodedExtensionObject(encodingID, EncodingFormatBinary, body)
		return nil
	case 2:
		var body string
		if err := dec.ReadString("Body", &body); err != nil {
			return err
		}
		*value = NewEncodedExtensionObject(encodingID, EncodingFormatXML, ByteString(body))
		return nil
	default:
		return decodingError("invalid extension object encoding %d", encoding)
	}
	codec, format, ok := resolveEncodingID(dec.ec, encodingID)
	if !ok || format != EncodingFormatJSON {
		if r := dec.ec.Registry(); r != nil {
			codec, ok = r.ResolveDataType(encodingID.canonical(dec.ec.Namespaces()))
		}
	}
	if !ok || codec == nil {
		body, _ := dec.value("Body")
		*value = NewEncodedExtensionObject(encodingID, EncodingFormatJSON, ByteString(body))
		return nil
	}
	v, err := dec.ReadStruct("Body", codec)
	if err != nil {
		return err
	}
	s, ok := v.(Structure)
	if !ok {
		return decodingError("%s codec returned %T, which is not a Structure", codec.Name(), v)
	}
	*value = NewExtensionObject(s)
	return nil
}

// ReadDataValue reads a DataValue.
func (dec *JSONDecoder) ReadDataValue(field string, value *DataValue) error {
	raw, ok := dec.value(field)
	if !ok {
		*value = NilDataValue
		return nil
	}
	if err := dec.pushObject(raw); err != nil {
		return err
	}
	defer dec.pop()
	v, err := readDataValueFields(dec, dec)
	if err != nil {
		return err
	}
	*value = v
	return nil
}

// ReadVariant reads a Variant.
func (dec *JSONDecoder) ReadVariant(field string, value *Variant) error {
	raw, ok := dec.value(field)
	if !ok {
		*value = NilVariant
		return nil
	}
	if err := dec.pushObject(raw); err != nil {
		return err
	}
	defer dec.pop()
	var b byte
	if err := dec.ReadByte("Type", &b); err != nil {
		return err
	}
	t := VariantType(b)
	if t == VariantTypeNull {
		*value = NilVariant
		return nil
	}
	if !t.IsValid() {
		return decodingError("invalid variant type %d", b)
	}
	if err := dec.guard.enter(); err != nil {
		return err
	}
	defer dec.guard.leave()
	body, ok := dec.value("Body")
	if !ok {
		*value = NilVariant
		return nil
	}
	if body[0] != '[' {
		if t == VariantTypeVariant {
			return decodingError("variant cannot hold a scalar variant")
		}
		v, err := readBuiltin(dec, "Body", t)
		if err != nil {
			return err
		}
		*value = Variant{v, t}
		return nil
	}
	if !dec.hasField("Dimensions") {
		v, err := readBuiltinArray(dec, "Body", t)
		if err != nil {
			return err
		}
		*value = Variant{v, t}
		return nil
	}
	var dims []int32
	if err := ReadArray(dec, "Dimensions", &dims, Decoder.ReadInt32); err != nil {
		return err
	}
	m, err := dec.readMatrixBody(body, t, dims)
	if err != nil {
		return err
	}
	*value = Variant{m, t}
	return nil
}

func (dec *JSONDecoder) readMatrixBody(raw json.RawMessage, t VariantType, dims []int32) (Matrix, error) {
	l, err := matrixLength(dims, dec.limits.MaxArrayLength)
	if err != nil {
		return Matrix{}, err
	}
	n, err := dec.pushArray(raw)
	if err != nil {
		return Matrix{}, err
	}
	defer dec.pop()
	if n != l || len(dims) == 0 {
		return Matrix{}, decodingError("matrix dimensions %v do not match %d elements", dims, n)
	}
	elems, err := readMatrixElements(dec, t, l)
	if err != nil {
		return Matrix{}, err
	}
	return Matrix{elems, dims, t}, nil
}

// ReadDiagnosticInfo reads a DiagnosticInfo.
func (dec *JSONDecoder) ReadDiagnosticInfo(field string, value **DiagnosticInfo) error {
	raw, ok := dec.value(field)
	if !ok {
		*value = nil
		return nil
	}
	if err := dec.guard.enter(); err != nil {
		return err
	}
	defer dec.guard.leave()
	if err := dec.pushObject(raw); err != nil {
		return err
	}
	defer dec.pop()
	v, err := readDiagnosticInfoFields(dec, dec)
	if err != nil {
		return err
	}
	*value = v
	return nil
}

// ReadEnum reads an enumeration held as a number, or as a Name_Value string.
func (dec *JSONDecoder) ReadEnum(field string, value *int32) error {
	s, _, err := dec.text(field)
	if err != nil {
		return err
	}
	if s == "" {
		*value = 0
		return nil
	}
	if i := strings.LastIndexByte(s, '_'); i >= 0 {
		s = s[i+1:]
	}
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return decodingError("invalid enumeration %q in %s", s, field)
	}
	*value = int32(v)
	return nil
}

// ReadStruct reads a structure with the codec. An absent member is read as a structure
// holding default values.
func (dec *JSONDecoder) ReadStruct(field string, codec Codec) (any, error) {
	raw, ok := dec.value(field)
	if !ok {
		raw = json.RawMessage("{}")
	}
	if err := dec.guard.enter(); err != nil {
		return nil, err
	}
	defer dec.guard.leave()
	if err := dec.pushObject(raw); err != nil {
		return nil, err
	}
	defer dec.pop()
	return codec.Decode(dec.ec, dec)
}

// ReadEncodingMask infers the mask from the optional fields that are present.
func (dec *JSONDecoder) ReadEncodingMask(optionalFields []string) (uint32, error) {
	var mask uint32
	for i, name := range optionalFields {
		if dec.hasField(name) {
			mask |= 1 << uint(i)
		}
	}
	return mask, nil
}

// ReadSwitchField reads the SwitchField member, or infers it from the member that is present.
func (dec *JSONDecoder) ReadSwitchField(fieldNames []string) (uint32, error) {
	if dec.hasField("SwitchField") {
		var v uint32
		if err := dec.ReadUInt32("SwitchField", &v); err != nil {
			return 0, err
		}
		if int(v) > len(fieldNames) {
			return 0, decodingError("switch field %d exceeds %d members", v, len(fieldNames))
		}
		return v, nil
	}
	for i, name := range fieldNames {
		if dec.hasField(name) {
			return uint32(i + 1), nil
		}
	}
	return 0, nil
}

// ReadMatrix reads an object holding Dimensions and Array.
func (dec *JSONDecoder) ReadMatrix(field string, elementType VariantType, value *Matrix) error {
	raw, ok := dec.value(field)
	if !ok {
		*value = Matrix{}
		return nil
	}
	if err := dec.pushObject(raw); err != nil {
		return err
	}
	defer dec.pop()
	var dims []int32
	if err := ReadArray(dec, "Dimensions", &dims, Decoder.ReadInt32); err != nil {
		return err
	}
	arr, ok := dec.value("Array")
	if !ok {
		arr = json.RawMessage("[]")
	}
	m, err := dec.readMatrixBody(arr, elementType, dims)
	if err != nil {
		return err
	}
	*value = m
	return nil
}

// ReadArrayStart returns the number of items, or -1 if the member is absent or null.
func (dec *JSONDecoder) ReadArrayStart(field string) (int, error) {
	raw, ok := dec.value(field)
	if !ok {
		return -1, nil
	}
	return dec.pushArray(raw)
}

// ReadArrayEnd ends the array.
func (dec *JSONDecoder) ReadArrayEnd(_ string) error {
	dec.pop()
	return nil
}
