// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gammazero/deque"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// xmlNode is an element of a parsed document.
type xmlNode struct {
	name     string
	text     strings.Builder
	inner    []byte
	children []*xmlNode
	start    int64
}

// parseXML reads the whole document into a tree. The returned node is the document
// itself, holding the root element as its only child.
func parseXML(r io.Reader) (*xmlNode, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(BadDecodingError, err.Error())
	}
	d := xml.NewDecoder(bytes.NewReader(data))
	doc := &xmlNode{}
	var open deque.Deque[*xmlNode]
	open.PushBack(doc)
	for {
		offset := d.InputOffset()
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(BadDecodingError, err.Error())
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &xmlNode{name: t.Name.Local, start: d.InputOffset()}
			parent := open.Back()
			parent.children = append(parent.children, n)
			open.PushBack(n)
		case xml.EndElement:
			n := open.PopBack()
			n.inner = data[n.start:offset]
		case xml.CharData:
			open.Back().text.Write(t)
		}
	}
	if open.Len() != 1 {
		return nil, decodingError("unexpected end of xml document")
	}
	return doc, nil
}

type xmlScope struct {
	node  *xmlNode
	next  int
	array bool
}

// XMLDecoder decodes the UA XML format.
type XMLDecoder struct {
	ec     EncodingContext
	limits EncodingLimits
	scopes []*xmlScope
	guard  depthGuard
}

// NewXMLDecoder returns a new decoder that reads the whole document from an io.Reader.
func NewXMLDecoder(r io.Reader, ec EncodingContext) (*XMLDecoder, error) {
	doc, err := parseXML(r)
	if err != nil {
		return nil, err
	}
	limits := ec.Limits()
	return &XMLDecoder{
		ec:     ec,
		limits: limits,
		scopes: []*xmlScope{{node: doc}},
		guard:  depthGuard{max: limits.MaxRecursionDepth},
	}, nil
}

// Context returns the EncodingContext.
func (dec *XMLDecoder) Context() EncodingContext {
	return dec.ec
}

// Format returns EncodingFormatXML.
func (dec *XMLDecoder) Format() EncodingFormat {
	return EncodingFormatXML
}

func (dec *XMLDecoder) scope() *xmlScope {
	return dec.scopes[len(dec.scopes)-1]
}

func (dec *XMLDecoder) push(n *xmlNode, array bool) {
	dec.scopes = append(dec.scopes, &xmlScope{node: n, array: array})
}

func (dec *XMLDecoder) pop() {
	dec.scopes = dec.scopes[:len(dec.scopes)-1]
}

// child returns the next element of an array, or the element named field.
func (dec *XMLDecoder) child(field string) *xmlNode {
	s := dec.scope()
	children := s.node.children
	if s.array || field == "" {
		if s.next < len(children) {
			n := children[s.next]
			s.next++
			return n
		}
		return nil
	}
	for i := s.next; i < len(children); i++ {
		if children[i].name == field {
			s.next = i + 1
			return children[i]
		}
	}
	for i := 0; i < s.next && i < len(children); i++ {
		if children[i].name == field {
			return children[i]
		}
	}
	return nil
}

func (dec *XMLDecoder) hasField(name string) bool {
	for _, c := range dec.scope().node.children {
		if c.name == name {
			return true
		}
	}
	return false
}

// text returns the trimmed text of the field, or false if it is absent.
func (dec *XMLDecoder) text(field string) (string, bool) {
	n := dec.child(field)
	if n == nil {
		return "", false
	}
	return strings.TrimSpace(n.text.String()), true
}

func (dec *XMLDecoder) parseInt(field string, bitSize int) (int64, error) {
	s, ok := dec.text(field)
	if !ok || s == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(s, 10, bitSize)
	if err != nil {
		return 0, decodingError("invalid integer %q in %s", s, field)
	}
	return v, nil
}

func (dec *XMLDecoder) parseUint(field string, bitSize int) (uint64, error) {
	s, ok := dec.text(field)
	if !ok || s == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(s, 10, bitSize)
	if err != nil {
		return 0, decodingError("invalid unsigned integer %q in %s", s, field)
	}
	return v, nil
}

func (dec *XMLDecoder) parseFloat(field string, bitSize int) (float64, error) {
	s, ok := dec.text(field)
	if !ok || s == "" {
		return 0, nil
	}
	switch s {
	case "INF":
		return math.Inf(1), nil
	case "-INF":
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
func (dec *XMLDecoder) ReadBoolean(field string, value *bool) error {
	s, _ := dec.text(field)
	switch s {
	case "true", "1":
		*value = true
	case "false", "0", "":
		*value = false
	default:
		return decodingError("invalid boolean %q in %s", s, field)
	}
	return nil
}

// ReadSByte reads a sbyte.
func (dec *XMLDecoder) ReadSByte(field string, value *int8) error {
	v, err := dec.parseInt(field, 8)
	if err != nil {
		return err
	}
	*value = int8(v)
	return nil
}

// ReadByte reads a byte.
func (dec *XMLDecoder) ReadByte(field string, value *byte) error {
	v, err := dec.parseUint(field, 8)
	if err != nil {
		return err
	}
	*value = byte(v)
	return nil
}

// ReadInt16 reads a int16.
func (dec *XMLDecoder) ReadInt16(field string, value *int16) error {
	v, err := dec.parseInt(field, 16)
	if err != nil {
		return err
	}
	*value = int16(v)
	return nil
}

// ReadUInt16 reads a uint16.
func (dec *XMLDecoder) ReadUInt16(field string, value *uint16) error {
	v, err := dec.parseUint(field, 16)
	if err != nil {
		return err
	}
	*value = uint16(v)
	return nil
}

// ReadInt32 reads a int32.
func (dec *XMLDecoder) ReadInt32(field string, value *int32) error {
	v, err := dec.parseInt(field, 32)
	if err != nil {
		return err
	}
	*value = int32(v)
	return nil
}

// ReadUInt32 reads a uint32.
func (dec *XMLDecoder) ReadUInt32(field string, value *uint32) error {
	v, err := dec.parseUint(field, 32)
	if err != nil {
		return err
	}
	*value = uint32(v)
	return nil
}

// ReadInt64 reads a int64.
func (dec *XMLDecoder) ReadInt64(field string, value *int64) error {
	v, err := dec.parseInt(field, 64)
	if err != nil {
		return err
	}
	*value = v
	return nil
}

// ReadUInt64 reads a uint64.
func (dec *XMLDecoder) ReadUInt64(field string, value *uint64) error {
	v, err := dec.parseUint(field, 64)
	if err != nil {
		return err
	}
	*value = v
	return nil
}

// ReadFloat reads a float.
func (dec *XMLDecoder) ReadFloat(field string, value *float32) error {
	v, err := dec.parseFloat(field, 32)
	if err != nil {
		return err
	}
	*value = float32(v)
	return nil
}

// ReadDouble reads a double.
func (dec *XMLDecoder) ReadDouble(field string, value *float64) error {
	v, err := dec.parseFloat(field, 64)
	if err != nil {
		return err
	}
	*value = v
	return nil
}

// ReadString reads a string.
func (dec *XMLDecoder) ReadString(field string, value *string) error {
	n := dec.child(field)
	if n == nil {
		*value = ""
		return nil
	}
	s := n.text.String()
	if dec.limits.MaxStringLength > 0 && len(s) > dec.limits.MaxStringLength {
		return limitsExceeded("string length %d exceeds %d", len(s), dec.limits.MaxStringLength)
	}
	*value = s
	return nil
}

// ReadDateTime reads a date/time.
func (dec *XMLDecoder) ReadDateTime(field string, value *time.Time) error {
	s, _ := dec.text(field)
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
func (dec *XMLDecoder) ReadGUID(field string, value *uuid.UUID) error {
	n := dec.child(field)
	if n == nil {
		*value = uuid.Nil
		return nil
	}
	dec.push(n, false)
	s, _ := dec.text("String")
	dec.pop()
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

func decodeBase64(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\n' || r == '\r' || r == '\t' {
			return -1
		}
		return r
	}, s)
	return base64.StdEncoding.DecodeString(s)
}

// ReadByteString reads a ByteString.
func (dec *XMLDecoder) ReadByteString(field string, value *ByteString) error {
	s, _ := dec.text(field)
	b, err := decodeBase64(s)
	if err != nil {
		return decodingError("invalid base64 in %s", field)
	}
	if dec.limits.MaxByteStringLength > 0 && len(b) > dec.limits.MaxByteStringLength {
		return limitsExceeded("bytestring length %d exceeds %d", len(b), dec.limits.MaxByteStringLength)
	}
	*value = ByteString(b)
	return nil
}

// ReadXMLElement reads the content of the element as an xml fragment.
func (dec *XMLDecoder) ReadXMLElement(field string, value *XMLElement) error {
	n := dec.child(field)
	if n == nil {
		*value = ""
		return nil
	}
	if dec.limits.MaxStringLength > 0 && len(n.inner) > dec.limits.MaxStringLength {
		return limitsExceeded("xml element length %d exceeds %d", len(n.inner), dec.limits.MaxStringLength)
	}
	*value = XMLElement(bytes.TrimSpace(n.inner))
	return nil
}

func (dec *XMLDecoder) readIdentifier(field string) (string, error) {
	n := dec.child(field)
	if n == nil {
		return "", nil
	}
	dec.push(n, false)
	defer dec.pop()
	s, _ := dec.text("Identifier")
	return s, nil
}

// ReadNodeID reads a NodeID.
func (dec *XMLDecoder) ReadNodeID(field string, value *NodeID) error {
	s, err := dec.readIdentifier(field)
	if err != nil {
		return err
	}
	if s == "" {
		*value = NilNodeID
		return nil
	}
	id, err := ParseNodeID(s)
	if err != nil {
		return errors.Wrap(BadDecodingError, err.Error())
	}
	*value = id
	return nil
}

// ReadExpandedNodeID reads an ExpandedNodeID.
func (dec *XMLDecoder) ReadExpandedNodeID(field string, value *ExpandedNodeID) error {
	s, err := dec.readIdentifier(field)
	if err != nil {
		return err
	}
	if s == "" {
		*value = NilExpandedNodeID
		return nil
	}
	id, err := ParseExpandedNodeID(s)
	if err != nil {
		return errors.Wrap(BadDecodingError, err.Error())
	}
	*value = id
	return nil
}

// ReadStatusCode reads a StatusCode.
func (dec *XMLDecoder) ReadStatusCode(field string, value *StatusCode) error {
	n := dec.child(field)
	if n == nil {
		*value = Good
		return nil
	}
	dec.push(n, false)
	defer dec.pop()
	var v uint32
	if err := dec.ReadUInt32("Code", &v); err != nil {
		return err
	}
	*value = StatusCode(v)
	return nil
}

// ReadQualifiedName reads a QualifiedName.
func (dec *XMLDecoder) ReadQualifiedName(field string, value *QualifiedName) error {
	n := dec.child(field)
	if n == nil {
		*value = QualifiedName{}
		return nil
	}
	dec.push(n, false)
	defer dec.pop()
	var v QualifiedName
	if err := dec.ReadUInt16("NamespaceIndex", &v.NamespaceIndex); err != nil {
		return err
	}
	if err := dec.ReadString("Name", &v.Name); err != nil {
		return err
	}
	*value = v
	return nil
}

// ReadLocalizedText reads a LocalizedText.
func (dec *XMLDecoder) ReadLocalizedText(field string, value *LocalizedText) error {
	n := dec.child(field)
	if n == nil {
		*value = LocalizedText{}
		return nil
	}
	dec.push(n, false)
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

// ReadExtensionObject reads an ExtensionObject. A body whose encoding id has an xml
// codec in the registry is decoded; any other body is kept as xml or bytes.
func (dec *XMLDecoder) ReadExtensionObject(field string, value *ExtensionObject) error {
	n := dec.child(field)
	if n == nil {
		*value = NilExtensionObject
		return nil
	}
	dec.push(n, false)
	defer dec.pop()
	var id NodeID
	if err := dec.ReadNodeID("TypeId", &id); err != nil {
		return err
	}
	body := dec.child("Body")
	if id.IsNil() && body == nil {
		*value = NilExtensionObject
		return nil
	}
	encodingID := NewExpandedNodeID(id)
	if body == nil {
		*value = newEmptyExtensionObject(encodingID)
		return nil
	}
	if len(body.children) == 1 && body.children[0].name == "ByteString" {
		b, err := decodeBase64(body.children[0].text.String())
		if err != nil {
			return decodingError("invalid base64 in extension object body")
		}
		*value = NewEncodedExtensionObject(encodingID, EncodingFormatBinary, ByteString(b))
		return nil
	}
	codec, format, ok := resolveEncodingID(dec.ec, encodingID)
	if !ok || format != EncodingFormatXML || len(body.children) == 0 {
		*value = NewEncodedExtensionObject(encodingID, EncodingFormatXML, ByteString(bytes.TrimSpace(body.inner)))
		return nil
	}
	dec.push(body, false)
	v, err := dec.ReadStruct("", codec)
	dec.pop()
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
func (dec *XMLDecoder) ReadDataValue(field string, value *DataValue) error {
	n := dec.child(field)
	if n == nil {
		*value = NilDataValue
		return nil
	}
	dec.push(n, false)
	defer dec.pop()
	v, err := readDataValueFields(dec, dec)
	if err != nil {
		return err
	}
	*value = v
	return nil
}

// ReadVariant reads a Variant.
func (dec *XMLDecoder) ReadVariant(field string, value *Variant) error {
	n := dec.child(field)
	if n == nil {
		*value = NilVariant
		return nil
	}
	dec.push(n, false)
	defer dec.pop()
	vn := dec.child("Value")
	if vn == nil || len(vn.children) == 0 {
		*value = NilVariant
		return nil
	}
	if err := dec.guard.enter(); err != nil {
		return err
	}
	defer dec.guard.leave()
	dec.push(vn, false)
	defer dec.pop()
	name := vn.children[0].name
	switch {
	case name == "Matrix":
		mn := vn.children[0]
		t := VariantTypeNull
		for _, c := range mn.children {
			if c.name == "Elements" && len(c.children) > 0 {
				t, _ = variantTypeByName(c.children[0].name)
			}
		}
		if !t.IsValid() {
			*value = NilVariant
			return nil
		}
		var m Matrix
		if err := dec.ReadMatrix(name, t, &m); err != nil {
			return err
		}
		*value = Variant{m, t}
	case strings.HasPrefix(name, "ListOf"):
		t, ok := variantTypeByName(strings.TrimPrefix(name, "ListOf"))
		if !ok {
			return decodingError("invalid variant type %q", name)
		}
		v, err := readBuiltinArray(dec, name, t)
		if err != nil {
			return err
		}
		*value = Variant{v, t}
	default:
		t, ok := variantTypeByName(name)
		if !ok || t == VariantTypeVariant {
			return decodingError("invalid variant type %q", name)
		}
		v, err := readBuiltin(dec, name, t)
		if err != nil {
			return err
		}
		*value = Variant{v, t}
	}
	return nil
}

// ReadDiagnosticInfo reads a DiagnosticInfo. An empty element is read as nil.
func (dec *XMLDecoder) ReadDiagnosticInfo(field string, value **DiagnosticInfo) error {
	n := dec.child(field)
	if n == nil || len(n.children) == 0 {
		*value = nil
		return nil
	}
	if err := dec.guard.enter(); err != nil {
		return err
	}
	defer dec.guard.leave()
	dec.push(n, false)
	defer dec.pop()
	v, err := readDiagnosticInfoFields(dec, dec)
	if err != nil {
		return err
	}
	*value = v
	return nil
}

// ReadEnum reads an enumeration written as Name_Value, or as a plain value.
func (dec *XMLDecoder) ReadEnum(field string, value *int32) error {
	s, _ := dec.text(field)
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

// ReadStruct reads a structure with the codec. An absent element is read as a structure
// holding default values.
func (dec *XMLDecoder) ReadStruct(field string, codec Codec) (any, error) {
	n := dec.child(field)
	if n == nil {
		n = &xmlNode{name: field}
	}
	if err := dec.guard.enter(); err != nil {
		return nil, err
	}
	defer dec.guard.leave()
	dec.push(n, false)
	defer dec.pop()
	return codec.Decode(dec.ec, dec)
}

// ReadEncodingMask reads the EncodingMask element, or infers the mask from the
// optional fields that are present.
func (dec *XMLDecoder) ReadEncodingMask(optionalFields []string) (uint32, error) {
	if dec.hasField("EncodingMask") {
		var v uint32
		err := dec.ReadUInt32("EncodingMask", &v)
		return v, err
	}
	var mask uint32
	for i, name := range optionalFields {
		if dec.hasField(name) {
			mask |= 1 << uint(i)
		}
	}
	return mask, nil
}

// ReadSwitchField reads the SwitchField element, or infers it from the member that is present.
func (dec *XMLDecoder) ReadSwitchField(fieldNames []string) (uint32, error) {
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

// ReadMatrix reads the Dimensions and Elements of a matrix.
func (dec *XMLDecoder) ReadMatrix(field string, elementType VariantType, value *Matrix) error {
	n := dec.child(field)
	if n == nil {
		*value = Matrix{}
		return nil
	}
	dec.push(n, false)
	defer dec.pop()
	var dims []int32
	if err := ReadArray(dec, "Dimensions", &dims, Decoder.ReadInt32); err != nil {
		return err
	}
	l, err := matrixLength(dims, dec.limits.MaxArrayLength)
	if err != nil {
		return err
	}
	en := dec.child("Elements")
	if en == nil {
		en = &xmlNode{}
	}
	if len(en.children) != l || len(dims) == 0 {
		return decodingError("matrix dimensions %v do not match %d elements", dims, len(en.children))
	}
	dec.push(en, true)
	elems, err := readMatrixElements(dec, elementType, l)
	dec.pop()
	if err != nil {
		return err
	}
	*value = Matrix{elems, dims, elementType}
	return nil
}

// ReadArrayStart returns the number of items in the element, or -1 if the element is absent.
func (dec *XMLDecoder) ReadArrayStart(field string) (int, error) {
	n := dec.child(field)
	if n == nil {
		return -1, nil
	}
	if dec.limits.MaxArrayLength > 0 && len(n.children) > dec.limits.MaxArrayLength {
		return 0, limitsExceeded("array length %d exceeds %d", len(n.children), dec.limits.MaxArrayLength)
	}
	dec.push(n, true)
	return len(n.children), nil
}

// ReadArrayEnd ends the array.
func (dec *XMLDecoder) ReadArrayEnd(_ string) error {
	dec.pop()
	return nil
}
