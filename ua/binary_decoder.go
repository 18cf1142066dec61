// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"time"
	"unsafe"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// BinaryDecoder decodes the UA binary protocol.
type BinaryDecoder struct {
	r      io.Reader
	ec     EncodingContext
	limits EncodingLimits
	bs     [8]byte
	guard  depthGuard
}

// NewBinaryDecoder returns a new decoder that reads from an io.Reader.
func NewBinaryDecoder(r io.Reader, ec EncodingContext) *BinaryDecoder {
	limits := ec.Limits()
	return &BinaryDecoder{r: r, ec: ec, limits: limits, guard: depthGuard{max: limits.MaxRecursionDepth}}
}

// Context returns the EncodingContext.
func (dec *BinaryDecoder) Context() EncodingContext {
	return dec.ec
}

// Format returns EncodingFormatBinary.
func (dec *BinaryDecoder) Format() EncodingFormat {
	return EncodingFormatBinary
}

func (dec *BinaryDecoder) read(p []byte) error {
	if _, err := io.ReadFull(dec.r, p); err != nil {
		return errors.Wrap(BadDecodingError, err.Error())
	}
	return nil
}

// remaining returns the number of unread bytes, if the reader knows it.
func (dec *BinaryDecoder) remaining() (int64, bool) {
	switch r := dec.r.(type) {
	case interface{ Len() int }:
		return int64(r.Len()), true
	case interface{ Len() int64 }:
		return r.Len(), true
	}
	return 0, false
}

// checkLength verifies a length prefix against the limit and the unread bytes.
// Each element occupies at least minSize bytes.
func (dec *BinaryDecoder) checkLength(n int32, limit int, minSize int64, what string) error {
	if limit > 0 && int(n) > limit {
		return limitsExceeded("%s length %d exceeds %d", what, n, limit)
	}
	if rem, ok := dec.remaining(); ok && int64(n)*minSize > rem {
		return decodingError("%s length %d exceeds remaining %d bytes", what, n, rem)
	}
	return nil
}

// ReadBoolean reads a boolean.
func (dec *BinaryDecoder) ReadBoolean(_ string, value *bool) error {
	if err := dec.read(dec.bs[:1]); err != nil {
		return err
	}
	*value = dec.bs[0] != 0
	return nil
}

// ReadSByte reads a sbyte.
func (dec *BinaryDecoder) ReadSByte(_ string, value *int8) error {
	if err := dec.read(dec.bs[:1]); err != nil {
		return err
	}
	*value = int8(dec.bs[0])
	return nil
}

// ReadByte reads a byte.
func (dec *BinaryDecoder) ReadByte(_ string, value *byte) error {
	if err := dec.read(dec.bs[:1]); err != nil {
		return err
	}
	*value = dec.bs[0]
	return nil
}

// ReadInt16 reads a int16.
func (dec *BinaryDecoder) ReadInt16(_ string, value *int16) error {
	if err := dec.read(dec.bs[:2]); err != nil {
		return err
	}
	*value = int16(binary.LittleEndian.Uint16(dec.bs[:2]))
	return nil
}

// ReadUInt16 reads a uint16.
func (dec *BinaryDecoder) ReadUInt16(_ string, value *uint16) error {
	if err := dec.read(dec.bs[:2]); err != nil {
		return err
	}
	*value = binary.LittleEndian.Uint16(dec.bs[:2])
	return nil
}

// ReadInt32 reads a int32.
func (dec *BinaryDecoder) ReadInt32(_ string, value *int32) error {
	if err := dec.read(dec.bs[:4]); err != nil {
		return err
	}
	*value = int32(binary.LittleEndian.Uint32(dec.bs[:4]))
	return nil
}

// ReadUInt32 reads a uint32.
func (dec *BinaryDecoder) ReadUInt32(_ string, value *uint32) error {
	if err := dec.read(dec.bs[:4]); err != nil {
		return err
	}
	*value = binary.LittleEndian.Uint32(dec.bs[:4])
	return nil
}

// ReadInt64 reads a int64.
func (dec *BinaryDecoder) ReadInt64(_ string, value *int64) error {
	if err := dec.read(dec.bs[:8]); err != nil {
		return err
	}
	*value = int64(binary.LittleEndian.Uint64(dec.bs[:8]))
	return nil
}

// ReadUInt64 reads a uint64.
func (dec *BinaryDecoder) ReadUInt64(_ string, value *uint64) error {
	if err := dec.read(dec.bs[:8]); err != nil {
		return err
	}
	*value = binary.LittleEndian.Uint64(dec.bs[:8])
	return nil
}

// ReadFloat reads a float.
func (dec *BinaryDecoder) ReadFloat(_ string, value *float32) error {
	if err := dec.read(dec.bs[:4]); err != nil {
		return err
	}
	*value = math.Float32frombits(binary.LittleEndian.Uint32(dec.bs[:4]))
	return nil
}

// ReadDouble reads a double.
func (dec *BinaryDecoder) ReadDouble(_ string, value *float64) error {
	if err := dec.read(dec.bs[:8]); err != nil {
		return err
	}
	*value = math.Float64frombits(binary.LittleEndian.Uint64(dec.bs[:8]))
	return nil
}

func (dec *BinaryDecoder) readBytes(limit int, what string) ([]byte, error) {
	var n int32
	if err := dec.ReadInt32("", &n); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, nil
	}
	if err := dec.checkLength(n, limit, 1, what); err != nil {
		return nil, err
	}
	bs := make([]byte, n)
	if err := dec.read(bs); err != nil {
		return nil, err
	}
	return bs, nil
}

// ReadString reads a string.
func (dec *BinaryDecoder) ReadString(_ string, value *string) error {
	bs, err := dec.readBytes(dec.limits.MaxStringLength, "string")
	if err != nil {
		return err
	}
	// eliminate alloc of a second byte array and copying from one byte array to another.
	*value = unsafe.String(unsafe.SliceData(bs), len(bs))
	return nil
}

// ReadDateTime reads a date/time. The value 0 is read as the zero time.
func (dec *BinaryDecoder) ReadDateTime(_ string, value *time.Time) error {
	// ticks are 100 nanosecond intervals since January 1, 1601
	var ticks int64
	if err := dec.ReadInt64("", &ticks); err != nil {
		return err
	}
	if ticks <= 0 {
		*value = time.Time{}
		return nil
	}
	if ticks == 0x7FFFFFFFFFFFFFFF {
		ticks = 2650467743990000000
	}
	*value = time.Unix(ticks/10000000-11644473600, (ticks%10000000)*100).UTC()
	return nil
}

// ReadGUID reads a guid.
func (dec *BinaryDecoder) ReadGUID(_ string, value *uuid.UUID) error {
	if err := dec.read(dec.bs[:8]); err != nil {
		return err
	}
	v := uuid.UUID{}
	v[0] = dec.bs[3]
	v[1] = dec.bs[2]
	v[2] = dec.bs[1]
	v[3] = dec.bs[0]
	v[4] = dec.bs[5]
	v[5] = dec.bs[4]
	v[6] = dec.bs[7]
	v[7] = dec.bs[6]
	if err := dec.read(v[8:]); err != nil {
		return err
	}
	*value = v
	return nil
}

// ReadByteString reads a ByteString.
func (dec *BinaryDecoder) ReadByteString(_ string, value *ByteString) error {
	bs, err := dec.readBytes(dec.limits.MaxByteStringLength, "bytestring")
	if err != nil {
		return err
	}
	*value = ByteString(unsafe.String(unsafe.SliceData(bs), len(bs)))
	return nil
}

// ReadXMLElement reads a XmlElement.
func (dec *BinaryDecoder) ReadXMLElement(_ string, value *XMLElement) error {
	var s string
	if err := dec.ReadString("", &s); err != nil {
		return err
	}
	*value = XMLElement(s)
	return nil
}

// readNodeIDBody reads a NodeID and returns the flags of an ExpandedNodeID.
func (dec *BinaryDecoder) readNodeIDBody(value *NodeID) (byte, error) {
	var b byte
	if err := dec.ReadByte("", &b); err != nil {
		return 0, err
	}
	var ns uint16
	switch b & 0x0F {
	case 0x00:
		var id byte
		if err := dec.ReadByte("", &id); err != nil {
			return 0, err
		}
		*value = NewNodeIDNumeric(0, uint32(id))
	case 0x01:
		if err := dec.read(dec.bs[:3]); err != nil {
			return 0, err
		}
		*value = NewNodeIDNumeric(uint16(dec.bs[0]), uint32(binary.LittleEndian.Uint16(dec.bs[1:3])))
	case 0x02:
		var id uint32
		if err := dec.ReadUInt16("", &ns); err != nil {
			return 0, err
		}
		if err := dec.ReadUInt32("", &id); err != nil {
			return 0, err
		}
		*value = NewNodeIDNumeric(ns, id)
	case 0x03:
		var id string
		if err := dec.ReadUInt16("", &ns); err != nil {
			return 0, err
		}
		if err := dec.ReadString("", &id); err != nil {
			return 0, err
		}
		*value = NewNodeIDString(ns, id)
	case 0x04:
		var id uuid.UUID
		if err := dec.ReadUInt16("", &ns); err != nil {
			return 0, err
		}
		if err := dec.ReadGUID("", &id); err != nil {
			return 0, err
		}
		*value = NewNodeIDGUID(ns, id)
	case 0x05:
		var id ByteString
		if err := dec.ReadUInt16("", &ns); err != nil {
			return 0, err
		}
		if err := dec.ReadByteString("", &id); err != nil {
			return 0, err
		}
		*value = NewNodeIDOpaque(ns, id)
	default:
		return 0, decodingError("invalid node id encoding 0x%02x", b)
	}
	return b & 0xF0, nil
}

// ReadNodeID reads a NodeID.
func (dec *BinaryDecoder) ReadNodeID(_ string, value *NodeID) error {
	var id NodeID
	flags, err := dec.readNodeIDBody(&id)
	if err != nil {
		return err
	}
	if flags != 0 {
		return decodingError("invalid node id encoding flags 0x%02x", flags)
	}
	*value = id
	return nil
}

// ReadExpandedNodeID reads an ExpandedNodeID.
func (dec *BinaryDecoder) ReadExpandedNodeID(_ string, value *ExpandedNodeID) error {
	var id NodeID
	flags, err := dec.readNodeIDBody(&id)
	if err != nil {
		return err
	}
	if flags&^0xC0 != 0 {
		return decodingError("invalid expanded node id encoding flags 0x%02x", flags)
	}
	var nsu string
	if (flags & 0x80) != 0 {
		if err := dec.ReadString("", &nsu); err != nil {
			return err
		}
		if nsu != "" {
			id = id.WithNamespaceIndex(0)
		}
	}
	var svr uint32
	if (flags & 0x40) != 0 {
		if err := dec.ReadUInt32("", &svr); err != nil {
			return err
		}
	}
	*value = ExpandedNodeID{svr, nsu, id}
	return nil
}

// ReadStatusCode reads a StatusCode.
func (dec *BinaryDecoder) ReadStatusCode(_ string, value *StatusCode) error {
	var v uint32
	if err := dec.ReadUInt32("", &v); err != nil {
		return err
	}
	*value = StatusCode(v)
	return nil
}

// ReadQualifiedName reads a QualifiedName.
func (dec *BinaryDecoder) ReadQualifiedName(_ string, value *QualifiedName) error {
	var ns uint16
	var name string
	if err := dec.ReadUInt16("", &ns); err != nil {
		return err
	}
	if err := dec.ReadString("", &name); err != nil {
		return err
	}
	*value = QualifiedName{ns, name}
	return nil
}

// ReadLocalizedText reads a LocalizedText.
func (dec *BinaryDecoder) ReadLocalizedText(_ string, value *LocalizedText) error {
	var b byte
	var text, locale string
	if err := dec.ReadByte("", &b); err != nil {
		return err
	}
	if (b & localizedTextLocale) != 0 {
		if err := dec.ReadString("", &locale); err != nil {
			return err
		}
	}
	if (b & localizedTextText) != 0 {
		if err := dec.ReadString("", &text); err != nil {
			return err
		}
	}
	*value = LocalizedText{text, locale}
	return nil
}

// ReadExtensionObject reads an ExtensionObject. A body whose encoding id has a binary
// codec in the registry is decoded; any other body is kept as bytes.
func (dec *BinaryDecoder) ReadExtensionObject(_ string, value *ExtensionObject) error {
	var id NodeID
	if err := dec.ReadNodeID("", &id); err != nil {
		return err
	}
	var b byte
	if err := dec.ReadByte("", &b); err != nil {
		return err
	}
	encodingID := NewExpandedNodeID(id)
	switch b {
	case 0x00:
		if id.IsNil() {
			*value = NilExtensionObject
			return nil
		}
		*value = newEmptyExtensionObject(encodingID)
		return nil
	case 0x01, 0x02:
		bs, err := dec.readBytes(dec.limits.MaxByteStringLength, "extension object body")
		if err != nil {
			return err
		}
		body := ByteString(unsafe.String(unsafe.SliceData(bs), len(bs)))
		if b == 0x02 {
			*value = NewEncodedExtensionObject(encodingID, EncodingFormatXML, body)
			return nil
		}
		codec, format, ok := resolveEncodingID(dec.ec, encodingID)
		if !ok || format != EncodingFormatBinary {
			*value = NewEncodedExtensionObject(encodingID, EncodingFormatBinary, body)
			return nil
		}
		dec2 := &BinaryDecoder{r: bytes.NewReader(bs), ec: dec.ec, limits: dec.limits, guard: dec.guard}
		v, err := dec2.ReadStruct("", codec)
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
	return decodingError("invalid extension object encoding 0x%02x", b)
}

// ReadDataValue reads a DataValue.
func (dec *BinaryDecoder) ReadDataValue(_ string, value *DataValue) error {
	var b byte
	if err := dec.ReadByte("", &b); err != nil {
		return err
	}
	var v DataValue
	if (b & dataValueValue) != 0 {
		if err := dec.ReadVariant("", &v.Value); err != nil {
			return err
		}
	}
	if (b & dataValueStatusCode) != 0 {
		if err := dec.ReadStatusCode("", &v.StatusCode); err != nil {
			return err
		}
	}
	if (b & dataValueSourceTimestamp) != 0 {
		if err := dec.ReadDateTime("", &v.SourceTimestamp); err != nil {
			return err
		}
	}
	if (b & dataValueSourcePicoseconds) != 0 {
		if err := dec.ReadUInt16("", &v.SourcePicoseconds); err != nil {
			return err
		}
	}
	if (b & dataValueServerTimestamp) != 0 {
		if err := dec.ReadDateTime("", &v.ServerTimestamp); err != nil {
			return err
		}
	}
	if (b & dataValueServerPicoseconds) != 0 {
		if err := dec.ReadUInt16("", &v.ServerPicoseconds); err != nil {
			return err
		}
	}
	*value = v
	return nil
}

// ReadVariant reads a Variant.
func (dec *BinaryDecoder) ReadVariant(_ string, value *Variant) error {
	var b byte
	if err := dec.ReadByte("", &b); err != nil {
		return err
	}
	t := VariantType(b & 0x3F)
	if t == VariantTypeNull {
		if b != 0 {
			return decodingError("invalid variant encoding 0x%02x", b)
		}
		*value = NilVariant
		return nil
	}
	if !t.IsValid() {
		return decodingError("invalid variant type %d", t)
	}
	if err := dec.guard.enter(); err != nil {
		return err
	}
	defer dec.guard.leave()
	switch b & 0xC0 {
	case 0x00:
		if t == VariantTypeVariant {
			return decodingError("variant cannot hold a scalar variant")
		}
		v, err := readBuiltin(dec, "", t)
		if err != nil {
			return err
		}
		*value = Variant{v, t}
	case 0x80:
		v, err := readBuiltinArray(dec, "", t)
		if err != nil {
			return err
		}
		*value = Variant{v, t}
	case 0xC0:
		var n int32
		if err := dec.ReadInt32("", &n); err != nil {
			return err
		}
		if n < 0 {
			n = 0
		}
		if err := dec.checkLength(n, dec.limits.MaxArrayLength, 1, "array"); err != nil {
			return err
		}
		elems, err := readMatrixElements(dec, t, int(n))
		if err != nil {
			return err
		}
		var dims []int32
		if err := ReadArray(dec, "", &dims, Decoder.ReadInt32); err != nil {
			return err
		}
		if len(dims) == 0 {
			*value = Variant{elems, t}
			return nil
		}
		if l, err := matrixLength(dims, 0); err != nil || l != int(n) {
			return decodingError("array dimensions %v do not match %d elements", dims, n)
		}
		*value = Variant{Matrix{elems, dims, t}, t}
	default:
		return decodingError("invalid variant encoding 0x%02x", b)
	}
	return nil
}

// ReadDiagnosticInfo reads a DiagnosticInfo. A zero mask is read as nil.
func (dec *BinaryDecoder) ReadDiagnosticInfo(_ string, value **DiagnosticInfo) error {
	var b byte
	if err := dec.ReadByte("", &b); err != nil {
		return err
	}
	if b == 0 {
		*value = nil
		return nil
	}
	if err := dec.guard.enter(); err != nil {
		return err
	}
	defer dec.guard.leave()
	v := &DiagnosticInfo{}
	if (b & diagnosticInfoSymbolicID) != 0 {
		v.SymbolicID = new(int32)
		if err := dec.ReadInt32("", v.SymbolicID); err != nil {
			return err
		}
	}
	if (b & diagnosticInfoNamespaceURI) != 0 {
		v.NamespaceURI = new(int32)
		if err := dec.ReadInt32("", v.NamespaceURI); err != nil {
			return err
		}
	}
	if (b & diagnosticInfoLocale) != 0 {
		v.Locale = new(int32)
		if err := dec.ReadInt32("", v.Locale); err != nil {
			return err
		}
	}
	if (b & diagnosticInfoLocalizedText) != 0 {
		v.LocalizedText = new(int32)
		if err := dec.ReadInt32("", v.LocalizedText); err != nil {
			return err
		}
	}
	if (b & diagnosticInfoAdditionalInfo) != 0 {
		v.AdditionalInfo = new(string)
		if err := dec.ReadString("", v.AdditionalInfo); err != nil {
			return err
		}
	}
	if (b & diagnosticInfoInnerStatusCode) != 0 {
		v.InnerStatusCode = new(StatusCode)
		if err := dec.ReadStatusCode("", v.InnerStatusCode); err != nil {
			return err
		}
	}
	if (b & diagnosticInfoInnerDiagnosticInfo) != 0 {
		if err := dec.ReadDiagnosticInfo("", &v.InnerDiagnosticInfo); err != nil {
			return err
		}
	}
	*value = v
	return nil
}

// ReadEnum reads the value of an enumeration.
func (dec *BinaryDecoder) ReadEnum(_ string, value *int32) error {
	return dec.ReadInt32("", value)
}

// ReadStruct reads a structure with the codec.
func (dec *BinaryDecoder) ReadStruct(_ string, codec Codec) (any, error) {
	if err := dec.guard.enter(); err != nil {
		return nil, err
	}
	defer dec.guard.leave()
	return codec.Decode(dec.ec, dec)
}

// ReadEncodingMask reads the mask of optional fields that are present.
func (dec *BinaryDecoder) ReadEncodingMask(_ []string) (uint32, error) {
	var v uint32
	err := dec.ReadUInt32("", &v)
	return v, err
}

// ReadSwitchField reads the index of the union member.
func (dec *BinaryDecoder) ReadSwitchField(fieldNames []string) (uint32, error) {
	var v uint32
	if err := dec.ReadUInt32("", &v); err != nil {
		return 0, err
	}
	if int(v) > len(fieldNames) {
		return 0, decodingError("switch field %d exceeds %d members", v, len(fieldNames))
	}
	return v, nil
}

// ReadMatrix reads the dimensions followed by the elements.
func (dec *BinaryDecoder) ReadMatrix(_ string, elementType VariantType, value *Matrix) error {
	var dims []int32
	if err := ReadArray(dec, "", &dims, Decoder.ReadInt32); err != nil {
		return err
	}
	if dims == nil {
		*value = Matrix{}
		return nil
	}
	if len(dims) == 0 {
		return decodingError("matrix has no dimensions")
	}
	n, err := matrixLength(dims, dec.limits.MaxArrayLength)
	if err != nil {
		return err
	}
	if err := dec.checkLength(int32(n), 0, 1, "matrix"); err != nil {
		return err
	}
	elems, err := readMatrixElements(dec, elementType, n)
	if err != nil {
		return err
	}
	*value = Matrix{elems, dims, elementType}
	return nil
}

// ReadArrayStart reads the length of the array, -1 for a null array.
func (dec *BinaryDecoder) ReadArrayStart(_ string) (int, error) {
	var n int32
	if err := dec.ReadInt32("", &n); err != nil {
		return 0, err
	}
	if n < 0 {
		return -1, nil
	}
	if err := dec.checkLength(n, dec.limits.MaxArrayLength, 1, "array"); err != nil {
		return 0, err
	}
	return int(n), nil
}

// ReadArrayEnd does nothing.
func (dec *BinaryDecoder) ReadArrayEnd(_ string) error {
	return nil
}
