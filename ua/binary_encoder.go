// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

import (
	"encoding/binary"
	"io"
	"math"
	"time"
	"unsafe"

	"github.com/djherbis/buffer"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// BinaryEncoder encodes the UA Binary protocol.
type BinaryEncoder struct {
	w     io.Writer
	ec    EncodingContext
	bs    [8]byte
	guard depthGuard
}

// NewBinaryEncoder returns a new encoder that writes to an io.Writer.
func NewBinaryEncoder(w io.Writer, ec EncodingContext) *BinaryEncoder {
	return &BinaryEncoder{w: w, ec: ec, guard: depthGuard{max: ec.Limits().MaxRecursionDepth}}
}

// Context returns the EncodingContext.
func (enc *BinaryEncoder) Context() EncodingContext {
	return enc.ec
}

// Format returns EncodingFormatBinary.
func (enc *BinaryEncoder) Format() EncodingFormat {
	return EncodingFormatBinary
}

func (enc *BinaryEncoder) write(p []byte) error {
	if _, err := enc.w.Write(p); err != nil {
		return errors.Wrap(BadEncodingError, err.Error())
	}
	return nil
}

// WriteBoolean writes a boolean.
func (enc *BinaryEncoder) WriteBoolean(_ string, value bool) error {
	if value {
		enc.bs[0] = 1
	} else {
		enc.bs[0] = 0
	}
	return enc.write(enc.bs[:1])
}

// WriteSByte writes a sbyte.
func (enc *BinaryEncoder) WriteSByte(_ string, value int8) error {
	enc.bs[0] = byte(value)
	return enc.write(enc.bs[:1])
}

// WriteByte writes a byte.
func (enc *BinaryEncoder) WriteByte(_ string, value byte) error {
	enc.bs[0] = value
	return enc.write(enc.bs[:1])
}

// WriteInt16 writes an int16.
func (enc *BinaryEncoder) WriteInt16(_ string, value int16) error {
	binary.LittleEndian.PutUint16(enc.bs[:2], uint16(value))
	return enc.write(enc.bs[:2])
}

// WriteUInt16 writes an uint16.
func (enc *BinaryEncoder) WriteUInt16(_ string, value uint16) error {
	binary.LittleEndian.PutUint16(enc.bs[:2], value)
	return enc.write(enc.bs[:2])
}

// WriteInt32 writes an int32.
func (enc *BinaryEncoder) WriteInt32(_ string, value int32) error {
	binary.LittleEndian.PutUint32(enc.bs[:4], uint32(value))
	return enc.write(enc.bs[:4])
}

// WriteUInt32 writes an uint32.
func (enc *BinaryEncoder) WriteUInt32(_ string, value uint32) error {
	binary.LittleEndian.PutUint32(enc.bs[:4], value)
	return enc.write(enc.bs[:4])
}

// WriteInt64 writes an int64.
func (enc *BinaryEncoder) WriteInt64(_ string, value int64) error {
	binary.LittleEndian.PutUint64(enc.bs[:8], uint64(value))
	return enc.write(enc.bs[:8])
}

// WriteUInt64 writes an uint64.
func (enc *BinaryEncoder) WriteUInt64(_ string, value uint64) error {
	binary.LittleEndian.PutUint64(enc.bs[:8], value)
	return enc.write(enc.bs[:8])
}

// WriteFloat writes a float.
func (enc *BinaryEncoder) WriteFloat(_ string, value float32) error {
	binary.LittleEndian.PutUint32(enc.bs[:4], math.Float32bits(value))
	return enc.write(enc.bs[:4])
}

// WriteDouble writes a double.
func (enc *BinaryEncoder) WriteDouble(_ string, value float64) error {
	binary.LittleEndian.PutUint64(enc.bs[:8], math.Float64bits(value))
	return enc.write(enc.bs[:8])
}

// WriteString writes a string. The empty string is written as the null string.
func (enc *BinaryEncoder) WriteString(_ string, value string) error {
	if len(value) == 0 {
		return enc.WriteInt32("", -1)
	}
	if len(value) > math.MaxInt32 {
		return encodingError("string length %d exceeds int32", len(value))
	}
	if err := enc.WriteInt32("", int32(len(value))); err != nil {
		return err
	}
	// eliminate alloc of a second byte array and copying of one byte array to another.
	return enc.write(unsafe.Slice(unsafe.StringData(value), len(value)))
}

// WriteDateTime writes a date/time. Times before 1601 and the zero time are written as 0.
func (enc *BinaryEncoder) WriteDateTime(_ string, value time.Time) error {
	// ticks are 100 nanosecond intervals since January 1, 1601
	ticks := (value.Unix()+11644473600)*10000000 + int64(value.Nanosecond())/100
	if ticks < 0 || value.IsZero() {
		ticks = 0
	}
	if ticks >= 2650467743990000000 {
		ticks = 0x7FFFFFFFFFFFFFFF
	}
	return enc.WriteInt64("", ticks)
}

// WriteGUID writes a UUID
func (enc *BinaryEncoder) WriteGUID(_ string, value uuid.UUID) error {
	enc.bs[0] = value[3]
	enc.bs[1] = value[2]
	enc.bs[2] = value[1]
	enc.bs[3] = value[0]
	enc.bs[4] = value[5]
	enc.bs[5] = value[4]
	enc.bs[6] = value[7]
	enc.bs[7] = value[6]
	if err := enc.write(enc.bs[:8]); err != nil {
		return err
	}
	return enc.write(value[8:])
}

// WriteByteString writes a ByteString. The empty ByteString is written as the null ByteString.
func (enc *BinaryEncoder) WriteByteString(_ string, value ByteString) error {
	return enc.WriteString("", string(value))
}

// WriteXMLElement writes a XmlElement
func (enc *BinaryEncoder) WriteXMLElement(_ string, value XMLElement) error {
	return enc.WriteString("", string(value))
}

// writeNodeIDBody writes the smallest encoding of the NodeID, with the flags of an ExpandedNodeID.
func (enc *BinaryEncoder) writeNodeIDBody(value NodeID, flags byte) error {
	ns := value.namespaceIndex
	switch value.idType {
	case IDTypeNumeric:
		id := value.nid
		switch {
		case id <= 255 && ns == 0:
			enc.bs[0] = 0x00 | flags
			enc.bs[1] = byte(id)
			return enc.write(enc.bs[:2])
		case id <= 65535 && ns <= 255:
			enc.bs[0] = 0x01 | flags
			enc.bs[1] = byte(ns)
			binary.LittleEndian.PutUint16(enc.bs[2:4], uint16(id))
			return enc.write(enc.bs[:4])
		default:
			enc.bs[0] = 0x02 | flags
			binary.LittleEndian.PutUint16(enc.bs[1:3], ns)
			if err := enc.write(enc.bs[:3]); err != nil {
				return err
			}
			return enc.WriteUInt32("", id)
		}
	case IDTypeString:
		if err := enc.writeTagAndNamespace(0x03|flags, ns); err != nil {
			return err
		}
		return enc.WriteString("", value.sid)
	case IDTypeGUID:
		if err := enc.writeTagAndNamespace(0x04|flags, ns); err != nil {
			return err
		}
		return enc.WriteGUID("", value.gid)
	case IDTypeOpaque:
		if err := enc.writeTagAndNamespace(0x05|flags, ns); err != nil {
			return err
		}
		return enc.WriteByteString("", value.bid)
	}
	return encodingError("unknown node id type %d", value.idType)
}

func (enc *BinaryEncoder) writeTagAndNamespace(tag byte, ns uint16) error {
	enc.bs[0] = tag
	binary.LittleEndian.PutUint16(enc.bs[1:3], ns)
	return enc.write(enc.bs[:3])
}

// WriteNodeID writes a NodeID
func (enc *BinaryEncoder) WriteNodeID(_ string, value NodeID) error {
	return enc.writeNodeIDBody(value, 0)
}

// WriteExpandedNodeID writes an ExpandedNodeID
func (enc *BinaryEncoder) WriteExpandedNodeID(_ string, value ExpandedNodeID) error {
	var b byte
	id := value.nodeID
	if len(value.namespaceURI) > 0 {
		b |= 0x80
		id = id.WithNamespaceIndex(0)
	}
	if value.serverIndex > 0 {
		b |= 0x40
	}
	if err := enc.writeNodeIDBody(id, b); err != nil {
		return err
	}
	if (b & 0x80) != 0 {
		if err := enc.WriteString("", value.namespaceURI); err != nil {
			return err
		}
	}
	if (b & 0x40) != 0 {
		if err := enc.WriteUInt32("", value.serverIndex); err != nil {
			return err
		}
	}
	return nil
}

// WriteStatusCode writes a StatusCode
func (enc *BinaryEncoder) WriteStatusCode(_ string, value StatusCode) error {
	return enc.WriteUInt32("", uint32(value))
}

// WriteQualifiedName writes a QualifiedName
func (enc *BinaryEncoder) WriteQualifiedName(_ string, value QualifiedName) error {
	if err := enc.WriteUInt16("", value.NamespaceIndex); err != nil {
		return err
	}
	return enc.WriteString("", value.Name)
}

// WriteLocalizedText writes a LocalizedText
func (enc *BinaryEncoder) WriteLocalizedText(_ string, value LocalizedText) error {
	b := value.mask()
	if err := enc.WriteByte("", b); err != nil {
		return err
	}
	if (b & localizedTextLocale) != 0 {
		if err := enc.WriteString("", value.Locale); err != nil {
			return err
		}
	}
	if (b & localizedTextText) != 0 {
		if err := enc.WriteString("", value.Text); err != nil {
			return err
		}
	}
	return nil
}

// WriteExtensionObject writes an ExtensionObject. A decoded structure is written
// with the binary encoding id of its own codec, followed by the length of the body
// and the body. An encoded body is copied unchanged.
func (enc *BinaryEncoder) WriteExtensionObject(_ string, value ExtensionObject) error {
	if value.IsNull() {
		if err := enc.WriteNodeID("", NilNodeID); err != nil {
			return err
		}
		return enc.WriteByte("", 0x00)
	}
	if value.value == nil {
		id, err := wireNodeID(enc.ec, value.encodingID)
		if err != nil {
			return err
		}
		if value.hasBody && value.format == EncodingFormatJSON {
			// the binary form has no room for a json body, so decode it if a codec is known.
			decoded, err := value.Decode(enc.ec)
			if err != nil {
				return err
			}
			if decoded.value == nil {
				return encodingError("cannot write json body of %s in binary", value.encodingID)
			}
			return enc.WriteExtensionObject("", decoded)
		}
		if err := enc.WriteNodeID("", id); err != nil {
			return err
		}
		if !value.hasBody {
			return enc.WriteByte("", 0x00)
		}
		switch value.format {
		case EncodingFormatXML:
			if err := enc.WriteByte("", 0x02); err != nil {
				return err
			}
		default:
			if err := enc.WriteByte("", 0x01); err != nil {
				return err
			}
		}
		if err := enc.WriteInt32("", int32(len(value.body))); err != nil {
			return err
		}
		return enc.write(unsafe.Slice(unsafe.StringData(string(value.body)), len(value.body)))
	}
	codec, err := codecFor(enc.ec, value.value)
	if err != nil {
		return err
	}
	encodingID := codec.IDs().Binary
	if encodingID.IsNil() {
		return encodingError("%s has no binary encoding", codec.Name())
	}
	id, err := wireNodeID(enc.ec, encodingID)
	if err != nil {
		return err
	}
	if err := enc.WriteNodeID("", id); err != nil {
		return err
	}
	if err := enc.WriteByte("", 0x01); err != nil {
		return err
	}
	return enc.writeBody(value.value, codec)
}

// writeBody writes the length of the encoded structure followed by the structure.
func (enc *BinaryEncoder) writeBody(value any, codec Codec) error {
	// cast writer to BufferAt to access superpowers
	if buf, ok := enc.w.(buffer.BufferAt); ok {
		mark := buf.Len() // mark where length is written
		bs := make([]byte, 4)
		if err := enc.write(bs); err != nil {
			return err
		}
		start := buf.Len() // mark where encoding starts
		if err := enc.WriteStruct("", value, codec); err != nil {
			return err
		}
		end := buf.Len() // mark where encoding ends
		binary.LittleEndian.PutUint32(bs, uint32(end-start))
		// write actual length at mark
		if _, err := buf.WriteAt(bs, mark); err != nil {
			return errors.Wrap(BadEncodingError, err.Error())
		}
		return nil
	}
	// if BufferAt interface not available
	buf2 := newPartitionBuffer()
	defer buf2.Reset()
	enc2 := &BinaryEncoder{w: buf2, ec: enc.ec, guard: enc.guard}
	if err := enc2.WriteStruct("", value, codec); err != nil {
		return err
	}
	if err := enc.WriteInt32("", int32(buf2.Len())); err != nil {
		return err
	}
	buf3 := bytesPool.Get().([]byte)
	defer bytesPool.Put(buf3)
	if _, err := io.CopyBuffer(enc.w, buf2, buf3); err != nil {
		return errors.Wrap(BadEncodingError, err.Error())
	}
	return nil
}

// WriteDataValue writes a DataValue
func (enc *BinaryEncoder) WriteDataValue(_ string, value DataValue) error {
	b := value.mask()
	if err := enc.WriteByte("", b); err != nil {
		return err
	}
	if (b & dataValueValue) != 0 {
		if err := enc.WriteVariant("", value.Value); err != nil {
			return err
		}
	}
	if (b & dataValueStatusCode) != 0 {
		if err := enc.WriteStatusCode("", value.StatusCode); err != nil {
			return err
		}
	}
	if (b & dataValueSourceTimestamp) != 0 {
		if err := enc.WriteDateTime("", value.SourceTimestamp); err != nil {
			return err
		}
	}
	if (b & dataValueSourcePicoseconds) != 0 {
		if err := enc.WriteUInt16("", value.SourcePicoseconds); err != nil {
			return err
		}
	}
	if (b & dataValueServerTimestamp) != 0 {
		if err := enc.WriteDateTime("", value.ServerTimestamp); err != nil {
			return err
		}
	}
	if (b & dataValueServerPicoseconds) != 0 {
		if err := enc.WriteUInt16("", value.ServerPicoseconds); err != nil {
			return err
		}
	}
	return nil
}

// WriteVariant writes a Variant. The encoding byte holds the built-in type, 0x80 for
// arrays and 0x40 for arrays with dimensions.
func (enc *BinaryEncoder) WriteVariant(_ string, value Variant) error {
	if value.IsNil() {
		return enc.WriteByte("", 0)
	}
	if err := value.validate(); err != nil {
		return err
	}
	if err := enc.guard.enter(); err != nil {
		return err
	}
	defer enc.guard.leave()
	t := value.Type()
	switch {
	case value.IsMatrix():
		m := value.value.(Matrix)
		if err := enc.WriteByte("", byte(t)|0xC0); err != nil {
			return err
		}
		if err := enc.WriteInt32("", int32(m.Len())); err != nil {
			return err
		}
		if err := writeMatrixElements(enc, m); err != nil {
			return err
		}
		return WriteArray(enc, "", m.Dimensions(), Encoder.WriteInt32)
	case value.IsArray():
		if err := enc.WriteByte("", byte(t)|0x80); err != nil {
			return err
		}
		return writeBuiltinArray(enc, "", t, value.value)
	default:
		if err := enc.WriteByte("", byte(t)); err != nil {
			return err
		}
		return writeBuiltin(enc, "", t, value.value)
	}
}

// WriteDiagnosticInfo writes a DiagnosticInfo. The nil DiagnosticInfo is written as a zero mask.
func (enc *BinaryEncoder) WriteDiagnosticInfo(_ string, value *DiagnosticInfo) error {
	b := value.mask()
	if err := enc.WriteByte("", b); err != nil {
		return err
	}
	if b == 0 {
		return nil
	}
	if err := enc.guard.enter(); err != nil {
		return err
	}
	defer enc.guard.leave()
	if (b & diagnosticInfoSymbolicID) != 0 {
		if err := enc.WriteInt32("", *value.SymbolicID); err != nil {
			return err
		}
	}
	if (b & diagnosticInfoNamespaceURI) != 0 {
		if err := enc.WriteInt32("", *value.NamespaceURI); err != nil {
			return err
		}
	}
	if (b & diagnosticInfoLocale) != 0 {
		if err := enc.WriteInt32("", *value.Locale); err != nil {
			return err
		}
	}
	if (b & diagnosticInfoLocalizedText) != 0 {
		if err := enc.WriteInt32("", *value.LocalizedText); err != nil {
			return err
		}
	}
	if (b & diagnosticInfoAdditionalInfo) != 0 {
		if err := enc.WriteString("", *value.AdditionalInfo); err != nil {
			return err
		}
	}
	if (b & diagnosticInfoInnerStatusCode) != 0 {
		if err := enc.WriteStatusCode("", *value.InnerStatusCode); err != nil {
			return err
		}
	}
	if (b & diagnosticInfoInnerDiagnosticInfo) != 0 {
		if err := enc.WriteDiagnosticInfo("", value.InnerDiagnosticInfo); err != nil {
			return err
		}
	}
	return nil
}

// WriteEnum writes the value of an enumeration as an int32.
func (enc *BinaryEncoder) WriteEnum(_ string, value Enumeration) error {
	return enc.WriteInt32("", value.EnumValue())
}

// WriteStruct writes the fields of the structure with the codec.
func (enc *BinaryEncoder) WriteStruct(_ string, value any, codec Codec) error {
	if err := enc.guard.enter(); err != nil {
		return err
	}
	defer enc.guard.leave()
	return codec.Encode(enc.ec, enc, value)
}

// WriteEncodingMask writes the mask of optional fields that are present.
func (enc *BinaryEncoder) WriteEncodingMask(mask uint32) error {
	return enc.WriteUInt32("", mask)
}

// WriteSwitchField writes the index of the union member.
func (enc *BinaryEncoder) WriteSwitchField(value uint32) error {
	return enc.WriteUInt32("", value)
}

// WriteMatrix writes the dimensions followed by the elements, without a total length.
// The null Matrix is written as null dimensions.
func (enc *BinaryEncoder) WriteMatrix(_ string, value Matrix) error {
	if value.Elements() == nil {
		return enc.WriteNullArray("")
	}
	if err := WriteArray(enc, "", value.Dimensions(), Encoder.WriteInt32); err != nil {
		return err
	}
	return writeMatrixElements(enc, value)
}

// WriteArrayStart writes the length of the array.
func (enc *BinaryEncoder) WriteArrayStart(_ string, length int) error {
	if length > math.MaxInt32 {
		return encodingError("array length %d exceeds int32", length)
	}
	return enc.WriteInt32("", int32(length))
}

// WriteArrayEnd does nothing.
func (enc *BinaryEncoder) WriteArrayEnd(_ string) error {
	return nil
}

// WriteNullArray writes the length -1.
func (enc *BinaryEncoder) WriteNullArray(_ string) error {
	return enc.WriteInt32("", -1)
}
