// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

import (
	"time"
)

// RequestHeader is the common header of every service request.
type RequestHeader struct {
	AuthenticationToken NodeID
	Timestamp           time.Time
	RequestHandle       uint32
	ReturnDiagnostics   uint32
	AuditEntryID        string
	TimeoutHint         uint32
	AdditionalHeader    ExtensionObject
}

// TypeID returns the id of the data type.
func (RequestHeader) TypeID() ExpandedNodeID {
	return NewExpandedNodeID(DataTypeIDRequestHeader)
}

// ResponseHeader is the common header of every service response.
type ResponseHeader struct {
	Timestamp          time.Time
	RequestHandle      uint32
	ServiceResult      StatusCode
	ServiceDiagnostics *DiagnosticInfo
	StringTable        []string
	AdditionalHeader   ExtensionObject
}

// TypeID returns the id of the data type.
func (ResponseHeader) TypeID() ExpandedNodeID {
	return NewExpandedNodeID(DataTypeIDResponseHeader)
}

// ServiceFault is the response to a request that failed as a whole.
type ServiceFault struct {
	ResponseHeader ResponseHeader
}

// TypeID returns the id of the data type.
func (ServiceFault) TypeID() ExpandedNodeID {
	return NewExpandedNodeID(DataTypeIDServiceFault)
}

// WriteResponse is the response to a WriteRequest.
type WriteResponse struct {
	ResponseHeader  ResponseHeader
	Results         []StatusCode
	DiagnosticInfos []*DiagnosticInfo
}

// TypeID returns the id of the data type.
func (WriteResponse) TypeID() ExpandedNodeID {
	return NewExpandedNodeID(DataTypeIDWriteResponse)
}

var (
	// RequestHeaderCodec encodes RequestHeader.
	RequestHeaderCodec = NewDataTypeCodec("RequestHeader",
		standardIDs(DataTypeIDRequestHeader, ObjectIDRequestHeaderEncodingDefaultBinary, ObjectIDRequestHeaderEncodingDefaultXML, ObjectIDRequestHeaderEncodingDefaultJSON),
		&StructureDefinition{
			DefaultEncodingID: ObjectIDRequestHeaderEncodingDefaultBinary,
			Fields: []StructureField{
				newField("AuthenticationToken", DataTypeIDNodeID, ValueRankScalar),
				newField("Timestamp", DataTypeIDUtcTime, ValueRankScalar),
				newField("RequestHandle", DataTypeIDIntegerID, ValueRankScalar),
				newField("ReturnDiagnostics", DataTypeIDUInt32, ValueRankScalar),
				newField("AuditEntryId", DataTypeIDString, ValueRankScalar),
				newField("TimeoutHint", DataTypeIDUInt32, ValueRankScalar),
				newField("AdditionalHeader", DataTypeIDStructure, ValueRankScalar),
			},
		},
		encodeRequestHeader, decodeRequestHeader)

	// ResponseHeaderCodec encodes ResponseHeader.
	ResponseHeaderCodec = NewDataTypeCodec("ResponseHeader",
		standardIDs(DataTypeIDResponseHeader, ObjectIDResponseHeaderEncodingDefaultBinary, ObjectIDResponseHeaderEncodingDefaultXML, ObjectIDResponseHeaderEncodingDefaultJSON),
		&StructureDefinition{
			DefaultEncodingID: ObjectIDResponseHeaderEncodingDefaultBinary,
			Fields: []StructureField{
				newField("Timestamp", DataTypeIDUtcTime, ValueRankScalar),
				newField("RequestHandle", DataTypeIDIntegerID, ValueRankScalar),
				newField("ServiceResult", DataTypeIDStatusCode, ValueRankScalar),
				newField("ServiceDiagnostics", DataTypeIDDiagnosticInfo, ValueRankScalar),
				newField("StringTable", DataTypeIDString, ValueRankOneDimension),
				newField("AdditionalHeader", DataTypeIDStructure, ValueRankScalar),
			},
		},
		encodeResponseHeader, decodeResponseHeader)

	// ServiceFaultCodec encodes ServiceFault.
	ServiceFaultCodec = NewDataTypeCodec("ServiceFault",
		standardIDs(DataTypeIDServiceFault, ObjectIDServiceFaultEncodingDefaultBinary, ObjectIDServiceFaultEncodingDefaultXML, ObjectIDServiceFaultEncodingDefaultJSON),
		&StructureDefinition{
			DefaultEncodingID: ObjectIDServiceFaultEncodingDefaultBinary,
			Fields: []StructureField{
				newField("ResponseHeader", DataTypeIDResponseHeader, ValueRankScalar),
			},
		},
		encodeServiceFault, decodeServiceFault)

	// WriteResponseCodec encodes WriteResponse.
	WriteResponseCodec = NewDataTypeCodec("WriteResponse",
		standardIDs(DataTypeIDWriteResponse, ObjectIDWriteResponseEncodingDefaultBinary, ObjectIDWriteResponseEncodingDefaultXML, ObjectIDWriteResponseEncodingDefaultJSON),
		&StructureDefinition{
			DefaultEncodingID: ObjectIDWriteResponseEncodingDefaultBinary,
			Fields: []StructureField{
				newField("ResponseHeader", DataTypeIDResponseHeader, ValueRankScalar),
				newField("Results", DataTypeIDStatusCode, ValueRankOneDimension),
				newField("DiagnosticInfos", DataTypeIDDiagnosticInfo, ValueRankOneDimension),
			},
		},
		encodeWriteResponse, decodeWriteResponse)
)

func encodeRequestHeader(_ EncodingContext, enc Encoder, v RequestHeader) error {
	if err := enc.WriteNodeID("AuthenticationToken", v.AuthenticationToken); err != nil {
		return err
	}
	if err := enc.WriteDateTime("Timestamp", v.Timestamp); err != nil {
		return err
	}
	if err := enc.WriteUInt32("RequestHandle", v.RequestHandle); err != nil {
		return err
	}
	if err := enc.WriteUInt32("ReturnDiagnostics", v.ReturnDiagnostics); err != nil {
		return err
	}
	if err := enc.WriteString("AuditEntryId", v.AuditEntryID); err != nil {
		return err
	}
	if err := enc.WriteUInt32("TimeoutHint", v.TimeoutHint); err != nil {
		return err
	}
	return enc.WriteExtensionObject("AdditionalHeader", v.AdditionalHeader)
}

func decodeRequestHeader(_ EncodingContext, dec Decoder) (RequestHeader, error) {
	var v RequestHeader
	if err := dec.ReadNodeID("AuthenticationToken", &v.AuthenticationToken); err != nil {
		return v, err
	}
	if err := dec.ReadDateTime("Timestamp", &v.Timestamp); err != nil {
		return v, err
	}
	if err := dec.ReadUInt32("RequestHandle", &v.RequestHandle); err != nil {
		return v, err
	}
	if err := dec.ReadUInt32("ReturnDiagnostics", &v.ReturnDiagnostics); err != nil {
		return v, err
	}
	if err := dec.ReadString("AuditEntryId", &v.AuditEntryID); err != nil {
		return v, err
	}
	if err := dec.ReadUInt32("TimeoutHint", &v.TimeoutHint); err != nil {
		return v, err
	}
	if err := dec.ReadExtensionObject("AdditionalHeader", &v.AdditionalHeader); err != nil {
		return v, err
	}
	return v, nil
}

func encodeResponseHeader(_ EncodingContext, enc Encoder, v ResponseHeader) error {
	if err := enc.WriteDateTime("Timestamp", v.Timestamp); err != nil {
		return err
	}
	if err := enc.WriteUInt32("RequestHandle", v.RequestHandle); err != nil {
		return err
	}
	if err := enc.WriteStatusCode("ServiceResult", v.ServiceResult); err != nil {
		return err
	}
	if err := enc.WriteDiagnosticInfo("ServiceDiagnostics", v.ServiceDiagnostics); err != nil {
		return err
	}
	if err := WriteArray(enc, "StringTable", v.StringTable, Encoder.WriteString); err != nil {
		return err
	}
	return enc.WriteExtensionObject("AdditionalHeader", v.AdditionalHeader)
}

func decodeResponseHeader(_ EncodingContext, dec Decoder) (ResponseHeader, error) {
	var v ResponseHeader
	if err := dec.ReadDateTime("Timestamp", &v.Timestamp); err != nil {
		return v, err
	}
	if err := dec.ReadUInt32("RequestHandle", &v.RequestHandle); err != nil {
		return v, err
	}
	if err := dec.ReadStatusCode("ServiceResult", &v.ServiceResult); err != nil {
		return v, err
	}
	if err := dec.ReadDiagnosticInfo("ServiceDiagnostics", &v.ServiceDiagnostics); err != nil {
		return v, err
	}
	if err := ReadArray(dec, "StringTable", &v.StringTable, Decoder.ReadString); err != nil {
		return v, err
	}
	if err := dec.ReadExtensionObject("AdditionalHeader", &v.AdditionalHeader); err != nil {
		return v, err
	}
	return v, nil
}

func encodeServiceFault(_ EncodingContext, enc Encoder, v ServiceFault) error {
	return enc.WriteStruct("ResponseHeader", v.ResponseHeader, ResponseHeaderCodec)
}

func decodeServiceFault(_ EncodingContext, dec Decoder) (ServiceFault, error) {
	var v ServiceFault
	if err := ReadStructAs(dec, "ResponseHeader", ResponseHeaderCodec, &v.ResponseHeader); err != nil {
		return v, err
	}
	return v, nil
}

func encodeWriteResponse(_ EncodingContext, enc Encoder, v WriteResponse) error {
	if err := enc.WriteStruct("ResponseHeader", v.ResponseHeader, ResponseHeaderCodec); err != nil {
		return err
	}
	if err := WriteArray(enc, "Results", v.Results, Encoder.WriteStatusCode); err != nil {
		return err
	}
	return WriteArray(enc, "DiagnosticInfos", v.DiagnosticInfos, Encoder.WriteDiagnosticInfo)
}

func decodeWriteResponse(_ EncodingContext, dec Decoder) (WriteResponse, error) {
	var v WriteResponse
	if err := ReadStructAs(dec, "ResponseHeader", ResponseHeaderCodec, &v.ResponseHeader); err != nil {
		return v, err
	}
	if err := ReadArray(dec, "Results", &v.Results, Decoder.ReadStatusCode); err != nil {
		return v, err
	}
	if err := ReadArray(dec, "DiagnosticInfos", &v.DiagnosticInfos, Decoder.ReadDiagnosticInfo); err != nil {
		return v, err
	}
	return v, nil
}
