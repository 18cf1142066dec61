// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

// DataTypeIDs of the built-in types. The numeric identifier equals the VariantType
// for all but Structure and BaseDataType.
var (
	DataTypeIDBoolean        = NewNodeIDNumeric(0, 1)
	DataTypeIDSByte          = NewNodeIDNumeric(0, 2)
	DataTypeIDByte           = NewNodeIDNumeric(0, 3)
	DataTypeIDInt16          = NewNodeIDNumeric(0, 4)
	DataTypeIDUInt16         = NewNodeIDNumeric(0, 5)
	DataTypeIDInt32          = NewNodeIDNumeric(0, 6)
	DataTypeIDUInt32         = NewNodeIDNumeric(0, 7)
	DataTypeIDInt64          = NewNodeIDNumeric(0, 8)
	DataTypeIDUInt64         = NewNodeIDNumeric(0, 9)
	DataTypeIDFloat          = NewNodeIDNumeric(0, 10)
	DataTypeIDDouble         = NewNodeIDNumeric(0, 11)
	DataTypeIDString         = NewNodeIDNumeric(0, 12)
	DataTypeIDDateTime       = NewNodeIDNumeric(0, 13)
	DataTypeIDGUID           = NewNodeIDNumeric(0, 14)
	DataTypeIDByteString     = NewNodeIDNumeric(0, 15)
	DataTypeIDXMLElement     = NewNodeIDNumeric(0, 16)
	DataTypeIDNodeID         = NewNodeIDNumeric(0, 17)
	DataTypeIDExpandedNodeID = NewNodeIDNumeric(0, 18)
	DataTypeIDStatusCode     = NewNodeIDNumeric(0, 19)
	DataTypeIDQualifiedName  = NewNodeIDNumeric(0, 20)
	DataTypeIDLocalizedText  = NewNodeIDNumeric(0, 21)
	DataTypeIDStructure      = NewNodeIDNumeric(0, 22)
	DataTypeIDDataValue      = NewNodeIDNumeric(0, 23)
	DataTypeIDBaseDataType   = NewNodeIDNumeric(0, 24)
	DataTypeIDDiagnosticInfo = NewNodeIDNumeric(0, 25)
	DataTypeIDNumber         = NewNodeIDNumeric(0, 26)
	DataTypeIDInteger        = NewNodeIDNumeric(0, 27)
	DataTypeIDUInteger       = NewNodeIDNumeric(0, 28)
	DataTypeIDEnumeration    = NewNodeIDNumeric(0, 29)
	DataTypeIDImage          = NewNodeIDNumeric(0, 30)
	DataTypeIDIntegerID      = NewNodeIDNumeric(0, 288)
	DataTypeIDCounter        = NewNodeIDNumeric(0, 289)
	DataTypeIDDuration       = NewNodeIDNumeric(0, 290)
	DataTypeIDNumericRange   = NewNodeIDNumeric(0, 291)
	DataTypeIDUtcTime        = NewNodeIDNumeric(0, 294)
	DataTypeIDLocaleID       = NewNodeIDNumeric(0, 295)
)

// DataTypeIDs of the standard structures and enumerations.
var (
	DataTypeIDDataTypeDefinition     = NewNodeIDNumeric(0, 97)
	DataTypeIDStructureType          = NewNodeIDNumeric(0, 98)
	DataTypeIDStructureDefinition    = NewNodeIDNumeric(0, 99)
	DataTypeIDEnumDefinition         = NewNodeIDNumeric(0, 100)
	DataTypeIDStructureField         = NewNodeIDNumeric(0, 101)
	DataTypeIDEnumField              = NewNodeIDNumeric(0, 102)
	DataTypeIDArgument               = NewNodeIDNumeric(0, 296)
	DataTypeIDRequestHeader          = NewNodeIDNumeric(0, 389)
	DataTypeIDResponseHeader         = NewNodeIDNumeric(0, 392)
	DataTypeIDServiceFault           = NewNodeIDNumeric(0, 395)
	DataTypeIDFilterOperator         = NewNodeIDNumeric(0, 576)
	DataTypeIDContentFilterElement   = NewNodeIDNumeric(0, 583)
	DataTypeIDFilterOperand          = NewNodeIDNumeric(0, 589)
	DataTypeIDHistoryReadDetails     = NewNodeIDNumeric(0, 641)
	DataTypeIDElementOperand         = NewNodeIDNumeric(0, 592)
	DataTypeIDLiteralOperand         = NewNodeIDNumeric(0, 595)
	DataTypeIDSimpleAttributeOperand = NewNodeIDNumeric(0, 601)
	DataTypeIDWriteResponse          = NewNodeIDNumeric(0, 674)
	DataTypeIDMonitoringFilter       = NewNodeIDNumeric(0, 719)
	DataTypeIDNotificationData       = NewNodeIDNumeric(0, 945)
	DataTypeIDEnumValueType          = NewNodeIDNumeric(0, 7594)
)

// ObjectIDs of the encodings of the standard structures.
var (
	ObjectIDStructureDefinitionEncodingDefaultBinary    = NewNodeIDNumeric(0, 122)
	ObjectIDStructureDefinitionEncodingDefaultXML       = NewNodeIDNumeric(0, 14797)
	ObjectIDStructureDefinitionEncodingDefaultJSON      = NewNodeIDNumeric(0, 15066)
	ObjectIDEnumDefinitionEncodingDefaultBinary         = NewNodeIDNumeric(0, 123)
	ObjectIDEnumDefinitionEncodingDefaultXML            = NewNodeIDNumeric(0, 14798)
	ObjectIDEnumDefinitionEncodingDefaultJSON           = NewNodeIDNumeric(0, 15067)
	ObjectIDStructureFieldEncodingDefaultBinary         = NewNodeIDNumeric(0, 14844)
	ObjectIDStructureFieldEncodingDefaultXML            = NewNodeIDNumeric(0, 14796)
	ObjectIDStructureFieldEncodingDefaultJSON           = NewNodeIDNumeric(0, 15065)
	ObjectIDEnumFieldEncodingDefaultBinary              = NewNodeIDNumeric(0, 14845)
	ObjectIDEnumFieldEncodingDefaultXML                 = NewNodeIDNumeric(0, 14799)
	ObjectIDEnumFieldEncodingDefaultJSON                = NewNodeIDNumeric(0, 15068)
	ObjectIDArgumentEncodingDefaultBinary               = NewNodeIDNumeric(0, 298)
	ObjectIDArgumentEncodingDefaultXML                  = NewNodeIDNumeric(0, 297)
	ObjectIDArgumentEncodingDefaultJSON                 = NewNodeIDNumeric(0, 15081)
	ObjectIDRequestHeaderEncodingDefaultBinary          = NewNodeIDNumeric(0, 391)
	ObjectIDRequestHeaderEncodingDefaultXML             = NewNodeIDNumeric(0, 390)
	ObjectIDRequestHeaderEncodingDefaultJSON            = NewNodeIDNumeric(0, 15088)
	ObjectIDResponseHeaderEncodingDefaultBinary         = NewNodeIDNumeric(0, 394)
	ObjectIDResponseHeaderEncodingDefaultXML            = NewNodeIDNumeric(0, 393)
	ObjectIDResponseHeaderEncodingDefaultJSON           = NewNodeIDNumeric(0, 15089)
	ObjectIDServiceFaultEncodingDefaultBinary           = NewNodeIDNumeric(0, 397)
	ObjectIDServiceFaultEncodingDefaultXML              = NewNodeIDNumeric(0, 396)
	ObjectIDServiceFaultEncodingDefaultJSON             = NewNodeIDNumeric(0, 15090)
	ObjectIDContentFilterElementEncodingDefaultBinary   = NewNodeIDNumeric(0, 585)
	ObjectIDContentFilterElementEncodingDefaultXML      = NewNodeIDNumeric(0, 584)
	ObjectIDContentFilterElementEncodingDefaultJSON     = NewNodeIDNumeric(0, 15204)
	ObjectIDElementOperandEncodingDefaultBinary         = NewNodeIDNumeric(0, 594)
	ObjectIDElementOperandEncodingDefaultXML            = NewNodeIDNumeric(0, 593)
	ObjectIDElementOperandEncodingDefaultJSON           = NewNodeIDNumeric(0, 15206)
	ObjectIDLiteralOperandEncodingDefaultBinary         = NewNodeIDNumeric(0, 597)
	ObjectIDLiteralOperandEncodingDefaultXML            = NewNodeIDNumeric(0, 596)
	ObjectIDLiteralOperandEncodingDefaultJSON           = NewNodeIDNumeric(0, 15207)
	ObjectIDSimpleAttributeOperandEncodingDefaultBinary = NewNodeIDNumeric(0, 603)
	ObjectIDSimpleAttributeOperandEncodingDefaultXML    = NewNodeIDNumeric(0, 602)
	ObjectIDSimpleAttributeOperandEncodingDefaultJSON   = NewNodeIDNumeric(0, 15209)
	ObjectIDWriteResponseEncodingDefaultBinary          = NewNodeIDNumeric(0, 676)
	ObjectIDWriteResponseEncodingDefaultXML             = NewNodeIDNumeric(0, 675)
	ObjectIDWriteResponseEncodingDefaultJSON            = NewNodeIDNumeric(0, 15272)
	ObjectIDEnumValueTypeEncodingDefaultBinary          = NewNodeIDNumeric(0, 8251)
	ObjectIDEnumValueTypeEncodingDefaultXML             = NewNodeIDNumeric(0, 7616)
	ObjectIDEnumValueTypeEncodingDefaultJSON            = NewNodeIDNumeric(0, 15082)
)

// standardIDs returns the ids of a structure in namespace 0.
func standardIDs(dataType, binary, xml, json NodeID) DataTypeIDs {
	return DataTypeIDs{
		DataType: NewExpandedNodeID(dataType),
		Binary:   NewExpandedNodeID(binary),
		XML:      NewExpandedNodeID(xml),
		JSON:     NewExpandedNodeID(json),
	}
}

// builtinDataTypes maps the data types of fields to the built-in type they are encoded as.
var builtinDataTypes = map[NodeID]VariantType{
	DataTypeIDBoolean:        VariantTypeBoolean,
	DataTypeIDSByte:          VariantTypeSByte,
	DataTypeIDByte:           VariantTypeByte,
	DataTypeIDInt16:          VariantTypeInt16,
	DataTypeIDUInt16:         VariantTypeUInt16,
	DataTypeIDInt32:          VariantTypeInt32,
	DataTypeIDUInt32:         VariantTypeUInt32,
	DataTypeIDInt64:          VariantTypeInt64,
	DataTypeIDUInt64:         VariantTypeUInt64,
	DataTypeIDFloat:          VariantTypeFloat,
	DataTypeIDDouble:         VariantTypeDouble,
	DataTypeIDString:         VariantTypeString,
	DataTypeIDDateTime:       VariantTypeDateTime,
	DataTypeIDGUID:           VariantTypeGUID,
	DataTypeIDByteString:     VariantTypeByteString,
	DataTypeIDXMLElement:     VariantTypeXMLElement,
	DataTypeIDNodeID:         VariantTypeNodeID,
	DataTypeIDExpandedNodeID: VariantTypeExpandedNodeID,
	DataTypeIDStatusCode:     VariantTypeStatusCode,
	DataTypeIDQualifiedName:  VariantTypeQualifiedName,
	DataTypeIDLocalizedText:  VariantTypeLocalizedText,
	DataTypeIDStructure:      VariantTypeExtensionObject,
	DataTypeIDDataValue:      VariantTypeDataValue,
	DataTypeIDBaseDataType:   VariantTypeVariant,
	DataTypeIDDiagnosticInfo: VariantTypeDiagnosticInfo,
	DataTypeIDNumber:         VariantTypeVariant,
	DataTypeIDInteger:        VariantTypeVariant,
	DataTypeIDUInteger:       VariantTypeVariant,
	DataTypeIDImage:          VariantTypeByteString,
	DataTypeIDIntegerID:      VariantTypeUInt32,
	DataTypeIDCounter:        VariantTypeUInt32,
	DataTypeIDDuration:       VariantTypeDouble,
	DataTypeIDNumericRange:   VariantTypeString,
	DataTypeIDUtcTime:        VariantTypeDateTime,
	DataTypeIDLocaleID:       VariantTypeString,
	DataTypeIDFilterOperand:  VariantTypeExtensionObject,

	// abstract structures are carried in an ExtensionObject holding the concrete subtype.
	DataTypeIDDataTypeDefinition: VariantTypeExtensionObject,
	DataTypeIDHistoryReadDetails: VariantTypeExtensionObject,
	DataTypeIDMonitoringFilter:   VariantTypeExtensionObject,
	DataTypeIDNotificationData:   VariantTypeExtensionObject,
}
