// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

// PermissionField is a bit of PermissionType.
type PermissionField uint8

// PermissionFields
const (
	PermissionBrowse               PermissionField = 0
	PermissionReadRolePermissions  PermissionField = 1
	PermissionWriteAttribute       PermissionField = 2
	PermissionWriteRolePermissions PermissionField = 3
	PermissionWriteHistorizing     PermissionField = 4
	PermissionRead                 PermissionField = 5
	PermissionWrite                PermissionField = 6
	PermissionReadHistory          PermissionField = 7
	PermissionInsertHistory        PermissionField = 8
	PermissionModifyHistory        PermissionField = 9
	PermissionDeleteHistory        PermissionField = 10
	PermissionReceiveEvents        PermissionField = 11
	PermissionCall                 PermissionField = 12
	PermissionAddReference         PermissionField = 13
	PermissionRemoveReference      PermissionField = 14
	PermissionDeleteNode           PermissionField = 15
	PermissionAddNode              PermissionField = 16
)

var permissionFieldNames = map[PermissionField]string{
	0:  "Browse",
	1:  "ReadRolePermissions",
	2:  "WriteAttribute",
	3:  "WriteRolePermissions",
	4:  "WriteHistorizing",
	5:  "Read",
	6:  "Write",
	7:  "ReadHistory",
	8:  "InsertHistory",
	9:  "ModifyHistory",
	10: "DeleteHistory",
	11: "ReceiveEvents",
	12: "Call",
	13: "AddReference",
	14: "RemoveReference",
	15: "DeleteNode",
	16: "AddNode",
}

// String returns the name of the bit.
func (f PermissionField) String() string {
	return permissionFieldNames[f]
}

// PermissionType is the set of permission bits of a role on a node.
type PermissionType = OptionSet[uint32, PermissionField]

// PermissionTypeOf returns the PermissionType with the bits of the fields set.
func PermissionTypeOf(fields ...PermissionField) PermissionType {
	return OptionSetOf[uint32](fields...)
}

// AccessLevelField is a bit of AccessLevelType.
type AccessLevelField uint8

// AccessLevelFields
const (
	AccessLevelCurrentRead    AccessLevelField = 0
	AccessLevelCurrentWrite   AccessLevelField = 1
	AccessLevelHistoryRead    AccessLevelField = 2
	AccessLevelHistoryWrite   AccessLevelField = 3
	AccessLevelSemanticChange AccessLevelField = 4
	AccessLevelStatusWrite    AccessLevelField = 5
	AccessLevelTimestampWrite AccessLevelField = 6
)

var accessLevelFieldNames = map[AccessLevelField]string{
	0: "CurrentRead",
	1: "CurrentWrite",
	2: "HistoryRead",
	3: "HistoryWrite",
	4: "SemanticChange",
	5: "StatusWrite",
	6: "TimestampWrite",
}

// String returns the name of the bit.
func (f AccessLevelField) String() string {
	return accessLevelFieldNames[f]
}

// AccessLevelType is the set of access to the value attribute of a variable.
type AccessLevelType = OptionSet[uint8, AccessLevelField]

// AccessLevelTypeOf returns the AccessLevelType with the bits of the fields set.
func AccessLevelTypeOf(fields ...AccessLevelField) AccessLevelType {
	return OptionSetOf[uint8](fields...)
}

// AccessLevelExField is a bit of AccessLevelExType.
type AccessLevelExField uint8

// AccessLevelExFields
const (
	AccessLevelExCurrentRead        AccessLevelExField = 0
	AccessLevelExCurrentWrite       AccessLevelExField = 1
	AccessLevelExHistoryRead        AccessLevelExField = 2
	AccessLevelExHistoryWrite       AccessLevelExField = 3
	AccessLevelExSemanticChange     AccessLevelExField = 4
	AccessLevelExStatusWrite        AccessLevelExField = 5
	AccessLevelExTimestampWrite     AccessLevelExField = 6
	AccessLevelExNonatomicRead      AccessLevelExField = 8
	AccessLevelExNonatomicWrite     AccessLevelExField = 9
	AccessLevelExWriteFullArrayOnly AccessLevelExField = 10
	AccessLevelExNoSubDataTypes     AccessLevelExField = 11
)

var accessLevelExFieldNames = map[AccessLevelExField]string{
	0:  "CurrentRead",
	1:  "CurrentWrite",
	2:  "HistoryRead",
	3:  "HistoryWrite",
	4:  "SemanticChange",
	5:  "StatusWrite",
	6:  "TimestampWrite",
	8:  "NonatomicRead",
	9:  "NonatomicWrite",
	10: "WriteFullArrayOnly",
	11: "NoSubDataTypes",
}

// String returns the name of the bit.
func (f AccessLevelExField) String() string {
	return accessLevelExFieldNames[f]
}

// AccessLevelExType is the set of extended access to the value attribute of a variable.
type AccessLevelExType = OptionSet[uint32, AccessLevelExField]

// AccessLevelExTypeOf returns the AccessLevelExType with the bits of the fields set.
func AccessLevelExTypeOf(fields ...AccessLevelExField) AccessLevelExType {
	return OptionSetOf[uint32](fields...)
}

// EventNotifierField is a bit of EventNotifierType.
type EventNotifierField uint8

// EventNotifierFields
const (
	EventNotifierSubscribeToEvents EventNotifierField = 0
	EventNotifierHistoryRead       EventNotifierField = 2
	EventNotifierHistoryWrite      EventNotifierField = 3
)

var eventNotifierFieldNames = map[EventNotifierField]string{
	0: "SubscribeToEvents",
	2: "HistoryRead",
	3: "HistoryWrite",
}

// String returns the name of the bit.
func (f EventNotifierField) String() string {
	return eventNotifierFieldNames[f]
}

// EventNotifierType is the set of event capabilities of an object or view.
type EventNotifierType = OptionSet[uint8, EventNotifierField]

// EventNotifierTypeOf returns the EventNotifierType with the bits of the fields set.
func EventNotifierTypeOf(fields ...EventNotifierField) EventNotifierType {
	return OptionSetOf[uint8](fields...)
}

// AccessRestrictionField is a bit of AccessRestrictionType.
type AccessRestrictionField uint8

// AccessRestrictionFields
const (
	AccessRestrictionSigningRequired           AccessRestrictionField = 0
	AccessRestrictionEncryptionRequired        AccessRestrictionField = 1
	AccessRestrictionSessionRequired           AccessRestrictionField = 2
	AccessRestrictionApplyRestrictionsToBrowse AccessRestrictionField = 3
)

var accessRestrictionFieldNames = map[AccessRestrictionField]string{
	0: "SigningRequired",
	1: "EncryptionRequired",
	2: "SessionRequired",
	3: "ApplyRestrictionsToBrowse",
}

// String returns the name of the bit.
func (f AccessRestrictionField) String() string {
	return accessRestrictionFieldNames[f]
}

// AccessRestrictionType is the set of restrictions on access to a node.
type AccessRestrictionType = OptionSet[uint16, AccessRestrictionField]

// AccessRestrictionTypeOf returns the AccessRestrictionType with the bits of the fields set.
func AccessRestrictionTypeOf(fields ...AccessRestrictionField) AccessRestrictionType {
	return OptionSetOf[uint16](fields...)
}

// AttributeWriteMaskField is a bit of AttributeWriteMask.
type AttributeWriteMaskField uint8

// AttributeWriteMaskFields
const (
	AttributeWriteMaskAccessLevel             AttributeWriteMaskField = 0
	AttributeWriteMaskArrayDimensions         AttributeWriteMaskField = 1
	AttributeWriteMaskBrowseName              AttributeWriteMaskField = 2
	AttributeWriteMaskContainsNoLoops         AttributeWriteMaskField = 3
	AttributeWriteMaskDataType                AttributeWriteMaskField = 4
	AttributeWriteMaskDescription             AttributeWriteMaskField = 5
	AttributeWriteMaskDisplayName             AttributeWriteMaskField = 6
	AttributeWriteMaskEventNotifier           AttributeWriteMaskField = 7
	AttributeWriteMaskExecutable              AttributeWriteMaskField = 8
	AttributeWriteMaskHistorizing             AttributeWriteMaskField = 9
	AttributeWriteMaskInverseName             AttributeWriteMaskField = 10
	AttributeWriteMaskIsAbstract              AttributeWriteMaskField = 11
	AttributeWriteMaskMinimumSamplingInterval AttributeWriteMaskField = 12
	AttributeWriteMaskNodeClass               AttributeWriteMaskField = 13
	AttributeWriteMaskNodeId                  AttributeWriteMaskField = 14
	AttributeWriteMaskSymmetric               AttributeWriteMaskField = 15
	AttributeWriteMaskUserAccessLevel         AttributeWriteMaskField = 16
	AttributeWriteMaskUserExecutable          AttributeWriteMaskField = 17
	AttributeWriteMaskUserWriteMask           AttributeWriteMaskField = 18
	AttributeWriteMaskValueRank               AttributeWriteMaskField = 19
	AttributeWriteMaskWriteMask               AttributeWriteMaskField = 20
	AttributeWriteMaskValueForVariableType    AttributeWriteMaskField = 21
	AttributeWriteMaskDataTypeDefinition      AttributeWriteMaskField = 22
	AttributeWriteMaskRolePermissions         AttributeWriteMaskField = 23
	AttributeWriteMaskAccessRestrictions      AttributeWriteMaskField = 24
	AttributeWriteMaskAccessLevelEx           AttributeWriteMaskField = 25
)

var attributeWriteMaskFieldNames = map[AttributeWriteMaskField]string{
	0:  "AccessLevel",
	1:  "ArrayDimensions",
	2:  "BrowseName",
	3:  "ContainsNoLoops",
	4:  "DataType",
	5:  "Description",
	6:  "DisplayName",
	7:  "EventNotifier",
	8:  "Executable",
	9:  "Historizing",
	10: "InverseName",
	11: "IsAbstract",
	12: "MinimumSamplingInterval",
	13: "NodeClass",
	14: "NodeId",
	15: "Symmetric",
	16: "UserAccessLevel",
	17: "UserExecutable",
	18: "UserWriteMask",
	19: "ValueRank",
	20: "WriteMask",
	21: "ValueForVariableType",
	22: "DataTypeDefinition",
	23: "RolePermissions",
	24: "AccessRestrictions",
	25: "AccessLevelEx",
}

// String returns the name of the bit.
func (f AttributeWriteMaskField) String() string {
	return attributeWriteMaskFieldNames[f]
}

// AttributeWriteMask is the set of attributes that are writable.
type AttributeWriteMask = OptionSet[uint32, AttributeWriteMaskField]

// AttributeWriteMaskOf returns the AttributeWriteMask with the bits of the fields set.
func AttributeWriteMaskOf(fields ...AttributeWriteMaskField) AttributeWriteMask {
	return OptionSetOf[uint32](fields...)
}
