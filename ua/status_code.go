// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

// StatusCode is the result of an operation. A StatusCode is an error.
type StatusCode uint32

// IsGood returns true if the StatusCode is good.
func (c StatusCode) IsGood() bool {
	return (uint32(c) & SeverityMask) == SeverityGood
}

// IsBad returns true if the StatusCode is bad.
func (c StatusCode) IsBad() bool {
	return (uint32(c) & SeverityMask) == SeverityBad
}

// IsUncertain returns true if the StatusCode is uncertain.
func (c StatusCode) IsUncertain() bool {
	return (uint32(c) & SeverityMask) == SeverityUncertain
}

// IsStructureChanged returns true if the structure is changed.
func (c StatusCode) IsStructureChanged() bool {
	return (uint32(c) & StructureChanged) == StructureChanged
}

// IsSemanticsChanged returns true if the semantics is changed.
func (c StatusCode) IsSemanticsChanged() bool {
	return (uint32(c) & SemanticsChanged) == SemanticsChanged
}

const (
	// SeverityMask - .
	SeverityMask uint32 = 0xC0000000
	// SeverityGood - .
	SeverityGood uint32 = 0x00000000
	// SeverityUncertain - .
	SeverityUncertain uint32 = 0x40000000
	// SeverityBad - .
	SeverityBad uint32 = 0x80000000
	// SubCodeMask - .
	SubCodeMask uint32 = 0x0FFF0000
	// StructureChanged - .
	StructureChanged uint32 = 0x00008000
	// SemanticsChanged - .
	SemanticsChanged uint32 = 0x00004000
	// InfoBitsMask - .
	InfoBitsMask uint32 = 0x000003FF
)

const (
	// Good - The operation completed successfully.
	Good StatusCode = 0x00000000
	// BadUnexpectedError - An unexpected error occurred.
	BadUnexpectedError StatusCode = 0x80010000
	// BadInternalError - An internal error occurred as a result of a programming or configuration error.
	BadInternalError StatusCode = 0x80020000
	// BadOutOfMemory - Not enough memory to complete the operation.
	BadOutOfMemory StatusCode = 0x80030000
	// BadEncodingError - Encoding halted because of invalid data in the objects being serialized.
	BadEncodingError StatusCode = 0x80060000
	// BadDecodingError - Decoding halted because of invalid data in the stream.
	BadDecodingError StatusCode = 0x80070000
	// BadEncodingLimitsExceeded - The message encoding/decoding limits imposed by the stack have been exceeded.
	BadEncodingLimitsExceeded StatusCode = 0x80080000
	// BadDataEncodingInvalid - The data encoding is invalid.
	BadDataEncodingInvalid StatusCode = 0x80380000
	// BadDataEncodingUnsupported - The server does not support the requested data encoding for the node.
	BadDataEncodingUnsupported StatusCode = 0x80390000
	// BadDataTypeIDUnknown - The extension object cannot be (de)serialized because the data type id is not recognized.
	BadDataTypeIDUnknown StatusCode = 0x80110000
	// BadNodeIDInvalid - The syntax of the node id is not valid.
	BadNodeIDInvalid StatusCode = 0x80330000
	// BadNodeIDUnknown - The node id refers to a node that does not exist in the server address space.
	BadNodeIDUnknown StatusCode = 0x80340000
	// BadOutOfRange - The value was out of range.
	BadOutOfRange StatusCode = 0x803C0000
	// BadNotSupported - The requested operation is not supported.
	BadNotSupported StatusCode = 0x803D0000
	// BadTypeMismatch - The value supplied for the attribute is not of the same type as the attribute's value.
	BadTypeMismatch StatusCode = 0x80740000
	// BadInvalidArgument - One or more arguments are invalid.
	BadInvalidArgument StatusCode = 0x80AB0000
	// BadStructureMissing - A mandatory structured parameter was missing or null.
	BadStructureMissing StatusCode = 0x80460000
	// BadServiceUnsupported - The server does not support the requested service.
	BadServiceUnsupported StatusCode = 0x800B0000
	// BadTimeout - The operation timed out.
	BadTimeout StatusCode = 0x800A0000
	// BadNothingToDo - There was nothing to do because the client passed a list of operations with no elements.
	BadNothingToDo StatusCode = 0x800F0000
	// BadTooManyOperations - The request could not be processed because it specified too many operations.
	BadTooManyOperations StatusCode = 0x80100000
	// BadUserAccessDenied - User does not have permission to perform the requested operation.
	BadUserAccessDenied StatusCode = 0x801F0000
	// BadWriteNotSupported - The server does not support writing the combination of value, status and timestamps provided.
	BadWriteNotSupported StatusCode = 0x80730000
	// UncertainNoCommunicationLastUsableValue - Communication to the data source has failed. The variable value is the last value that had a good quality.
	UncertainNoCommunicationLastUsableValue StatusCode = 0x408F0000
	// GoodClamped - The value written was accepted but was clamped.
	GoodClamped StatusCode = 0x00300000
)

var statusCodeNames = map[StatusCode]string{
	Good:                                    "Good",
	BadUnexpectedError:                      "BadUnexpectedError",
	BadInternalError:                        "BadInternalError",
	BadOutOfMemory:                          "BadOutOfMemory",
	BadEncodingError:                        "BadEncodingError",
	BadDecodingError:                        "BadDecodingError",
	BadEncodingLimitsExceeded:               "BadEncodingLimitsExceeded",
	BadDataEncodingInvalid:                  "BadDataEncodingInvalid",
	BadDataEncodingUnsupported:              "BadDataEncodingUnsupported",
	BadDataTypeIDUnknown:                    "BadDataTypeIdUnknown",
	BadNodeIDInvalid:                        "BadNodeIdInvalid",
	BadNodeIDUnknown:                        "BadNodeIdUnknown",
	BadOutOfRange:                           "BadOutOfRange",
	BadNotSupported:                         "BadNotSupported",
	BadTypeMismatch:                         "BadTypeMismatch",
	BadInvalidArgument:                      "BadInvalidArgument",
	BadStructureMissing:                     "BadStructureMissing",
	BadServiceUnsupported:                   "BadServiceUnsupported",
	BadTimeout:                              "BadTimeout",
	BadNothingToDo:                          "BadNothingToDo",
	BadTooManyOperations:                    "BadTooManyOperations",
	BadUserAccessDenied:                     "BadUserAccessDenied",
	BadWriteNotSupported:                    "BadWriteNotSupported",
	UncertainNoCommunicationLastUsableValue: "UncertainNoCommunicationLastUsableValue",
	GoodClamped:                             "GoodClamped",
}

// Symbol returns the symbolic name of the StatusCode, ignoring the info bits.
// Unknown codes return an empty string.
func (c StatusCode) Symbol() string {
	return statusCodeNames[StatusCode(uint32(c)&^(InfoBitsMask|StructureChanged|SemanticsChanged))]
}

// Error returns the StatusCode message.
func (c StatusCode) Error() string {
	switch c {
	case Good:
		return "The operation completed successfully."
	case BadUnexpectedError:
		return "An unexpected error occurred."
	case BadInternalError:
		return "An internal error occurred as a result of a programming or configuration error."
	case BadOutOfMemory:
		return "Not enough memory to complete the operation."
	case BadEncodingError:
		return "Encoding halted because of invalid data in the objects being serialized."
	case BadDecodingError:
		return "Decoding halted because of invalid data in the stream."
	case BadEncodingLimitsExceeded:
		return "The message encoding/decoding limits imposed by the stack have been exceeded."
	case BadDataEncodingInvalid:
		return "The data encoding is invalid."
	case BadDataEncodingUnsupported:
		return "The server does not support the requested data encoding for the node."
	case BadDataTypeIDUnknown:
		return "The extension object cannot be (de)serialized because the data type id is not recognized."
	case BadNodeIDInvalid:
		return "The syntax of the node id is not valid."
	case BadNodeIDUnknown:
		return "The node id refers to a node that does not exist in the server address space."
	case BadOutOfRange:
		return "The value was out of range."
	case BadNotSupported:
		return "The requested operation is not supported."
	case BadTypeMismatch:
		return "The value supplied for the attribute is not of the same type as the attribute's value."
	case BadInvalidArgument:
		return "One or more arguments are invalid."
	case BadStructureMissing:
		return "A mandatory structured parameter was missing or null."
	case BadServiceUnsupported:
		return "The server does not support the requested service."
	case BadTimeout:
		return "The operation timed out."
	case BadNothingToDo:
		return "There was nothing to do because the client passed a list of operations with no elements."
	case BadTooManyOperations:
		return "The request could not be processed because it specified too many operations."
	case BadUserAccessDenied:
		return "User does not have permission to perform the requested operation."
	case BadWriteNotSupported:
		return "The server does not support writing the combination of value, status and timestamps provided."
	case UncertainNoCommunicationLastUsableValue:
		return "Communication to the data source has failed. The variable value is the last value that had a good quality."
	case GoodClamped:
		return "The value written was accepted but was clamped."
	default:
		return "An unknown error occurred."
	}
}
