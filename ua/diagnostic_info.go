// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

// DiagnosticInfo holds additional info regarding errors in service calls.
// The indices refer to the string table of the response header. A nil
// *DiagnosticInfo means no diagnostics.
type DiagnosticInfo struct {
	// SymbolicID returns the index of the SymbolicID.
	SymbolicID *int32
	// NamespaceURI returns the index of the NamespaceURI.
	NamespaceURI *int32
	// Locale returns the index of the Locale.
	Locale *int32
	// LocalizedText returns the index of the LocalizedText.
	LocalizedText *int32
	// AdditionalInfo returns the AdditionalInfo.
	AdditionalInfo *string
	// InnerStatusCode returns the InnerStatusCode.
	InnerStatusCode *StatusCode
	// InnerDiagnosticInfo returns the InnerDiagnosticInfo.
	InnerDiagnosticInfo *DiagnosticInfo
}

// encoding mask bits of the binary form.
const (
	diagnosticInfoSymbolicID          byte = 1
	diagnosticInfoNamespaceURI        byte = 2
	diagnosticInfoLocalizedText       byte = 4
	diagnosticInfoLocale              byte = 8
	diagnosticInfoAdditionalInfo      byte = 16
	diagnosticInfoInnerStatusCode     byte = 32
	diagnosticInfoInnerDiagnosticInfo byte = 64
)

func (d *DiagnosticInfo) mask() byte {
	if d == nil {
		return 0
	}
	var b byte
	if d.SymbolicID != nil {
		b |= diagnosticInfoSymbolicID
	}
	if d.NamespaceURI != nil {
		b |= diagnosticInfoNamespaceURI
	}
	if d.Locale != nil {
		b |= diagnosticInfoLocale
	}
	if d.LocalizedText != nil {
		b |= diagnosticInfoLocalizedText
	}
	if d.AdditionalInfo != nil {
		b |= diagnosticInfoAdditionalInfo
	}
	if d.InnerStatusCode != nil {
		b |= diagnosticInfoInnerStatusCode
	}
	if d.InnerDiagnosticInfo != nil {
		b |= diagnosticInfoInnerDiagnosticInfo
	}
	return b
}

// Depth returns the number of nested DiagnosticInfos, counting this one.
func (d *DiagnosticInfo) Depth() int {
	n := 0
	for ; d != nil; d = d.InnerDiagnosticInfo {
		n++
	}
	return n
}
