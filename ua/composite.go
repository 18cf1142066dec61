// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

// fieldProber reports whether a named field is present, for formats that omit
// absent fields rather than flag them in a mask.
type fieldProber interface {
	hasField(name string) bool
}

func writeDataValueFields(enc Encoder, v DataValue) error {
	if !v.Value.IsNil() {
		if err := enc.WriteVariant("Value", v.Value); err != nil {
			return err
		}
	}
	if v.StatusCode != Good {
		if err := enc.WriteStatusCode("StatusCode", v.StatusCode); err != nil {
			return err
		}
	}
	if !v.SourceTimestamp.IsZero() {
		if err := enc.WriteDateTime("SourceTimestamp", v.SourceTimestamp); err != nil {
			return err
		}
	}
	if v.SourcePicoseconds != 0 {
		if err := enc.WriteUInt16("SourcePicoseconds", v.SourcePicoseconds); err != nil {
			return err
		}
	}
	if !v.ServerTimestamp.IsZero() {
		if err := enc.WriteDateTime("ServerTimestamp", v.ServerTimestamp); err != nil {
			return err
		}
	}
	if v.ServerPicoseconds != 0 {
		if err := enc.WriteUInt16("ServerPicoseconds", v.ServerPicoseconds); err != nil {
			return err
		}
	}
	return nil
}

func readDataValueFields(dec Decoder, p fieldProber) (DataValue, error) {
	var v DataValue
	if p.hasField("Value") {
		if err := dec.ReadVariant("Value", &v.Value); err != nil {
			return NilDataValue, err
		}
	}
	if p.hasField("StatusCode") {
		if err := dec.ReadStatusCode("StatusCode", &v.StatusCode); err != nil {
			return NilDataValue, err
		}
	}
	if p.hasField("SourceTimestamp") {
		if err := dec.ReadDateTime("SourceTimestamp", &v.SourceTimestamp); err != nil {
			return NilDataValue, err
		}
	}
	if p.hasField("SourcePicoseconds") {
		if err := dec.ReadUInt16("SourcePicoseconds", &v.SourcePicoseconds); err != nil {
			return NilDataValue, err
		}
	}
	if p.hasField("ServerTimestamp") {
		if err := dec.ReadDateTime("ServerTimestamp", &v.ServerTimestamp); err != nil {
			return NilDataValue, err
		}
	}
	if p.hasField("ServerPicoseconds") {
		if err := dec.ReadUInt16("ServerPicoseconds", &v.ServerPicoseconds); err != nil {
			return NilDataValue, err
		}
	}
	return v, nil
}

func writeDiagnosticInfoFields(enc Encoder, d *DiagnosticInfo) error {
	if d.SymbolicID != nil {
		if err := enc.WriteInt32("SymbolicId", *d.SymbolicID); err != nil {
			return err
		}
	}
	if d.NamespaceURI != nil {
		if err := enc.WriteInt32("NamespaceUri", *d.NamespaceURI); err != nil {
			return err
		}
	}
	if d.Locale != nil {
		if err := enc.WriteInt32("Locale", *d.Locale); err != nil {
			return err
		}
	}
	if d.LocalizedText != nil {
		if err := enc.WriteInt32("LocalizedText", *d.LocalizedText); err != nil {
			return err
		}
	}
	if d.AdditionalInfo != nil {
		if err := enc.WriteString("AdditionalInfo", *d.AdditionalInfo); err != nil {
			return err
		}
	}
	if d.InnerStatusCode != nil {
		if err := enc.WriteStatusCode("InnerStatusCode", *d.InnerStatusCode); err != nil {
			return err
		}
	}
	if d.InnerDiagnosticInfo != nil {
		if err := enc.WriteDiagnosticInfo("InnerDiagnosticInfo", d.InnerDiagnosticInfo); err != nil {
			return err
		}
	}
	return nil
}

func readDiagnosticInfoFields(dec Decoder, p fieldProber) (*DiagnosticInfo, error) {
	d := &DiagnosticInfo{}
	if p.hasField("SymbolicId") {
		d.SymbolicID = new(int32)
		if err := dec.ReadInt32("SymbolicId", d.SymbolicID); err != nil {
			return nil, err
		}
	}
	if p.hasField("NamespaceUri") {
		d.NamespaceURI = new(int32)
		if err := dec.ReadInt32("NamespaceUri", d.NamespaceURI); err != nil {
			return nil, err
		}
	}
	if p.hasField("Locale") {
		d.Locale = new(int32)
		if err := dec.ReadInt32("Locale", d.Locale); err != nil {
			return nil, err
		}
	}
	if p.hasField("LocalizedText") {
		d.LocalizedText = new(int32)
		if err := dec.ReadInt32("LocalizedText", d.LocalizedText); err != nil {
			return nil, err
		}
	}
	if p.hasField("AdditionalInfo") {
		d.AdditionalInfo = new(string)
		if err := dec.ReadString("AdditionalInfo", d.AdditionalInfo); err != nil {
			return nil, err
		}
	}
	if p.hasField("InnerStatusCode") {
		d.InnerStatusCode = new(StatusCode)
		if err := dec.ReadStatusCode("InnerStatusCode", d.InnerStatusCode); err != nil {
			return nil, err
		}
	}
	if p.hasField("InnerDiagnosticInfo") {
		if err := dec.ReadDiagnosticInfo("InnerDiagnosticInfo", &d.InnerDiagnosticInfo); err != nil {
			return nil, err
		}
	}
	return d, nil
}
