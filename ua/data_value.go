// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

import (
	"time"
)

// DataValue holds the value, quality and timestamp
type DataValue struct {
	Value             Variant
	StatusCode        StatusCode
	SourceTimestamp   time.Time
	SourcePicoseconds uint16
	ServerTimestamp   time.Time
	ServerPicoseconds uint16
}

// NewDataValue constructs a DataValue.
func NewDataValue(value Variant, status StatusCode, sourceTimestamp time.Time, sourcePicoseconds uint16, serverTimestamp time.Time, serverPicoseconds uint16) DataValue {
	return DataValue{value, status, sourceTimestamp, sourcePicoseconds, serverTimestamp, serverPicoseconds}
}

// NilDataValue is the nil value.
var NilDataValue = DataValue{}

// encoding mask bits of the binary form.
const (
	dataValueValue             byte = 1
	dataValueStatusCode        byte = 2
	dataValueSourceTimestamp   byte = 4
	dataValueServerTimestamp   byte = 8
	dataValueSourcePicoseconds byte = 16
	dataValueServerPicoseconds byte = 32
)

func (v DataValue) mask() byte {
	var b byte
	if !v.Value.IsNil() {
		b |= dataValueValue
	}
	if v.StatusCode != Good {
		b |= dataValueStatusCode
	}
	if !v.SourceTimestamp.IsZero() {
		b |= dataValueSourceTimestamp
	}
	if v.SourcePicoseconds != 0 {
		b |= dataValueSourcePicoseconds
	}
	if !v.ServerTimestamp.IsZero() {
		b |= dataValueServerTimestamp
	}
	if v.ServerPicoseconds != 0 {
		b |= dataValueServerPicoseconds
	}
	return b
}
