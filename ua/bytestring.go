// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

import (
	"encoding/base64"
)

// ByteString is stored as a string. The empty ByteString is the null ByteString.
type ByteString string

// String returns ByteString as a base64-encoded string.
func (b ByteString) String() string {
	return base64.StdEncoding.EncodeToString([]byte(b))
}

// MarshalText returns the base64 form.
func (b ByteString) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// ParseByteString decodes a base64-encoded string.
func ParseByteString(s string) (ByteString, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", err
	}
	return ByteString(b), nil
}
