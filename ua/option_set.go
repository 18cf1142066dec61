// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

import (
	"math/bits"
	"strings"
)

// OptionSetField names one bit of an option set. The value is the bit index.
type OptionSetField interface {
	~uint8
	// String returns the name of the bit, or "" if the bit has no name.
	String() string
}

// OptionSet is an immutable set of named bits backed by an unsigned integer.
// Bits without a name are kept so that they survive a decode and encode.
type OptionSet[B ~uint8 | ~uint16 | ~uint32 | ~uint64, F OptionSetField] struct {
	value B
}

// OptionSetOf returns the option set with the bits of the fields set.
func OptionSetOf[B ~uint8 | ~uint16 | ~uint32 | ~uint64, F OptionSetField](fields ...F) OptionSet[B, F] {
	var v B
	for _, f := range fields {
		v |= B(1) << uint(f)
	}
	return OptionSet[B, F]{v}
}

// OptionSetFromValue returns the option set backed by the value.
func OptionSetFromValue[B ~uint8 | ~uint16 | ~uint32 | ~uint64, F OptionSetField](value B) OptionSet[B, F] {
	return OptionSet[B, F]{value}
}

// Get returns true if the bit of the field is set.
func (s OptionSet[B, F]) Get(field F) bool {
	return (s.value>>uint(field))&1 == 1
}

// With returns a copy with the bits of the fields set.
func (s OptionSet[B, F]) With(fields ...F) OptionSet[B, F] {
	for _, f := range fields {
		s.value |= B(1) << uint(f)
	}
	return s
}

// Without returns a copy with the bits of the fields cleared.
func (s OptionSet[B, F]) Without(fields ...F) OptionSet[B, F] {
	for _, f := range fields {
		s.value &^= B(1) << uint(f)
	}
	return s
}

// Value returns the backing integer.
func (s OptionSet[B, F]) Value() B {
	return s.value
}

// Fields returns the named fields that are set, in bit order.
func (s OptionSet[B, F]) Fields() []F {
	var fields []F
	v := uint64(s.value)
	for v != 0 {
		i := bits.TrailingZeros64(v)
		v &^= 1 << uint(i)
		if f := F(i); f.String() != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

// ToSet returns the named fields that are set.
func (s OptionSet[B, F]) ToSet() map[F]struct{} {
	set := make(map[F]struct{})
	for _, f := range s.Fields() {
		set[f] = struct{}{}
	}
	return set
}

// Unknown returns the set bits that have no name.
func (s OptionSet[B, F]) Unknown() B {
	var u B
	v := uint64(s.value)
	for v != 0 {
		i := bits.TrailingZeros64(v)
		v &^= 1 << uint(i)
		if F(i).String() == "" {
			u |= B(1) << uint(i)
		}
	}
	return u
}

// String returns the names of the set fields joined by '|'.
func (s OptionSet[B, F]) String() string {
	fields := s.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.String()
	}
	return strings.Join(names, "|")
}

// WriteOptionSet writes the backing integer of the option set.
func WriteOptionSet[B ~uint8 | ~uint16 | ~uint32 | ~uint64, F OptionSetField](enc Encoder, field string, value OptionSet[B, F]) error {
	v := value.Value()
	switch bits.Len64(uint64(^B(0))) {
	case 8:
		return enc.WriteByte(field, uint8(v))
	case 16:
		return enc.WriteUInt16(field, uint16(v))
	case 32:
		return enc.WriteUInt32(field, uint32(v))
	}
	return enc.WriteUInt64(field, uint64(v))
}

// ReadOptionSet reads the backing integer of the option set.
func ReadOptionSet[B ~uint8 | ~uint16 | ~uint32 | ~uint64, F OptionSetField](dec Decoder, field string, value *OptionSet[B, F]) error {
	switch bits.Len64(uint64(^B(0))) {
	case 8:
		var v uint8
		if err := dec.ReadByte(field, &v); err != nil {
			return err
		}
		*value = OptionSet[B, F]{B(v)}
	case 16:
		var v uint16
		if err := dec.ReadUInt16(field, &v); err != nil {
			return err
		}
		*value = OptionSet[B, F]{B(v)}
	case 32:
		var v uint32
		if err := dec.ReadUInt32(field, &v); err != nil {
			return err
		}
		*value = OptionSet[B, F]{B(v)}
	default:
		var v uint64
		if err := dec.ReadUInt64(field, &v); err != nil {
			return err
		}
		*value = OptionSet[B, F]{B(v)}
	}
	return nil
}
