// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

import "sync"

var (
	structureTypeDefinition  = enumDefinitionOf(structureTypeNames[:]...)
	filterOperatorDefinition = enumDefinitionOf(filterOperatorNames[:]...)
)

// StandardCodecs returns the codecs of the standard structures.
func StandardCodecs() []Codec {
	return []Codec{
		StructureFieldCodec,
		StructureDefinitionCodec,
		EnumValueTypeCodec,
		EnumFieldCodec,
		EnumDefinitionCodec,
		ArgumentCodec,
		RequestHeaderCodec,
		ResponseHeaderCodec,
		ServiceFaultCodec,
		WriteResponseCodec,
		ContentFilterElementCodec,
		ElementOperandCodec,
		LiteralOperandCodec,
		SimpleAttributeOperandCodec,
	}
}

// NewStandardRegistry returns a registry holding the standard structures and enumerations.
func NewStandardRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(StandardCodecs()...)
	if err := r.RegisterEnum(NewExpandedNodeID(DataTypeIDStructureType), structureTypeDefinition); err != nil {
		panic(err)
	}
	if err := r.RegisterEnum(NewExpandedNodeID(DataTypeIDFilterOperator), filterOperatorDefinition); err != nil {
		panic(err)
	}
	return r
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the registry shared by encoding contexts created without one.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewStandardRegistry()
	})
	return defaultRegistry
}
