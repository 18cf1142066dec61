// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

import (
	"reflect"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// Registry maps encoding ids, data type ids and go types to codecs.
// Lookups are lock-free; registration is serialized.
type Registry struct {
	mu          sync.Mutex
	encodingIDs sync.Map // map[ExpandedNodeID]registration
	dataTypeIDs sync.Map // map[ExpandedNodeID]Codec
	types       sync.Map // map[reflect.Type]Codec
	enums       sync.Map // map[ExpandedNodeID]*EnumDefinition
	abstract    sync.Map // map[ExpandedNodeID]struct{}
}

type registration struct {
	codec  Codec
	format EncodingFormat
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds the codec. Registering an id that already belongs to another codec fails.
func (r *Registry) Register(codec Codec) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := codec.IDs()
	if ids.DataType.IsNil() {
		return errors.Wrapf(BadInvalidArgument, "registering %s: missing data type id", codec.Name())
	}
	if c, ok := r.dataTypeIDs.Load(ids.DataType); ok && c != codec {
		return errors.Wrapf(BadInvalidArgument, "registering %s: duplicate data type id %s", codec.Name(), ids.DataType)
	}
	for _, f := range []EncodingFormat{EncodingFormatBinary, EncodingFormatXML, EncodingFormatJSON} {
		id := ids.EncodingID(f)
		if id.IsNil() {
			continue
		}
		if reg, ok := r.encodingIDs.Load(id); ok && reg.(registration).codec != codec {
			return errors.Wrapf(BadInvalidArgument, "registering %s: duplicate encoding id %s", codec.Name(), id)
		}
	}
	if typ := codec.Type(); typ != nil && typ != dynamicStructureType {
		if c, ok := r.types.Load(typ); ok && c != codec {
			return errors.Wrapf(BadInvalidArgument, "registering %s: duplicate type %s", codec.Name(), typ)
		}
		r.types.Store(typ, codec)
	}
	r.dataTypeIDs.Store(ids.DataType, codec)
	for _, f := range []EncodingFormat{EncodingFormatBinary, EncodingFormatXML, EncodingFormatJSON} {
		if id := ids.EncodingID(f); !id.IsNil() {
			r.encodingIDs.Store(id, registration{codec, f})
		}
	}
	return nil
}

// MustRegister adds the codecs, or panics.
func (r *Registry) MustRegister(codecs ...Codec) {
	for _, c := range codecs {
		if err := r.Register(c); err != nil {
			panic(err)
		}
	}
}

// RegisterEnum adds the definition of an enumerated data type.
func (r *Registry) RegisterEnum(id ExpandedNodeID, def *EnumDefinition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id.IsNil() || def == nil {
		return errors.Wrap(BadInvalidArgument, "registering enumeration: missing id or definition")
	}
	if d, ok := r.enums.Load(id); ok && d != def {
		return errors.Wrapf(BadInvalidArgument, "registering enumeration: duplicate data type id %s", id)
	}
	r.enums.Store(id, def)
	return nil
}

// RegisterAbstract marks the data type as an abstract structure. Fields of an abstract
// type hold an ExtensionObject whose encoding id names the concrete subtype.
func (r *Registry) RegisterAbstract(id ExpandedNodeID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id.IsNil() {
		return errors.Wrap(BadInvalidArgument, "registering abstract data type: missing id")
	}
	if _, ok := r.dataTypeIDs.Load(id); ok {
		return errors.Wrapf(BadInvalidArgument, "registering abstract data type: %s has a codec", id)
	}
	r.abstract.Store(id, struct{}{})
	return nil
}

// IsAbstract reports whether the data type was registered as abstract.
func (r *Registry) IsAbstract(id ExpandedNodeID) bool {
	_, ok := r.abstract.Load(id)
	return ok
}

// ResolveEnum returns the definition of the enumerated data type.
func (r *Registry) ResolveEnum(id ExpandedNodeID) (*EnumDefinition, bool) {
	if val, ok := r.enums.Load(id); ok {
		return val.(*EnumDefinition), true
	}
	return nil, false
}

// Resolve returns the codec and format of the encoding id.
func (r *Registry) Resolve(id ExpandedNodeID) (Codec, EncodingFormat, bool) {
	if val, ok := r.encodingIDs.Load(id); ok {
		reg := val.(registration)
		return reg.codec, reg.format, true
	}
	return nil, 0, false
}

// ResolveDataType returns the codec of the data type id.
func (r *Registry) ResolveDataType(id ExpandedNodeID) (Codec, bool) {
	if val, ok := r.dataTypeIDs.Load(id); ok {
		return val.(Codec), true
	}
	return nil, false
}

// ResolveType returns the codec of the go type.
func (r *Registry) ResolveType(typ reflect.Type) (Codec, bool) {
	if val, ok := r.types.Load(typ); ok {
		return val.(Codec), true
	}
	return nil, false
}

// Codecs returns the registered codecs ordered by name.
func (r *Registry) Codecs() []Codec {
	var codecs []Codec
	r.dataTypeIDs.Range(func(_, val any) bool {
		codecs = append(codecs, val.(Codec))
		return true
	})
	sort.Slice(codecs, func(i, j int) bool { return codecs[i].Name() < codecs[j].Name() })
	return codecs
}

// resolveEncodingID looks up an encoding id read from the wire. Ids in namespace index
// form are first tried in namespace uri form.
func resolveEncodingID(ec EncodingContext, id ExpandedNodeID) (Codec, EncodingFormat, bool) {
	r := ec.Registry()
	if r == nil {
		return nil, 0, false
	}
	if c := id.canonical(ec.Namespaces()); c != id {
		if codec, format, ok := r.Resolve(c); ok {
			return codec, format, true
		}
	}
	return r.Resolve(id)
}

// codecFor returns the codec of a structured value, found by data type id or by go type.
func codecFor(ec EncodingContext, value Structure) (Codec, error) {
	r := ec.Registry()
	if r != nil {
		id := value.TypeID()
		if codec, ok := r.ResolveDataType(id.canonical(ec.Namespaces())); ok {
			return codec, nil
		}
		if codec, ok := r.ResolveDataType(id); ok {
			return codec, nil
		}
		typ := reflect.TypeOf(value)
		if codec, ok := r.ResolveType(typ); ok {
			return codec, nil
		}
		if typ.Kind() == reflect.Pointer {
			if codec, ok := r.ResolveType(typ.Elem()); ok {
				return codec, nil
			}
		}
	}
	return nil, errors.Wrapf(BadDataTypeIDUnknown, "no codec for %T with data type %s", value, value.TypeID())
}

// wireNodeID converts an encoding id to the NodeID written on the wire.
func wireNodeID(ec EncodingContext, id ExpandedNodeID) (NodeID, error) {
	n, err := id.ToNodeID(ec.Namespaces())
	if err != nil {
		return NilNodeID, errors.Wrap(BadEncodingError, err.Error())
	}
	return n, nil
}
