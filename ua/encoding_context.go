// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

// EncodingContext provides the namespace table, codec registry and limits
// for one encode or decode call tree.
type EncodingContext interface {
	NamespaceURIs() []string
	Namespaces() *NamespaceTable
	Registry() *Registry
	Limits() EncodingLimits
}

// EncodingLimits bound the sizes a decoder accepts. A zero field means no limit, except
// MaxRecursionDepth, where zero means the default depth.
type EncodingLimits struct {
	MaxStringLength     int
	MaxByteStringLength int
	MaxArrayLength      int
	MaxRecursionDepth   int
}

const defaultMaxRecursionDepth = 100

// DefaultEncodingLimits returns the limits used when none are configured.
func DefaultEncodingLimits() EncodingLimits {
	return EncodingLimits{
		MaxStringLength:     16 * 1024 * 1024,
		MaxByteStringLength: 16 * 1024 * 1024,
		MaxArrayLength:      1000000,
		MaxRecursionDepth:   defaultMaxRecursionDepth,
	}
}

type encodingContext struct {
	namespaces *NamespaceTable
	registry   *Registry
	limits     EncodingLimits
}

// EncodingContextOption is a functional option to be applied to an EncodingContext during initialization.
type EncodingContextOption func(*encodingContext)

// WithNamespaces sets the namespace table.
func WithNamespaces(table *NamespaceTable) EncodingContextOption {
	return func(ec *encodingContext) {
		ec.namespaces = table
	}
}

// WithNamespaceURIs sets a new namespace table holding the uris. Index 0 is always the UA namespace.
func WithNamespaceURIs(uris ...string) EncodingContextOption {
	return func(ec *encodingContext) {
		if len(uris) > 0 && uris[0] == NamespaceURIUA {
			uris = uris[1:]
		}
		ec.namespaces = NewNamespaceTable(uris...)
	}
}

// WithRegistry sets the codec registry. The default is DefaultRegistry().
func WithRegistry(registry *Registry) EncodingContextOption {
	return func(ec *encodingContext) {
		ec.registry = registry
	}
}

// WithLimits sets the encoding limits.
func WithLimits(limits EncodingLimits) EncodingContextOption {
	return func(ec *encodingContext) {
		ec.limits = limits
	}
}

// NewEncodingContext constructs an EncodingContext.
func NewEncodingContext(opts ...EncodingContextOption) EncodingContext {
	ec := &encodingContext{
		limits: DefaultEncodingLimits(),
	}
	for _, opt := range opts {
		opt(ec)
	}
	if ec.namespaces == nil {
		ec.namespaces = NewNamespaceTable()
	}
	if ec.registry == nil {
		ec.registry = DefaultRegistry()
	}
	return ec
}

// NamespaceURIs returns a slice of NamespaceURI
func (ec *encodingContext) NamespaceURIs() []string {
	return ec.namespaces.URIs()
}

func (ec *encodingContext) Namespaces() *NamespaceTable {
	return ec.namespaces
}

func (ec *encodingContext) Registry() *Registry {
	return ec.registry
}

func (ec *encodingContext) Limits() EncodingLimits {
	return ec.limits
}
