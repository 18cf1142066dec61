// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ExpandedNodeID identifies a remote Node.
type ExpandedNodeID struct {
	serverIndex  uint32
	namespaceURI string
	nodeID       NodeID
}

// NewExpandedNodeID casts an ExpandedNodeID from a NodeID.
func NewExpandedNodeID(nodeID NodeID) ExpandedNodeID {
	return ExpandedNodeID{0, "", nodeID}
}

// NewExpandedNodeIDNumeric constructs a new ExpandedNodeID of numeric type.
func NewExpandedNodeIDNumeric(serverIndex uint32, namespaceURI string, identifier uint32) ExpandedNodeID {
	return ExpandedNodeID{serverIndex, namespaceURI, NewNodeIDNumeric(0, identifier)}
}

// NewExpandedNodeIDString constructs a new ExpandedNodeID of string type.
func NewExpandedNodeIDString(serverIndex uint32, namespaceURI string, identifier string) ExpandedNodeID {
	return ExpandedNodeID{serverIndex, namespaceURI, NewNodeIDString(0, identifier)}
}

// NewExpandedNodeIDGUID constructs a new ExpandedNodeID of GUID type.
func NewExpandedNodeIDGUID(serverIndex uint32, namespaceURI string, identifier uuid.UUID) ExpandedNodeID {
	return ExpandedNodeID{serverIndex, namespaceURI, NewNodeIDGUID(0, identifier)}
}

// NewExpandedNodeIDOpaque constructs a new ExpandedNodeID of opaque type.
func NewExpandedNodeIDOpaque(serverIndex uint32, namespaceURI string, identifier ByteString) ExpandedNodeID {
	return ExpandedNodeID{serverIndex, namespaceURI, NewNodeIDOpaque(0, identifier)}
}

// ServerIndex returns the index in the servers table.
func (n ExpandedNodeID) ServerIndex() uint32 {
	return n.serverIndex
}

// NamespaceURI returns the namespace uri.
func (n ExpandedNodeID) NamespaceURI() string {
	return n.namespaceURI
}

// NamespaceIndex returns the namespace index.
func (n ExpandedNodeID) NamespaceIndex() uint16 {
	return n.nodeID.NamespaceIndex()
}

// IDType returns the id type.
func (n ExpandedNodeID) IDType() IDType {
	return n.nodeID.IDType()
}

// Identifier returns the identifier.
func (n ExpandedNodeID) Identifier() any {
	return n.nodeID.Identifier()
}

// NodeID returns the NodeID part, ignoring the namespace URI and server index.
func (n ExpandedNodeID) NodeID() NodeID {
	return n.nodeID
}

// NilExpandedNodeID is the nil value.
var NilExpandedNodeID = ExpandedNodeID{}

// IsNil returns true if the nodeId is nil
func (n ExpandedNodeID) IsNil() bool {
	if n.namespaceURI != "" || n.serverIndex != 0 {
		return false
	}
	return n.nodeID.IsNil()
}

// Equal reports whether both ids have the same server, namespace and identifier.
func (n ExpandedNodeID) Equal(other ExpandedNodeID) bool {
	return n == other
}

// ParseExpandedNodeID returns an ExpandedNodeID from a string representation.
//   - ParseExpandedNodeID("i=85") // integer, assumes nsu=http://opcfoundation.org/UA/
//   - ParseExpandedNodeID("nsu=http://www.unifiedautomation.com/DemoServer/;s=Demo.Static.Scalar.Float") // string
//   - ParseExpandedNodeID("svr=1;nsu=http://www.unifiedautomation.com/DemoServer/;g=5ce9dbce-5d79-434c-9ac3-1cfba9a6e92c") // guid
//   - ParseExpandedNodeID("ns=2;b=YWJjZA==") // opaque byte string
func ParseExpandedNodeID(s string) (ExpandedNodeID, error) {
	var svr uint64
	rest := s
	if strings.HasPrefix(rest, "svr=") {
		pos := strings.Index(rest, ";")
		if pos == -1 {
			return NilExpandedNodeID, errors.Wrapf(BadNodeIDInvalid, "missing ';' after server index in %q", s)
		}
		var err error
		svr, err = strconv.ParseUint(rest[4:pos], 10, 32)
		if err != nil {
			return NilExpandedNodeID, errors.Wrapf(BadNodeIDInvalid, "invalid server index in %q", s)
		}
		rest = rest[pos+1:]
	}
	if strings.HasPrefix(rest, "nsu=") {
		pos := strings.Index(rest, ";")
		if pos == -1 {
			return NilExpandedNodeID, errors.Wrapf(BadNodeIDInvalid, "missing ';' after namespace uri in %q", s)
		}
		nsu := rest[4:pos]
		id, err := parseIdentifier(0, rest[pos+1:])
		if err != nil {
			return NilExpandedNodeID, errors.Wrapf(BadNodeIDInvalid, "%s in %q", err, s)
		}
		return ExpandedNodeID{uint32(svr), nsu, id}, nil
	}
	id, err := ParseNodeID(rest)
	if err != nil {
		return NilExpandedNodeID, err
	}
	return ExpandedNodeID{uint32(svr), "", id}, nil
}

// MustParseExpandedNodeID returns an ExpandedNodeID from a string representation, or panics.
func MustParseExpandedNodeID(s string) ExpandedNodeID {
	id, err := ParseExpandedNodeID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns a string representation of the ExpandedNodeID, e.g. "nsu=http://www.unifiedautomation.com/DemoServer/;s=Demo"
func (n ExpandedNodeID) String() string {
	b := new(strings.Builder)
	if n.serverIndex > 0 {
		fmt.Fprintf(b, "svr=%d;", n.serverIndex)
	}
	if len(n.namespaceURI) > 0 {
		fmt.Fprintf(b, "nsu=%s;", n.namespaceURI)
		b.WriteString(n.nodeID.identifierString())
		return b.String()
	}
	b.WriteString(n.nodeID.String())
	return b.String()
}

// ToNodeID converts ExpandedNodeID to NodeID by looking up the NamespaceURI and replacing it with the index.
// The namespace URI takes precedence over the namespace index.
func (n ExpandedNodeID) ToNodeID(table *NamespaceTable) (NodeID, error) {
	if n.namespaceURI == "" {
		return n.nodeID, nil
	}
	if table != nil {
		if ns, ok := table.Index(n.namespaceURI); ok {
			return n.nodeID.WithNamespaceIndex(ns), nil
		}
	}
	return NilNodeID, errors.Wrapf(BadNodeIDUnknown, "namespace uri %q not in table", n.namespaceURI)
}

// canonical returns the id in namespace URI form when the table knows the index, so that
// ids read from the wire and ids declared by codecs compare equal.
func (n ExpandedNodeID) canonical(table *NamespaceTable) ExpandedNodeID {
	if n.namespaceURI != "" || n.nodeID.namespaceIndex == 0 || table == nil {
		return n
	}
	if uri, ok := table.URI(n.nodeID.namespaceIndex); ok {
		return ExpandedNodeID{n.serverIndex, uri, n.nodeID.WithNamespaceIndex(0)}
	}
	return n
}
