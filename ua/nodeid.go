// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// IDType is the kind of identifier of a NodeID.
type IDType byte

// IDTypes
const (
	IDTypeNumeric IDType = iota
	IDTypeString
	IDTypeGUID
	IDTypeOpaque
)

// NodeID identifies a Node.
type NodeID struct {
	namespaceIndex uint16
	idType         IDType
	nid            uint32
	sid            string
	gid            uuid.UUID
	bid            ByteString
}

// NewNodeIDNumeric constructs a new NodeID of numeric type.
func NewNodeIDNumeric(namespaceIndex uint16, identifier uint32) NodeID {
	return NodeID{namespaceIndex, IDTypeNumeric, identifier, "", uuid.Nil, ""}
}

// NewNodeIDString constructs a new NodeID of string type.
func NewNodeIDString(namespaceIndex uint16, identifier string) NodeID {
	return NodeID{namespaceIndex, IDTypeString, 0, identifier, uuid.Nil, ""}
}

// NewNodeIDGUID constructs a new NodeID of GUID type.
func NewNodeIDGUID(namespaceIndex uint16, identifier uuid.UUID) NodeID {
	return NodeID{namespaceIndex, IDTypeGUID, 0, "", identifier, ""}
}

// NewNodeIDOpaque constructs a new NodeID of opaque type.
func NewNodeIDOpaque(namespaceIndex uint16, identifier ByteString) NodeID {
	return NodeID{namespaceIndex, IDTypeOpaque, 0, "", uuid.Nil, identifier}
}

// NamespaceIndex returns the namespace index.
func (n NodeID) NamespaceIndex() uint16 {
	return n.namespaceIndex
}

// IDType returns the identifier type.
func (n NodeID) IDType() IDType {
	return n.idType
}

// Identifier returns the identifier.
func (n NodeID) Identifier() any {
	switch n.idType {
	case IDTypeNumeric:
		return n.nid
	case IDTypeString:
		return n.sid
	case IDTypeGUID:
		return n.gid
	case IDTypeOpaque:
		return n.bid
	}
	return nil
}

// WithNamespaceIndex returns a copy of the NodeID in another namespace.
func (n NodeID) WithNamespaceIndex(ns uint16) NodeID {
	n.namespaceIndex = ns
	return n
}

// NilNodeID is the nil value.
var NilNodeID = NodeID{}

// IsNil returns true if the nodeId is nil
func (n NodeID) IsNil() bool {
	if n.namespaceIndex > 0 {
		return false
	}
	switch n.idType {
	case IDTypeNumeric:
		return n.nid == 0
	case IDTypeString:
		return len(n.sid) == 0
	case IDTypeGUID:
		return n.gid == uuid.Nil
	case IDTypeOpaque:
		return len(n.bid) == 0
	}
	return false
}

// IsValid returns true if the nodeId is valid
func (n NodeID) IsValid() bool {
	switch n.idType {
	case IDTypeNumeric:
		return n.nid != 0
	case IDTypeString:
		return len(n.sid) <= 4096 && len(n.sid) > 0
	case IDTypeGUID:
		return n.gid != uuid.Nil
	case IDTypeOpaque:
		return len(n.bid) <= 4096 && len(n.bid) > 0
	}
	return false
}

// Equal reports whether both NodeIDs have the same namespace and identifier.
func (n NodeID) Equal(other NodeID) bool {
	return n == other
}

// ParseNodeID returns a NodeID from a string representation.
//   - ParseNodeID("i=85") // integer, assumes ns=0
//   - ParseNodeID("ns=2;s=Demo.Static.Scalar.Float") // string
//   - ParseNodeID("ns=2;g=5ce9dbce-5d79-434c-9ac3-1cfba9a6e92c") // guid
//   - ParseNodeID("ns=2;b=YWJjZA==") // opaque byte string
func ParseNodeID(s string) (NodeID, error) {
	var ns uint64
	rest := s
	if strings.HasPrefix(rest, "ns=") {
		pos := strings.Index(rest, ";")
		if pos == -1 {
			return NilNodeID, errors.Wrapf(BadNodeIDInvalid, "missing ';' after namespace in %q", s)
		}
		var err error
		ns, err = strconv.ParseUint(rest[3:pos], 10, 16)
		if err != nil {
			return NilNodeID, errors.Wrapf(BadNodeIDInvalid, "invalid namespace index in %q", s)
		}
		rest = rest[pos+1:]
	}
	id, err := parseIdentifier(uint16(ns), rest)
	if err != nil {
		return NilNodeID, errors.Wrapf(BadNodeIDInvalid, "%s in %q", err, s)
	}
	return id, nil
}

// MustParseNodeID returns a NodeID from a string representation, or panics.
func MustParseNodeID(s string) NodeID {
	id, err := ParseNodeID(s)
	if err != nil {
		panic(err)
	}
	return id
}

func parseIdentifier(ns uint16, s string) (NodeID, error) {
	switch {
	case strings.HasPrefix(s, "i="):
		id, err := strconv.ParseUint(s[2:], 10, 32)
		if err != nil {
			return NilNodeID, errors.New("invalid numeric identifier")
		}
		return NewNodeIDNumeric(ns, uint32(id)), nil
	case strings.HasPrefix(s, "s="):
		return NewNodeIDString(ns, s[2:]), nil
	case strings.HasPrefix(s, "g="):
		id, err := uuid.Parse(s[2:])
		if err != nil {
			return NilNodeID, errors.New("invalid guid identifier")
		}
		return NewNodeIDGUID(ns, id), nil
	case strings.HasPrefix(s, "b="):
		id, err := base64.StdEncoding.DecodeString(s[2:])
		if err != nil {
			return NilNodeID, errors.New("invalid opaque identifier")
		}
		return NewNodeIDOpaque(ns, ByteString(id)), nil
	}
	return NilNodeID, errors.New("unknown identifier type")
}

// String returns a string representation of the NodeID, e.g. "ns=2;s=Demo"
func (n NodeID) String() string {
	if n.namespaceIndex > 0 {
		return fmt.Sprintf("ns=%d;%s", n.namespaceIndex, n.identifierString())
	}
	return n.identifierString()
}

func (n NodeID) identifierString() string {
	switch n.idType {
	case IDTypeNumeric:
		return "i=" + strconv.FormatUint(uint64(n.nid), 10)
	case IDTypeString:
		return "s=" + n.sid
	case IDTypeGUID:
		return "g=" + n.gid.String()
	case IDTypeOpaque:
		return "b=" + base64.StdEncoding.EncodeToString([]byte(n.bid))
	default:
		return ""
	}
}

// ToExpandedNodeID converts the NodeID to an ExpandedNodeID, replacing
// a non-zero namespace index with the namespace URI found in the table.
func (n NodeID) ToExpandedNodeID(table *NamespaceTable) ExpandedNodeID {
	if n.namespaceIndex > 0 && table != nil {
		if uri, ok := table.URI(n.namespaceIndex); ok {
			return ExpandedNodeID{0, uri, n.WithNamespaceIndex(0)}
		}
	}
	return ExpandedNodeID{nodeID: n}
}
