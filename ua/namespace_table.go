// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

import (
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
)

// NamespaceURIUA is the namespace of the OPC Foundation, always at index 0.
const NamespaceURIUA = "http://opcfoundation.org/UA/"

// NamespaceTable maps namespace indices to namespace URIs. Lookups are lock-free;
// additions are serialized and publish a new snapshot.
type NamespaceTable struct {
	mu   sync.Mutex
	uris atomic.Pointer[[]string]
}

// NewNamespaceTable returns a table holding the UA namespace followed by the given uris.
// Duplicate uris are added once.
func NewNamespaceTable(uris ...string) *NamespaceTable {
	t := &NamespaceTable{}
	s := []string{NamespaceURIUA}
	t.uris.Store(&s)
	for _, uri := range uris {
		t.Add(uri)
	}
	return t
}

func (t *NamespaceTable) snapshot() []string {
	if p := t.uris.Load(); p != nil {
		return *p
	}
	return []string{NamespaceURIUA}
}

// URI returns the namespace uri at the index.
func (t *NamespaceTable) URI(index uint16) (string, bool) {
	s := t.snapshot()
	if int(index) < len(s) {
		return s[index], true
	}
	return "", false
}

// Index returns the index of the namespace uri.
func (t *NamespaceTable) Index(uri string) (uint16, bool) {
	for i, u := range t.snapshot() {
		if u == uri {
			return uint16(i), true
		}
	}
	return 0, false
}

// Add returns the index of the namespace uri, appending it if new.
func (t *NamespaceTable) Add(uri string) uint16 {
	if i, ok := t.Index(uri); ok {
		return i
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.snapshot()
	for i, u := range s {
		if u == uri {
			return uint16(i)
		}
	}
	next := make([]string, len(s), len(s)+1)
	copy(next, s)
	next = append(next, uri)
	t.uris.Store(&next)
	return uint16(len(next) - 1)
}

// URIs returns a copy of the namespace uris.
func (t *NamespaceTable) URIs() []string {
	s := t.snapshot()
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// Len returns the number of namespaces.
func (t *NamespaceTable) Len() int {
	return len(t.snapshot())
}

// Remap translates the namespace index of a NodeID from this table into the other table.
func (t *NamespaceTable) Remap(id NodeID, to *NamespaceTable) (NodeID, error) {
	uri, ok := t.URI(id.NamespaceIndex())
	if !ok {
		return NilNodeID, errors.Wrapf(BadNodeIDUnknown, "namespace index %d not in table", id.NamespaceIndex())
	}
	ns, ok := to.Index(uri)
	if !ok {
		return NilNodeID, errors.Wrapf(BadNodeIDUnknown, "namespace uri %q not in target table", uri)
	}
	return id.WithNamespaceIndex(ns), nil
}
