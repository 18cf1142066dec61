// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

import (
	"fmt"
	"strconv"
	"strings"
)

// QualifiedName pairs a name and a namespace index.
type QualifiedName struct {
	NamespaceIndex uint16
	Name           string
}

// NewQualifiedName constructs a QualifiedName from a namespace index and a name.
func NewQualifiedName(ns uint16, text string) QualifiedName {
	return QualifiedName{ns, text}
}

// ParseQualifiedName returns a QualifiedName from a string, e.g. ParseQualifiedName("2:Demo")
func ParseQualifiedName(s string) QualifiedName {
	pos := strings.Index(s, ":")
	if pos == -1 {
		return QualifiedName{0, s}
	}
	ns, err := strconv.ParseUint(s[:pos], 10, 16)
	if err != nil {
		return QualifiedName{0, s}
	}
	return QualifiedName{uint16(ns), s[pos+1:]}
}

// String returns a string representation, e.g. "2:Demo"
func (a QualifiedName) String() string {
	if a.NamespaceIndex == 0 {
		return a.Name
	}
	return fmt.Sprintf("%d:%s", a.NamespaceIndex, a.Name)
}
