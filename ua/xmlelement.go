// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

import (
	"regexp"
)

var (
	invalidXML = regexp.MustCompile(`[^\x09\x0A\x0D\x20-\x{D7FF}\x{E000}-\x{FFFD}\x{10000}-\x{10FFFF}]+`)
)

// XMLElement is an xml fragment, stored as a string.
type XMLElement string

// String returns the element with characters that are not allowed in xml removed.
func (e XMLElement) String() string {
	return invalidXML.ReplaceAllString(string(e), "")
}
