// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

import (
	"fmt"
)

// LocalizedText pairs text and a Locale string.
type LocalizedText struct {
	Text   string
	Locale string
}

// NewLocalizedText constructs a LocalizedText from text and Locale string.
func NewLocalizedText(text, locale string) LocalizedText {
	return LocalizedText{text, locale}
}

// String returns the string representation, e.g. "text (locale)"
func (a LocalizedText) String() string {
	if a.Locale == "" {
		return a.Text
	}
	return fmt.Sprintf("%s (%s)", a.Text, a.Locale)
}

// encoding mask bits of the binary form.
const (
	localizedTextLocale byte = 1
	localizedTextText   byte = 2
)

func (a LocalizedText) mask() byte {
	var b byte
	if a.Locale != "" {
		b |= localizedTextLocale
	}
	if a.Text != "" {
		b |= localizedTextText
	}
	return b
}
