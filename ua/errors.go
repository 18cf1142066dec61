// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

import (
	"github.com/pkg/errors"
)

// StatusCodeOf returns the StatusCode at the root of err.
// A nil error is Good; an error that does not wrap a StatusCode is BadUnexpectedError.
func StatusCodeOf(err error) StatusCode {
	if err == nil {
		return Good
	}
	if c, ok := errors.Cause(err).(StatusCode); ok {
		return c
	}
	return BadUnexpectedError
}

func decodingError(format string, args ...any) error {
	return errors.Wrapf(BadDecodingError, format, args...)
}

func encodingError(format string, args ...any) error {
	return errors.Wrapf(BadEncodingError, format, args...)
}

func limitsExceeded(format string, args ...any) error {
	return errors.Wrapf(BadEncodingLimitsExceeded, format, args...)
}
