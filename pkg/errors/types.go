// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package errors

import "strconv"

// Status is a patch status code.
type Status uint64

const (
	// OK means the operation succeeded.
	OK Status = 200

	// BadRequest means the caller asked for something that makes no sense,
	// such as an invalid patch configuration.
	BadRequest Status = 400

	// NotFound means a layer, object, or file could not be located.
	NotFound Status = 404

	// Conflict means an edit collides with existing data, such as a
	// duplicate instance ID.
	Conflict Status = 409

	// EncodingError means a value could not be encoded.
	EncodingError Status = 422

	// MalformedInput means the input bytes do not have the expected
	// structure: a magic constant mismatch or a length field inconsistent
	// with the available bytes.
	MalformedInput Status = 423

	// NotEncodable means a value or source does not implement the binary
	// codec contract.
	NotEncodable Status = 424

	// UnknownError means the cause is unknown.
	UnknownError Status = 500

	// InternalError means an internal invariant was violated. It indicates a
	// bug, not bad input.
	InternalError Status = 501
)

var statusNames = map[Status]string{
	OK:             "ok",
	BadRequest:     "badRequest",
	NotFound:       "notFound",
	Conflict:       "conflict",
	EncodingError:  "encodingError",
	MalformedInput: "malformedInput",
	NotEncodable:   "notEncodable",
	UnknownError:   "unknownError",
	InternalError:  "internalError",
}

// String returns the name of the status.
func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return "status(" + strconv.FormatUint(uint64(s), 10) + ")"
}

// StatusByName returns the status with the given name.
func StatusByName(name string) (Status, bool) {
	for s, n := range statusNames {
		if n == name {
			return s, true
		}
	}
	return 0, false
}

// CallSite is a location in the source where an error was created or
// wrapped.
type CallSite struct {
	FuncName string
	File     string
	Line     int64
}

// Error is an error with a status code, an optional cause, and (when
// location tracking is enabled) the call sites it passed through.
type Error struct {
	Message   string
	Code      Status
	Cause     *Error
	CallStack []*CallSite
}
