package ec

import "errors"

// Sentinel errors for EC register access.
//
// These errors can be checked using errors.Is():
//
//	if errors.Is(err, ec.ErrIO) {
//	    // transport-level failure, the register state is unknown
//	}
var (
	// ErrIO indicates the byte transport failed. The error wraps the
	// underlying cause; the affected register's state is undefined.
	ErrIO = errors.New("ec: register i/o failed")

	// ErrClosed is returned when operating on a closed transport.
	ErrClosed = errors.New("ec: transport closed")
)
