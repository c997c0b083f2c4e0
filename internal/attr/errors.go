package attr

import "errors"

var (
	// ErrNotSupported indicates the attribute does not exist on the
	// active hardware profile.
	ErrNotSupported = errors.New("attribute not supported on this model")

	// ErrInvalidValue indicates a store value that failed validation.
	// Nothing is written to the EC when this is returned.
	ErrInvalidValue = errors.New("invalid attribute value")

	// ErrReadFault indicates a register read that succeeded at the
	// transport level but returned a value outside the decodable
	// range for the attribute.
	ErrReadFault = errors.New("register value outside decodable range")

	// ErrReadOnly indicates a store against a read-only attribute.
	ErrReadOnly = errors.New("attribute is read-only")
)
