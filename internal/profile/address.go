package profile

import "fmt"

// Address locates one feature in the EC register file. It is a sum of
// three cases: a real 8-bit register address, Unknown (feature believed
// present, address unconfirmed) or Unsupported (feature absent on this
// model).
//
// The zero value is Unsupported, so features left out of a profile
// literal are hidden by default.
type Address struct {
	state addressState
	value uint8
}

type addressState uint8

const (
	addressUnsupported addressState = iota
	addressUnknown
	addressValid
)

// Unsupported marks a feature as not wired on the model.
var Unsupported = Address{}

// Unknown marks a feature as believed present with an unconfirmed
// address. Unknown features remain visible and operable; reads may
// return nonsensical data until the real address is found.
var Unknown = Address{state: addressUnknown}

// Addr returns a valid register address.
func Addr(v uint8) Address {
	return Address{state: addressValid, value: v}
}

// Supported reports whether the feature exists on the model at all.
// True for both valid and Unknown addresses.
func (a Address) Supported() bool {
	return a.state != addressUnsupported
}

// Verified reports whether the address is a confirmed register address
// (false for both sentinels).
func (a Address) Verified() bool {
	return a.state == addressValid
}

// Value returns the register address. ok is false for both sentinels;
// callers must check it before any register I/O.
func (a Address) Value() (addr uint8, ok bool) {
	if a.state != addressValid {
		return 0, false
	}
	return a.value, true
}

// String implements fmt.Stringer for logs and debug output.
func (a Address) String() string {
	switch a.state {
	case addressValid:
		return fmt.Sprintf("0x%02x", a.value)
	case addressUnknown:
		return "unknown"
	default:
		return "unsupported"
	}
}
