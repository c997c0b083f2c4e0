package profile

import "errors"

var (
	// ErrUnsupportedFirmware indicates no catalog entry matches the
	// firmware version reported by the controller.
	ErrUnsupportedFirmware = errors.New("no configuration for this firmware version")

	// ErrNoConfiguration indicates the firmware version could not be
	// read at all, so resolution never got as far as the catalog.
	ErrNoConfiguration = errors.New("unable to determine firmware version")
)
