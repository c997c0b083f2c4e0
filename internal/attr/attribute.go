package attr

// Controller is the register access surface the attribute layer needs.
// Satisfied by ec.Controller.
type Controller interface {
	Read(addr uint8) (byte, error)
	Write(addr uint8, value byte) error
	ReadSeq(addr uint8, length int) ([]byte, error)
	SetBit(addr uint8, bit uint8, value bool) error
	CheckBit(addr uint8, bit uint8) (bool, error)
	SetByMask(addr uint8, mask uint8) error
	UnsetByMask(addr uint8, mask uint8) error
	CheckByMask(addr uint8, mask uint8) (bool, error)
	FirmwareVersion() (string, error)
	FirmwareReleaseDate() (string, error)
}

// Attribute is one named read/write endpoint over the EC. Attributes
// are built once by the registry from the active profile; the show and
// store closures capture the relevant register addresses.
type Attribute struct {
	// Name is the full attribute path, e.g. "shift_mode" or
	// "cpu/realtime_temperature".
	Name string

	// Group is the attribute's section: "" for root attributes, else
	// "cpu", "gpu" or "led".
	Group string

	// Writable reports whether Store is allowed.
	Writable bool

	// AddressVerified is false when the backing register address has
	// not been confirmed on real hardware. Such attributes are listed
	// but every Show and Store returns ErrAddressUnknown.
	AddressVerified bool

	show  func() (string, error)
	store func(value string) error
}

// Show reads the attribute's current value.
func (a *Attribute) Show() (string, error) {
	return a.show()
}

// Store validates and writes a new value. Read-only attributes reject
// every store; validation failures never reach the EC.
func (a *Attribute) Store(value string) error {
	if !a.Writable || a.store == nil {
		return ErrReadOnly
	}
	return a.store(value)
}
