package ec

import "sync"

// Controller provides the atomic register access primitives over a
// byte-level Transport.
//
// Plain Read/Write are single transport calls and need no locking.
// Bit and mask mutations are read-modify-write pairs guarded by one
// mutex per operation kind, so concurrent mutations of different bits
// in the same register byte cannot lose updates.
type Controller struct {
	transport Transport

	setBitMu    sync.Mutex
	setMaskMu   sync.Mutex
	unsetMaskMu sync.Mutex
}

// New creates a Controller over the given transport.
func New(transport Transport) *Controller {
	return &Controller{transport: transport}
}

// Read returns the byte stored at addr.
func (c *Controller) Read(addr uint8) (byte, error) {
	return c.transport.ReadByte(addr)
}

// Write stores value at addr.
func (c *Controller) Write(addr uint8, value byte) error {
	return c.transport.WriteByte(addr, value)
}

// ReadSeq reads length consecutive registers starting at addr.
//
// The first transport failure aborts the read and is propagated; the
// partially filled buffer is discarded. Used for the fixed-length
// firmware identifier, date and time strings.
func (c *Controller) ReadSeq(addr uint8, length int) ([]byte, error) {
	buf := make([]byte, length)
	for i := 0; i < length; i++ {
		b, err := c.transport.ReadByte(addr + uint8(i))
		if err != nil {
			return nil, err
		}
		buf[i] = b
	}
	return buf, nil
}

// SetBit sets or clears a single bit of the register at addr.
//
// The read-modify-write pair is serialised against all other SetBit
// calls, so two goroutines flipping different bits of the same byte
// both take effect.
func (c *Controller) SetBit(addr uint8, bit uint8, value bool) error {
	c.setBitMu.Lock()
	defer c.setBitMu.Unlock()

	stored, err := c.transport.ReadByte(addr)
	if err != nil {
		return err
	}

	if value {
		stored |= 1 << bit
	} else {
		stored &^= 1 << bit
	}

	return c.transport.WriteByte(addr, stored)
}

// CheckBit reports whether the given bit of the register at addr is set.
func (c *Controller) CheckBit(addr uint8, bit uint8) (bool, error) {
	stored, err := c.transport.ReadByte(addr)
	if err != nil {
		return false, err
	}
	return (stored>>bit)&1 == 1, nil
}

// SetByMask sets all bits of mask in the register at addr.
func (c *Controller) SetByMask(addr uint8, mask uint8) error {
	c.setMaskMu.Lock()
	defer c.setMaskMu.Unlock()

	stored, err := c.transport.ReadByte(addr)
	if err != nil {
		return err
	}

	stored |= mask

	return c.transport.WriteByte(addr, stored)
}

// UnsetByMask clears all bits of mask in the register at addr.
func (c *Controller) UnsetByMask(addr uint8, mask uint8) error {
	c.unsetMaskMu.Lock()
	defer c.unsetMaskMu.Unlock()

	stored, err := c.transport.ReadByte(addr)
	if err != nil {
		return err
	}

	stored &^= mask

	return c.transport.WriteByte(addr, stored)
}

// CheckByMask reports whether all bits of mask are set in the register
// at addr.
func (c *Controller) CheckByMask(addr uint8, mask uint8) (bool, error) {
	stored, err := c.transport.ReadByte(addr)
	if err != nil {
		return false, err
	}
	return stored&mask == mask, nil
}

// Dump reads the entire 256-byte register file.
//
// The first transport failure aborts the dump. Only used by the debug
// surface; a dump is 256 separate transport reads and is not atomic.
func (c *Controller) Dump() ([256]byte, error) {
	var dump [256]byte
	for i := 0; i < 256; i++ {
		b, err := c.transport.ReadByte(uint8(i))
		if err != nil {
			return dump, err
		}
		dump[i] = b
	}
	return dump, nil
}
