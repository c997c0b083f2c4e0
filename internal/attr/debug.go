package attr

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Dumper is the extra register access the debug surface needs on top of
// Controller. Satisfied by ec.Controller.
type Dumper interface {
	Controller
	Dump() ([256]byte, error)
}

// Debug exposes raw register operations that bypass the profile and
// every validation layer. Unsafe by construction; it exists so new
// register layouts can be reverse engineered on unlisted models, and it
// is only wired up when the operator sets the debug flag.
type Debug struct {
	ctrl Dumper

	mu       sync.Mutex
	selected uint8
}

// NewDebug creates the debug surface over the given controller.
func NewDebug(ctrl Dumper) *Debug {
	return &Debug{ctrl: ctrl}
}

// DumpGrid reads the full register file and formats it as a 16x16 hex
// table with row and column headers.
func (d *Debug) DumpGrid() (string, error) {
	regs, err := d.ctrl.Dump()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("     | _0 _1 _2 _3 _4 _5 _6 _7 _8 _9 _a _b _c _d _e _f\n")
	b.WriteString("-----+------------------------------------------------\n")

	for row := 0; row < 16; row++ {
		fmt.Fprintf(&b, "0x%x_ |", row)
		for col := 0; col < 16; col++ {
			fmt.Fprintf(&b, " %02x", regs[row*16+col])
		}
		b.WriteByte('\n')
	}

	return b.String(), nil
}

// Set writes a register from a "xx=xx" pair of hex bytes.
func (d *Debug) Set(input string) error {
	addrStr, valStr, ok := strings.Cut(strings.TrimSpace(input), "=")
	if !ok {
		return fmt.Errorf("%w: want \"xx=xx\"", ErrInvalidValue)
	}

	addr, err := parseHexByte(addrStr)
	if err != nil {
		return err
	}
	val, err := parseHexByte(valStr)
	if err != nil {
		return err
	}

	return d.ctrl.Write(addr, val)
}

// Select stores a register address for subsequent Get calls. The
// select-then-read split mirrors a stateful sysfs attribute and lets an
// operator poll one register repeatedly.
func (d *Debug) Select(input string) error {
	addr, err := parseHexByte(strings.TrimSpace(input))
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.selected = addr
	d.mu.Unlock()
	return nil
}

// Get reads the most recently selected register and returns its value
// as two hex digits.
func (d *Debug) Get() (string, error) {
	d.mu.Lock()
	addr := d.selected
	d.mu.Unlock()

	raw, err := d.ctrl.Read(addr)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02x", raw), nil
}

func parseHexByte(s string) (uint8, error) {
	if len(s) == 0 || len(s) > 2 {
		return 0, fmt.Errorf("%w: %q is not a hex byte", ErrInvalidValue, s)
	}
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a hex byte", ErrInvalidValue, s)
	}
	return uint8(v), nil
}
