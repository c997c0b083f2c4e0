package attr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/openlaptop/msiec-core/internal/profile"
)

// ErrAddressUnknown indicates the attribute exists on the model but its
// register address has not been confirmed, so no I/O is attempted.
var ErrAddressUnknown = errors.New("register address not yet confirmed for this model")

// Registry holds the attribute set built from the active profile.
// Features whose primary address is unsupported are never registered,
// so enumerating the registry is also the capability check.
type Registry struct {
	ctrl   Controller
	attrs  []*Attribute
	byName map[string]*Attribute
}

// NewRegistry builds the attribute set for the given profile. The
// profile must not change afterwards.
func NewRegistry(ctrl Controller, prof *profile.Profile) *Registry {
	r := &Registry{
		ctrl:   ctrl,
		byName: make(map[string]*Attribute),
	}

	r.addWebcam(prof)
	r.addFnWinSwap(prof)
	r.addBattery(prof)
	r.addCoolerBoost(prof)
	r.addShiftMode(prof)
	r.addSuperBattery(prof)
	r.addFanMode(prof)
	r.addFirmware()
	r.addCPU(prof)
	r.addGPU(prof)
	r.addLEDs(prof)

	return r
}

// List returns every registered attribute in declaration order.
func (r *Registry) List() []*Attribute {
	return r.attrs
}

// Get looks up an attribute by name. Features absent on this model
// return ErrNotSupported.
func (r *Registry) Get(name string) (*Attribute, error) {
	a, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotSupported, name)
	}
	return a, nil
}

// Show reads the named attribute.
func (r *Registry) Show(name string) (string, error) {
	a, err := r.Get(name)
	if err != nil {
		return "", err
	}
	return a.Show()
}

// Store writes the named attribute.
func (r *Registry) Store(name, value string) error {
	a, err := r.Get(name)
	if err != nil {
		return err
	}
	return a.Store(value)
}

func (r *Registry) register(a *Attribute) {
	r.attrs = append(r.attrs, a)
	r.byName[a.Name] = a
}

// resolveAddr unpacks an address for use inside show/store closures.
// Unknown addresses register the attribute but fail every operation
// until someone confirms the register on real hardware.
func resolveAddr(a profile.Address) (addr uint8, err error) {
	v, ok := a.Value()
	if !ok {
		return 0, ErrAddressUnknown
	}
	return v, nil
}

// onOffBit registers a single-bit on/off attribute. onWhenSet controls
// label polarity: the webcam block reads "off" when its bit is set.
func (r *Registry) onOffBit(name string, address profile.Address, bit uint8, onWhenSet bool) {
	r.register(&Attribute{
		Name:            name,
		Writable:        true,
		AddressVerified: address.Verified(),
		show: func() (string, error) {
			addr, err := resolveAddr(address)
			if err != nil {
				return "", err
			}
			set, err := r.ctrl.CheckBit(addr, bit)
			if err != nil {
				return "", err
			}
			return formatOnOff(set == onWhenSet), nil
		},
		store: func(value string) error {
			on, err := parseOnOff(value)
			if err != nil {
				return err
			}
			addr, err := resolveAddr(address)
			if err != nil {
				return err
			}
			return r.ctrl.SetBit(addr, bit, on == onWhenSet)
		},
	})
}

func (r *Registry) addWebcam(prof *profile.Profile) {
	if prof.Webcam.Address.Supported() {
		r.onOffBit("webcam", prof.Webcam.Address, prof.Webcam.Bit, true)
	}
	if prof.Webcam.BlockAddress.Supported() {
		r.onOffBit("webcam_block", prof.Webcam.BlockAddress, prof.Webcam.Bit, false)
	}
}

// fn_key and win_key are two views of the same swap bit: when the keys
// are swapped the fn key sits on the right and the win key on the left.
func (r *Registry) addFnWinSwap(prof *profile.Profile) {
	sw := prof.FnWinSwap
	if !sw.Address.Supported() {
		return
	}

	side := func(swapped bool, rightWhenSwapped bool) string {
		if swapped == rightWhenSwapped {
			return "right"
		}
		return "left"
	}

	for _, key := range []struct {
		name             string
		rightWhenSwapped bool
	}{
		{"fn_key", true},
		{"win_key", false},
	} {
		rightWhenSwapped := key.rightWhenSwapped
		r.register(&Attribute{
			Name:            key.name,
			Writable:        true,
			AddressVerified: sw.Address.Verified(),
			show: func() (string, error) {
				addr, err := resolveAddr(sw.Address)
				if err != nil {
					return "", err
				}
				set, err := r.ctrl.CheckBit(addr, sw.Bit)
				if err != nil {
					return "", err
				}
				return side(set != sw.Invert, rightWhenSwapped), nil
			},
			store: func(value string) error {
				var swapped bool
				switch value {
				case "right":
					swapped = rightWhenSwapped
				case "left":
					swapped = !rightWhenSwapped
				default:
					return fmt.Errorf("%w: %q is not left/right", ErrInvalidValue, value)
				}
				addr, err := resolveAddr(sw.Address)
				if err != nil {
					return err
				}
				return r.ctrl.SetBit(addr, sw.Bit, swapped != sw.Invert)
			},
		})
	}
}

func (r *Registry) addBattery(prof *profile.Profile) {
	cc := prof.ChargeControl
	if !cc.Address.Supported() {
		return
	}

	r.register(&Attribute{
		Name:            "battery_mode",
		Writable:        true,
		AddressVerified: cc.Address.Verified(),
		show: func() (string, error) {
			addr, err := resolveAddr(cc.Address)
			if err != nil {
				return "", err
			}
			raw, err := r.ctrl.Read(addr)
			if err != nil {
				return "", err
			}
			return decodeBatteryMode(cc, raw), nil
		},
		store: func(value string) error {
			raw, err := encodeBatteryMode(cc, value)
			if err != nil {
				return err
			}
			addr, err := resolveAddr(cc.Address)
			if err != nil {
				return err
			}
			return r.ctrl.Write(addr, raw)
		},
	})

	for _, th := range []struct {
		name   string
		offset uint8
	}{
		{"charge_control_start_threshold", cc.OffsetStart},
		{"charge_control_end_threshold", cc.OffsetEnd},
	} {
		offset := th.offset
		r.register(&Attribute{
			Name:            th.name,
			Writable:        true,
			AddressVerified: cc.Address.Verified(),
			show: func() (string, error) {
				addr, err := resolveAddr(cc.Address)
				if err != nil {
					return "", err
				}
				raw, err := r.ctrl.Read(addr)
				if err != nil {
					return "", err
				}
				return strconv.Itoa(decodeThreshold(raw, offset)), nil
			},
			store: func(value string) error {
				pct, err := parsePercent(value)
				if err != nil {
					return err
				}
				raw, err := encodeThreshold(cc, offset, pct)
				if err != nil {
					return err
				}
				addr, err := resolveAddr(cc.Address)
				if err != nil {
					return err
				}
				return r.ctrl.Write(addr, raw)
			},
		})
	}
}

func (r *Registry) addCoolerBoost(prof *profile.Profile) {
	if prof.CoolerBoost.Address.Supported() {
		r.onOffBit("cooler_boost", prof.CoolerBoost.Address, prof.CoolerBoost.Bit, true)
	}
}

// modeTable registers a mode selector plus its read-only companion that
// lists the available mode names one per line.
func (r *Registry) modeTable(name string, table profile.ModeTable) {
	if !table.Address.Supported() {
		return
	}

	names := make([]string, len(table.Modes))
	for i, m := range table.Modes {
		names[i] = m.Name
	}

	r.register(&Attribute{
		Name:            "available_" + name + "s",
		AddressVerified: table.Address.Verified(),
		show: func() (string, error) {
			return strings.Join(names, "\n"), nil
		},
	})

	r.register(&Attribute{
		Name:            name,
		Writable:        true,
		AddressVerified: table.Address.Verified(),
		show: func() (string, error) {
			addr, err := resolveAddr(table.Address)
			if err != nil {
				return "", err
			}
			raw, err := r.ctrl.Read(addr)
			if err != nil {
				return "", err
			}
			return decodeMode(table, raw), nil
		},
		store: func(value string) error {
			raw, err := encodeMode(table, value)
			if err != nil {
				return err
			}
			addr, err := resolveAddr(table.Address)
			if err != nil {
				return err
			}
			return r.ctrl.Write(addr, raw)
		},
	})
}

func (r *Registry) addShiftMode(prof *profile.Profile) {
	r.modeTable("shift_mode", prof.ShiftMode)
}

func (r *Registry) addFanMode(prof *profile.Profile) {
	r.modeTable("fan_mode", prof.FanMode)
}

func (r *Registry) addSuperBattery(prof *profile.Profile) {
	sb := prof.SuperBattery
	if !sb.Address.Supported() {
		return
	}

	r.register(&Attribute{
		Name:            "super_battery",
		Writable:        true,
		AddressVerified: sb.Address.Verified(),
		show: func() (string, error) {
			addr, err := resolveAddr(sb.Address)
			if err != nil {
				return "", err
			}
			on, err := r.ctrl.CheckByMask(addr, sb.Mask)
			if err != nil {
				return "", err
			}
			return formatOnOff(on), nil
		},
		store: func(value string) error {
			on, err := parseOnOff(value)
			if err != nil {
				return err
			}
			addr, err := resolveAddr(sb.Address)
			if err != nil {
				return err
			}
			if on {
				return r.ctrl.SetByMask(addr, sb.Mask)
			}
			return r.ctrl.UnsetByMask(addr, sb.Mask)
		},
	})
}

// Firmware attributes exist on every model; the registers are fixed
// across the whole product line.
func (r *Registry) addFirmware() {
	r.register(&Attribute{
		Name:            "fw_version",
		AddressVerified: true,
		show:            r.ctrl.FirmwareVersion,
	})
	r.register(&Attribute{
		Name:            "fw_release_date",
		AddressVerified: true,
		show:            r.ctrl.FirmwareReleaseDate,
	})
}

// rawByte registers a read-only attribute that reports a register's
// value as a decimal number. Used for temperatures and unscaled fans.
func (r *Registry) rawByte(name, group string, address profile.Address) {
	if !address.Supported() {
		return
	}
	r.register(&Attribute{
		Name:            name,
		Group:           group,
		AddressVerified: address.Verified(),
		show: func() (string, error) {
			addr, err := resolveAddr(address)
			if err != nil {
				return "", err
			}
			raw, err := r.ctrl.Read(addr)
			if err != nil {
				return "", err
			}
			return strconv.Itoa(int(raw)), nil
		},
	})
}

// rangePercent registers a fan speed attribute scaled to 0-100%.
func (r *Registry) rangePercent(name, group string, rng profile.Range, writable bool) {
	if !rng.Address.Supported() {
		return
	}

	a := &Attribute{
		Name:            name,
		Group:           group,
		Writable:        writable,
		AddressVerified: rng.Address.Verified(),
		show: func() (string, error) {
			addr, err := resolveAddr(rng.Address)
			if err != nil {
				return "", err
			}
			raw, err := r.ctrl.Read(addr)
			if err != nil {
				return "", err
			}
			pct, err := decodeRange(rng, raw)
			if err != nil {
				return "", err
			}
			return strconv.Itoa(pct), nil
		},
	}
	if writable {
		a.store = func(value string) error {
			pct, err := parsePercent(value)
			if err != nil {
				return err
			}
			raw, err := encodeRange(rng, pct)
			if err != nil {
				return err
			}
			addr, err := resolveAddr(rng.Address)
			if err != nil {
				return err
			}
			return r.ctrl.Write(addr, raw)
		}
	}
	r.register(a)
}

func (r *Registry) addCPU(prof *profile.Profile) {
	r.rawByte("cpu/realtime_temperature", "cpu", prof.CPU.RealtimeTempAddress)
	r.rangePercent("cpu/realtime_fan_speed", "cpu", prof.CPU.RealtimeFanSpeed, false)
	r.rangePercent("cpu/basic_fan_speed", "cpu", prof.CPU.BasicFanSpeed, true)
}

func (r *Registry) addGPU(prof *profile.Profile) {
	r.rawByte("gpu/realtime_temperature", "gpu", prof.GPU.RealtimeTempAddress)
	// No scaling is known for the GPU fan register on any model.
	r.rawByte("gpu/realtime_fan_speed", "gpu", prof.GPU.RealtimeFanSpeedAddress)
}

// ledBit registers an indicator light as a 0/1 brightness attribute.
func (r *Registry) ledBit(name string, address profile.Address, bit uint8) {
	if !address.Supported() {
		return
	}
	r.register(&Attribute{
		Name:            name,
		Group:           "led",
		Writable:        true,
		AddressVerified: address.Verified(),
		show: func() (string, error) {
			addr, err := resolveAddr(address)
			if err != nil {
				return "", err
			}
			set, err := r.ctrl.CheckBit(addr, bit)
			if err != nil {
				return "", err
			}
			if set {
				return "1", nil
			}
			return "0", nil
		},
		store: func(value string) error {
			var on bool
			switch value {
			case "0":
				on = false
			case "1":
				on = true
			default:
				return fmt.Errorf("%w: %q is not 0/1", ErrInvalidValue, value)
			}
			addr, err := resolveAddr(address)
			if err != nil {
				return err
			}
			return r.ctrl.SetBit(addr, bit, on)
		},
	})
}

func (r *Registry) addLEDs(prof *profile.Profile) {
	r.ledBit("led/micmute", prof.LEDs.MicMuteAddress, prof.LEDs.Bit)
	r.ledBit("led/mute", prof.LEDs.MuteAddress, prof.LEDs.Bit)

	kbd := prof.KbdBacklight
	if !kbd.StateAddress.Supported() {
		return
	}
	r.register(&Attribute{
		Name:            "led/kbd_backlight",
		Group:           "led",
		Writable:        true,
		AddressVerified: kbd.StateAddress.Verified(),
		show: func() (string, error) {
			addr, err := resolveAddr(kbd.StateAddress)
			if err != nil {
				return "", err
			}
			raw, err := r.ctrl.Read(addr)
			if err != nil {
				return "", err
			}
			return strconv.Itoa(int(raw & profile.KbdBacklightStateMask)), nil
		},
		store: func(value string) error {
			level, err := strconv.Atoi(value)
			if err != nil || level < 0 || level > int(kbd.MaxLevel) {
				return fmt.Errorf("%w: backlight level %q not in [0, %d]",
					ErrInvalidValue, value, kbd.MaxLevel)
			}
			addr, err := resolveAddr(kbd.StateAddress)
			if err != nil {
				return err
			}
			return r.ctrl.Write(addr, kbd.BaseValue|uint8(level))
		},
	})
}
