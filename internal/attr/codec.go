package attr

import (
	"fmt"
	"strconv"

	"github.com/openlaptop/msiec-core/internal/profile"
)

// unspecifiedRaw is what the EC reports in a mode or threshold register
// before anything has ever been written to it.
const unspecifiedRaw = 0x80

// decodeMode maps a raw register byte to a mode name. A raw byte not in
// the table decodes to "unknown (N)" rather than an error so operators
// can see what the EC actually holds.
func decodeMode(table profile.ModeTable, raw byte) string {
	if raw == unspecifiedRaw {
		return "unspecified"
	}
	for _, m := range table.Modes {
		if m.Value == raw {
			return m.Name
		}
	}
	return fmt.Sprintf("unknown (%d)", raw)
}

// encodeMode maps a mode name to its register value.
func encodeMode(table profile.ModeTable, name string) (byte, error) {
	for _, m := range table.Modes {
		if m.Name == name {
			return m.Value, nil
		}
	}
	return 0, fmt.Errorf("%w: %q is not an available mode", ErrInvalidValue, name)
}

// decodeRange converts a raw register byte to a 0-100 percentage. A raw
// byte outside the base range is a hardware anomaly and reported as a
// read fault, never clamped.
func decodeRange(r profile.Range, raw byte) (int, error) {
	if raw < r.BaseMin || raw > r.BaseMax {
		return 0, fmt.Errorf("%w: %#02x not in [%#02x, %#02x]",
			ErrReadFault, raw, r.BaseMin, r.BaseMax)
	}
	return 100 * int(raw-r.BaseMin) / int(r.BaseMax-r.BaseMin), nil
}

// encodeRange converts a 0-100 percentage to a raw register byte.
func encodeRange(r profile.Range, pct int) (byte, error) {
	if pct < 0 || pct > 100 {
		return 0, fmt.Errorf("%w: %d%% not in [0, 100]", ErrInvalidValue, pct)
	}
	return byte((pct*int(r.BaseMax-r.BaseMin) + 100*int(r.BaseMin)) / 100), nil
}

// decodeThreshold converts a stored charge threshold byte to a
// percentage. The factory-fresh sentinel decodes to 0.
func decodeThreshold(raw, offset byte) int {
	if raw == unspecifiedRaw {
		return 0
	}
	return int(raw) - int(offset)
}

// encodeThreshold converts a percentage to the raw threshold byte,
// rejecting values that would land outside the profile's safe range.
func encodeThreshold(cc profile.ChargeControl, offset byte, pct int) (byte, error) {
	raw := pct + int(offset)
	if raw < int(cc.RangeMin) || raw > int(cc.RangeMax) {
		return 0, fmt.Errorf("%w: threshold %d%% out of range", ErrInvalidValue, pct)
	}
	return byte(raw), nil
}

// Battery mode presets are fixed points in the charge threshold space:
// max charges to the full range, medium stops at 80% and min at 60%.
func decodeBatteryMode(cc profile.ChargeControl, raw byte) string {
	switch raw {
	case cc.RangeMax:
		return "max"
	case cc.OffsetEnd + 80:
		return "medium"
	case cc.OffsetEnd + 60:
		return "min"
	default:
		return fmt.Sprintf("unknown (%d)", raw)
	}
}

func encodeBatteryMode(cc profile.ChargeControl, name string) (byte, error) {
	switch name {
	case "max":
		return cc.RangeMax, nil
	case "medium":
		return cc.OffsetEnd + 80, nil
	case "min":
		return cc.OffsetEnd + 60, nil
	default:
		return 0, fmt.Errorf("%w: %q is not a battery mode", ErrInvalidValue, name)
	}
}

// parsePercent parses a decimal percentage from a store payload.
func parsePercent(s string) (int, error) {
	pct, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidValue, s)
	}
	return pct, nil
}

// parseOnOff parses an on/off store payload.
func parseOnOff(s string) (bool, error) {
	switch s {
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q is not on/off", ErrInvalidValue, s)
	}
}

func formatOnOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
