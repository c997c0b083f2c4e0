package ec

import (
	"bytes"
	"fmt"
	"strconv"
)

// Reserved register ranges holding firmware identification strings.
// Fixed-length ASCII, zero-padded at the tail.
const (
	FirmwareVersionAddress = 0xa0
	FirmwareVersionLength  = 12

	FirmwareDateAddress = 0xac
	FirmwareDateLength  = 8 // MMDDYYYY

	FirmwareTimeAddress = 0xb4
	FirmwareTimeLength  = 8 // HH:MM:SS
)

// FirmwareVersion reads the EC firmware version string.
//
// The version doubles as the hardware profile lookup key, so a failure
// here is fatal to startup unless an operator override is configured.
func (c *Controller) FirmwareVersion() (string, error) {
	raw, err := c.ReadSeq(FirmwareVersionAddress, FirmwareVersionLength)
	if err != nil {
		return "", fmt.Errorf("reading firmware version: %w", err)
	}
	return trimPadding(raw), nil
}

// FirmwareReleaseDate reads the firmware build date and time and
// reformats them as "YYYY/MM/DD HH:MM:SS".
//
// The EC stores the date as MMDDYYYY and the time as HH:MM:SS in two
// separate reserved ranges. Pure formatting; malformed fields are a
// read fault, not silently passed through.
func (c *Controller) FirmwareReleaseDate() (string, error) {
	rawDate, err := c.ReadSeq(FirmwareDateAddress, FirmwareDateLength)
	if err != nil {
		return "", fmt.Errorf("reading firmware date: %w", err)
	}
	date := trimPadding(rawDate)
	if len(date) != FirmwareDateLength {
		return "", fmt.Errorf("malformed firmware date %q", date)
	}

	month, err1 := strconv.Atoi(date[0:2])
	day, err2 := strconv.Atoi(date[2:4])
	year, err3 := strconv.Atoi(date[4:8])
	if err1 != nil || err2 != nil || err3 != nil {
		return "", fmt.Errorf("malformed firmware date %q", date)
	}

	rawTime, err := c.ReadSeq(FirmwareTimeAddress, FirmwareTimeLength)
	if err != nil {
		return "", fmt.Errorf("reading firmware time: %w", err)
	}
	clock := trimPadding(rawTime)

	var hour, minute, second int
	if _, err := fmt.Sscanf(clock, "%d:%d:%d", &hour, &minute, &second); err != nil {
		return "", fmt.Errorf("malformed firmware time %q", clock)
	}

	return fmt.Sprintf("%04d/%02d/%02d %02d:%02d:%02d",
		year, month, day, hour, minute, second), nil
}

// trimPadding strips the zero padding from a fixed-length EC string field.
func trimPadding(raw []byte) string {
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	return string(raw)
}
