package profile

// Bit describes a single on/off switch stored in one bit of a register.
// Invert marks bits whose electrical sense is the opposite of their
// semantic meaning.
type Bit struct {
	Address Address
	Bit     uint8
	Invert  bool
}

// Mask describes a group of bits toggled together. The feature is
// considered enabled only when every mask bit is set.
type Mask struct {
	Address Address
	Mask    uint8
}

// Mode is one entry of a ModeTable: a user-facing name bound to the
// literal register value that selects it.
type Mode struct {
	Name  string
	Value uint8
}

// ModeTable describes a multi-valued setting selected by writing one of
// a fixed set of register values. Names are unique within a table;
// order is the enumeration order shown to users.
type ModeTable struct {
	Address Address
	Modes   []Mode
}

// Range describes a register whose raw byte maps linearly onto 0-100%.
// A raw value outside [BaseMin, BaseMax] is a read fault, not clamped.
// Invariant: BaseMax > BaseMin.
type Range struct {
	Address Address
	BaseMin uint8
	BaseMax uint8
}

// ChargeControl describes the battery charge window. The stored raw
// byte equals a percentage plus a fixed offset; the start and end
// thresholds share one register family with different offsets. Writes
// are checked against [RangeMin, RangeMax] before being committed.
type ChargeControl struct {
	Address     Address
	OffsetStart uint8
	OffsetEnd   uint8
	RangeMin    uint8
	RangeMax    uint8
}

// Webcam describes the webcam enable bit and the optional hardware
// block bit. Both live at Bit in their respective registers.
type Webcam struct {
	Address      Address
	BlockAddress Address
	Bit          uint8
}

// CPU groups the CPU thermal and fan telemetry registers.
type CPU struct {
	RealtimeTempAddress Address
	RealtimeFanSpeed    Range
	BasicFanSpeed       Range
}

// GPU groups the GPU telemetry registers. The realtime fan speed is a
// raw byte with no known percentage mapping on any supported model.
type GPU struct {
	RealtimeTempAddress     Address
	RealtimeFanSpeedAddress Address
}

// LEDs describes the mute and mic-mute indicator lights. Both use the
// same bit position within their registers.
type LEDs struct {
	MicMuteAddress Address
	MuteAddress    Address
	Bit            uint8
}

// KbdBacklightStateMask extracts the brightness level from the keyboard
// backlight state register.
const KbdBacklightStateMask = 0x3

// KbdBacklight describes the keyboard backlight brightness control.
// A level 0..MaxLevel is written as BaseValue|level; the current level
// is the state register masked with KbdBacklightStateMask.
type KbdBacklight struct {
	StateAddress Address
	BaseValue    uint8
	MaxLevel     uint8
}

// Profile is the complete declarative register layout of one laptop
// model, plus the firmware versions it applies to. Immutable once
// declared; the resolver hands out copies.
type Profile struct {
	// Name is the marketing name of the model line, for logs only.
	Name string

	// Firmware lists the EC firmware versions this profile matches,
	// exact string match. Typically several revisions of one model.
	Firmware []string

	ChargeControl ChargeControl
	Webcam        Webcam
	FnWinSwap     Bit
	CoolerBoost   Bit
	ShiftMode     ModeTable
	SuperBattery  Mask
	FanMode       ModeTable
	CPU           CPU
	GPU           GPU
	LEDs          LEDs
	KbdBacklight  KbdBacklight
}

// Matches reports whether fw is in the profile's firmware list.
func (p *Profile) Matches(fw string) bool {
	for _, v := range p.Firmware {
		if v == fw {
			return true
		}
	}
	return false
}

// clone returns a deep copy so catalog entries can never be mutated
// through a resolved profile.
func (p *Profile) clone() *Profile {
	cpy := *p

	cpy.Firmware = append([]string(nil), p.Firmware...)
	cpy.ShiftMode.Modes = append([]Mode(nil), p.ShiftMode.Modes...)
	cpy.FanMode.Modes = append([]Mode(nil), p.FanMode.Modes...)

	return &cpy
}
