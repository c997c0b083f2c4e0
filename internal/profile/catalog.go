package profile

// Shift mode names shared across the catalog.
const (
	ShiftEco     = "eco"
	ShiftComfort = "comfort"
	ShiftSport   = "sport"
	ShiftTurbo   = "turbo"
)

// Fan mode names shared across the catalog.
const (
	FanAuto     = "auto"
	FanSilent   = "silent"
	FanBasic    = "basic"
	FanAdvanced = "advanced"
)

// Catalog is the ordered list of every known hardware profile. The
// resolver walks it in declaration order and takes the first match, so
// no two entries may share a firmware string. Adding a model is a pure
// data change here; nothing else in the codebase needs to know.
var Catalog = []*Profile{
	{
		Name:     "Prestige 14 A10SC",
		Firmware: []string{"14C1EMS1.012", "14C1EMS1.101", "14C1EMS1.102"},
		ChargeControl: ChargeControl{
			Address:     Addr(0xef),
			OffsetStart: 0x8a,
			OffsetEnd:   0x80,
			RangeMin:    0x8a,
			RangeMax:    0xe4,
		},
		Webcam: Webcam{
			Address:      Addr(0x2e),
			BlockAddress: Addr(0x2f),
			Bit:          1,
		},
		FnWinSwap:   Bit{Address: Addr(0xbf), Bit: 4},
		CoolerBoost: Bit{Address: Addr(0x98), Bit: 7},
		ShiftMode: ModeTable{
			Address: Addr(0xf2),
			Modes: []Mode{
				{ShiftEco, 0xc2},
				{ShiftComfort, 0xc1},
				{ShiftSport, 0xc0},
			},
		},
		// 0xd5 reported by one owner, not yet confirmed.
		SuperBattery: Mask{Address: Unknown, Mask: 0x0f},
		FanMode: ModeTable{
			Address: Addr(0xf4),
			Modes: []Mode{
				{FanAuto, 0x0d},
				{FanSilent, 0x1d},
				{FanBasic, 0x4d},
				{FanAdvanced, 0x8d},
			},
		},
		CPU: CPU{
			RealtimeTempAddress: Addr(0x68),
			RealtimeFanSpeed:    Range{Address: Addr(0x71), BaseMin: 0x19, BaseMax: 0x37},
			BasicFanSpeed:       Range{Address: Addr(0x89), BaseMin: 0x00, BaseMax: 0x0f},
		},
		GPU: GPU{
			RealtimeTempAddress:     Addr(0x80),
			RealtimeFanSpeedAddress: Addr(0x89),
		},
		LEDs: LEDs{
			MicMuteAddress: Addr(0x2b),
			MuteAddress:    Addr(0x2c),
			Bit:            2,
		},
		KbdBacklight: KbdBacklight{
			StateAddress: Addr(0xf3),
			BaseValue:    0x80,
			MaxLevel:     3,
		},
	},
	{
		Name:     "GF75 Thin 9SC",
		Firmware: []string{"17F2EMS1.103", "17F2EMS1.104", "17F2EMS1.106", "17F2EMS1.107"},
		ChargeControl: ChargeControl{
			Address:     Addr(0xef),
			OffsetStart: 0x8a,
			OffsetEnd:   0x80,
			RangeMin:    0x8a,
			RangeMax:    0xe4,
		},
		Webcam: Webcam{
			Address:      Addr(0x2e),
			BlockAddress: Addr(0x2f),
			Bit:          1,
		},
		FnWinSwap:   Bit{Address: Addr(0xbf), Bit: 4},
		CoolerBoost: Bit{Address: Addr(0x98), Bit: 7},
		ShiftMode: ModeTable{
			Address: Addr(0xf2),
			Modes: []Mode{
				{ShiftEco, 0xc2},
				{ShiftComfort, 0xc1},
				{ShiftSport, 0xc0},
				{ShiftTurbo, 0xc4},
			},
		},
		SuperBattery: Mask{Address: Unknown, Mask: 0x0f},
		FanMode: ModeTable{
			Address: Addr(0xf4),
			Modes: []Mode{
				{FanAuto, 0x0d},
				{FanBasic, 0x4d},
				{FanAdvanced, 0x8d},
			},
		},
		CPU: CPU{
			RealtimeTempAddress: Addr(0x68),
			RealtimeFanSpeed:    Range{Address: Addr(0x71), BaseMin: 0x19, BaseMax: 0x37},
			BasicFanSpeed:       Range{Address: Addr(0x89), BaseMin: 0x00, BaseMax: 0x0f},
		},
		GPU: GPU{
			RealtimeTempAddress:     Addr(0x80),
			RealtimeFanSpeedAddress: Addr(0x89),
		},
		LEDs: LEDs{
			MicMuteAddress: Addr(0x2b),
			MuteAddress:    Addr(0x2c),
			Bit:            2,
		},
		KbdBacklight: KbdBacklight{
			StateAddress: Addr(0xf3),
			BaseValue:    0x80,
			MaxLevel:     3,
		},
	},
	{
		Name:     "Modern 15 A11M",
		Firmware: []string{"1552EMS1.115", "1552EMS1.118", "1552EMS1.119", "1552EMS1.120"},
		ChargeControl: ChargeControl{
			Address:     Addr(0xd7),
			OffsetStart: 0x8a,
			OffsetEnd:   0x80,
			RangeMin:    0x8a,
			RangeMax:    0xe4,
		},
		Webcam: Webcam{
			Address:      Addr(0x2e),
			BlockAddress: Addr(0x2f),
			Bit:          1,
		},
		FnWinSwap:   Bit{Address: Addr(0xe8), Bit: 4},
		CoolerBoost: Bit{Address: Addr(0x98), Bit: 7},
		ShiftMode: ModeTable{
			Address: Addr(0xd2),
			Modes: []Mode{
				{ShiftEco, 0xc2},
				{ShiftComfort, 0xc1},
				{ShiftSport, 0xc0},
			},
		},
		SuperBattery: Mask{Address: Addr(0xeb), Mask: 0x0f},
		FanMode: ModeTable{
			Address: Addr(0xd4),
			Modes: []Mode{
				{FanAuto, 0x0d},
				{FanSilent, 0x1d},
				{FanBasic, 0x4d},
				{FanAdvanced, 0x8d},
			},
		},
		CPU: CPU{
			RealtimeTempAddress: Addr(0x68),
			RealtimeFanSpeed:    Range{Address: Addr(0x71), BaseMin: 0x19, BaseMax: 0x37},
			BasicFanSpeed:       Range{Address: Addr(0x89), BaseMin: 0x00, BaseMax: 0x0f},
		},
		GPU: GPU{
			RealtimeTempAddress:     Addr(0x80),
			RealtimeFanSpeedAddress: Addr(0x89),
		},
		LEDs: LEDs{
			MicMuteAddress: Addr(0x2c),
			MuteAddress:    Addr(0x2d),
			Bit:            1,
		},
		KbdBacklight: KbdBacklight{
			StateAddress: Addr(0xd3),
			BaseValue:    0x80,
			MaxLevel:     3,
		},
	},
	{
		Name:     "Summit E16 Flip A12UCT",
		Firmware: []string{"1592EMS1.111"},
		ChargeControl: ChargeControl{
			Address:     Addr(0xd7),
			OffsetStart: 0x8a,
			OffsetEnd:   0x80,
			RangeMin:    0x8a,
			RangeMax:    0xe4,
		},
		Webcam: Webcam{
			Address:      Addr(0x2e),
			BlockAddress: Addr(0x2f),
			Bit:          1,
		},
		FnWinSwap:   Bit{Address: Addr(0xe8), Bit: 4},
		CoolerBoost: Bit{Address: Addr(0x98), Bit: 7},
		ShiftMode: ModeTable{
			Address: Addr(0xd2),
			Modes: []Mode{
				{ShiftEco, 0xc2},
				{ShiftComfort, 0xc1},
				{ShiftSport, 0xc0},
			},
		},
		SuperBattery: Mask{Address: Addr(0xeb), Mask: 0x0f},
		FanMode: ModeTable{
			Address: Addr(0xd4),
			Modes: []Mode{
				{FanAuto, 0x0d},
				{FanSilent, 0x1d},
				{FanBasic, 0x4d},
				{FanAdvanced, 0x8d},
			},
		},
		CPU: CPU{
			RealtimeTempAddress: Addr(0x68),
			RealtimeFanSpeed:    Range{Address: Addr(0xc9), BaseMin: 0x19, BaseMax: 0x37},
			BasicFanSpeed:       Range{Address: Addr(0x89), BaseMin: 0x00, BaseMax: 0x0f},
		},
		GPU: GPU{
			RealtimeTempAddress:     Addr(0x80),
			RealtimeFanSpeedAddress: Addr(0x89),
		},
		LEDs: LEDs{
			MicMuteAddress: Addr(0x2b),
			MuteAddress:    Addr(0x2c),
			Bit:            1,
		},
		KbdBacklight: KbdBacklight{
			StateAddress: Addr(0xd3),
			BaseValue:    0x80,
			MaxLevel:     3,
		},
	},
	{
		Name:     "GS66 Stealth 11UE",
		Firmware: []string{"16V4EMS1.114"},
		ChargeControl: ChargeControl{
			Address:     Addr(0xd7),
			OffsetStart: 0x8a,
			OffsetEnd:   0x80,
			RangeMin:    0x8a,
			RangeMax:    0xe4,
		},
		Webcam: Webcam{
			Address:      Addr(0x2e),
			BlockAddress: Addr(0x2f),
			Bit:          1,
		},
		FnWinSwap:   Bit{Address: Unknown, Bit: 4},
		CoolerBoost: Bit{Address: Addr(0x98), Bit: 7},
		ShiftMode: ModeTable{
			Address: Addr(0xd2),
			Modes: []Mode{
				{ShiftEco, 0xc2},
				{ShiftComfort, 0xc1},
				{ShiftSport, 0xc0},
			},
		},
		SuperBattery: Mask{Address: Unknown, Mask: 0x0f},
		FanMode: ModeTable{
			Address: Addr(0xd4),
			Modes: []Mode{
				{FanAuto, 0x0d},
				{FanSilent, 0x1d},
				{FanAdvanced, 0x8d},
			},
		},
		CPU: CPU{
			RealtimeTempAddress: Addr(0x68),
			RealtimeFanSpeed:    Range{Address: Addr(0x71), BaseMin: 0x19, BaseMax: 0x37},
			BasicFanSpeed:       Range{Address: Unknown, BaseMin: 0x00, BaseMax: 0x0f},
		},
		GPU: GPU{
			RealtimeTempAddress:     Addr(0x80),
			RealtimeFanSpeedAddress: Unknown,
		},
		LEDs: LEDs{
			MicMuteAddress: Unknown,
			MuteAddress:    Unknown,
			Bit:            1,
		},
		// 0xd3 exists but drives nothing on this chassis.
		KbdBacklight: KbdBacklight{
			StateAddress: Unsupported,
			BaseValue:    0x80,
			MaxLevel:     3,
		},
	},
	{
		Name:     "Alpha 15 B5EE",
		Firmware: []string{"158LEMS1.103", "158LEMS1.105", "158LEMS1.106"},
		ChargeControl: ChargeControl{
			Address:     Addr(0xef),
			OffsetStart: 0x8a,
			OffsetEnd:   0x80,
			RangeMin:    0x8a,
			RangeMax:    0xe4,
		},
		Webcam: Webcam{
			Address:      Addr(0x2e),
			BlockAddress: Addr(0x2f),
			Bit:          1,
		},
		FnWinSwap:   Bit{Address: Addr(0xbf), Bit: 4, Invert: true},
		CoolerBoost: Bit{Address: Addr(0x98), Bit: 7},
		ShiftMode: ModeTable{
			Address: Addr(0xf2),
			Modes: []Mode{
				{ShiftEco, 0xc2},
				{ShiftComfort, 0xc1},
				{ShiftTurbo, 0xc4},
			},
		},
		SuperBattery: Mask{Address: Unknown, Mask: 0x0f},
		FanMode: ModeTable{
			Address: Addr(0xf4),
			Modes: []Mode{
				{FanAuto, 0x0d},
				{FanSilent, 0x1d},
				{FanAdvanced, 0x8d},
			},
		},
		CPU: CPU{
			RealtimeTempAddress: Addr(0x68),
			RealtimeFanSpeed:    Range{Address: Addr(0x71), BaseMin: 0x19, BaseMax: 0x37},
			BasicFanSpeed:       Range{Address: Unsupported, BaseMin: 0x00, BaseMax: 0x0f},
		},
		GPU: GPU{
			RealtimeTempAddress:     Unknown,
			RealtimeFanSpeedAddress: Unknown,
		},
		LEDs: LEDs{
			MicMuteAddress: Addr(0x2b),
			MuteAddress:    Addr(0x2c),
			Bit:            2,
		},
		// Per-key RGB model, the plain brightness register is dead.
		KbdBacklight: KbdBacklight{
			StateAddress: Unsupported,
			BaseValue:    0x80,
			MaxLevel:     3,
		},
	},
	{
		Name:     "GP66 Leopard 10UG",
		Firmware: []string{"1542EMS1.102", "1542EMS1.104"},
		ChargeControl: ChargeControl{
			Address:     Addr(0xef),
			OffsetStart: 0x8a,
			OffsetEnd:   0x80,
			RangeMin:    0x8a,
			RangeMax:    0xe4,
		},
		Webcam: Webcam{
			Address:      Addr(0x2e),
			BlockAddress: Unsupported,
			Bit:          1,
		},
		FnWinSwap:   Bit{Address: Addr(0xbf), Bit: 4, Invert: true},
		CoolerBoost: Bit{Address: Addr(0x98), Bit: 7},
		ShiftMode: ModeTable{
			Address: Addr(0xf2),
			Modes: []Mode{
				{ShiftEco, 0xc2},
				{ShiftComfort, 0xc1},
				{ShiftSport, 0xc0},
				{ShiftTurbo, 0xc4},
			},
		},
		SuperBattery: Mask{Address: Addr(0xd5), Mask: 0x0f},
		FanMode: ModeTable{
			Address: Addr(0xf4),
			Modes: []Mode{
				{FanAuto, 0x0d},
				{FanSilent, 0x1d},
				{FanAdvanced, 0x8d},
			},
		},
		CPU: CPU{
			RealtimeTempAddress: Addr(0x68),
			RealtimeFanSpeed:    Range{Address: Addr(0xc9), BaseMin: 0x19, BaseMax: 0x37},
			BasicFanSpeed:       Range{Address: Unsupported, BaseMin: 0x00, BaseMax: 0x0f},
		},
		GPU: GPU{
			RealtimeTempAddress:     Addr(0x80),
			RealtimeFanSpeedAddress: Unknown,
		},
		LEDs: LEDs{
			MicMuteAddress: Unsupported,
			MuteAddress:    Unsupported,
			Bit:            2,
		},
		KbdBacklight: KbdBacklight{
			StateAddress: Unsupported,
			BaseValue:    0x80,
			MaxLevel:     3,
		},
	},
	{
		Name:     "Prestige 15 A11SCX",
		Firmware: []string{"16S6EMS1.111"},
		ChargeControl: ChargeControl{
			Address:     Addr(0xd7),
			OffsetStart: 0x8a,
			OffsetEnd:   0x80,
			RangeMin:    0x8a,
			RangeMax:    0xe4,
		},
		Webcam: Webcam{
			Address:      Addr(0x2e),
			BlockAddress: Unknown,
			Bit:          1,
		},
		FnWinSwap:   Bit{Address: Addr(0xe8), Bit: 4},
		CoolerBoost: Bit{Address: Addr(0x98), Bit: 7},
		ShiftMode: ModeTable{
			Address: Addr(0xd2),
			Modes: []Mode{
				{ShiftEco, 0xc2},
				{ShiftComfort, 0xc1},
				{ShiftSport, 0xc0},
			},
		},
		SuperBattery: Mask{Address: Addr(0xeb), Mask: 0x0f},
		FanMode: ModeTable{
			Address: Addr(0xd4),
			Modes: []Mode{
				{FanAuto, 0x0d},
				{FanSilent, 0x1d},
				{FanAdvanced, 0x4d},
			},
		},
		CPU: CPU{
			RealtimeTempAddress: Addr(0x68),
			RealtimeFanSpeed:    Range{Address: Unsupported},
			BasicFanSpeed:       Range{Address: Unsupported},
		},
		GPU: GPU{
			RealtimeTempAddress:     Unsupported,
			RealtimeFanSpeedAddress: Unsupported,
		},
		LEDs: LEDs{
			MicMuteAddress: Addr(0x2c),
			MuteAddress:    Addr(0x2d),
			Bit:            1,
		},
		KbdBacklight: KbdBacklight{
			StateAddress: Addr(0xd3),
			BaseValue:    0x80,
			MaxLevel:     3,
		},
	},
	{
		Name:     "GF63 Thin 11UC",
		Firmware: []string{"16R6EMS1.104", "16R6EMS1.106", "16R6EMS1.107"},
		ChargeControl: ChargeControl{
			Address:     Addr(0xd7),
			OffsetStart: 0x8a,
			OffsetEnd:   0x80,
			RangeMin:    0x8a,
			RangeMax:    0xe4,
		},
		Webcam: Webcam{
			Address:      Addr(0x2e),
			BlockAddress: Addr(0x2f),
			Bit:          1,
		},
		FnWinSwap:   Bit{Address: Addr(0xe8), Bit: 4},
		CoolerBoost: Bit{Address: Addr(0x98), Bit: 7},
		ShiftMode: ModeTable{
			Address: Addr(0xd2),
			Modes: []Mode{
				{ShiftEco, 0xc2},
				{ShiftComfort, 0xc1},
				{ShiftSport, 0xc0},
				{ShiftTurbo, 0xc4},
			},
		},
		// 0xeb reported, not confirmed.
		SuperBattery: Mask{Address: Unsupported, Mask: 0x0f},
		FanMode: ModeTable{
			Address: Addr(0xd4),
			Modes: []Mode{
				{FanAuto, 0x0d},
				{FanSilent, 0x1d},
				{FanAdvanced, 0x8d},
			},
		},
		CPU: CPU{
			RealtimeTempAddress: Addr(0x68),
			RealtimeFanSpeed:    Range{Address: Addr(0x71), BaseMin: 0x19, BaseMax: 0x37},
			BasicFanSpeed:       Range{Address: Unsupported, BaseMin: 0x00, BaseMax: 0x0f},
		},
		GPU: GPU{
			RealtimeTempAddress:     Unsupported,
			RealtimeFanSpeedAddress: Addr(0x89),
		},
		LEDs: LEDs{
			MicMuteAddress: Unsupported,
			MuteAddress:    Addr(0x2d),
			Bit:            1,
		},
		KbdBacklight: KbdBacklight{
			StateAddress: Addr(0xd3),
			BaseValue:    0x80,
			MaxLevel:     3,
		},
	},
}
