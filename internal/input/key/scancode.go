package key

// Virtual key codes reported by the global listener (libuiohook VC_* values).
const (
	vcEscape    = 0x0001
	vcBackspace = 0x000E
	vcTab       = 0x000F
	vcEnter     = 0x001C
	vcCapsLock  = 0x003A
	vcSpace     = 0x0039

	vcF1  = 0x003B
	vcF11 = 0x0057
	vcF12 = 0x0058

	vcShiftL   = 0x002A
	vcShiftR   = 0x0036
	vcControlL = 0x001D
	vcControlR = 0x0E1D
	vcAltL     = 0x0038
	vcAltR     = 0x0E38
	vcMetaL    = 0x0E5B
	vcMetaR    = 0x0E5C

	vcInsert   = 0x0E52
	vcDelete   = 0x0E53
	vcHome     = 0x0E47
	vcEnd      = 0x0E4F
	vcPageUp   = 0x0E49
	vcPageDown = 0x0E51

	vcUp    = 0xE048
	vcLeft  = 0xE04B
	vcRight = 0xE04D
	vcDown  = 0xE050
)

// scanCodes maps listener virtual key codes to keys.
var scanCodes = map[uint16]Key{
	vcEscape:    KeyEscape,
	vcBackspace: KeyBackspace,
	vcTab:       KeyTab,
	vcEnter:     KeyEnter,
	vcCapsLock:  KeyCapsLock,
	vcSpace:     KeySpace,

	vcF11: KeyF11,
	vcF12: KeyF12,

	vcShiftL:   KeyLeftShift,
	vcShiftR:   KeyRightShift,
	vcControlL: KeyLeftControl,
	vcControlR: KeyRightControl,
	vcAltL:     KeyLeftAlt,
	vcAltR:     KeyRightAlt,
	vcMetaL:    KeyLeftMeta,
	vcMetaR:    KeyRightMeta,

	vcInsert:   KeyInsert,
	vcDelete:   KeyDelete,
	vcHome:     KeyHome,
	vcEnd:      KeyEnd,
	vcPageUp:   KeyPageUp,
	vcPageDown: KeyPageDown,

	vcUp:    KeyUp,
	vcLeft:  KeyLeft,
	vcRight: KeyRight,
	vcDown:  KeyDown,

	// Digit row: VC_1 (0x02) through VC_9 (0x0A), then VC_0 (0x0B)
	0x0002: Key1,
	0x0003: Key2,
	0x0004: Key3,
	0x0005: Key4,
	0x0006: Key5,
	0x0007: Key6,
	0x0008: Key7,
	0x0009: Key8,
	0x000A: Key9,
	0x000B: Key0,

	// Letters follow the PC keyboard layout, not the alphabet
	0x001E: KeyA,
	0x0030: KeyB,
	0x002E: KeyC,
	0x0020: KeyD,
	0x0012: KeyE,
	0x0021: KeyF,
	0x0022: KeyG,
	0x0023: KeyH,
	0x0017: KeyI,
	0x0024: KeyJ,
	0x0025: KeyK,
	0x0026: KeyL,
	0x0032: KeyM,
	0x0031: KeyN,
	0x0018: KeyO,
	0x0019: KeyP,
	0x0010: KeyQ,
	0x0013: KeyR,
	0x001F: KeyS,
	0x0014: KeyT,
	0x0016: KeyU,
	0x002F: KeyV,
	0x0011: KeyW,
	0x002D: KeyX,
	0x0015: KeyY,
	0x002C: KeyZ,
}

func init() {
	// F1-F10 are contiguous.
	for i := 0; i < 10; i++ {
		scanCodes[uint16(vcF1+i)] = KeyF1 + Key(i)
	}
}

// FromScanCode returns the Key for a listener virtual key code.
// Returns KeyNone for codes without a mapping.
func FromScanCode(code uint16) Key {
	return scanCodes[code]
}
