package hook

import "github.com/tbeaumont/gestured/internal/event"

// X11 core button numbering, including the side buttons.
const (
	btnLeft    = 1
	btnMiddle  = 2
	btnRight   = 3
	btnBack    = 8
	btnForward = 9
)

func buttonFromCode(code uint16) event.MouseButton {
	switch code {
	case btnLeft:
		return event.ButtonLeft
	case btnMiddle:
		return event.ButtonMiddle
	case btnRight:
		return event.ButtonRight
	case btnBack:
		return event.ButtonBack
	case btnForward:
		return event.ButtonForward
	}
	return event.ButtonUnknown
}

// Keysyms of the modifier keys the tracker follows. The hook reports the
// platform rawcode, which is the X keysym on Linux.
const (
	keysymShiftL   = 0xFFE1
	keysymShiftR   = 0xFFE2
	keysymControlL = 0xFFE3
	keysymControlR = 0xFFE4
	keysymAltL     = 0xFFE9
	keysymAltR     = 0xFFEA
	keysymSuperL   = 0xFFEB
	keysymISOLvl3  = 0xFE03
)

func keyFromRawcode(rawcode uint16) event.Key {
	switch rawcode {
	case keysymShiftL:
		return event.KeyShiftLeft
	case keysymShiftR:
		return event.KeyShiftRight
	case keysymControlL:
		return event.KeyControlLeft
	case keysymControlR:
		return event.KeyControlRight
	case keysymSuperL:
		return event.KeyMetaLeft
	case keysymAltL:
		return event.KeyAlt
	case keysymAltR, keysymISOLvl3:
		return event.KeyAltGr
	}
	return event.KeyOther
}
