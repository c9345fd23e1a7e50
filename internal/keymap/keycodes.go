package keymap

import (
	"strconv"
	"strings"

	"github.com/bendahl/uinput"
)

// KeyCode is a Linux input event code as understood by the virtual keyboard
// device. The zero value is not a valid key.
type KeyCode int

// keyCodes maps config key names (lower case) to event codes. Names follow
// the KEY_* spelling from input-event-codes.h, lowered and with the prefix
// dropped; a handful of aliases cover common alternate spellings.
var keyCodes = map[string]KeyCode{
	"a": uinput.KeyA, "b": uinput.KeyB, "c": uinput.KeyC, "d": uinput.KeyD,
	"e": uinput.KeyE, "f": uinput.KeyF, "g": uinput.KeyG, "h": uinput.KeyH,
	"i": uinput.KeyI, "j": uinput.KeyJ, "k": uinput.KeyK, "l": uinput.KeyL,
	"m": uinput.KeyM, "n": uinput.KeyN, "o": uinput.KeyO, "p": uinput.KeyP,
	"q": uinput.KeyQ, "r": uinput.KeyR, "s": uinput.KeyS, "t": uinput.KeyT,
	"u": uinput.KeyU, "v": uinput.KeyV, "w": uinput.KeyW, "x": uinput.KeyX,
	"y": uinput.KeyY, "z": uinput.KeyZ,

	"0": uinput.Key0, "1": uinput.Key1, "2": uinput.Key2, "3": uinput.Key3,
	"4": uinput.Key4, "5": uinput.Key5, "6": uinput.Key6, "7": uinput.Key7,
	"8": uinput.Key8, "9": uinput.Key9,

	"f1": uinput.KeyF1, "f2": uinput.KeyF2, "f3": uinput.KeyF3,
	"f4": uinput.KeyF4, "f5": uinput.KeyF5, "f6": uinput.KeyF6,
	"f7": uinput.KeyF7, "f8": uinput.KeyF8, "f9": uinput.KeyF9,
	"f10": uinput.KeyF10, "f11": uinput.KeyF11, "f12": uinput.KeyF12,

	"esc":        uinput.KeyEsc,
	"tab":        uinput.KeyTab,
	"space":      uinput.KeySpace,
	"enter":      uinput.KeyEnter,
	"backspace":  uinput.KeyBackspace,
	"minus":      uinput.KeyMinus,
	"equal":      uinput.KeyEqual,
	"leftbrace":  uinput.KeyLeftbrace,
	"rightbrace": uinput.KeyRightbrace,
	"semicolon":  uinput.KeySemicolon,
	"apostrophe": uinput.KeyApostrophe,
	"grave":      uinput.KeyGrave,
	"backslash":  uinput.KeyBackslash,
	"comma":      uinput.KeyComma,
	"dot":        uinput.KeyDot,
	"slash":      uinput.KeySlash,
	"capslock":   uinput.KeyCapslock,

	"leftctrl":   uinput.KeyLeftctrl,
	"leftshift":  uinput.KeyLeftshift,
	"leftalt":    uinput.KeyLeftalt,
	"leftmeta":   uinput.KeyLeftmeta,
	"rightctrl":  uinput.KeyRightctrl,
	"rightshift": uinput.KeyRightshift,
	"rightalt":   uinput.KeyRightalt,
	"rightmeta":  uinput.KeyRightmeta,

	"up":       uinput.KeyUp,
	"down":     uinput.KeyDown,
	"left":     uinput.KeyLeft,
	"right":    uinput.KeyRight,
	"home":     uinput.KeyHome,
	"end":      uinput.KeyEnd,
	"pageup":   uinput.KeyPageup,
	"pagedown": uinput.KeyPagedown,
	"insert":   uinput.KeyInsert,
	"delete":   uinput.KeyDelete,

	"numlock":    uinput.KeyNumlock,
	"scrolllock": uinput.KeyScrolllock,
	"kp0":        uinput.KeyKp0,
	"kp1":        uinput.KeyKp1,
	"kp2":        uinput.KeyKp2,
	"kp3":        uinput.KeyKp3,
	"kp4":        uinput.KeyKp4,
	"kp5":        uinput.KeyKp5,
	"kp6":        uinput.KeyKp6,
	"kp7":        uinput.KeyKp7,
	"kp8":        uinput.KeyKp8,
	"kp9":        uinput.KeyKp9,
	"kpplus":     uinput.KeyKpplus,
	"kpminus":    uinput.KeyKpminus,
	"kpasterisk": uinput.KeyKpasterisk,
	"kpslash":    uinput.KeyKpslash,
	"kpdot":      uinput.KeyKpdot,
	"kpenter":    uinput.KeyKpenter,

	"mute":       uinput.KeyMute,
	"volumeup":   uinput.KeyVolumeup,
	"volumedown": uinput.KeyVolumedown,
}

var keyAliases = map[string]string{
	"escape":   "esc",
	"return":   "enter",
	"ctrl":     "leftctrl",
	"shift":    "leftshift",
	"alt":      "leftalt",
	"meta":     "leftmeta",
	"super":    "leftmeta",
	"del":      "delete",
	"pgup":     "pageup",
	"pgdn":     "pagedown",
	"period":   "dot",
	"spacebar": "space",
}

var keyNames map[KeyCode]string

func init() {
	keyNames = make(map[KeyCode]string, len(keyCodes))
	for name, code := range keyCodes {
		// Prefer the shortest canonical name when several map to one code.
		if prev, ok := keyNames[code]; !ok || len(name) < len(prev) {
			keyNames[code] = name
		}
	}
}

// KeyCodeByName resolves a config key name to its event code.
func KeyCodeByName(name string) (KeyCode, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := keyAliases[n]; ok {
		n = alias
	}
	code, ok := keyCodes[n]
	return code, ok
}

// KeyName returns the canonical config name for a key code, or its numeric
// value when the code is outside the table.
func KeyName(code KeyCode) string {
	if name, ok := keyNames[code]; ok {
		return name
	}
	return "key_" + strconv.Itoa(int(code))
}
