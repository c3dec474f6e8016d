package input

// Key identifies a keyboard key independent of the window backend. Printable keys use their
// lowercase ASCII value, everything else has a named constant.
type Key int32

const (
	Key_Unknown   Key = 0
	Key_Backspace Key = 8
	Key_Tab       Key = 9
	Key_Enter     Key = 13
	Key_Escape    Key = 27
	Key_Space     Key = ' '

	Key_Left Key = iota + 1000
	Key_Right
	Key_Up
	Key_Down
	Key_LShift
	Key_RShift
	Key_LCtrl
	Key_RCtrl
	Key_LAlt
	Key_RAlt
	Key_F1
	Key_F2
	Key_F3
	Key_F4
)

// KeyFromRune maps printable ASCII to its key. Uppercase letters map to the lowercase key.
func KeyFromRune(r rune) Key {

	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}

	if r < ' ' || r > '~' {
		return Key_Unknown
	}

	return Key(r)
}

type MouseButton int

const (
	MouseButton_Left MouseButton = iota + 1
	MouseButton_Middle
	MouseButton_Right
)
