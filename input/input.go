// The input package keeps per-frame keyboard, mouse and quit state.
//
// Window backends feed it events with the Handle* functions between EventLoopStart calls, and game code reads it
// with KeyDown, KeyClicked and friends. 'Clicked' and 'Released' are only true in the frame the event arrived.
package input

type keyState struct {
	Key                 Key
	IsDown              bool
	IsPressedThisFrame  bool
	IsReleasedThisFrame bool
}

type mouseBtnState struct {
	Btn    MouseButton
	IsDown bool

	IsPressedThisFrame  bool
	IsReleasedThisFrame bool
	IsDoubleClicked     bool
}

type mouseMotionState struct {
	XDelta int32
	YDelta int32
	XPos   int32
	YPos   int32
}

var (
	mouseMotion = mouseMotionState{}
	mouseBtnMap = make(map[MouseButton]mouseBtnState)
	keyMap      = make(map[Key]keyState)

	isQuitRequested bool
)

// EventLoopStart resets the per-frame state. Call it before handling the events of a frame.
func EventLoopStart() {

	for k, v := range keyMap {
		v.IsPressedThisFrame = false
		v.IsReleasedThisFrame = false
		keyMap[k] = v
	}

	for k, v := range mouseBtnMap {
		v.IsPressedThisFrame = false
		v.IsReleasedThisFrame = false
		v.IsDoubleClicked = false
		mouseBtnMap[k] = v
	}

	mouseMotion.XDelta = 0
	mouseMotion.YDelta = 0

	isQuitRequested = false
}

func ClearKeyboardState() {
	clear(keyMap)
}

func ClearMouseState() {
	clear(mouseBtnMap)
	mouseMotion = mouseMotionState{}
}

func HandleQuit() {
	isQuitRequested = true
}

func IsQuitClicked() bool {
	return isQuitRequested
}

// HandleKey records a key press or release. Repeats keep the key down but don't count as a new press.
func HandleKey(key Key, pressed, repeat bool) {

	if key == Key_Unknown {
		return
	}

	ks, ok := keyMap[key]
	if !ok {
		ks = keyState{Key: key}
	}

	ks.IsDown = pressed
	ks.IsPressedThisFrame = pressed && !repeat
	ks.IsReleasedThisFrame = !pressed && !repeat

	keyMap[key] = ks
}

func HandleMouseBtn(btn MouseButton, pressed bool, clicks int) {

	mb, ok := mouseBtnMap[btn]
	if !ok {
		mb = mouseBtnState{Btn: btn}
	}

	mb.IsDown = pressed
	mb.IsDoubleClicked = clicks == 2 && pressed
	mb.IsPressedThisFrame = pressed
	mb.IsReleasedThisFrame = !pressed

	mouseBtnMap[btn] = mb
}

// HandleMouseMotion sets the mouse position. The frame delta accumulates over every motion event of the frame.
func HandleMouseMotion(x, y int32) {

	mouseMotion.XDelta += x - mouseMotion.XPos
	mouseMotion.YDelta += y - mouseMotion.YPos

	mouseMotion.XPos = x
	mouseMotion.YPos = y
}

func GetMousePos() (x, y int32) {
	return mouseMotion.XPos, mouseMotion.YPos
}

// GetMouseMotion returns how many pixels were moved last frame
func GetMouseMotion() (xDelta, yDelta int32) {
	return mouseMotion.XDelta, mouseMotion.YDelta
}

func KeyClicked(key Key) bool {
	return keyMap[key].IsPressedThisFrame
}

func KeyReleased(key Key) bool {
	return keyMap[key].IsReleasedThisFrame
}

func KeyDown(key Key) bool {
	return keyMap[key].IsDown
}

func KeyUp(key Key) bool {
	return !keyMap[key].IsDown
}

func MouseClicked(mb MouseButton) bool {
	return mouseBtnMap[mb].IsPressedThisFrame
}

func MouseDoubleClicked(mb MouseButton) bool {
	return mouseBtnMap[mb].IsDoubleClicked
}

func MouseReleased(mb MouseButton) bool {
	return mouseBtnMap[mb].IsReleasedThisFrame
}

func MouseDown(mb MouseButton) bool {
	return mouseBtnMap[mb].IsDown
}
