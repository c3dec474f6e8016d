package assert

import (
	"fmt"

	"github.com/voiengine/voi/logging"
)

// T panics with the formatted message if check is false.
// Used for invariants whose violation means a bug in the caller, not a runtime condition.
func T(check bool, msg string, args ...any) {

	if check {
		return
	}

	s := fmt.Sprintf("Assert failed: "+msg, args...)
	logging.ErrLog.Output(2, s)
	panic(s)
}
