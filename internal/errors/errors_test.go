package errors

import "testing"

func TestFatalNilIsNoop(t *testing.T) {
	// Fatal exits the process on any real error, so the only behavior
	// safe to pin down in-process is the nil pass-through.
	Fatal(nil)
}
