package core

// DebugWriter is a function type for writing debug messages.
type DebugWriter func(string)

// debugPrintln is the global debug print function. No-op by default; target
// code points it at UART, USB CDC, etc.
var debugPrintln DebugWriter = func(string) {}

// SetDebugWriter sets the platform-specific debug output function.
func SetDebugWriter(w DebugWriter) {
	debugPrintln = w
}

// DebugPrintln writes a debug message using the platform-specific writer.
func DebugPrintln(msg string) {
	debugPrintln(msg)
}

// assert traps on a violated precondition. Assertion failures are
// programming errors, not recoverable conditions; callers never see them as
// error values.
func assert(cond bool, msg string) {
	if !cond {
		panic(msg)
	}
}
