package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// EnvDebug is the environment variable that switches debug output on.
const EnvDebug = "TL_DEBUG"

var (
	mu     sync.Mutex
	output io.Writer = os.Stderr
)

// DebugEnabled returns true if debug mode is enabled via TL_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv(EnvDebug) != ""
}

// SetOutput redirects debug output and returns the previous writer.
// Debug output goes to stderr by default so command output stays clean.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := output
	output = w
	return prev
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(output, format, args...)
	}
}

// Debugln prints a debug message followed by a newline only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(output, args...)
	}
}
