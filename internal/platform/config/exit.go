package config

import (
	"fmt"
	"io"
	"os"
)

// exit and stderr are swapped in tests.
var (
	exit             = os.Exit
	stderr io.Writer = os.Stderr
)

// Exitf prints a formatted message to stderr and exits with status 1.
// Command entry points use it for bad input that is not worth a stack trace.
func Exitf(format string, args ...any) {
	fmt.Fprintf(stderr, format+"\n", args...)
	exit(1)
}
