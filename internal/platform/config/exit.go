package config

import (
	"fmt"
	"os"
	"strings"
)

// Exitf reports a fatal error on stderr and stops the process with status 1.
// Small operator tools call it in place of carrying a logger.
func Exitf(format string, args ...any) {
	if !strings.HasSuffix(format, "\n") {
		format += "\n"
	}
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
