/*
 * javadec - a Java class-file reader and bytecode disassembler
 * Package trace is a minimal leveled logger for the CLI boundary.
 */

package trace

import (
	"fmt"
	"os"
	"time"
)

// Verbose gates Trace output; Warning and Error always print. The CLI
// sets this from the --verbose flag / config.Config.Logging.Verbose.
var Verbose = false

func stamp() string {
	return time.Now().Format("15:04:05.000")
}

// Trace prints an informational line when Verbose is enabled. The CORE
// packages (classloader, disassembler, decompiler) never call this
// directly; only the CLI does.
func Trace(msg string) {
	if !Verbose {
		return
	}
	fmt.Fprintf(os.Stderr, "[%s] TRACE: %s\n", stamp(), msg)
}

// Warning prints a non-fatal diagnostic line, always shown.
func Warning(msg string) {
	fmt.Fprintf(os.Stderr, "[%s] WARNING: %s\n", stamp(), msg)
}

// Error prints a fatal-path diagnostic line, always shown.
func Error(msg string) {
	fmt.Fprintf(os.Stderr, "[%s] ERROR: %s\n", stamp(), msg)
}
