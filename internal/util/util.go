package util

import (
	"os"

	"golang.org/x/term"
)

// IsInteractive reports whether stdin is a terminal. Used to decide whether
// the "press Ctrl+C to stop" hint is worth printing.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
