package app

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/andyballingall/fmtree/internal/fsh"
)

// NoColourEnvVar disables colour when set to any non-empty value.
const NoColourEnvVar = "NO_COLOR"

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// useColour decides whether status lines written to w should be coloured.
func useColour(w io.Writer, noColourFlag bool, env fsh.EnvProvider) bool {
	if noColourFlag || env.Get(NoColourEnvVar) != "" {
		return false
	}
	return isTerminal(w)
}
