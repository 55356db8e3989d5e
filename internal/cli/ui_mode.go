package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	uiAuto  = "auto"
	uiLive  = "live"
	uiPlain = "plain"
)

// outputSettings is the resolved presentation for one command run.
type outputSettings struct {
	live    bool
	color   bool
	warning string
}

// isTerminal reports whether a writer is a TTY. Tests replace it.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// resolveOutput decides between the interactive browser and plain output,
// and whether output is colored. Color needs a TTY and is turned off by
// --no-color or a non-empty NO_COLOR.
func resolveOutput(mode string, noColor bool, stdout io.Writer) (outputSettings, error) {
	tty := isTerminal(stdout)
	out := outputSettings{color: tty && !noColor && os.Getenv("NO_COLOR") == ""}
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", uiAuto:
		out.live = tty
	case uiLive:
		out.live = tty
		if !tty {
			out.warning = "Live UI requested but stdout is not a TTY; falling back to plain output."
		}
	case uiPlain:
	default:
		return outputSettings{}, fmt.Errorf("invalid ui mode %q (expected %s|%s|%s)", mode, uiAuto, uiLive, uiPlain)
	}
	return out, nil
}
