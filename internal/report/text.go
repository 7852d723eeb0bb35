package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/andyballingall/fmtree/internal/formatter"
)

const (
	PassGlyph    = "✓"
	ChangedGlyph = "X"
)

// TextReporter writes one status line per file.
type TextReporter struct {
	w       io.Writer
	pass    *color.Color
	changed *color.Color
}

// NewTextReporter creates a TextReporter. Colour is used only if useColour is set.
func NewTextReporter(w io.Writer, useColour bool) *TextReporter {
	pass := color.New(color.Bold, color.FgGreen)
	changed := color.New(color.Bold, color.FgRed)
	if useColour {
		pass.EnableColor()
		changed.EnableColor()
	} else {
		pass.DisableColor()
		changed.DisableColor()
	}
	return &TextReporter{w: w, pass: pass, changed: changed}
}

func (tr *TextReporter) Add(r formatter.Result) error {
	glyph := tr.pass.Sprint(PassGlyph)
	if r.Status == formatter.StatusChanged {
		glyph = tr.changed.Sprint(ChangedGlyph)
	}
	_, err := fmt.Fprintf(tr.w, "%s %s\n", glyph, r.Path)
	return err
}

// Finish writes nothing: the summary is logged, keeping the output to one line
// per file.
func (tr *TextReporter) Finish(_ *Summary) error {
	return nil
}
