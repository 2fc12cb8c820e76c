// Package output renders command results for terminals, scripts and
// machine consumers.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Mode selects the output format.
type Mode string

const (
	// ModeAuto picks text on a terminal and markdown when piped.
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// Renderer writes formatted output. All commands write through a Renderer
// so format selection and styling live in one place.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	styles *Styles
}

// NewRenderer creates a renderer for the given writers and mode. An empty
// or unknown mode falls back to ModeAuto.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	switch mode {
	case ModeText, ModeMarkdown, ModeJSON:
	default:
		mode = ModeAuto
	}
	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		styles: newStyles(colorProfile(out, mode)),
	}
}

// EffectiveMode resolves ModeAuto against the actual output destination.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if isTerminal(r.out) {
		return ModeText
	}
	return ModeMarkdown
}

// Writer returns the primary output writer.
func (r *Renderer) Writer() io.Writer { return r.out }

// ErrWriter returns the error output writer.
func (r *Renderer) ErrWriter() io.Writer { return r.errOut }

// Styles returns the style set matching the output destination.
func (r *Renderer) Styles() *Styles { return r.styles }

// Println writes a line to the primary output.
func (r *Renderer) Println(s string) {
	_, _ = fmt.Fprintln(r.out, s)
}

// Printf writes formatted text to the primary output.
func (r *Renderer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// Success writes a success line, styled on terminals.
func (r *Renderer) Success(msg string) {
	if r.EffectiveMode() == ModeText {
		r.Println(r.styles.Success.Render("✔ " + msg))
		return
	}
	r.Println(msg)
}

// Error writes an error line to the error output.
func (r *Renderer) Error(msg string) {
	if r.EffectiveMode() == ModeText {
		_, _ = fmt.Fprintln(r.errOut, r.styles.Error.Render("✖ "+msg))
		return
	}
	_, _ = fmt.Fprintln(r.errOut, msg)
}

// JSON writes v as indented JSON to the primary output.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Header writes a section header at the given level.
func (r *Renderer) Header(level int, text string) {
	if r.EffectiveMode() == ModeMarkdown {
		prefix := "##"
		if level <= 1 {
			prefix = "#"
		}
		r.Println(prefix + " " + text)
		return
	}
	if level <= 1 {
		r.Println(r.styles.Header1.Render(text))
		return
	}
	r.Println(r.styles.Header2.Render(text))
}

// colorProfile picks a termenv profile: full color on terminals in text
// or auto mode, ASCII everywhere else so piped output stays clean.
func colorProfile(out io.Writer, mode Mode) termenv.Profile {
	if mode == ModeJSON || mode == ModeMarkdown {
		return termenv.Ascii
	}
	if !isTerminal(out) {
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
