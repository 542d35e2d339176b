package color

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mitchellh/colorstring"
	"golang.org/x/term"
)

// Mode is the user's color preference.
type Mode int

const (
	// ModeAuto colors only terminals, and only when NO_COLOR
	// is unset.
	ModeAuto Mode = iota

	// ModeAlways colors unconditionally.
	ModeAlways

	// ModeNever disables color.
	ModeNever
)

var modeNames = [...]string{
	ModeAuto:   "auto",
	ModeAlways: "always",
	ModeNever:  "never",
}

// ParseMode parses always, auto or never, ignoring case.
func ParseMode(s string) (Mode, error) {
	for md, name := range modeNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Mode(md), nil
		}
	}

	return ModeAuto, fmt.Errorf(
		"parsing color mode: unrecognized value %q"+
			" (want always, auto or never)",
		s,
	)
}

// String implements fmt.Stringer and pflag.Value.
func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}

	return fmt.Sprintf("Mode(%d)", int(m))
}

// Set implements pflag.Value.
func (m *Mode) Set(s string) error {
	md, err := ParseMode(s)
	if err != nil {
		return err
	}

	*m = md

	return nil
}

// Type implements pflag.Value.
func (*Mode) Type() string {
	return "mode"
}

// Styler styles output lines. The zero value leaves lines
// untouched.
type Styler struct {
	enabled bool
	red     string
	reset   string
}

// NewStyler resolves mode against w. In ModeAuto color is
// enabled only if w is a terminal and NO_COLOR is unset.
func NewStyler(mode Mode, w io.Writer) Styler {
	var enabled bool

	switch mode {
	case ModeAlways:
		enabled = true
	case ModeNever:
		enabled = false
	default:
		enabled = isTerminal(w) && os.Getenv("NO_COLOR") == ""
	}

	if !enabled {
		return Styler{}
	}

	cz := colorstring.Colorize{
		Colors: colorstring.DefaultColors,
	}

	return Styler{
		enabled: true,
		red:     cz.Color("[red]"),
		reset:   cz.Color("[reset]"),
	}
}

// Failure styles a failure line. The text between the
// escape codes is line itself; brackets in it are never
// interpreted.
func (s Styler) Failure(line string) string {
	if !s.enabled {
		return line
	}

	return s.red + line + s.reset
}

func isTerminal(w io.Writer) bool {
	fi, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(fi.Fd())) //nolint:gosec // fd fits in int
}
