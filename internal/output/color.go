package output

import (
	"fmt"
	"io"
	"os"
)

// ColorMode is the value of the --color flag.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorNever  ColorMode = "never"
	ColorAlways ColorMode = "always"
)

// ParseColorMode validates a --color value. The empty string means auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch mode := ColorMode(s); mode {
	case "":
		return ColorAuto, nil
	case ColorAuto, ColorNever, ColorAlways:
		return mode, nil
	default:
		return "", NewUserError(fmt.Sprintf("invalid --color value %q: want never, always, or auto", s))
	}
}

// Enabled reports whether output written to w should be styled.
func (m ColorMode) Enabled(w io.Writer) bool {
	switch m {
	case ColorNever:
		return false
	case ColorAlways:
		return true
	default:
		return IsTTY(w)
	}
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	stat, err := file.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice != 0
}
