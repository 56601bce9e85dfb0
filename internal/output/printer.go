package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Printer writes command results either as styled text or as JSON.
type Printer struct {
	w      io.Writer
	errW   io.Writer
	json   bool
	styles Styles
}

// Styles holds the lipgloss styles of human output.
type Styles struct {
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Bold    lipgloss.Style
	Step    lipgloss.Style
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Key     lipgloss.Style
}

// newStyles returns the palette, or unstyled output when color is false.
func newStyles(color bool) Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return Styles{plain, plain, plain, plain, plain, plain, plain, plain}
	}
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return Styles{
		Error:   fg("9").Bold(true),
		Success: fg("10"),
		Warning: fg("11"),
		Bold:    lipgloss.NewStyle().Bold(true),
		Step:    fg("8"),
		Title:   fg("12").Bold(true),
		Muted:   lipgloss.NewStyle().Faint(true),
		Key:     fg("14"),
	}
}

// NewPrinter returns a printer writing to w. Errors and warnings go to w
// as well until WithStderr is called.
func NewPrinter(w io.Writer, jsonMode bool, color bool) *Printer {
	return &Printer{
		w:      w,
		errW:   w,
		json:   jsonMode,
		styles: newStyles(color),
	}
}

// WithStderr sends human errors, warnings, and JSON warnings to w.
// JSON errors stay on the main writer so scripts read a single document.
func (p *Printer) WithStderr(w io.Writer) *Printer {
	p.errW = w
	return p
}

func (p *Printer) IsJSON() bool {
	return p.json
}

// Error prints err with its exit code.
func (p *Printer) Error(err error) {
	exitErr := Classify(err)
	if p.json {
		mustWrite(p.w.Write(ErrorJSON(exitErr.Message, exitErr.Code)))
		mustWrite(fmt.Fprintln(p.w))
		return
	}
	mustWrite(fmt.Fprintf(p.errW, "%s: %s\n", p.styles.Error.Render("Error"), exitErr.Message))
}

// Warn prints a warning. In JSON mode it is a {"warning": "..."} line.
func (p *Printer) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.json {
		_ = encodeJSON(p.errW, map[string]string{"warning": msg})
		return
	}
	mustWrite(fmt.Fprintf(p.errW, "%s: %s\n", p.styles.Warning.Render("Warning"), msg))
}

// Step prints a progress line such as "Generating api/1.0/classfoo.md...".
// Silent in JSON mode, where the final document lists every path.
func (p *Printer) Step(format string, args ...any) {
	if p.json {
		return
	}
	mustWrite(fmt.Fprintln(p.w, p.styles.Step.Render(fmt.Sprintf(format, args...))))
}

// Done prints the closing line of a successful command.
func (p *Printer) Done(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.json {
		_ = encodeJSON(p.w, map[string]string{"message": msg})
		return
	}
	mustWrite(fmt.Fprintln(p.w, p.styles.Success.Render(msg)))
}

func (p *Printer) Println(args ...any) {
	mustWrite(fmt.Fprintln(p.w, args...))
}

// WriteJSON writes v as indented JSON.
func (p *Printer) WriteJSON(v any) error {
	return encodeJSON(p.w, v)
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ErrorJSON returns {"error": message, "code": code}.
func ErrorJSON(message string, code int) []byte {
	data, _ := json.Marshal(struct {
		Error string `json:"error"`
		Code  int    `json:"code"`
	}{message, code})
	return data
}

// mustWrite panics on a failed write to stdout, stderr, or a buffer.
func mustWrite(_ int, err error) {
	if err != nil {
		panic(fmt.Sprintf("write failed: %v", err))
	}
}
