package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/dispatchr/pkg/errors"
	"github.com/arthur-debert/dispatchr/pkg/handler"
)

// Binding is one store handler as rendered
type Binding struct {
	Store   string `json:"store" yaml:"store" toml:"store"`
	Handler string `json:"handler" yaml:"handler" toml:"handler"`
	// Default marks a binding that runs through the store's default handler
	Default bool   `json:"default,omitempty" yaml:"default,omitempty" toml:"default,omitempty"`
}

// Route is an action and the bindings it runs, in order
type Route struct {
	Action   string    `json:"action" yaml:"action" toml:"action"`
	Bindings []Binding `json:"bindings" yaml:"bindings" toml:"bindings"`
}

// NewRoute converts table bindings. Bindings whose store is in defaults are
// marked as default fallbacks.
func NewRoute(action string, bindings []handler.Binding, defaults map[string]bool) Route {
	out := Route{Action: action, Bindings: make([]Binding, 0, len(bindings))}
	for _, b := range bindings {
		out.Bindings = append(out.Bindings, Binding{
			Store:   b.Name,
			Handler: b.Handler.String(),
			Default: defaults[b.Name],
		})
	}
	return out
}

// Call is one handler invocation of a dispatch
type Call struct {
	Store   string `json:"store" yaml:"store" toml:"store"`
	Handler string `json:"handler" yaml:"handler" toml:"handler"`
	Payload any    `json:"payload,omitempty" yaml:"payload,omitempty" toml:"payload,omitempty"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`
}

// Report summarises a finished dispatch
type Report struct {
	Action   string `json:"action" yaml:"action" toml:"action"`
	Duration string `json:"duration" yaml:"duration" toml:"duration"`
	Calls    []Call `json:"calls" yaml:"calls" toml:"calls"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`
}

// Renderer writes documents to an output in one concrete format
type Renderer struct {
	w      io.Writer
	format Format
	st     styles
}

// New creates a renderer. FormatAuto is resolved against w when it is a
// file, and falls back to plain text otherwise.
func New(format Format, w io.Writer) (*Renderer, error) {
	if format == FormatAuto {
		format = FormatText
		if f, ok := w.(*os.File); ok {
			format = DetectFormat(f)
		}
	}
	if format.String() == "unknown" {
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %d", int(format))
	}

	r := &Renderer{w: w, format: format}
	if format == FormatTerminal {
		r.st = newStyles(lipgloss.NewRenderer(w))
	}
	return r, nil
}

// Format returns the resolved format
func (r *Renderer) Format() Format {
	return r.format
}

// Routes renders routes to w in format
func Routes(w io.Writer, format Format, routes []Route) error {
	r, err := New(format, w)
	if err != nil {
		return err
	}
	return r.Routes(routes)
}

// Routes renders a list of routes
func (r *Renderer) Routes(routes []Route) error {
	if r.format.Structured() {
		return r.encode(struct {
			Routes []Route `json:"routes" yaml:"routes" toml:"routes"`
		}{routes})
	}

	if len(routes) == 0 {
		return r.printf("%s\n", r.paint(r.st.muted, "no routes"))
	}

	var b strings.Builder
	for i, route := range routes {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(r.paint(r.st.action, route.Action))
		b.WriteString("\n")
		if len(route.Bindings) == 0 {
			fmt.Fprintf(&b, "  %s\n", r.paint(r.st.muted, "(no handlers)"))
			continue
		}
		for _, bind := range route.Bindings {
			fmt.Fprintf(&b, "  %s -> %s", r.paint(r.st.store, bind.Store), bind.Handler)
			if bind.Default {
				fmt.Fprintf(&b, " %s", r.paint(r.st.muted, "(default)"))
			}
			b.WriteString("\n")
		}
	}
	return r.printf("%s", b.String())
}

// List renders a titled list of names
func (r *Renderer) List(title string, names []string) error {
	if r.format.Structured() {
		if names == nil {
			names = []string{}
		}
		return r.encode(map[string][]string{title: names})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d)\n", r.paint(r.st.heading, title), len(names))
	for _, n := range names {
		fmt.Fprintf(&b, "  %s\n", n)
	}
	return r.printf("%s", b.String())
}

// Report renders the outcome of a dispatch
func (r *Renderer) Report(rep Report) error {
	if r.format.Structured() {
		return r.encode(rep)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", r.paint(r.st.action, rep.Action), r.paint(r.st.muted, rep.Duration))
	for i, c := range rep.Calls {
		fmt.Fprintf(&b, "  %d. %s -> %s", i+1, r.paint(r.st.store, c.Store), c.Handler)
		if c.Payload != nil {
			fmt.Fprintf(&b, " %v", c.Payload)
		}
		if c.Error != "" {
			fmt.Fprintf(&b, " %s", r.errorText(c.Error))
		}
		b.WriteString("\n")
	}
	if len(rep.Calls) == 0 {
		fmt.Fprintf(&b, "  %s\n", r.paint(r.st.muted, "(no handlers ran)"))
	}
	if rep.Error != "" {
		fmt.Fprintf(&b, "%s\n", r.prefixed(pterm.Error, "error:", rep.Error))
	}
	return r.printf("%s", b.String())
}

// Message renders a single line of text
func (r *Renderer) Message(msg string) error {
	if r.format.Structured() {
		return r.encode(map[string]string{"message": msg})
	}
	if r.format == FormatTerminal {
		return r.printf("%s\n", r.prefixed(pterm.Info, "", msg))
	}
	return r.printf("%s\n", msg)
}

// prefixed puts msg behind the printer's prefix block in terminal output and
// behind label otherwise
func (r *Renderer) prefixed(p pterm.PrefixPrinter, label, msg string) string {
	if r.format != FormatTerminal {
		if label == "" {
			return msg
		}
		return label + " " + msg
	}
	return p.Prefix.Style.Sprint(" "+p.Prefix.Text+" ") + " " + p.MessageStyle.Sprint(msg)
}

func (r *Renderer) errorText(msg string) string {
	if r.format != FormatTerminal {
		return msg
	}
	return pterm.Error.MessageStyle.Sprint(msg)
}

func (r *Renderer) paint(s lipgloss.Style, text string) string {
	if r.format != FormatTerminal {
		return text
	}
	return s.Render(text)
}

func (r *Renderer) printf(format string, args ...any) error {
	_, err := fmt.Fprintf(r.w, format, args...)
	return err
}

func (r *Renderer) encode(v any) error {
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatTOML:
		return toml.NewEncoder(r.w).Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return errors.Newf(errors.ErrInternal, "format %s is not structured", r.format)
	}
}
