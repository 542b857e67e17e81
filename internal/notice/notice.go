// Package notice renders what the user sees around a bootstrap run: a line per
// step, the completion notice, and the failure headline.
//
// The completion notice is markdown rendered with glamour. Everything else is
// a single line styled with lipgloss.
package notice

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

const (
	defaultStyle  = "dark"
	detectTimeout = 100 * time.Millisecond
	wrapWidth     = 80
)

// Summary is the information shown in the completion notice and written to
// the run record.
type Summary struct {
	Python     string
	Executable string
	ProjectDir string
	LogDir     string
}

// Renderer formats bootstrap output.
type Renderer struct {
	// Style is a glamour standard style name, or "auto".
	Style string

	// Out is where the rendered output goes. "auto" inspects it to pick a
	// style; nil means os.Stdout.
	Out io.Writer
}

// NewRenderer returns a renderer using the given glamour style for output
// written to out.
func NewRenderer(style string, out io.Writer) *Renderer {
	return &Renderer{Style: style, Out: out}
}

// Step renders the progress line printed before a step runs.
func (r *Renderer) Step(name string) string {
	return SubtitleStyle.Render("▸ "+name) + "\n"
}

// Success renders the completion notice.
func (r *Renderer) Success(s Summary) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.resolveStyle()),
		glamour.WithWordWrap(wrapWidth),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	out, err := renderer.Render(SuccessMarkdown(s))
	if err != nil {
		return "", fmt.Errorf("failed to render completion notice: %w", err)
	}
	return out, nil
}

// SuccessMarkdown is the unrendered completion notice.
func SuccessMarkdown(s Summary) string {
	var b strings.Builder
	b.WriteString("# Setup complete\n\n")
	if s.Python != "" {
		if s.Executable != "" {
			fmt.Fprintf(&b, "- **Python**: %s (`%s`)\n", s.Python, s.Executable)
		} else {
			fmt.Fprintf(&b, "- **Python**: %s\n", s.Python)
		}
	}
	if s.ProjectDir != "" {
		fmt.Fprintf(&b, "- **Project**: `%s`\n", s.ProjectDir)
	}
	if s.LogDir != "" {
		fmt.Fprintf(&b, "- **Logs**: `%s`\n", s.LogDir)
	}
	b.WriteString("\nActivate the environment with `source .venv/bin/activate`.\n")
	return b.String()
}

// Failure renders the one-line failure headline. Tool diagnostics have
// already been printed by the tool itself and are not repeated.
func (r *Renderer) Failure(step string, err error) string {
	head := ErrorStyle.Render("✗ Bootstrap failed")
	if step != "" {
		head += " " + SubtitleStyle.Render("("+step+")")
	}
	return head + "\n" + HintStyle.Render(err.Error()) + "\n"
}

// Passed renders the result of a standalone version check.
func (r *Renderer) Passed(s Summary) string {
	line := SuccessStyle.Render("✓ Python "+s.Python) + " " + SubtitleStyle.Render("meets the minimum version")
	if s.Executable != "" {
		line += "\n" + HintStyle.Render(s.Executable)
	}
	return line + "\n"
}

func (r *Renderer) resolveStyle() string {
	style := strings.TrimSpace(r.Style)
	if style != "" && style != "auto" {
		return style
	}

	w := r.Out
	if w == nil {
		w = os.Stdout
	}
	out := termenv.NewOutput(w)
	if out.Profile == termenv.Ascii {
		return "notty"
	}

	type result struct{ style string }
	ch := make(chan result, 1)

	go func() {
		if out.HasDarkBackground() {
			ch <- result{style: "dark"}
			return
		}
		ch <- result{style: "light"}
	}()

	select {
	case res := <-ch:
		return res.style
	case <-time.After(detectTimeout):
		return defaultStyle
	}
}
