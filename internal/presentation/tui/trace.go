package tui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/navfocus/pkg/domain"
	"github.com/aretw0/navfocus/pkg/scenario"
	"github.com/muesli/termenv"
)

var eventColors = map[domain.EventType]string{
	domain.EventWillFocus: "#a78bfa",
	domain.EventDidFocus:  "#34d399",
	domain.EventWillBlur:  "#fbbf24",
	domain.EventDidBlur:   "#f87171",
	domain.EventAction:    "#94a3b8",
}

// WriteText prints one block per step: the dispatched action, the emitted
// events indented by navigator depth, and the resulting focus path.
func WriteText(w io.Writer, res *scenario.Result, color bool) error {
	p := profile(color)
	bold := func(s string) termenv.Style { return p.String(s).Bold() }

	if _, err := fmt.Fprintln(w, bold("scenario "+res.Name)); err != nil {
		return err
	}
	for _, step := range res.Steps {
		fmt.Fprintf(w, "\n#%d %s\n", step.Index, bold(step.Action))
		for _, e := range step.Events {
			indent := strings.Repeat("  ", depth(e.Navigator))
			label := p.String(fmt.Sprintf("%-9s", e.Type)).Foreground(p.Color(eventColors[e.Type]))
			fmt.Fprintf(w, "  %s%s %s %s\n", indent, label, e.Target, p.String(e.Context).Faint())
		}
		fmt.Fprintf(w, "  focus: %s\n", focusPath(step.Focus))
		if step.Mismatch {
			warn := p.String("  expectation mismatch").Foreground(p.Color("#f87171"))
			fmt.Fprintln(w, warn)
			fmt.Fprintf(w, "    want: %s\n    got:  %s\n",
				strings.Join(step.Expected, ", "),
				strings.Join(scenario.Describe(step.Events), ", "))
		}
	}
	_, err := fmt.Fprintf(w, "\nfinal focus: %s\n", focusPath(res.Focus))
	return err
}

// Markdown renders the result as one table per step.
func Markdown(res *scenario.Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n", res.Name)
	for _, step := range res.Steps {
		fmt.Fprintf(&sb, "\n## %d. `%s`\n\n", step.Index, step.Action)
		sb.WriteString("| # | navigator | event | target | context |\n")
		sb.WriteString("|---|---|---|---|---|\n")
		for _, e := range step.Events {
			fmt.Fprintf(&sb, "| %d | %s | %s | %s | `%s` |\n", e.Sequence, e.Navigator, e.Type, e.Target, e.Context)
		}
		fmt.Fprintf(&sb, "\nFocus: **%s**\n", focusPath(step.Focus))
		if step.Mismatch {
			sb.WriteString("\n> Expectation mismatch\n")
		}
	}
	return sb.String()
}

// WriteJSON encodes the result as indented JSON.
func WriteJSON(w io.Writer, res *scenario.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func depth(navigator string) int {
	if navigator == "root" {
		return 0
	}
	return strings.Count(navigator, "/") + 1
}

func focusPath(keys []string) string {
	if len(keys) == 0 {
		return "(none)"
	}
	return strings.Join(keys, " > ")
}
