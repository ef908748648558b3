package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/aretw0/witgo/pkg/domain"
)

// Renderer turns markdown into terminal output. On a plain pipe it is the
// identity function.
type Renderer func(markdown string) (string, error)

// NewRenderer returns a glamour-backed renderer when stdout is a terminal,
// and a passthrough otherwise.
func NewRenderer() Renderer {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return func(markdown string) (string, error) { return markdown, nil }
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}
	return r.Render
}

// PrintBanner outputs the CLI greeting.
func PrintBanner(version string) {
	p := termenv.ColorProfile()
	title := termenv.String("witgo").Foreground(p.Color("#818cf8")).Bold()
	sub := termenv.String("natural language, wired to your code").Foreground(p.Color("#a78bfa"))
	fmt.Printf("\n  %s %s\n  %s\n\n", title, version, sub)
}

// FormatMessage renders a /message interpretation as markdown.
func FormatMessage(resp *domain.MessageResponse) string {
	var b strings.Builder

	if intent := resp.TopIntent(); intent != nil {
		fmt.Fprintf(&b, "**%s** (%.2f)\n\n", intent.Name, intent.Confidence)
	} else {
		b.WriteString("*no intent detected*\n\n")
	}

	if len(resp.Entities) > 0 {
		names := make([]string, 0, len(resp.Entities))
		for name := range resp.Entities {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if v := domain.FirstEntityValue(resp.Entities, name); v != "" {
				fmt.Fprintf(&b, "- `%s`: %s\n", name, v)
			}
		}
	}

	return b.String()
}
