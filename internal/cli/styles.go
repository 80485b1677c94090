package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/vburojevic/webtrail/internal/domain"
)

// Styles holds all lipgloss styles for text output
var Styles = struct {
	Timestamp lipgloss.Style
	Title     lipgloss.Style
	URL       lipgloss.Style
	Count     lipgloss.Style
	Header    lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Bar       lipgloss.Style
	Warning   lipgloss.Style
}{
	Timestamp: lipgloss.NewStyle().Foreground(lipgloss.Color("244")), // Gray
	Title:     lipgloss.NewStyle().Bold(true),
	URL:       lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	Count:     lipgloss.NewStyle().Foreground(lipgloss.Color("142")), // Yellow-green
	Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
	Label:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	Value:     lipgloss.NewStyle().Bold(true),
	Bar:       lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true), // Orange
}

// browserColors give each browser a recognizable badge color
var browserColors = map[domain.Browser]lipgloss.Color{
	domain.BrowserChrome:    lipgloss.Color("39"),  // Cyan
	domain.BrowserFirefox:   lipgloss.Color("208"), // Orange
	domain.BrowserSafari:    lipgloss.Color("33"),  // Blue
	domain.BrowserBrave:     lipgloss.Color("202"), // Red-orange
	domain.BrowserOpera:     lipgloss.Color("196"), // Red
	domain.BrowserEdge:      lipgloss.Color("42"),  // Green
	domain.BrowserVivaldi:   lipgloss.Color("160"), // Dark red
	domain.BrowserTor:       lipgloss.Color("93"),  // Purple
	domain.BrowserChromium:  lipgloss.Color("75"),  // Light blue
	domain.BrowserLibreWolf: lipgloss.Color("142"), // Yellow-green
}

// BrowserStyle returns the badge style for a browser
func BrowserStyle(b domain.Browser) lipgloss.Style {
	if color, ok := browserColors[b]; ok {
		return lipgloss.NewStyle().Foreground(color).Bold(true)
	}
	return lipgloss.NewStyle().Bold(true)
}

// styled reports whether the writer is an interactive terminal, in which
// case lipgloss rendering is applied. Piped output stays plain.
func styled(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// render applies a style only for interactive terminals
func render(on bool, style lipgloss.Style, s string) string {
	if !on {
		return s
	}
	return style.Render(s)
}
