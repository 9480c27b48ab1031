package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/hex-tactics/internal/event"
)

var colorStyles = map[Color]lipgloss.Style{
	ColorDefault:     lipgloss.NewStyle(),
	ColorRed:         lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	ColorGreen:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	ColorYellow:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	ColorBlue:        lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	ColorMagenta:     lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	ColorCyan:        lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	ColorWhite:       lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	ColorBrightRed:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	ColorBrightGreen: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	ColorBrightCyan:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	ColorOrange:      lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	ColorGray:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

var kindColors = map[event.Kind]Color{
	event.TurnStart: ColorGray,
	event.TurnEnd:   ColorGray,
	event.Action:    ColorWhite,
	event.Effect:    ColorCyan,
	event.Death:     ColorBrightRed,
}

var (
	// TitleStyle is used for section headings.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	// HeaderStyle is used for table headers.
	HeaderStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

// Styled converts a canvas to a colored string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func Styled(c *Canvas) string {
	var sb strings.Builder
	sb.Grow(c.Width()*c.Height()*2 + c.Height())

	for y := range c.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < c.Width() {
			startColor := c.Get(x, y).Color

			var run strings.Builder
			for x < c.Width() {
				cell := c.Get(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Event formats an event for the terminal, truncated to width when width > 1.
func Event(e event.Event, width int) string {
	text := e.String()
	if e.Unit.ID != "" && e.Kind != event.TurnEnd {
		text += " " + hpSuffix(e)
	}
	if width > 1 && len([]rune(text)) > width {
		runes := []rune(text)
		text = string(runes[:width-1]) + "…"
	}
	return colorStyles[kindColors[e.Kind]].Render(text)
}

func hpSuffix(e event.Event) string {
	return fmt.Sprintf("(hp %d/%d, en %d)", e.Unit.HP, e.Unit.Current.MaxHP, e.Unit.Energy)
}
