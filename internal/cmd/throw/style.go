package throw

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/louisbranch/hexagram/internal/oracle/hexagram"
	"github.com/louisbranch/hexagram/internal/oracle/seed"
	"github.com/louisbranch/hexagram/internal/services/oracle/app"
)

// Styles used by -style output.
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true)

	styleYang = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	styleYin = lipgloss.NewStyle().
			Foreground(lipgloss.Color("75"))

	styleChanging = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	styleMuted = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// lineStyle picks the style for a line; changing lines stand out.
func lineStyle(line hexagram.Line) lipgloss.Style {
	switch {
	case line.Changing():
		return styleChanging
	case line.Yang():
		return styleYang
	default:
		return styleYin
	}
}

// renderStyled renders the reading with a title, the six lines bottom first
// and the relating hexagram when one exists.
func renderStyled(reading app.Reading) string {
	var b strings.Builder
	b.WriteString(styleTitle.Render(fmt.Sprintf("%d. %s", reading.Primary.Number, reading.Primary.Name)))
	b.WriteByte('\n')
	for _, line := range reading.Hexagram.Lines() {
		b.WriteString(lineStyle(line).Render(line.Glyph()))
		b.WriteByte('\n')
	}
	if reading.Relating != nil {
		b.WriteString(styleMuted.Render(fmt.Sprintf("changing to %d. %s", reading.Relating.Number, reading.Relating.Name)))
		b.WriteByte('\n')
	}
	b.WriteString(styleMuted.Render(fmt.Sprintf("%q on %s", reading.Prompt, seed.FormatDate(reading.AsOf))))
	b.WriteByte('\n')
	return b.String()
}
