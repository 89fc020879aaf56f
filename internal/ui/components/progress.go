package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/bodypath/internal/ui/theme"
)

// ProgressBar displays a horizontal completion bar with an optional
// "done/total" count.
type ProgressBar struct {
	Done  int
	Total int
	Width int
}

// Percent returns Done/Total clamped to [0, 1].
func (p ProgressBar) Percent() float64 {
	if p.Total <= 0 {
		return 0
	}
	f := float64(p.Done) / float64(p.Total)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

// View renders the bar followed by the count and percentage.
func (p ProgressBar) View() string {
	suffix := fmt.Sprintf("  %d/%d %3d%%", p.Done, p.Total, int(p.Percent()*100))

	barWidth := p.Width - lipgloss.Width(suffix)
	if barWidth < 4 {
		barWidth = 4
	}
	filled := int(float64(barWidth) * p.Percent())
	empty := barWidth - filled

	return theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", empty)) +
		theme.Hint.Render(suffix)
}
