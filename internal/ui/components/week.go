package components

import (
	"fmt"
	"strings"

	"github.com/abhisek/bodypath/internal/progress"
	"github.com/abhisek/bodypath/internal/ui/theme"
)

// Week renders the Monday-Friday activity strip with the current streak.
type Week struct {
	Days      []progress.DayActivity
	Streak    int
	Milestone int
	Today     int // lessons completed today
}

// View renders the strip.
func (w Week) View() string {
	labels := make([]string, 0, len(w.Days))
	marks := make([]string, 0, len(w.Days))
	for _, d := range w.Days {
		labels = append(labels, theme.Hint.Render(d.Weekday.String()[:3]))
		if d.Active {
			marks = append(marks, theme.Done.Render(" ● "))
		} else {
			marks = append(marks, theme.Pending.Render(" ○ "))
		}
	}

	var b strings.Builder
	b.WriteString(strings.Join(labels, " "))
	b.WriteString("\n")
	b.WriteString(strings.Join(marks, " "))
	b.WriteString("\n\n")

	b.WriteString(theme.Streak.Render(fmt.Sprintf("★ %d day streak", w.Streak)))
	if w.Milestone > w.Streak {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("  (%d to go for %d)", w.Milestone-w.Streak, w.Milestone)))
	}
	b.WriteString("\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("Lessons today: %d", w.Today)))
	return b.String()
}
