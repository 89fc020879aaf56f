package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/bodypath/internal/progress"
	"github.com/abhisek/bodypath/internal/ui/theme"
)

const (
	markDone    = "✓"
	markPending = "·"
)

// Roadmap renders the unit-by-unit course view.
type Roadmap struct {
	Units []progress.UnitSummary
	Width int
	// Compact shows one line per unit.
	Compact bool
}

// View renders the roadmap.
func (r Roadmap) View() string {
	blocks := make([]string, 0, len(r.Units))
	for _, u := range r.Units {
		blocks = append(blocks, r.unit(u))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func (r Roadmap) unit(u progress.UnitSummary) string {
	var b strings.Builder

	title := fmt.Sprintf("Unit %d  %s", u.Unit.Number, u.Unit.Title)
	if u.Complete() {
		title = theme.Done.Render(markDone+" ") + theme.UnitTitle.Render(title)
	} else {
		title = theme.UnitTitle.Render(title)
	}
	b.WriteString(title)
	b.WriteString("\n")

	bar := ProgressBar{Done: u.Done, Total: len(u.Slots), Width: r.barWidth()}
	b.WriteString(bar.View())

	if u.SkipQuiz {
		b.WriteString("  ")
		b.WriteString(theme.Streak.Render("skip quiz passed"))
	}

	if r.Compact {
		return b.String()
	}

	for _, s := range u.Slots {
		b.WriteString("\n")
		b.WriteString(slotLine(s))
	}
	return theme.Card.Render(b.String())
}

func (r Roadmap) barWidth() int {
	w := r.Width - 8
	if w < 20 {
		return 20
	}
	if w > 60 {
		return 60
	}
	return w
}

func slotLine(s progress.SlotState) string {
	mark := theme.Pending.Render(markPending)
	if s.Done {
		mark = theme.Done.Render(markDone)
	}

	var name string
	if s.Slot.IsPlaceholder() {
		name = theme.Placeholder.Render(s.Slot.Name)
	} else {
		name = theme.Body.Render(fmt.Sprintf("%2d. %s", s.Slot.LessonID, s.Slot.Name))
	}

	line := "  " + mark + " " + name
	if s.CompletedOn != "" {
		line += "  " + theme.Hint.Render(s.CompletedOn)
	}
	return line
}
