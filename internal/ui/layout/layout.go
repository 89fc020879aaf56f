package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/bodypath/internal/ui/theme"
)

const (
	DefaultWidth = 80

	CompactWidthThreshold = 60
)

// IsCompactWidth returns true if the terminal width is in compact range.
func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

// RenderHeader renders the status header bar: app name, a title, and the
// learner's lesson count and streak.
func RenderHeader(title string, lessonsDone, lessonsTotal, streak int, width int) string {
	left := theme.Title.Render("BodyPath")

	center := theme.Body.Render(title)

	right := theme.Done.Render(fmt.Sprintf("✓ %d/%d", lessonsDone, lessonsTotal)) +
		"   " +
		theme.Streak.Render(fmt.Sprintf("★ %d day", streak))

	leftLen := lipgloss.Width(left)
	centerLen := lipgloss.Width(center)
	rightLen := lipgloss.Width(right)

	innerWidth := width - 4 // border and padding
	if innerWidth < 0 {
		innerWidth = 0
	}

	leftGap := (innerWidth-centerLen)/2 - leftLen
	if leftGap < 1 {
		leftGap = 1
	}
	rightGap := innerWidth - leftLen - leftGap - centerLen - rightLen
	if rightGap < 1 {
		rightGap = 1
	}

	content := left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right
	return theme.Header.Width(width).Render(content)
}
