package components

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/bodypath/internal/progress"
	"github.com/abhisek/bodypath/internal/store"
)

func TestProgressBarPercent(t *testing.T) {
	tests := []struct {
		done, total int
		want        float64
	}{
		{0, 0, 0},
		{0, 4, 0},
		{2, 4, 0.5},
		{4, 4, 1},
		{5, 4, 1},
		{-1, 4, 0},
	}
	for _, tt := range tests {
		p := ProgressBar{Done: tt.done, Total: tt.total}
		if got := p.Percent(); got != tt.want {
			t.Errorf("Percent(%d/%d) = %v, want %v", tt.done, tt.total, got, tt.want)
		}
	}
}

func TestProgressBarView(t *testing.T) {
	v := ProgressBar{Done: 3, Total: 9, Width: 40}.View()
	if !strings.Contains(v, "3/9") || !strings.Contains(v, "33%") {
		t.Errorf("View() = %q, want count and percent", v)
	}
}

func summaries(t *testing.T) []progress.UnitSummary {
	t.Helper()
	ctx := context.Background()
	rec := progress.NewRecorder(store.NewMemory(nil), progress.WithClock(func() time.Time {
		return time.Date(2026, 10, 14, 9, 0, 0, 0, time.Local)
	}))
	if _, err := rec.CompleteSkipQuiz(ctx, 2); err != nil {
		t.Fatal(err)
	}
	units, err := rec.Summary(ctx)
	if err != nil {
		t.Fatal(err)
	}
	return units
}

func TestRoadmapView(t *testing.T) {
	v := Roadmap{Units: summaries(t), Width: 80}.View()

	for _, want := range []string{
		"Unit 1", "Foundations of Human Biology", "Human Body Systems",
		"Personalized Practice", "2026-10-14", "skip quiz passed",
		"Unit 6", "28. Organ Transplants",
	} {
		if !strings.Contains(v, want) {
			t.Errorf("roadmap missing %q", want)
		}
	}
}

func TestRoadmapCompact(t *testing.T) {
	v := Roadmap{Units: summaries(t), Width: 40, Compact: true}.View()
	if !strings.Contains(v, "Unit 3") {
		t.Error("compact roadmap missing unit title")
	}
	if strings.Contains(v, "Organ Transplants") {
		t.Error("compact roadmap should not list slots")
	}
}

func TestWeekView(t *testing.T) {
	w := Week{
		Days: []progress.DayActivity{
			{Day: "2026-10-12", Weekday: time.Monday, Active: true},
			{Day: "2026-10-13", Weekday: time.Tuesday},
		},
		Streak:    3,
		Milestone: 5,
		Today:     2,
	}
	v := w.View()
	for _, want := range []string{"Mon", "Tue", "3 day streak", "2 to go for 5", "Lessons today: 2"} {
		if !strings.Contains(v, want) {
			t.Errorf("week view missing %q in %q", want, v)
		}
	}
}
