package progress

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func daysBack(n int) string {
	return DayKey(testNow().AddDate(0, 0, -n))
}

func TestStreak_ConsecutiveMarkers(t *testing.T) {
	h := newHarness(t, map[string]string{
		"tsv2DailyLessons_" + daysBack(0): "1",
		"tsv2DailyLessons_" + daysBack(1): "1",
		"tsv2DailyLessons_" + daysBack(2): "1",
		"tsv2DailyLessons_" + daysBack(4): "1",
	})

	got, err := h.rec.Streak(context.Background())
	require.NoError(t, err)
	if got != 3 {
		t.Errorf("Streak() = %d, want 3", got)
	}
}

func TestStreak_InactiveToday(t *testing.T) {
	h := newHarness(t, map[string]string{
		"tsv2DailyLessons_" + daysBack(1): "1",
		"tsv2DailyLessons_" + daysBack(2): "1",
	})

	got, err := h.rec.Streak(context.Background())
	require.NoError(t, err)
	if got != 0 {
		t.Errorf("Streak() = %d, want 0", got)
	}
}

func TestStreak_Sources(t *testing.T) {
	tests := []struct {
		name string
		seed map[string]string
		want int
	}{
		{"empty", nil, 0},
		{"unscoped marker", map[string]string{"tsv2DailyLessons_" + testDay: "1"}, 1},
		{"scoped marker", map[string]string{"guest_tsv2DailyLessons_" + testDay: "1"}, 1},
		{"marker not 1", map[string]string{"tsv2DailyLessons_" + testDay: "0"}, 0},
		{"other user's marker", map[string]string{"user_x_tsv2DailyLessons_" + testDay: "1"}, 0},
		{"lesson date only", map[string]string{
			"tsv2Completed":          "[1]",
			"tsv2LessonCompletion_1": testDay,
		}, 1},
		{"date without set entry", map[string]string{"tsv2LessonCompletion_1": testDay}, 0},
		{"review date", map[string]string{
			"guest_tsv2CompletedItems":            `["review_1"]`,
			"guest_tsv2ReviewCompletion_review_1": testDay,
		}, 1},
		{"skip quiz date", map[string]string{
			"guest_tsv2CompletedItems":          `["skipQuiz_2"]`,
			"tsv2SkipQuizCompletion_skipQuiz_2": testDay,
		}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.seed)
			got, err := h.rec.Streak(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStreak_Capped(t *testing.T) {
	seed := make(map[string]string)
	for i := 0; i < 400; i++ {
		seed["tsv2DailyLessons_"+daysBack(i)] = "1"
	}
	h := newHarness(t, seed)

	got, err := h.rec.Streak(context.Background())
	require.NoError(t, err)
	assert.Equal(t, maxStreakDays, got)
}

func TestStreak_AfterRecording(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	for i := 2; i >= 0; i-- {
		*h.clock = testNow().AddDate(0, 0, -i)
		_, err := h.rec.RecordLesson(ctx, 10-i)
		require.NoError(t, err)
	}

	got, err := h.rec.Streak(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, got)

	active, err := h.rec.ActiveToday(ctx)
	require.NoError(t, err)
	assert.True(t, active)

	active, err = h.rec.ActiveOn(ctx, daysBack(5))
	require.NoError(t, err)
	assert.False(t, active)
}

func TestDailyLessonCount(t *testing.T) {
	h := newHarness(t, map[string]string{
		"tsv2Completed":          "[3]",
		"tsv2LessonCompletion_3": daysBack(1),
	})
	ctx := context.Background()

	for _, id := range []int{1, 2} {
		_, err := h.rec.RecordLesson(ctx, id)
		require.NoError(t, err)
	}
	_, err := h.rec.RecordItem(ctx, Review(1))
	require.NoError(t, err)

	got, err := h.rec.DailyLessonCount(ctx)
	require.NoError(t, err)
	if got != 2 {
		t.Errorf("DailyLessonCount() = %d, want 2", got)
	}
}

func TestWeeklyProgress(t *testing.T) {
	h := newHarness(t, map[string]string{
		"tsv2DailyLessons_2026-10-12":       "1",
		"guest_tsv2DailyLessons_2026-10-14": "1",
		"tsv2DailyLessons_2026-10-10":       "1", // previous Saturday
	})

	week, err := h.rec.WeeklyProgress(context.Background())
	require.NoError(t, err)
	require.Len(t, week, 5)

	wantDays := []string{"2026-10-12", "2026-10-13", "2026-10-14", "2026-10-15", "2026-10-16"}
	wantActive := []bool{true, false, true, false, false}
	for i, d := range week {
		assert.Equal(t, wantDays[i], d.Day)
		assert.Equal(t, time.Monday+time.Weekday(i), d.Weekday)
		assert.Equal(t, wantActive[i], d.Active, d.Day)
	}
}

func TestWeeklyProgress_CompletionDateWithoutMarker(t *testing.T) {
	h := newHarness(t, map[string]string{
		"tsv2Completed":          "[3]",
		"tsv2LessonCompletion_3": "2026-10-13",
	})

	week, err := h.rec.WeeklyProgress(context.Background())
	require.NoError(t, err)
	require.Len(t, week, 5)
	assert.False(t, week[0].Active, week[0].Day)
	assert.True(t, week[1].Active, week[1].Day)
	assert.False(t, week[2].Active, week[2].Day)
}

func TestWeeklyProgress_Sunday(t *testing.T) {
	h := newHarness(t, nil)
	*h.clock = time.Date(2026, 10, 18, 20, 0, 0, 0, time.Local)

	week, err := h.rec.WeeklyProgress(context.Background())
	require.NoError(t, err)
	require.Len(t, week, 5)
	assert.Equal(t, "2026-10-12", week[0].Day)
	assert.Equal(t, "2026-10-16", week[4].Day)
}

func TestNextStreakMilestone(t *testing.T) {
	tests := []struct {
		current int
		want    int
	}{
		{0, 5},
		{4, 5},
		{5, 10},
		{12, 15},
		{19, 20},
		{20, 25},
		{23, 25},
		{25, 30},
		{101, 105},
	}
	for _, tt := range tests {
		if got := NextStreakMilestone(tt.current); got != tt.want {
			t.Errorf("NextStreakMilestone(%d) = %d, want %d", tt.current, got, tt.want)
		}
	}
}
