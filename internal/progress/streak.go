package progress

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// maxStreakDays bounds how far back Streak looks.
const maxStreakDays = 365

// activity is the set of days with at least one completion, gathered from
// daily markers and per-item completion dates.
type activity struct {
	days         map[string]bool
	lessonsByDay map[string]int
}

func (r *Recorder) loadActivity(ctx context.Context) (activity, error) {
	a := activity{days: make(map[string]bool), lessonsByDay: make(map[string]int)}

	// If the session lookup fails only unscoped state is consulted.
	l, scoped := r.layout(ctx)

	markerPrefixes := []string{keyDailyLessons}
	if scoped {
		markerPrefixes = append(markerPrefixes, l.Prefix+keyDailyLessons)
	}
	for _, p := range markerPrefixes {
		keys, err := r.kv.Keys(ctx, p)
		if err != nil {
			return a, fmt.Errorf("list daily markers: %w", err)
		}
		for _, k := range keys {
			v, ok, err := r.kv.Get(ctx, k)
			if err != nil {
				return a, fmt.Errorf("read %s: %w", k, err)
			}
			if ok && v == "1" {
				a.days[strings.TrimPrefix(k, p)] = true
			}
		}
	}

	lessons, err := r.loadSet(ctx, l.CompletedLessons(), ItemLesson)
	if err != nil {
		return a, err
	}
	for _, ref := range lessons.refs() {
		day, err := r.completionDay(ctx, l, ref)
		if err != nil {
			return a, err
		}
		if day != "" {
			a.days[day] = true
			a.lessonsByDay[day]++
		}
	}

	if !scoped {
		return a, nil
	}
	items, err := r.loadSet(ctx, l.CompletedItems(), ItemPractice)
	if err != nil {
		return a, err
	}
	for _, ref := range items.refs() {
		day, err := r.completionDay(ctx, l, ref)
		if err != nil {
			return a, err
		}
		if day != "" {
			a.days[day] = true
		}
	}
	return a, nil
}

// completionDay returns the stored completion date for ref, or "" if ref
// has no date marker.
func (r *Recorder) completionDay(ctx context.Context, l Layout, ref ItemRef) (string, error) {
	key, ok := l.CompletionDate(ref)
	if !ok {
		return "", nil
	}
	v, _, err := r.kv.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return v, nil
}

// ActiveOn reports whether any completion happened on day (YYYY-MM-DD).
func (r *Recorder) ActiveOn(ctx context.Context, day string) (bool, error) {
	a, err := r.loadActivity(ctx)
	if err != nil {
		return false, err
	}
	return a.days[day], nil
}

// ActiveToday reports whether any completion happened today.
func (r *Recorder) ActiveToday(ctx context.Context) (bool, error) {
	return r.ActiveOn(ctx, r.today())
}

// Streak counts consecutive active days ending today. A day without any
// completion ends the streak, so an inactive today yields 0.
func (r *Recorder) Streak(ctx context.Context) (int, error) {
	a, err := r.loadActivity(ctx)
	if err != nil {
		return 0, err
	}
	now := r.now()
	streak := 0
	for i := 0; i < maxStreakDays; i++ {
		if !a.days[DayKey(now.AddDate(0, 0, -i))] {
			break
		}
		streak++
	}
	return streak, nil
}

// DailyLessonCount returns how many lessons were first completed today.
func (r *Recorder) DailyLessonCount(ctx context.Context) (int, error) {
	a, err := r.loadActivity(ctx)
	if err != nil {
		return 0, err
	}
	return a.lessonsByDay[r.today()], nil
}

// DayActivity is one day of the weekly view.
type DayActivity struct {
	Day     string
	Weekday time.Weekday
	Active  bool
}

// WeeklyProgress returns Monday through Friday of the current week.
func (r *Recorder) WeeklyProgress(ctx context.Context) ([]DayActivity, error) {
	a, err := r.loadActivity(ctx)
	if err != nil {
		return nil, err
	}
	now := r.now()
	back := int(now.Weekday()) - 1
	if now.Weekday() == time.Sunday {
		back = 6
	}
	monday := now.AddDate(0, 0, -back)

	week := make([]DayActivity, 0, 5)
	for i := 0; i < 5; i++ {
		d := monday.AddDate(0, 0, i)
		key := DayKey(d)
		week = append(week, DayActivity{Day: key, Weekday: d.Weekday(), Active: a.days[key]})
	}
	return week, nil
}

// NextStreakMilestone returns the next streak length worth celebrating
// above current.
func NextStreakMilestone(current int) int {
	milestones := []int{5, 10, 15, 20}
	for _, m := range milestones {
		if m > current {
			return m
		}
	}
	// Beyond 20, every 5 days.
	return ((current / 5) + 1) * 5
}
