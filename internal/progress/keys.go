package progress

import (
	"strconv"
	"time"
)

// Namespace starts every key this package writes, after the optional
// session prefix.
const Namespace = "tsv2"

const (
	keyCompletedLessons   = "tsv2Completed"
	keyCompletedItems     = "tsv2CompletedItems"
	keyLessonCompletion   = "tsv2LessonCompletion_"
	keyReviewCompletion   = "tsv2ReviewCompletion_"
	keySkipQuizCompletion = "tsv2SkipQuizCompletion_"
	keyDailyLessons       = "tsv2DailyLessons_"
)

// dayLayout is the calendar-day format used by date and daily markers.
const dayLayout = "2006-01-02"

// DayKey formats t as YYYY-MM-DD in t's own location.
func DayKey(t time.Time) string {
	return t.Format(dayLayout)
}

// Layout maps refs to storage keys for one session prefix. The lesson path
// and skip-quiz date markers are unscoped; everything else carries the
// prefix.
type Layout struct {
	Prefix string
}

func (l Layout) CompletedLessons() string { return keyCompletedLessons }

func (l Layout) CompletedItems() string { return l.Prefix + keyCompletedItems }

// DailyLessons returns the daily activity key for day. scoped selects the
// session-prefixed variant written by the item path.
func (l Layout) DailyLessons(day string, scoped bool) string {
	if scoped {
		return l.Prefix + keyDailyLessons + day
	}
	return keyDailyLessons + day
}

// CompletionDate returns the date marker key for ref. ok is false for
// practice slots, which carry no date marker.
func (l Layout) CompletionDate(ref ItemRef) (key string, ok bool) {
	switch ref.Kind {
	case ItemLesson:
		return keyLessonCompletion + strconv.Itoa(ref.N), true
	case ItemReview:
		return l.Prefix + keyReviewCompletion + ref.Key(), true
	case ItemSkipQuiz:
		return keySkipQuizCompletion + ref.Key(), true
	default:
		return "", false
	}
}

// ScopedNamespace returns the prefix shared by every scoped key.
func (l Layout) ScopedNamespace() string {
	return l.Prefix + Namespace
}
