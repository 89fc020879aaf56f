package progress

import (
	"context"
	"fmt"

	"github.com/abhisek/bodypath/internal/curriculum"
)

// SlotState is one roadmap slot with its completion state.
type SlotState struct {
	Slot        curriculum.Slot
	Ref         ItemRef
	Done        bool
	CompletedOn string // YYYY-MM-DD, empty if unknown
}

// UnitSummary is the roadmap view of one unit.
type UnitSummary struct {
	Unit     curriculum.Unit
	Slots    []SlotState
	Done     int
	SkipQuiz bool // skipQuiz_<unit> recorded
}

// Complete reports whether every slot of the unit is done.
func (u UnitSummary) Complete() bool {
	return u.Done == len(u.Slots)
}

// Percent returns the completed fraction in [0, 1].
func (u UnitSummary) Percent() float64 {
	if len(u.Slots) == 0 {
		return 0
	}
	return float64(u.Done) / float64(len(u.Slots))
}

// SlotRef returns the ref a roadmap slot completes as.
func SlotRef(s curriculum.Slot) ItemRef {
	switch s.Kind {
	case curriculum.KindPractice:
		return Practice(s.Index)
	case curriculum.KindReview:
		return Review(s.Unit)
	default:
		return Lesson(s.LessonID)
	}
}

// Summary returns the completion state of every unit in roadmap order.
func (r *Recorder) Summary(ctx context.Context) ([]UnitSummary, error) {
	l, scoped := r.layout(ctx)

	lessons, err := r.loadSet(ctx, l.CompletedLessons(), ItemLesson)
	if err != nil {
		return nil, err
	}
	items := idSet{numberKind: ItemPractice}
	if scoped {
		if items, err = r.loadSet(ctx, l.CompletedItems(), ItemPractice); err != nil {
			return nil, err
		}
	}

	units := curriculum.Units()
	out := make([]UnitSummary, 0, len(units))
	for _, u := range units {
		slots, err := curriculum.UnitSlots(u.Number)
		if err != nil {
			return nil, fmt.Errorf("unit %d: %w", u.Number, err)
		}
		us := UnitSummary{Unit: u, SkipQuiz: items.contains(SkipQuiz(u.Number))}
		for _, s := range slots {
			ref := SlotRef(s)
			st := SlotState{Slot: s, Ref: ref}
			if ref.Kind == ItemLesson {
				st.Done = lessons.contains(ref)
			} else {
				st.Done = items.contains(ref)
			}
			if st.Done {
				us.Done++
				if st.CompletedOn, err = r.completionDay(ctx, l, ref); err != nil {
					return nil, err
				}
			}
			us.Slots = append(us.Slots, st)
		}
		out = append(out, us)
	}
	return out, nil
}

// CompletedLessons returns the recorded lesson ids in completion order.
func (r *Recorder) CompletedLessons(ctx context.Context) ([]int, error) {
	set, err := r.loadSet(ctx, keyCompletedLessons, ItemLesson)
	if err != nil {
		return nil, err
	}
	var ids []int
	for _, ref := range set.refs() {
		ids = append(ids, ref.N)
	}
	return ids, nil
}

// CompletedItems returns the session's recorded items in completion order.
func (r *Recorder) CompletedItems(ctx context.Context) ([]ItemRef, error) {
	l, ok := r.layout(ctx)
	if !ok {
		return nil, nil
	}
	set, err := r.loadSet(ctx, l.CompletedItems(), ItemPractice)
	if err != nil {
		return nil, err
	}
	return set.refs(), nil
}
