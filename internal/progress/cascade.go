package progress

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/bodypath/internal/curriculum"
)

// CascadeResult lists what a skip-quiz completion newly recorded.
type CascadeResult struct {
	Unit         int
	PreviousUnit int // 0 when there is no previous unit
	Lessons      []int
	Items        []ItemRef
	SkipQuiz     bool
}

// Changed reports whether anything was newly recorded.
func (c CascadeResult) Changed() bool {
	return c.SkipQuiz || len(c.Lessons) > 0 || len(c.Items) > 0
}

// CompleteSkipQuiz records a passed skip quiz for unit: every slot of the
// previous unit is completed first, then skipQuiz_<unit>. A failing slot
// is logged and skipped; the remaining slots are still attempted and all
// failures are returned joined.
func (r *Recorder) CompleteSkipQuiz(ctx context.Context, unit int) (CascadeResult, error) {
	res := CascadeResult{Unit: unit}
	if unit < 1 {
		return res, fmt.Errorf("skip quiz %d: %w", unit, ErrInvalidUnit)
	}
	l, ok := r.layout(ctx)
	if !ok {
		return res, nil
	}

	var errs []error
	if prev, ok := curriculum.PreviousUnit(unit); ok {
		res.PreviousUnit = prev.Number
		for i := prev.Start; i <= prev.End; i++ {
			if err := r.cascadeSlot(ctx, l, i, prev.Number, &res); err != nil {
				r.log.Warn("cascade slot failed", "unit", unit, "slot", i, "err", err)
				errs = append(errs, fmt.Errorf("slot %d: %w", i, err))
			}
		}
	}

	added, err := r.recordItem(ctx, l, SkipQuiz(unit))
	if err != nil {
		errs = append(errs, fmt.Errorf("skip quiz %d: %w", unit, err))
	}
	res.SkipQuiz = added

	if res.Changed() {
		r.publish(ctx)
	}
	return res, errors.Join(errs...)
}

func (r *Recorder) cascadeSlot(ctx context.Context, l Layout, i, unit int, res *CascadeResult) error {
	slot, err := curriculum.SlotAt(i)
	if err != nil {
		return err
	}

	switch slot.Kind {
	case curriculum.KindPractice:
		ref := Practice(i)
		added, err := r.recordItem(ctx, l, ref)
		if added {
			res.Items = append(res.Items, ref)
		}
		return err
	case curriculum.KindReview:
		ref := Review(unit)
		added, err := r.recordItem(ctx, l, ref)
		if added {
			res.Items = append(res.Items, ref)
		}
		return err
	default:
		id, err := curriculum.LessonIDAtSlot(i)
		if err != nil {
			return err
		}
		added, err := r.recordLesson(ctx, l, id)
		if added {
			res.Lessons = append(res.Lessons, id)
		}
		return err
	}
}

// CompleteSlot completes the roadmap slot at index i according to its kind:
// a practice slot by index, a review by its unit, a lesson by its id. It
// returns the ref that was targeted and whether it was newly recorded.
func (r *Recorder) CompleteSlot(ctx context.Context, i int) (ItemRef, bool, error) {
	slot, err := curriculum.SlotAt(i)
	if err != nil {
		return ItemRef{}, false, err
	}

	switch slot.Kind {
	case curriculum.KindPractice:
		ref := Practice(i)
		added, err := r.RecordItem(ctx, ref)
		return ref, added, err
	case curriculum.KindReview:
		ref := Review(slot.Unit)
		added, err := r.RecordItem(ctx, ref)
		return ref, added, err
	default:
		id, err := curriculum.LessonIDAtSlot(i)
		if err != nil {
			return ItemRef{}, false, err
		}
		added, err := r.RecordLesson(ctx, id)
		return Lesson(id), added, err
	}
}
