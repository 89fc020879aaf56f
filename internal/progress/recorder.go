package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/bodypath/internal/identity"
	"github.com/abhisek/bodypath/internal/logger"
	"github.com/abhisek/bodypath/internal/notify"
	"github.com/abhisek/bodypath/internal/store"
)

var (
	// ErrInvalidLessonID is returned for lesson ids below 1.
	ErrInvalidLessonID = errors.New("lesson id must be positive")

	// ErrInvalidUnit is returned for unit numbers below 1.
	ErrInvalidUnit = errors.New("unit number must be positive")

	// ErrUnsupportedItem is returned when RecordItem is given a lesson ref
	// or a malformed ref.
	ErrUnsupportedItem = errors.New("unsupported item")
)

// Recorder persists completion events. Every operation is an idempotent
// read-modify-write of whole values; there is no locking, so two writers
// sharing one store can lose updates.
type Recorder struct {
	kv       store.KV
	ids      identity.Provider
	notifier notify.Notifier
	log      *logger.Logger
	now      func() time.Time
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithIdentity sets the session collaborator used to scope item keys.
func WithIdentity(p identity.Provider) Option {
	return func(r *Recorder) { r.ids = p }
}

// WithNotifier sets where storage-update events go.
func WithNotifier(n notify.Notifier) Option {
	return func(r *Recorder) { r.notifier = n }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(r *Recorder) { r.log = l }
}

// WithClock overrides time.Now. Days are taken in the returned time's
// location.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) { r.now = now }
}

// NewRecorder creates a Recorder over kv. Without options it records as a
// guest, drops notifications and discards logs.
func NewRecorder(kv store.KV, opts ...Option) *Recorder {
	r := &Recorder{
		kv:       kv,
		ids:      identity.Guest(),
		notifier: notify.Nop{},
		log:      logger.Nop(),
		now:      time.Now,
	}
	for _, o := range opts {
		o(r)
	}
	r.log = r.log.With("component", "progress")
	return r
}

func (r *Recorder) today() string {
	return DayKey(r.now())
}

// layout resolves the session prefix. A failed lookup is logged and
// reported with ok=false; callers then skip persisting the event.
func (r *Recorder) layout(ctx context.Context) (Layout, bool) {
	prefix, err := identity.ResolvePrefix(ctx, r.ids)
	if err != nil {
		r.log.Warn("identity lookup failed", "err", err)
		return Layout{}, false
	}
	return Layout{Prefix: prefix}, true
}

// loadSet reads a completion array. Malformed values are logged and
// treated as empty; only store failures are returned.
func (r *Recorder) loadSet(ctx context.Context, key string, numberKind ItemKind) (idSet, error) {
	stored, ok, err := r.kv.Get(ctx, key)
	if err != nil {
		return idSet{}, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok {
		return idSet{numberKind: numberKind}, nil
	}
	set, err := decodeSet(stored, numberKind)
	if err != nil {
		r.log.Warn("discarding malformed completion array", "key", key, "err", err)
		return idSet{numberKind: numberKind}, nil
	}
	return set, nil
}

// setIfAbsent writes value under key only if key has no value yet, so the
// first completion date stays authoritative.
func (r *Recorder) setIfAbsent(ctx context.Context, key, value string) error {
	_, ok, err := r.kv.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	if ok {
		return nil
	}
	if err := r.kv.Set(ctx, key, value); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// RecordLesson marks lesson id complete. It returns true if the lesson was
// newly recorded and false if it was already complete, in which case
// nothing is written.
func (r *Recorder) RecordLesson(ctx context.Context, id int) (bool, error) {
	if id < 1 {
		return false, fmt.Errorf("lesson %d: %w", id, ErrInvalidLessonID)
	}
	return r.recordLesson(ctx, Layout{}, id)
}

func (r *Recorder) recordLesson(ctx context.Context, l Layout, id int) (bool, error) {
	ref := Lesson(id)
	key := l.CompletedLessons()

	set, err := r.loadSet(ctx, key, ItemLesson)
	if err != nil {
		return false, err
	}
	added, err := set.add(ref)
	if err != nil || !added {
		return false, err
	}
	if err := r.kv.Set(ctx, key, set.encode()); err != nil {
		return false, fmt.Errorf("write %s: %w", key, err)
	}

	day := r.today()
	dateKey, _ := l.CompletionDate(ref)
	if err := r.setIfAbsent(ctx, dateKey, day); err != nil {
		return true, err
	}
	if err := r.kv.Set(ctx, l.DailyLessons(day, false), "1"); err != nil {
		return true, fmt.Errorf("write daily marker: %w", err)
	}

	r.log.Debug("lesson recorded", "lesson", id, "day", day)
	return true, nil
}

// RecordItem marks a review, skip quiz or practice slot complete in the
// session's item set and raises notify.EventStorageUpdate. It returns true
// if the item was newly recorded. When the session lookup fails the event
// is dropped and (false, nil) is returned.
func (r *Recorder) RecordItem(ctx context.Context, ref ItemRef) (bool, error) {
	if err := validateItem(ref); err != nil {
		return false, err
	}
	l, ok := r.layout(ctx)
	if !ok {
		return false, nil
	}
	added, err := r.recordItem(ctx, l, ref)
	if added {
		r.publish(ctx)
	}
	return added, err
}

func validateItem(ref ItemRef) error {
	switch ref.Kind {
	case ItemReview, ItemSkipQuiz:
		if ref.N < 1 {
			return fmt.Errorf("%s: %w", ref, ErrInvalidUnit)
		}
	case ItemPractice:
		if ref.N < 0 {
			return fmt.Errorf("%s: %w", ref, ErrUnsupportedItem)
		}
	default:
		return fmt.Errorf("%s: %w", ref, ErrUnsupportedItem)
	}
	return nil
}

func (r *Recorder) recordItem(ctx context.Context, l Layout, ref ItemRef) (bool, error) {
	key := l.CompletedItems()

	set, err := r.loadSet(ctx, key, ItemPractice)
	if err != nil {
		return false, err
	}
	added, err := set.add(ref)
	if err != nil || !added {
		return false, err
	}
	if err := r.kv.Set(ctx, key, set.encode()); err != nil {
		return false, fmt.Errorf("write %s: %w", key, err)
	}

	day := r.today()
	if dateKey, ok := l.CompletionDate(ref); ok {
		if err := r.setIfAbsent(ctx, dateKey, day); err != nil {
			return true, err
		}
	}
	if err := r.kv.Set(ctx, l.DailyLessons(day, true), "1"); err != nil {
		return true, fmt.Errorf("write daily marker: %w", err)
	}

	r.log.Debug("item recorded", "item", ref.Key(), "day", day)
	return true, nil
}

// publish raises the storage-update event. Failures are logged only.
func (r *Recorder) publish(ctx context.Context) {
	if err := r.notifier.Notify(ctx, notify.EventStorageUpdate); err != nil {
		r.log.Warn("storage update notification failed", "err", err)
	}
}
