package curriculum

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrInvalidSlot is returned when a lesson id is requested for a
	// placeholder slot.
	ErrInvalidSlot = errors.New("slot is not a lesson")

	// ErrSlotOutOfRange is returned for slot indices outside the roadmap.
	ErrSlotOutOfRange = errors.New("slot index out of range")

	// ErrUnknownUnit is returned for unit numbers outside the unit table.
	ErrUnknownUnit = errors.New("unknown unit")

	// ErrUnknownLesson is returned for lesson ids with no slot.
	ErrUnknownLesson = errors.New("unknown lesson")
)

// table holds the roadmap with precomputed indices.
type table struct {
	slots    []Slot
	units    []Unit
	byLesson map[int]int // lesson id -> slot index
}

// tbl is the package-level roadmap singleton, set by init() in seed.go.
var tbl *table

// buildTable validates the seed and precomputes unit membership and lesson
// ids. A lesson's id is the number of non-placeholder slots from index 0 up
// to and including its own index.
func buildTable(names []string, units []Unit) (*table, error) {
	if err := validateSeed(names, units); err != nil {
		return nil, err
	}

	t := &table{
		slots:    make([]Slot, len(names)),
		units:    slices.Clone(units),
		byLesson: make(map[int]int),
	}

	lessonID := 0
	for i, name := range names {
		s := Slot{Index: i, Name: name, Kind: KindOf(name)}
		if s.Kind == KindLesson {
			lessonID++
			s.LessonID = lessonID
			t.byLesson[lessonID] = i
		}
		t.slots[i] = s
	}

	for _, u := range t.units {
		for i := u.Start; i <= u.End; i++ {
			t.slots[i].Unit = u.Number
		}
	}
	return t, nil
}

// validateSeed checks that units are numbered 1..n and partition the slot
// sequence into contiguous ranges. Returns all problems found.
func validateSeed(names []string, units []Unit) error {
	var errs []string

	if len(names) == 0 {
		errs = append(errs, "no slots")
	}
	if len(units) == 0 {
		errs = append(errs, "no units")
	}

	next := 0
	for i, u := range units {
		if u.Number != i+1 {
			errs = append(errs, fmt.Sprintf("unit at position %d has number %d, want %d", i, u.Number, i+1))
		}
		if u.Start != next {
			errs = append(errs, fmt.Sprintf("unit %d starts at slot %d, want %d", u.Number, u.Start, next))
		}
		if u.End < u.Start {
			errs = append(errs, fmt.Sprintf("unit %d ends (%d) before it starts (%d)", u.Number, u.End, u.Start))
		}
		next = u.End + 1
	}
	if len(units) > 0 && next != len(names) {
		errs = append(errs, fmt.Sprintf("units cover %d slots, roadmap has %d", next, len(names)))
	}

	for i, name := range names {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, fmt.Sprintf("slot %d has an empty name", i))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("curriculum validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func (t *table) slotAt(i int) (Slot, error) {
	if i < 0 || i >= len(t.slots) {
		return Slot{}, fmt.Errorf("slot %d: %w", i, ErrSlotOutOfRange)
	}
	return t.slots[i], nil
}

func (t *table) unit(n int) (Unit, error) {
	if n < 1 || n > len(t.units) {
		return Unit{}, fmt.Errorf("unit %d: %w", n, ErrUnknownUnit)
	}
	return t.units[n-1], nil
}

// Slots returns every slot in roadmap order.
func Slots() []Slot {
	return slices.Clone(tbl.slots)
}

// SlotCount returns the number of roadmap slots.
func SlotCount() int {
	return len(tbl.slots)
}

// SlotAt returns the slot at index i.
func SlotAt(i int) (Slot, error) {
	return tbl.slotAt(i)
}

// LessonIDAtSlot returns the 1-based lesson id of the lesson at slot i.
// Placeholder slots have no lesson id and yield ErrInvalidSlot.
func LessonIDAtSlot(i int) (int, error) {
	s, err := tbl.slotAt(i)
	if err != nil {
		return 0, err
	}
	if s.IsPlaceholder() {
		return 0, fmt.Errorf("slot %d (%s): %w", i, s.Name, ErrInvalidSlot)
	}
	return s.LessonID, nil
}

// SlotForLesson returns the slot holding lesson id.
func SlotForLesson(id int) (Slot, error) {
	i, ok := tbl.byLesson[id]
	if !ok {
		return Slot{}, fmt.Errorf("lesson %d: %w", id, ErrUnknownLesson)
	}
	return tbl.slots[i], nil
}

// LessonTitle returns the title of lesson id.
func LessonTitle(id int) (string, error) {
	s, err := SlotForLesson(id)
	if err != nil {
		return "", err
	}
	return s.Name, nil
}

// LessonCount returns the number of real lessons in the roadmap.
func LessonCount() int {
	return len(tbl.byLesson)
}

// Units returns every unit in order.
func Units() []Unit {
	return slices.Clone(tbl.units)
}

// UnitByNumber returns the unit with 1-based number n.
func UnitByNumber(n int) (Unit, error) {
	return tbl.unit(n)
}

// UnitForSlot returns the unit containing slot i.
func UnitForSlot(i int) (Unit, error) {
	s, err := tbl.slotAt(i)
	if err != nil {
		return Unit{}, err
	}
	return tbl.unit(s.Unit)
}

// UnitSlots returns the slots of unit n in order.
func UnitSlots(n int) ([]Slot, error) {
	u, err := tbl.unit(n)
	if err != nil {
		return nil, err
	}
	return slices.Clone(tbl.slots[u.Start : u.End+1]), nil
}

// PreviousUnit returns the unit numbered n-1. ok is false when there is no
// such unit, as for n == 1.
func PreviousUnit(n int) (Unit, bool) {
	prev := n - 2
	if prev < 0 || prev >= len(tbl.units) {
		return Unit{}, false
	}
	return tbl.units[prev], true
}
