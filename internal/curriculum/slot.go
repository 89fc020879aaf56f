// Package curriculum holds the fixed lesson roadmap: the ordered slot
// sequence, its partition into units, and the mapping from slot positions
// to lesson ids.
package curriculum

// Placeholder slot names. Any other name is a lesson title.
const (
	PracticeName = "Personalized Practice"
	ReviewName   = "Review"
)

// SlotKind classifies a roadmap slot.
type SlotKind int

const (
	KindLesson   SlotKind = iota // A real lesson with a question bank
	KindPractice                 // Personalized Practice placeholder
	KindReview                   // End-of-unit review placeholder
)

func (k SlotKind) String() string {
	switch k {
	case KindLesson:
		return "lesson"
	case KindPractice:
		return "practice"
	case KindReview:
		return "review"
	default:
		return "unknown"
	}
}

// KindOf returns the slot kind for a slot name.
func KindOf(name string) SlotKind {
	switch name {
	case PracticeName:
		return KindPractice
	case ReviewName:
		return KindReview
	default:
		return KindLesson
	}
}

// Slot is one position in the roadmap.
type Slot struct {
	Index    int
	Name     string
	Kind     SlotKind
	Unit     int // 1-based unit number
	LessonID int // 1-based; 0 for placeholders
}

// IsPlaceholder reports whether the slot is a practice or review slot.
func (s Slot) IsPlaceholder() bool {
	return s.Kind != KindLesson
}

// Unit is a contiguous, inclusive range of slots.
type Unit struct {
	Number int
	Title  string
	Start  int
	End    int
}

// Len returns the number of slots in the unit.
func (u Unit) Len() int {
	return u.End - u.Start + 1
}

// Contains reports whether slot index i lies in the unit.
func (u Unit) Contains(i int) bool {
	return i >= u.Start && i <= u.End
}
