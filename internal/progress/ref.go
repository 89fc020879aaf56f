// Package progress records lesson, review and skip-quiz completions in a
// flat key-value store and derives streak and roadmap state from them.
package progress

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ItemKind tags an ItemRef.
type ItemKind int

const (
	ItemLesson   ItemKind = iota + 1 // N is the 1-based lesson id
	ItemReview                       // N is the unit number
	ItemSkipQuiz                     // N is the unit number
	ItemPractice                     // N is the roadmap slot index
)

func (k ItemKind) String() string {
	switch k {
	case ItemLesson:
		return "lesson"
	case ItemReview:
		return "review"
	case ItemSkipQuiz:
		return "skipQuiz"
	case ItemPractice:
		return "practice"
	default:
		return "unknown"
	}
}

// ItemRef identifies one completable thing. Lessons and practice slots are
// stored as JSON numbers; reviews and skip quizzes as "review_<n>" and
// "skipQuiz_<n>" strings.
type ItemRef struct {
	Kind ItemKind
	N    int
}

func Lesson(id int) ItemRef     { return ItemRef{Kind: ItemLesson, N: id} }
func Review(unit int) ItemRef   { return ItemRef{Kind: ItemReview, N: unit} }
func SkipQuiz(unit int) ItemRef { return ItemRef{Kind: ItemSkipQuiz, N: unit} }
func Practice(slot int) ItemRef { return ItemRef{Kind: ItemPractice, N: slot} }

// Key returns the legacy storage form: "review_3", "skipQuiz_3", or the
// bare number for lessons and practice slots.
func (r ItemRef) Key() string {
	switch r.Kind {
	case ItemReview:
		return "review_" + strconv.Itoa(r.N)
	case ItemSkipQuiz:
		return "skipQuiz_" + strconv.Itoa(r.N)
	default:
		return strconv.Itoa(r.N)
	}
}

func (r ItemRef) String() string {
	return r.Kind.String() + ":" + strconv.Itoa(r.N)
}

// MarshalJSON encodes the ref the way the completion arrays hold it.
func (r ItemRef) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case ItemLesson, ItemPractice:
		return []byte(strconv.Itoa(r.N)), nil
	case ItemReview, ItemSkipQuiz:
		return json.Marshal(r.Key())
	default:
		return nil, fmt.Errorf("marshal item ref: unknown kind %d", r.Kind)
	}
}

// ParseItemRef decodes one array entry. Numbers decode as numberKind
// (ItemLesson in the lesson set, ItemPractice in the item set). ok is
// false for entries that are not recognised.
func ParseItemRef(raw json.RawMessage, numberKind ItemKind) (ItemRef, bool) {
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return ItemRef{Kind: numberKind, N: n}, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ItemRef{}, false
	}
	return ParseItemKey(s)
}

// ParseItemKey parses "review_<n>" or "skipQuiz_<n>".
func ParseItemKey(s string) (ItemRef, bool) {
	var kind ItemKind
	var rest string
	switch {
	case strings.HasPrefix(s, "review_"):
		kind, rest = ItemReview, strings.TrimPrefix(s, "review_")
	case strings.HasPrefix(s, "skipQuiz_"):
		kind, rest = ItemSkipQuiz, strings.TrimPrefix(s, "skipQuiz_")
	default:
		return ItemRef{}, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return ItemRef{}, false
	}
	return ItemRef{Kind: kind, N: n}, true
}
