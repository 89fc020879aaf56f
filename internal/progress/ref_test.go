package progress

import (
	"encoding/json"
	"testing"
)

func TestItemRefKey(t *testing.T) {
	tests := []struct {
		ref  ItemRef
		key  string
		json string
	}{
		{Lesson(5), "5", "5"},
		{Practice(10), "10", "10"},
		{Review(2), "review_2", `"review_2"`},
		{SkipQuiz(3), "skipQuiz_3", `"skipQuiz_3"`},
	}
	for _, tt := range tests {
		if got := tt.ref.Key(); got != tt.key {
			t.Errorf("%v.Key() = %q, want %q", tt.ref, got, tt.key)
		}
		b, err := json.Marshal(tt.ref)
		if err != nil {
			t.Fatalf("marshal %v: %v", tt.ref, err)
		}
		if string(b) != tt.json {
			t.Errorf("marshal %v = %s, want %s", tt.ref, b, tt.json)
		}
	}
}

func TestItemRefMarshalUnknownKind(t *testing.T) {
	if _, err := json.Marshal(ItemRef{}); err == nil {
		t.Error("expected error for zero ItemRef")
	}
}

func TestParseItemRef(t *testing.T) {
	tests := []struct {
		raw        string
		numberKind ItemKind
		want       ItemRef
		ok         bool
	}{
		{"5", ItemLesson, Lesson(5), true},
		{"5", ItemPractice, Practice(5), true},
		{`"review_4"`, ItemPractice, Review(4), true},
		{`"skipQuiz_1"`, ItemPractice, SkipQuiz(1), true},
		{`"review_x"`, ItemPractice, ItemRef{}, false},
		{`"lesson_1"`, ItemPractice, ItemRef{}, false},
		{`{"a":1}`, ItemLesson, ItemRef{}, false},
		{"1.5", ItemLesson, ItemRef{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseItemRef(json.RawMessage(tt.raw), tt.numberKind)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseItemRef(%s) = %v, %v; want %v, %v", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}

func TestItemKindString(t *testing.T) {
	if got := ItemSkipQuiz.String(); got != "skipQuiz" {
		t.Errorf("ItemSkipQuiz.String() = %q", got)
	}
	if got := ItemKind(0).String(); got != "unknown" {
		t.Errorf("ItemKind(0).String() = %q", got)
	}
}

func TestDecodeSet(t *testing.T) {
	tests := []struct {
		stored  string
		wantLen int
		wantErr bool
	}{
		{"", 0, false},
		{"null", 0, false},
		{"[]", 0, false},
		{`[1, 2 ,"review_1"]`, 3, false},
		{"{}", 0, true},
		{"[1,", 0, true},
		{`"str"`, 0, true},
	}
	for _, tt := range tests {
		s, err := decodeSet(tt.stored, ItemLesson)
		if (err != nil) != tt.wantErr {
			t.Errorf("decodeSet(%q) err = %v, wantErr %v", tt.stored, err, tt.wantErr)
			continue
		}
		if s.len() != tt.wantLen {
			t.Errorf("decodeSet(%q) len = %d, want %d", tt.stored, s.len(), tt.wantLen)
		}
	}
}

func TestIDSetAdd(t *testing.T) {
	s, err := decodeSet(`[ 1, "review_1" ]`, ItemPractice)
	if err != nil {
		t.Fatal(err)
	}
	if !s.contains(Practice(1)) || !s.contains(Review(1)) {
		t.Fatalf("contains failed on %s", s.encode())
	}
	if s.contains(Lesson(2)) {
		t.Error("unexpected member")
	}
	if added, _ := s.add(Review(1)); added {
		t.Error("duplicate add reported true")
	}
	if added, _ := s.add(SkipQuiz(2)); !added {
		t.Error("new add reported false")
	}
	if got, want := s.encode(), `[1,"review_1","skipQuiz_2"]`; got != want {
		t.Errorf("encode() = %s, want %s", got, want)
	}

	var empty idSet
	if got := empty.encode(); got != "[]" {
		t.Errorf("empty encode() = %s", got)
	}
}
