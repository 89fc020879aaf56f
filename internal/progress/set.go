package progress

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// idSet is a completion array as stored. Entries are kept as compacted raw
// JSON so values this package does not understand survive a write-back.
type idSet struct {
	entries    []json.RawMessage
	numberKind ItemKind
}

// decodeSet parses a stored array. An empty string or JSON null decodes to
// an empty set; anything that is not an array is an error.
func decodeSet(stored string, numberKind ItemKind) (idSet, error) {
	s := idSet{numberKind: numberKind}
	if stored == "" {
		return s, nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(stored), &raw); err != nil {
		return s, fmt.Errorf("decode completion array: %w", err)
	}
	for _, e := range raw {
		var buf bytes.Buffer
		if err := json.Compact(&buf, e); err != nil {
			return idSet{numberKind: numberKind}, fmt.Errorf("decode completion entry: %w", err)
		}
		s.entries = append(s.entries, buf.Bytes())
	}
	return s, nil
}

func (s *idSet) contains(ref ItemRef) bool {
	enc, err := json.Marshal(ref)
	if err != nil {
		return false
	}
	for _, e := range s.entries {
		if bytes.Equal(e, enc) {
			return true
		}
	}
	return false
}

// add appends ref unless already present. Returns true if it was added.
func (s *idSet) add(ref ItemRef) (bool, error) {
	if s.contains(ref) {
		return false, nil
	}
	enc, err := json.Marshal(ref)
	if err != nil {
		return false, err
	}
	s.entries = append(s.entries, enc)
	return true, nil
}

// refs returns the recognised entries in stored order.
func (s *idSet) refs() []ItemRef {
	out := make([]ItemRef, 0, len(s.entries))
	for _, e := range s.entries {
		if ref, ok := ParseItemRef(e, s.numberKind); ok {
			out = append(out, ref)
		}
	}
	return out
}

func (s *idSet) len() int {
	return len(s.entries)
}

func (s *idSet) encode() string {
	if len(s.entries) == 0 {
		return "[]"
	}
	var b bytes.Buffer
	b.WriteByte('[')
	for i, e := range s.entries {
		if i > 0 {
			b.WriteByte(',')
		}
		b.Write(e)
	}
	b.WriteByte(']')
	return b.String()
}
