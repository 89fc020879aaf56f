package questions

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/abhisek/bodypath/internal/progress"
)

// SupportedVersion is the newest content format this package reads. Banks
// with the same major version and a lower or equal minor are accepted.
const SupportedVersion = "v1.0.0"

const manifestFile = "manifest.json"

//go:embed content
var embedded embed.FS

// Manifest describes a content directory.
type Manifest struct {
	Version string `json:"version"`
	Title   string `json:"title"`
}

// check reports whether the manifest's version can be read.
func (m Manifest) check() error {
	v := m.Version
	if !semver.IsValid(v) {
		return fmt.Errorf("content version %q is not a semantic version", v)
	}
	if semver.Major(v) != semver.Major(SupportedVersion) {
		return fmt.Errorf("content version %s: unsupported major version (want %s)", v, semver.Major(SupportedVersion))
	}
	if semver.Compare(semver.MajorMinor(v), semver.MajorMinor(SupportedVersion)) > 0 {
		return fmt.Errorf("content version %s is newer than supported %s", v, SupportedVersion)
	}
	return nil
}

// source maps a directory of question files to the item kind they hold.
type source struct {
	dir    string
	prefix string
	kind   progress.ItemKind
}

var sources = []source{
	{dir: "lessons", prefix: "lesson", kind: progress.ItemLesson},
	{dir: "reviews", prefix: "review", kind: progress.ItemReview},
	{dir: "skipQuizzes", prefix: "skipQuiz", kind: progress.ItemSkipQuiz},
}

// Bank is an in-memory question bank. It is immutable after Load.
type Bank struct {
	manifest Manifest
	items    map[progress.ItemRef][]Question
}

// Embedded loads the bank compiled into the binary.
func Embedded() (*Bank, error) {
	sub, err := fs.Sub(embedded, "content")
	if err != nil {
		return nil, err
	}
	return Load(sub)
}

// Load reads manifest.json and every lessons/lessonN.json,
// reviews/reviewN.json and skipQuizzes/skipQuizN.json file in fsys. All
// invalid files are reported together.
func Load(fsys fs.FS) (*Bank, error) {
	raw, err := fs.ReadFile(fsys, manifestFile)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", manifestFile, err)
	}
	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", manifestFile, err)
	}
	if err := m.check(); err != nil {
		return nil, err
	}

	b := &Bank{manifest: m, items: make(map[progress.ItemRef][]Question)}
	var errs []error
	for _, src := range sources {
		matches, err := fs.Glob(fsys, path.Join(src.dir, src.prefix+"*.json"))
		if err != nil {
			return nil, err
		}
		for _, name := range matches {
			ref, qs, err := loadFile(fsys, name, src)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			b.items[ref] = qs
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return b, nil
}

func loadFile(fsys fs.FS, name string, src source) (progress.ItemRef, []Question, error) {
	base := strings.TrimSuffix(path.Base(name), ".json")
	n, err := strconv.Atoi(strings.TrimPrefix(base, src.prefix))
	if err != nil || n < 1 {
		return progress.ItemRef{}, nil, fmt.Errorf("%s: file name must be %sN.json", name, src.prefix)
	}
	ref := progress.ItemRef{Kind: src.kind, N: n}

	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return ref, nil, fmt.Errorf("read %s: %w", name, err)
	}
	if err := validateBank(raw); err != nil {
		return ref, nil, fmt.Errorf("%s: %w", name, err)
	}
	var qs []Question
	if err := json.Unmarshal(raw, &qs); err != nil {
		return ref, nil, fmt.Errorf("%s: %w", name, err)
	}
	if err := checkQuestions(qs); err != nil {
		return ref, nil, fmt.Errorf("%s: %w", name, err)
	}
	return ref, qs, nil
}

// checkQuestions covers what the schema cannot: unique ids and answers
// that name an existing option.
func checkQuestions(qs []Question) error {
	var errs []string
	seen := make(map[int]bool, len(qs))
	for _, q := range qs {
		if seen[q.ID] {
			errs = append(errs, fmt.Sprintf("duplicate question id %d", q.ID))
		}
		seen[q.ID] = true

		if q.Type != TypeMCQ && q.Type != TypeIllustratedMCQ {
			continue
		}
		found := false
		for _, o := range q.Options {
			if o.ID == q.CorrectAnswer {
				found = true
				break
			}
		}
		if !found {
			errs = append(errs, fmt.Sprintf("question %d: answer %q is not an option", q.ID, q.CorrectAnswer))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid questions:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// Manifest returns the bank's manifest.
func (b *Bank) Manifest() Manifest {
	return b.manifest
}

// Lookup returns the questions for ref, or ErrNotFound.
func (b *Bank) Lookup(ref progress.ItemRef) ([]Question, error) {
	qs, ok := b.items[ref]
	if !ok {
		return nil, fmt.Errorf("%s %d: %w", ref.Kind, ref.N, ErrNotFound)
	}
	out := make([]Question, len(qs))
	copy(out, qs)
	return out, nil
}

func (b *Bank) Questions(ref progress.ItemRef) []Question {
	qs, err := b.Lookup(ref)
	if err != nil {
		return []Question{}
	}
	return qs
}

func (b *Bank) Exists(ref progress.ItemRef) bool {
	_, ok := b.items[ref]
	return ok
}

// Refs returns every item with questions, ordered by kind then number.
func (b *Bank) Refs() []progress.ItemRef {
	refs := make([]progress.ItemRef, 0, len(b.items))
	for r := range b.items {
		refs = append(refs, r)
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Kind != refs[j].Kind {
			return refs[i].Kind < refs[j].Kind
		}
		return refs[i].N < refs[j].N
	})
	return refs
}
