package resolve

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vanshika/degrees/internal/dataset"
	"github.com/vanshika/degrees/internal/domain"
)

// ErrNoSelection indicates an ambiguous name was not narrowed to one person.
var ErrNoSelection = errors.New("no valid person selected")

// Directory answers name lookups.
type Directory interface {
	ResolveName(name string) []domain.Person
}

// Chooser picks one person among several sharing a name. It returns
// ErrNoSelection when no valid choice is made.
type Chooser interface {
	Choose(ctx context.Context, name string, candidates []domain.Person) (string, error)
}

// LookupRecorder observes how many candidates each lookup produced.
type LookupRecorder interface {
	RecordLookup(candidates int)
}

// Resolver maps a typed name to a single person id.
type Resolver struct {
	dir      Directory
	chooser  Chooser
	recorder LookupRecorder
}

// NewResolver returns a Resolver. A nil chooser makes every ambiguous name
// fail with ErrNoSelection.
func NewResolver(dir Directory, chooser Chooser) *Resolver {
	return &Resolver{dir: dir, chooser: chooser}
}

// WithRecorder attaches a lookup recorder.
func (r *Resolver) WithRecorder(rec LookupRecorder) *Resolver {
	r.recorder = rec
	return r
}

// Resolve returns the id of the person called name.
func (r *Resolver) Resolve(ctx context.Context, name string) (string, error) {
	candidates := r.dir.ResolveName(name)
	if r.recorder != nil {
		r.recorder.RecordLookup(len(candidates))
	}

	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("%q: %w", strings.TrimSpace(name), dataset.ErrPersonNotFound)
	case 1:
		return candidates[0].ID, nil
	}

	if r.chooser == nil {
		return "", fmt.Errorf("%q matches %d people: %w", strings.TrimSpace(name), len(candidates), ErrNoSelection)
	}
	id, err := r.chooser.Choose(ctx, name, candidates)
	if err != nil {
		return "", err
	}
	for _, c := range candidates {
		if c.ID == id {
			return id, nil
		}
	}
	return "", fmt.Errorf("%q is not a candidate: %w", id, ErrNoSelection)
}

// IsNotFound reports whether err means the person could not be identified,
// either because nobody matched or because an ambiguity was left unresolved.
func IsNotFound(err error) bool {
	return errors.Is(err, dataset.ErrPersonNotFound) || errors.Is(err, ErrNoSelection)
}

// formatBirth prints an unknown birth year as blank. The loader stores a
// missing or unparseable birth column as 0, so the raw text is not kept.
func formatBirth(birth int) string {
	if birth <= 0 {
		return ""
	}
	return fmt.Sprintf("%d", birth)
}
