package resolve

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/degrees/internal/dataset"
	"github.com/vanshika/degrees/internal/domain"
)

func directory() *dataset.Dataset {
	return dataset.FromRecords(
		[]domain.PersonRecord{
			{ID: "102", Name: "Kevin Bacon", Birth: 1958},
			{ID: "914612", Name: "Emma Watson", Birth: 1990},
			{ID: "1", Name: "Emma Watson", Birth: 1970},
			{ID: "7", Name: "Unborn", Birth: 0},
		},
		nil, nil,
	)
}

type fixedChooser struct {
	id    string
	err   error
	calls int
}

func (f *fixedChooser) Choose(context.Context, string, []domain.Person) (string, error) {
	f.calls++
	return f.id, f.err
}

type countingRecorder struct {
	seen []int
}

func (c *countingRecorder) RecordLookup(n int) {
	c.seen = append(c.seen, n)
}

func TestResolve_Single(t *testing.T) {
	chooser := &fixedChooser{}
	rec := &countingRecorder{}
	r := NewResolver(directory(), chooser).WithRecorder(rec)

	id, err := r.Resolve(context.Background(), "kevin BACON")
	require.NoError(t, err)
	assert.Equal(t, "102", id)
	assert.Zero(t, chooser.calls)
	assert.Equal(t, []int{1}, rec.seen)
}

func TestResolve_NotFound(t *testing.T) {
	r := NewResolver(directory(), nil)

	_, err := r.Resolve(context.Background(), "Nobody")
	assert.ErrorIs(t, err, dataset.ErrPersonNotFound)
	assert.True(t, IsNotFound(err))
}

func TestResolve_Ambiguous(t *testing.T) {
	ctx := context.Background()

	id, err := NewResolver(directory(), &fixedChooser{id: "1"}).Resolve(ctx, "Emma Watson")
	require.NoError(t, err)
	assert.Equal(t, "1", id)

	_, err = NewResolver(directory(), &fixedChooser{id: "102"}).Resolve(ctx, "Emma Watson")
	assert.ErrorIs(t, err, ErrNoSelection)
	assert.True(t, IsNotFound(err))

	_, err = NewResolver(directory(), nil).Resolve(ctx, "Emma Watson")
	assert.ErrorIs(t, err, ErrNoSelection)
}

func TestPromptChooser(t *testing.T) {
	var out bytes.Buffer
	chooser := NewPromptChooser(bufio.NewReader(strings.NewReader("914612\n")), &out)
	candidates := directory().ResolveName("emma watson")

	id, err := chooser.Choose(context.Background(), "Emma Watson", candidates)
	require.NoError(t, err)
	assert.Equal(t, "914612", id)

	want := "Which 'Emma Watson'?\n" +
		"ID: 914612, Name: Emma Watson, Birth: 1990\n" +
		"ID: 1, Name: Emma Watson, Birth: 1970\n" +
		"Intended Person ID: "
	assert.Equal(t, want, out.String())
}

func TestPromptChooser_EmptyInput(t *testing.T) {
	chooser := NewPromptChooser(bufio.NewReader(strings.NewReader("")), &bytes.Buffer{})
	_, err := chooser.Choose(context.Background(), "x", directory().ResolveName("unborn"))
	assert.ErrorIs(t, err, ErrNoSelection)
}

func TestPromptChooser_UnknownBirthIsBlank(t *testing.T) {
	var out bytes.Buffer
	people := []domain.Person{{ID: "7", Name: "Unborn"}, {ID: "8", Name: "Unborn", Birth: 1980}}
	chooser := NewPromptChooser(bufio.NewReader(strings.NewReader("7\n")), &out)

	id, err := chooser.Choose(context.Background(), "Unborn", people)
	require.NoError(t, err)
	assert.Equal(t, "7", id)
	assert.Contains(t, out.String(), "ID: 7, Name: Unborn, Birth: \n")
	assert.Contains(t, out.String(), "ID: 8, Name: Unborn, Birth: 1980\n")
}

func TestCandidateLabel(t *testing.T) {
	assert.Equal(t, "Kevin Bacon (born 1958) [ID 102]", candidateLabel(domain.Person{ID: "102", Name: "Kevin Bacon", Birth: 1958}))
	assert.Equal(t, "Unborn [ID 7]", candidateLabel(domain.Person{ID: "7", Name: "Unborn"}))
}
