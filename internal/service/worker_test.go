package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/degrees/internal/dataset"
	"github.com/vanshika/degrees/internal/domain"
	"github.com/vanshika/degrees/internal/graph"
	"github.com/vanshika/degrees/internal/loader"
	"github.com/vanshika/degrees/internal/repository"
)

type stubWriter struct {
	mu        sync.Mutex
	order     []string
	people    int
	movies    int
	stars     int
	schemaErr error
	starErr   error
}

func (s *stubWriter) EnsureSchema(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = append(s.order, "schema")
	return s.schemaErr
}

func (s *stubWriter) UpsertPeople(_ context.Context, people []domain.PersonRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = append(s.order, "people")
	s.people += len(people)
	return nil
}

func (s *stubWriter) UpsertMovies(_ context.Context, movies []domain.MovieRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = append(s.order, "movies")
	s.movies += len(movies)
	return nil
}

func (s *stubWriter) UpsertStars(_ context.Context, stars []domain.StarRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = append(s.order, "stars")
	if s.starErr != nil {
		return s.starErr
	}
	s.stars += len(stars)
	return nil
}

func tables(people, movies, stars int) loader.Tables {
	var t loader.Tables
	for i := 0; i < people; i++ {
		t.People = append(t.People, domain.PersonRecord{ID: fmt.Sprint(i), Name: fmt.Sprintf("Person %d", i)})
	}
	for i := 0; i < movies; i++ {
		t.Movies = append(t.Movies, domain.MovieRecord{ID: fmt.Sprint(i), Title: fmt.Sprintf("Movie %d", i)})
	}
	for i := 0; i < stars; i++ {
		t.Stars = append(t.Stars, domain.StarRecord{PersonID: fmt.Sprint(i % people), MovieID: fmt.Sprint((i / people) % movies)})
	}
	return t
}

func TestBulkIngestor_WritesInBatches(t *testing.T) {
	w := &stubWriter{}
	ing := NewBulkIngestor(w, 3, 4, nil)

	report, err := ing.Ingest(context.Background(), tables(10, 5, 9))
	require.NoError(t, err)
	assert.Equal(t, IngestReport{People: 10, Movies: 5, Stars: 9, Batches: 3 + 2 + 3}, report)
	assert.Equal(t, 10, w.people)
	assert.Equal(t, 5, w.movies)
	assert.Equal(t, 9, w.stars)

	// Nodes must exist before edges are merged.
	lastNode, firstStar := -1, len(w.order)
	for i, op := range w.order {
		switch op {
		case "people", "movies":
			lastNode = i
		case "stars":
			firstStar = min(firstStar, i)
		}
	}
	assert.Equal(t, "schema", w.order[0])
	assert.Less(t, lastNode, firstStar)
}

func TestBulkIngestor_AggregatesErrors(t *testing.T) {
	boom := errors.New("write failed")
	w := &stubWriter{starErr: boom}
	ing := NewBulkIngestor(w, 2, 2, nil)

	_, err := ing.Ingest(context.Background(), tables(3, 2, 6))
	require.Error(t, err)
	var taskErr *TaskError
	require.True(t, errors.As(err, &taskErr))
	assert.Len(t, taskErr.Errors, 3)
	assert.ErrorIs(t, taskErr.Errors[0], boom)
}

type recordingWriter struct {
	stubWriter
	peopleRows []domain.PersonRecord
	movieRows  []domain.MovieRecord
	starRows   []domain.StarRecord
}

func (r *recordingWriter) UpsertPeople(ctx context.Context, people []domain.PersonRecord) error {
	r.mu.Lock()
	r.peopleRows = append(r.peopleRows, people...)
	r.mu.Unlock()
	return r.stubWriter.UpsertPeople(ctx, people)
}

func (r *recordingWriter) UpsertMovies(ctx context.Context, movies []domain.MovieRecord) error {
	r.mu.Lock()
	r.movieRows = append(r.movieRows, movies...)
	r.mu.Unlock()
	return r.stubWriter.UpsertMovies(ctx, movies)
}

func (r *recordingWriter) UpsertStars(ctx context.Context, stars []domain.StarRecord) error {
	r.mu.Lock()
	r.starRows = append(r.starRows, stars...)
	r.mu.Unlock()
	return r.stubWriter.UpsertStars(ctx, stars)
}

func TestBulkIngestor_AppliesDatasetRowRules(t *testing.T) {
	in := loader.Tables{
		People: []domain.PersonRecord{
			{ID: "102", Name: "Kevin Bacon", Birth: 1958},
			{ID: " ", Name: "No Id"},
			{ID: "158", Name: "Tom Hanks", Birth: 1956},
			{ID: "102", Name: "Kevin Bacon Again", Birth: 1999},
		},
		Movies: []domain.MovieRecord{
			{ID: "112384", Title: "Apollo 13", Year: 1995},
			{ID: "", Title: "Untitled"},
			{ID: "112384", Title: "Apollo 13 (Remaster)", Year: 2020},
		},
		Stars: []domain.StarRecord{
			{PersonID: "102", MovieID: "112384"},
			{PersonID: "158", MovieID: "112384"},
			{PersonID: "102", MovieID: "112384"},
			{PersonID: "999", MovieID: "112384"},
		},
	}
	w := &recordingWriter{}

	report, err := NewBulkIngestor(w, 2, 1, nil).Ingest(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, IngestReport{
		People: 2, Movies: 1, Stars: 2, Batches: 2 + 1 + 2,
		InvalidRows: 2, DuplicatePeople: 1, DuplicateMovies: 1, DuplicateStars: 1, SkippedStars: 1,
	}, report)

	assert.ElementsMatch(t, []domain.PersonRecord{
		{ID: "102", Name: "Kevin Bacon", Birth: 1958},
		{ID: "158", Name: "Tom Hanks", Birth: 1956},
	}, w.peopleRows)
	assert.Equal(t, []domain.MovieRecord{{ID: "112384", Title: "Apollo 13", Year: 1995}}, w.movieRows)
	assert.ElementsMatch(t, []domain.StarRecord{
		{PersonID: "102", MovieID: "112384"},
		{PersonID: "158", MovieID: "112384"},
	}, w.starRows)

	// The ingested rows describe the same dataset a CSV load builds.
	stats := dataset.FromRecords(in.People, in.Movies, in.Stars).LoadStats()
	assert.Equal(t, dataset.LoadStats{
		People:          report.People,
		Movies:          report.Movies,
		Stars:           report.Stars,
		SkippedStars:    report.SkippedStars,
		DuplicateStars:  report.DuplicateStars,
		DuplicatePeople: report.DuplicatePeople,
		DuplicateMovies: report.DuplicateMovies,
		InvalidRows:     report.InvalidRows,
	}, stats)
}

func TestBulkIngestor_BlankIDRowsDoNotFailRepositoryBatch(t *testing.T) {
	client := graph.NewMemoryClient()
	in := loader.Tables{
		People: []domain.PersonRecord{{ID: "1", Name: "Ann"}, {ID: "", Name: "Blank"}, {ID: "2", Name: "Ben"}},
		Movies: []domain.MovieRecord{{ID: "10", Title: "Film"}},
		Stars:  []domain.StarRecord{{PersonID: "1", MovieID: "10"}, {PersonID: "2", MovieID: "10"}},
	}

	report, err := NewBulkIngestor(repository.New(client), 2, 500, nil).Ingest(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 2, report.People)
	assert.Equal(t, 1, report.InvalidRows)
	assert.Equal(t, 2, report.Stars)
}

func TestBulkIngestor_SchemaFailureStops(t *testing.T) {
	boom := errors.New("no schema")
	w := &stubWriter{schemaErr: boom}

	_, err := NewBulkIngestor(w, 1, 10, nil).Ingest(context.Background(), tables(3, 3, 3))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"schema"}, w.order)
}

func TestBulkIngestor_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewBulkIngestor(&stubWriter{}, 2, 1, nil).Ingest(ctx, tables(5, 1, 1))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestChunk(t *testing.T) {
	assert.Nil(t, chunk([]int{}, 3))
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, chunk([]int{1, 2, 3, 4, 5}, 2))
}
