package service

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/degrees/internal/dataset"
	"github.com/vanshika/degrees/internal/domain"
	"github.com/vanshika/degrees/internal/metrics"
	"github.com/vanshika/degrees/internal/resolve"
	"github.com/vanshika/degrees/internal/search"
)

func testDataset() *dataset.Dataset {
	return dataset.FromRecords(
		[]domain.PersonRecord{
			{ID: "102", Name: "Kevin Bacon", Birth: 1958},
			{ID: "158", Name: "Tom Hanks", Birth: 1956},
			{ID: "641", Name: "Sally Field", Birth: 1946},
			{ID: "1697", Name: "Chris Sarandon", Birth: 1942},
			{ID: "3001", Name: "Chris Sarandon", Birth: 1970},
			{ID: "9999", Name: "Loner"},
		},
		[]domain.MovieRecord{
			{ID: "112384", Title: "Apollo 13", Year: 1995},
			{ID: "109830", Title: "Forrest Gump", Year: 1994},
		},
		[]domain.StarRecord{
			{PersonID: "102", MovieID: "112384"},
			{PersonID: "158", MovieID: "112384"},
			{PersonID: "158", MovieID: "109830"},
			{PersonID: "641", MovieID: "109830"},
		},
	)
}

func TestDegreesService_ShortestPath(t *testing.T) {
	m := metrics.New(nil)
	svc := NewDegreesService(testDataset(), m, nil)

	res, err := svc.ShortestPath(context.Background(), " 102 ", "641")
	require.NoError(t, err)
	assert.True(t, res.Connected)
	assert.Equal(t, []search.Step{
		{MovieID: "112384", PersonID: "158"},
		{MovieID: "109830", PersonID: "641"},
	}, res.Steps)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchesTotal.WithLabelValues(metrics.OutcomeConnected)))
	assert.Equal(t, 6.0, testutil.ToFloat64(m.DatasetPeople))
}

func TestDegreesService_NotConnectedAndErrors(t *testing.T) {
	m := metrics.New(nil)
	svc := NewDegreesService(testDataset(), m, nil)
	ctx := context.Background()

	res, err := svc.ShortestPath(ctx, "102", "9999")
	require.NoError(t, err)
	assert.False(t, res.Connected)

	_, err = svc.ShortestPath(ctx, "102", "nope")
	assert.ErrorIs(t, err, dataset.ErrPersonNotFound)

	_, err = svc.ShortestPath(ctx, "", "102")
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchesTotal.WithLabelValues(metrics.OutcomeNotConnected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchesTotal.WithLabelValues(metrics.OutcomeError)))
}

func TestDegreesService_ShortestPathByName(t *testing.T) {
	svc := NewDegreesService(testDataset(), nil, nil)
	ctx := context.Background()

	res, err := svc.ShortestPathByName(ctx, "kevin  bacon", "TOM HANKS")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Degrees())

	_, err = svc.ShortestPathByName(ctx, "Nobody", "Tom Hanks")
	assert.ErrorIs(t, err, dataset.ErrPersonNotFound)
	assert.True(t, resolve.IsNotFound(err))
}

func TestDegreesService_AmbiguousName(t *testing.T) {
	svc := NewDegreesService(testDataset(), nil, nil)

	_, err := svc.ResolveName(context.Background(), "Chris Sarandon")
	var ambiguous *AmbiguousNameError
	require.True(t, errors.As(err, &ambiguous))
	require.Len(t, ambiguous.Candidates, 2)
	assert.Equal(t, "1697", ambiguous.Candidates[0].ID)
	assert.Equal(t, "3001", ambiguous.Candidates[1].ID)
	assert.ErrorIs(t, err, resolve.ErrNoSelection)

	_, err = svc.ResolveName(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDegreesService_Lookups(t *testing.T) {
	svc := NewDegreesService(testDataset(), nil, nil)

	p, err := svc.Person("158")
	require.NoError(t, err)
	assert.Equal(t, "Tom Hanks", p.Name)
	assert.ElementsMatch(t, []string{"112384", "109830"}, p.Movies)

	_, err = svc.Person("0")
	assert.ErrorIs(t, err, dataset.ErrPersonNotFound)

	mv, err := svc.Movie("109830")
	require.NoError(t, err)
	assert.Equal(t, 1994, mv.Year)

	_, err = svc.Movie("0")
	assert.ErrorIs(t, err, dataset.ErrMovieNotFound)

	assert.Len(t, svc.Candidates("chris sarandon"), 2)
	assert.Equal(t, 2, svc.Stats().Movies)
}
