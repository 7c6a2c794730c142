package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/degrees/internal/domain"
)

func sampleDataset() *Dataset {
	return FromRecords(
		[]domain.PersonRecord{
			{ID: "1", Name: "Alice", Birth: 1970},
			{ID: "2", Name: "Bob", Birth: 1980},
			{ID: "3", Name: "Carol"},
			{ID: "4", Name: "alice", Birth: 1990},
		},
		[]domain.MovieRecord{
			{ID: "10", Title: "First", Year: 2001},
			{ID: "20", Title: "Second", Year: 2002},
		},
		[]domain.StarRecord{
			{PersonID: "1", MovieID: "10"},
			{PersonID: "2", MovieID: "10"},
			{PersonID: "2", MovieID: "20"},
			{PersonID: "3", MovieID: "20"},
		},
	)
}

func TestDataset_MembershipIsSymmetric(t *testing.T) {
	ds := sampleDataset()

	for _, id := range []string{"1", "2", "3", "4"} {
		p, ok := ds.Person(id)
		require.True(t, ok)
		for _, movieID := range p.Movies {
			m, ok := ds.Movie(movieID)
			require.True(t, ok)
			assert.Contains(t, m.Stars, id)
		}
	}
	for _, id := range []string{"10", "20"} {
		m, _ := ds.Movie(id)
		for _, personID := range m.Stars {
			p, _ := ds.Person(personID)
			assert.Contains(t, p.Movies, id)
		}
	}
}

func TestDataset_Neighbors(t *testing.T) {
	ds := sampleDataset()

	neighbors, err := ds.Neighbors("2")
	require.NoError(t, err)
	assert.Equal(t, []Neighbor{
		{MovieID: "10", PersonID: "1"},
		{MovieID: "10", PersonID: "2"},
		{MovieID: "20", PersonID: "2"},
		{MovieID: "20", PersonID: "3"},
	}, neighbors)

	neighbors, err = ds.Neighbors("4")
	require.NoError(t, err)
	assert.Empty(t, neighbors)

	_, err = ds.Neighbors("99")
	assert.ErrorIs(t, err, ErrPersonNotFound)
}

func TestDataset_ResolveName(t *testing.T) {
	ds := sampleDataset()

	matches := ds.ResolveName("  ALICE ")
	require.Len(t, matches, 2)
	assert.Equal(t, "1", matches[0].ID)
	assert.Equal(t, 1970, matches[0].Birth)
	assert.Equal(t, "4", matches[1].ID)

	matches = ds.ResolveName("bob")
	require.Len(t, matches, 1)
	assert.Equal(t, "2", matches[0].ID)

	assert.Empty(t, ds.ResolveName("Dave"))
}

func TestBuilder_SkipsDanglingStars(t *testing.T) {
	b := NewBuilder()
	b.AddPerson(domain.PersonRecord{ID: "1", Name: "Alice"})
	b.AddMovie(domain.MovieRecord{ID: "10", Title: "First"})

	assert.True(t, b.AddStar(domain.StarRecord{PersonID: "1", MovieID: "10"}))
	assert.False(t, b.AddStar(domain.StarRecord{PersonID: "1", MovieID: "404"}))
	assert.False(t, b.AddStar(domain.StarRecord{PersonID: "404", MovieID: "10"}))
	assert.False(t, b.AddStar(domain.StarRecord{PersonID: "1", MovieID: "10"}))

	ds := b.Build()
	p, _ := ds.Person("1")
	assert.Equal(t, []string{"10"}, p.Movies)

	neighbors, err := ds.Neighbors("1")
	require.NoError(t, err)
	for _, n := range neighbors {
		assert.NotEqual(t, "404", n.MovieID)
	}

	stats := ds.LoadStats()
	assert.Equal(t, 1, stats.Stars)
	assert.Equal(t, 2, stats.SkippedStars)
	assert.Equal(t, 1, stats.DuplicateStars)
}

func TestBuilder_DuplicateAndInvalidRows(t *testing.T) {
	b := NewBuilder()
	assert.True(t, b.AddPerson(domain.PersonRecord{ID: "1", Name: "Alice"}))
	assert.False(t, b.AddPerson(domain.PersonRecord{ID: "1", Name: "Impostor"}))
	assert.False(t, b.AddPerson(domain.PersonRecord{ID: " ", Name: "Nobody"}))
	assert.True(t, b.AddMovie(domain.MovieRecord{ID: "10", Title: "First"}))
	assert.False(t, b.AddMovie(domain.MovieRecord{ID: "10", Title: "Again"}))

	ds := b.Build()
	p, _ := ds.Person("1")
	assert.Equal(t, "Alice", p.Name)
	assert.Empty(t, ds.ResolveName("Impostor"))

	stats := ds.LoadStats()
	assert.Equal(t, 1, stats.DuplicatePeople)
	assert.Equal(t, 1, stats.DuplicateMovies)
	assert.Equal(t, 1, stats.InvalidRows)
	assert.Equal(t, Stats{People: 1, Movies: 1, Stars: 0, Names: 1}, ds.Stats())
}

func TestBuilder_PanicsAfterBuild(t *testing.T) {
	b := NewBuilder()
	b.Build()
	assert.Panics(t, func() {
		b.AddPerson(domain.PersonRecord{ID: "1"})
	})
}

func TestDataset_ReturnedSlicesAreCopies(t *testing.T) {
	ds := sampleDataset()
	p, _ := ds.Person("2")
	p.Movies[0] = "mutated"

	again, _ := ds.Person("2")
	assert.Equal(t, "10", again.Movies[0])
}
