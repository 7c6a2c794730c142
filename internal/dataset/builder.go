package dataset

import (
	"strings"

	"github.com/vanshika/degrees/internal/domain"
)

// LoadStats counts accepted and rejected rows.
type LoadStats struct {
	People          int
	Movies          int
	Stars           int
	SkippedStars    int
	DuplicateStars  int
	DuplicatePeople int
	DuplicateMovies int
	InvalidRows     int
}

// Builder accumulates parsed rows into a Dataset. Rows must be added in
// people, movies, stars order: a star row is only accepted when both of its
// ids are already known. A Builder is not safe for concurrent use.
type Builder struct {
	ds      *Dataset
	starSet map[[2]string]struct{}
	built   bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		ds: &Dataset{
			people: make(map[string]*person),
			movies: make(map[string]*movie),
			names:  make(map[string][]string),
		},
		starSet: make(map[[2]string]struct{}),
	}
}

// AddPerson indexes a person row. The first row for an id wins; later
// duplicates and rows without an id are counted and ignored.
func (b *Builder) AddPerson(rec domain.PersonRecord) bool {
	b.assertOpen()
	rec.ID = strings.TrimSpace(rec.ID)
	if rec.ID == "" {
		b.ds.stats.InvalidRows++
		return false
	}
	if _, exists := b.ds.people[rec.ID]; exists {
		b.ds.stats.DuplicatePeople++
		return false
	}

	b.ds.people[rec.ID] = &person{record: rec}
	key := normalizeName(rec.Name)
	b.ds.names[key] = append(b.ds.names[key], rec.ID)
	b.ds.stats.People++
	return true
}

// AddMovie indexes a movie row with the same duplicate rules as AddPerson.
func (b *Builder) AddMovie(rec domain.MovieRecord) bool {
	b.assertOpen()
	rec.ID = strings.TrimSpace(rec.ID)
	if rec.ID == "" {
		b.ds.stats.InvalidRows++
		return false
	}
	if _, exists := b.ds.movies[rec.ID]; exists {
		b.ds.stats.DuplicateMovies++
		return false
	}

	b.ds.movies[rec.ID] = &movie{record: rec}
	b.ds.stats.Movies++
	return true
}

// AddStar records that a person appeared in a movie, updating both sides of
// the relation. Rows naming an unknown person or movie are skipped.
func (b *Builder) AddStar(rec domain.StarRecord) bool {
	b.assertOpen()
	personID := strings.TrimSpace(rec.PersonID)
	movieID := strings.TrimSpace(rec.MovieID)

	p, okPerson := b.ds.people[personID]
	m, okMovie := b.ds.movies[movieID]
	if !okPerson || !okMovie {
		b.ds.stats.SkippedStars++
		return false
	}

	key := [2]string{personID, movieID}
	if _, seen := b.starSet[key]; seen {
		b.ds.stats.DuplicateStars++
		return false
	}
	b.starSet[key] = struct{}{}

	p.movies = append(p.movies, movieID)
	m.stars = append(m.stars, personID)
	b.ds.stars++
	b.ds.stats.Stars++
	return true
}

// Build freezes the builder and returns the dataset. Further Add calls panic.
func (b *Builder) Build() *Dataset {
	b.assertOpen()
	b.built = true
	b.starSet = nil
	return b.ds
}

func (b *Builder) assertOpen() {
	if b.built {
		panic("dataset: builder used after Build")
	}
}

// FromRecords builds a dataset from complete tables in one call.
func FromRecords(people []domain.PersonRecord, movies []domain.MovieRecord, stars []domain.StarRecord) *Dataset {
	b := NewBuilder()
	for _, p := range people {
		b.AddPerson(p)
	}
	for _, m := range movies {
		b.AddMovie(m)
	}
	for _, s := range stars {
		b.AddStar(s)
	}
	return b.Build()
}
