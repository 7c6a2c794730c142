package dataset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vanshika/degrees/internal/domain"
)

// ErrPersonNotFound indicates a person id or name is not present in the dataset.
var ErrPersonNotFound = errors.New("person not found")

// ErrMovieNotFound indicates a movie id is not present in the dataset.
var ErrMovieNotFound = errors.New("movie not found")

// Neighbor pairs a co-star with the movie that connects them.
type Neighbor struct {
	MovieID  string
	PersonID string
}

// Stats summarises the size of a built dataset.
type Stats struct {
	People int
	Movies int
	Stars  int
	Names  int
}

// Dataset holds the people, movies and cast relation indexes. It is read-only
// once built and safe for concurrent use.
type Dataset struct {
	people map[string]*person
	movies map[string]*movie
	names  map[string][]string
	stars  int
	stats  LoadStats
}

type person struct {
	record domain.PersonRecord
	movies []string
}

type movie struct {
	record domain.MovieRecord
	stars  []string
}

// Neighbors returns every (movie, person) pair reachable from personID through
// one shared movie. The person itself is included for each of their movies.
// Order follows load order: the person's movies, then each movie's cast.
func (d *Dataset) Neighbors(personID string) ([]Neighbor, error) {
	p, ok := d.people[personID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPersonNotFound, personID)
	}

	var size int
	for _, movieID := range p.movies {
		size += len(d.movies[movieID].stars)
	}

	neighbors := make([]Neighbor, 0, size)
	for _, movieID := range p.movies {
		for _, starID := range d.movies[movieID].stars {
			neighbors = append(neighbors, Neighbor{MovieID: movieID, PersonID: starID})
		}
	}
	return neighbors, nil
}

// ResolveName returns every person whose name matches, ignoring case and
// surrounding whitespace. The slice is empty when nobody matches.
func (d *Dataset) ResolveName(name string) []domain.Person {
	ids := d.names[normalizeName(name)]
	result := make([]domain.Person, 0, len(ids))
	for _, id := range ids {
		result = append(result, d.people[id].toDomain())
	}
	return result
}

// Person looks up a person by id.
func (d *Dataset) Person(id string) (domain.Person, bool) {
	p, ok := d.people[id]
	if !ok {
		return domain.Person{}, false
	}
	return p.toDomain(), true
}

// Movie looks up a movie by id.
func (d *Dataset) Movie(id string) (domain.Movie, bool) {
	m, ok := d.movies[id]
	if !ok {
		return domain.Movie{}, false
	}
	return m.toDomain(), true
}

// HasPerson reports whether id is a known person.
func (d *Dataset) HasPerson(id string) bool {
	_, ok := d.people[id]
	return ok
}

// Stats reports entity counts.
func (d *Dataset) Stats() Stats {
	return Stats{
		People: len(d.people),
		Movies: len(d.movies),
		Stars:  d.stars,
		Names:  len(d.names),
	}
}

// LoadStats reports what was accepted and skipped while the dataset was built.
func (d *Dataset) LoadStats() LoadStats {
	return d.stats
}

func (p *person) toDomain() domain.Person {
	return domain.Person{
		ID:     p.record.ID,
		Name:   p.record.Name,
		Birth:  p.record.Birth,
		Movies: append([]string(nil), p.movies...),
	}
}

func (m *movie) toDomain() domain.Movie {
	return domain.Movie{
		ID:    m.record.ID,
		Title: m.record.Title,
		Year:  m.record.Year,
		Stars: append([]string(nil), m.stars...),
	}
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
