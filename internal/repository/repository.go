package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vanshika/degrees/internal/domain"
	"github.com/vanshika/degrees/internal/graph"
)

// ErrEmptyBatch is returned when an upsert receives no rows.
var ErrEmptyBatch = errors.New("empty batch")

// Repository stores the people/movies/stars tables as a property graph:
// (:Person)-[:STARRED_IN]->(:Movie).
type Repository struct {
	client graph.Client
}

// New instantiates a Repository backed by the supplied graph client.
func New(client graph.Client) *Repository {
	return &Repository{client: client}
}

// EnsureSchema creates the uniqueness constraints the upserts rely on.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaCypher {
		if _, err := r.client.ExecuteWrite(ctx, stmt, nil); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// UpsertPeople merges a batch of person nodes.
func (r *Repository) UpsertPeople(ctx context.Context, people []domain.PersonRecord) error {
	if len(people) == 0 {
		return ErrEmptyBatch
	}
	rows := make([]map[string]any, 0, len(people))
	for _, p := range people {
		if strings.TrimSpace(p.ID) == "" {
			return errors.New("person id is required")
		}
		rows = append(rows, map[string]any{
			"id":        p.ID,
			"name":      p.Name,
			"nameLower": strings.ToLower(strings.TrimSpace(p.Name)),
			"birth":     p.Birth,
		})
	}
	if _, err := r.client.ExecuteWrite(ctx, upsertPeopleCypher, map[string]any{"rows": rows}); err != nil {
		return fmt.Errorf("upsert %d people: %w", len(rows), err)
	}
	return nil
}

// UpsertMovies merges a batch of movie nodes.
func (r *Repository) UpsertMovies(ctx context.Context, movies []domain.MovieRecord) error {
	if len(movies) == 0 {
		return ErrEmptyBatch
	}
	rows := make([]map[string]any, 0, len(movies))
	for _, m := range movies {
		if strings.TrimSpace(m.ID) == "" {
			return errors.New("movie id is required")
		}
		rows = append(rows, map[string]any{
			"id":    m.ID,
			"title": m.Title,
			"year":  m.Year,
		})
	}
	if _, err := r.client.ExecuteWrite(ctx, upsertMoviesCypher, map[string]any{"rows": rows}); err != nil {
		return fmt.Errorf("upsert %d movies: %w", len(rows), err)
	}
	return nil
}

// UpsertStars merges STARRED_IN edges. Rows whose person or movie node does
// not exist match nothing and are dropped by the query itself.
func (r *Repository) UpsertStars(ctx context.Context, stars []domain.StarRecord) error {
	if len(stars) == 0 {
		return ErrEmptyBatch
	}
	rows := make([]map[string]any, 0, len(stars))
	for _, s := range stars {
		rows = append(rows, map[string]any{
			"personId": s.PersonID,
			"movieId":  s.MovieID,
		})
	}
	if _, err := r.client.ExecuteWrite(ctx, upsertStarsCypher, map[string]any{"rows": rows}); err != nil {
		return fmt.Errorf("upsert %d stars: %w", len(rows), err)
	}
	return nil
}

// ExportPeople returns every person ordered by id.
func (r *Repository) ExportPeople(ctx context.Context) ([]domain.PersonRecord, error) {
	res, err := r.client.ExecuteRead(ctx, exportPeopleCypher, nil)
	if err != nil {
		return nil, fmt.Errorf("export people query: %w", err)
	}
	people := make([]domain.PersonRecord, 0, len(res.Records))
	for _, record := range res.Records {
		people = append(people, domain.PersonRecord{
			ID:    toString(record["id"]),
			Name:  toString(record["name"]),
			Birth: toInt(record["birth"]),
		})
	}
	return people, nil
}

// ExportMovies returns every movie ordered by id.
func (r *Repository) ExportMovies(ctx context.Context) ([]domain.MovieRecord, error) {
	res, err := r.client.ExecuteRead(ctx, exportMoviesCypher, nil)
	if err != nil {
		return nil, fmt.Errorf("export movies query: %w", err)
	}
	movies := make([]domain.MovieRecord, 0, len(res.Records))
	for _, record := range res.Records {
		movies = append(movies, domain.MovieRecord{
			ID:    toString(record["id"]),
			Title: toString(record["title"]),
			Year:  toInt(record["year"]),
		})
	}
	return movies, nil
}

// ExportStars returns every STARRED_IN edge ordered by person then movie.
func (r *Repository) ExportStars(ctx context.Context) ([]domain.StarRecord, error) {
	res, err := r.client.ExecuteRead(ctx, exportStarsCypher, nil)
	if err != nil {
		return nil, fmt.Errorf("export stars query: %w", err)
	}
	stars := make([]domain.StarRecord, 0, len(res.Records))
	for _, record := range res.Records {
		stars = append(stars, domain.StarRecord{
			PersonID: toString(record["personId"]),
			MovieID:  toString(record["movieId"]),
		})
	}
	return stars, nil
}

// Counts returns node and edge totals stored in the graph.
func (r *Repository) Counts(ctx context.Context) (people, movies, stars int64, err error) {
	res, err := r.client.ExecuteRead(ctx, countsCypher, nil)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("counts query: %w", err)
	}
	if len(res.Records) == 0 {
		return 0, 0, 0, nil
	}
	rec := res.Records[0]
	return int64(toInt(rec["people"])), int64(toInt(rec["movies"])), int64(toInt(rec["stars"])), nil
}

func toString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprint(v)
	}
}

func toInt(val any) int {
	switch v := val.(type) {
	case int64:
		return int(v)
	case int:
		return v
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

var schemaCypher = []string{
	`CREATE CONSTRAINT person_id IF NOT EXISTS FOR (p:Person) REQUIRE p.id IS UNIQUE`,
	`CREATE CONSTRAINT movie_id IF NOT EXISTS FOR (m:Movie) REQUIRE m.id IS UNIQUE`,
	`CREATE INDEX person_name_lower IF NOT EXISTS FOR (p:Person) ON (p.nameLower)`,
}

const upsertPeopleCypher = `
UNWIND $rows AS row
MERGE (p:Person {id: row.id})
SET p.name = row.name,
    p.nameLower = row.nameLower,
    p.birth = row.birth
`

const upsertMoviesCypher = `
UNWIND $rows AS row
MERGE (m:Movie {id: row.id})
SET m.title = row.title,
    m.year = row.year
`

const upsertStarsCypher = `
UNWIND $rows AS row
MATCH (p:Person {id: row.personId})
MATCH (m:Movie {id: row.movieId})
MERGE (p)-[:STARRED_IN]->(m)
`

const exportPeopleCypher = `
MATCH (p:Person)
RETURN p.id AS id, p.name AS name, p.birth AS birth
ORDER BY p.id
`

const exportMoviesCypher = `
MATCH (m:Movie)
RETURN m.id AS id, m.title AS title, m.year AS year
ORDER BY m.id
`

const exportStarsCypher = `
MATCH (p:Person)-[:STARRED_IN]->(m:Movie)
RETURN p.id AS personId, m.id AS movieId
ORDER BY personId, movieId
`

const countsCypher = `
CALL { MATCH (p:Person) RETURN count(p) AS people }
CALL { MATCH (m:Movie) RETURN count(m) AS movies }
CALL { MATCH (:Person)-[s:STARRED_IN]->(:Movie) RETURN count(s) AS stars }
RETURN people, movies, stars
`
