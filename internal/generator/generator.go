package generator

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/vanshika/degrees/internal/domain"
	"github.com/vanshika/degrees/internal/loader"
)

// Generator produces synthetic people, movies and cast tables.
type Generator struct {
	cfg           Config
	rand          *rand.Rand
	nameFragments nameFragments
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	def := DefaultConfig()
	if cfg.NumPeople <= 0 {
		cfg.NumPeople = def.NumPeople
	}
	if cfg.NumMovies <= 0 {
		cfg.NumMovies = def.NumMovies
	}
	if cfg.MinCast <= 0 {
		cfg.MinCast = def.MinCast
	}
	if cfg.MaxCast < cfg.MinCast {
		cfg.MaxCast = cfg.MinCast
	}
	if cfg.RecurringChance < 0 {
		cfg.RecurringChance = 0
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:           cfg,
		rand:          rand.New(rand.NewSource(cfg.Seed)),
		nameFragments: defaultNameFragments(),
	}
}

// Generate synthesises the three tables. Equal seeds give equal output.
// It respects context cancellation.
func (g *Generator) Generate(ctx context.Context) (loader.Tables, error) {
	people := make([]domain.PersonRecord, g.cfg.NumPeople)
	for i := range people {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return loader.Tables{}, err
			}
		}
		birth := 1920 + g.rand.Intn(85)
		if g.rand.Float64() < g.cfg.UnknownBirthChance {
			birth = 0
		}
		people[i] = domain.PersonRecord{
			ID:    strconv.Itoa(100 + i),
			Name:  g.randomFullName(),
			Birth: birth,
		}
	}

	movies := make([]domain.MovieRecord, g.cfg.NumMovies)
	var stars []domain.StarRecord
	var appeared []int
	seen := make(map[int]bool, g.cfg.NumPeople)

	for i := range movies {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return loader.Tables{}, err
			}
		}
		movieID := strconv.Itoa(100000 + i)
		movies[i] = domain.MovieRecord{
			ID:    movieID,
			Title: g.randomTitle(),
			Year:  1930 + g.rand.Intn(95),
		}

		size := g.cfg.MinCast + g.rand.Intn(g.cfg.MaxCast-g.cfg.MinCast+1)
		cast := make(map[int]bool, size)
		for len(cast) < min(size, g.cfg.NumPeople) {
			idx := -1
			if len(appeared) > 0 && g.rand.Float64() < g.cfg.RecurringChance {
				if c := appeared[g.rand.Intn(len(appeared))]; !cast[c] {
					idx = c
				}
			}
			if idx < 0 {
				idx = g.rand.Intn(g.cfg.NumPeople)
			}
			if cast[idx] {
				continue
			}
			cast[idx] = true
			if !seen[idx] {
				seen[idx] = true
				appeared = append(appeared, idx)
			}
			stars = append(stars, domain.StarRecord{PersonID: people[idx].ID, MovieID: movieID})
		}
	}

	return loader.Tables{People: people, Movies: movies, Stars: stars}, nil
}

func (g *Generator) randomFullName() string {
	return fmt.Sprintf("%s %s", g.nameFragments.first[g.rand.Intn(len(g.nameFragments.first))],
		g.nameFragments.last[g.rand.Intn(len(g.nameFragments.last))])
}

func (g *Generator) randomTitle() string {
	adj := g.nameFragments.adjectives[g.rand.Intn(len(g.nameFragments.adjectives))]
	noun := g.nameFragments.nouns[g.rand.Intn(len(g.nameFragments.nouns))]
	if g.rand.Intn(4) == 0 {
		return fmt.Sprintf("The %s %s %d", adj, noun, 2+g.rand.Intn(3))
	}
	return fmt.Sprintf("The %s %s", adj, noun)
}

type nameFragments struct {
	first      []string
	last       []string
	adjectives []string
	nouns      []string
}

func defaultNameFragments() nameFragments {
	return nameFragments{
		first:      []string{"Jane", "John", "Alex", "Priya", "Liu", "Maria", "Omar", "Sofia", "Noah", "Emma", "Lucas", "Mia", "Ava", "Ethan", "Zara", "Kevin", "Sally", "Tom", "Chris", "Meryl"},
		last:       []string{"Doe", "Smith", "Chen", "Patel", "Garcia", "Khan", "Kim", "Ivanov", "Nguyen", "Silva", "Brown", "Lee", "Bacon", "Field", "Hanks", "Streep"},
		adjectives: []string{"Silent", "Last", "Hidden", "Golden", "Broken", "Endless", "Crimson", "Lost", "Distant", "Wild"},
		nouns:      []string{"Harbor", "Frontier", "Garden", "Signal", "Empire", "River", "Letter", "Summer", "Station", "Crown"},
	}
}
