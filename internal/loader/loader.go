package loader

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vanshika/degrees/internal/dataset"
	"github.com/vanshika/degrees/internal/domain"
)

// Tables holds the three parsed source tables.
type Tables struct {
	People []domain.PersonRecord
	Movies []domain.MovieRecord
	Stars  []domain.StarRecord
}

// Source exports the dataset tables from an external store.
type Source interface {
	ExportPeople(ctx context.Context) ([]domain.PersonRecord, error)
	ExportMovies(ctx context.Context) ([]domain.MovieRecord, error)
	ExportStars(ctx context.Context) ([]domain.StarRecord, error)
}

// Loader builds datasets from CSV directories or a graph source.
type Loader struct {
	logger *slog.Logger
}

// New returns a Loader that reports load statistics through logger.
func New(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{logger: logger.With("component", "loader")}
}

// ReadDirectory parses people.csv, movies.csv and stars.csv from dir. The
// three files are parsed concurrently.
func ReadDirectory(ctx context.Context, dir string) (Tables, error) {
	var tables Tables
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := readFile(gctx, filepath.Join(dir, PeopleFile), ReadPeople)
		tables.People = rows
		return err
	})
	g.Go(func() error {
		rows, err := readFile(gctx, filepath.Join(dir, MoviesFile), ReadMovies)
		tables.Movies = rows
		return err
	})
	g.Go(func() error {
		rows, err := readFile(gctx, filepath.Join(dir, StarsFile), ReadStars)
		tables.Stars = rows
		return err
	})

	if err := g.Wait(); err != nil {
		return Tables{}, err
	}
	return tables, nil
}

// ReadSource exports all three tables from src.
func ReadSource(ctx context.Context, src Source) (Tables, error) {
	people, err := src.ExportPeople(ctx)
	if err != nil {
		return Tables{}, fmt.Errorf("export people: %w", err)
	}
	movies, err := src.ExportMovies(ctx)
	if err != nil {
		return Tables{}, fmt.Errorf("export movies: %w", err)
	}
	stars, err := src.ExportStars(ctx)
	if err != nil {
		return Tables{}, fmt.Errorf("export stars: %w", err)
	}
	return Tables{People: people, Movies: movies, Stars: stars}, nil
}

// LoadDirectory builds a dataset from the CSV tables in dir.
func (l *Loader) LoadDirectory(ctx context.Context, dir string) (*dataset.Dataset, error) {
	start := time.Now()
	tables, err := ReadDirectory(ctx, dir)
	if err != nil {
		return nil, err
	}
	ds := l.Build(tables)
	l.logStats(ds, "csv", dir, time.Since(start))
	return ds, nil
}

// LoadSource builds a dataset from the tables exported by src.
func (l *Loader) LoadSource(ctx context.Context, src Source) (*dataset.Dataset, error) {
	start := time.Now()
	tables, err := ReadSource(ctx, src)
	if err != nil {
		return nil, err
	}
	ds := l.Build(tables)
	l.logStats(ds, "graph", "", time.Since(start))
	return ds, nil
}

// Build applies the tables to a fresh dataset in people, movies, stars order.
func (l *Loader) Build(tables Tables) *dataset.Dataset {
	return dataset.FromRecords(tables.People, tables.Movies, tables.Stars)
}

func (l *Loader) logStats(ds *dataset.Dataset, source, location string, took time.Duration) {
	stats := ds.LoadStats()
	l.logger.Info("dataset loaded",
		"source", source,
		"location", location,
		"people", stats.People,
		"movies", stats.Movies,
		"stars", stats.Stars,
		"duration", took.String(),
	)
	if stats.SkippedStars > 0 || stats.DuplicatePeople > 0 || stats.DuplicateMovies > 0 || stats.InvalidRows > 0 {
		l.logger.Debug("rows skipped during load",
			"danglingStars", stats.SkippedStars,
			"duplicateStars", stats.DuplicateStars,
			"duplicatePeople", stats.DuplicatePeople,
			"duplicateMovies", stats.DuplicateMovies,
			"invalidRows", stats.InvalidRows,
		)
	}
}
