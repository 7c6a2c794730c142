package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vanshika/degrees/internal/domain"
)

// File names expected inside a dataset directory.
const (
	PeopleFile = "people.csv"
	MoviesFile = "movies.csv"
	StarsFile  = "stars.csv"
)

// ErrMissingColumn indicates a table header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// ReadPeople parses a people table with id, name and birth columns.
func ReadPeople(ctx context.Context, r io.Reader) ([]domain.PersonRecord, error) {
	var people []domain.PersonRecord
	err := readTable(ctx, r, []string{"id", "name", "birth"}, func(row []string) {
		people = append(people, domain.PersonRecord{
			ID:    strings.TrimSpace(row[0]),
			Name:  row[1],
			Birth: parseYear(row[2]),
		})
	})
	return people, err
}

// ReadMovies parses a movies table with id, title and year columns.
func ReadMovies(ctx context.Context, r io.Reader) ([]domain.MovieRecord, error) {
	var movies []domain.MovieRecord
	err := readTable(ctx, r, []string{"id", "title", "year"}, func(row []string) {
		movies = append(movies, domain.MovieRecord{
			ID:    strings.TrimSpace(row[0]),
			Title: row[1],
			Year:  parseYear(row[2]),
		})
	})
	return movies, err
}

// ReadStars parses a stars table with person_id and movie_id columns.
func ReadStars(ctx context.Context, r io.Reader) ([]domain.StarRecord, error) {
	var stars []domain.StarRecord
	err := readTable(ctx, r, []string{"person_id", "movie_id"}, func(row []string) {
		stars = append(stars, domain.StarRecord{
			PersonID: strings.TrimSpace(row[0]),
			MovieID:  strings.TrimSpace(row[1]),
		})
	})
	return stars, err
}

// readTable maps the header onto the wanted columns and calls emit with the
// selected fields of every row, in the order the columns were requested.
func readTable(ctx context.Context, r io.Reader, columns []string, emit func(row []string)) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("read header: %w", io.ErrUnexpectedEOF)
		}
		return fmt.Errorf("read header: %w", err)
	}

	positions := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimPrefix(name, "\ufeff")
		positions[strings.ToLower(strings.TrimSpace(name))] = i
	}

	index := make([]int, len(columns))
	for i, col := range columns {
		pos, ok := positions[col]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
		index[i] = pos
	}

	selected := make([]string, len(columns))
	for row := 1; ; row++ {
		if row%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read row %d: %w", row, err)
		}

		for i, pos := range index {
			if pos < len(record) {
				selected[i] = record[pos]
			} else {
				selected[i] = ""
			}
		}
		emit(selected)
	}
}

func parseYear(value string) int {
	year, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || year < 0 {
		return 0
	}
	return year
}

func readFile[T any](ctx context.Context, path string, parse func(context.Context, io.Reader) ([]T, error)) ([]T, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	rows, err := parse(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return rows, nil
}
