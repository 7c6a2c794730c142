package generator

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/vanshika/degrees/internal/loader"
)

// WriteDataset writes people.csv, movies.csv and stars.csv under dir in the
// layout the loader reads.
func WriteDataset(tables loader.Tables, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	people := make([][]string, 0, len(tables.People))
	for _, p := range tables.People {
		people = append(people, []string{p.ID, p.Name, yearField(p.Birth)})
	}
	if err := writeCSV(filepath.Join(dir, loader.PeopleFile), []string{"id", "name", "birth"}, people); err != nil {
		return err
	}

	movies := make([][]string, 0, len(tables.Movies))
	for _, m := range tables.Movies {
		movies = append(movies, []string{m.ID, m.Title, yearField(m.Year)})
	}
	if err := writeCSV(filepath.Join(dir, loader.MoviesFile), []string{"id", "title", "year"}, movies); err != nil {
		return err
	}

	stars := make([][]string, 0, len(tables.Stars))
	for _, s := range tables.Stars {
		stars = append(stars, []string{s.PersonID, s.MovieID})
	}
	return writeCSV(filepath.Join(dir, loader.StarsFile), []string{"person_id", "movie_id"}, stars)
}

func writeCSV(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header for %s: %w", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write rows for %s: %w", path, err)
	}
	return file.Close()
}

func yearField(year int) string {
	if year <= 0 {
		return ""
	}
	return strconv.Itoa(year)
}
