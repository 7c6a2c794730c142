package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/vanshika/degrees/internal/generator"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		people          = flag.Int("people", cfg.NumPeople, "number of people to generate")
		movies          = flag.Int("movies", cfg.NumMovies, "number of movies to generate")
		minCast         = flag.Int("min-cast", cfg.MinCast, "minimum stars per movie")
		maxCast         = flag.Int("max-cast", cfg.MaxCast, "maximum stars per movie")
		recurringChance = flag.Float64("recurring-chance", cfg.RecurringChance, "probability a cast slot reuses someone who already starred")
		unknownBirth    = flag.Float64("unknown-birth-chance", cfg.UnknownBirthChance, "probability a person has no birth year")
		seed            = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		outputDir       = flag.String("output-dir", "generated", "directory to write people.csv, movies.csv and stars.csv")
	)
	flag.Parse()

	genCfg := generator.Config{
		NumPeople:          *people,
		NumMovies:          *movies,
		MinCast:            *minCast,
		MaxCast:            *maxCast,
		RecurringChance:    clampProbability(*recurringChance),
		UnknownBirthChance: clampProbability(*unknownBirth),
		Seed:               *seed,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	tables, err := generator.New(genCfg).Generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	if err := generator.WriteDataset(tables, *outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "Generated %d people, %d movies and %d stars into %s\n",
		len(tables.People), len(tables.Movies), len(tables.Stars), *outputDir)
}

func clampProbability(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
