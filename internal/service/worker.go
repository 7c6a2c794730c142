package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/vanshika/degrees/internal/domain"
	"github.com/vanshika/degrees/internal/loader"
)

// TaskError accumulates multiple errors produced during bulk ingestion.
type TaskError struct {
	Errors []error
}

func (e *TaskError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := "multiple errors:"
	for _, err := range e.Errors {
		msg += " " + err.Error() + ";"
	}
	return msg
}

func (e *TaskError) append(err error) {
	if err == nil {
		return
	}
	e.Errors = append(e.Errors, err)
}

func (e *TaskError) asError() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// DatasetWriter is the storage contract required by the bulk ingestor.
type DatasetWriter interface {
	EnsureSchema(ctx context.Context) error
	UpsertPeople(ctx context.Context, people []domain.PersonRecord) error
	UpsertMovies(ctx context.Context, movies []domain.MovieRecord) error
	UpsertStars(ctx context.Context, stars []domain.StarRecord) error
}

// IngestReport counts the rows sent to the store and the rows dropped
// before any batch was written.
type IngestReport struct {
	People  int
	Movies  int
	Stars   int
	Batches int

	InvalidRows     int
	DuplicatePeople int
	DuplicateMovies int
	DuplicateStars  int
	SkippedStars    int
}

// BulkIngestor writes dataset tables to a graph store in batches using a worker pool.
type BulkIngestor struct {
	writer    DatasetWriter
	workers   int
	batchSize int
	logger    *slog.Logger
}

// NewBulkIngestor creates a new BulkIngestor instance with the provided concurrency.
func NewBulkIngestor(writer DatasetWriter, workers, batchSize int, logger *slog.Logger) *BulkIngestor {
	if workers <= 0 {
		workers = 4
	}
	if batchSize <= 0 {
		batchSize = 500
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &BulkIngestor{
		writer:    writer,
		workers:   workers,
		batchSize: batchSize,
		logger:    logger.With("component", "ingest"),
	}
}

// Ingest writes people and movies first, then the star edges that join them.
// Rows are filtered with the same rules as dataset.Builder so a graph-backed
// load sees the dataset a CSV load would.
func (bi *BulkIngestor) Ingest(ctx context.Context, tables loader.Tables) (IngestReport, error) {
	tables, report := filterTables(tables)
	if report.InvalidRows+report.DuplicatePeople+report.DuplicateMovies+report.DuplicateStars+report.SkippedStars > 0 {
		bi.logger.Warn("rows dropped before ingest",
			"invalid", report.InvalidRows,
			"duplicatePeople", report.DuplicatePeople,
			"duplicateMovies", report.DuplicateMovies,
			"duplicateStars", report.DuplicateStars,
			"danglingStars", report.SkippedStars,
		)
	}
	if err := bi.writer.EnsureSchema(ctx); err != nil {
		return report, err
	}

	people := chunk(tables.People, bi.batchSize)
	if err := bi.run(ctx, len(people), func(idx int) error {
		if err := bi.writer.UpsertPeople(ctx, people[idx]); err != nil {
			return fmt.Errorf("people batch %d: %w", idx, err)
		}
		return nil
	}); err != nil {
		return report, err
	}
	report.People, report.Batches = len(tables.People), len(people)
	bi.logger.Info("people ingested", "rows", report.People, "batches", len(people))

	movies := chunk(tables.Movies, bi.batchSize)
	if err := bi.run(ctx, len(movies), func(idx int) error {
		if err := bi.writer.UpsertMovies(ctx, movies[idx]); err != nil {
			return fmt.Errorf("movies batch %d: %w", idx, err)
		}
		return nil
	}); err != nil {
		return report, err
	}
	report.Movies = len(tables.Movies)
	report.Batches += len(movies)
	bi.logger.Info("movies ingested", "rows", report.Movies, "batches", len(movies))

	stars := chunk(tables.Stars, bi.batchSize)
	if err := bi.run(ctx, len(stars), func(idx int) error {
		if err := bi.writer.UpsertStars(ctx, stars[idx]); err != nil {
			return fmt.Errorf("stars batch %d: %w", idx, err)
		}
		return nil
	}); err != nil {
		return report, err
	}
	report.Stars = len(tables.Stars)
	report.Batches += len(stars)
	bi.logger.Info("stars ingested", "rows", report.Stars, "batches", len(stars))

	return report, nil
}

func (bi *BulkIngestor) run(ctx context.Context, total int, workerFn func(idx int) error) error {
	if total == 0 {
		return nil
	}
	indexCh := make(chan int)
	errCh := make(chan error, total)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for idx := range indexCh {
			if err := workerFn(idx); err != nil {
				select {
				case errCh <- err:
				case <-ctx.Done():
					return
				}
			}
		}
	}

	for i := 0; i < bi.workers; i++ {
		wg.Add(1)
		go worker()
	}

Loop:
	for i := 0; i < total; i++ {
		select {
		case indexCh <- i:
		case <-ctx.Done():
			break Loop
		}
	}
	close(indexCh)
	wg.Wait()
	close(errCh)

	if err := ctx.Err(); err != nil {
		return err
	}
	var taskErr TaskError
	for err := range errCh {
		if err == nil {
			continue
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		taskErr.append(err)
	}
	return taskErr.asError()
}

// filterTables drops rows without an id, keeps the first row per id and the
// first row per star pair, and drops stars naming an unknown person or movie.
func filterTables(in loader.Tables) (loader.Tables, IngestReport) {
	var (
		out    loader.Tables
		report IngestReport
	)
	people := make(map[string]struct{}, len(in.People))
	for _, p := range in.People {
		p.ID = strings.TrimSpace(p.ID)
		switch _, seen := people[p.ID]; {
		case p.ID == "":
			report.InvalidRows++
		case seen:
			report.DuplicatePeople++
		default:
			people[p.ID] = struct{}{}
			out.People = append(out.People, p)
		}
	}

	movies := make(map[string]struct{}, len(in.Movies))
	for _, m := range in.Movies {
		m.ID = strings.TrimSpace(m.ID)
		switch _, seen := movies[m.ID]; {
		case m.ID == "":
			report.InvalidRows++
		case seen:
			report.DuplicateMovies++
		default:
			movies[m.ID] = struct{}{}
			out.Movies = append(out.Movies, m)
		}
	}

	pairs := make(map[[2]string]struct{}, len(in.Stars))
	for _, s := range in.Stars {
		s.PersonID = strings.TrimSpace(s.PersonID)
		s.MovieID = strings.TrimSpace(s.MovieID)
		_, okPerson := people[s.PersonID]
		_, okMovie := movies[s.MovieID]
		if !okPerson || !okMovie {
			report.SkippedStars++
			continue
		}
		key := [2]string{s.PersonID, s.MovieID}
		if _, seen := pairs[key]; seen {
			report.DuplicateStars++
			continue
		}
		pairs[key] = struct{}{}
		out.Stars = append(out.Stars, s)
	}
	return out, report
}

func chunk[T any](rows []T, size int) [][]T {
	if len(rows) == 0 {
		return nil
	}
	out := make([][]T, 0, (len(rows)+size-1)/size)
	for start := 0; start < len(rows); start += size {
		end := min(start+size, len(rows))
		out = append(out, rows[start:end])
	}
	return out
}
