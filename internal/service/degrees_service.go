package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vanshika/degrees/internal/dataset"
	"github.com/vanshika/degrees/internal/domain"
	"github.com/vanshika/degrees/internal/metrics"
	"github.com/vanshika/degrees/internal/resolve"
	"github.com/vanshika/degrees/internal/search"
)

// ErrInvalidInput marks requests missing a required value.
var ErrInvalidInput = errors.New("invalid input")

// AmbiguousNameError is returned when a name lookup matches several people
// and no interactive choice is possible.
type AmbiguousNameError struct {
	Name       string
	Candidates []domain.Person
}

func (e *AmbiguousNameError) Error() string {
	return fmt.Sprintf("%q matches %d people", e.Name, len(e.Candidates))
}

// Unwrap lets callers treat an ambiguity as a failed selection.
func (e *AmbiguousNameError) Unwrap() error {
	return resolve.ErrNoSelection
}

// DegreesService answers separation queries against one loaded dataset.
type DegreesService struct {
	data     *dataset.Dataset
	finder   *search.PathFinder
	resolver *resolve.Resolver
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewDegreesService wires the path finder and resolver over data. m may be nil.
func NewDegreesService(data *dataset.Dataset, m *metrics.Metrics, logger *slog.Logger) *DegreesService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	m.SetDataset(data.Stats())
	return &DegreesService{
		data:     data,
		finder:   search.NewPathFinder(data),
		resolver: resolve.NewResolver(data, ambiguityChooser{}).WithRecorder(m),
		metrics:  m,
		logger:   logger.With("component", "degrees"),
	}
}

// ShortestPath finds a shortest chain of shared movies between two person ids.
func (s *DegreesService) ShortestPath(ctx context.Context, sourceID, targetID string) (search.Result, error) {
	sourceID = sanitizeString(sourceID)
	targetID = sanitizeString(targetID)
	if sourceID == "" || targetID == "" {
		return search.Result{}, fmt.Errorf("source and target are required: %w", ErrInvalidInput)
	}

	start := time.Now()
	res, err := s.finder.ShortestPath(ctx, sourceID, targetID)
	took := time.Since(start)

	switch {
	case err != nil:
		s.metrics.RecordSearch(metrics.OutcomeError, took, res.Expanded, 0)
		s.logger.Debug("search failed", "source", sourceID, "target", targetID, "error", err)
		return search.Result{}, err
	case res.Connected:
		s.metrics.RecordSearch(metrics.OutcomeConnected, took, res.Expanded, res.Degrees())
	default:
		s.metrics.RecordSearch(metrics.OutcomeNotConnected, took, res.Expanded, 0)
	}
	s.logger.Debug("search finished",
		"source", sourceID,
		"target", targetID,
		"connected", res.Connected,
		"degrees", res.Degrees(),
		"expanded", res.Expanded,
		"took", took,
	)
	return res, nil
}

// ShortestPathByName resolves both names before searching. A name shared by
// several people yields an *AmbiguousNameError.
func (s *DegreesService) ShortestPathByName(ctx context.Context, sourceName, targetName string) (search.Result, error) {
	sourceID, err := s.ResolveName(ctx, sourceName)
	if err != nil {
		return search.Result{}, err
	}
	targetID, err := s.ResolveName(ctx, targetName)
	if err != nil {
		return search.Result{}, err
	}
	return s.ShortestPath(ctx, sourceID, targetID)
}

// ResolveName returns the single person id for name.
func (s *DegreesService) ResolveName(ctx context.Context, name string) (string, error) {
	name = sanitizeString(name)
	if name == "" {
		return "", fmt.Errorf("name is required: %w", ErrInvalidInput)
	}
	return s.resolver.Resolve(ctx, name)
}

// Candidates lists everyone called name, in load order.
func (s *DegreesService) Candidates(name string) []domain.Person {
	return s.data.ResolveName(sanitizeString(name))
}

func (s *DegreesService) Person(id string) (domain.Person, error) {
	p, ok := s.data.Person(id)
	if !ok {
		return domain.Person{}, fmt.Errorf("%q: %w", id, dataset.ErrPersonNotFound)
	}
	return p, nil
}

func (s *DegreesService) Movie(id string) (domain.Movie, error) {
	m, ok := s.data.Movie(id)
	if !ok {
		return domain.Movie{}, fmt.Errorf("%q: %w", id, dataset.ErrMovieNotFound)
	}
	return m, nil
}

func (s *DegreesService) Stats() dataset.Stats {
	return s.data.Stats()
}

// Dataset exposes the underlying dataset for presentation.
func (s *DegreesService) Dataset() *dataset.Dataset {
	return s.data
}

// ambiguityChooser never picks; it reports the candidates back to the caller.
type ambiguityChooser struct{}

func (ambiguityChooser) Choose(_ context.Context, name string, candidates []domain.Person) (string, error) {
	return "", &AmbiguousNameError{Name: name, Candidates: candidates}
}
