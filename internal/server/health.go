package server

import (
	"context"
	"errors"

	"github.com/vanshika/degrees/internal/dataset"
	"github.com/vanshika/degrees/internal/graph"
)

// ErrEmptyDataset is reported while the served dataset has no people.
var ErrEmptyDataset = errors.New("dataset has no people")

// HealthService defines behaviour for readiness probes.
type HealthService interface {
	Probe(ctx context.Context) error
}

// GraphHealthService verifies graph connectivity as part of health checks.
type GraphHealthService struct {
	Client graph.Client
}

// Probe implements the HealthService interface.
func (s GraphHealthService) Probe(ctx context.Context) error {
	if s.Client == nil {
		return nil
	}
	return s.Client.VerifyConnectivity(ctx)
}

// DatasetHealthService fails while the loaded dataset is empty.
type DatasetHealthService struct {
	Dataset *dataset.Dataset
}

func (s DatasetHealthService) Probe(context.Context) error {
	if s.Dataset == nil || s.Dataset.Stats().People == 0 {
		return ErrEmptyDataset
	}
	return nil
}

// HealthChecks runs every probe and joins their failures.
type HealthChecks []HealthService

func (c HealthChecks) Probe(ctx context.Context) error {
	var errs []error
	for _, probe := range c {
		if err := probe.Probe(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
