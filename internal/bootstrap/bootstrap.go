// Package bootstrap builds the pieces every binary needs from a Config.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vanshika/degrees/internal/config"
	"github.com/vanshika/degrees/internal/dataset"
	"github.com/vanshika/degrees/internal/graph"
	"github.com/vanshika/degrees/internal/loader"
	"github.com/vanshika/degrees/internal/repository"
)

// NewGraphClient connects to Neo4j and guards the connection with a circuit breaker.
func NewGraphClient(ctx context.Context, logger *slog.Logger, cfg config.GraphConfig) (*graph.BreakerClient, error) {
	if cfg.URI == "" {
		return nil, graph.ErrMissingURI
	}

	client, err := graph.NewNeo4jClient(ctx, graph.Options{
		URI:            cfg.URI,
		Database:       cfg.Database,
		Username:       cfg.Username,
		Password:       cfg.Password,
		MaxConnections: cfg.MaxConnections,
	})
	if err != nil {
		return nil, err
	}
	return graph.NewBreakerClient(client, graph.DefaultBreakerSettings("neo4j"), logger), nil
}

// Dataset is a loaded dataset plus the graph client it came from, if any.
type Dataset struct {
	*dataset.Dataset
	Graph graph.Client
}

// Close releases the graph client.
func (d Dataset) Close(ctx context.Context) error {
	if d.Graph == nil {
		return nil
	}
	return d.Graph.Close(ctx)
}

// LoadDataset builds the dataset from the configured source.
func LoadDataset(ctx context.Context, logger *slog.Logger, cfg config.Config) (Dataset, error) {
	l := loader.New(logger)

	switch cfg.Dataset.Source {
	case config.SourceGraph:
		client, err := NewGraphClient(ctx, logger, cfg.Graph)
		if err != nil {
			return Dataset{}, fmt.Errorf("graph client: %w", err)
		}
		ds, err := l.LoadSource(ctx, repository.New(client))
		if err != nil {
			_ = client.Close(context.Background())
			return Dataset{}, err
		}
		return Dataset{Dataset: ds, Graph: client}, nil
	default:
		ds, err := l.LoadDirectory(ctx, cfg.Dataset.Dir)
		if err != nil {
			return Dataset{}, err
		}
		return Dataset{Dataset: ds}, nil
	}
}
