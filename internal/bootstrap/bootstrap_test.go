package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/degrees/internal/config"
	"github.com/vanshika/degrees/internal/graph"
)

func writeDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"people.csv": "id,name,birth\n1,Alice,1970\n2,Bob,\n",
		"movies.csv": "id,title,year\n10,First,2001\n",
		"stars.csv":  "person_id,movie_id\n1,10\n2,10\n",
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func TestLoadDataset_CSV(t *testing.T) {
	cfg := config.Default()
	cfg.Dataset.Dir = writeDir(t)

	ds, err := LoadDataset(context.Background(), nil, cfg)
	require.NoError(t, err)
	assert.Nil(t, ds.Graph)
	assert.Equal(t, 2, ds.Stats().People)
	assert.NoError(t, ds.Close(context.Background()))
}

func TestLoadDataset_GraphRequiresURI(t *testing.T) {
	cfg := config.Default()
	cfg.Dataset.Source = config.SourceGraph

	_, err := LoadDataset(context.Background(), nil, cfg)
	assert.ErrorIs(t, err, graph.ErrMissingURI)
}

func TestLoadDataset_MissingDirectory(t *testing.T) {
	cfg := config.Default()
	cfg.Dataset.Dir = filepath.Join(t.TempDir(), "absent")

	_, err := LoadDataset(context.Background(), nil, cfg)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
