package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStackFrontier_RemovesNewestFirst(t *testing.T) {
	f := NewStackFrontier()
	assert.True(t, f.Empty())

	f.Add(Node{State: "a"})
	f.Add(Node{State: "b"})
	f.Add(Node{State: "c"})
	require.Equal(t, 3, f.Len())

	for _, want := range []string{"c", "b", "a"} {
		n, err := f.Remove()
		require.NoError(t, err)
		assert.Equal(t, want, n.State)
	}
	assert.True(t, f.Empty())
}

func TestQueueFrontier_RemovesOldestFirst(t *testing.T) {
	f := NewQueueFrontier()
	f.Add(Node{State: "a"})
	f.Add(Node{State: "b"})

	n, err := f.Remove()
	require.NoError(t, err)
	assert.Equal(t, "a", n.State)

	f.Add(Node{State: "c"})
	for _, want := range []string{"b", "c"} {
		n, err := f.Remove()
		require.NoError(t, err)
		assert.Equal(t, want, n.State)
	}
	assert.True(t, f.Empty())
}

func TestFrontier_RemoveFromEmpty(t *testing.T) {
	for name, f := range map[string]Frontier{
		"stack": NewStackFrontier(),
		"queue": NewQueueFrontier(),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := f.Remove()
			assert.ErrorIs(t, err, ErrEmptyFrontier)

			f.Add(Node{State: "x"})
			_, err = f.Remove()
			require.NoError(t, err)
			_, err = f.Remove()
			assert.ErrorIs(t, err, ErrEmptyFrontier)
		})
	}
}

func TestFrontier_ContainsStateTracksHeldNodes(t *testing.T) {
	for name, f := range map[string]Frontier{
		"stack": NewStackFrontier(),
		"queue": NewQueueFrontier(),
	} {
		t.Run(name, func(t *testing.T) {
			assert.False(t, f.ContainsState("a"))
			f.Add(Node{State: "a"})
			f.Add(Node{State: "b"})
			assert.True(t, f.ContainsState("a"))
			assert.True(t, f.ContainsState("b"))
			assert.False(t, f.Empty())

			removed, err := f.Remove()
			require.NoError(t, err)
			assert.False(t, f.ContainsState(removed.State))
			assert.Equal(t, 1, f.Len())
		})
	}
}

func TestQueueFrontier_CompactsLongRuns(t *testing.T) {
	f := NewQueueFrontier()
	for i := 0; i < 500; i++ {
		f.Add(Node{State: "s", Index: i})
	}
	for i := 0; i < 400; i++ {
		n, err := f.Remove()
		require.NoError(t, err)
		require.Equal(t, i, n.Index)
	}
	assert.Equal(t, 100, f.Len())
	for i := 400; i < 500; i++ {
		n, err := f.Remove()
		require.NoError(t, err)
		require.Equal(t, i, n.Index)
	}
	assert.True(t, f.Empty())
}
