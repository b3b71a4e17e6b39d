package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type record struct {
	ID    int
	Label string
	Group string
}

func (r record) Key() int { return r.ID }

// TestRepositoryAddRejectsDuplicates verifies that a colliding Add fails and
// leaves the repository exactly as it was.
func TestRepositoryAddRejectsDuplicates(t *testing.T) {
	t.Parallel()

	repo := NewRepository[int, record]()
	require.NoError(t, repo.Add(record{ID: 1, Label: "first"}))

	err := repo.Add(record{ID: 1, Label: "imposter"})
	require.ErrorIs(t, err, ErrDuplicateID)

	require.Equal(t, 1, repo.Len())
	got, err := repo.Get(1)
	require.NoError(t, err)
	require.Equal(t, "first", got.Label)
}

// TestRepositoryNotFoundSymmetry checks that Get, Remove, Replace, and
// Update all report ErrNotFound for ids never added or already removed.
func TestRepositoryNotFoundSymmetry(t *testing.T) {
	t.Parallel()

	repo := NewRepository[int, record]()
	require.NoError(t, repo.Add(record{ID: 7}))
	require.NoError(t, repo.Remove(7))

	for _, id := range []int{7, 99} {
		_, err := repo.Get(id)
		require.ErrorIs(t, err, ErrNotFound, "Get(%d)", id)
		require.ErrorIs(t, repo.Remove(id), ErrNotFound, "Remove(%d)", id)
		require.ErrorIs(t, repo.Replace(id, record{ID: id}), ErrNotFound, "Replace(%d)", id)
		err = repo.Update(id, func(r record) (record, error) { return r, nil })
		require.ErrorIs(t, err, ErrNotFound, "Update(%d)", id)
	}
}

// TestRepositoryAllIsAnIndependentSnapshot ensures listing preserves
// insertion order, repeats identically, and hands out copies.
func TestRepositoryAllIsAnIndependentSnapshot(t *testing.T) {
	t.Parallel()

	repo := NewRepository[int, record]()
	for _, id := range []int{3, 1, 2} {
		require.NoError(t, repo.Add(record{ID: id, Label: "original"}))
	}

	first := repo.All()
	second := repo.All()
	require.Equal(t, first, second)
	require.Equal(t, []int{3, 1, 2}, []int{first[0].ID, first[1].ID, first[2].ID})

	first[0].Label = "mutated"
	got, err := repo.Get(3)
	require.NoError(t, err)
	require.Equal(t, "original", got.Label)
}

func TestRepositoryRemoveKeepsOrder(t *testing.T) {
	t.Parallel()

	repo := NewRepository[int, record]()
	for id := 1; id <= 4; id++ {
		require.NoError(t, repo.Add(record{ID: id}))
	}
	require.NoError(t, repo.Remove(2))

	all := repo.All()
	require.Len(t, all, 3)
	require.Equal(t, []int{1, 3, 4}, []int{all[0].ID, all[1].ID, all[2].ID})

	// The freed id can be inserted again, at the end of the order.
	require.NoError(t, repo.Add(record{ID: 2}))
	all = repo.All()
	require.Equal(t, 2, all[3].ID)
}

// TestRepositoryReplaceRejectsKeyMismatch verifies the stored id cannot be
// changed through Replace.
func TestRepositoryReplaceRejectsKeyMismatch(t *testing.T) {
	t.Parallel()

	repo := NewRepository[int, record]()
	require.NoError(t, repo.Add(record{ID: 1, Label: "keep"}))

	err := repo.Replace(1, record{ID: 2, Label: "stolen slot"})
	require.ErrorIs(t, err, ErrInvalidValue)

	got, err := repo.Get(1)
	require.NoError(t, err)
	require.Equal(t, "keep", got.Label)
}

func TestRepositoryUpdatePropagatesCallbackError(t *testing.T) {
	t.Parallel()

	repo := NewRepository[int, record]()
	require.NoError(t, repo.Add(record{ID: 1, Label: "before"}))

	boom := errors.New("boom")
	err := repo.Update(1, func(r record) (record, error) {
		r.Label = "after"
		return r, boom
	})
	require.ErrorIs(t, err, boom)

	got, err := repo.Get(1)
	require.NoError(t, err)
	require.Equal(t, "before", got.Label)
}

func TestRepositoryFirst(t *testing.T) {
	t.Parallel()

	repo := NewRepository[int, record]()
	require.NoError(t, repo.Add(record{ID: 1, Group: "a"}))
	require.NoError(t, repo.Add(record{ID: 2, Group: "b"}))
	require.NoError(t, repo.Add(record{ID: 3, Group: "b"}))

	got, ok := repo.First(func(r record) bool { return r.Group == "b" })
	require.True(t, ok)
	require.Equal(t, 2, got.ID)

	_, ok = repo.First(func(r record) bool { return r.Group == "c" })
	require.False(t, ok)
}

func TestRepositoryClear(t *testing.T) {
	t.Parallel()

	repo := NewRepository[int, record]()
	require.NoError(t, repo.Add(record{ID: 1}))
	repo.Clear()

	require.Zero(t, repo.Len())
	require.Empty(t, repo.All())
	require.NoError(t, repo.Add(record{ID: 1}))
}
