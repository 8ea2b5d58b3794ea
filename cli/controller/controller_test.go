package controller

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogctl/cli/notify"
)

type item struct {
	ID   int64
	Name string
}

func (i item) EntityID() int64 { return i.ID }

func fixedSource(items ...item) Source[item] {
	return func(context.Context) ([]item, error) {
		out := make([]item, len(items))
		copy(out, items)
		return out, nil
	}
}

func TestListLoad(t *testing.T) {
	t.Run("Should replace the cache in server order", func(t *testing.T) {
		list := NewList(fixedSource(item{ID: 2, Name: "b"}, item{ID: 1, Name: "a"}), nil)
		require.NoError(t, list.Load(context.Background()))
		assert.Equal(t, PhaseReady, list.Phase())
		items := list.Items()
		require.Len(t, items, 2)
		assert.Equal(t, int64(2), items[0].ID)
		assert.Equal(t, int64(1), items[1].ID)
	})

	t.Run("Should keep the last good items on failure", func(t *testing.T) {
		calls := 0
		list := NewList(func(context.Context) ([]item, error) {
			calls++
			if calls > 1 {
				return nil, fmt.Errorf("boom")
			}
			return []item{{ID: 1, Name: "a"}}, nil
		}, nil)

		require.NoError(t, list.Load(context.Background()))
		require.Error(t, list.Load(context.Background()))
		assert.Equal(t, PhaseFailed, list.Phase())
		assert.Equal(t, "boom", list.Err())
		assert.Len(t, list.Items(), 1)
	})

	t.Run("Should discard a stale load response", func(t *testing.T) {
		release := make(chan struct{})
		calls := 0
		var mu sync.Mutex
		list := NewList(func(context.Context) ([]item, error) {
			mu.Lock()
			calls++
			call := calls
			mu.Unlock()
			if call == 1 {
				<-release
				return []item{{ID: 99, Name: "stale"}}, nil
			}
			return []item{{ID: 1, Name: "fresh"}}, nil
		}, nil)

		done := make(chan error, 1)
		go func() { done <- list.Load(context.Background()) }()
		// Wait for the first call to be in flight, then supersede it.
		for {
			mu.Lock()
			started := calls > 0
			mu.Unlock()
			if started {
				break
			}
		}
		require.NoError(t, list.Load(context.Background()))
		close(release)
		require.NoError(t, <-done)

		items := list.Items()
		require.Len(t, items, 1)
		assert.Equal(t, "fresh", items[0].Name)
	})
}

func TestListMutations(t *testing.T) {
	ctx := context.Background()

	loaded := func(t *testing.T, hub *notify.Hub) *List[item] {
		t.Helper()
		list := NewList(fixedSource(item{ID: 1, Name: "a"}, item{ID: 2, Name: "b"}), hub)
		require.NoError(t, list.Load(ctx))
		return list
	}

	t.Run("Should append the confirmed object on create", func(t *testing.T) {
		list := loaded(t, nil)
		created, err := list.Create(ctx, func(context.Context) (*item, error) {
			return &item{ID: 3, Name: "c"}, nil
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), created.ID)
		items := list.Items()
		require.Len(t, items, 3)
		assert.Equal(t, int64(3), items[2].ID)
	})

	t.Run("Should leave the collection untouched on create failure", func(t *testing.T) {
		hub := notify.NewHub()
		notifications, cancel := hub.Subscribe()
		defer cancel()

		list := loaded(t, hub)
		_, err := list.Create(ctx, func(context.Context) (*item, error) {
			return nil, fmt.Errorf("rejected")
		})
		require.Error(t, err)
		assert.Len(t, list.Items(), 2)

		n := <-notifications
		assert.Equal(t, notify.LevelError, n.Level)
		assert.Contains(t, n.Detail, "rejected")
	})

	t.Run("Should replace the element in place on update", func(t *testing.T) {
		list := loaded(t, nil)
		updated, err := list.Update(ctx, 1, func(context.Context) (*item, error) {
			return &item{ID: 1, Name: "renamed"}, nil
		})
		require.NoError(t, err)
		assert.Equal(t, "renamed", updated.Name)
		items := list.Items()
		assert.Equal(t, "renamed", items[0].Name)
		assert.Equal(t, int64(2), items[1].ID)
	})

	t.Run("Should remove the element on delete", func(t *testing.T) {
		list := loaded(t, nil)
		require.NoError(t, list.Delete(ctx, 2, func(context.Context) error { return nil }))
		items := list.Items()
		require.Len(t, items, 1)
		assert.Equal(t, int64(1), items[0].ID)
	})

	t.Run("Should keep the element on delete failure", func(t *testing.T) {
		hub := notify.NewHub()
		notifications, cancel := hub.Subscribe()
		defer cancel()

		list := loaded(t, hub)
		err := list.Delete(ctx, 2, func(context.Context) error {
			return fmt.Errorf("forbidden")
		})
		require.Error(t, err)
		assert.Len(t, list.Items(), 2)

		n := <-notifications
		assert.Equal(t, notify.LevelError, n.Level)
	})

	t.Run("Should tolerate deleting an id missing locally", func(t *testing.T) {
		list := loaded(t, nil)
		require.NoError(t, list.Delete(ctx, 999, func(context.Context) error { return nil }))
		assert.Len(t, list.Items(), 2)
	})
}
