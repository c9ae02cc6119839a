package feed

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Styner-JEON/korea-event/internal/model"
)

func cursor(s string) *string { return &s }

func comment(id int64, content string) model.Comment {
	return model.Comment{CommentID: id, ContentID: 100, Username: "styner", Content: content}
}

func twoPages() Pages {
	return Pages{
		{Comments: []model.Comment{comment(1, "one"), comment(2, "two")}, NextCursor: cursor("c2")},
		{Comments: []model.Comment{comment(3, "three")}, NextCursor: nil},
	}
}

func TestApplyInsert(t *testing.T) {
	t.Run("prepends to first page", func(t *testing.T) {
		pages := twoPages()
		next := ApplyInsert(pages, comment(4, "four"))

		items := Items(next)
		require.Len(t, items, 4)
		require.Equal(t, int64(4), items[0].CommentID)
		// original state untouched
		require.Len(t, Items(pages), 3)
	})

	t.Run("creates first page on empty feed", func(t *testing.T) {
		next := ApplyInsert(nil, comment(1, "one"))
		require.Len(t, next, 1)
		require.Nil(t, next[0].NextCursor)
		require.Equal(t, int64(1), next[0].Comments[0].CommentID)
	})
}

func TestApplyUpdate(t *testing.T) {
	t.Run("replaces in place", func(t *testing.T) {
		pages := twoPages()
		updated := comment(3, "edited")
		next := ApplyUpdate(pages, updated)

		items := Items(next)
		require.Len(t, items, 3)
		// the entry keeps its position
		require.Equal(t, int64(3), items[2].CommentID)
		require.Equal(t, "edited", items[2].Content)
		require.Equal(t, "three", Items(pages)[2].Content)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		pages := twoPages()
		next := ApplyUpdate(pages, comment(99, "ghost"))
		require.Equal(t, Items(pages), Items(next))
	})
}

func TestApplyDelete(t *testing.T) {
	t.Run("removes from its page", func(t *testing.T) {
		pages := twoPages()
		next := ApplyDelete(pages, 2)

		items := Items(next)
		require.Len(t, items, 2)
		for _, item := range items {
			require.NotEqual(t, int64(2), item.CommentID)
		}
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		pages := twoPages()
		next := ApplyDelete(pages, 99)
		require.Len(t, Items(next), 3)
	})
}

func TestHasMore(t *testing.T) {
	require.True(t, HasMore(nil))
	require.True(t, HasMore(Pages{{NextCursor: cursor("c2")}}))
	require.False(t, HasMore(Pages{{NextCursor: nil}}))
}

func TestFeedLoadNext(t *testing.T) {
	t.Run("appends pages until terminal", func(t *testing.T) {
		var calls int32
		f := New(func(ctx context.Context, cur *string) (*model.CommentPage, error) {
			n := atomic.AddInt32(&calls, 1)
			if n == 1 {
				require.Nil(t, cur)
				return &model.CommentPage{Comments: []model.Comment{comment(1, "one")}, NextCursor: cursor("c2")}, nil
			}
			require.Equal(t, "c2", *cur)
			return &model.CommentPage{Comments: []model.Comment{comment(2, "two")}, NextCursor: nil}, nil
		})

		require.NoError(t, f.LoadNext(context.Background()))
		require.NoError(t, f.LoadNext(context.Background()))
		require.Len(t, f.Items(), 2)
		require.False(t, f.HasMore())

		// terminal feed: further calls are no-ops, no fetch happens
		require.NoError(t, f.LoadNext(context.Background()))
		require.Equal(t, int32(2), atomic.LoadInt32(&calls))
	})

	t.Run("in-flight guard deduplicates concurrent calls", func(t *testing.T) {
		var calls int32
		entered := make(chan struct{})
		release := make(chan struct{})
		f := New(func(ctx context.Context, cur *string) (*model.CommentPage, error) {
			if atomic.AddInt32(&calls, 1) == 1 {
				close(entered)
			}
			<-release
			return &model.CommentPage{Comments: []model.Comment{comment(1, "one")}, NextCursor: nil}, nil
		})

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = f.LoadNext(context.Background())
		}()

		<-entered
		// second call observes the in-flight guard and returns without fetching
		require.NoError(t, f.LoadNext(context.Background()))

		close(release)
		wg.Wait()
		require.Equal(t, int32(1), atomic.LoadInt32(&calls))
		require.Len(t, f.Items(), 1)
	})

	t.Run("load failure keeps the feed loadable", func(t *testing.T) {
		fail := true
		f := New(func(ctx context.Context, cur *string) (*model.CommentPage, error) {
			if fail {
				return nil, context.DeadlineExceeded
			}
			return &model.CommentPage{Comments: []model.Comment{comment(1, "one")}, NextCursor: nil}, nil
		})

		require.Error(t, f.LoadNext(context.Background()))
		fail = false
		require.NoError(t, f.LoadNext(context.Background()))
		require.Len(t, f.Items(), 1)
	})
}

func TestFeedMutationCallbacks(t *testing.T) {
	f := New(func(ctx context.Context, cur *string) (*model.CommentPage, error) {
		return &model.CommentPage{Comments: []model.Comment{comment(1, "one"), comment(2, "two")}, NextCursor: nil}, nil
	})
	require.NoError(t, f.LoadNext(context.Background()))

	f.OnInsertSuccess(comment(3, "three"))
	items := f.Items()
	require.Len(t, items, 3)
	require.Equal(t, int64(3), items[0].CommentID)

	f.OnUpdateSuccess(comment(1, "edited"))
	items = f.Items()
	require.Equal(t, "edited", items[1].Content)
	require.Equal(t, int64(1), items[1].CommentID)

	f.OnDeleteSuccess(2)
	require.Len(t, f.Items(), 2)
	f.OnDeleteSuccess(99)
	require.Len(t, f.Items(), 2)
}
