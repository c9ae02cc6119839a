// Package feed merges cursor-paginated comment pages into one ordered feed
// and patches that feed locally on insert/update/delete, so a mutation
// never forces a refetch. Eventual consistency is restored on the next
// full reload.
package feed

import (
	"context"
	"sync"

	"github.com/Styner-JEON/korea-event/internal/model"
)

// Pages is the fetched page sequence. Concatenating Comments across pages
// in order yields the full feed in server order, with client-side inserts
// spliced newest-first at the front.
type Pages []model.CommentPage

// HasMore reports whether another page can be fetched. An empty sequence
// has more by definition; afterwards the last page's cursor decides.
func HasMore(pages Pages) bool {
	if len(pages) == 0 {
		return true
	}
	return pages[len(pages)-1].NextCursor != nil
}

// NextCursor returns the cursor for the next fetch, nil for the first page.
func NextCursor(pages Pages) *string {
	if len(pages) == 0 {
		return nil
	}
	return pages[len(pages)-1].NextCursor
}

// Append returns pages with one more fetched page at the end.
func Append(pages Pages, page model.CommentPage) Pages {
	next := make(Pages, len(pages), len(pages)+1)
	copy(next, pages)
	return append(next, page)
}

// ApplyInsert prepends the new comment to the first page, creating it when
// the feed is empty.
func ApplyInsert(pages Pages, comment model.Comment) Pages {
	if len(pages) == 0 {
		return Pages{{Comments: []model.Comment{comment}, NextCursor: nil}}
	}
	next := make(Pages, len(pages))
	copy(next, pages)
	first := next[0]
	first.Comments = append([]model.Comment{comment}, first.Comments...)
	next[0] = first
	return next
}

// ApplyUpdate replaces the matching comment in place. The entry keeps its
// position in the feed; recently-edited comments do not jump to the top.
func ApplyUpdate(pages Pages, comment model.Comment) Pages {
	next := make(Pages, len(pages))
	copy(next, pages)
	for i, page := range next {
		for j, existing := range page.Comments {
			if existing.CommentID == comment.CommentID {
				comments := make([]model.Comment, len(page.Comments))
				copy(comments, page.Comments)
				comments[j] = comment
				next[i].Comments = comments
				return next
			}
		}
	}
	return next
}

// ApplyDelete removes the matching comment from whichever page holds it;
// no-op when the id is not present.
func ApplyDelete(pages Pages, commentID int64) Pages {
	next := make(Pages, len(pages))
	copy(next, pages)
	for i, page := range next {
		for j, existing := range page.Comments {
			if existing.CommentID == commentID {
				comments := make([]model.Comment, 0, len(page.Comments)-1)
				comments = append(comments, page.Comments[:j]...)
				comments = append(comments, page.Comments[j+1:]...)
				next[i].Comments = comments
				return next
			}
		}
	}
	return next
}

// Items flattens pages into the rendered comment list.
func Items(pages Pages) []model.Comment {
	var items []model.Comment
	for _, page := range pages {
		items = append(items, page.Comments...)
	}
	return items
}

// LoadFunc fetches the page behind a cursor; a nil cursor means the first
// page.
type LoadFunc func(ctx context.Context, cursor *string) (*model.CommentPage, error)

// Feed is one event's merged comment feed. LoadNext is serialized by an
// in-flight guard: while a load is outstanding, further calls are no-ops,
// so rapid scroll triggers cannot fetch the same page twice.
type Feed struct {
	mu      sync.Mutex
	loading bool
	pages   Pages
	load    LoadFunc
}

func New(load LoadFunc) *Feed {
	return &Feed{load: load}
}

// LoadNext fetches and appends the next page. It is a no-op when the feed
// is terminal or a load is already in flight.
func (f *Feed) LoadNext(ctx context.Context) error {
	f.mu.Lock()
	if f.loading || !HasMore(f.pages) {
		f.mu.Unlock()
		return nil
	}
	f.loading = true
	cursor := NextCursor(f.pages)
	f.mu.Unlock()

	page, err := f.load(ctx, cursor)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading = false
	if err != nil {
		return err
	}
	f.pages = Append(f.pages, *page)
	return nil
}

func (f *Feed) Pages() Pages {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pages
}

func (f *Feed) Items() []model.Comment {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Items(f.pages)
}

func (f *Feed) HasMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return HasMore(f.pages)
}

// Loaded reports whether at least one page has been fetched.
func (f *Feed) Loaded() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pages) > 0
}

func (f *Feed) OnInsertSuccess(comment model.Comment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages = ApplyInsert(f.pages, comment)
}

func (f *Feed) OnUpdateSuccess(comment model.Comment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages = ApplyUpdate(f.pages, comment)
}

func (f *Feed) OnDeleteSuccess(commentID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages = ApplyDelete(f.pages, commentID)
}
