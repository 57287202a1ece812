package notes

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/chronotes/backend/internal/domain/notes"
)

// FeedSource supplies feed pages and the unpinned ordering used to locate a
// note after it loses its pinned slot.
type FeedSource interface {
	// FetchPage returns one feed page plus the total visible note count
	FetchPage(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]*notes.Note, int64, error)

	// UnpinnedNotes returns all visible unpinned notes ordered by creation
	// time descending
	UnpinnedNotes(ctx context.Context, userID uuid.UUID) ([]*notes.Note, error)
}

// Feed maintains the incrementally loaded tail of a user's note list. Page 1
// is delivered with the initial render, so the feed starts fetching at page 2
// and keeps its entries page-aligned: entry i belongs to page i/pageSize + 2.
// Mutations deep in the list are reconciled by re-fetching only the affected
// page-sized window instead of reloading everything.
type Feed struct {
	mu       sync.Mutex
	source   FeedSource
	userID   uuid.UUID
	pageSize int

	nextPage int
	entries  []*notes.Note
	hasMore  bool
	loading  bool
}

// NewFeed creates a feed positioned after the server-rendered first page
func NewFeed(source FeedSource, userID uuid.UUID, pageSize int) *Feed {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Feed{
		source:   source,
		userID:   userID,
		pageSize: pageSize,
		nextPage: 2,
		hasMore:  true,
	}
}

// Entries returns a copy of the loaded tail in feed order
func (f *Feed) Entries() []*notes.Note {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*notes.Note, len(f.entries))
	copy(out, f.entries)
	return out
}

// HasMore reports whether further pages may exist
func (f *Feed) HasMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasMore
}

// LoadMore fetches the next page and appends it. A fetch error or an empty
// page stops further loading rather than retrying.
func (f *Feed) LoadMore(ctx context.Context) error {
	f.mu.Lock()
	if f.loading || !f.hasMore {
		f.mu.Unlock()
		return nil
	}
	f.loading = true
	page := f.nextPage
	f.mu.Unlock()

	fetched, total, err := f.source.FetchPage(ctx, f.userID, page, f.pageSize)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading = false

	if err != nil || len(fetched) == 0 {
		f.hasMore = false
		return err
	}

	f.entries = append(f.entries, fetched...)
	f.nextPage++

	if page >= totalPages(total, f.pageSize) {
		f.hasMore = false
	}
	return nil
}

// RefreshPage re-fetches a single page and splices it into the feed at its
// page-aligned window, replacing the previous slot contents and dropping any
// fetched note whose id already appears outside the replaced window. Pages
// not yet loaded are ignored.
func (f *Feed) RefreshPage(ctx context.Context, pageNumber int) error {
	f.mu.Lock()
	if pageNumber < 2 || f.windowStart(pageNumber) >= len(f.entries) {
		f.mu.Unlock()
		return nil
	}
	f.mu.Unlock()

	fetched, _, err := f.source.FetchPage(ctx, f.userID, pageNumber, f.pageSize)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	start := f.windowStart(pageNumber)
	if start >= len(f.entries) {
		return nil
	}
	end := start + f.pageSize
	if end > len(f.entries) {
		end = len(f.entries)
	}

	// Ids present outside the replaced window must not reappear inside it
	outside := make(map[uuid.UUID]struct{}, len(f.entries))
	for i, n := range f.entries {
		if i >= start && i < end {
			continue
		}
		outside[n.ID] = struct{}{}
	}

	replacement := make([]*notes.Note, 0, end-start)
	for _, n := range fetched {
		if _, dup := outside[n.ID]; dup {
			continue
		}
		replacement = append(replacement, n)
		if len(replacement) == end-start {
			break
		}
	}

	spliced := make([]*notes.Note, 0, len(f.entries)-(end-start)+len(replacement))
	spliced = append(spliced, f.entries[:start]...)
	spliced = append(spliced, replacement...)
	spliced = append(spliced, f.entries[end:]...)
	f.entries = spliced
	return nil
}

// ReconcilePin reflects a pin: the note moves to the head of the list
// server-side, so its old slot is dropped here and the first loaded page is
// refreshed to backfill the entry bumped out of it.
func (f *Feed) ReconcilePin(ctx context.Context, noteID uuid.UUID) error {
	f.mu.Lock()
	f.remove(noteID)
	f.mu.Unlock()

	return f.RefreshPage(ctx, 2)
}

// ReconcileUnpin reflects an unpin: the note's new position is where it falls
// among unpinned notes by creation time, converted to a page number offset by
// the server-rendered first page, and that page is refreshed.
func (f *Feed) ReconcileUnpin(ctx context.Context, noteID uuid.UUID) error {
	f.mu.Lock()
	f.remove(noteID)
	f.mu.Unlock()

	unpinned, err := f.source.UnpinnedNotes(ctx, f.userID)
	if err != nil {
		return err
	}

	index := -1
	for i, n := range unpinned {
		if n.ID == noteID {
			index = i
			break
		}
	}
	if index < 0 {
		return nil
	}

	targetPage := index/f.pageSize + 2
	return f.RefreshPage(ctx, targetPage)
}

func (f *Feed) windowStart(pageNumber int) int {
	return (pageNumber - 2) * f.pageSize
}

func (f *Feed) remove(noteID uuid.UUID) {
	for i, n := range f.entries {
		if n.ID == noteID {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return
		}
	}
}

func totalPages(total int64, pageSize int) int {
	pages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		pages++
	}
	return pages
}
