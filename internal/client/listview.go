package client

import (
	"context"
	"strings"

	"github.com/Sughanthan-A-K/hotel-listing-fullstack/internal/domain"
)

// PageSize is the fixed number of cards per page in the list view.
const PageSize = 6

// ListView derives a filtered, paginated view over the store. Filter inputs
// are ephemeral UI state; changing any of them, or the underlying list,
// snaps the view back to page 1.
type ListView struct {
	store *Store

	search   string
	minPrice *int
	maxPrice *int
	page     int

	seenGen       uint64
	pendingDelete int64
}

func NewListView(store *Store) *ListView {
	return &ListView{store: store, page: 1, seenGen: store.Generation()}
}

func (v *ListView) SetSearch(s string) {
	v.search = s
	v.page = 1
}

func (v *ListView) SetMinPrice(p *int) {
	v.minPrice = p
	v.page = 1
}

func (v *ListView) SetMaxPrice(p *int) {
	v.maxPrice = p
	v.page = 1
}

func (v *ListView) ClearFilters() {
	v.search = ""
	v.minPrice = nil
	v.maxPrice = nil
	v.page = 1
}

// sync resets pagination when the source list changed under the view.
func (v *ListView) sync() {
	if g := v.store.Generation(); g != v.seenGen {
		v.seenGen = g
		v.page = 1
	}
}

// Filtered applies search then the price bounds, all AND-combined.
func (v *ListView) Filtered() []domain.Hotel {
	v.sync()
	hs := v.store.Hotels()
	term := strings.ToLower(strings.TrimSpace(v.search))
	out := hs[:0]
	for _, h := range hs {
		if term != "" && !strings.Contains(strings.ToLower(h.Title), term) {
			continue
		}
		if v.minPrice != nil && h.Price < *v.minPrice {
			continue
		}
		if v.maxPrice != nil && h.Price > *v.maxPrice {
			continue
		}
		out = append(out, h)
	}
	return out
}

func (v *ListView) Page() int { v.sync(); return v.page }

func (v *ListView) PageCount() int {
	n := len(v.Filtered())
	return (n + PageSize - 1) / PageSize
}

// SetPage moves to an existing page; out-of-range requests are ignored.
func (v *ListView) SetPage(n int) {
	if n >= 1 && n <= v.PageCount() {
		v.page = n
	}
}

// Visible is the slice of the filtered set shown on the current page.
func (v *ListView) Visible() []domain.Hotel {
	f := v.Filtered()
	lo := (v.page - 1) * PageSize
	if lo >= len(f) {
		return nil
	}
	hi := lo + PageSize
	if hi > len(f) {
		hi = len(f)
	}
	return f[lo:hi]
}

// Delete is two-step: SelectDelete arms it, ConfirmDelete dispatches it.
// CancelDelete disarms without touching anything.
func (v *ListView) SelectDelete(id int64) { v.pendingDelete = id }

func (v *ListView) PendingDelete() int64 { return v.pendingDelete }

func (v *ListView) CancelDelete() { v.pendingDelete = 0 }

func (v *ListView) ConfirmDelete(ctx context.Context, api Deleter) error {
	if v.pendingDelete == 0 {
		return nil
	}
	if err := v.store.Delete(ctx, api, v.pendingDelete); err != nil {
		// keep the selection so the caller can retry or cancel
		return err
	}
	v.pendingDelete = 0
	return nil
}
