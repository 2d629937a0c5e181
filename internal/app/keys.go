package app

import (
	"fmt"
	"strconv"

	"github.com/Sughanthan-A-K/hotel-listing-fullstack/internal/domain"
)

func hotelKey(id int64) string { return fmt.Sprintf("hotel:%d", id) }

// listKey fingerprints a normalized list query. Unset filters render as "-"
// so "no filter" and "empty string" share an entry.
func listKey(q domain.ListQuery) string {
	q = q.Normalize()
	t := "-"
	if q.Title != nil && *q.Title != "" {
		t = *q.Title
	}
	mn, mx := "-", "-"
	if q.MinPrice != nil {
		mn = strconv.Itoa(*q.MinPrice)
	}
	if q.MaxPrice != nil {
		mx = strconv.Itoa(*q.MaxPrice)
	}
	return fmt.Sprintf("hotels:%s:%s:%s:%d:%d", t, mn, mx, q.Offset, q.Limit)
}
