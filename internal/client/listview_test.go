package client_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Sughanthan-A-K/hotel-listing-fullstack/internal/client"
	"github.com/Sughanthan-A-K/hotel-listing-fullstack/internal/domain"
)

func loadedStore(t *testing.T, hotels []domain.Hotel) (*client.Store, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{hotels: hotels}
	s := client.NewStore()
	if err := s.Fetch(context.Background(), api); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	return s, api
}

func manyHotels(n int) []domain.Hotel {
	hs := make([]domain.Hotel, 0, n)
	for i := 1; i <= n; i++ {
		hs = append(hs, domain.Hotel{
			ID:    int64(i),
			Title: fmt.Sprintf("Hotel %02d", i),
			Price: i * 100,
		})
	}
	return hs
}

func TestListView_Pagination(t *testing.T) {
	s, _ := loadedStore(t, manyHotels(13))
	v := client.NewListView(s)

	if got := v.PageCount(); got != 3 {
		t.Fatalf("PageCount = %d", got)
	}
	if got := len(v.Visible()); got != client.PageSize {
		t.Fatalf("page 1 size = %d", got)
	}

	v.SetPage(3)
	if got := v.Visible(); len(got) != 1 || got[0].ID != 13 {
		t.Fatalf("page 3: %+v", got)
	}

	// out-of-range requests are ignored
	v.SetPage(4)
	if v.Page() != 3 {
		t.Fatalf("page moved to %d", v.Page())
	}
	v.SetPage(0)
	if v.Page() != 3 {
		t.Fatalf("page moved to %d", v.Page())
	}
}

func TestListView_EmptyListHasNoPages(t *testing.T) {
	s, _ := loadedStore(t, nil)
	v := client.NewListView(s)
	if v.PageCount() != 0 {
		t.Fatalf("PageCount = %d", v.PageCount())
	}
	if got := v.Visible(); len(got) != 0 {
		t.Fatalf("visible on empty list: %+v", got)
	}
}

func TestListView_FiltersCombine(t *testing.T) {
	s, _ := loadedStore(t, []domain.Hotel{
		{ID: 1, Title: "Sea View", Price: 2500},
		{ID: 2, Title: "Seaside Palace", Price: 4000},
		{ID: 3, Title: "Mountain Lodge", Price: 2500},
	})
	v := client.NewListView(s)

	v.SetSearch("  SEA ")
	minP := 2000
	maxP := 3000
	v.SetMinPrice(&minP)
	v.SetMaxPrice(&maxP)

	got := v.Filtered()
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("filtered: %+v", got)
	}

	v.ClearFilters()
	if len(v.Filtered()) != 3 {
		t.Fatalf("filters not cleared")
	}
}

func TestListView_FilterChangeResetsPage(t *testing.T) {
	s, _ := loadedStore(t, manyHotels(13))
	v := client.NewListView(s)

	v.SetPage(3)
	v.SetSearch("hotel")
	if v.Page() != 1 {
		t.Fatalf("page = %d after search change", v.Page())
	}

	v.SetPage(2)
	p := 100
	v.SetMinPrice(&p)
	if v.Page() != 1 {
		t.Fatalf("page = %d after price change", v.Page())
	}
}

func TestListView_SourceChangeResetsPage(t *testing.T) {
	s, _ := loadedStore(t, manyHotels(13))
	v := client.NewListView(s)

	v.SetPage(3)
	s.Drop(1)
	if v.Page() != 1 {
		t.Fatalf("page = %d after source change", v.Page())
	}
}

func TestListView_DeleteIsTwoStep(t *testing.T) {
	s, api := loadedStore(t, manyHotels(3))
	v := client.NewListView(s)

	// nothing armed: confirm is a no-op
	if err := v.ConfirmDelete(context.Background(), api); err != nil {
		t.Fatalf("confirm without selection: %v", err)
	}
	if len(api.deleted) != 0 {
		t.Fatalf("delete dispatched without selection")
	}

	v.SelectDelete(2)
	if v.PendingDelete() != 2 {
		t.Fatalf("selection not armed")
	}
	v.CancelDelete()
	if err := v.ConfirmDelete(context.Background(), api); err != nil {
		t.Fatalf("confirm after cancel: %v", err)
	}
	if len(api.deleted) != 0 {
		t.Fatalf("cancelled delete still dispatched")
	}

	v.SelectDelete(2)
	if err := v.ConfirmDelete(context.Background(), api); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if len(api.deleted) != 1 || api.deleted[0] != 2 {
		t.Fatalf("deleted: %v", api.deleted)
	}
	if v.PendingDelete() != 0 {
		t.Fatalf("selection not cleared after success")
	}
	if _, ok := s.Find(2); ok {
		t.Fatalf("id 2 still in store")
	}
}

func TestListView_FailedDeleteKeepsSelection(t *testing.T) {
	s, api := loadedStore(t, manyHotels(3))
	v := client.NewListView(s)

	api.delErr = errors.New("connection refused")
	v.SelectDelete(2)
	if err := v.ConfirmDelete(context.Background(), api); err == nil {
		t.Fatalf("expected error")
	}
	if v.PendingDelete() != 2 {
		t.Fatalf("selection lost on failure")
	}
	if len(s.Hotels()) != 3 {
		t.Fatalf("store mutated on failure")
	}
}
