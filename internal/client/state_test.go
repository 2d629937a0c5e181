package client_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Sughanthan-A-K/hotel-listing-fullstack/internal/client"
	"github.com/Sughanthan-A-K/hotel-listing-fullstack/internal/domain"
)

type fakeAPI struct {
	hotels  []domain.Hotel
	listErr error
	delErr  error

	listCalls int
	deleted   []int64
}

func (f *fakeAPI) List(ctx context.Context, p client.ListParams) ([]domain.Hotel, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.hotels, nil
}

func (f *fakeAPI) Delete(ctx context.Context, id int64) error {
	if f.delErr != nil {
		return f.delErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func threeHotels() []domain.Hotel {
	return []domain.Hotel{
		{ID: 3, Title: "Sea View", Price: 2500},
		{ID: 2, Title: "Mountain Lodge", Price: 900},
		{ID: 1, Title: "City Stay", Price: 1200},
	}
}

func TestStore_FetchReplacesList(t *testing.T) {
	api := &fakeAPI{hotels: threeHotels()}
	s := client.NewStore()

	if err := s.Fetch(context.Background(), api); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if s.Loading() {
		t.Fatalf("loading flag stuck")
	}
	if got := s.Hotels(); len(got) != 3 || got[0].ID != 3 {
		t.Fatalf("unexpected list: %+v", got)
	}
	if s.Err() != "" {
		t.Fatalf("unexpected error %q", s.Err())
	}
}

func TestStore_FetchErrorKeepsOldData(t *testing.T) {
	api := &fakeAPI{hotels: threeHotels()}
	s := client.NewStore()
	_ = s.Fetch(context.Background(), api)

	api.listErr = errors.New("connection refused")
	if err := s.Fetch(context.Background(), api); err == nil {
		t.Fatalf("expected error")
	}
	if s.Err() != "connection refused" {
		t.Fatalf("error not recorded: %q", s.Err())
	}
	if len(s.Hotels()) != 3 {
		t.Fatalf("stale data dropped on failed refresh")
	}

	// a successful fetch clears the recorded error
	api.listErr = nil
	_ = s.Fetch(context.Background(), api)
	if s.Err() != "" {
		t.Fatalf("error not cleared: %q", s.Err())
	}
}

func TestStore_EnsureLoadedFetchesOnce(t *testing.T) {
	api := &fakeAPI{hotels: threeHotels()}
	s := client.NewStore()

	_ = s.EnsureLoaded(context.Background(), api)
	_ = s.EnsureLoaded(context.Background(), api)
	if api.listCalls != 1 {
		t.Fatalf("listCalls = %d", api.listCalls)
	}

	// an explicit Fetch still refreshes
	_ = s.Fetch(context.Background(), api)
	if api.listCalls != 2 {
		t.Fatalf("listCalls = %d", api.listCalls)
	}
}

func TestStore_DeleteDropsLocally(t *testing.T) {
	api := &fakeAPI{hotels: threeHotels()}
	s := client.NewStore()
	_ = s.Fetch(context.Background(), api)

	gen := s.Generation()
	if err := s.Delete(context.Background(), api, 2); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(api.deleted) != 1 || api.deleted[0] != 2 {
		t.Fatalf("server delete calls: %v", api.deleted)
	}
	if _, ok := s.Find(2); ok {
		t.Fatalf("id 2 still cached")
	}
	if len(s.Hotels()) != 2 {
		t.Fatalf("unexpected list length")
	}
	if s.Generation() == gen {
		t.Fatalf("generation did not advance")
	}
}

func TestStore_DeleteFailureLeavesListIntact(t *testing.T) {
	api := &fakeAPI{hotels: threeHotels()}
	s := client.NewStore()
	_ = s.Fetch(context.Background(), api)

	api.delErr = domain.ErrNotFound
	if err := s.Delete(context.Background(), api, 2); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(s.Hotels()) != 3 {
		t.Fatalf("local list mutated on failed delete")
	}
}

func TestStore_HotelsReturnsCopy(t *testing.T) {
	api := &fakeAPI{hotels: threeHotels()}
	s := client.NewStore()
	_ = s.Fetch(context.Background(), api)

	got := s.Hotels()
	got[0].Title = "mutated"
	if fresh := s.Hotels(); fresh[0].Title == "mutated" {
		t.Fatalf("caller mutation leaked into the store")
	}
}
