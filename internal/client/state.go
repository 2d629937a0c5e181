package client

import (
	"context"
	"sync"

	"github.com/Sughanthan-A-K/hotel-listing-fullstack/internal/domain"
)

// Lister and Deleter are the slices of Client the store needs; tests hand in
// fakes.
type Lister interface {
	List(ctx context.Context, p ListParams) ([]domain.Hotel, error)
}

type Deleter interface {
	Delete(ctx context.Context, id int64) error
}

// Store caches the full hotel list last fetched from the API, plus the
// loading flag and the last fetch error. Views derive everything else from it.
type Store struct {
	mu      sync.Mutex
	hotels  []domain.Hotel
	loading bool
	err     string
	loaded  bool
	gen     uint64
}

func NewStore() *Store { return &Store{} }

// Fetch loads the whole list: loading is set and the previous error cleared
// before the call, then either the data is replaced wholesale or the error
// recorded.
func (s *Store) Fetch(ctx context.Context, api Lister) error {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	hs, err := api.List(ctx, ListParams{Limit: domain.MaxListLimit})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return err
	}
	s.hotels = hs
	s.loaded = true
	s.gen++
	return nil
}

// EnsureLoaded fetches once; later calls are no-ops until the next Fetch.
func (s *Store) EnsureLoaded(ctx context.Context, api Lister) error {
	s.mu.Lock()
	done := s.loaded || s.loading
	s.mu.Unlock()
	if done {
		return nil
	}
	return s.Fetch(ctx, api)
}

// Delete removes the record on the server, then drops it from the local list.
// No re-fetch: the server confirmed the deletion.
func (s *Store) Delete(ctx context.Context, api Deleter, id int64) error {
	if err := api.Delete(ctx, id); err != nil {
		return err
	}
	s.Drop(id)
	return nil
}

// Drop removes a record from the local list by id.
func (s *Store) Drop(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.hotels[:0]
	for _, h := range s.hotels {
		if h.ID != id {
			out = append(out, h)
		}
	}
	s.hotels = out
	s.gen++
}

// Hotels returns a copy of the cached list.
func (s *Store) Hotels() []domain.Hotel {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]domain.Hotel, len(s.hotels))
	copy(cp, s.hotels)
	return cp
}

func (s *Store) Find(id int64) (domain.Hotel, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range s.hotels {
		if h.ID == id {
			return h, true
		}
	}
	return domain.Hotel{}, false
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Generation increments whenever the cached list changes; views use it to
// notice source-data changes.
func (s *Store) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}
