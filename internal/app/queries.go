package app

import (
	"context"
	"time"

	"github.com/Sughanthan-A-K/hotel-listing-fullstack/internal/domain"
)

type QueryService struct {
	repo     domain.HotelRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.HotelRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *QueryService) Get(ctx context.Context, id int64) (domain.Hotel, error) {
	key := hotelKey(id)
	var h domain.Hotel
	if ok, _ := s.cache.Get(ctx, key, &h); ok {
		return h, nil
	}
	h, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	_ = s.cache.Set(ctx, key, h, int(s.cacheTTL.Seconds()))
	return h, nil
}

func (s *QueryService) List(ctx context.Context, q domain.ListQuery) ([]domain.Hotel, error) {
	q = q.Normalize()
	key := listKey(q)
	var out []domain.Hotel
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}

	hs, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	if hs == nil {
		hs = []domain.Hotel{}
	}

	// copy before caching so callers can't mutate the cached value
	cp := make([]domain.Hotel, len(hs))
	copy(cp, hs)
	_ = s.cache.Set(ctx, key, cp, int(s.cacheTTL.Seconds()))
	return hs, nil
}
