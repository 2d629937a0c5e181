package domain

import "context"

type HotelRepository interface {
	// Write paths
	Insert(ctx context.Context, h Hotel) (Hotel, error)
	Update(ctx context.Context, id int64, p HotelPatch) (Hotel, error)
	Delete(ctx context.Context, id int64) error

	// Read paths
	Get(ctx context.Context, id int64) (Hotel, error)
	List(ctx context.Context, q ListQuery) ([]Hotel, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// ListQuery holds the conjunctive list filters. Nil means "not supplied".
// Title is a case-insensitive substring match; the price bounds are inclusive.
type ListQuery struct {
	Title    *string
	MinPrice *int
	MaxPrice *int
	Offset   int
	Limit    int
}

const (
	DefaultListLimit = 10
	MaxListLimit     = 100
)

// Normalize applies the default offset/limit and clamps the limit.
func (q ListQuery) Normalize() ListQuery {
	if q.Offset < 0 {
		q.Offset = 0
	}
	if q.Limit <= 0 {
		q.Limit = DefaultListLimit
	}
	if q.Limit > MaxListLimit {
		q.Limit = MaxListLimit
	}
	return q
}
