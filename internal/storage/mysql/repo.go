package mysql

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Sughanthan-A-K/hotel-listing-fullstack/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Insert(ctx context.Context, h domain.Hotel) (domain.Hotel, error) {
	res, err := r.db.ExecContext(ctx, insertHotelSQL,
		h.Title, h.Description, h.ImageURL, h.Latitude, h.Longitude, h.Price)
	if err != nil {
		return domain.Hotel{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Hotel{}, err
	}
	// Re-read so the caller sees the server-assigned timestamps.
	return r.Get(ctx, id)
}

// buildUpdate assembles "UPDATE hotels SET ... WHERE id = ?" from the patch.
// updated_at is always refreshed, even for an image-only change.
func buildUpdate(id int64, p domain.HotelPatch) (string, []any) {
	sets := make([]string, 0, 7)
	args := make([]any, 0, 7)
	if p.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *p.Title)
	}
	if p.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *p.Description)
	}
	if p.Latitude != nil {
		sets = append(sets, "latitude = ?")
		args = append(args, *p.Latitude)
	}
	if p.Longitude != nil {
		sets = append(sets, "longitude = ?")
		args = append(args, *p.Longitude)
	}
	if p.Price != nil {
		sets = append(sets, "price = ?")
		args = append(args, *p.Price)
	}
	if p.ImageURL != nil {
		sets = append(sets, "image_url = ?")
		args = append(args, *p.ImageURL)
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)
	return "UPDATE hotels SET " + strings.Join(sets, ", ") + " WHERE id = ?", args
}

func (r *Repo) Update(ctx context.Context, id int64, p domain.HotelPatch) (domain.Hotel, error) {
	query, args := buildUpdate(id, p)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return domain.Hotel{}, err
	}
	// The UPDATE matches zero rows for an unknown id; the re-read turns that
	// into ErrNotFound instead of silently returning nothing.
	return r.Get(ctx, id)
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteHotelSQL, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, id int64) (domain.Hotel, error) {
	var h domain.Hotel
	err := r.db.QueryRowContext(ctx, getHotelSQL, id).Scan(
		&h.ID, &h.Title, &h.Description, &h.ImageURL,
		&h.Latitude, &h.Longitude, &h.Price, &h.CreatedAt, &h.UpdatedAt)
	if err == sql.ErrNoRows {
		return domain.Hotel{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Hotel{}, err
	}
	return h, nil
}

// buildList appends one AND clause per supplied filter, then ordering and
// LIMIT/OFFSET. Title matching goes through LOWER() on both sides so it is
// case-insensitive regardless of column collation.
func buildList(q domain.ListQuery) (string, []any) {
	var b strings.Builder
	b.WriteString(listHotelsPrefix)
	args := make([]any, 0, 5)
	if q.Title != nil && *q.Title != "" {
		b.WriteString(" AND LOWER(title) LIKE LOWER(?)")
		args = append(args, "%"+*q.Title+"%")
	}
	if q.MinPrice != nil {
		b.WriteString(" AND price >= ?")
		args = append(args, *q.MinPrice)
	}
	if q.MaxPrice != nil {
		b.WriteString(" AND price <= ?")
		args = append(args, *q.MaxPrice)
	}
	b.WriteString(listHotelsSuffix)
	args = append(args, q.Limit, q.Offset)
	return b.String(), args
}

func (r *Repo) List(ctx context.Context, q domain.ListQuery) ([]domain.Hotel, error) {
	q = q.Normalize()
	query, args := buildList(q)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Hotel, 0, q.Limit)
	for rows.Next() {
		var h domain.Hotel
		if err := rows.Scan(
			&h.ID, &h.Title, &h.Description, &h.ImageURL,
			&h.Latitude, &h.Longitude, &h.Price, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
