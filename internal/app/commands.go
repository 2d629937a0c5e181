package app

import (
	"context"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/Sughanthan-A-K/hotel-listing-fullstack/internal/domain"
	"github.com/Sughanthan-A-K/hotel-listing-fullstack/internal/filestore"
)

// CommandService owns the write paths: every mutation goes through it so file
// placement, row changes, and cache eviction stay in one place.
type CommandService struct {
	repo  domain.HotelRepository
	files filestore.Store
	cache domain.Cache
}

func NewCommandService(r domain.HotelRepository, f filestore.Store, c domain.Cache) *CommandService {
	return &CommandService{repo: r, files: f, cache: c}
}

type CreateHotel struct {
	Title       string
	Description string
	Latitude    float64
	Longitude   float64
	Price       int
	ImageName   string
	Image       io.Reader
}

type UpdateHotel struct {
	Patch     domain.HotelPatch
	ImageName string
	Image     io.Reader // nil when the image is unchanged
}

func (s *CommandService) Create(ctx context.Context, in CreateHotel) (domain.Hotel, error) {
	if in.Image == nil {
		return domain.Hotel{}, domain.Validation("Image is required")
	}
	if in.Title == "" || in.Price == 0 {
		return domain.Hotel{}, domain.Validation("Missing required fields")
	}

	url, err := s.files.Save(ctx, in.ImageName, in.Image)
	if err != nil {
		return domain.Hotel{}, err
	}

	h, err := s.repo.Insert(ctx, domain.Hotel{
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    url,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Price:       in.Price,
	})
	if err != nil {
		// Compensate: the row never landed, so the file must not stay behind.
		if rerr := s.files.Remove(ctx, url); rerr != nil {
			log.Warn().Err(rerr).Str("path", url).Msg("rollback file remove failed")
		}
		return domain.Hotel{}, err
	}

	s.invalidateLists(ctx)
	return h, nil
}

func (s *CommandService) Update(ctx context.Context, id int64, in UpdateHotel) (domain.Hotel, error) {
	if in.Patch.Empty() && in.Image == nil {
		return domain.Hotel{}, domain.Validation("No valid fields to update")
	}

	// Read first: an unknown id must fail before any file lands, and a
	// replaced image needs the old path for cleanup afterwards.
	prev, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}

	p := in.Patch
	var newFile string
	if in.Image != nil {
		url, err := s.files.Save(ctx, in.ImageName, in.Image)
		if err != nil {
			return domain.Hotel{}, err
		}
		newFile = url
		p.ImageURL = &newFile
	}

	h, err := s.repo.Update(ctx, id, p)
	if err != nil {
		if newFile != "" {
			if rerr := s.files.Remove(ctx, newFile); rerr != nil {
				log.Warn().Err(rerr).Str("path", newFile).Msg("rollback file remove failed")
			}
		}
		return domain.Hotel{}, err
	}

	// Replacing the image orphans the old file; drop it best-effort.
	if newFile != "" && prev.ImageURL != "" && prev.ImageURL != newFile {
		if rerr := s.files.Remove(ctx, prev.ImageURL); rerr != nil {
			log.Warn().Err(rerr).Str("path", prev.ImageURL).Msg("superseded file remove failed")
		}
	}

	_ = s.cache.Del(ctx, hotelKey(id))
	s.invalidateLists(ctx)
	return h, nil
}

func (s *CommandService) Delete(ctx context.Context, id int64) error {
	h, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	// Best-effort: a file that is already gone must not block the delete.
	if rerr := s.files.Remove(ctx, h.ImageURL); rerr != nil {
		log.Warn().Err(rerr).Str("path", h.ImageURL).Msg("file remove failed on delete")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	_ = s.cache.Del(ctx, hotelKey(id))
	s.invalidateLists(ctx)
	return nil
}

// invalidateLists evicts the unfiltered list variants writers are expected to
// perturb. Filtered variants age out within the cache TTL.
func (s *CommandService) invalidateLists(ctx context.Context) {
	_ = s.cache.Del(ctx, listKey(domain.ListQuery{}))
	_ = s.cache.Del(ctx, listKey(domain.ListQuery{Limit: domain.MaxListLimit}))
}
