package storage_vector

import (
	"context"

	"github.com/NidaEsenn/CineMatch/internal/model"
)

type Repository interface {
	VectorOf(ctx context.Context, movieID model.MovieID) (model.Embedding, error)
}

type Cache interface {
	Get(movieID model.MovieID) (model.Embedding, bool)
	Set(movieID model.MovieID, e model.Embedding) error
}

// Storage layers a best-effort cache over the authoritative vector
// repository. A miss or cache failure always falls through to a fresh
// fetch; a stale default is never served.
type Storage struct {
	repo  Repository
	cache Cache
}

func New(
	repo Repository,
	cache Cache,
) *Storage {
	return &Storage{
		repo:  repo,
		cache: cache,
	}
}

func (s *Storage) VectorOf(ctx context.Context, movieID model.MovieID) (model.Embedding, error) {
	if s.cache != nil {
		if e, ok := s.cache.Get(movieID); ok {
			return e, nil
		}
	}

	e, err := s.repo.VectorOf(ctx, movieID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		// Backfill is best effort.
		_ = s.cache.Set(movieID, e)
	}

	return e, nil
}
