package refiner

import (
	"context"
	"log/slog"
	"math"

	"github.com/NidaEsenn/CineMatch/internal/model"
)

// VectorSource resolves a movie's precomputed embedding. A failed or
// empty lookup is not an error of the refinement: that movie simply
// contributes nothing to its centroid.
type VectorSource interface {
	VectorOf(ctx context.Context, movieID model.MovieID) (model.Embedding, error)
}

const (
	DefaultLikeWeight    = 0.3
	DefaultDislikeWeight = 0.2
	DefaultMinSwipes     = 3
)

// Refiner nudges a participant's query vector toward the centroid of
// their liked movies and away from the centroid of their disliked
// ones:
//
//	refined = normalize(initial + likeWeight*liked - dislikeWeight*disliked)
//
// It is a cheap linear adjustment re-derivable from the raw swipe
// list at any time; nothing trained is kept between calls.
type Refiner struct {
	vectors VectorSource

	likeWeight    float64
	dislikeWeight float64
	minSwipes     int
	logger        *slog.Logger
}

type Option func(*Refiner)

func WithWeights(like, dislike float64) Option {
	return func(r *Refiner) {
		r.likeWeight = like
		r.dislikeWeight = dislike
	}
}

func WithMinSwipes(n int) Option {
	return func(r *Refiner) {
		r.minSwipes = n
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Refiner) {
		r.logger = logger
	}
}

func New(vectors VectorSource, opts ...Option) *Refiner {
	r := &Refiner{
		vectors:       vectors,
		likeWeight:    DefaultLikeWeight,
		dislikeWeight: DefaultDislikeWeight,
		minSwipes:     DefaultMinSwipes,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Refiner) MinSwipes() int {
	return r.minSwipes
}

// Refine returns the adjusted vector and whether refinement was
// applied. Below the swipe threshold the initial vector comes back
// untouched. Skips carry no signal; swipes whose movie vector cannot
// be resolved are dropped from their centroid.
func (r *Refiner) Refine(ctx context.Context, swipes []model.SwipeRecord, initial model.Embedding) (model.Embedding, bool) {
	if len(swipes) < r.minSwipes {
		return initial, false
	}

	var likedIDs, dislikedIDs []model.MovieID
	for _, s := range swipes {
		switch s.Action {
		case model.ActionLike:
			likedIDs = append(likedIDs, s.MovieID)
		case model.ActionDislike:
			dislikedIDs = append(dislikedIDs, s.MovieID)
		}
	}

	refined := make([]float64, len(initial))
	for i, v := range initial {
		refined[i] = float64(v)
	}

	if liked := r.resolveVectors(ctx, likedIDs, len(initial)); len(liked) > 0 {
		centroid := meanVector(liked)
		for i := range refined {
			refined[i] += r.likeWeight * centroid[i]
		}
	}

	if disliked := r.resolveVectors(ctx, dislikedIDs, len(initial)); len(disliked) > 0 {
		centroid := meanVector(disliked)
		for i := range refined {
			refined[i] -= r.dislikeWeight * centroid[i]
		}
	}

	var norm float64
	for _, v := range refined {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range refined {
			refined[i] /= norm
		}
	}

	out := make(model.Embedding, len(refined))
	for i, v := range refined {
		out[i] = float32(v)
	}

	return out, true
}

func (r *Refiner) resolveVectors(ctx context.Context, ids []model.MovieID, dim int) []model.Embedding {
	vectors := make([]model.Embedding, 0, len(ids))
	for _, id := range ids {
		e, err := r.vectors.VectorOf(ctx, id)
		if err != nil {
			r.logger.Debug("movie vector unavailable, skipping",
				slog.Int64("movie_id", int64(id)),
				slog.String("error", err.Error()))
			continue
		}
		if len(e) != dim {
			continue
		}
		vectors = append(vectors, e)
	}
	return vectors
}

func meanVector(vectors []model.Embedding) []float64 {
	dim := len(vectors[0])
	mean := make([]float64, dim)
	for _, v := range vectors {
		for i := range dim {
			mean[i] += float64(v[i])
		}
	}
	for i := range dim {
		mean[i] /= float64(len(vectors))
	}
	return mean
}
