package usecase_recommend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/NidaEsenn/CineMatch/internal/model"
	"github.com/NidaEsenn/CineMatch/internal/service/fairness"
	"github.com/NidaEsenn/CineMatch/internal/service/query_builder"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrFailedToEmbedQuery  = errors.New("failed to embed query")
	ErrFailedToSearchIndex = errors.New("failed to search similarity index")
	ErrFailedToLoadMeta    = errors.New("failed to load meta")
)

type Embedder interface {
	EmbedQuery(ctx context.Context, text string) (model.Embedding, error)
}

type SimilarityIndex interface {
	Search(ctx context.Context, e model.Embedding, k int) ([]model.CandidateScore, error)
}

type MetaRepository interface {
	LoadByIDs(ctx context.Context, ids []model.MovieID) ([]*model.MovieMeta, error)
}

// Ranker is the external best-effort re-ranker. An error from it is
// not a request failure: the caller keeps its own fair ordering.
type Ranker interface {
	Rank(ctx context.Context, participants []model.Participant, candidates []model.RankCandidate, count int) ([]model.RankedPick, error)
}

type Refiner interface {
	Refine(ctx context.Context, swipes []model.SwipeRecord, initial model.Embedding) (model.Embedding, bool)
}

type FeedbackStore interface {
	UserSwipes(sessionID model.SessionID, userName string) []model.SwipeRecord
	SeenFilms(sessionID model.SessionID) []model.MovieID
}

type RankOptions struct {
	NCandidates    int
	NResults       int
	FairnessWeight float64
}

const (
	DefaultNCandidates    = 30
	DefaultNResults       = 30
	DefaultFairnessWeight = 0.4
	DefaultCount          = 10
)

func DefaultRankOptions() RankOptions {
	return RankOptions{
		NCandidates:    DefaultNCandidates,
		NResults:       DefaultNResults,
		FairnessWeight: DefaultFairnessWeight,
	}
}

type Usecase struct {
	embedder Embedder
	index    SimilarityIndex
	meta     MetaRepository
	ranker   Ranker
	refiner  Refiner
	feedback FeedbackStore

	queries *query_builder.Builder
	blender *fairness.Blender
	logger  *slog.Logger
}

type Option func(*Usecase)

func WithLogger(logger *slog.Logger) Option {
	return func(u *Usecase) {
		u.logger = logger
	}
}

func New(
	embedder Embedder,
	index SimilarityIndex,
	meta MetaRepository,
	ranker Ranker,
	refiner Refiner,
	feedback FeedbackStore,
	opts ...Option,
) *Usecase {
	u := &Usecase{
		embedder: embedder,
		index:    index,
		meta:     meta,
		ranker:   ranker,
		refiner:  refiner,
		feedback: feedback,
		queries:  query_builder.New(),
		blender:  fairness.New(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func validate(participants []model.Participant, opts RankOptions) error {
	if len(participants) == 0 {
		return fmt.Errorf("%w: at least one participant required", ErrInvalidInput)
	}
	if opts.FairnessWeight < 0 || opts.FairnessWeight > 1 {
		return fmt.Errorf("%w: fairness weight must be in [0,1]", ErrInvalidInput)
	}
	return nil
}

// FairRank retrieves each participant's candidate set and merges them
// into one fair ranking. A participant with no moods and no note
// contributes an empty set and therefore zeros toward every group
// average; they stay in the denominator on purpose.
func (u *Usecase) FairRank(ctx context.Context, participants []model.Participant, opts RankOptions) ([]model.FairCandidate, error) {
	if err := validate(participants, opts); err != nil {
		return nil, err
	}

	candidates := make(map[string]map[model.MovieID]float64, len(participants))
	for _, p := range participants {
		set, err := u.fetchCandidates(ctx, p, opts.NCandidates)
		if err != nil {
			return nil, err
		}
		candidates[p.Name] = set
	}

	return u.blender.Aggregate(participants, candidates, opts.FairnessWeight, opts.NResults), nil
}

// FairRankWithFeedback is FairRank steered by the session's swipe
// history: already-seen movies are excluded and each participant's
// query vector is refined once they have enough swipes. The returned
// flag is true iff at least one participant's query used a refined
// vector.
func (u *Usecase) FairRankWithFeedback(
	ctx context.Context,
	participants []model.Participant,
	sessionID model.SessionID,
	opts RankOptions,
) ([]model.FairCandidate, bool, error) {
	if err := validate(participants, opts); err != nil {
		return nil, false, err
	}

	seen := u.feedback.SeenFilms(sessionID)
	seenSet := make(map[model.MovieID]struct{}, len(seen))
	for _, id := range seen {
		seenSet[id] = struct{}{}
	}

	anyApplied := false
	candidates := make(map[string]map[model.MovieID]float64, len(participants))

	for _, p := range participants {
		query := u.queries.Build(p.Moods, p.Note)
		if query == "" {
			candidates[p.Name] = map[model.MovieID]float64{}
			continue
		}

		embedding, err := u.embedder.EmbedQuery(ctx, query)
		if err != nil {
			return nil, false, fmt.Errorf("%w: %w", ErrFailedToEmbedQuery, err)
		}

		refined, applied := u.refiner.Refine(ctx, u.feedback.UserSwipes(sessionID, p.Name), embedding)
		if applied {
			anyApplied = true
		}

		// Over-fetch to absorb the seen-film exclusions.
		scores, err := u.index.Search(ctx, refined, opts.NCandidates+len(seen))
		if err != nil {
			return nil, false, fmt.Errorf("%w: %w", ErrFailedToSearchIndex, err)
		}

		set := make(map[model.MovieID]float64, opts.NCandidates)
		for _, cs := range scores {
			if len(set) >= opts.NCandidates {
				break
			}
			if _, ok := seenSet[cs.MovieID]; ok {
				continue
			}
			set[cs.MovieID] = cs.Score
		}
		candidates[p.Name] = set
	}

	ranked := u.blender.Aggregate(participants, candidates, opts.FairnessWeight, opts.NResults)
	return ranked, anyApplied, nil
}

// FairnessStats reports per-user satisfaction over an already
// truncated result list.
func (u *Usecase) FairnessStats(results []model.FairCandidate, participants []model.Participant) model.FairnessReport {
	return u.blender.Report(results, participants)
}

func (u *Usecase) fetchCandidates(ctx context.Context, p model.Participant, n int) (map[model.MovieID]float64, error) {
	query := u.queries.Build(p.Moods, p.Note)
	if query == "" {
		return map[model.MovieID]float64{}, nil
	}

	embedding, err := u.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToEmbedQuery, err)
	}

	scores, err := u.index.Search(ctx, embedding, n)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToSearchIndex, err)
	}

	set := make(map[model.MovieID]float64, len(scores))
	for _, cs := range scores {
		set[cs.MovieID] = cs.Score
	}
	return set, nil
}
