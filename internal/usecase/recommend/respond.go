package usecase_recommend

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/NidaEsenn/CineMatch/internal/model"
)

type RecommendRequest struct {
	Participants []model.Participant
	SessionID    model.SessionID
	Count        int
	Options      RankOptions
}

// Recommend runs the full pipeline: fair ranking (feedback-aware when
// a session id is supplied), catalog enrichment, the external ranker,
// and the fairness fallback when the ranker fails.
func (u *Usecase) Recommend(ctx context.Context, req RecommendRequest) (model.GroupRecommendation, error) {
	if req.Count <= 0 {
		req.Count = DefaultCount
	}
	if req.Options == (RankOptions{}) {
		req.Options = DefaultRankOptions()
	}

	var (
		fair            []model.FairCandidate
		feedbackApplied bool
		seenCount       int
		err             error
	)

	if req.SessionID == model.EmptySessionID {
		fair, err = u.FairRank(ctx, req.Participants, req.Options)
	} else {
		seenCount = len(u.feedback.SeenFilms(req.SessionID))
		fair, feedbackApplied, err = u.FairRankWithFeedback(ctx, req.Participants, req.SessionID, req.Options)
	}
	if err != nil {
		return model.GroupRecommendation{}, err
	}

	candidates, err := u.enrich(ctx, fair)
	if err != nil {
		return model.GroupRecommendation{}, err
	}

	recommendations, source := u.rankOrFallback(ctx, req.Participants, candidates, req.Count)

	out := model.GroupRecommendation{
		Recommendations: recommendations,
		Source:          source,
		FairnessApplied: len(req.Participants) > 1,
		FeedbackApplied: feedbackApplied,
		SeenCount:       seenCount,
	}

	if len(req.Participants) > 1 && len(fair) > 0 {
		shown := fair
		if len(shown) > req.Count {
			shown = shown[:req.Count]
		}
		report := u.blender.Report(shown, req.Participants)
		out.FairnessStats = &report
	}

	return out, nil
}

// enrich joins the fair ranking with catalog metadata, keeping the
// fair order. Movies missing from the catalog are dropped silently.
func (u *Usecase) enrich(ctx context.Context, fair []model.FairCandidate) ([]model.RankCandidate, error) {
	ids := make([]model.MovieID, 0, len(fair))
	for _, c := range fair {
		ids = append(ids, c.MovieID)
	}

	metas, err := u.meta.LoadByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToLoadMeta, err)
	}

	byID := make(map[model.MovieID]*model.MovieMeta, len(metas))
	for _, mm := range metas {
		byID[mm.ID] = mm
	}

	candidates := make([]model.RankCandidate, 0, len(fair))
	for _, c := range fair {
		mm, ok := byID[c.MovieID]
		if !ok {
			continue
		}
		candidates = append(candidates, model.RankCandidate{
			Meta:             *mm,
			FairScore:        c.FairScore,
			AvgScore:         c.AvgScore,
			MinScore:         c.MinScore,
			IndividualScores: c.IndividualScores,
		})
	}

	return candidates, nil
}

func (u *Usecase) rankOrFallback(
	ctx context.Context,
	participants []model.Participant,
	candidates []model.RankCandidate,
	count int,
) ([]model.Recommendation, model.RankSource) {
	byID := make(map[model.MovieID]model.RankCandidate, len(candidates))
	for _, c := range candidates {
		byID[c.Meta.ID] = c
	}

	picks, err := u.ranker.Rank(ctx, participants, candidates, count)
	if err == nil {
		recommendations := make([]model.Recommendation, 0, count)
		for _, pick := range picks {
			if len(recommendations) >= count {
				break
			}
			cand, ok := byID[pick.MovieID]
			if !ok {
				continue
			}
			recommendations = append(recommendations, buildRecommendation(cand, pick.Why))
		}
		return recommendations, model.SourceRanker
	}

	u.logger.Warn("ranking service failed, falling back to fair ordering",
		slog.String("error", err.Error()))

	recommendations := make([]model.Recommendation, 0, count)
	for _, cand := range candidates {
		if len(recommendations) >= count {
			break
		}
		recommendations = append(recommendations, buildRecommendation(cand, fallbackWhy(cand, participants)))
	}
	return recommendations, model.SourceFairness
}

// fallbackWhy synthesizes a human-readable justification from the
// per-participant similarity percentages.
func fallbackWhy(cand model.RankCandidate, participants []model.Participant) string {
	parts := make([]string, 0, len(participants))
	for _, p := range participants {
		score, ok := cand.IndividualScores[p.Name]
		if !ok {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %d%%", p.Name, int(score*100)))
	}

	if len(parts) == 0 {
		return "Recommended based on group preferences"
	}
	return "Fair match - " + strings.Join(parts, ", ")
}

func buildRecommendation(cand model.RankCandidate, why string) model.Recommendation {
	return model.Recommendation{
		MovieID:    cand.Meta.ID,
		Title:      cand.Meta.Title,
		Why:        why,
		PosterLink: cand.Meta.PosterLink,
		Overview:   cand.Meta.Overview,
		Genres:     cand.Meta.Genres,
		Year:       cand.Meta.Year,
		Rating:     cand.Meta.Rating,
	}
}
