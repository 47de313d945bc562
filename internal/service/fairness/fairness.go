package fairness

import (
	"sort"

	"github.com/NidaEsenn/CineMatch/internal/model"
)

// Blender merges independently retrieved per-participant candidate
// sets into one ranking under a least-misery blend:
//
//	fair = (1 - weight) * avg + weight * min
//
// weight 0 is pure average, weight 1 is pure least misery.
type Blender struct{}

func New() *Blender {
	return &Blender{}
}

// Aggregate builds the group ranking. candidates maps participant name
// to that participant's retrieved movie scores. A participant whose set
// misses a movie contributes 0 to avg and min for it: a movie never
// retrieved for someone is punished under high weight on purpose.
//
// With exactly one participant blending is bypassed and the ranking
// reduces to that participant's own scores.
func (b *Blender) Aggregate(
	participants []model.Participant,
	candidates map[string]map[model.MovieID]float64,
	weight float64,
	limit int,
) []model.FairCandidate {
	if len(participants) == 0 {
		return []model.FairCandidate{}
	}

	if len(participants) == 1 {
		return b.soloRanking(participants[0], candidates[participants[0].Name], limit)
	}

	merged := make(map[model.MovieID]map[string]float64)
	for _, p := range participants {
		for movieID, score := range candidates[p.Name] {
			if _, ok := merged[movieID]; !ok {
				merged[movieID] = make(map[string]float64)
			}
			merged[movieID][p.Name] = score
		}
	}

	scored := make([]model.FairCandidate, 0, len(merged))
	for movieID, individual := range merged {
		var sum float64
		minScore := individual[participants[0].Name]
		for _, p := range participants {
			score := individual[p.Name]
			sum += score
			if score < minScore {
				minScore = score
			}
		}
		avgScore := sum / float64(len(participants))

		scored = append(scored, model.FairCandidate{
			MovieID:          movieID,
			FairScore:        (1-weight)*avgScore + weight*minScore,
			AvgScore:         avgScore,
			MinScore:         minScore,
			IndividualScores: individual,
		})
	}

	sortCandidates(scored)
	return truncate(scored, limit)
}

func (b *Blender) soloRanking(p model.Participant, scores map[model.MovieID]float64, limit int) []model.FairCandidate {
	ranked := make([]model.FairCandidate, 0, len(scores))
	for movieID, score := range scores {
		ranked = append(ranked, model.FairCandidate{
			MovieID:          movieID,
			FairScore:        score,
			AvgScore:         score,
			MinScore:         score,
			IndividualScores: map[string]float64{p.Name: score},
		})
	}

	sortCandidates(ranked)
	return truncate(ranked, limit)
}

// Ties on fair score fall back to avg score, then ascending movie id
// so equal inputs always produce the same ranking.
func sortCandidates(cs []model.FairCandidate) {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].FairScore != cs[j].FairScore {
			return cs[i].FairScore > cs[j].FairScore
		}
		if cs[i].AvgScore != cs[j].AvgScore {
			return cs[i].AvgScore > cs[j].AvgScore
		}
		return cs[i].MovieID < cs[j].MovieID
	})
}

func truncate(cs []model.FairCandidate, limit int) []model.FairCandidate {
	if limit > 0 && len(cs) > limit {
		return cs[:limit]
	}
	return cs
}
