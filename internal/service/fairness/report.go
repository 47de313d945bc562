package fairness

import (
	"sort"

	"github.com/NidaEsenn/CineMatch/internal/model"
)

// Report summarizes how well a shown ranking served each participant.
// Satisfaction is a participant's mean individual score across the
// list, with absent entries counting 0, mirroring Aggregate.
//
// Overall fairness is max(0, 1 - 10*variance) over the per-user means:
// the x10 scaling makes a variance above 0.1 collapse fairness to 0.
// A single participant is always reported perfectly fair.
func (b *Blender) Report(results []model.FairCandidate, participants []model.Participant) model.FairnessReport {
	if len(results) == 0 || len(participants) == 0 {
		return model.FairnessReport{}
	}

	satisfaction := make(map[string]float64, len(participants))
	for _, p := range participants {
		var sum float64
		for _, rec := range results {
			sum += rec.IndividualScores[p.Name]
		}
		satisfaction[p.Name] = sum / float64(len(results))
	}

	names := make([]string, 0, len(participants))
	for _, p := range participants {
		names = append(names, p.Name)
	}
	sort.Slice(names, func(i, j int) bool {
		if satisfaction[names[i]] != satisfaction[names[j]] {
			return satisfaction[names[i]] < satisfaction[names[j]]
		}
		return names[i] < names[j]
	})

	overall := 1.0
	if len(satisfaction) > 1 {
		var mean float64
		for _, s := range satisfaction {
			mean += s
		}
		mean /= float64(len(satisfaction))

		var variance float64
		for _, s := range satisfaction {
			variance += (s - mean) * (s - mean)
		}
		variance /= float64(len(satisfaction))

		overall = 1.0 - variance*10
		if overall < 0 {
			overall = 0
		}
	}

	return model.FairnessReport{
		OverallFairness:  overall,
		UserSatisfaction: satisfaction,
		LeastSatisfied:   names[0],
		MostSatisfied:    names[len(names)-1],
	}
}
