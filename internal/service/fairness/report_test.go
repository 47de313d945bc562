package fairness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NidaEsenn/CineMatch/internal/model"
)

func TestReport(t *testing.T) {
	t.Parallel()

	blender := New()

	t.Run("Should report perfect fairness for a single participant", func(t *testing.T) {
		t.Parallel()

		results := []model.FairCandidate{
			{MovieID: 1, IndividualScores: map[string]float64{"Alice": 0.3}},
			{MovieID: 2, IndividualScores: map[string]float64{"Alice": 0.9}},
		}

		report := blender.Report(results, participants("Alice"))

		assert.Equal(t, 1.0, report.OverallFairness)
		assert.InDelta(t, 0.6, report.UserSatisfaction["Alice"], 1e-9)
		assert.Equal(t, "Alice", report.LeastSatisfied)
		assert.Equal(t, "Alice", report.MostSatisfied)
	})

	t.Run("Should scale variance by ten", func(t *testing.T) {
		t.Parallel()

		results := []model.FairCandidate{
			{MovieID: 1, IndividualScores: map[string]float64{"Alice": 0.8, "Bob": 0.4}},
		}

		report := blender.Report(results, participants("Alice", "Bob"))

		// means 0.8 and 0.4, variance 0.04, fairness 1 - 0.4
		assert.InDelta(t, 0.6, report.OverallFairness, 1e-9)
		assert.Equal(t, "Bob", report.LeastSatisfied)
		assert.Equal(t, "Alice", report.MostSatisfied)
	})

	t.Run("Should clamp fairness at zero", func(t *testing.T) {
		t.Parallel()

		results := []model.FairCandidate{
			{MovieID: 1, IndividualScores: map[string]float64{"Alice": 1.0, "Bob": 0.0}},
		}

		report := blender.Report(results, participants("Alice", "Bob"))

		assert.Equal(t, 0.0, report.OverallFairness)
	})

	t.Run("Should count absent scores as zero", func(t *testing.T) {
		t.Parallel()

		results := []model.FairCandidate{
			{MovieID: 1, IndividualScores: map[string]float64{"Alice": 0.6}},
			{MovieID: 2, IndividualScores: map[string]float64{"Alice": 0.6, "Bob": 0.4}},
		}

		report := blender.Report(results, participants("Alice", "Bob"))

		require.Contains(t, report.UserSatisfaction, "Bob")
		assert.InDelta(t, 0.2, report.UserSatisfaction["Bob"], 1e-9)
	})

	t.Run("Should break satisfaction ties by name", func(t *testing.T) {
		t.Parallel()

		results := []model.FairCandidate{
			{MovieID: 1, IndividualScores: map[string]float64{"Zoe": 0.5, "Amy": 0.5}},
		}

		report := blender.Report(results, participants("Zoe", "Amy"))

		assert.Equal(t, "Amy", report.LeastSatisfied)
		assert.Equal(t, "Zoe", report.MostSatisfied)
	})

	t.Run("Should return zero report for empty input", func(t *testing.T) {
		t.Parallel()

		report := blender.Report(nil, participants("Alice"))

		assert.Equal(t, model.FairnessReport{}, report)
	})
}
