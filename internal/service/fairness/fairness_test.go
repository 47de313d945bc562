package fairness

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NidaEsenn/CineMatch/internal/model"
)

func participants(names ...string) []model.Participant {
	ps := make([]model.Participant, 0, len(names))
	for _, name := range names {
		ps = append(ps, model.Participant{Name: name})
	}
	return ps
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	blender := New()

	t.Run("Should rank by least misery under full weight", func(t *testing.T) {
		t.Parallel()

		candidates := map[string]map[model.MovieID]float64{
			"Alice": {1: 0.9, 2: 0.2},
			"Bob":   {1: 0.1, 3: 0.8},
		}

		results := blender.Aggregate(participants("Alice", "Bob"), candidates, 1.0, 0)

		require.Len(t, results, 3)
		assert.Equal(t, model.MovieID(1), results[0].MovieID)
		assert.Equal(t, model.MovieID(3), results[1].MovieID)
		assert.Equal(t, model.MovieID(2), results[2].MovieID)
	})

	t.Run("Should zero-fill movies a participant never retrieved", func(t *testing.T) {
		t.Parallel()

		candidates := map[string]map[model.MovieID]float64{
			"Alice": {7: 0.8},
			"Bob":   {},
		}

		results := blender.Aggregate(participants("Alice", "Bob"), candidates, 0.5, 0)

		require.Len(t, results, 1)
		assert.InDelta(t, 0.4, results[0].AvgScore, 1e-9)
		assert.Equal(t, 0.0, results[0].MinScore)
	})

	t.Run("Should keep fair score between min and avg", func(t *testing.T) {
		t.Parallel()

		candidates := map[string]map[model.MovieID]float64{
			"Alice": {1: 0.9, 2: 0.4, 3: 0.1},
			"Bob":   {1: 0.3, 2: 0.8},
			"Carol": {2: 0.6, 3: 0.7},
		}

		for _, weight := range []float64{0.0, 0.3, 0.7, 1.0} {
			results := blender.Aggregate(participants("Alice", "Bob", "Carol"), candidates, weight, 0)
			for _, rec := range results {
				assert.LessOrEqual(t, rec.MinScore-1e-9, rec.FairScore)
				assert.LessOrEqual(t, rec.FairScore, rec.AvgScore+1e-9)
			}
		}
	})

	t.Run("Should reduce solo ranking to own scores", func(t *testing.T) {
		t.Parallel()

		scores := map[model.MovieID]float64{1: 0.2, 2: 0.9, 3: 0.5}
		candidates := map[string]map[model.MovieID]float64{"Alice": scores}

		solo := blender.Aggregate(participants("Alice"), candidates, 0.4, 0)
		group := blender.Aggregate(participants("Alice"), candidates, 1.0, 0)

		require.Len(t, solo, 3)
		assert.Equal(t, model.MovieID(2), solo[0].MovieID)
		for i, rec := range solo {
			assert.Equal(t, scores[rec.MovieID], rec.FairScore)
			assert.Equal(t, rec.AvgScore, rec.FairScore)
			assert.Equal(t, rec.MinScore, rec.FairScore)
			// weight must not matter for one participant
			assert.Equal(t, group[i], rec)
		}
	})

	t.Run("Should truncate to limit", func(t *testing.T) {
		t.Parallel()

		candidates := map[string]map[model.MovieID]float64{
			"Alice": {1: 0.1, 2: 0.2, 3: 0.3, 4: 0.4, 5: 0.5},
		}

		results := blender.Aggregate(participants("Alice"), candidates, 0.4, 2)

		require.Len(t, results, 2)
		assert.Equal(t, model.MovieID(5), results[0].MovieID)
		assert.Equal(t, model.MovieID(4), results[1].MovieID)
	})

	t.Run("Should break ties by ascending movie id", func(t *testing.T) {
		t.Parallel()

		candidates := map[string]map[model.MovieID]float64{
			"Alice": {9: 0.5, 4: 0.5, 6: 0.5},
		}

		for range 10 {
			results := blender.Aggregate(participants("Alice"), candidates, 0.4, 0)
			require.Len(t, results, 3)
			assert.Equal(t, model.MovieID(4), results[0].MovieID)
			assert.Equal(t, model.MovieID(6), results[1].MovieID)
			assert.Equal(t, model.MovieID(9), results[2].MovieID)
		}
	})

	t.Run("Should return empty ranking without participants", func(t *testing.T) {
		t.Parallel()

		results := blender.Aggregate(nil, nil, 0.4, 0)
		assert.Empty(t, results)
	})
}

func TestAggregateBlend(t *testing.T) {
	t.Parallel()

	blender := New()

	candidates := map[string]map[model.MovieID]float64{
		"Alice": {1: 1.0},
		"Bob":   {1: 0.5},
	}

	results := blender.Aggregate(participants("Alice", "Bob"), candidates, 0.4, 0)

	require.Len(t, results, 1)
	expected := 0.6*0.75 + 0.4*0.5
	assert.True(t, math.Abs(results[0].FairScore-expected) < 1e-9)
}
