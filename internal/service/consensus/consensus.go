package consensus

import (
	"math"
	"sort"

	"github.com/NidaEsenn/CineMatch/internal/model"
)

// Matcher derives group matches from a session's accumulated swipes.
//
// Vote semantics per movie:
//   - like counts toward the match,
//   - dislike is a veto that disqualifies the movie outright,
//   - skip is neutral: no vote, no veto, not a voter.
//
// The percentage denominator is every user with any swipe history in
// the session, not just the users who voted on the movie.
type Matcher struct{}

func New() *Matcher {
	return &Matcher{}
}

const majorityThreshold = 75.0

// Calculate classifies every swiped movie into perfect (all session
// users liked it), majority (>=75% liked, nobody vetoed) or no match.
func (m *Matcher) Calculate(swipes map[string][]model.SwipeRecord) model.SessionMatches {
	matches := model.SessionMatches{
		Perfect:  []model.MatchResult{},
		Majority: []model.MatchResult{},
	}

	userCount := len(swipes)
	if userCount == 0 {
		return matches
	}

	seen := make(map[model.MovieID]struct{})
	movieIDs := make([]model.MovieID, 0)
	for _, records := range swipes {
		for _, rec := range records {
			if _, ok := seen[rec.MovieID]; !ok {
				seen[rec.MovieID] = struct{}{}
				movieIDs = append(movieIDs, rec.MovieID)
			}
		}
	}
	sort.Slice(movieIDs, func(i, j int) bool { return movieIDs[i] < movieIDs[j] })

	for _, movieID := range movieIDs {
		votes := make(map[string]model.SwipeAction)
		likeCount := 0
		voterCount := 0
		vetoed := false

		for userName, records := range swipes {
			rec, ok := findSwipe(records, movieID)
			if !ok {
				continue
			}
			votes[userName] = rec.Action

			switch rec.Action {
			case model.ActionLike:
				likeCount++
				voterCount++
			case model.ActionDislike:
				vetoed = true
				voterCount++
			}
		}

		// One dislike overrides any number of likes.
		if vetoed || likeCount == 0 {
			continue
		}

		percentage := float64(likeCount) / float64(userCount) * 100

		if likeCount == userCount {
			matches.Perfect = append(matches.Perfect, model.MatchResult{
				MovieID:         movieID,
				Votes:           votes,
				MatchPercentage: 100,
				Category:        model.MatchPerfect,
				LikedCount:      likeCount,
				TotalVoters:     voterCount,
			})
		} else if percentage >= majorityThreshold {
			matches.Majority = append(matches.Majority, model.MatchResult{
				MovieID:         movieID,
				Votes:           votes,
				MatchPercentage: math.Round(percentage*10) / 10,
				Category:        model.MatchMajority,
				LikedCount:      likeCount,
				TotalVoters:     voterCount,
			})
		}
	}

	sort.SliceStable(matches.Majority, func(i, j int) bool {
		if matches.Majority[i].MatchPercentage != matches.Majority[j].MatchPercentage {
			return matches.Majority[i].MatchPercentage > matches.Majority[j].MatchPercentage
		}
		return matches.Majority[i].MovieID < matches.Majority[j].MovieID
	})

	return matches
}

func findSwipe(records []model.SwipeRecord, movieID model.MovieID) (model.SwipeRecord, bool) {
	for _, rec := range records {
		if rec.MovieID == movieID {
			return rec, true
		}
	}
	return model.SwipeRecord{}, false
}
