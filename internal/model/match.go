package model

type MatchCategory string

const (
	MatchPerfect  MatchCategory = "perfect"
	MatchMajority MatchCategory = "majority"
)

// MatchResult carries the full per-user vote map so clients can show
// who supported a match. Skipping users are recorded in Votes but do
// not count toward TotalVoters.
type MatchResult struct {
	MovieID         MovieID
	Votes           map[string]SwipeAction
	MatchPercentage float64
	Category        MatchCategory
	LikedCount      int
	TotalVoters     int

	Meta *MovieMeta
}

type SessionMatches struct {
	Perfect  []MatchResult
	Majority []MatchResult
}

type MatchReport struct {
	SessionID    SessionID
	UserCount    int
	Matches      SessionMatches
	NoMatchCount int
}
