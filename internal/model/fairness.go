package model

type CandidateScore struct {
	MovieID MovieID
	Score   float64
}

// FairCandidate is one movie of the merged group ranking.
// IndividualScores is sparse: a participant without an entry scored
// the movie 0 when the group averages were taken.
type FairCandidate struct {
	MovieID          MovieID
	FairScore        float64
	AvgScore         float64
	MinScore         float64
	IndividualScores map[string]float64
}

type FairnessReport struct {
	OverallFairness  float64
	UserSatisfaction map[string]float64
	LeastSatisfied   string
	MostSatisfied    string
}
