package model

type MovieMeta struct {
	ID         MovieID
	PosterLink string
	Title      string
	Genres     []string
	Year       int
	Rating     float64

	Overview string
}

// RankCandidate is a catalog-enriched fair candidate handed to the
// external ranking service.
type RankCandidate struct {
	Meta             MovieMeta
	FairScore        float64
	AvgScore         float64
	MinScore         float64
	IndividualScores map[string]float64
}

// RankedPick is one entry of the ranking service's ordered answer.
type RankedPick struct {
	MovieID MovieID
	Why     string
}

type Recommendation struct {
	MovieID    MovieID
	Title      string
	Why        string
	PosterLink string
	Overview   string
	Genres     []string
	Year       int
	Rating     float64
}

type RankSource string

const (
	SourceRanker   RankSource = "ranker"
	SourceFairness RankSource = "fairness"
)

type GroupRecommendation struct {
	Recommendations []Recommendation
	Source          RankSource
	FairnessApplied bool
	FairnessStats   *FairnessReport
	FeedbackApplied bool
	SeenCount       int
}
