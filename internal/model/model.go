package model

import "time"

type SessionID = string

const EmptySessionID SessionID = ""

// MovieID is the catalog identifier shared by Postgres, Qdrant and the
// embedding service.
type MovieID int64

type Participant struct {
	Name  string
	Moods []string
	Note  string
}

type Embedding []float32

type SwipeAction string

const (
	ActionLike    SwipeAction = "like"
	ActionDislike SwipeAction = "dislike"
	ActionSkip    SwipeAction = "skip"
)

func (a SwipeAction) Valid() bool {
	return a == ActionLike || a == ActionDislike || a == ActionSkip
}

type SwipeRecord struct {
	MovieID   MovieID
	Action    SwipeAction
	Timestamp time.Time
}

type SwipeReceipt struct {
	Recorded      bool
	TotalSwipes   int
	FeedbackReady bool
}

type UserSwipeStats struct {
	Total    int `json:"total"`
	Likes    int `json:"likes"`
	Dislikes int `json:"dislikes"`
	Skips    int `json:"skips"`
}

type SessionStats struct {
	SessionID SessionID
	Users     map[string]UserSwipeStats
	SeenFilms []MovieID
}
