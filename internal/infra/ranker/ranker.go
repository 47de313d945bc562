package infra_ranker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/NidaEsenn/CineMatch/internal/config"
	"github.com/NidaEsenn/CineMatch/internal/model"
)

// Client calls the external re-ranking service. The service is best
// effort: any failure is returned as a plain error and the caller
// falls back to its own ordering. Never retried here.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(cfg config.Ranker) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

type participantDTO struct {
	Name  string   `json:"name"`
	Moods []string `json:"moods"`
	Note  string   `json:"note,omitempty"`
}

type candidateDTO struct {
	MovieID          int64              `json:"movie_id"`
	Title            string             `json:"title"`
	Overview         string             `json:"overview"`
	Genres           []string           `json:"genres"`
	Year             int                `json:"year"`
	Rating           float64            `json:"rating"`
	FairScore        float64            `json:"fair_score"`
	IndividualScores map[string]float64 `json:"individual_scores"`
}

type rankRequest struct {
	Participants []participantDTO `json:"participants"`
	Candidates   []candidateDTO   `json:"candidates"`
	Count        int              `json:"count"`
}

type rankedPickDTO struct {
	MovieID int64  `json:"movie_id"`
	Why     string `json:"why"`
}

type rankResponse struct {
	Recommendations []rankedPickDTO `json:"recommendations"`
}

func (c *Client) Rank(
	ctx context.Context,
	participants []model.Participant,
	candidates []model.RankCandidate,
	count int,
) ([]model.RankedPick, error) {
	req := rankRequest{
		Participants: make([]participantDTO, 0, len(participants)),
		Candidates:   make([]candidateDTO, 0, len(candidates)),
		Count:        count,
	}
	for _, p := range participants {
		req.Participants = append(req.Participants, participantDTO{
			Name:  p.Name,
			Moods: p.Moods,
			Note:  p.Note,
		})
	}
	for _, cand := range candidates {
		req.Candidates = append(req.Candidates, candidateDTO{
			MovieID:          int64(cand.Meta.ID),
			Title:            cand.Meta.Title,
			Overview:         cand.Meta.Overview,
			Genres:           cand.Meta.Genres,
			Year:             cand.Meta.Year,
			Rating:           cand.Meta.Rating,
			FairScore:        cand.FairScore,
			IndividualScores: cand.IndividualScores,
		})
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode rank request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rank", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build rank request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("rank request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rank request failed: status %d", resp.StatusCode)
	}

	var out rankResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode rank response: %w", err)
	}

	picks := make([]model.RankedPick, 0, len(out.Recommendations))
	for _, rec := range out.Recommendations {
		picks = append(picks, model.RankedPick{
			MovieID: model.MovieID(rec.MovieID),
			Why:     rec.Why,
		})
	}

	return picks, nil
}
