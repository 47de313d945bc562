package http_recommend

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/NidaEsenn/CineMatch/internal/model"
	usecase_recommend "github.com/NidaEsenn/CineMatch/internal/usecase/recommend"
)

// ParticipantDTO represents a single member of the watch group
type ParticipantDTO struct {
	Name  string   `json:"name" binding:"required" example:"Alice"`
	Moods []string `json:"moods" example:"uplifting,nostalgic"`
	Note  string   `json:"note" example:"something with space travel"`
}

// RecommendRequestDTO represents a group recommendation request
type RecommendRequestDTO struct {
	Participants   []ParticipantDTO `json:"participants" binding:"required,min=1"`
	SessionID      string           `json:"session_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Count          int              `json:"count" example:"10"`
	NCandidates    int              `json:"n_candidates" example:"30"`
	FairnessWeight *float64         `json:"fairness_weight" example:"0.4"`
}

// RecommendationDTO represents a single recommended movie
type RecommendationDTO struct {
	MovieID    int64    `json:"movie_id" example:"603"`
	Title      string   `json:"title" example:"The Matrix"`
	Why        string   `json:"why" example:"Fair match - Alice: 87%, Bob: 74%"`
	PosterLink string   `json:"poster_link" example:"https://example.com/poster.jpg"`
	Overview   string   `json:"overview" example:"A hacker discovers reality is a simulation..."`
	Genres     []string `json:"genres" example:"sci-fi,action"`
	Year       int      `json:"year" example:"1999"`
	Rating     float64  `json:"rating" example:"8.7"`
}

// FairnessStatsDTO represents per-group fairness diagnostics
type FairnessStatsDTO struct {
	OverallFairness  float64            `json:"overall_fairness" example:"0.93"`
	UserSatisfaction map[string]float64 `json:"user_satisfaction"`
	LeastSatisfied   string             `json:"least_satisfied" example:"Bob"`
	MostSatisfied    string             `json:"most_satisfied" example:"Alice"`
}

// RecommendResponseDTO represents the full recommendation answer
type RecommendResponseDTO struct {
	Recommendations []RecommendationDTO `json:"recommendations"`
	Source          string              `json:"source" example:"ranker" enums:"ranker,fairness"`
	FairnessApplied bool                `json:"fairness_applied" example:"true"`
	FairnessStats   *FairnessStatsDTO   `json:"fairness_stats,omitempty"`
	FeedbackApplied bool                `json:"feedback_applied" example:"false"`
	SeenCount       int                 `json:"seen_count" example:"0"`
	ResponseTimeMS  int64               `json:"response_time_ms" example:"184"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

type Controller struct {
	uc *usecase_recommend.Usecase

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(uc *usecase_recommend.Usecase, opts ...ControllerOption) *Controller {
	c := &Controller{
		uc:     uc,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/recommendations", c.recommend)
}

// @Summary Get group recommendations
// @Description Builds a fairness-aware movie ranking for a group of participants
// @Tags Recommendation operations
// @Accept json
// @Produce json
// @Param request body RecommendRequestDTO true "Group composition and tuning knobs"
// @Success 200 {object} RecommendResponseDTO "Ranked recommendations"
// @Failure 400 {object} ErrorResponse "Malformed request"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /recommendations [post]
func (c *Controller) recommend(ctx *gin.Context) {
	started := time.Now()

	var req RecommendRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn("invalid request body", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  http.StatusBadRequest,
		})
		return
	}

	result, err := c.uc.Recommend(ctx.Request.Context(), convertToRequest(req))
	if err != nil {
		if errors.Is(err, usecase_recommend.ErrInvalidInput) {
			ctx.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "Invalid request",
				Message: err.Error(),
				Code:    http.StatusBadRequest,
			})
			return
		}
		c.logger.Error("failed to build recommendations",
			slog.String("error", err.Error()),
			slog.Int("participants", len(req.Participants)),
		)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to build recommendations",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	ctx.JSON(http.StatusOK, convertFromResult(result, time.Since(started)))
}

func convertToRequest(req RecommendRequestDTO) usecase_recommend.RecommendRequest {
	participants := make([]model.Participant, 0, len(req.Participants))
	for _, p := range req.Participants {
		participants = append(participants, model.Participant{
			Name:  p.Name,
			Moods: p.Moods,
			Note:  p.Note,
		})
	}

	opts := usecase_recommend.DefaultRankOptions()
	if req.NCandidates > 0 {
		opts.NCandidates = req.NCandidates
	}
	if req.FairnessWeight != nil {
		opts.FairnessWeight = *req.FairnessWeight
	}

	return usecase_recommend.RecommendRequest{
		Participants: participants,
		SessionID:    model.SessionID(req.SessionID),
		Count:        req.Count,
		Options:      opts,
	}
}

func convertFromResult(result model.GroupRecommendation, elapsed time.Duration) RecommendResponseDTO {
	recommendations := make([]RecommendationDTO, 0, len(result.Recommendations))
	for _, r := range result.Recommendations {
		recommendations = append(recommendations, RecommendationDTO{
			MovieID:    int64(r.MovieID),
			Title:      r.Title,
			Why:        r.Why,
			PosterLink: r.PosterLink,
			Overview:   r.Overview,
			Genres:     r.Genres,
			Year:       r.Year,
			Rating:     r.Rating,
		})
	}

	resp := RecommendResponseDTO{
		Recommendations: recommendations,
		Source:          string(result.Source),
		FairnessApplied: result.FairnessApplied,
		FeedbackApplied: result.FeedbackApplied,
		SeenCount:       result.SeenCount,
		ResponseTimeMS:  elapsed.Milliseconds(),
	}

	if result.FairnessStats != nil {
		resp.FairnessStats = &FairnessStatsDTO{
			OverallFairness:  result.FairnessStats.OverallFairness,
			UserSatisfaction: result.FairnessStats.UserSatisfaction,
			LeastSatisfied:   result.FairnessStats.LeastSatisfied,
			MostSatisfied:    result.FairnessStats.MostSatisfied,
		}
	}

	return resp
}
