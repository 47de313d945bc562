package http_swipe

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	ws_session "github.com/NidaEsenn/CineMatch/internal/delivery/ws/session"
	"github.com/NidaEsenn/CineMatch/internal/model"
	usecase_feedback "github.com/NidaEsenn/CineMatch/internal/usecase/feedback"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// SwipeRequestDTO represents one swipe on a shown movie
type SwipeRequestDTO struct {
	UserName string `json:"user_name" binding:"required" example:"Alice"`
	MovieID  int64  `json:"movie_id" binding:"required" example:"603"`
	Action   string `json:"action" binding:"required" example:"like" enums:"like,dislike,skip"`
}

// SwipeResponseDTO represents the swipe acknowledgement
type SwipeResponseDTO struct {
	Recorded      bool `json:"recorded" example:"true"`
	TotalSwipes   int  `json:"total_swipes" example:"4"`
	FeedbackReady bool `json:"feedback_ready" example:"true"`
}

// MatchResultDTO represents a single consensus match
type MatchResultDTO struct {
	MovieID         int64             `json:"movie_id" example:"603"`
	MatchPercentage float64           `json:"match_percentage" example:"100"`
	Category        string            `json:"category" example:"perfect" enums:"perfect,majority"`
	LikedCount      int               `json:"liked_count" example:"3"`
	TotalVoters     int               `json:"total_voters" example:"3"`
	Votes           map[string]string `json:"votes"`
	Meta            *MovieMetaDTO     `json:"meta,omitempty"`
}

// MovieMetaDTO represents catalog metadata attached to a match
type MovieMetaDTO struct {
	Title      string   `json:"title" example:"The Matrix"`
	PosterLink string   `json:"poster_link" example:"https://example.com/poster.jpg"`
	Genres     []string `json:"genres" example:"sci-fi,action"`
	Year       int      `json:"year" example:"1999"`
	Rating     float64  `json:"rating" example:"8.7"`
	Overview   string   `json:"overview" example:"A hacker discovers reality is a simulation..."`
}

// MatchReportDTO represents the session's consensus state
type MatchReportDTO struct {
	SessionID    string           `json:"session_id"`
	UserCount    int              `json:"user_count" example:"3"`
	Perfect      []MatchResultDTO `json:"perfect_matches"`
	Majority     []MatchResultDTO `json:"majority_matches"`
	NoMatchCount int              `json:"no_match_count" example:"5"`
}

// SessionStatsDTO represents per-user swipe counters
type SessionStatsDTO struct {
	SessionID string                          `json:"session_id"`
	Users     map[string]model.UserSwipeStats `json:"users"`
	SeenFilms []int64                         `json:"seen_films"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

type Controller struct {
	uc  *usecase_feedback.Usecase
	hub *ws_session.Hub

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(uc *usecase_feedback.Usecase,
	hub *ws_session.Hub,
	opts ...ControllerOption) *Controller {
	c := &Controller{
		uc:     uc,
		hub:    hub,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/sessions", c.createSession)

	sessions := router.Group("/sessions/:session_id")
	sessions.POST("/swipes", c.swipe)
	sessions.GET("/stats", c.stats)
	sessions.GET("/matches", c.matches)
	sessions.DELETE("", c.clear)
	sessions.GET("/ws", c.sessionWS)
}

// @Summary Open a swipe session
// @Description Mints a fresh session identifier for a watch group
// @Tags Session operations
// @Produce json
// @Success 200 "New session identifier"
// @Router /sessions [post]
func (c *Controller) createSession(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, struct {
		SessionID string `json:"session_id"`
	}{
		SessionID: uuid.New().String(),
	})
}

// @Summary Record a swipe
// @Description Upserts one like/dislike/skip for a user within a session
// @Tags Session operations
// @Accept json
// @Produce json
// @Param session_id path string true "Session identifier"
// @Param request body SwipeRequestDTO true "Swipe payload"
// @Success 200 {object} SwipeResponseDTO "Swipe accepted"
// @Failure 400 {object} ErrorResponse "Malformed request"
// @Router /sessions/{session_id}/swipes [post]
func (c *Controller) swipe(ctx *gin.Context) {
	sessionID := model.SessionID(ctx.Param("session_id"))

	var req SwipeRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn("invalid request body", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  http.StatusBadRequest,
		})
		return
	}

	receipt, err := c.uc.RecordSwipe(
		ctx.Request.Context(),
		sessionID,
		req.UserName,
		model.MovieID(req.MovieID),
		model.SwipeAction(req.Action),
	)
	if err != nil {
		if errors.Is(err, usecase_feedback.ErrInvalidInput) {
			ctx.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "Invalid swipe",
				Message: err.Error(),
				Code:    http.StatusBadRequest,
			})
			return
		}
		c.logger.Error("failed to record swipe",
			slog.String("error", err.Error()),
			slog.String("session_id", string(sessionID)),
		)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to record swipe",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	ctx.JSON(http.StatusOK, SwipeResponseDTO{
		Recorded:      receipt.Recorded,
		TotalSwipes:   receipt.TotalSwipes,
		FeedbackReady: receipt.FeedbackReady,
	})
}

// @Summary Session swipe stats
// @Description Returns per-user swipe counters and the session's seen films
// @Tags Session operations
// @Produce json
// @Param session_id path string true "Session identifier"
// @Success 200 {object} SessionStatsDTO "Session statistics"
// @Router /sessions/{session_id}/stats [get]
func (c *Controller) stats(ctx *gin.Context) {
	sessionID := model.SessionID(ctx.Param("session_id"))
	stats := c.uc.SessionStats(sessionID)

	seen := make([]int64, 0, len(stats.SeenFilms))
	for _, id := range stats.SeenFilms {
		seen = append(seen, int64(id))
	}

	ctx.JSON(http.StatusOK, SessionStatsDTO{
		SessionID: string(stats.SessionID),
		Users:     stats.Users,
		SeenFilms: seen,
	})
}

// @Summary Session matches
// @Description Returns perfect and majority consensus matches for a session
// @Tags Session operations
// @Produce json
// @Param session_id path string true "Session identifier"
// @Success 200 {object} MatchReportDTO "Consensus report"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /sessions/{session_id}/matches [get]
func (c *Controller) matches(ctx *gin.Context) {
	sessionID := model.SessionID(ctx.Param("session_id"))

	report, err := c.uc.Matches(ctx.Request.Context(), sessionID)
	if err != nil {
		c.logger.Error("failed to compute matches",
			slog.String("error", err.Error()),
			slog.String("session_id", string(sessionID)),
		)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to compute matches",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	ctx.JSON(http.StatusOK, convertFromReport(report))
}

// @Summary Forget a session
// @Description Drops all swipe history stored for a session
// @Tags Session operations
// @Param session_id path string true "Session identifier"
// @Success 200 "Session cleared"
// @Failure 404 {object} ErrorResponse "Unknown session"
// @Router /sessions/{session_id} [delete]
func (c *Controller) clear(ctx *gin.Context) {
	sessionID := model.SessionID(ctx.Param("session_id"))

	if !c.uc.ClearSession(sessionID) {
		ctx.JSON(http.StatusNotFound, ErrorResponse{
			Error: "Session not found",
			Code:  http.StatusNotFound,
		})
		return
	}

	ctx.Status(http.StatusOK)
}

func (c *Controller) sessionWS(ctx *gin.Context) {
	sessionID := model.SessionID(ctx.Param("session_id"))

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.logger.Error("failed to upgrade to websocket",
			slog.String("error", err.Error()),
		)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "Failed to upgrade connection",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	client := &ws_session.Client{
		Hub:       c.hub,
		Conn:      conn,
		Send:      make(chan []byte, 256),
		SessionID: sessionID,
	}

	c.hub.RegisterClient(client)

	go c.hub.StartClientReading(client)
	go c.hub.StartClientWriting(client)
}

func convertFromReport(report model.MatchReport) MatchReportDTO {
	return MatchReportDTO{
		SessionID:    string(report.SessionID),
		UserCount:    report.UserCount,
		Perfect:      convertMatches(report.Matches.Perfect),
		Majority:     convertMatches(report.Matches.Majority),
		NoMatchCount: report.NoMatchCount,
	}
}

func convertMatches(results []model.MatchResult) []MatchResultDTO {
	out := make([]MatchResultDTO, 0, len(results))
	for _, r := range results {
		votes := make(map[string]string, len(r.Votes))
		for name, action := range r.Votes {
			votes[name] = string(action)
		}

		dto := MatchResultDTO{
			MovieID:         int64(r.MovieID),
			MatchPercentage: r.MatchPercentage,
			Category:        string(r.Category),
			LikedCount:      r.LikedCount,
			TotalVoters:     r.TotalVoters,
			Votes:           votes,
		}
		if r.Meta != nil {
			dto.Meta = &MovieMetaDTO{
				Title:      r.Meta.Title,
				PosterLink: r.Meta.PosterLink,
				Genres:     r.Meta.Genres,
				Year:       r.Meta.Year,
				Rating:     r.Meta.Rating,
				Overview:   r.Meta.Overview,
			}
		}
		out = append(out, dto)
	}
	return out
}
