package usecase_feedback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/NidaEsenn/CineMatch/internal/model"
	"github.com/NidaEsenn/CineMatch/internal/service/consensus"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Store interface {
	RecordSwipe(sessionID model.SessionID, userName string, movieID model.MovieID, action model.SwipeAction) int
	SessionSwipes(sessionID model.SessionID) map[string][]model.SwipeRecord
	SeenFilms(sessionID model.SessionID) []model.MovieID
	Stats(sessionID model.SessionID) map[string]model.UserSwipeStats
	IsFeedbackReady(sessionID model.SessionID, userName string, minSwipes int) bool
	Clear(sessionID model.SessionID) bool
}

type MetaRepository interface {
	LoadByIDs(ctx context.Context, ids []model.MovieID) ([]*model.MovieMeta, error)
}

// MatchNotifier pushes best-effort match events to session
// subscribers.
type MatchNotifier interface {
	NotifyPerfectMatch(sessionID model.SessionID, movieID model.MovieID)
}

type Usecase struct {
	store    Store
	meta     MetaRepository
	notifier MatchNotifier

	matcher   *consensus.Matcher
	minSwipes int
	logger    *slog.Logger
}

type Option func(*Usecase)

func WithNotifier(n MatchNotifier) Option {
	return func(u *Usecase) {
		u.notifier = n
	}
}

func WithMinSwipes(n int) Option {
	return func(u *Usecase) {
		u.minSwipes = n
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(u *Usecase) {
		u.logger = logger
	}
}

const defaultMinSwipes = 3

func New(store Store, meta MetaRepository, opts ...Option) *Usecase {
	u := &Usecase{
		store:     store,
		meta:      meta,
		matcher:   consensus.New(),
		minSwipes: defaultMinSwipes,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// RecordSwipe upserts one swipe and reports the user's running total
// plus whether their history is deep enough to refine with. A like
// that completes a new perfect match triggers the notifier.
func (u *Usecase) RecordSwipe(
	ctx context.Context,
	sessionID model.SessionID,
	userName string,
	movieID model.MovieID,
	action model.SwipeAction,
) (model.SwipeReceipt, error) {
	if sessionID == model.EmptySessionID || userName == "" {
		return model.SwipeReceipt{}, fmt.Errorf("%w: session id and user name required", ErrInvalidInput)
	}
	if !action.Valid() {
		return model.SwipeReceipt{}, fmt.Errorf("%w: unknown action %q", ErrInvalidInput, action)
	}

	total := u.store.RecordSwipe(sessionID, userName, movieID, action)

	if action == model.ActionLike && u.notifier != nil {
		matches := u.matcher.Calculate(u.store.SessionSwipes(sessionID))
		for _, match := range matches.Perfect {
			if match.MovieID == movieID {
				u.notifier.NotifyPerfectMatch(sessionID, movieID)
				break
			}
		}
	}

	return model.SwipeReceipt{
		Recorded:      true,
		TotalSwipes:   total,
		FeedbackReady: u.store.IsFeedbackReady(sessionID, userName, u.minSwipes),
	}, nil
}

// Matches computes the session's consensus and enriches it with
// catalog metadata. An unknown session yields empty lists, not an
// error. Catalog failures degrade to bare matches.
func (u *Usecase) Matches(ctx context.Context, sessionID model.SessionID) (model.MatchReport, error) {
	snapshot := u.store.SessionSwipes(sessionID)
	matches := u.matcher.Calculate(snapshot)

	u.attachMeta(ctx, matches.Perfect)
	u.attachMeta(ctx, matches.Majority)

	noMatch := len(u.store.SeenFilms(sessionID)) - len(matches.Perfect) - len(matches.Majority)
	if noMatch < 0 {
		noMatch = 0
	}

	return model.MatchReport{
		SessionID:    sessionID,
		UserCount:    len(snapshot),
		Matches:      matches,
		NoMatchCount: noMatch,
	}, nil
}

func (u *Usecase) attachMeta(ctx context.Context, results []model.MatchResult) {
	if len(results) == 0 {
		return
	}

	ids := make([]model.MovieID, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.MovieID)
	}

	metas, err := u.meta.LoadByIDs(ctx, ids)
	if err != nil {
		u.logger.Warn("failed to enrich matches with catalog meta",
			slog.String("error", err.Error()))
		return
	}

	byID := make(map[model.MovieID]*model.MovieMeta, len(metas))
	for _, mm := range metas {
		byID[mm.ID] = mm
	}
	for i := range results {
		results[i].Meta = byID[results[i].MovieID]
	}
}

func (u *Usecase) SessionStats(sessionID model.SessionID) model.SessionStats {
	return model.SessionStats{
		SessionID: sessionID,
		Users:     u.store.Stats(sessionID),
		SeenFilms: u.store.SeenFilms(sessionID),
	}
}

// ClearSession drops all swipe history for a session. False means
// nothing was stored under that id.
func (u *Usecase) ClearSession(sessionID model.SessionID) bool {
	return u.store.Clear(sessionID)
}
