package app

import (
	"log/slog"
	"os"
	"time"

	"github.com/NidaEsenn/CineMatch/internal/config"
	http_init "github.com/NidaEsenn/CineMatch/internal/delivery/http/init"
	http_recommend "github.com/NidaEsenn/CineMatch/internal/delivery/http/recommend"
	http_swipe "github.com/NidaEsenn/CineMatch/internal/delivery/http/swipe"
	ws_session "github.com/NidaEsenn/CineMatch/internal/delivery/ws/session"
	infra_embedder "github.com/NidaEsenn/CineMatch/internal/infra/embedder"
	infra_pg_init "github.com/NidaEsenn/CineMatch/internal/infra/postgres/init"
	infra_postgres_embedding "github.com/NidaEsenn/CineMatch/internal/infra/postgres/embedding"
	infra_postgres_movie "github.com/NidaEsenn/CineMatch/internal/infra/postgres/movie"
	infra_qdrant "github.com/NidaEsenn/CineMatch/internal/infra/qdrant"
	infra_ranker "github.com/NidaEsenn/CineMatch/internal/infra/ranker"
	infra_redis_init "github.com/NidaEsenn/CineMatch/internal/infra/redis/init"
	infra_vector_cache "github.com/NidaEsenn/CineMatch/internal/infra/redis/vector_cache"
	"github.com/NidaEsenn/CineMatch/internal/service/refiner"
	storage_feedback "github.com/NidaEsenn/CineMatch/internal/storage/feedback"
	storage_vector "github.com/NidaEsenn/CineMatch/internal/storage/vector"
	usecase_feedback "github.com/NidaEsenn/CineMatch/internal/usecase/feedback"
	usecase_recommend "github.com/NidaEsenn/CineMatch/internal/usecase/recommend"
)

const vectorCacheTTL = 24 * time.Hour

func Go(cfg *config.Config) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	redisConn := infra_redis_init.MustEstablishConn(cfg.Redis)
	pgConn := infra_pg_init.MustEstablishConn(cfg.Postgres)
	index := infra_qdrant.MustEstablishConnection(cfg.Qdrant)

	embedder := infra_embedder.New(cfg.Embedder)
	ranker := infra_ranker.New(cfg.Ranker)

	movieRepository := infra_postgres_movie.New(pgConn)
	vectorRepository := infra_postgres_embedding.New(pgConn)
	vectorCache := infra_vector_cache.New(redisConn, "movie_vectors", vectorCacheTTL)
	vectors := storage_vector.New(vectorRepository, vectorCache)

	feedbackStore := storage_feedback.New(
		storage_feedback.WithMaxIdle(cfg.Feedback.SessionMaxIdle),
		storage_feedback.WithSweepEvery(cfg.Feedback.SweepEvery),
	)

	vectorRefiner := refiner.New(vectors)

	hub := ws_session.New(logger)

	recommendUC := usecase_recommend.New(
		embedder,
		index,
		movieRepository,
		ranker,
		vectorRefiner,
		feedbackStore,
	)
	feedbackUC := usecase_feedback.New(
		feedbackStore,
		movieRepository,
		usecase_feedback.WithNotifier(hub),
	)

	controllerPool := http_init.NewControllerPool()
	controllerPool.Add(http_recommend.New(recommendUC))
	controllerPool.Add(http_swipe.New(feedbackUC, hub))

	controllerPool.Register()
	controllerPool.RunAll(cfg.HTTP.Port)
}
