package infra_qdrant

import (
	"context"
	"fmt"

	"github.com/NidaEsenn/CineMatch/internal/config"
	"github.com/NidaEsenn/CineMatch/internal/model"
	"github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Index answers nearest-neighbour queries over the movie collection.
// Points are stored under numeric ids equal to the catalog MovieID,
// with cosine similarity so scores land in [0,1].
type Index struct {
	client     *qdrant.Client
	collection string
}

func MustEstablishConnection(cfg config.Qdrant) *Index {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host: cfg.Host,
		Port: cfg.Port,
		GrpcOptions: []grpc.DialOption{
			grpc.WithTransportCredentials(insecure.NewCredentials()),
		},
	})
	if err != nil {
		panic(err)
	}

	return &Index{
		client:     client,
		collection: cfg.Collection,
	}
}

func (i *Index) Close() error {
	return i.client.Close()
}

func (i *Index) Search(ctx context.Context, e model.Embedding, k int) ([]model.CandidateScore, error) {
	if k <= 0 {
		return []model.CandidateScore{}, nil
	}

	points, err := i.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: i.collection,
		Query:          qdrant.NewQueryDense([]float32(e)),
		Limit:          qdrant.PtrOf(uint64(k)),
	})
	if err != nil {
		return nil, fmt.Errorf("similarity query failed: %w", err)
	}

	candidates := make([]model.CandidateScore, 0, len(points))
	for _, point := range points {
		candidates = append(candidates, model.CandidateScore{
			MovieID: model.MovieID(point.GetId().GetNum()),
			Score:   float64(point.GetScore()),
		})
	}

	return candidates, nil
}
