package infra_postgres_embedding

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/NidaEsenn/CineMatch/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/pgvector/pgvector-go"
)

var ErrVectorNotFound = errors.New("movie vector not found")

// Driver reads precomputed movie vectors from the movie_vector column.
type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

func (d *Driver) VectorOf(ctx context.Context, movieID model.MovieID) (model.Embedding, error) {
	var vector pgvector.Vector

	query := `
		SELECT movie_vector
		FROM movies
		WHERE id = $1 AND movie_vector IS NOT NULL
	`

	err := d.db.GetContext(ctx, &vector, query, int64(movieID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVectorNotFound
		}
		return nil, fmt.Errorf("failed to load movie vector: %w", err)
	}

	return model.Embedding(vector.Slice()), nil
}

func (d *Driver) Store(ctx context.Context, movieID model.MovieID, e model.Embedding) error {
	query := `UPDATE movies SET movie_vector = $2 WHERE id = $1`

	result, err := d.db.ExecContext(ctx, query, int64(movieID), pgvector.NewVector(e))
	if err != nil {
		return fmt.Errorf("failed to store movie vector: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrVectorNotFound
	}

	return nil
}
