package infra_postgres_movie

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/NidaEsenn/CineMatch/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrMovieNotFound = errors.New("movie not found")
)

// Repository reads the movie catalog used to enrich recommendations
// and matches with display metadata.
type Repository struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Store(ctx context.Context, mm model.MovieMeta) error {
	movieDB := FromDomain(mm)

	query := `
		INSERT INTO movies (id, title, year, rating, genres, overview, poster_link)
		VALUES (:id, :title, :year, :rating, :genres, :overview, :poster_link)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			year = EXCLUDED.year,
			rating = EXCLUDED.rating,
			genres = EXCLUDED.genres,
			overview = EXCLUDED.overview,
			poster_link = EXCLUDED.poster_link
	`

	_, err := r.db.NamedExecContext(ctx, query, movieDB)
	if err != nil {
		return fmt.Errorf("failed to store movie: %w", err)
	}

	return nil
}

func (r *Repository) LoadByID(ctx context.Context, id model.MovieID) (model.MovieMeta, error) {
	query := `
		SELECT id, title, year, rating, genres, overview, poster_link
		FROM movies
		WHERE id = $1
	`

	var movieDB MovieDB
	err := r.db.GetContext(ctx, &movieDB, query, int64(id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.MovieMeta{}, ErrMovieNotFound
		}
		return model.MovieMeta{}, fmt.Errorf("failed to load movie by id: %w", err)
	}

	return movieDB.ToDomain(), nil
}

func (r *Repository) LoadByIDs(ctx context.Context, ids []model.MovieID) ([]*model.MovieMeta, error) {
	if len(ids) == 0 {
		return []*model.MovieMeta{}, nil
	}

	raw := make([]int64, len(ids))
	for i, id := range ids {
		raw[i] = int64(id)
	}

	query, args, err := sqlx.In(`
		SELECT id, title, year, rating, genres, overview, poster_link
		FROM movies
		WHERE id IN (?)
	`, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	query = r.db.Rebind(query)
	var moviesDB []MovieDB
	err = r.db.SelectContext(ctx, &moviesDB, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies by ids: %w", err)
	}

	movies := make([]*model.MovieMeta, len(moviesDB))
	for i, movieDB := range moviesDB {
		domainMovie := movieDB.ToDomain()
		movies[i] = &domainMovie
	}

	return movies, nil
}
