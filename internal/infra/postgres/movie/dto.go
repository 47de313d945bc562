package infra_postgres_movie

import (
	"github.com/NidaEsenn/CineMatch/internal/model"
	"github.com/lib/pq"
)

type MovieDB struct {
	ID         int64          `db:"id"`
	PosterLink string         `db:"poster_link"`
	Title      string         `db:"title"`
	Genres     pq.StringArray `db:"genres"`
	Year       int            `db:"year"`
	Rating     float64        `db:"rating"`
	Overview   string         `db:"overview"`
}

func (m *MovieDB) ToDomain() model.MovieMeta {
	return model.MovieMeta{
		ID:         model.MovieID(m.ID),
		PosterLink: m.PosterLink,
		Title:      m.Title,
		Genres:     []string(m.Genres),
		Year:       m.Year,
		Rating:     m.Rating,
		Overview:   m.Overview,
	}
}

func FromDomain(mm model.MovieMeta) MovieDB {
	return MovieDB{
		ID:         int64(mm.ID),
		PosterLink: mm.PosterLink,
		Title:      mm.Title,
		Genres:     pq.StringArray(mm.Genres),
		Year:       mm.Year,
		Rating:     mm.Rating,
		Overview:   mm.Overview,
	}
}
