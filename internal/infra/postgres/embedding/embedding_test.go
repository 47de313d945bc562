//go:build !integration
// +build !integration

package infra_postgres_embedding

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NidaEsenn/CineMatch/internal/model"
)

type EmbeddingInfraUnitSuite struct {
	suite.Suite
}

type resources struct {
	db     *sqlx.DB
	mock   sqlmock.Sqlmock
	driver *Driver
	ctx    context.Context
}

func initResources(t provider.T) *resources {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	sqlxDB := sqlx.NewDb(db, "sqlmock")

	return &resources{
		db:     sqlxDB,
		mock:   mock,
		driver: New(sqlxDB),
		ctx:    context.Background(),
	}
}

func (s *EmbeddingInfraUnitSuite) TestVectorOf(t provider.T) {
	t.Run("Should load and parse movie vector", func(t provider.T) {
		r := initResources(t)
		defer r.db.Close()

		rows := sqlmock.NewRows([]string{"movie_vector"}).AddRow("[0.1,0.2,0.3]")
		r.mock.ExpectQuery("SELECT movie_vector").
			WithArgs(int64(42)).
			WillReturnRows(rows)

		e, err := r.driver.VectorOf(r.ctx, 42)

		require.NoError(t, err)
		require.Len(t, e, 3)
		assert.InDelta(t, 0.1, float64(e[0]), 1e-6)
		assert.InDelta(t, 0.3, float64(e[2]), 1e-6)
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})

	t.Run("Should map missing vector to not found", func(t provider.T) {
		r := initResources(t)
		defer r.db.Close()

		r.mock.ExpectQuery("SELECT movie_vector").
			WithArgs(int64(7)).
			WillReturnError(sql.ErrNoRows)

		_, err := r.driver.VectorOf(r.ctx, 7)

		assert.ErrorIs(t, err, ErrVectorNotFound)
	})
}

func (s *EmbeddingInfraUnitSuite) TestStore(t provider.T) {
	t.Run("Should update movie vector", func(t provider.T) {
		r := initResources(t)
		defer r.db.Close()

		r.mock.ExpectExec("UPDATE movies SET movie_vector").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := r.driver.Store(r.ctx, 42, model.Embedding{0.1, 0.2})

		assert.NoError(t, err)
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})

	t.Run("Should report unknown movie", func(t provider.T) {
		r := initResources(t)
		defer r.db.Close()

		r.mock.ExpectExec("UPDATE movies SET movie_vector").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := r.driver.Store(r.ctx, 7, model.Embedding{0.1})

		assert.ErrorIs(t, err, ErrVectorNotFound)
	})
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(EmbeddingInfraUnitSuite))
}
