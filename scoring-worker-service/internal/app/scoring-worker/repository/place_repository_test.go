package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// PlaceRepositoryTestSuite тестовый suite для репозитория мест воркера
type PlaceRepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	mock  sqlmock.Sqlmock
	repo  PlaceRepository
	sqlDB *sql.DB
}

func TestPlaceRepositorySuite(t *testing.T) {
	suite.Run(t, new(PlaceRepositoryTestSuite))
}

func (s *PlaceRepositoryTestSuite) SetupTest() {
	var err error
	s.sqlDB, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	dialector := postgres.New(postgres.Config{
		Conn:       s.sqlDB,
		DriverName: "postgres",
	})

	s.db, err = gorm.Open(dialector, &gorm.Config{})
	require.NoError(s.T(), err)

	s.repo = NewPlaceRepository(s.db)
}

func (s *PlaceRepositoryTestSuite) TearDownTest() {
	s.sqlDB.Close()
}

func (s *PlaceRepositoryTestSuite) TestGetAllIDs() {
	ctx := context.Background()
	first := uuid.New()
	second := uuid.New()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id" FROM "places" ORDER BY id`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(first).AddRow(second))

	ids, err := s.repo.GetAllIDs(ctx)

	s.NoError(err)
	s.Equal([]uuid.UUID{first, second}, ids)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *PlaceRepositoryTestSuite) TestGetAllIDs_Empty() {
	ctx := context.Background()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id" FROM "places" ORDER BY id`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	ids, err := s.repo.GetAllIDs(ctx)

	s.NoError(err)
	s.Empty(ids)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *PlaceRepositoryTestSuite) TestUpdateRating_Success() {
	ctx := context.Background()
	placeID := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "places" WHERE id = $1`)).
		WithArgs(placeID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "rating_score"}).AddRow(placeID, 2.0))
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "places" SET "rating_score"=$1 WHERE id = $2`)).
		WithArgs(3.5, placeID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	err := s.repo.UpdateRating(ctx, placeID, 3.5)

	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *PlaceRepositoryTestSuite) TestUpdateRating_NotFound() {
	ctx := context.Background()
	placeID := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "places" WHERE id = $1`)).
		WithArgs(placeID, 1).
		WillReturnError(gorm.ErrRecordNotFound)
	s.mock.ExpectRollback()

	err := s.repo.UpdateRating(ctx, placeID, 3.5)

	s.ErrorIs(err, ErrPlaceNotFound)
	s.NoError(s.mock.ExpectationsWereMet())
}
