package repository

import (
	"context"
	"testing"
	"time"

	"wanderlog/scoring-worker-service/internal/app/scoring-worker/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ScoreRepositoryTestSuite тестовый suite для кеша оценок комментариев
type ScoreRepositoryTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	client    *redis.Client
	repo      ScoreRepository
}

func TestScoreRepositorySuite(t *testing.T) {
	suite.Run(t, new(ScoreRepositoryTestSuite))
}

func (s *ScoreRepositoryTestSuite) SetupSuite() {
	var err error
	s.miniRedis, err = miniredis.Run()
	require.NoError(s.T(), err)

	s.client = redis.NewClient(&redis.Options{Addr: s.miniRedis.Addr()})
	s.repo = NewScoreRepository(s.client, time.Hour)
}

func (s *ScoreRepositoryTestSuite) SetupTest() {
	s.miniRedis.FlushAll()
}

func (s *ScoreRepositoryTestSuite) TearDownSuite() {
	s.client.Close()
	s.miniRedis.Close()
}

func (s *ScoreRepositoryTestSuite) testScore() *entity.CachedScore {
	return &entity.CachedScore{
		CommentID: primitive.NewObjectID().Hex(),
		Score:     0.65,
		ScoredAt:  time.Now().Truncate(time.Second),
	}
}

func (s *ScoreRepositoryTestSuite) TestSetAndGet() {
	ctx := context.Background()
	score := s.testScore()

	err := s.repo.Set(ctx, score)
	s.Require().NoError(err)

	got, err := s.repo.Get(ctx, score.CommentID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(score.CommentID, got.CommentID)
	s.Equal(score.Score, got.Score)
}

func (s *ScoreRepositoryTestSuite) TestGet_Miss() {
	ctx := context.Background()

	// Промах кеша не является ошибкой
	got, err := s.repo.Get(ctx, primitive.NewObjectID().Hex())
	s.NoError(err)
	s.Nil(got)
}

func (s *ScoreRepositoryTestSuite) TestExists() {
	ctx := context.Background()
	score := s.testScore()

	exists, err := s.repo.Exists(ctx, score.CommentID)
	s.Require().NoError(err)
	s.False(exists)

	s.Require().NoError(s.repo.Set(ctx, score))

	exists, err = s.repo.Exists(ctx, score.CommentID)
	s.Require().NoError(err)
	s.True(exists)
}

func (s *ScoreRepositoryTestSuite) TestTTL_Expiration() {
	ctx := context.Background()
	score := s.testScore()

	s.Require().NoError(s.repo.Set(ctx, score))

	// Сдвигаем время за пределы TTL
	s.miniRedis.FastForward(2 * time.Hour)

	got, err := s.repo.Get(ctx, score.CommentID)
	s.NoError(err)
	s.Nil(got)
}

func (s *ScoreRepositoryTestSuite) TestKeyFormat() {
	ctx := context.Background()
	score := s.testScore()

	s.Require().NoError(s.repo.Set(ctx, score))

	s.True(s.miniRedis.Exists("scores:" + score.CommentID))
}
