package util

import (
	"context"
	"testing"
	"time"

	"wanderlog/places-service/internal/app/places/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// RedisClientTestSuite тестовый suite для кеша листинга мест
type RedisClientTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	cache     *RedisClient
}

func TestRedisClientSuite(t *testing.T) {
	suite.Run(t, new(RedisClientTestSuite))
}

func (s *RedisClientTestSuite) SetupSuite() {
	var err error
	s.miniRedis, err = miniredis.Run()
	require.NoError(s.T(), err)

	s.cache, err = NewRedisClient(s.miniRedis.Addr(), "", 0)
	require.NoError(s.T(), err)
}

func (s *RedisClientTestSuite) SetupTest() {
	s.miniRedis.FlushAll()
}

func (s *RedisClientTestSuite) TearDownSuite() {
	s.cache.Close()
	s.miniRedis.Close()
}

func (s *RedisClientTestSuite) testListing() []entity.PlaceWithComments {
	return []entity.PlaceWithComments{
		{
			ID:          uuid.New(),
			Title:       "Hidden waterfall",
			Tags:        []string{"nature", "hiking"},
			RatingScore: 4.2,
			Comments: []entity.CommentView{
				{CommentText: "worth the walk", Email: "a@example.com", Name: "A"},
			},
		},
	}
}

func (s *RedisClientTestSuite) TestSetAndGet() {
	ctx := context.Background()
	listing := s.testListing()

	err := s.cache.SetPlacesWithComments(ctx, listing, time.Hour)
	s.NoError(err)

	got, err := s.cache.GetPlacesWithComments(ctx)
	s.NoError(err)
	s.Require().Len(got, 1)
	s.Equal(listing[0].ID, got[0].ID)
	s.Equal([]string{"nature", "hiking"}, got[0].Tags)
	s.Len(got[0].Comments, 1)
}

func (s *RedisClientTestSuite) TestGet_Miss() {
	ctx := context.Background()

	// Промах кеша не является ошибкой
	got, err := s.cache.GetPlacesWithComments(ctx)
	s.NoError(err)
	s.Nil(got)
}

func (s *RedisClientTestSuite) TestDelete_Invalidates() {
	ctx := context.Background()

	err := s.cache.SetPlacesWithComments(ctx, s.testListing(), time.Hour)
	s.NoError(err)

	err = s.cache.DeletePlacesWithComments(ctx)
	s.NoError(err)

	got, err := s.cache.GetPlacesWithComments(ctx)
	s.NoError(err)
	s.Nil(got)
}

func (s *RedisClientTestSuite) TestTTL_Expiration() {
	ctx := context.Background()

	err := s.cache.SetPlacesWithComments(ctx, s.testListing(), time.Minute)
	s.NoError(err)

	s.miniRedis.FastForward(2 * time.Minute)

	got, err := s.cache.GetPlacesWithComments(ctx)
	s.NoError(err)
	s.Nil(got)
}

func (s *RedisClientTestSuite) TestKeyFormat() {
	ctx := context.Background()

	err := s.cache.SetPlacesWithComments(ctx, s.testListing(), time.Hour)
	s.NoError(err)

	s.True(s.miniRedis.Exists("places_with_comments:all"))
}
