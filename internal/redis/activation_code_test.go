package redis

import (
	"context"
	"os"
	"simpleauth/internal/core/domain/user"
	"testing"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/stretchr/testify/suite"
)

const CODE = "1234"

var NOW time.Time = time.Date(2023, 2, 2, 15, 30, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	redisClient *redis.Client
	repo        *ActivationCodeRepository
}

func (suite *testSuite) SetupSuite() {
	redisURL := os.Getenv("TEST_REDIS_URL")
	if redisURL == "" {
		suite.T().Skip("TEST_REDIS_URL is not set.")
	}
	redisOpt, err := redis.ParseURL(redisURL)
	suite.Require().Nil(err)
	suite.redisClient = redis.NewClient(redisOpt)
	suite.repo = NewActivationCodeRepository(suite.redisClient)
}

func (suite *testSuite) TearDownSuite() {
	if suite.redisClient != nil {
		suite.redisClient.Close()
	}
}

func (suite *testSuite) TearDownTest() {
	suite.Require().Nil(suite.redisClient.FlushDB(context.Background()).Err())
}

func TestRedisActivationCodeRepository(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestPutAndGet() {
	code := user.NewActivationCode(user.ID(1), user.Code(CODE), NOW)

	stored, err := suite.repo.Put(context.Background(), code)

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(code, stored)

	got, err := suite.repo.GetActiveForUser(context.Background(), user.ID(1))
	assert.Nil(err)
	assert.Equal(user.Code(CODE), got.Code)
	assert.True(code.ExpiresAt.Equal(got.ExpiresAt))
}

func (suite *testSuite) TestPutReplacesExistingCode() {
	ctx := context.Background()
	_, err := suite.repo.Put(ctx, user.NewActivationCode(user.ID(1), user.Code("1111"), NOW))
	suite.Require().Nil(err)

	_, err = suite.repo.Put(ctx, user.NewActivationCode(user.ID(1), user.Code("2222"), NOW.Add(time.Second)))
	suite.Require().Nil(err)

	got, err := suite.repo.GetActiveForUser(ctx, user.ID(1))
	suite.Require().Nil(err)
	suite.Require().Equal(user.Code("2222"), got.Code)
}

func (suite *testSuite) TestGetActiveForUserNoCode() {
	_, err := suite.repo.GetActiveForUser(context.Background(), user.ID(1))

	suite.Require().ErrorIs(err, user.ErrNoActiveCode)
}

func (suite *testSuite) TestConsume() {
	ctx := context.Background()
	_, err := suite.repo.Put(ctx, user.NewActivationCode(user.ID(1), user.Code(CODE), NOW))
	suite.Require().Nil(err)

	first, err := suite.repo.Consume(ctx, user.ID(1), NOW.Add(time.Second))
	suite.Require().Nil(err)
	second, err := suite.repo.Consume(ctx, user.ID(1), NOW.Add(2*time.Second))
	suite.Require().Nil(err)

	suite.Require().True(first)
	suite.Require().False(second)

	_, err = suite.repo.GetActiveForUser(ctx, user.ID(1))
	suite.Require().ErrorIs(err, user.ErrNoActiveCode)
}

func (suite *testSuite) TestConsumeWithoutCode() {
	consumed, err := suite.repo.Consume(context.Background(), user.ID(1), NOW)

	suite.Require().Nil(err)
	suite.Require().False(consumed)
}

func (suite *testSuite) TestDelete() {
	ctx := context.Background()
	_, err := suite.repo.Put(ctx, user.NewActivationCode(user.ID(1), user.Code(CODE), NOW))
	suite.Require().Nil(err)

	deleted, err := suite.repo.Delete(ctx, user.ID(1))
	suite.Require().Nil(err)
	suite.Require().True(deleted)

	deleted, err = suite.repo.Delete(ctx, user.ID(1))
	suite.Require().Nil(err)
	suite.Require().False(deleted)
}

func (suite *testSuite) TestDeleteExpired() {
	ctx := context.Background()
	_, err := suite.repo.Put(ctx, user.NewActivationCode(user.ID(1), user.Code("1111"), NOW))
	suite.Require().Nil(err)
	_, err = suite.repo.Put(ctx, user.NewActivationCode(user.ID(2), user.Code("2222"), NOW.Add(user.CodeTTL)))
	suite.Require().Nil(err)
	_, err = suite.repo.Put(ctx, user.NewActivationCode(user.ID(3), user.Code("3333"), NOW))
	suite.Require().Nil(err)
	consumed, err := suite.repo.Consume(ctx, user.ID(3), NOW.Add(time.Second))
	suite.Require().Nil(err)
	suite.Require().True(consumed)

	count, err := suite.repo.DeleteExpired(ctx, NOW.Add(user.CodeTTL))

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(int64(1), count)

	_, err = suite.repo.GetActiveForUser(ctx, user.ID(1))
	assert.ErrorIs(err, user.ErrNoActiveCode)
	_, err = suite.repo.GetActiveForUser(ctx, user.ID(2))
	assert.Nil(err)
}
