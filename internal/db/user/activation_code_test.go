package user

import (
	"context"
	c "simpleauth/internal/core/domain/common"
	"simpleauth/internal/core/domain/user"
	"simpleauth/internal/db"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

const CODE = "1234"

type activationCodeTestSuite struct {
	suite.Suite
	pool     *pgxpool.Pool
	users    *PgxUserRepository
	repo     *PgxActivationCodeRepository
	testUser user.User
}

func (suite *activationCodeTestSuite) SetupSuite() {
	if !db.TestPoolAvailable() {
		suite.T().Skip("TEST_POSTGRESQL_URL is not set.")
	}
	suite.pool = db.CreateTestPool()
	suite.users = NewPgxRepository(suite.pool)
	suite.repo = NewPgxActivationCodeRepository(suite.pool)
}

func (suite *activationCodeTestSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *activationCodeTestSuite) SetupTest() {
	u, err := suite.users.Create(context.Background(), user.CreateUserInput{
		Email:        c.Email(EMAIL),
		PasswordHash: user.PasswordHash(PASSWORD_HASH),
		CreatedAt:    NOW,
	})
	suite.Require().Nil(err)
	suite.testUser = u
}

func (suite *activationCodeTestSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxActivationCodeRepository(t *testing.T) {
	suite.Run(t, new(activationCodeTestSuite))
}

func (suite *activationCodeTestSuite) TestPutAndGet() {
	code := user.NewActivationCode(suite.testUser.ID, user.Code(CODE), NOW)

	stored, err := suite.repo.Put(context.Background(), code)

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(suite.testUser.ID, stored.UserID)
	assert.Equal(user.Code(CODE), stored.Code)
	assert.True(code.ExpiresAt.Equal(stored.ExpiresAt))
	assert.False(stored.ConsumedAt.IsPresent)

	got, err := suite.repo.GetActiveForUser(context.Background(), suite.testUser.ID)
	assert.Nil(err)
	assert.Equal(user.Code(CODE), got.Code)
}

func (suite *activationCodeTestSuite) TestPutReplacesExistingCode() {
	ctx := context.Background()
	_, err := suite.repo.Put(ctx, user.NewActivationCode(suite.testUser.ID, user.Code("1111"), NOW))
	suite.Require().Nil(err)

	later := NOW.Add(30 * time.Second)
	replaced, err := suite.repo.Put(ctx, user.NewActivationCode(suite.testUser.ID, user.Code("2222"), later))

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(user.Code("2222"), replaced.Code)
	assert.True(later.Add(user.CodeTTL).Equal(replaced.ExpiresAt))

	got, err := suite.repo.GetActiveForUser(ctx, suite.testUser.ID)
	assert.Nil(err)
	assert.Equal(user.Code("2222"), got.Code)
}

func (suite *activationCodeTestSuite) TestPutResetsConsumedCode() {
	ctx := context.Background()
	_, err := suite.repo.Put(ctx, user.NewActivationCode(suite.testUser.ID, user.Code("1111"), NOW))
	suite.Require().Nil(err)
	consumed, err := suite.repo.Consume(ctx, suite.testUser.ID, NOW.Add(time.Second))
	suite.Require().Nil(err)
	suite.Require().True(consumed)

	_, err = suite.repo.Put(ctx, user.NewActivationCode(suite.testUser.ID, user.Code("2222"), NOW.Add(time.Minute)))
	suite.Require().Nil(err)

	got, err := suite.repo.GetActiveForUser(ctx, suite.testUser.ID)
	suite.Require().Nil(err)
	suite.Require().Equal(user.Code("2222"), got.Code)
	suite.Require().False(got.ConsumedAt.IsPresent)
}

func (suite *activationCodeTestSuite) TestGetActiveForUserNoCode() {
	_, err := suite.repo.GetActiveForUser(context.Background(), suite.testUser.ID)

	suite.Require().ErrorIs(err, user.ErrNoActiveCode)
}

func (suite *activationCodeTestSuite) TestGetActiveForUserConsumedCode() {
	ctx := context.Background()
	_, err := suite.repo.Put(ctx, user.NewActivationCode(suite.testUser.ID, user.Code(CODE), NOW))
	suite.Require().Nil(err)
	consumed, err := suite.repo.Consume(ctx, suite.testUser.ID, NOW.Add(time.Second))
	suite.Require().Nil(err)
	suite.Require().True(consumed)

	_, err = suite.repo.GetActiveForUser(ctx, suite.testUser.ID)

	suite.Require().ErrorIs(err, user.ErrNoActiveCode)
}

func (suite *activationCodeTestSuite) TestConsumeTwice() {
	ctx := context.Background()
	_, err := suite.repo.Put(ctx, user.NewActivationCode(suite.testUser.ID, user.Code(CODE), NOW))
	suite.Require().Nil(err)

	first, err := suite.repo.Consume(ctx, suite.testUser.ID, NOW.Add(time.Second))
	suite.Require().Nil(err)
	second, err := suite.repo.Consume(ctx, suite.testUser.ID, NOW.Add(2*time.Second))
	suite.Require().Nil(err)

	suite.Require().True(first)
	suite.Require().False(second)
}

func (suite *activationCodeTestSuite) TestConsumeWithoutCode() {
	consumed, err := suite.repo.Consume(context.Background(), suite.testUser.ID, NOW)

	suite.Require().Nil(err)
	suite.Require().False(consumed)
}

func (suite *activationCodeTestSuite) TestDelete() {
	ctx := context.Background()
	_, err := suite.repo.Put(ctx, user.NewActivationCode(suite.testUser.ID, user.Code(CODE), NOW))
	suite.Require().Nil(err)

	deleted, err := suite.repo.Delete(ctx, suite.testUser.ID)
	suite.Require().Nil(err)
	suite.Require().True(deleted)

	deleted, err = suite.repo.Delete(ctx, suite.testUser.ID)
	suite.Require().Nil(err)
	suite.Require().False(deleted)
}

func (suite *activationCodeTestSuite) TestDeleteExpired() {
	ctx := context.Background()
	other, err := suite.users.Create(ctx, user.CreateUserInput{
		Email:        c.Email("other@test.test"),
		PasswordHash: user.PasswordHash(PASSWORD_HASH),
		CreatedAt:    NOW,
	})
	suite.Require().Nil(err)

	_, err = suite.repo.Put(ctx, user.NewActivationCode(suite.testUser.ID, user.Code("1111"), NOW))
	suite.Require().Nil(err)
	_, err = suite.repo.Put(ctx, user.NewActivationCode(other.ID, user.Code("2222"), NOW.Add(user.CodeTTL)))
	suite.Require().Nil(err)

	count, err := suite.repo.DeleteExpired(ctx, NOW.Add(user.CodeTTL))

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(int64(1), count)

	_, err = suite.repo.GetActiveForUser(ctx, suite.testUser.ID)
	assert.ErrorIs(err, user.ErrNoActiveCode)
	_, err = suite.repo.GetActiveForUser(ctx, other.ID)
	assert.Nil(err)
}
