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

const (
	EMAIL         = "test@test.test"
	PASSWORD_HASH = "test-password-hash"
)

var NOW time.Time = time.Date(2023, 2, 2, 15, 30, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	repo *PgxUserRepository
}

func (suite *testSuite) SetupSuite() {
	if !db.TestPoolAvailable() {
		suite.T().Skip("TEST_POSTGRESQL_URL is not set.")
	}
	suite.pool = db.CreateTestPool()
	suite.repo = NewPgxRepository(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxUserRepository(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestCreateSuccess() {
	u, err := suite.repo.Create(context.Background(), user.CreateUserInput{
		Email:        c.Email(EMAIL),
		PasswordHash: user.PasswordHash(PASSWORD_HASH),
		CreatedAt:    NOW,
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.NotEqual(user.ID(0), u.ID)
	assert.Equal(c.Email(EMAIL), u.Email)
	assert.Equal(user.PasswordHash(PASSWORD_HASH), u.PasswordHash)
	assert.True(NOW.Equal(u.CreatedAt))
	assert.False(u.ActivatedAt.IsPresent)
}

func (suite *testSuite) TestEmailAlreadyExistsError() {
	input := user.CreateUserInput{
		Email:        c.Email(EMAIL),
		PasswordHash: user.PasswordHash(PASSWORD_HASH),
		CreatedAt:    NOW,
	}
	_, err := suite.repo.Create(context.Background(), input)
	suite.Require().Nil(err)

	_, err = suite.repo.Create(context.Background(), input)

	suite.Require().ErrorIs(err, user.ErrEmailAlreadyExists)
}

func (suite *testSuite) TestGetByIDSuccess() {
	created := suite.createUser()

	u, err := suite.repo.GetByID(context.Background(), created.ID)

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(created.ID, u.ID)
	assert.Equal(created.Email, u.Email)
}

func (suite *testSuite) TestGetByIDNotFound() {
	_, err := suite.repo.GetByID(context.Background(), user.ID(111222333))

	suite.Require().ErrorIs(err, user.ErrUserDoesNotExist)
}

func (suite *testSuite) TestGetByEmailSuccess() {
	created := suite.createUser()

	u, err := suite.repo.GetByEmail(context.Background(), c.Email(EMAIL))

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(created.ID, u.ID)
}

func (suite *testSuite) TestGetByEmailNotFound() {
	_, err := suite.repo.GetByEmail(context.Background(), c.Email("unknown@test.test"))

	suite.Require().ErrorIs(err, user.ErrUserDoesNotExist)
}

func (suite *testSuite) TestActivateSuccess() {
	created := suite.createUser()
	activatedAt := NOW.Add(time.Minute)

	u, err := suite.repo.Activate(context.Background(), created.ID, activatedAt)

	assert := suite.Require()
	assert.Nil(err)
	assert.True(u.ActivatedAt.IsPresent)
	assert.True(activatedAt.Equal(u.ActivatedAt.Value))

	u, err = suite.repo.GetByID(context.Background(), created.ID)
	assert.Nil(err)
	assert.True(u.IsActive())
}

func (suite *testSuite) TestActivateNotFound() {
	_, err := suite.repo.Activate(context.Background(), user.ID(111222333), NOW)

	suite.Require().ErrorIs(err, user.ErrUserDoesNotExist)
}

func (suite *testSuite) createUser() user.User {
	u, err := suite.repo.Create(context.Background(), user.CreateUserInput{
		Email:        c.Email(EMAIL),
		PasswordHash: user.PasswordHash(PASSWORD_HASH),
		CreatedAt:    NOW,
	})
	suite.Require().Nil(err)
	return u
}
