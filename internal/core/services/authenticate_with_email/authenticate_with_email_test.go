package authenticatewithemail

import (
	"context"
	"errors"
	c "simpleauth/internal/core/domain/common"
	"simpleauth/internal/core/domain/logging"
	"simpleauth/internal/core/domain/user"
	"simpleauth/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	EMAIL        = c.Email("test@test.test")
	RAW_PASSWORD = user.RawPassword("test-password")
)

var NOW time.Time = time.Now().UTC()

type testSuite struct {
	suite.Suite
	Logger         *logging.FakeLogger
	UserRepository *user.FakeUserRepository
	PasswordHasher *user.FakePasswordHasher
	Service        services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UserRepository = user.NewFakeUserRepository()
	suite.PasswordHasher = user.NewFakePasswordHasher()
	suite.Service = New(
		suite.Logger,
		suite.UserRepository,
		suite.PasswordHasher,
	)
}

func TestAuthenticateWithEmailService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) createUser(active bool) user.User {
	ctx := context.Background()
	hash, err := suite.PasswordHasher.HashPassword(RAW_PASSWORD)
	suite.Require().Nil(err)
	u, err := suite.UserRepository.Create(ctx, user.CreateUserInput{
		Email:        EMAIL,
		PasswordHash: hash,
		CreatedAt:    NOW,
	})
	suite.Require().Nil(err)
	if active {
		u, err = suite.UserRepository.Activate(ctx, u.ID, NOW)
		suite.Require().Nil(err)
	}
	return u
}

func (suite *testSuite) TestSuccess() {
	u := suite.createUser(true)

	result, err := suite.Service.Run(context.Background(), Input{Email: EMAIL, Password: RAW_PASSWORD})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(u.ID, result.User.ID)
	assert.True(result.User.IsActive())
}

func (suite *testSuite) TestUnknownEmailAndWrongPasswordAreIndistinguishable() {
	suite.createUser(true)

	_, errUnknown := suite.Service.Run(
		context.Background(),
		Input{Email: c.Email("other@test.test"), Password: RAW_PASSWORD},
	)
	_, errWrongPassword := suite.Service.Run(
		context.Background(),
		Input{Email: EMAIL, Password: user.RawPassword("wrong-password")},
	)

	assert := suite.Require()
	assert.True(errors.Is(errUnknown, user.ErrInvalidCredentials))
	assert.True(errors.Is(errWrongPassword, user.ErrInvalidCredentials))
	assert.Equal(errUnknown, errWrongPassword)
}

func (suite *testSuite) TestInactiveUserWithCorrectPassword() {
	suite.createUser(false)

	_, err := suite.Service.Run(context.Background(), Input{Email: EMAIL, Password: RAW_PASSWORD})

	assert := suite.Require()
	assert.True(errors.Is(err, user.ErrUserIsNotActive))
	assert.False(errors.Is(err, user.ErrInvalidCredentials))
}
