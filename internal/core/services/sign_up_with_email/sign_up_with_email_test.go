package signupwithemail

import (
	"context"
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
		func() time.Time { return NOW },
	)
}

func TestSignUpWithEmailService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestSuccess() {
	result, err := suite.Service.Run(context.Background(), Input{Email: EMAIL, Password: RAW_PASSWORD})

	assert := suite.Require()
	assert.Nil(err)
	assert.True(result.Created)
	assert.NotEqual(user.ID(0), result.User.ID)
	assert.Equal(EMAIL, result.User.Email)
	assert.Equal(NOW, result.User.CreatedAt)
	assert.NotEqual(string(RAW_PASSWORD), string(result.User.PasswordHash))
	assert.False(result.User.IsActive())
	assert.Len(suite.UserRepository.Users, 1)
}

func (suite *testSuite) TestDuplicateEmailIsAbsorbed() {
	ctx := context.Background()
	first, err := suite.Service.Run(ctx, Input{Email: EMAIL, Password: RAW_PASSWORD})
	suite.Require().Nil(err)

	second, err := suite.Service.Run(ctx, Input{Email: EMAIL, Password: user.RawPassword("other-password")})

	assert := suite.Require()
	assert.Nil(err)
	assert.False(second.Created)
	assert.Equal(user.ID(0), second.User.ID)
	assert.Len(suite.UserRepository.Users, 1)

	stored, err := suite.UserRepository.GetByEmail(ctx, EMAIL)
	assert.Nil(err)
	assert.Equal(first.User.PasswordHash, stored.PasswordHash)
}
