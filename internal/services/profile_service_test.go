package services

import (
	"context"
	"errors"
	"testing"

	"roomlink/internal/common"
	"roomlink/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ProfileServiceTestSuite struct {
	suite.Suite
	mockProfileRepo *MockProfileRepository
	service         ProfileService

	userID  uuid.UUID
	authCtx context.Context
}

func (suite *ProfileServiceTestSuite) SetupTest() {
	suite.mockProfileRepo = &MockProfileRepository{}
	suite.service = NewProfileService(suite.mockProfileRepo)
	suite.userID = uuid.New()
	suite.authCtx = common.WithUserID(context.Background(), suite.userID)
}

func (suite *ProfileServiceTestSuite) TearDownTest() {
	suite.mockProfileRepo.AssertExpectations(suite.T())
}

func TestProfileServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProfileServiceTestSuite))
}

func validProfileInput() *CreateProfileInput {
	return &CreateProfileInput{
		Role:  models.RoleTenant,
		Name:  "Asha",
		Email: "asha@example.com",
		Phone: "9876543210",
	}
}

func (suite *ProfileServiceTestSuite) TestCreate_Success() {
	suite.mockProfileRepo.On("GetByUserID", mock.Anything, suite.userID).Return(nil, nil)
	suite.mockProfileRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Profile) bool {
		return p.UserID == suite.userID && p.Role == models.RoleTenant
	})).Return(nil)

	profile, err := suite.service.Create(suite.authCtx, validProfileInput())

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.userID, profile.UserID)
	assert.Equal(suite.T(), models.RoleTenant, profile.Role)
}

func (suite *ProfileServiceTestSuite) TestCreate_NotAuthenticated() {
	_, err := suite.service.Create(context.Background(), validProfileInput())

	assert.ErrorIs(suite.T(), err, common.ErrNotAuthenticated)
}

func (suite *ProfileServiceTestSuite) TestCreate_UnknownRole() {
	input := validProfileInput()
	input.Role = "admin"

	_, err := suite.service.Create(suite.authCtx, input)

	assert.ErrorIs(suite.T(), err, common.ErrValidation)
}

func (suite *ProfileServiceTestSuite) TestCreate_MissingName() {
	input := validProfileInput()
	input.Name = "  "

	_, err := suite.service.Create(suite.authCtx, input)

	assert.ErrorIs(suite.T(), err, common.ErrValidation)
}

func (suite *ProfileServiceTestSuite) TestCreate_BadEmail() {
	input := validProfileInput()
	input.Email = "not-an-email"

	_, err := suite.service.Create(suite.authCtx, input)

	assert.ErrorIs(suite.T(), err, common.ErrValidation)
}

func (suite *ProfileServiceTestSuite) TestCreate_ExistingProfileRejected() {
	existing := &models.Profile{ID: uuid.New(), UserID: suite.userID, Role: models.RoleOwner}
	suite.mockProfileRepo.On("GetByUserID", mock.Anything, suite.userID).Return(existing, nil)

	// The role picked at first login is permanent; re-creation is refused
	_, err := suite.service.Create(suite.authCtx, validProfileInput())

	assert.ErrorIs(suite.T(), err, common.ErrValidation)
}

func (suite *ProfileServiceTestSuite) TestResolve_Success() {
	profile := &models.Profile{ID: uuid.New(), UserID: suite.userID, Role: models.RoleTenant}
	suite.mockProfileRepo.On("GetByUserID", mock.Anything, suite.userID).Return(profile, nil)

	result, err := suite.service.Resolve(suite.authCtx)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), profile.ID, result.ID)
}

func (suite *ProfileServiceTestSuite) TestResolve_MissingProfile() {
	suite.mockProfileRepo.On("GetByUserID", mock.Anything, suite.userID).Return(nil, nil)

	_, err := suite.service.Resolve(suite.authCtx)

	assert.ErrorIs(suite.T(), err, common.ErrProfileNotFound)
}

func (suite *ProfileServiceTestSuite) TestResolve_RetriesTransientFailure() {
	profile := &models.Profile{ID: uuid.New(), UserID: suite.userID, Role: models.RoleTenant}
	suite.mockProfileRepo.On("GetByUserID", mock.Anything, suite.userID).Return(nil, errors.New("connection reset")).Once()
	suite.mockProfileRepo.On("GetByUserID", mock.Anything, suite.userID).Return(profile, nil).Once()

	result, err := suite.service.Resolve(suite.authCtx)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), profile.ID, result.ID)
}
