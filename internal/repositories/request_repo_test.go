package repositories

import (
	"context"
	"testing"
	"time"

	"roomlink/internal/models"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type RequestRepoTestSuite struct {
	suite.Suite
	mock     pgxmock.PgxPoolIface
	repo     RequestRepository
	ownerID  uuid.UUID
	tenantID uuid.UUID
	roomID   uuid.UUID
	context  context.Context
}

func (suite *RequestRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewRequestRepository(mock)
	suite.ownerID = uuid.New()
	suite.tenantID = uuid.New()
	suite.roomID = uuid.New()
	suite.context = context.Background()
}

func (suite *RequestRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestRequestRepoTestSuite(t *testing.T) {
	suite.Run(t, new(RequestRepoTestSuite))
}

func (suite *RequestRepoTestSuite) TestCreate_Success() {
	request := &models.Request{
		ID:       uuid.New(),
		RoomID:   suite.roomID,
		TenantID: suite.tenantID,
		OwnerID:  suite.ownerID,
		Status:   models.RequestStatusPending,
	}

	suite.mock.ExpectExec(`INSERT INTO requests`).
		WithArgs(request.ID, request.RoomID, request.TenantID, request.OwnerID, request.Message, request.Status).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, request)
	assert.NoError(suite.T(), err)
}

func (suite *RequestRepoTestSuite) TestGetByID_NotFoundReturnsNil() {
	requestID := uuid.New()

	suite.mock.ExpectQuery(`SELECT id, room_id, tenant_id, owner_id, message, status, created_at, decided_at`).
		WithArgs(requestID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "room_id", "tenant_id", "owner_id", "message", "status", "created_at", "decided_at"}))

	request, err := suite.repo.GetByID(suite.context, requestID)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), request)
}

func (suite *RequestRepoTestSuite) TestGetByID_Success() {
	requestID := uuid.New()
	createdAt := time.Now()

	suite.mock.ExpectQuery(`SELECT id, room_id, tenant_id, owner_id, message, status, created_at, decided_at`).
		WithArgs(requestID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "room_id", "tenant_id", "owner_id", "message", "status", "created_at", "decided_at"}).
			AddRow(requestID, suite.roomID, suite.tenantID, suite.ownerID, (*string)(nil), models.RequestStatusPending, createdAt, (*time.Time)(nil)))

	request, err := suite.repo.GetByID(suite.context, requestID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.RequestStatusPending, request.Status)
	assert.Nil(suite.T(), request.DecidedAt)
}

func (suite *RequestRepoTestSuite) TestUpdateStatusIfPending_Wins() {
	requestID := uuid.New()

	suite.mock.ExpectExec(`UPDATE requests`).
		WithArgs(requestID, models.RequestStatusAccepted).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	won, err := suite.repo.UpdateStatusIfPending(suite.context, requestID, models.RequestStatusAccepted)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), won)
}

func (suite *RequestRepoTestSuite) TestUpdateStatusIfPending_LosesWhenNotPending() {
	requestID := uuid.New()

	// Zero rows touched means another decision already landed
	suite.mock.ExpectExec(`UPDATE requests`).
		WithArgs(requestID, models.RequestStatusRejected).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	won, err := suite.repo.UpdateStatusIfPending(suite.context, requestID, models.RequestStatusRejected)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), won)
}

func ownerViewColumns() []string {
	return []string{
		"id", "room_id", "tenant_id", "owner_id", "message", "status", "created_at", "decided_at",
		"name", "email", "phone",
		"r_id", "address_line", "city", "rent", "room_type", "is_active",
	}
}

func (suite *RequestRepoTestSuite) TestListForOwner_WithholdsContactUntilAccepted() {
	pendingID := uuid.New()
	acceptedID := uuid.New()
	createdAt := time.Now()
	decidedAt := createdAt.Add(time.Hour)
	email := "asha@example.com"
	phone := "9876543210"

	suite.mock.ExpectQuery(`FROM requests q`).
		WithArgs(suite.ownerID, 50, 0).
		WillReturnRows(pgxmock.NewRows(ownerViewColumns()).
			AddRow(acceptedID, suite.roomID, suite.tenantID, suite.ownerID, (*string)(nil),
				models.RequestStatusAccepted, createdAt, &decidedAt,
				"Asha", &email, &phone,
				suite.roomID, "14 MG Road", "Pune", 6500.0, models.RoomTypeStudent, true).
			AddRow(pendingID, suite.roomID, suite.tenantID, suite.ownerID, (*string)(nil),
				models.RequestStatusPending, createdAt, (*time.Time)(nil),
				"Asha", (*string)(nil), (*string)(nil),
				suite.roomID, "14 MG Road", "Pune", 6500.0, models.RoomTypeStudent, true))

	views, err := suite.repo.ListForOwner(suite.context, suite.ownerID, 50, 0)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), views, 2)

	accepted, pending := views[0], views[1]
	assert.Equal(suite.T(), models.RequestStatusAccepted, accepted.Status)
	assert.NotNil(suite.T(), accepted.TenantEmail)
	assert.NotNil(suite.T(), accepted.TenantPhone)

	assert.Equal(suite.T(), models.RequestStatusPending, pending.Status)
	assert.Nil(suite.T(), pending.TenantEmail)
	assert.Nil(suite.T(), pending.TenantPhone)
	assert.Equal(suite.T(), "Asha", pending.TenantName)
}

func (suite *RequestRepoTestSuite) TestListForTenant_Success() {
	requestID := uuid.New()
	createdAt := time.Now()

	suite.mock.ExpectQuery(`FROM requests q`).
		WithArgs(suite.tenantID, 50, 0).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "room_id", "tenant_id", "owner_id", "message", "status", "created_at", "decided_at",
			"r_id", "address_line", "city", "rent", "room_type", "is_active",
		}).AddRow(requestID, suite.roomID, suite.tenantID, suite.ownerID, (*string)(nil),
			models.RequestStatusPending, createdAt, (*time.Time)(nil),
			suite.roomID, "14 MG Road", "Pune", 6500.0, models.RoomTypeStudent, true))

	views, err := suite.repo.ListForTenant(suite.context, suite.tenantID, 50, 0)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), views, 1)
	assert.Equal(suite.T(), "Pune", views[0].Room.City)
}

func (suite *RequestRepoTestSuite) TestCountByOwnerStatus() {
	suite.mock.ExpectQuery(`GROUP BY status`).
		WithArgs(suite.ownerID).
		WillReturnRows(pgxmock.NewRows([]string{"status", "count"}).
			AddRow(models.RequestStatusPending, 3).
			AddRow(models.RequestStatusAccepted, 1))

	counts, err := suite.repo.CountByOwnerStatus(suite.context, suite.ownerID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 3, counts[models.RequestStatusPending])
	assert.Equal(suite.T(), 1, counts[models.RequestStatusAccepted])
	assert.Equal(suite.T(), 0, counts[models.RequestStatusRejected])
}
