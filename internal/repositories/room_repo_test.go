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

type RoomRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    RoomRepository
	ownerID uuid.UUID
	context context.Context
}

func (suite *RoomRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewRoomRepository(mock)
	suite.ownerID = uuid.New()
	suite.context = context.Background()
}

func (suite *RoomRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestRoomRepoTestSuite(t *testing.T) {
	suite.Run(t, new(RoomRepoTestSuite))
}

func roomRowColumns() []string {
	return []string{
		"id", "owner_id", "address_line", "city", "district", "taluka", "state", "pincode",
		"landmark", "rent", "room_type", "features", "is_active", "images", "created_at", "updated_at",
	}
}

func (suite *RoomRepoTestSuite) addRoomRow(rows *pgxmock.Rows, roomID uuid.UUID, city string) *pgxmock.Rows {
	now := time.Now()
	return rows.AddRow(roomID, suite.ownerID, "14 MG Road", city, "Pune", "Haveli", "Maharashtra", "411001",
		(*string)(nil), 6500.0, models.RoomTypeStudent, []byte(`{"wifi":true,"water":true}`), true,
		[]string{}, now, now)
}

func (suite *RoomRepoTestSuite) TestCreate_Success() {
	room := &models.Room{
		ID:          uuid.New(),
		OwnerID:     suite.ownerID,
		AddressLine: "14 MG Road",
		City:        "Pune",
		District:    "Pune",
		State:       "Maharashtra",
		Pincode:     "411001",
		Rent:        6500,
		RoomType:    models.RoomTypeStudent,
		Features:    models.RoomFeatures{Wifi: true},
		IsActive:    true,
	}

	suite.mock.ExpectExec(`INSERT INTO rooms`).
		WithArgs(room.ID, room.OwnerID, room.AddressLine, room.City, room.District, room.Taluka,
			room.State, room.Pincode, room.Landmark, room.Rent, room.RoomType,
			[]byte(`{"wifi":true,"electricity":false,"water":false,"parking":false,"furnished":false,"security":false}`),
			room.IsActive, room.Images).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, room)
	assert.NoError(suite.T(), err)
}

func (suite *RoomRepoTestSuite) TestGetActiveByID_InactiveIsNil() {
	roomID := uuid.New()

	suite.mock.ExpectQuery(`FROM rooms WHERE id = \$1 AND is_active = TRUE`).
		WithArgs(roomID).
		WillReturnRows(pgxmock.NewRows(roomRowColumns()))

	room, err := suite.repo.GetActiveByID(suite.context, roomID)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), room)
}

func (suite *RoomRepoTestSuite) TestGetActiveByID_Success() {
	roomID := uuid.New()

	suite.mock.ExpectQuery(`FROM rooms WHERE id = \$1 AND is_active = TRUE`).
		WithArgs(roomID).
		WillReturnRows(suite.addRoomRow(pgxmock.NewRows(roomRowColumns()), roomID, "Pune"))

	room, err := suite.repo.GetActiveByID(suite.context, roomID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), room.IsActive)
	assert.True(suite.T(), room.Features.Wifi)
	assert.False(suite.T(), room.Features.Parking)
}

func (suite *RoomRepoTestSuite) TestDelete_OwnedRoom() {
	roomID := uuid.New()

	suite.mock.ExpectExec(`DELETE FROM rooms WHERE owner_id = \$1 AND id = \$2`).
		WithArgs(suite.ownerID, roomID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	deleted, err := suite.repo.Delete(suite.context, suite.ownerID, roomID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), deleted)
}

func (suite *RoomRepoTestSuite) TestDelete_SomeoneElsesRoomTouchesNothing() {
	roomID := uuid.New()

	suite.mock.ExpectExec(`DELETE FROM rooms WHERE owner_id = \$1 AND id = \$2`).
		WithArgs(suite.ownerID, roomID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	deleted, err := suite.repo.Delete(suite.context, suite.ownerID, roomID)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), deleted)
}

func (suite *RoomRepoTestSuite) TestSearch_CityAndRoomType() {
	city := "Pune"
	roomType := models.RoomTypeStudent
	filter := &models.RoomSearchFilter{City: &city, RoomType: &roomType}

	suite.mock.ExpectQuery(`WHERE r\.is_active = TRUE`).
		WithArgs(city, roomType, 50, 0).
		WillReturnRows(suite.addRoomRow(pgxmock.NewRows(roomRowColumns()), uuid.New(), city))

	rooms, err := suite.repo.Search(suite.context, filter)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), rooms, 1)
	assert.Equal(suite.T(), city, rooms[0].City)
}

func (suite *RoomRepoTestSuite) TestSearch_FeatureContainment() {
	filter := &models.RoomSearchFilter{
		Features: &models.RoomFeatures{Wifi: true, Water: true},
	}

	// Only the set flags become required; json.Marshal sorts map keys
	suite.mock.ExpectQuery(`r\.features @>`).
		WithArgs([]byte(`{"water":true,"wifi":true}`), 50, 0).
		WillReturnRows(suite.addRoomRow(pgxmock.NewRows(roomRowColumns()), uuid.New(), "Pune"))

	rooms, err := suite.repo.Search(suite.context, filter)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), rooms, 1)
}

func (suite *RoomRepoTestSuite) TestSearch_EmptyFeatureFilterAddsNoClause() {
	filter := &models.RoomSearchFilter{Features: &models.RoomFeatures{}}

	suite.mock.ExpectQuery(`WHERE r\.is_active = TRUE`).
		WithArgs(50, 0).
		WillReturnRows(pgxmock.NewRows(roomRowColumns()))

	rooms, err := suite.repo.Search(suite.context, filter)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), rooms)
}

func (suite *RoomRepoTestSuite) TestCountByOwner() {
	suite.mock.ExpectQuery(`COUNT\(\*\) FILTER`).
		WithArgs(suite.ownerID).
		WillReturnRows(pgxmock.NewRows([]string{"active", "inactive"}).AddRow(3, 1))

	active, inactive, err := suite.repo.CountByOwner(suite.context, suite.ownerID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 3, active)
	assert.Equal(suite.T(), 1, inactive)
}
