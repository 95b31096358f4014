package service_test

import (
	"testing"
	"time"

	"github.com/Baaaki/ride-server/internal/models"
	"github.com/Baaaki/ride-server/internal/repository"
	"github.com/Baaaki/ride-server/internal/service"
	"github.com/Baaaki/ride-server/internal/testutil"
	"github.com/Baaaki/ride-server/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// RideViewServiceIntegrationTestSuite defines test suite
type RideViewServiceIntegrationTestSuite struct {
	suite.Suite
	testDB      *testutil.TestDatabase
	viewService *service.RideViewService
	passenger   *testutil.TestUser
	driver      *testutil.TestUser
}

// SetupSuite runs before all tests
func (s *RideViewServiceIntegrationTestSuite) SetupSuite() {
	logger.Init(false)

	s.testDB = testutil.SetupTestDatabase(s.T())

	s.passenger, _ = testutil.CreateTestUser("View Passenger", "view-passenger@example.com", "Pass123456", models.RolePassenger)
	s.driver, _ = testutil.CreateTestUser("View Driver", "view-driver@example.com", "Drive123456", models.RoleDriver)
	s.testDB.DB.Create(s.passenger)
	s.testDB.DB.Create(s.driver)

	userRepo := repository.NewUserRepository(s.testDB.DB)
	rideRepo := repository.NewRideRepository(s.testDB.DB)
	s.viewService = service.NewRideViewService(rideRepo, userRepo)
}

// TearDownSuite runs after all tests
func (s *RideViewServiceIntegrationTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

// SetupTest runs before each test
func (s *RideViewServiceIntegrationTestSuite) SetupTest() {
	s.testDB.DB.Exec("DELETE FROM rides")
}

func (s *RideViewServiceIntegrationTestSuite) passengerID() uuid.UUID {
	return testutil.ParseUUID(s.T(), s.passenger.ID)
}

func (s *RideViewServiceIntegrationTestSuite) driverID() uuid.UUID {
	return testutil.ParseUUID(s.T(), s.driver.ID)
}

// TestLatestRideForPassengerUnassigned tests the "Searching" placeholder
// while no driver has accepted
func (s *RideViewServiceIntegrationTestSuite) TestLatestRideForPassengerUnassigned() {
	ride := testutil.CreateTestRide(s.passenger.ID, time.Now())
	s.testDB.DB.Create(ride)

	view, err := s.viewService.LatestRideFor(s.passengerID())
	assert.NoError(s.T(), err)
	assert.NotNil(s.T(), view)
	assert.Equal(s.T(), ride.ID, view.ID.String())
	assert.Equal(s.T(), "Searching", view.DriverName)
	assert.Equal(s.T(), s.passenger.Name, view.PassengerName)
}

// TestLatestRideForPassengerAssigned tests the driver join once assigned
func (s *RideViewServiceIntegrationTestSuite) TestLatestRideForPassengerAssigned() {
	ride := testutil.CreateAssignedTestRide(s.passenger.ID, s.driver.ID, models.StatusInProgress, time.Now())
	s.testDB.DB.Create(ride)

	view, err := s.viewService.LatestRideFor(s.passengerID())
	assert.NoError(s.T(), err)
	assert.NotNil(s.T(), view)
	assert.Equal(s.T(), s.driver.Name, view.DriverName)
	assert.Equal(s.T(), s.driver.ID, view.DriverID)
	assert.Equal(s.T(), models.StatusInProgress, view.Status)
}

// TestLatestRideForDriver tests role dispatch: drivers see their most recent
// assigned ride with the passenger's name
func (s *RideViewServiceIntegrationTestSuite) TestLatestRideForDriver() {
	older := testutil.CreateAssignedTestRide(s.passenger.ID, s.driver.ID, models.StatusCompleted, time.Now().Add(-time.Hour))
	newer := testutil.CreateAssignedTestRide(s.passenger.ID, s.driver.ID, models.StatusInProgress, time.Now())
	s.testDB.DB.Create(older)
	s.testDB.DB.Create(newer)

	view, err := s.viewService.LatestRideFor(s.driverID())
	assert.NoError(s.T(), err)
	assert.NotNil(s.T(), view)
	assert.Equal(s.T(), newer.ID, view.ID.String())
	assert.Equal(s.T(), s.passenger.Name, view.PassengerName)
}

// TestLatestRideForEmpty tests that no rides is an empty result, not an error
func (s *RideViewServiceIntegrationTestSuite) TestLatestRideForEmpty() {
	view, err := s.viewService.LatestRideFor(s.passengerID())
	assert.NoError(s.T(), err)
	assert.Nil(s.T(), view)
}

// TestLatestRideForUnknownUser tests the user existence check
func (s *RideViewServiceIntegrationTestSuite) TestLatestRideForUnknownUser() {
	_, err := s.viewService.LatestRideFor(uuid.New())
	assert.ErrorIs(s.T(), err, service.ErrUserNotFound)
}

// TestPassengerHistoryOrdering tests most-recent-first ordering and the
// "N/A" placeholder for unassigned rides
func (s *RideViewServiceIntegrationTestSuite) TestPassengerHistoryOrdering() {
	base := time.Now().Add(-time.Minute)
	first := testutil.CreateTestRide(s.passenger.ID, base)
	second := testutil.CreateAssignedTestRide(s.passenger.ID, s.driver.ID, models.StatusCompleted, base.Add(time.Second))
	s.testDB.DB.Create(first)
	s.testDB.DB.Create(second)

	views, err := s.viewService.PassengerHistory(s.passengerID())
	assert.NoError(s.T(), err)
	assert.Len(s.T(), views, 2)

	// Most recent first
	assert.Equal(s.T(), second.ID, views[0].ID.String())
	assert.Equal(s.T(), first.ID, views[1].ID.String())

	// Assigned ride joins the driver, unassigned shows N/A
	assert.Equal(s.T(), s.driver.Name, views[0].DriverName)
	assert.Equal(s.T(), s.driver.ID, views[0].DriverID)
	assert.Equal(s.T(), "N/A", views[1].DriverName)
	assert.Equal(s.T(), "N/A", views[1].DriverID)
}

// TestDriverHistory tests the driver-side projection
func (s *RideViewServiceIntegrationTestSuite) TestDriverHistory() {
	ride := testutil.CreateAssignedTestRide(s.passenger.ID, s.driver.ID, models.StatusCompleted, time.Now())
	unrelated := testutil.CreateTestRide(s.passenger.ID, time.Now())
	s.testDB.DB.Create(ride)
	s.testDB.DB.Create(unrelated)

	views, err := s.viewService.DriverHistory(s.driverID())
	assert.NoError(s.T(), err)
	assert.Len(s.T(), views, 1)
	assert.Equal(s.T(), ride.ID, views[0].ID.String())
	assert.Equal(s.T(), s.passenger.Name, views[0].PassengerName)
	assert.Equal(s.T(), s.passenger.ID, views[0].PassengerID)
}

// TestHistoryEmpty tests that an empty history is a valid result
func (s *RideViewServiceIntegrationTestSuite) TestHistoryEmpty() {
	views, err := s.viewService.PassengerHistory(s.passengerID())
	assert.NoError(s.T(), err)
	assert.Empty(s.T(), views)
}

// TestAvailableRidesOnlyRequested tests feed purity: rides in any other
// status never appear
func (s *RideViewServiceIntegrationTestSuite) TestAvailableRidesOnlyRequested() {
	base := time.Now().Add(-time.Minute)
	requested1 := testutil.CreateTestRide(s.passenger.ID, base)
	requested2 := testutil.CreateTestRide(s.passenger.ID, base.Add(2*time.Second))
	inProgress := testutil.CreateAssignedTestRide(s.passenger.ID, s.driver.ID, models.StatusInProgress, base.Add(time.Second))
	completed := testutil.CreateAssignedTestRide(s.passenger.ID, s.driver.ID, models.StatusCompleted, base.Add(3*time.Second))
	cancelled := testutil.CreateTestRide(s.passenger.ID, base.Add(4*time.Second))
	cancelled.Status = string(models.StatusCancelled)
	s.testDB.DB.Create(requested1)
	s.testDB.DB.Create(requested2)
	s.testDB.DB.Create(inProgress)
	s.testDB.DB.Create(completed)
	s.testDB.DB.Create(cancelled)

	views, err := s.viewService.AvailableRides(s.driverID())
	assert.NoError(s.T(), err)
	assert.Len(s.T(), views, 2)

	for _, view := range views {
		assert.Equal(s.T(), models.StatusRequested, view.Status)
	}

	// Most recent first, joined with the passenger's name
	assert.Equal(s.T(), requested2.ID, views[0].ID.String())
	assert.Equal(s.T(), requested1.ID, views[1].ID.String())
	assert.Equal(s.T(), s.passenger.Name, views[0].PassengerName)
}

// TestAvailableRidesUnknownDriver tests the driver existence check
func (s *RideViewServiceIntegrationTestSuite) TestAvailableRidesUnknownDriver() {
	_, err := s.viewService.AvailableRides(uuid.New())
	assert.ErrorIs(s.T(), err, service.ErrUserNotFound)
}

// TestSuite runs all tests in the suite
func TestRideViewServiceIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RideViewServiceIntegrationTestSuite))
}
