package testutil

import (
	"time"

	"github.com/Baaaki/ride-server/internal/models"
	"github.com/Baaaki/ride-server/internal/utils"
	"github.com/google/uuid"
)

// CreateTestUser creates a SQLite-compatible test user with hashed password
func CreateTestUser(name, email, password string, role models.Role) (*TestUser, error) {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	return &TestUser{
		ID:           uuid.New().String(), // SQLite stores UUID as string
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         string(role),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}, nil
}

// DefaultPassenger returns a default passenger account
func DefaultPassenger() (*TestUser, error) {
	return CreateTestUser("Test Passenger", "passenger@example.com", "Pass123456", models.RolePassenger)
}

// DefaultDriver returns a default driver account
func DefaultDriver() (*TestUser, error) {
	return CreateTestUser("Test Driver", "driver@example.com", "Drive123456", models.RoleDriver)
}

// CreateTestRide creates a SQLite-compatible requested ride for a passenger.
// createdAt is explicit so ordering tests don't need to sleep.
func CreateTestRide(passengerID string, createdAt time.Time) *TestRide {
	return &TestRide{
		ID:              uuid.New().String(),
		PassengerID:     passengerID,
		PickupLocation:  "A St",
		DropoffLocation: "B St",
		Type:            string(models.TypeCar),
		Status:          string(models.StatusRequested),
		Fare:            250,
		DistanceMeters:  2500,
		CreatedAt:       createdAt,
		UpdatedAt:       createdAt,
	}
}

// CreateAssignedTestRide creates a ride already assigned to a driver in the
// given status.
func CreateAssignedTestRide(passengerID, driverID string, status models.RideStatus, createdAt time.Time) *TestRide {
	ride := CreateTestRide(passengerID, createdAt)
	ride.DriverID = &driverID
	ride.Status = string(status)
	return ride
}
