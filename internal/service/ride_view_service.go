package service

import (
	"time"

	"github.com/Baaaki/ride-server/internal/models"
	"github.com/Baaaki/ride-server/internal/repository"
	"github.com/Baaaki/ride-server/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Placeholders used when a counterpart user cannot be resolved.
const (
	driverSearching = "Searching"
	counterpartNA   = "N/A"
)

// RideView is a read-only projection of a ride joined with the counterpart
// user's display fields. It exists for presentation only; rides are always
// mutated through RideService.
type RideView struct {
	ID              uuid.UUID         `json:"id"`
	PassengerID     string            `json:"passenger_id"`
	PassengerName   string            `json:"passenger_name"`
	DriverID        string            `json:"driver_id"`
	DriverName      string            `json:"driver_name"`
	PickupLocation  string            `json:"pickup_location"`
	DropoffLocation string            `json:"dropoff_location"`
	Type            models.RideType   `json:"type"`
	Status          models.RideStatus `json:"status"`
	Fare            int               `json:"fare"`
	DistanceMeters  int               `json:"distance"`
	Rating          float64           `json:"rating"`
	CreatedAt       time.Time         `json:"created_at"`
}

// RideViewService derives role-specific projections of ride data: the
// dashboard's latest ride, per-role history lists and the available-rides
// feed. Every call re-queries the store; nothing is cached.
type RideViewService struct {
	rideRepo *repository.RideRepository
	userRepo *repository.UserRepository
}

func NewRideViewService(rideRepo *repository.RideRepository, userRepo *repository.UserRepository) *RideViewService {
	return &RideViewService{
		rideRepo: rideRepo,
		userRepo: userRepo,
	}
}

// LatestRideFor returns the user's most recent ride joined with the
// counterpart's name, dispatched on the user's role. Returns (nil, nil)
// when the user has no rides yet; that is an empty dashboard, not an error.
func (s *RideViewService) LatestRideFor(userID uuid.UUID) (*RideView, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	var ride *models.Ride
	if user.Role == models.RolePassenger {
		ride, err = s.rideRepo.LatestRideByPassenger(userID)
	} else {
		ride, err = s.rideRepo.LatestRideByDriver(userID)
	}
	if err != nil {
		logger.Log.Error("Failed to load latest ride",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	if ride == nil {
		return nil, nil
	}

	view := s.buildView(ride)
	if user.Role == models.RolePassenger && ride.DriverID == nil {
		// Still waiting for a driver to accept.
		view.DriverName = driverSearching
	}
	return &view, nil
}

// PassengerHistory returns all of the passenger's rides, most recent first,
// each joined with the driver's id and name ("N/A" while unassigned).
func (s *RideViewService) PassengerHistory(passengerID uuid.UUID) ([]RideView, error) {
	passenger, err := s.userRepo.GetUserByID(passengerID)
	if err != nil {
		return nil, err
	}
	if passenger == nil {
		return nil, ErrUserNotFound
	}

	rides, err := s.rideRepo.GetRidesByPassenger(passengerID)
	if err != nil {
		return nil, err
	}
	return s.buildViews(rides)
}

// DriverHistory returns all rides assigned to the driver, most recent first,
// each joined with the passenger's id and name.
func (s *RideViewService) DriverHistory(driverID uuid.UUID) ([]RideView, error) {
	driver, err := s.userRepo.GetUserByID(driverID)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, ErrUserNotFound
	}

	rides, err := s.rideRepo.GetRidesByDriver(driverID)
	if err != nil {
		return nil, err
	}
	return s.buildViews(rides)
}

// AvailableRides returns every ride still in requested status, most recent
// first, with passenger names. The feed is a flat broadcast: no proximity or
// vehicle-type matching.
func (s *RideViewService) AvailableRides(driverID uuid.UUID) ([]RideView, error) {
	driver, err := s.userRepo.GetUserByID(driverID)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, ErrUserNotFound
	}

	rides, err := s.rideRepo.GetRequestedRides()
	if err != nil {
		return nil, err
	}
	return s.buildViews(rides)
}

// buildViews joins a batch of rides with their passenger and driver names
// using a single user lookup.
func (s *RideViewService) buildViews(rides []models.Ride) ([]RideView, error) {
	ids := make([]uuid.UUID, 0, len(rides)*2)
	seen := make(map[uuid.UUID]bool, len(rides)*2)
	for i := range rides {
		if !seen[rides[i].PassengerID] {
			seen[rides[i].PassengerID] = true
			ids = append(ids, rides[i].PassengerID)
		}
		if rides[i].DriverID != nil && !seen[*rides[i].DriverID] {
			seen[*rides[i].DriverID] = true
			ids = append(ids, *rides[i].DriverID)
		}
	}

	users, err := s.userRepo.GetUsersByIDs(ids)
	if err != nil {
		return nil, err
	}

	views := make([]RideView, 0, len(rides))
	for i := range rides {
		ride := &rides[i]
		view := RideView{
			ID:              ride.ID,
			PassengerID:     ride.PassengerID.String(),
			PassengerName:   counterpartNA,
			DriverID:        counterpartNA,
			DriverName:      counterpartNA,
			PickupLocation:  ride.PickupLocation,
			DropoffLocation: ride.DropoffLocation,
			Type:            ride.Type,
			Status:          ride.Status,
			Fare:            ride.Fare,
			DistanceMeters:  ride.DistanceMeters,
			Rating:          ride.Rating,
			CreatedAt:       ride.CreatedAt,
		}
		if p, ok := users[ride.PassengerID]; ok {
			view.PassengerName = p.Name
		}
		if ride.DriverID != nil {
			if d, ok := users[*ride.DriverID]; ok {
				view.DriverID = d.ID.String()
				view.DriverName = d.Name
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// buildView joins a single ride, resolving both parties individually.
func (s *RideViewService) buildView(ride *models.Ride) RideView {
	view := RideView{
		ID:              ride.ID,
		PassengerID:     ride.PassengerID.String(),
		PassengerName:   counterpartNA,
		DriverID:        counterpartNA,
		DriverName:      counterpartNA,
		PickupLocation:  ride.PickupLocation,
		DropoffLocation: ride.DropoffLocation,
		Type:            ride.Type,
		Status:          ride.Status,
		Fare:            ride.Fare,
		DistanceMeters:  ride.DistanceMeters,
		Rating:          ride.Rating,
		CreatedAt:       ride.CreatedAt,
	}

	if p, err := s.userRepo.GetUserByID(ride.PassengerID); err == nil && p != nil {
		view.PassengerName = p.Name
	}
	if ride.DriverID != nil {
		if d, err := s.userRepo.GetUserByID(*ride.DriverID); err == nil && d != nil {
			view.DriverID = d.ID.String()
			view.DriverName = d.Name
		}
	}
	return view
}
