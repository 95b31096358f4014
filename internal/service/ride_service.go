package service

import (
	"errors"
	"strings"
	"time"

	"github.com/Baaaki/ride-server/internal/models"
	"github.com/Baaaki/ride-server/internal/pricing"
	"github.com/Baaaki/ride-server/internal/repository"
	"github.com/Baaaki/ride-server/internal/triplog"
	"github.com/Baaaki/ride-server/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// Not found
	ErrUserNotFound   = errors.New("user not found")
	ErrRideNotFound   = errors.New("ride not found")
	ErrDriverNotFound = errors.New("driver not found")

	// Invalid argument
	ErrInvalidRideType   = errors.New("invalid ride type")
	ErrInvalidRideStatus = errors.New("invalid ride status")
	ErrDriverIDRequired  = errors.New("driver id is required for in-progress or completed status")
	ErrInvalidLocation   = errors.New("pickup and dropoff locations must be 1-255 characters")
	ErrNotADriverAccount = errors.New("supplied driver id does not belong to a driver account")

	// Forbidden
	ErrNotRideParticipant = errors.New("user not authorized to manage this ride")
	ErrDriverRoleRequired = errors.New("only drivers can move a ride to in-progress or completed")

	// Conflict
	ErrRideClosed       = errors.New("ride has already been completed or cancelled")
	ErrConcurrentUpdate = errors.New("ride was updated concurrently")
)

// RideService owns the ride lifecycle: creation, status transitions,
// authorization and deletion. Views over rides live in RideViewService.
type RideService struct {
	rideRepo  *repository.RideRepository
	userRepo  *repository.UserRepository
	estimator pricing.Estimator
	trips     *triplog.Log
}

func NewRideService(rideRepo *repository.RideRepository, userRepo *repository.UserRepository, estimator pricing.Estimator, trips *triplog.Log) *RideService {
	return &RideService{
		rideRepo:  rideRepo,
		userRepo:  userRepo,
		estimator: estimator,
		trips:     trips,
	}
}

// validateTransition centralizes the status machine rules. The topology is
// deliberately permissive: any status is reachable from any non-terminal
// status; only completed and cancelled are dead ends. The driver-assignment
// rule is enforced separately in UpdateStatus.
func validateTransition(current, target models.RideStatus) error {
	if !target.Valid() {
		return ErrInvalidRideStatus
	}
	if current.Terminal() {
		return ErrRideClosed
	}
	return nil
}

// RequestRide creates a new ride for the passenger with a placeholder
// fare/distance quote and status=requested.
func (s *RideService) RequestRide(passengerID uuid.UUID, pickupLocation, dropoffLocation string, rideType models.RideType) (*models.Ride, error) {
	passenger, err := s.userRepo.GetUserByID(passengerID)
	if err != nil {
		logger.Log.Error("Failed to look up passenger",
			zap.String("passenger_id", passengerID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	if passenger == nil {
		return nil, ErrUserNotFound
	}

	if !rideType.Valid() {
		return nil, ErrInvalidRideType
	}

	pickupLocation = strings.TrimSpace(pickupLocation)
	dropoffLocation = strings.TrimSpace(dropoffLocation)
	if !validLocation(pickupLocation) || !validLocation(dropoffLocation) {
		return nil, ErrInvalidLocation
	}

	quote := s.estimator.Estimate(pickupLocation, dropoffLocation)

	ride := &models.Ride{
		ID:              uuid.New(),
		PassengerID:     passengerID,
		PickupLocation:  pickupLocation,
		DropoffLocation: dropoffLocation,
		Type:            rideType,
		Status:          models.StatusRequested,
		Fare:            quote.Fare,
		DistanceMeters:  quote.DistanceMeters,
	}

	if err := s.rideRepo.CreateRide(ride); err != nil {
		logger.Log.Error("Failed to create ride",
			zap.String("passenger_id", passengerID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	s.logTrip(ride.ID, models.StatusRequested, passengerID)

	logger.Log.Info("Ride requested",
		zap.String("ride_id", ride.ID.String()),
		zap.String("passenger_id", passengerID.String()),
		zap.String("type", string(rideType)),
		zap.Int("fare", ride.Fare),
		zap.Int("distance_meters", ride.DistanceMeters),
	)

	return ride, nil
}

// UpdateStatus moves a ride through its lifecycle. Only the owning passenger
// or the assigned driver may act; entering in-progress or completed requires
// a driver id, a driver-role actor, and assigns the ride's driver. The write
// is a compare-and-swap on the status read here, so two racing updates
// cannot both win.
func (s *RideService) UpdateStatus(rideID uuid.UUID, targetStatus models.RideStatus, actingUserID uuid.UUID, driverID *uuid.UUID) (*models.Ride, error) {
	actor, err := s.userRepo.GetUserByID(actingUserID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, ErrUserNotFound
	}

	ride, err := s.rideRepo.GetRideByID(rideID)
	if err != nil {
		return nil, err
	}
	if ride == nil {
		return nil, ErrRideNotFound
	}

	if !actor.CanManage(ride) {
		logger.Log.Warn("Ride status update rejected: not a party to the ride",
			zap.String("ride_id", rideID.String()),
			zap.String("acting_user_id", actingUserID.String()),
		)
		return nil, ErrNotRideParticipant
	}

	if err := validateTransition(ride.Status, targetStatus); err != nil {
		return nil, err
	}

	var assignDriver *uuid.UUID
	if targetStatus.RequiresDriver() {
		if driverID == nil {
			return nil, ErrDriverIDRequired
		}
		if actor.Role != models.RoleDriver {
			return nil, ErrDriverRoleRequired
		}

		// The target driver id must resolve to a real driver account;
		// history views join on it.
		driver, err := s.userRepo.GetUserByID(*driverID)
		if err != nil {
			return nil, err
		}
		if driver == nil {
			return nil, ErrDriverNotFound
		}
		if driver.Role != models.RoleDriver {
			return nil, ErrNotADriverAccount
		}
		assignDriver = driverID
	}

	swapped, err := s.rideRepo.UpdateStatus(ride.ID, ride.Status, targetStatus, assignDriver)
	if err != nil {
		logger.Log.Error("Failed to update ride status",
			zap.String("ride_id", rideID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	if !swapped {
		return nil, ErrConcurrentUpdate
	}

	s.logTrip(ride.ID, targetStatus, actingUserID)

	logger.Log.Info("Ride status updated",
		zap.String("ride_id", rideID.String()),
		zap.String("from", string(ride.Status)),
		zap.String("to", string(targetStatus)),
		zap.String("acting_user_id", actingUserID.String()),
	)

	updated, err := s.rideRepo.GetRideByID(rideID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrRideNotFound
	}
	return updated, nil
}

// GetRideByID returns a single ride.
func (s *RideService) GetRideByID(rideID uuid.UUID) (*models.Ride, error) {
	ride, err := s.rideRepo.GetRideByID(rideID)
	if err != nil {
		return nil, err
	}
	if ride == nil {
		return nil, ErrRideNotFound
	}
	return ride, nil
}

// DeleteRide permanently removes a ride. Only a party to the ride may do so.
func (s *RideService) DeleteRide(rideID uuid.UUID, actingUserID uuid.UUID) error {
	actor, err := s.userRepo.GetUserByID(actingUserID)
	if err != nil {
		return err
	}
	if actor == nil {
		return ErrUserNotFound
	}

	ride, err := s.rideRepo.GetRideByID(rideID)
	if err != nil {
		return err
	}
	if ride == nil {
		return ErrRideNotFound
	}

	if !actor.CanManage(ride) {
		return ErrNotRideParticipant
	}

	if _, err := s.rideRepo.DeleteRide(rideID); err != nil {
		logger.Log.Error("Failed to delete ride",
			zap.String("ride_id", rideID.String()),
			zap.Error(err),
		)
		return err
	}

	logger.Log.Info("Ride deleted",
		zap.String("ride_id", rideID.String()),
		zap.String("acting_user_id", actingUserID.String()),
	)

	return nil
}

// logTrip appends to the audit trail. A trip-log failure never fails the
// request; the database row is the source of truth.
func (s *RideService) logTrip(rideID uuid.UUID, status models.RideStatus, actorID uuid.UUID) {
	if s.trips == nil {
		return
	}
	entry := triplog.Entry{
		RideID:    rideID.String(),
		Status:    string(status),
		ActorID:   actorID.String(),
		Timestamp: time.Now(),
	}
	if err := s.trips.Append(entry); err != nil {
		logger.Log.Warn("Trip log append failed",
			zap.String("ride_id", rideID.String()),
			zap.Error(err),
		)
	}
}

func validLocation(loc string) bool {
	return len(loc) >= 1 && len(loc) <= 255
}
