package repository

import (
	"errors"

	"github.com/Baaaki/ride-server/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RideRepository struct {
	db *gorm.DB
}

func NewRideRepository(db *gorm.DB) *RideRepository {
	return &RideRepository{db: db}
}

func (r *RideRepository) CreateRide(ride *models.Ride) error {
	return r.db.Create(ride).Error
}

func (r *RideRepository) GetRideByID(id uuid.UUID) (*models.Ride, error) {
	var ride models.Ride
	err := r.db.Where("id = ?", id).First(&ride).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ride, nil
}

// UpdateStatus performs a compare-and-swap: the status (and driver, when one
// is being assigned) is only written if the ride is still in fromStatus.
// Returns false when the swap misses, which means a concurrent update won.
func (r *RideRepository) UpdateStatus(id uuid.UUID, fromStatus, toStatus models.RideStatus, driverID *uuid.UUID) (bool, error) {
	updates := map[string]interface{}{"status": toStatus}
	if driverID != nil {
		updates["driver_id"] = *driverID
	}

	res := r.db.Model(&models.Ride{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteRide removes a ride permanently. Returns the number of rows deleted.
func (r *RideRepository) DeleteRide(id uuid.UUID) (int64, error) {
	res := r.db.Where("id = ?", id).Delete(&models.Ride{})
	return res.RowsAffected, res.Error
}

// LatestRideByPassenger returns the passenger's most recent ride, or nil.
func (r *RideRepository) LatestRideByPassenger(passengerID uuid.UUID) (*models.Ride, error) {
	var ride models.Ride
	err := r.db.Where("passenger_id = ?", passengerID).
		Order("created_at DESC").
		First(&ride).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ride, nil
}

// LatestRideByDriver returns the driver's most recent assigned ride, or nil.
func (r *RideRepository) LatestRideByDriver(driverID uuid.UUID) (*models.Ride, error) {
	var ride models.Ride
	err := r.db.Where("driver_id = ?", driverID).
		Order("created_at DESC").
		First(&ride).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ride, nil
}

// GetRidesByPassenger returns the passenger's rides, most recent first.
func (r *RideRepository) GetRidesByPassenger(passengerID uuid.UUID) ([]models.Ride, error) {
	var rides []models.Ride
	err := r.db.Where("passenger_id = ?", passengerID).
		Order("created_at DESC").
		Find(&rides).Error
	if err != nil {
		return nil, err
	}
	return rides, nil
}

// GetRidesByDriver returns the driver's assigned rides, most recent first.
func (r *RideRepository) GetRidesByDriver(driverID uuid.UUID) ([]models.Ride, error) {
	var rides []models.Ride
	err := r.db.Where("driver_id = ?", driverID).
		Order("created_at DESC").
		Find(&rides).Error
	if err != nil {
		return nil, err
	}
	return rides, nil
}

// GetRequestedRides returns every ride still waiting for a driver, most
// recent first. This is the unfiltered broadcast feed shown to all drivers.
func (r *RideRepository) GetRequestedRides() ([]models.Ride, error) {
	var rides []models.Ride
	err := r.db.Where("status = ?", models.StatusRequested).
		Order("created_at DESC").
		Find(&rides).Error
	if err != nil {
		return nil, err
	}
	return rides, nil
}
