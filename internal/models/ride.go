package models

import (
	"time"

	"github.com/google/uuid"
)

type RideStatus string

const (
	StatusRequested  RideStatus = "requested"
	StatusInProgress RideStatus = "in-progress"
	StatusCompleted  RideStatus = "completed"
	StatusCancelled  RideStatus = "cancelled"
)

// Valid reports whether s is a known ride status.
func (s RideStatus) Valid() bool {
	switch s {
	case StatusRequested, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether s accepts no further transitions.
func (s RideStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// RequiresDriver reports whether entering s assigns a driver to the ride.
func (s RideStatus) RequiresDriver() bool {
	return s == StatusInProgress || s == StatusCompleted
}

type RideType string

const (
	TypeBike     RideType = "Bike"
	TypeCar      RideType = "Car"
	TypeRickshaw RideType = "Rickshaw"
)

func (t RideType) Valid() bool {
	switch t {
	case TypeBike, TypeCar, TypeRickshaw:
		return true
	}
	return false
}

type Ride struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PassengerID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"passenger_id"`
	DriverID        *uuid.UUID `gorm:"type:uuid;index" json:"driver_id,omitempty"` // nil until a driver accepts
	PickupLocation  string     `gorm:"type:varchar(255);not null" json:"pickup_location"`
	DropoffLocation string     `gorm:"type:varchar(255);not null" json:"dropoff_location"`
	Type            RideType   `gorm:"type:varchar(20);not null" json:"type"`
	Status          RideStatus `gorm:"type:varchar(20);not null;default:'requested';index" json:"status"`
	Fare            int        `gorm:"not null" json:"fare"`
	DistanceMeters  int        `gorm:"not null" json:"distance"`
	Rating          float64    `gorm:"default:0" json:"rating"`
	CreatedAt       time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
